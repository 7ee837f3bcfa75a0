package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hash string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
}

type AccountRepository interface {
	Create(ctx context.Context, args repoargs.CreateAccount) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Account, error)
	GetByUserIDForUpdate(ctx context.Context, userID int64) ([]domain.Account, error)
	FindByID(ctx context.Context, id, userID int64) (*domain.Account, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Account, error)
	FindByNumberForUpdate(ctx context.Context, accountNumber string, userID int64) (*domain.Account, error)
	FirstByUserIDForUpdate(ctx context.Context, userID int64) (*domain.Account, error)
	AddBalance(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error)
	SoftDelete(ctx context.Context, id, userID int64) error
}

type ProductRepository interface {
	Create(ctx context.Context, args repoargs.CreateProduct) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindAnyByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter repoargs.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, id int64, args repoargs.UpdateProduct) (*domain.Product, error)
	DecrementStock(ctx context.Context, id, amount int64) (*domain.Product, error)
	RestoreStock(ctx context.Context, id, amount int64) (*domain.Product, error)
	IncrementViews(ctx context.Context, id int64) error
	SoftDelete(ctx context.Context, id int64) error
}

type AddressRepository interface {
	Create(ctx context.Context, args repoargs.CreateAddress) (*domain.Address, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Address, error)
	FindByID(ctx context.Context, id, userID int64) (*domain.Address, error)
	Update(ctx context.Context, id, userID int64, args repoargs.UpdateAddress) (*domain.Address, error)
	SoftDelete(ctx context.Context, id, userID int64) error
}

type OrderRepository interface {
	CreateOrderDetails(ctx context.Context, args repoargs.CreateOrderDetails) (*domain.OrderDetails, error)
	CreateOrder(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	FindByIDForUpdate(ctx context.Context, id, userID int64) (*domain.Order, error)
	FindDetailsByID(ctx context.Context, id int64) (*domain.OrderDetails, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
	GetBySellerID(ctx context.Context, sellerID int64) ([]domain.Order, error)
	MarkPaid(ctx context.Context, orderID int64) (*domain.Order, error)
	UpdateDetailsQuantity(ctx context.Context, args repoargs.UpdateOrderQuantity) (*domain.OrderDetails, error)
	SoftDeleteDetails(ctx context.Context, detailsID int64) error
}

type PaymentRepository interface {
	Create(ctx context.Context, args repoargs.CreatePayment) (*domain.Payment, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Payment, error)
	FindByID(ctx context.Context, id, userID int64) (*domain.Payment, error)
	SoftDelete(ctx context.Context, id, userID int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, args repoargs.CreateComment) (*domain.Comment, error)
	GetByProductID(ctx context.Context, productID int64) ([]domain.Comment, error)
	FindByID(ctx context.Context, id int64) (*domain.Comment, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
}

type ReviewRepository interface {
	Create(ctx context.Context, args repoargs.CreateReview) (*domain.Review, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Review, error)
	GetByProductID(ctx context.Context, productID int64) ([]domain.Review, error)
	FindByID(ctx context.Context, id int64) (*domain.Review, error)
	Update(ctx context.Context, id, userID int64, args repoargs.UpdateReview) (*domain.Review, error)
	SoftDelete(ctx context.Context, id, userID int64) error
}

type FeaturedRepository interface {
	Create(ctx context.Context, userID, productID int64) (*domain.FeaturedProduct, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.FeaturedProduct, error)
	FindByProductID(ctx context.Context, productID, userID int64) (*domain.FeaturedProduct, error)
	Delete(ctx context.Context, productID, userID int64) error
}

// SettlementPublisher публикует событие о проведенном платеже во внешнюю
// шину. Ошибки публикации не откатывают платеж.
type SettlementPublisher interface {
	PublishSettlement(ctx context.Context, payment *domain.Payment) error
}

// ViewCounter накапливает счетчики просмотров товаров.
type ViewCounter interface {
	Increment(ctx context.Context, productID int64) (int64, error)
}
