package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

type AccountServicer interface {
	Create(ctx context.Context, userID int64) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Account, error)
	FindByID(ctx context.Context, id, userID int64) (*domain.Account, error)
	TopUp(ctx context.Context, id, userID int64, amount decimal.Decimal) (*domain.Account, error)
	Delete(ctx context.Context, id, userID int64) error
}

type ProductServicer interface {
	Create(ctx context.Context, userID int64, args service.CreateProductArgs) (*domain.Product, error)
	List(ctx context.Context, filter repoargs.ProductFilter) ([]domain.Product, error)
	Detail(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, id, userID int64, args service.UpdateProductArgs) (*domain.Product, error)
	Delete(ctx context.Context, id, userID int64) error
}

type AddressServicer interface {
	Create(ctx context.Context, userID int64, address string) (*domain.Address, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Address, error)
	Update(ctx context.Context, id, userID int64, address string) (*domain.Address, error)
	Delete(ctx context.Context, id, userID int64) error
}

type OrderServicer interface {
	Create(ctx context.Context, userID int64, args service.CreateOrderArgs) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
	GetBySellerID(ctx context.Context, sellerID int64) ([]domain.Order, error)
	FindDetails(ctx context.Context, orderID, userID int64) (*domain.Order, *domain.OrderDetails, error)
	UpdateQuantity(ctx context.Context, orderID, userID, quantity int64) (*domain.OrderDetails, error)
	Delete(ctx context.Context, orderID, userID int64) error
}

type PaymentServicer interface {
	Settle(ctx context.Context, userID int64, args service.SettleArgs) (*domain.Payment, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Payment, error)
	FindByID(ctx context.Context, id, userID int64) (*domain.Payment, error)
	Delete(ctx context.Context, id, userID int64) error
}

type FeaturedServicer interface {
	Add(ctx context.Context, userID, productID int64) (*domain.FeaturedProduct, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.FeaturedProduct, error)
	Remove(ctx context.Context, productID, userID int64) error
}

type CommentServicer interface {
	Create(ctx context.Context, userID int64, args service.CreateCommentArgs) (*domain.Comment, error)
	ForestByProduct(ctx context.Context, productID int64) ([]domain.CommentNode, error)
	DeleteCascade(ctx context.Context, commentID, userID int64) error
}

type ReviewServicer interface {
	Create(ctx context.Context, userID int64, args service.CreateReviewArgs) (*domain.Review, error)
	GetByProductID(ctx context.Context, productID int64) ([]domain.Review, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Review, error)
	FindByID(ctx context.Context, id int64) (*domain.Review, error)
	Update(ctx context.Context, id, userID int64, args service.UpdateReviewArgs) (*domain.Review, error)
	Delete(ctx context.Context, id, userID int64) error
}
