package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type ProductService struct {
	uow         uow.UOW
	productRepo ProductRepository
	userRepo    UserRepository
	viewCounter ViewCounter
	logger      *logrus.Entry
}

func NewProductService(u uow.UOW, viewCounter ViewCounter, l *logrus.Logger) (*ProductService, error) {
	productRepo, productRepoErr := uow.GetRepositoryAs[ProductRepository](u, uow.RepositoryName(repoargs.ProductRepoName))
	if productRepoErr != nil {
		return nil, productRepoErr
	}
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &ProductService{
		uow:         u,
		productRepo: productRepo,
		userRepo:    userRepo,
		viewCounter: viewCounter,
		logger:      l.WithField("service", "product"),
	}, nil
}

type CreateProductArgs struct {
	Category         string
	Title            string
	Description      string
	Price            decimal.Decimal
	Amount           int64
	DefaultAccountID *int64
}

// Create публикует товар. Доступно только продавцам. Счет по умолчанию, если
// указан, должен принадлежать продавцу.
func (s *ProductService) Create(ctx context.Context, userID int64, args CreateProductArgs) (*domain.Product, error) {
	if !args.Price.IsPositive() {
		return nil, fmt.Errorf("creating product: %w", domain.ErrValidation)
	}

	var product *domain.Product
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		user, userErr := userRepo.FindUserByID(c, userID)
		if userErr != nil {
			return userErr //nolint:wrapcheck
		}
		if !user.IsSeller {
			return domain.ErrPermissionDenied
		}

		if args.DefaultAccountID != nil {
			if err := checkAccountOwnership(c, tx, *args.DefaultAccountID, userID); err != nil {
				return err
			}
		}

		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}
		var createErr error
		product, createErr = productRepo.Create(c, repoargs.CreateProduct{
			UserID:           userID,
			Category:         args.Category,
			Title:            args.Title,
			Description:      args.Description,
			Price:            args.Price,
			Amount:           args.Amount,
			DefaultAccountID: args.DefaultAccountID,
		})
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("creating product: %w", txErr)
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, filter repoargs.ProductFilter) ([]domain.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return products, nil
}

// Detail возвращает карточку товара и засчитывает просмотр. Счетчик в базе
// является источником истины, горячий счетчик в кеше используется для выдачи
// трендов и при недоступности кеша тихо деградирует.
func (s *ProductService) Detail(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if incErr := s.productRepo.IncrementViews(ctx, id); incErr != nil {
		return nil, incErr //nolint:wrapcheck
	}
	product.Views++

	if s.viewCounter != nil {
		if _, cacheErr := s.viewCounter.Increment(ctx, id); cacheErr != nil {
			s.logger.WithError(cacheErr).Warn("view counter unavailable")
		}
	}
	return product, nil
}

type UpdateProductArgs = repoargs.UpdateProduct

// Update меняет товар. Доступно только владельцу.
func (s *ProductService) Update(ctx context.Context, id, userID int64, args UpdateProductArgs) (*domain.Product, error) {
	if args.Price != nil && !args.Price.IsPositive() {
		return nil, fmt.Errorf("updating product %d: %w", id, domain.ErrValidation)
	}

	var product *domain.Product
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}

		current, findErr := productRepo.FindByIDForUpdate(c, id)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if current.UserID != userID {
			return domain.ErrPermissionDenied
		}

		if args.DefaultAccountID != nil {
			if err := checkAccountOwnership(c, tx, *args.DefaultAccountID, userID); err != nil {
				return err
			}
		}

		var updateErr error
		product, updateErr = productRepo.Update(c, id, args)
		if updateErr != nil {
			return updateErr //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("updating product %d: %w", id, txErr)
	}
	return product, nil
}

// Delete скрывает товар из каталога. Доступно только владельцу.
func (s *ProductService) Delete(ctx context.Context, id, userID int64) error {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}

		current, findErr := productRepo.FindByIDForUpdate(c, id)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if current.UserID != userID {
			return domain.ErrPermissionDenied
		}

		return productRepo.SoftDelete(c, id) //nolint:wrapcheck
	})
	if txErr != nil {
		return fmt.Errorf("deleting product %d: %w", id, txErr)
	}
	return nil
}

// checkAccountOwnership проверяет, что счет принадлежит юзеру и активен.
// Чужой или несуществующий счет дает domain.ErrOwnerConflict.
func checkAccountOwnership(ctx context.Context, tx uow.TX, accountID, userID int64) error {
	accountRepo, repoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
	if repoErr != nil {
		return repoErr //nolint:wrapcheck
	}
	if _, err := accountRepo.FindByID(ctx, accountID, userID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrOwnerConflict
		}
		return err //nolint:wrapcheck
	}
	return nil
}
