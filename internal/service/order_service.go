package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type OrderService struct {
	uow       uow.UOW
	orderRepo OrderRepository
	userRepo  UserRepository
}

func NewOrderService(u uow.UOW) (*OrderService, error) {
	orderRepo, orderRepoErr := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if orderRepoErr != nil {
		return nil, orderRepoErr
	}
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &OrderService{
		uow:       u,
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}, nil
}

type CreateOrderArgs struct {
	ProductID int64
	AddressID int64
	Quantity  int64
}

// Create кладет товар в корзину: создает заказ со снимком цены на момент
// добавления и резервирует остаток. Продавцы заказы не оформляют.
//
// Алгоритм в одной транзакции:
//  1. Проверяется покупатель и принадлежность адреса.
//  2. Товар блокируется, остаток сверяется с количеством.
//  3. Создаются позиция заказа (цена = цена товара * количество) и заказ.
//  4. Остаток списывается; распроданный товар скрывается из каталога.
func (s *OrderService) Create(ctx context.Context, userID int64, args CreateOrderArgs) (*domain.Order, error) {
	if args.Quantity <= 0 {
		return nil, fmt.Errorf("creating order: %w", domain.ErrValidation)
	}

	var order *domain.Order
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		user, userErr := userRepo.FindUserByID(c, userID)
		if userErr != nil {
			return userErr //nolint:wrapcheck
		}
		if user.IsSeller {
			return domain.ErrPermissionDenied
		}

		addressRepo, addressRepoErr := uow.GetAs[AddressRepository](tx, uow.RepositoryName(repoargs.AddressRepoName))
		if addressRepoErr != nil {
			return addressRepoErr //nolint:wrapcheck
		}
		if _, addrErr := addressRepo.FindByID(c, args.AddressID, userID); addrErr != nil {
			return addrErr //nolint:wrapcheck
		}

		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}
		product, productErr := productRepo.FindByIDForUpdate(c, args.ProductID)
		if productErr != nil {
			return productErr //nolint:wrapcheck
		}
		if product.Amount < args.Quantity {
			return domain.ErrNotEnoughStock
		}

		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}

		details, detailsErr := orderRepo.CreateOrderDetails(c, repoargs.CreateOrderDetails{
			ProductID: args.ProductID,
			AddressID: args.AddressID,
			Price:     product.Price.Mul(decimal.NewFromInt(args.Quantity)),
			Quantity:  args.Quantity,
		})
		if detailsErr != nil {
			return detailsErr //nolint:wrapcheck
		}

		var orderErr error
		order, orderErr = orderRepo.CreateOrder(c, repoargs.CreateOrder{
			UserID:         userID,
			OrderDetailsID: details.ID,
			Status:         domain.OrderStatusNew,
		})
		if orderErr != nil {
			return orderErr //nolint:wrapcheck
		}

		if _, decErr := productRepo.DecrementStock(c, args.ProductID, args.Quantity); decErr != nil {
			return decErr //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("creating order: %w", txErr)
	}
	return order, nil
}

// GetByUserID возвращает корзину покупателя.
func (s *OrderService) GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

// GetBySellerID возвращает заказы на товары продавца. Доступно только
// продавцам.
func (s *OrderService) GetBySellerID(ctx context.Context, sellerID int64) ([]domain.Order, error) {
	user, userErr := s.userRepo.FindUserByID(ctx, sellerID)
	if userErr != nil {
		return nil, userErr //nolint:wrapcheck
	}
	if !user.IsSeller {
		return nil, domain.ErrPermissionDenied
	}

	orders, err := s.orderRepo.GetBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

func (s *OrderService) FindDetails(ctx context.Context, orderID, userID int64) (*domain.Order, *domain.OrderDetails, error) {
	order, orderErr := s.orderRepo.FindByID(ctx, orderID)
	if orderErr != nil {
		return nil, nil, orderErr //nolint:wrapcheck
	}
	if order.UserID != userID {
		return nil, nil, domain.ErrPermissionDenied
	}
	details, detailsErr := s.orderRepo.FindDetailsByID(ctx, order.OrderDetailsID)
	if detailsErr != nil {
		return nil, nil, detailsErr //nolint:wrapcheck
	}
	return order, details, nil
}

// UpdateQuantity меняет количество в неоплаченном заказе. Цена позиции
// пересчитывается по текущей цене товара, остаток корректируется на разницу.
func (s *OrderService) UpdateQuantity(ctx context.Context, orderID, userID, quantity int64) (*domain.OrderDetails, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("updating order %d quantity: %w", orderID, domain.ErrValidation)
	}

	var details *domain.OrderDetails
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}

		order, orderErr := orderRepo.FindByIDForUpdate(c, orderID, userID)
		if orderErr != nil {
			return orderErr //nolint:wrapcheck
		}
		if order.IsPaid {
			return domain.ErrOrderAlreadyPaid
		}

		current, currentErr := orderRepo.FindDetailsByID(c, order.OrderDetailsID)
		if currentErr != nil {
			return currentErr //nolint:wrapcheck
		}

		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}

		delta := quantity - current.Quantity
		var product *domain.Product
		switch {
		case delta > 0:
			locked, lockErr := productRepo.FindByIDForUpdate(c, current.ProductID)
			if lockErr != nil {
				return lockErr //nolint:wrapcheck
			}
			if locked.Amount < delta {
				return domain.ErrNotEnoughStock
			}
			var decErr error
			product, decErr = productRepo.DecrementStock(c, current.ProductID, delta)
			if decErr != nil {
				return decErr //nolint:wrapcheck
			}
		case delta < 0:
			var restoreErr error
			product, restoreErr = productRepo.RestoreStock(c, current.ProductID, -delta)
			if restoreErr != nil {
				return restoreErr //nolint:wrapcheck
			}
		default:
			var findErr error
			product, findErr = productRepo.FindByIDForUpdate(c, current.ProductID)
			if findErr != nil {
				return findErr //nolint:wrapcheck
			}
		}

		var updateErr error
		details, updateErr = orderRepo.UpdateDetailsQuantity(c, repoargs.UpdateOrderQuantity{
			OrderDetailsID: current.ID,
			Quantity:       quantity,
			Price:          product.Price.Mul(decimal.NewFromInt(quantity)),
		})
		if updateErr != nil {
			return updateErr //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("updating order %d quantity: %w", orderID, txErr)
	}
	return details, nil
}

// Delete убирает неоплаченный заказ из корзины и возвращает остаток товару.
func (s *OrderService) Delete(ctx context.Context, orderID, userID int64) error {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}

		order, orderErr := orderRepo.FindByIDForUpdate(c, orderID, userID)
		if orderErr != nil {
			return orderErr //nolint:wrapcheck
		}
		if order.IsPaid {
			return domain.ErrOrderAlreadyPaid
		}

		details, detailsErr := orderRepo.FindDetailsByID(c, order.OrderDetailsID)
		if detailsErr != nil {
			return detailsErr //nolint:wrapcheck
		}

		if err := orderRepo.SoftDeleteDetails(c, details.ID); err != nil {
			return err //nolint:wrapcheck
		}

		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}
		if _, restoreErr := productRepo.RestoreStock(c, details.ProductID, details.Quantity); restoreErr != nil {
			return restoreErr //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return fmt.Errorf("deleting order %d: %w", orderID, txErr)
	}
	return nil
}
