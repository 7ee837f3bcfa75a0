package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/internal/service/mocks"
	"github.com/fsdevblog/aether-shop/pkg/uow"
	uowmocks "github.com/fsdevblog/aether-shop/pkg/uow/mocks"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockUOW         *uowmocks.MockUOW
	mockTX          *uowmocks.MockTX
	mockOrderRepo   *mocks.MockOrderRepository
	mockUserRepo    *mocks.MockUserRepository
	mockAddressRepo *mocks.MockAddressRepository
	mockProductRepo *mocks.MockProductRepository
	orderService    *OrderService
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockOrderRepo = mocks.NewMockOrderRepository(mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(mockCtrl)
	s.mockAddressRepo = mocks.NewMockAddressRepository(mockCtrl)
	s.mockProductRepo = mocks.NewMockProductRepository(mockCtrl)

	// Мок получения репозиториев из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.AddressRepoName)).
		Return(s.mockAddressRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.ProductRepoName)).
		Return(s.mockProductRepo, nil).AnyTimes()

	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		},
	).AnyTimes()

	orderService, servErr := NewOrderService(s.mockUOW)
	s.Require().NoError(servErr)
	s.orderService = orderService
}

func (s *OrderServiceTestSuite) TestCreate() {
	const buyerID int64 = 10
	product := domain.Product{ID: 3, UserID: 20, Price: decimal.NewFromInt(150), Amount: 5}

	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), buyerID).
		Return(&domain.User{ID: buyerID}, nil)
	s.mockAddressRepo.EXPECT().FindByID(gomock.Any(), int64(7), buyerID).
		Return(&domain.Address{ID: 7, UserID: buyerID}, nil)
	s.mockProductRepo.EXPECT().FindByIDForUpdate(gomock.Any(), product.ID).
		Return(&product, nil)

	// Цена позиции - снимок: цена товара на момент заказа * количество.
	s.mockOrderRepo.EXPECT().
		CreateOrderDetails(gomock.Any(), repoargs.CreateOrderDetails{
			ProductID: product.ID,
			AddressID: 7,
			Price:     decimal.NewFromInt(300),
			Quantity:  2,
		}).
		Return(&domain.OrderDetails{ID: 2, ProductID: product.ID, Quantity: 2}, nil)

	s.mockOrderRepo.EXPECT().
		CreateOrder(gomock.Any(), repoargs.CreateOrder{
			UserID:         buyerID,
			OrderDetailsID: 2,
			Status:         domain.OrderStatusNew,
		}).
		Return(&domain.Order{ID: 1, UserID: buyerID, OrderDetailsID: 2, InCart: true}, nil)

	s.mockProductRepo.EXPECT().DecrementStock(gomock.Any(), product.ID, int64(2)).
		Return(&product, nil)

	order, err := s.orderService.Create(s.T().Context(), buyerID, CreateOrderArgs{
		ProductID: product.ID,
		AddressID: 7,
		Quantity:  2,
	})
	s.Require().NoError(err)
	s.Equal(int64(1), order.ID)
}

func (s *OrderServiceTestSuite) TestCreateNotEnoughStock() {
	const buyerID int64 = 10
	product := domain.Product{ID: 3, UserID: 20, Price: decimal.NewFromInt(150), Amount: 1}

	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), buyerID).
		Return(&domain.User{ID: buyerID}, nil)
	s.mockAddressRepo.EXPECT().FindByID(gomock.Any(), int64(7), buyerID).
		Return(&domain.Address{ID: 7, UserID: buyerID}, nil)
	s.mockProductRepo.EXPECT().FindByIDForUpdate(gomock.Any(), product.ID).
		Return(&product, nil)

	_, err := s.orderService.Create(s.T().Context(), buyerID, CreateOrderArgs{
		ProductID: product.ID,
		AddressID: 7,
		Quantity:  2,
	})
	s.Require().ErrorIs(err, domain.ErrNotEnoughStock)
}

func (s *OrderServiceTestSuite) TestCreateSellerDenied() {
	const sellerID int64 = 20

	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), sellerID).
		Return(&domain.User{ID: sellerID, IsSeller: true}, nil)

	_, err := s.orderService.Create(s.T().Context(), sellerID, CreateOrderArgs{
		ProductID: 3,
		AddressID: 7,
		Quantity:  1,
	})
	s.Require().ErrorIs(err, domain.ErrPermissionDenied)
}

func (s *OrderServiceTestSuite) TestCreateInvalidQuantity() {
	_, err := s.orderService.Create(s.T().Context(), 10, CreateOrderArgs{
		ProductID: 3,
		AddressID: 7,
		Quantity:  0,
	})
	s.Require().ErrorIs(err, domain.ErrValidation)
}

func (s *OrderServiceTestSuite) TestUpdateQuantityPaidOrder() {
	const buyerID int64 = 10
	order := domain.Order{ID: 1, UserID: buyerID, OrderDetailsID: 2, IsPaid: true}

	s.mockOrderRepo.EXPECT().FindByIDForUpdate(gomock.Any(), order.ID, buyerID).
		Return(&order, nil)

	_, err := s.orderService.UpdateQuantity(s.T().Context(), order.ID, buyerID, 3)
	s.Require().ErrorIs(err, domain.ErrOrderAlreadyPaid)
}

func (s *OrderServiceTestSuite) TestUpdateQuantityIncrease() {
	const buyerID int64 = 10
	order := domain.Order{ID: 1, UserID: buyerID, OrderDetailsID: 2}
	current := domain.OrderDetails{ID: 2, ProductID: 3, Price: decimal.NewFromInt(150), Quantity: 1}
	product := domain.Product{ID: 3, Price: decimal.NewFromInt(150), Amount: 5}

	s.mockOrderRepo.EXPECT().FindByIDForUpdate(gomock.Any(), order.ID, buyerID).Return(&order, nil)
	s.mockOrderRepo.EXPECT().FindDetailsByID(gomock.Any(), current.ID).Return(&current, nil)
	s.mockProductRepo.EXPECT().FindByIDForUpdate(gomock.Any(), product.ID).Return(&product, nil)
	s.mockProductRepo.EXPECT().DecrementStock(gomock.Any(), product.ID, int64(2)).Return(&product, nil)

	s.mockOrderRepo.EXPECT().
		UpdateDetailsQuantity(gomock.Any(), repoargs.UpdateOrderQuantity{
			OrderDetailsID: current.ID,
			Quantity:       3,
			Price:          decimal.NewFromInt(450),
		}).
		Return(&domain.OrderDetails{ID: 2, Quantity: 3, Price: decimal.NewFromInt(450)}, nil)

	details, err := s.orderService.UpdateQuantity(s.T().Context(), order.ID, buyerID, 3)
	s.Require().NoError(err)
	s.Equal(int64(3), details.Quantity)
}

func (s *OrderServiceTestSuite) TestDeleteRestoresStock() {
	const buyerID int64 = 10
	order := domain.Order{ID: 1, UserID: buyerID, OrderDetailsID: 2}
	details := domain.OrderDetails{ID: 2, ProductID: 3, Quantity: 2}

	s.mockOrderRepo.EXPECT().FindByIDForUpdate(gomock.Any(), order.ID, buyerID).Return(&order, nil)
	s.mockOrderRepo.EXPECT().FindDetailsByID(gomock.Any(), details.ID).Return(&details, nil)
	s.mockOrderRepo.EXPECT().SoftDeleteDetails(gomock.Any(), details.ID).Return(nil)
	s.mockProductRepo.EXPECT().RestoreStock(gomock.Any(), details.ProductID, details.Quantity).
		Return(&domain.Product{ID: 3}, nil)

	err := s.orderService.Delete(s.T().Context(), order.ID, buyerID)
	s.Require().NoError(err)
}
