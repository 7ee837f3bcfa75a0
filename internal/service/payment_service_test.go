package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/internal/service/mocks"
	"github.com/fsdevblog/aether-shop/pkg/uow"
	uowmocks "github.com/fsdevblog/aether-shop/pkg/uow/mocks"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockUOW         *uowmocks.MockUOW
	mockTX          *uowmocks.MockTX
	mockOrderRepo   *mocks.MockOrderRepository
	mockAccountRepo *mocks.MockAccountRepository
	mockProductRepo *mocks.MockProductRepository
	mockPaymentRepo *mocks.MockPaymentRepository
	mockPublisher   *mocks.MockSettlementPublisher
	paymentService  *PaymentService
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (s *PaymentServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockOrderRepo = mocks.NewMockOrderRepository(mockCtrl)
	s.mockAccountRepo = mocks.NewMockAccountRepository(mockCtrl)
	s.mockProductRepo = mocks.NewMockProductRepository(mockCtrl)
	s.mockPaymentRepo = mocks.NewMockPaymentRepository(mockCtrl)
	s.mockPublisher = mocks.NewMockSettlementPublisher(mockCtrl)

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.PaymentRepoName)).
		Return(s.mockPaymentRepo, nil).AnyTimes()

	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.AccountRepoName)).
		Return(s.mockAccountRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.ProductRepoName)).
		Return(s.mockProductRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.PaymentRepoName)).
		Return(s.mockPaymentRepo, nil).AnyTimes()

	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		},
	).AnyTimes()

	logger := logrus.New()
	paymentService, servErr := NewPaymentService(s.mockUOW, s.mockPublisher, logger)
	s.Require().NoError(servErr)
	s.paymentService = paymentService
}

func (s *PaymentServiceTestSuite) TestSettleAutoPickAccount() {
	const payerID int64 = 10
	price := decimal.NewFromInt(300)

	order := domain.Order{ID: 1, UserID: payerID, OrderDetailsID: 2, Status: domain.OrderStatusNew}
	details := domain.OrderDetails{ID: 2, ProductID: 3, Price: price, Quantity: 2}
	product := domain.Product{ID: 3, UserID: 20, Price: decimal.NewFromInt(150)}

	// Первый счет слишком бедный, берется второй.
	poor := domain.Account{ID: 100, UserID: payerID, Balance: decimal.NewFromInt(100)}
	rich := domain.Account{ID: 101, UserID: payerID, Balance: decimal.NewFromInt(500)}
	sellerAccount := domain.Account{ID: 200, UserID: 20, Balance: decimal.Zero}

	s.mockOrderRepo.EXPECT().FindByIDForUpdate(gomock.Any(), order.ID, payerID).Return(&order, nil)
	s.mockOrderRepo.EXPECT().FindDetailsByID(gomock.Any(), order.OrderDetailsID).Return(&details, nil)

	s.mockAccountRepo.EXPECT().GetByUserIDForUpdate(gomock.Any(), payerID).
		Return([]domain.Account{poor, rich}, nil)

	var debited, credited decimal.Decimal
	s.mockAccountRepo.EXPECT().AddBalance(gomock.Any(), rich.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, amount decimal.Decimal) (*domain.Account, error) {
			debited = amount
			return &rich, nil
		})

	s.mockProductRepo.EXPECT().FindAnyByID(gomock.Any(), details.ProductID).Return(&product, nil)
	s.mockAccountRepo.EXPECT().FirstByUserIDForUpdate(gomock.Any(), product.UserID).
		Return(&sellerAccount, nil)
	s.mockAccountRepo.EXPECT().AddBalance(gomock.Any(), sellerAccount.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, amount decimal.Decimal) (*domain.Account, error) {
			credited = amount
			return &sellerAccount, nil
		})

	s.mockOrderRepo.EXPECT().MarkPaid(gomock.Any(), order.ID).
		Return(&domain.Order{ID: order.ID, IsPaid: true, Status: domain.OrderStatusPaid}, nil)

	s.mockPaymentRepo.EXPECT().
		Create(gomock.Any(), repoargs.CreatePayment{
			OrderDetailsID: details.ID,
			AccountID:      rich.ID,
			UserID:         payerID,
			Quantity:       details.Quantity,
			Price:          details.Price,
		}).
		Return(&domain.Payment{ID: 7, AccountID: rich.ID, UserID: payerID, Price: price}, nil)

	s.mockPublisher.EXPECT().PublishSettlement(gomock.Any(), gomock.Any()).Return(nil)

	payment, err := s.paymentService.Settle(s.T().Context(), payerID, SettleArgs{OrderID: order.ID})
	s.Require().NoError(err)
	s.Require().NotNil(payment)

	// Сумма списания равна сумме зачисления.
	s.True(debited.Equal(price.Neg()), "debit amount: %s", debited)
	s.True(credited.Equal(price), "credit amount: %s", credited)
}

func (s *PaymentServiceTestSuite) TestSettleExplicitAccountCreditsDefaultAccount() {
	const payerID int64 = 10
	price := decimal.NewFromInt(50)
	defaultAccountID := int64(300)

	order := domain.Order{ID: 1, UserID: payerID, OrderDetailsID: 2}
	details := domain.OrderDetails{ID: 2, ProductID: 3, Price: price, Quantity: 1}
	product := domain.Product{ID: 3, UserID: 20, DefaultAccountID: &defaultAccountID}

	funding := domain.Account{ID: 100, UserID: payerID, AccountNumber: "acc-1", Balance: decimal.NewFromInt(60)}
	receiving := domain.Account{ID: defaultAccountID, UserID: 20, Balance: decimal.Zero}

	s.mockOrderRepo.EXPECT().FindByIDForUpdate(gomock.Any(), order.ID, payerID).Return(&order, nil)
	s.mockOrderRepo.EXPECT().FindDetailsByID(gomock.Any(), order.OrderDetailsID).Return(&details, nil)

	s.mockAccountRepo.EXPECT().FindByNumberForUpdate(gomock.Any(), funding.AccountNumber, payerID).
		Return(&funding, nil)
	s.mockAccountRepo.EXPECT().AddBalance(gomock.Any(), funding.ID, price.Neg()).Return(&funding, nil)

	s.mockProductRepo.EXPECT().FindAnyByID(gomock.Any(), details.ProductID).Return(&product, nil)
	s.mockAccountRepo.EXPECT().FindByIDForUpdate(gomock.Any(), defaultAccountID).Return(&receiving, nil)
	s.mockAccountRepo.EXPECT().AddBalance(gomock.Any(), receiving.ID, price).Return(&receiving, nil)

	s.mockOrderRepo.EXPECT().MarkPaid(gomock.Any(), order.ID).Return(&order, nil)
	s.mockPaymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(&domain.Payment{ID: 7}, nil)
	s.mockPublisher.EXPECT().PublishSettlement(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.paymentService.Settle(s.T().Context(), payerID, SettleArgs{
		OrderID:       order.ID,
		AccountNumber: funding.AccountNumber,
	})
	s.Require().NoError(err)
}

func (s *PaymentServiceTestSuite) TestSettleAlreadyPaid() {
	const payerID int64 = 10
	order := domain.Order{ID: 1, UserID: payerID, OrderDetailsID: 2, IsPaid: true}

	s.mockOrderRepo.EXPECT().FindByIDForUpdate(gomock.Any(), order.ID, payerID).Return(&order, nil)

	_, err := s.paymentService.Settle(s.T().Context(), payerID, SettleArgs{OrderID: order.ID})
	s.Require().ErrorIs(err, domain.ErrOrderAlreadyPaid)
}

func (s *PaymentServiceTestSuite) TestSettleOrderNotFound() {
	s.mockOrderRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(99), int64(10)).
		Return(nil, domain.ErrRecordNotFound)

	_, err := s.paymentService.Settle(s.T().Context(), 10, SettleArgs{OrderID: 99})
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *PaymentServiceTestSuite) TestSettleNotEnoughBalance() {
	const payerID int64 = 10
	price := decimal.NewFromInt(300)

	order := domain.Order{ID: 1, UserID: payerID, OrderDetailsID: 2}
	details := domain.OrderDetails{ID: 2, ProductID: 3, Price: price, Quantity: 1}
	poor := domain.Account{ID: 100, UserID: payerID, Balance: decimal.NewFromInt(299)}

	s.mockOrderRepo.EXPECT().FindByIDForUpdate(gomock.Any(), order.ID, payerID).
		Return(&order, nil).Times(2)
	s.mockOrderRepo.EXPECT().FindDetailsByID(gomock.Any(), order.OrderDetailsID).
		Return(&details, nil).Times(2)

	// Без номера: ни у одного счета не хватает баланса.
	s.mockAccountRepo.EXPECT().GetByUserIDForUpdate(gomock.Any(), payerID).
		Return([]domain.Account{poor}, nil)

	_, err := s.paymentService.Settle(s.T().Context(), payerID, SettleArgs{OrderID: order.ID})
	s.Require().ErrorIs(err, domain.ErrNotEnoughBalance)

	// С номером: у указанного счета не хватает баланса.
	s.mockAccountRepo.EXPECT().FindByNumberForUpdate(gomock.Any(), "acc-1", payerID).
		Return(&poor, nil)

	_, err = s.paymentService.Settle(s.T().Context(), payerID, SettleArgs{
		OrderID:       order.ID,
		AccountNumber: "acc-1",
	})
	s.Require().ErrorIs(err, domain.ErrNotEnoughBalance)
}

func (s *PaymentServiceTestSuite) TestSettleNoFundingAccount() {
	const payerID int64 = 10
	order := domain.Order{ID: 1, UserID: payerID, OrderDetailsID: 2}
	details := domain.OrderDetails{ID: 2, ProductID: 3, Price: decimal.NewFromInt(10), Quantity: 1}

	s.mockOrderRepo.EXPECT().FindByIDForUpdate(gomock.Any(), order.ID, payerID).
		Return(&order, nil).Times(2)
	s.mockOrderRepo.EXPECT().FindDetailsByID(gomock.Any(), order.OrderDetailsID).
		Return(&details, nil).Times(2)

	// У плательщика нет ни одного счета.
	s.mockAccountRepo.EXPECT().GetByUserIDForUpdate(gomock.Any(), payerID).
		Return(nil, nil).Times(2)

	_, err := s.paymentService.Settle(s.T().Context(), payerID, SettleArgs{OrderID: order.ID})
	s.Require().ErrorIs(err, domain.ErrNoFundingAccount)

	// Несуществующий номер уходит в перебор, но перебирать нечего.
	s.mockAccountRepo.EXPECT().FindByNumberForUpdate(gomock.Any(), "missing", payerID).
		Return(nil, domain.ErrRecordNotFound)

	_, err = s.paymentService.Settle(s.T().Context(), payerID, SettleArgs{
		OrderID:       order.ID,
		AccountNumber: "missing",
	})
	s.Require().ErrorIs(err, domain.ErrNoFundingAccount)
}

func (s *PaymentServiceTestSuite) TestSettleUnknownAccountNumberFallsBackToScan() {
	const payerID int64 = 10
	price := decimal.NewFromInt(40)

	order := domain.Order{ID: 1, UserID: payerID, OrderDetailsID: 2}
	details := domain.OrderDetails{ID: 2, ProductID: 3, Price: price, Quantity: 1}
	product := domain.Product{ID: 3, UserID: 20}
	funding := domain.Account{ID: 100, UserID: payerID, Balance: decimal.NewFromInt(100)}
	receiving := domain.Account{ID: 200, UserID: 20}

	s.mockOrderRepo.EXPECT().FindByIDForUpdate(gomock.Any(), order.ID, payerID).Return(&order, nil)
	s.mockOrderRepo.EXPECT().FindDetailsByID(gomock.Any(), order.OrderDetailsID).Return(&details, nil)

	// Указанный номер не принадлежит плательщику: списание идет с первого
	// подходящего счета.
	s.mockAccountRepo.EXPECT().FindByNumberForUpdate(gomock.Any(), "foreign", payerID).
		Return(nil, domain.ErrRecordNotFound)
	s.mockAccountRepo.EXPECT().GetByUserIDForUpdate(gomock.Any(), payerID).
		Return([]domain.Account{funding}, nil)

	s.mockAccountRepo.EXPECT().AddBalance(gomock.Any(), funding.ID, price.Neg()).Return(&funding, nil)
	s.mockProductRepo.EXPECT().FindAnyByID(gomock.Any(), details.ProductID).Return(&product, nil)
	s.mockAccountRepo.EXPECT().FirstByUserIDForUpdate(gomock.Any(), product.UserID).Return(&receiving, nil)
	s.mockAccountRepo.EXPECT().AddBalance(gomock.Any(), receiving.ID, price).Return(&receiving, nil)
	s.mockOrderRepo.EXPECT().MarkPaid(gomock.Any(), order.ID).Return(&order, nil)

	s.mockPaymentRepo.EXPECT().
		Create(gomock.Any(), repoargs.CreatePayment{
			OrderDetailsID: details.ID,
			AccountID:      funding.ID,
			UserID:         payerID,
			Quantity:       details.Quantity,
			Price:          details.Price,
		}).
		Return(&domain.Payment{ID: 7, AccountID: funding.ID, UserID: payerID, Price: price}, nil)
	s.mockPublisher.EXPECT().PublishSettlement(gomock.Any(), gomock.Any()).Return(nil)

	payment, err := s.paymentService.Settle(s.T().Context(), payerID, SettleArgs{
		OrderID:       order.ID,
		AccountNumber: "foreign",
	})
	s.Require().NoError(err)
	s.Require().NotNil(payment)
	s.Equal(funding.ID, payment.AccountID)
}

func (s *PaymentServiceTestSuite) TestSettlePublisherFailureDoesNotFail() {
	const payerID int64 = 10
	price := decimal.NewFromInt(20)

	order := domain.Order{ID: 1, UserID: payerID, OrderDetailsID: 2}
	details := domain.OrderDetails{ID: 2, ProductID: 3, Price: price, Quantity: 1}
	product := domain.Product{ID: 3, UserID: 20}
	funding := domain.Account{ID: 100, UserID: payerID, Balance: decimal.NewFromInt(100)}
	receiving := domain.Account{ID: 200, UserID: 20}

	s.mockOrderRepo.EXPECT().FindByIDForUpdate(gomock.Any(), order.ID, payerID).Return(&order, nil)
	s.mockOrderRepo.EXPECT().FindDetailsByID(gomock.Any(), order.OrderDetailsID).Return(&details, nil)
	s.mockAccountRepo.EXPECT().GetByUserIDForUpdate(gomock.Any(), payerID).
		Return([]domain.Account{funding}, nil)
	s.mockAccountRepo.EXPECT().AddBalance(gomock.Any(), funding.ID, price.Neg()).Return(&funding, nil)
	s.mockProductRepo.EXPECT().FindAnyByID(gomock.Any(), details.ProductID).Return(&product, nil)
	s.mockAccountRepo.EXPECT().FirstByUserIDForUpdate(gomock.Any(), product.UserID).Return(&receiving, nil)
	s.mockAccountRepo.EXPECT().AddBalance(gomock.Any(), receiving.ID, price).Return(&receiving, nil)
	s.mockOrderRepo.EXPECT().MarkPaid(gomock.Any(), order.ID).Return(&order, nil)
	s.mockPaymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Payment{ID: 7}, nil)

	s.mockPublisher.EXPECT().PublishSettlement(gomock.Any(), gomock.Any()).
		Return(context.DeadlineExceeded)

	payment, err := s.paymentService.Settle(s.T().Context(), payerID, SettleArgs{OrderID: order.ID})
	s.Require().NoError(err)
	s.NotNil(payment)
}
