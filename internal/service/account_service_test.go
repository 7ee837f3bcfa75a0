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

type AccountServiceTestSuite struct {
	suite.Suite
	mockUOW         *uowmocks.MockUOW
	mockTX          *uowmocks.MockTX
	mockAccountRepo *mocks.MockAccountRepository
	accountService  *AccountService
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockAccountRepo = mocks.NewMockAccountRepository(mockCtrl)

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.AccountRepoName)).
		Return(s.mockAccountRepo, nil).AnyTimes()

	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.AccountRepoName)).
		Return(s.mockAccountRepo, nil).AnyTimes()

	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		},
	).AnyTimes()

	accountService, servErr := NewAccountService(s.mockUOW)
	s.Require().NoError(servErr)
	s.accountService = accountService
}

func (s *AccountServiceTestSuite) TestCreateGeneratesNumber() {
	const userID int64 = 10

	s.mockAccountRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateAccount) (*domain.Account, error) {
			s.Equal(userID, args.UserID)
			s.NotEmpty(args.AccountNumber)
			s.True(args.Balance.IsZero())
			return &domain.Account{ID: 1, UserID: userID, AccountNumber: args.AccountNumber}, nil
		})

	account, err := s.accountService.Create(s.T().Context(), userID)
	s.Require().NoError(err)
	s.NotEmpty(account.AccountNumber)
}

func (s *AccountServiceTestSuite) TestTopUp() {
	const userID int64 = 10
	const accountID int64 = 1
	amount := decimal.NewFromInt(500)

	s.mockAccountRepo.EXPECT().FindByID(gomock.Any(), accountID, userID).
		Return(&domain.Account{ID: accountID, UserID: userID}, nil)
	s.mockAccountRepo.EXPECT().AddBalance(gomock.Any(), accountID, amount).
		Return(&domain.Account{ID: accountID, UserID: userID, Balance: amount}, nil)

	account, err := s.accountService.TopUp(s.T().Context(), accountID, userID, amount)
	s.Require().NoError(err)
	s.True(account.Balance.Equal(amount))
}

func (s *AccountServiceTestSuite) TestTopUpLimits() {
	cases := []struct {
		name    string
		amount  decimal.Decimal
		wantErr error
	}{
		{name: "over limit", amount: MaxBalanceFill.Add(decimal.NewFromInt(1)), wantErr: domain.ErrBalanceFillTooLarge},
		{name: "zero", amount: decimal.Zero, wantErr: domain.ErrValidation},
		{name: "negative", amount: decimal.NewFromInt(-5), wantErr: domain.ErrValidation},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			_, err := s.accountService.TopUp(s.T().Context(), 1, 10, t.amount)
			s.Require().ErrorIs(err, t.wantErr)
		})
	}
}

func (s *AccountServiceTestSuite) TestTopUpForeignAccount() {
	s.mockAccountRepo.EXPECT().FindByID(gomock.Any(), int64(1), int64(10)).
		Return(nil, domain.ErrRecordNotFound)

	_, err := s.accountService.TopUp(s.T().Context(), 1, 10, decimal.NewFromInt(100))
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}
