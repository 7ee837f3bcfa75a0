package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

// MaxBalanceFill максимальная сумма одного пополнения счета.
var MaxBalanceFill = decimal.NewFromInt(10000)

type AccountService struct {
	uow         uow.UOW
	accountRepo AccountRepository
}

func NewAccountService(u uow.UOW) (*AccountService, error) {
	accountRepo, err := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if err != nil {
		return nil, err
	}
	return &AccountService{
		uow:         u,
		accountRepo: accountRepo,
	}, nil
}

// Create открывает юзеру новый счет с нулевым балансом. Номер счета
// генерируется сервисом, клиент его не задает.
func (s *AccountService) Create(ctx context.Context, userID int64) (*domain.Account, error) {
	account, err := s.accountRepo.Create(ctx, repoargs.CreateAccount{
		UserID:        userID,
		AccountNumber: uuid.NewString(),
		Balance:       decimal.Zero,
	})
	if err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}
	return account, nil
}

func (s *AccountService) GetByUserID(ctx context.Context, userID int64) ([]domain.Account, error) {
	accounts, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return accounts, nil
}

func (s *AccountService) FindByID(ctx context.Context, id, userID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return account, nil
}

// TopUp пополняет счет юзера. Сумма должна быть положительной и не превышать
// MaxBalanceFill за одну операцию.
func (s *AccountService) TopUp(ctx context.Context, id, userID int64, amount decimal.Decimal) (*domain.Account, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("topping up account %d: %w", id, domain.ErrValidation)
	}
	if amount.GreaterThan(MaxBalanceFill) {
		return nil, fmt.Errorf("topping up account %d: %w", id, domain.ErrBalanceFillTooLarge)
	}

	var account *domain.Account
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accountRepo, repoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		if _, findErr := accountRepo.FindByID(c, id, userID); findErr != nil {
			return findErr //nolint:wrapcheck
		}

		var addErr error
		account, addErr = accountRepo.AddBalance(c, id, amount)
		if addErr != nil {
			return addErr //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("topping up account %d: %w", id, txErr)
	}
	return account, nil
}

// Delete скрывает счет. Баланс при этом не обнуляется, счет перестает
// участвовать в выдаче и в подборе счета для оплаты.
func (s *AccountService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.accountRepo.SoftDelete(ctx, id, userID); err != nil {
		return err //nolint:wrapcheck
	}
	return nil
}
