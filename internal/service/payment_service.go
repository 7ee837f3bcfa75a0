package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type PaymentService struct {
	uow         uow.UOW
	paymentRepo PaymentRepository
	publisher   SettlementPublisher
	logger      *logrus.Entry
}

func NewPaymentService(u uow.UOW, publisher SettlementPublisher, l *logrus.Logger) (*PaymentService, error) {
	paymentRepo, err := uow.GetRepositoryAs[PaymentRepository](u, uow.RepositoryName(repoargs.PaymentRepoName))
	if err != nil {
		return nil, err
	}
	return &PaymentService{
		uow:         u,
		paymentRepo: paymentRepo,
		publisher:   publisher,
		logger:      l.WithField("service", "payment"),
	}, nil
}

type SettleArgs struct {
	OrderID int64
	// AccountNumber номер счета списания. Пустая строка, чужой или
	// несуществующий номер означают автоматический подбор: первый по id счет
	// с достаточным балансом.
	AccountNumber string
}

// Settle проводит оплату заказа. Вся операция выполняется в одной транзакции
// с блокировкой заказа и затронутых счетов, сумма списания равна сумме
// зачисления.
//
// Алгоритм:
//  1. Заказ плательщика блокируется; оплаченный заказ дает
//     domain.ErrOrderAlreadyPaid.
//  2. Выбирается счет списания: по номеру, если он указывает на счет
//     плательщика, иначе первый по id счет с балансом не меньше цены позиции.
//  3. Со счета списания снимается цена позиции.
//  4. Выбирается счет зачисления: счет товара по умолчанию, иначе первый счет
//     владельца товара.
//  5. На счет зачисления зачисляется та же сумма.
//  6. Заказ помечается оплаченным, создается запись о платеже.
//
// После фиксации транзакции событие о платеже публикуется во внешнюю шину;
// недоступность шины оплату не откатывает.
func (s *PaymentService) Settle(ctx context.Context, userID int64, args SettleArgs) (*domain.Payment, error) {
	var payment *domain.Payment
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}
		accountRepo, accountRepoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
		if accountRepoErr != nil {
			return accountRepoErr //nolint:wrapcheck
		}

		order, orderErr := orderRepo.FindByIDForUpdate(c, args.OrderID, userID)
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

		funding, fundingErr := s.pickFundingAccount(c, accountRepo, userID, args.AccountNumber, details)
		if fundingErr != nil {
			return fundingErr
		}

		if _, debitErr := accountRepo.AddBalance(c, funding.ID, details.Price.Neg()); debitErr != nil {
			return debitErr //nolint:wrapcheck
		}

		receiving, receivingErr := s.pickReceivingAccount(c, tx, accountRepo, details.ProductID)
		if receivingErr != nil {
			return receivingErr
		}

		if _, creditErr := accountRepo.AddBalance(c, receiving.ID, details.Price); creditErr != nil {
			return creditErr //nolint:wrapcheck
		}

		if _, paidErr := orderRepo.MarkPaid(c, order.ID); paidErr != nil {
			return paidErr //nolint:wrapcheck
		}

		paymentRepo, paymentRepoErr := uow.GetAs[PaymentRepository](tx, uow.RepositoryName(repoargs.PaymentRepoName))
		if paymentRepoErr != nil {
			return paymentRepoErr //nolint:wrapcheck
		}
		var createErr error
		payment, createErr = paymentRepo.Create(c, repoargs.CreatePayment{
			OrderDetailsID: details.ID,
			AccountID:      funding.ID,
			UserID:         userID,
			Quantity:       details.Quantity,
			Price:          details.Price,
		})
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("settling order %d: %w", args.OrderID, txErr)
	}

	if s.publisher != nil {
		if pubErr := s.publisher.PublishSettlement(ctx, payment); pubErr != nil {
			s.logger.WithError(pubErr).WithField("paymentID", payment.ID).
				Warn("settlement event not published")
		}
	}
	return payment, nil
}

// pickFundingAccount выбирает счет списания. Номер, указывающий на счет
// плательщика, используется напрямую. Чужой или несуществующий номер не
// ошибка: выбор продолжается перебором счетов плательщика, берется первый
// по id счет с балансом не меньше цены.
func (s *PaymentService) pickFundingAccount(
	ctx context.Context,
	accountRepo AccountRepository,
	userID int64,
	accountNumber string,
	details *domain.OrderDetails,
) (*domain.Account, error) {
	if accountNumber != "" {
		account, err := accountRepo.FindByNumberForUpdate(ctx, accountNumber, userID)
		switch {
		case err == nil:
			if account.Balance.LessThan(details.Price) {
				return nil, domain.ErrNotEnoughBalance
			}
			return account, nil
		case !errors.Is(err, domain.ErrRecordNotFound):
			return nil, err //nolint:wrapcheck
		}
	}

	accounts, err := accountRepo.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if len(accounts) == 0 {
		return nil, domain.ErrNoFundingAccount
	}
	for i := range accounts {
		if !accounts[i].Balance.LessThan(details.Price) {
			return &accounts[i], nil
		}
	}
	return nil, domain.ErrNotEnoughBalance
}

// pickReceivingAccount выбирает счет зачисления: счет товара по умолчанию,
// иначе первый счет владельца товара.
func (s *PaymentService) pickReceivingAccount(
	ctx context.Context,
	tx uow.TX,
	accountRepo AccountRepository,
	productID int64,
) (*domain.Account, error) {
	productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
	if productRepoErr != nil {
		return nil, productRepoErr //nolint:wrapcheck
	}
	product, productErr := productRepo.FindAnyByID(ctx, productID)
	if productErr != nil {
		return nil, productErr //nolint:wrapcheck
	}

	if product.DefaultAccountID != nil {
		account, err := accountRepo.FindByIDForUpdate(ctx, *product.DefaultAccountID)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		return account, nil
	}

	account, err := accountRepo.FirstByUserIDForUpdate(ctx, product.UserID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return account, nil
}

func (s *PaymentService) GetByUserID(ctx context.Context, userID int64) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return payments, nil
}

func (s *PaymentService) FindByID(ctx context.Context, id, userID int64) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return payment, nil
}

// Delete скрывает платеж из истории юзера. Сам платеж и движение средств
// остаются неизменными.
func (s *PaymentService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.paymentRepo.SoftDelete(ctx, id, userID); err != nil {
		return err //nolint:wrapcheck
	}
	return nil
}
