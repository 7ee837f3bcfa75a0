package pgrepo

import (
	"context"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type PaymentRepository struct {
	db uow.DBTX
}

func NewPaymentRepository(db uow.DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, created_at, updated_at, order_details_id, account_id, user_id, quantity, price, status`

// Create создает запись о платеже. Сама запись иммутабельна: после создания
// меняется только статус (скрытие из выдачи).
func (p *PaymentRepository) Create(ctx context.Context, args repoargs.CreatePayment) (*domain.Payment, error) {
	row := p.db.QueryRow(ctx, `
		INSERT INTO payments (order_details_id, account_id, user_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+paymentColumns,
		args.OrderDetailsID, args.AccountID, args.UserID, args.Quantity, args.Price)

	payment, err := scanPayment(row)
	if err != nil {
		return nil, convertErr(err, "creating payment for userID %d", args.UserID)
	}
	return payment, nil
}

func (p *PaymentRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Payment, error) {
	rows, err := p.db.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC`, userID, domain.RecordStatusActive)
	if err != nil {
		return nil, convertErr(err, "getting payments by userID %d", userID)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		payment, scanErr := scanPayment(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning payment for userID %d", userID)
		}
		payments = append(payments, *payment)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "collecting payments for userID %d", userID)
	}
	return payments, nil
}

func (p *PaymentRepository) FindByID(ctx context.Context, id, userID int64) (*domain.Payment, error) {
	row := p.db.QueryRow(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE id = $1 AND user_id = $2 AND status = $3`,
		id, userID, domain.RecordStatusActive)

	payment, err := scanPayment(row)
	if err != nil {
		return nil, convertErr(err, "finding payment %d for userID %d", id, userID)
	}
	return payment, nil
}

// SoftDelete скрывает платеж из выдачи пользователя. Историческая запись в
// таблице остается.
func (p *PaymentRepository) SoftDelete(ctx context.Context, id, userID int64) error {
	tag, err := p.db.Exec(ctx, `
		UPDATE payments
		SET status = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND status = $4`,
		id, userID, domain.RecordStatusDeleted, domain.RecordStatusActive)
	if err != nil {
		return convertErr(err, "deleting payment %d for userID %d", id, userID)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "deleting payment %d for userID %d", id, userID)
	}
	return nil
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var payment domain.Payment
	err := row.Scan(
		&payment.ID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
		&payment.OrderDetailsID,
		&payment.AccountID,
		&payment.UserID,
		&payment.Quantity,
		&payment.Price,
		&payment.Status,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
