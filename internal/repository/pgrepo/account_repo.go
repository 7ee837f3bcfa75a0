package pgrepo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type AccountRepository struct {
	db uow.DBTX
}

func NewAccountRepository(db uow.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, created_at, updated_at, user_id, account_number, balance, status`

func (a *AccountRepository) Create(ctx context.Context, args repoargs.CreateAccount) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, `
		INSERT INTO accounts (user_id, account_number, balance)
		VALUES ($1, $2, $3)
		RETURNING `+accountColumns,
		args.UserID, args.AccountNumber, args.Balance)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "creating account with number `%s`", args.AccountNumber)
	}
	return account, nil
}

// GetByUserID возвращает активные счета юзера, отсортированные по id по возрастанию.
func (a *AccountRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Account, error) {
	rows, err := a.db.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE user_id = $1 AND status = $2
		ORDER BY id ASC`, userID, domain.RecordStatusActive)
	if err != nil {
		return nil, convertErr(err, "getting accounts by userID %d", userID)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning account for userID %d", userID)
		}
		accounts = append(accounts, *account)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting accounts by userID %d", userID)
	}
	return accounts, nil
}

// GetByUserIDForUpdate то же, что GetByUserID, но строки блокируются до конца
// транзакции. Порядок по id фиксирует детерминированный выбор счета списания.
func (a *AccountRepository) GetByUserIDForUpdate(ctx context.Context, userID int64) ([]domain.Account, error) {
	rows, err := a.db.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE user_id = $1 AND status = $2
		ORDER BY id ASC
		FOR UPDATE`, userID, domain.RecordStatusActive)
	if err != nil {
		return nil, convertErr(err, "locking accounts by userID %d", userID)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning locked account for userID %d", userID)
		}
		accounts = append(accounts, *account)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "locking accounts by userID %d", userID)
	}
	return accounts, nil
}

func (a *AccountRepository) FindByID(ctx context.Context, id, userID int64) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE id = $1 AND user_id = $2 AND status = $3`, id, userID, domain.RecordStatusActive)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "finding account %d for userID %d", id, userID)
	}
	return account, nil
}

func (a *AccountRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE id = $1 AND status = $2
		FOR UPDATE`, id, domain.RecordStatusActive)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "locking account %d", id)
	}
	return account, nil
}

// FindByNumberForUpdate ищет активный счет юзера по номеру и блокирует строку
// до конца транзакции.
func (a *AccountRepository) FindByNumberForUpdate(ctx context.Context, accountNumber string, userID int64) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE account_number = $1 AND user_id = $2 AND status = $3
		FOR UPDATE`, accountNumber, userID, domain.RecordStatusActive)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "locking account by number `%s`", accountNumber)
	}
	return account, nil
}

// FirstByUserIDForUpdate возвращает первый по id активный счет юзера с блокировкой
// строки. Используется при выборе счета зачисления, когда у товара не задан
// счет по умолчанию.
func (a *AccountRepository) FirstByUserIDForUpdate(ctx context.Context, userID int64) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE user_id = $1 AND status = $2
		ORDER BY id ASC
		LIMIT 1
		FOR UPDATE`, userID, domain.RecordStatusActive)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "locking first account of userID %d", userID)
	}
	return account, nil
}

// AddBalance атомарно изменяет баланс счета на amount (отрицательный amount -
// списание). Ограничение balance >= 0 в схеме не позволит уйти в минус.
func (a *AccountRepository) AddBalance(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, `
		UPDATE accounts
		SET balance = balance + $2, updated_at = now()
		WHERE id = $1 AND status = $3
		RETURNING `+accountColumns,
		id, amount, domain.RecordStatusActive)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "changing balance of account %d by %s", id, amount.String())
	}
	return account, nil
}

func (a *AccountRepository) SoftDelete(ctx context.Context, id, userID int64) error {
	tag, err := a.db.Exec(ctx, `
		UPDATE accounts
		SET status = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND status = $4`,
		id, userID, domain.RecordStatusDeleted, domain.RecordStatusActive)
	if err != nil {
		return convertErr(err, "deleting account %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "deleting account %d", id)
	}
	return nil
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.UserID,
		&account.AccountNumber,
		&account.Balance,
		&account.Status,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
