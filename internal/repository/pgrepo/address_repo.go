package pgrepo

import (
	"context"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type AddressRepository struct {
	db uow.DBTX
}

func NewAddressRepository(db uow.DBTX) *AddressRepository {
	return &AddressRepository{db: db}
}

const addressColumns = `id, created_at, updated_at, user_id, address, status`

func (a *AddressRepository) Create(ctx context.Context, args repoargs.CreateAddress) (*domain.Address, error) {
	row := a.db.QueryRow(ctx, `
		INSERT INTO addresses (user_id, address)
		VALUES ($1, $2)
		RETURNING `+addressColumns,
		args.UserID, args.Address)

	address, err := scanAddress(row)
	if err != nil {
		return nil, convertErr(err, "creating address for userID %d", args.UserID)
	}
	return address, nil
}

func (a *AddressRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Address, error) {
	rows, err := a.db.Query(ctx, `
		SELECT `+addressColumns+` FROM addresses
		WHERE user_id = $1 AND status = $2
		ORDER BY id ASC`, userID, domain.RecordStatusActive)
	if err != nil {
		return nil, convertErr(err, "getting addresses by userID %d", userID)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		address, scanErr := scanAddress(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning address for userID %d", userID)
		}
		addresses = append(addresses, *address)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "collecting addresses for userID %d", userID)
	}
	return addresses, nil
}

func (a *AddressRepository) FindByID(ctx context.Context, id, userID int64) (*domain.Address, error) {
	row := a.db.QueryRow(ctx, `
		SELECT `+addressColumns+` FROM addresses
		WHERE id = $1 AND user_id = $2 AND status = $3`,
		id, userID, domain.RecordStatusActive)

	address, err := scanAddress(row)
	if err != nil {
		return nil, convertErr(err, "finding address %d for userID %d", id, userID)
	}
	return address, nil
}

func (a *AddressRepository) Update(ctx context.Context, id, userID int64, args repoargs.UpdateAddress) (*domain.Address, error) {
	row := a.db.QueryRow(ctx, `
		UPDATE addresses
		SET address = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND status = $4
		RETURNING `+addressColumns,
		id, userID, args.Address, domain.RecordStatusActive)

	address, err := scanAddress(row)
	if err != nil {
		return nil, convertErr(err, "updating address %d", id)
	}
	return address, nil
}

func (a *AddressRepository) SoftDelete(ctx context.Context, id, userID int64) error {
	tag, err := a.db.Exec(ctx, `
		UPDATE addresses
		SET status = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND status = $4`,
		id, userID, domain.RecordStatusDeleted, domain.RecordStatusActive)
	if err != nil {
		return convertErr(err, "deleting address %d for userID %d", id, userID)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "deleting address %d for userID %d", id, userID)
	}
	return nil
}

func scanAddress(row rowScanner) (*domain.Address, error) {
	var address domain.Address
	err := row.Scan(
		&address.ID,
		&address.CreatedAt,
		&address.UpdatedAt,
		&address.UserID,
		&address.Address,
		&address.Status,
	)
	if err != nil {
		return nil, err
	}
	return &address, nil
}
