package pgrepo

import (
	"context"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type FeaturedRepository struct {
	db uow.DBTX
}

func NewFeaturedRepository(db uow.DBTX) *FeaturedRepository {
	return &FeaturedRepository{db: db}
}

const featuredColumns = `id, created_at, user_id, product_id`

func (f *FeaturedRepository) Create(ctx context.Context, userID, productID int64) (*domain.FeaturedProduct, error) {
	row := f.db.QueryRow(ctx, `
		INSERT INTO featured_products (user_id, product_id)
		VALUES ($1, $2)
		RETURNING `+featuredColumns,
		userID, productID)

	featured, err := scanFeatured(row)
	if err != nil {
		return nil, convertErr(err, "creating featured product %d for userID %d", productID, userID)
	}
	return featured, nil
}

func (f *FeaturedRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.FeaturedProduct, error) {
	rows, err := f.db.Query(ctx, `
		SELECT `+featuredColumns+` FROM featured_products
		WHERE user_id = $1
		ORDER BY id ASC`, userID)
	if err != nil {
		return nil, convertErr(err, "getting featured products by userID %d", userID)
	}
	defer rows.Close()

	var featured []domain.FeaturedProduct
	for rows.Next() {
		item, scanErr := scanFeatured(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning featured product for userID %d", userID)
		}
		featured = append(featured, *item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "collecting featured products for userID %d", userID)
	}
	return featured, nil
}

func (f *FeaturedRepository) FindByProductID(ctx context.Context, productID, userID int64) (*domain.FeaturedProduct, error) {
	row := f.db.QueryRow(ctx, `
		SELECT `+featuredColumns+` FROM featured_products
		WHERE product_id = $1 AND user_id = $2`, productID, userID)

	featured, err := scanFeatured(row)
	if err != nil {
		return nil, convertErr(err, "finding featured product %d for userID %d", productID, userID)
	}
	return featured, nil
}

// Delete физически удаляет закладку юзера на товар.
func (f *FeaturedRepository) Delete(ctx context.Context, productID, userID int64) error {
	tag, err := f.db.Exec(ctx, `
		DELETE FROM featured_products
		WHERE product_id = $1 AND user_id = $2`, productID, userID)
	if err != nil {
		return convertErr(err, "deleting featured product %d for userID %d", productID, userID)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "deleting featured product %d for userID %d", productID, userID)
	}
	return nil
}

func scanFeatured(row rowScanner) (*domain.FeaturedProduct, error) {
	var featured domain.FeaturedProduct
	err := row.Scan(
		&featured.ID,
		&featured.CreatedAt,
		&featured.UserID,
		&featured.ProductID,
	)
	if err != nil {
		return nil, err
	}
	return &featured, nil
}
