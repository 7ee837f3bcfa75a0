package pgrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type ProductRepository struct {
	db uow.DBTX
}

func NewProductRepository(db uow.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, created_at, updated_at, user_id, category, title, description,
	price, amount, views, default_account_id, status`

func (p *ProductRepository) Create(ctx context.Context, args repoargs.CreateProduct) (*domain.Product, error) {
	row := p.db.QueryRow(ctx, `
		INSERT INTO products (user_id, category, title, description, price, amount, default_account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		args.UserID, args.Category, args.Title, args.Description, args.Price, args.Amount, args.DefaultAccountID)

	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "creating product `%s`", args.Title)
	}
	return product, nil
}

func (p *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := p.db.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE id = $1 AND status = $2`, id, domain.RecordStatusActive)

	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "finding product %d", id)
	}
	return product, nil
}

// FindAnyByID возвращает товар независимо от статуса. Нужен при оплате:
// распроданный товар скрыт из каталога, но заказ на него оплатить можно.
func (p *ProductRepository) FindAnyByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := p.db.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "finding product %d", id)
	}
	return product, nil
}

// FindByIDForUpdate блокирует строку товара до конца транзакции. Используется
// при списании остатков и при оплате заказа.
func (p *ProductRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	row := p.db.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE id = $1 AND status = $2
		FOR UPDATE`, id, domain.RecordStatusActive)

	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "locking product %d", id)
	}
	return product, nil
}

// List возвращает активные товары. Поддерживает поиск по подстроке в названии
// или описании и фильтр по владельцу. Порядок по id по возрастанию.
func (p *ProductRepository) List(ctx context.Context, filter repoargs.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE status = $1`
	args := []any{domain.RecordStatusActive}

	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		query += fmt.Sprintf(" AND (lower(title) LIKE $%d OR lower(description) LIKE $%d)", len(args), len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	query += " ORDER BY id ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, "listing products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning product")
		}
		products = append(products, *product)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing products")
	}
	return products, nil
}

func (p *ProductRepository) Update(ctx context.Context, id int64, args repoargs.UpdateProduct) (*domain.Product, error) {
	sets := []string{"updated_at = now()"}
	queryArgs := []any{id, domain.RecordStatusActive}

	appendSet := func(column string, value any) {
		queryArgs = append(queryArgs, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(queryArgs)))
	}

	if args.Category != nil {
		appendSet("category", *args.Category)
	}
	if args.Title != nil {
		appendSet("title", *args.Title)
	}
	if args.Description != nil {
		appendSet("description", *args.Description)
	}
	if args.Price != nil {
		appendSet("price", *args.Price)
	}
	if args.Amount != nil {
		appendSet("amount", *args.Amount)
	}
	if args.DefaultAccountID != nil {
		appendSet("default_account_id", *args.DefaultAccountID)
	}

	query := fmt.Sprintf(`
		UPDATE products SET %s
		WHERE id = $1 AND status = $2
		RETURNING `+productColumns, strings.Join(sets, ", "))

	row := p.db.QueryRow(ctx, query, queryArgs...)
	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "updating product %d", id)
	}
	return product, nil
}

// DecrementStock списывает amount единиц товара. Товар с нулевым остатком
// помечается удаленным (поведение витрины: распроданный товар скрывается).
// Если остатка не хватает, запрос не затронет строку и вернется
// domain.ErrRecordNotFound - вызывающая сторона решает, нехватка это или
// отсутствие товара.
func (p *ProductRepository) DecrementStock(ctx context.Context, id, amount int64) (*domain.Product, error) {
	row := p.db.QueryRow(ctx, `
		UPDATE products
		SET amount = amount - $2,
			status = CASE WHEN amount - $2 <= 0 THEN $3::text ELSE status END,
			updated_at = now()
		WHERE id = $1 AND status = $4 AND amount >= $2
		RETURNING `+productColumns,
		id, amount, domain.RecordStatusDeleted, domain.RecordStatusActive)

	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "decrementing stock of product %d by %d", id, amount)
	}
	return product, nil
}

// RestoreStock возвращает amount единиц на остаток. Товар, скрытый из-за
// нулевого остатка, снова становится активным. Товар, скрытый владельцем при
// ненулевом остатке, остается скрытым.
func (p *ProductRepository) RestoreStock(ctx context.Context, id, amount int64) (*domain.Product, error) {
	row := p.db.QueryRow(ctx, `
		UPDATE products
		SET amount = amount + $2,
			status = CASE WHEN amount = 0 THEN $3::text ELSE status END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		id, amount, domain.RecordStatusActive)

	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "restoring stock of product %d by %d", id, amount)
	}
	return product, nil
}

func (p *ProductRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := p.db.Exec(ctx, `
		UPDATE products SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "incrementing views of product %d", id)
	}
	return nil
}

func (p *ProductRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `
		UPDATE products
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`,
		id, domain.RecordStatusDeleted, domain.RecordStatusActive)
	if err != nil {
		return convertErr(err, "deleting product %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "deleting product %d", id)
	}
	return nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	err := row.Scan(
		&product.ID,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.UserID,
		&product.Category,
		&product.Title,
		&product.Description,
		&product.Price,
		&product.Amount,
		&product.Views,
		&product.DefaultAccountID,
		&product.Status,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
