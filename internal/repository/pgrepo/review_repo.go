package pgrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type ReviewRepository struct {
	db uow.DBTX
}

func NewReviewRepository(db uow.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, created_at, updated_at, user_id, product_id, title, content, rating, status`

func (r *ReviewRepository) Create(ctx context.Context, args repoargs.CreateReview) (*domain.Review, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO reviews (user_id, product_id, title, content, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+reviewColumns,
		args.UserID, args.ProductID, args.Title, args.Content, args.Rating)

	review, err := scanReview(row)
	if err != nil {
		return nil, convertErr(err, "creating review for productID %d", args.ProductID)
	}
	return review, nil
}

func (r *ReviewRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC`, userID, domain.RecordStatusActive)
	if err != nil {
		return nil, convertErr(err, "getting reviews by userID %d", userID)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		review, scanErr := scanReview(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning review for userID %d", userID)
		}
		reviews = append(reviews, *review)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "collecting reviews for userID %d", userID)
	}
	return reviews, nil
}

func (r *ReviewRepository) GetByProductID(ctx context.Context, productID int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE product_id = $1 AND status = $2
		ORDER BY created_at DESC`, productID, domain.RecordStatusActive)
	if err != nil {
		return nil, convertErr(err, "getting reviews by productID %d", productID)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		review, scanErr := scanReview(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning review for productID %d", productID)
		}
		reviews = append(reviews, *review)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "collecting reviews for productID %d", productID)
	}
	return reviews, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id int64) (*domain.Review, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE id = $1 AND status = $2`, id, domain.RecordStatusActive)

	review, err := scanReview(row)
	if err != nil {
		return nil, convertErr(err, "finding review %d", id)
	}
	return review, nil
}

// Update обновляет только заполненные поля. Пустой args — это ошибка
// вызывающей стороны.
func (r *ReviewRepository) Update(ctx context.Context, id, userID int64, args repoargs.UpdateReview) (*domain.Review, error) {
	sets := make([]string, 0, 4)
	sqlArgs := []any{id, userID, domain.RecordStatusActive}

	appendSet := func(column string, value any) {
		sqlArgs = append(sqlArgs, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(sqlArgs)))
	}

	if args.Title != nil {
		appendSet("title", *args.Title)
	}
	if args.Content != nil {
		appendSet("content", *args.Content)
	}
	if args.Rating != nil {
		appendSet("rating", *args.Rating)
	}
	sets = append(sets, "updated_at = now()")

	row := r.db.QueryRow(ctx, `
		UPDATE reviews SET `+strings.Join(sets, ", ")+`
		WHERE id = $1 AND user_id = $2 AND status = $3
		RETURNING `+reviewColumns, sqlArgs...)

	review, err := scanReview(row)
	if err != nil {
		return nil, convertErr(err, "updating review %d", id)
	}
	return review, nil
}

func (r *ReviewRepository) SoftDelete(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reviews
		SET status = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND status = $4`,
		id, userID, domain.RecordStatusDeleted, domain.RecordStatusActive)
	if err != nil {
		return convertErr(err, "deleting review %d for userID %d", id, userID)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "deleting review %d for userID %d", id, userID)
	}
	return nil
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.UserID,
		&review.ProductID,
		&review.Title,
		&review.Content,
		&review.Rating,
		&review.Status,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}
