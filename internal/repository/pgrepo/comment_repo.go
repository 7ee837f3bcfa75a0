package pgrepo

import (
	"context"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type CommentRepository struct {
	db uow.DBTX
}

func NewCommentRepository(db uow.DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `id, created_at, user_id, product_id, parent_id, text`

func (c *CommentRepository) Create(ctx context.Context, args repoargs.CreateComment) (*domain.Comment, error) {
	row := c.db.QueryRow(ctx, `
		INSERT INTO comments (user_id, product_id, parent_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING `+commentColumns,
		args.UserID, args.ProductID, args.ParentID, args.Text)

	comment, err := scanComment(row)
	if err != nil {
		return nil, convertErr(err, "creating comment for productID %d", args.ProductID)
	}
	return comment, nil
}

// GetByProductID возвращает все комментарии товара в порядке создания
// (id ASC). Порядок важен: на нем строится дерево ответов.
func (c *CommentRepository) GetByProductID(ctx context.Context, productID int64) ([]domain.Comment, error) {
	rows, err := c.db.Query(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE product_id = $1
		ORDER BY id ASC`, productID)
	if err != nil {
		return nil, convertErr(err, "getting comments by productID %d", productID)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		comment, scanErr := scanComment(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning comment for productID %d", productID)
		}
		comments = append(comments, *comment)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "collecting comments for productID %d", productID)
	}
	return comments, nil
}

func (c *CommentRepository) FindByID(ctx context.Context, id int64) (*domain.Comment, error) {
	row := c.db.QueryRow(ctx, `
		SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)

	comment, err := scanComment(row)
	if err != nil {
		return nil, convertErr(err, "finding comment %d", id)
	}
	return comment, nil
}

// DeleteByIDs физически удаляет комментарии. Используется для каскадного
// удаления ветки вместе с ответами.
func (c *CommentRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := c.db.Exec(ctx, `DELETE FROM comments WHERE id = ANY($1)`, ids)
	if err != nil {
		return convertErr(err, "deleting comments %v", ids)
	}
	return nil
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var comment domain.Comment
	err := row.Scan(
		&comment.ID,
		&comment.CreatedAt,
		&comment.UserID,
		&comment.ProductID,
		&comment.ParentID,
		&comment.Text,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
