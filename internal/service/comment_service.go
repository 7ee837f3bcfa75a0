package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type CommentService struct {
	uow         uow.UOW
	commentRepo CommentRepository
	productRepo ProductRepository
}

func NewCommentService(u uow.UOW) (*CommentService, error) {
	commentRepo, commentRepoErr := uow.GetRepositoryAs[CommentRepository](u, uow.RepositoryName(repoargs.CommentRepoName))
	if commentRepoErr != nil {
		return nil, commentRepoErr
	}
	productRepo, productRepoErr := uow.GetRepositoryAs[ProductRepository](u, uow.RepositoryName(repoargs.ProductRepoName))
	if productRepoErr != nil {
		return nil, productRepoErr
	}
	return &CommentService{
		uow:         u,
		commentRepo: commentRepo,
		productRepo: productRepo,
	}, nil
}

type CreateCommentArgs struct {
	ProductID int64
	ParentID  *int64
	Text      string
}

// Create добавляет комментарий к товару. Родительский комментарий, если
// указан, обязан существовать и относиться к тому же товару.
func (s *CommentService) Create(ctx context.Context, userID int64, args CreateCommentArgs) (*domain.Comment, error) {
	var comment *domain.Comment
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}
		if _, productErr := productRepo.FindByID(c, args.ProductID); productErr != nil {
			return productErr //nolint:wrapcheck
		}

		commentRepo, commentRepoErr := uow.GetAs[CommentRepository](tx, uow.RepositoryName(repoargs.CommentRepoName))
		if commentRepoErr != nil {
			return commentRepoErr //nolint:wrapcheck
		}

		if args.ParentID != nil {
			parent, parentErr := commentRepo.FindByID(c, *args.ParentID)
			if parentErr != nil && !errors.Is(parentErr, domain.ErrRecordNotFound) {
				return parentErr //nolint:wrapcheck
			}
			if parent == nil || parent.ProductID != args.ProductID {
				return &domain.ParentCommentError{
					ParentID:  *args.ParentID,
					ProductID: args.ProductID,
				}
			}
		}

		var createErr error
		comment, createErr = commentRepo.Create(c, repoargs.CreateComment{
			UserID:    userID,
			ProductID: args.ProductID,
			ParentID:  args.ParentID,
			Text:      args.Text,
		})
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("creating comment: %w", txErr)
	}
	return comment, nil
}

// ForestByProduct возвращает комментарии товара в виде леса: корневые
// комментарии в порядке создания, ответы вложены в родителей.
func (s *CommentService) ForestByProduct(ctx context.Context, productID int64) ([]domain.CommentNode, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err //nolint:wrapcheck
	}
	comments, err := s.commentRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return domain.BuildCommentTree(comments), nil
}

// DeleteCascade удаляет комментарий автора вместе со всеми ответами любых
// авторов, на любой глубине.
func (s *CommentService) DeleteCascade(ctx context.Context, commentID, userID int64) error {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		commentRepo, commentRepoErr := uow.GetAs[CommentRepository](tx, uow.RepositoryName(repoargs.CommentRepoName))
		if commentRepoErr != nil {
			return commentRepoErr //nolint:wrapcheck
		}

		comment, findErr := commentRepo.FindByID(c, commentID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if comment.UserID != userID {
			return domain.ErrPermissionDenied
		}

		comments, listErr := commentRepo.GetByProductID(c, comment.ProductID)
		if listErr != nil {
			return listErr //nolint:wrapcheck
		}

		ids := domain.CommentSubtreeIDs(commentID, comments)
		return commentRepo.DeleteByIDs(c, ids) //nolint:wrapcheck
	})
	if txErr != nil {
		return fmt.Errorf("deleting comment %d: %w", commentID, txErr)
	}
	return nil
}
