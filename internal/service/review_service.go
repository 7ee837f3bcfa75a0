package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type ReviewService struct {
	uow         uow.UOW
	reviewRepo  ReviewRepository
	productRepo ProductRepository
}

func NewReviewService(u uow.UOW) (*ReviewService, error) {
	reviewRepo, reviewRepoErr := uow.GetRepositoryAs[ReviewRepository](u, uow.RepositoryName(repoargs.ReviewRepoName))
	if reviewRepoErr != nil {
		return nil, reviewRepoErr
	}
	productRepo, productRepoErr := uow.GetRepositoryAs[ProductRepository](u, uow.RepositoryName(repoargs.ProductRepoName))
	if productRepoErr != nil {
		return nil, productRepoErr
	}
	return &ReviewService{
		uow:         u,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}, nil
}

type CreateReviewArgs struct {
	ProductID int64
	Title     string
	Content   string
	Rating    int32
}

// Create добавляет отзыв с оценкой от 1 до 5 на существующий товар.
func (s *ReviewService) Create(ctx context.Context, userID int64, args CreateReviewArgs) (*domain.Review, error) {
	if args.Rating < domain.ReviewMinRating || args.Rating > domain.ReviewMaxRating {
		return nil, fmt.Errorf("creating review: %w", domain.ErrValidation)
	}

	var review *domain.Review
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}
		if _, productErr := productRepo.FindByID(c, args.ProductID); productErr != nil {
			return productErr //nolint:wrapcheck
		}

		reviewRepo, reviewRepoErr := uow.GetAs[ReviewRepository](tx, uow.RepositoryName(repoargs.ReviewRepoName))
		if reviewRepoErr != nil {
			return reviewRepoErr //nolint:wrapcheck
		}
		var createErr error
		review, createErr = reviewRepo.Create(c, repoargs.CreateReview{
			UserID:    userID,
			ProductID: args.ProductID,
			Title:     args.Title,
			Content:   args.Content,
			Rating:    args.Rating,
		})
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("creating review: %w", txErr)
	}
	return review, nil
}

func (s *ReviewService) GetByProductID(ctx context.Context, productID int64) ([]domain.Review, error) {
	reviews, err := s.reviewRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return reviews, nil
}

func (s *ReviewService) GetByUserID(ctx context.Context, userID int64) ([]domain.Review, error) {
	reviews, err := s.reviewRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return reviews, nil
}

func (s *ReviewService) FindByID(ctx context.Context, id int64) (*domain.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return review, nil
}

type UpdateReviewArgs = repoargs.UpdateReview

// Update меняет отзыв автора. Оценка, если передана, остается в пределах
// от 1 до 5.
func (s *ReviewService) Update(ctx context.Context, id, userID int64, args UpdateReviewArgs) (*domain.Review, error) {
	if args.Rating != nil && (*args.Rating < domain.ReviewMinRating || *args.Rating > domain.ReviewMaxRating) {
		return nil, fmt.Errorf("updating review %d: %w", id, domain.ErrValidation)
	}

	review, err := s.reviewRepo.Update(ctx, id, userID, args)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.reviewRepo.SoftDelete(ctx, id, userID); err != nil {
		return err //nolint:wrapcheck
	}
	return nil
}
