package service

import (
	"context"
	"errors"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type FeaturedService struct {
	uow          uow.UOW
	featuredRepo FeaturedRepository
	productRepo  ProductRepository
}

func NewFeaturedService(u uow.UOW) (*FeaturedService, error) {
	featuredRepo, err := uow.GetRepositoryAs[FeaturedRepository](u, uow.RepositoryName(repoargs.FeaturedRepoName))
	if err != nil {
		return nil, err
	}
	productRepo, err := uow.GetRepositoryAs[ProductRepository](u, uow.RepositoryName(repoargs.ProductRepoName))
	if err != nil {
		return nil, err
	}
	return &FeaturedService{
		uow:          u,
		featuredRepo: featuredRepo,
		productRepo:  productRepo,
	}, nil
}

// Add кладет товар в закладки юзера. Повторное добавление не ошибка:
// возвращается уже существующая закладка.
func (s *FeaturedService) Add(ctx context.Context, userID, productID int64) (*domain.FeaturedProduct, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err //nolint:wrapcheck
	}

	featured, err := s.featuredRepo.Create(ctx, userID, productID)
	if err == nil {
		return featured, nil
	}
	if !errors.Is(err, domain.ErrDuplicateKey) {
		return nil, err //nolint:wrapcheck
	}

	existing, findErr := s.featuredRepo.FindByProductID(ctx, productID, userID)
	if findErr != nil {
		return nil, findErr //nolint:wrapcheck
	}
	return existing, nil
}

func (s *FeaturedService) GetByUserID(ctx context.Context, userID int64) ([]domain.FeaturedProduct, error) {
	featured, err := s.featuredRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return featured, nil
}

func (s *FeaturedService) Remove(ctx context.Context, productID, userID int64) error {
	if err := s.featuredRepo.Delete(ctx, productID, userID); err != nil {
		return err //nolint:wrapcheck
	}
	return nil
}
