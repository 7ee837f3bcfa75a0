package service

import (
	"context"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type AddressService struct {
	uow         uow.UOW
	addressRepo AddressRepository
}

func NewAddressService(u uow.UOW) (*AddressService, error) {
	addressRepo, err := uow.GetRepositoryAs[AddressRepository](u, uow.RepositoryName(repoargs.AddressRepoName))
	if err != nil {
		return nil, err
	}
	return &AddressService{
		uow:         u,
		addressRepo: addressRepo,
	}, nil
}

func (s *AddressService) Create(ctx context.Context, userID int64, address string) (*domain.Address, error) {
	created, err := s.addressRepo.Create(ctx, repoargs.CreateAddress{
		UserID:  userID,
		Address: address,
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return created, nil
}

func (s *AddressService) GetByUserID(ctx context.Context, userID int64) ([]domain.Address, error) {
	addresses, err := s.addressRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return addresses, nil
}

func (s *AddressService) FindByID(ctx context.Context, id, userID int64) (*domain.Address, error) {
	address, err := s.addressRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return address, nil
}

func (s *AddressService) Update(ctx context.Context, id, userID int64, address string) (*domain.Address, error) {
	updated, err := s.addressRepo.Update(ctx, id, userID, repoargs.UpdateAddress{Address: address})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return updated, nil
}

func (s *AddressService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.addressRepo.SoftDelete(ctx, id, userID); err != nil {
		return err //nolint:wrapcheck
	}
	return nil
}
