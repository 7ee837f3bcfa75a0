package service

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/internal/service/mocks"
	"github.com/fsdevblog/aether-shop/pkg/uow"
	uowmocks "github.com/fsdevblog/aether-shop/pkg/uow/mocks"
)

type FeaturedServiceTestSuite struct {
	suite.Suite
	mockUOW          *uowmocks.MockUOW
	mockFeaturedRepo *mocks.MockFeaturedRepository
	mockProductRepo  *mocks.MockProductRepository
	featuredService  *FeaturedService
}

func TestFeaturedServiceSuite(t *testing.T) {
	suite.Run(t, new(FeaturedServiceTestSuite))
}

func (s *FeaturedServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockFeaturedRepo = mocks.NewMockFeaturedRepository(mockCtrl)
	s.mockProductRepo = mocks.NewMockProductRepository(mockCtrl)

	// Мок получения репозиториев из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.FeaturedRepoName)).
		Return(s.mockFeaturedRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.ProductRepoName)).
		Return(s.mockProductRepo, nil).AnyTimes()

	featuredService, servErr := NewFeaturedService(s.mockUOW)
	s.Require().NoError(servErr)
	s.featuredService = featuredService
}

func (s *FeaturedServiceTestSuite) TestAdd() {
	const userID int64 = 5
	const productID int64 = 3

	s.mockProductRepo.EXPECT().FindByID(gomock.Any(), productID).
		Return(&domain.Product{ID: productID}, nil)
	s.mockFeaturedRepo.EXPECT().Create(gomock.Any(), userID, productID).
		Return(&domain.FeaturedProduct{ID: 1, UserID: userID, ProductID: productID}, nil)

	featured, err := s.featuredService.Add(s.T().Context(), userID, productID)
	s.Require().NoError(err)
	s.Equal(productID, featured.ProductID)
}

func (s *FeaturedServiceTestSuite) TestAddTwiceReturnsExisting() {
	const userID int64 = 5
	const productID int64 = 3
	existing := domain.FeaturedProduct{ID: 1, UserID: userID, ProductID: productID}

	s.mockProductRepo.EXPECT().FindByID(gomock.Any(), productID).
		Return(&domain.Product{ID: productID}, nil)
	s.mockFeaturedRepo.EXPECT().Create(gomock.Any(), userID, productID).
		Return(nil, domain.ErrDuplicateKey)
	s.mockFeaturedRepo.EXPECT().FindByProductID(gomock.Any(), productID, userID).
		Return(&existing, nil)

	featured, err := s.featuredService.Add(s.T().Context(), userID, productID)
	s.Require().NoError(err)
	s.Equal(existing.ID, featured.ID)
}

func (s *FeaturedServiceTestSuite) TestAddUnknownProduct() {
	const userID int64 = 5
	const productID int64 = 99

	s.mockProductRepo.EXPECT().FindByID(gomock.Any(), productID).
		Return(nil, domain.ErrRecordNotFound)

	_, err := s.featuredService.Add(s.T().Context(), userID, productID)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *FeaturedServiceTestSuite) TestRemove() {
	const userID int64 = 5
	const productID int64 = 3

	s.mockFeaturedRepo.EXPECT().Delete(gomock.Any(), productID, userID).Return(nil)
	s.Require().NoError(s.featuredService.Remove(s.T().Context(), productID, userID))

	s.mockFeaturedRepo.EXPECT().Delete(gomock.Any(), productID, userID).
		Return(domain.ErrRecordNotFound)
	err := s.featuredService.Remove(s.T().Context(), productID, userID)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}
