package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/logger"
	"github.com/fsdevblog/aether-shop/internal/service/tokens"
	"github.com/fsdevblog/aether-shop/internal/transport/api/mocks"
	"github.com/fsdevblog/aether-shop/internal/transport/api/testutils"
)

type FeaturedHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockFeaturedService *mocks.MockFeaturedServicer
	jwtSecret           []byte
}

func TestFeaturedHandlerSuite(t *testing.T) {
	suite.Run(t, new(FeaturedHandlerTestSuite))
}

func (s *FeaturedHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockFeaturedService = mocks.NewMockFeaturedServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:          logger.New(os.Stdout),
		FeaturedService: s.mockFeaturedService,
		JWTSecretKey:    s.jwtSecret,
	})
}

func (s *FeaturedHandlerTestSuite) TestIndex() {
	var userID int64 = 1
	jwtToken, jwtErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)

	featured := []domain.FeaturedProduct{
		{ID: 1, UserID: userID, ProductID: 3},
		{ID: 2, UserID: userID, ProductID: 5},
	}
	s.mockFeaturedService.EXPECT().
		GetByUserID(gomock.Any(), userID).
		Return(featured, nil)

	res := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + FeaturedRoute,
	}, testutils.WithBearer(jwtToken))
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	s.Require().Equal(http.StatusOK, res.StatusCode)

	var response []FeaturedResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&response))
	s.Require().Len(response, 2)
	s.Equal(int64(3), response[0].ProductID)
	s.Equal(int64(5), response[1].ProductID)
}

func (s *FeaturedHandlerTestSuite) TestCreate() {
	var userID int64 = 1
	jwtToken, jwtErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)

	s.mockFeaturedService.EXPECT().
		Add(gomock.Any(), userID, int64(3)).
		Return(&domain.FeaturedProduct{ID: 1, UserID: userID, ProductID: 3}, nil).Times(1)
	s.mockFeaturedService.EXPECT().
		Add(gomock.Any(), userID, int64(99)).
		Return(nil, domain.ErrRecordNotFound).Times(1)

	cases := []struct {
		name       string
		payload    string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "ok",
			payload:    `{"productID":3}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusCreated,
		}, {
			name:       "unknown product",
			payload:    `{"productID":99}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusNotFound,
		}, {
			name:       "missing product id",
			payload:    `{}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "not authorized",
			payload:    `{"productID":3}`,
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + FeaturedRoute,
				Body:   bytes.NewReader([]byte(t.payload)),
			}
			reqOpts := []func(*testutils.RequestOptions){
				testutils.WithHeader("Content-Type", "application/json; charset=utf-8"),
			}
			if t.jwtToken != "" {
				reqOpts = append(reqOpts, testutils.WithBearer(t.jwtToken))
			}
			res := testutils.MakeRequest(args, reqOpts...)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *FeaturedHandlerTestSuite) TestDelete() {
	var userID int64 = 1
	jwtToken, jwtErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)

	s.mockFeaturedService.EXPECT().
		Remove(gomock.Any(), int64(3), userID).
		Return(nil).Times(1)
	s.mockFeaturedService.EXPECT().
		Remove(gomock.Any(), int64(99), userID).
		Return(domain.ErrRecordNotFound).Times(1)

	cases := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{
			name:       "ok",
			url:        RouteGroup + "/user/featured/3",
			wantStatus: http.StatusNoContent,
		}, {
			name:       "not in featured",
			url:        RouteGroup + "/user/featured/99",
			wantStatus: http.StatusNotFound,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodDelete,
				URL:    t.url,
			}, testutils.WithBearer(jwtToken))
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
