package api

import (
	"bytes"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/logger"
	"github.com/fsdevblog/aether-shop/internal/service"
	"github.com/fsdevblog/aether-shop/internal/transport/api/mocks"
	"github.com/fsdevblog/aether-shop/internal/transport/api/testutils"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUserService *mocks.MockUserServicer
	jwtSecret       []byte
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:       logger.New(os.Stdout),
		UserService:  s.mockUserService,
		JWTSecretKey: s.jwtSecret,
	})
}

func (s *AuthHandlerTestSuite) TestRegister() {
	s.mockUserService.EXPECT().
		Register(gomock.Any(), service.RegisterUserArgs{Username: "buyer", Password: "password"}).
		Return(&domain.User{ID: 1, Username: "buyer"}, "jwt-token", nil).
		Times(1)
	s.mockUserService.EXPECT().
		Register(gomock.Any(), service.RegisterUserArgs{Username: "seller", Password: "password", IsSeller: true}).
		Return(&domain.User{ID: 2, Username: "seller", IsSeller: true}, "jwt-token", nil).
		Times(1)
	s.mockUserService.EXPECT().
		Register(gomock.Any(), service.RegisterUserArgs{Username: "taken", Password: "password"}).
		Return(nil, "", domain.ErrDuplicateKey).
		Times(1)

	cases := []struct {
		name       string
		payload    string
		wantStatus int
		wantAuth   bool
	}{
		{
			name:       "buyer",
			payload:    `{"login":"buyer","password":"password"}`,
			wantStatus: http.StatusOK,
			wantAuth:   true,
		}, {
			name:       "seller",
			payload:    `{"login":"seller","password":"password","isSeller":true}`,
			wantStatus: http.StatusOK,
			wantAuth:   true,
		}, {
			name:       "duplicate login",
			payload:    `{"login":"taken","password":"password"}`,
			wantStatus: http.StatusConflict,
		}, {
			name:       "short password",
			payload:    `{"login":"buyer","password":"123"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + RegisterRoute,
				Body:   bytes.NewReader([]byte(t.payload)),
			}, testutils.WithHeader("Content-Type", "application/json; charset=utf-8"))
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)
			if t.wantAuth {
				s.Equal("Bearer jwt-token", res.Header.Get("Authorization"))
			}
		})
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	s.mockUserService.EXPECT().
		Login(gomock.Any(), "buyer", "password").
		Return(&domain.User{ID: 1, Username: "buyer"}, "jwt-token", nil).
		Times(1)
	s.mockUserService.EXPECT().
		Login(gomock.Any(), "buyer", "wrong pass").
		Return(nil, "", domain.ErrPasswordMissMatch).
		Times(1)

	cases := []struct {
		name       string
		payload    string
		wantStatus int
	}{
		{
			name:       "all ok",
			payload:    `{"login":"buyer","password":"password"}`,
			wantStatus: http.StatusOK,
		}, {
			name:       "wrong password",
			payload:    `{"login":"buyer","password":"wrong pass"}`,
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "malformed payload",
			payload:    `{"login":"buyer"}`,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + LoginRoute,
				Body:   bytes.NewReader([]byte(t.payload)),
			}, testutils.WithHeader("Content-Type", "application/json; charset=utf-8"))
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
