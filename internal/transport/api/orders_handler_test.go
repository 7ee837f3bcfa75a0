package api

import (
	"bytes"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/logger"
	"github.com/fsdevblog/aether-shop/internal/service"
	"github.com/fsdevblog/aether-shop/internal/service/tokens"
	"github.com/fsdevblog/aether-shop/internal/transport/api/mocks"
	"github.com/fsdevblog/aether-shop/internal/transport/api/testutils"
)

type OrdersHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockOrderService *mocks.MockOrderServicer
	jwtSecret        []byte
}

func TestOrdersHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrdersHandlerTestSuite))
}

func (s *OrdersHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockOrderService = mocks.NewMockOrderServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:       logger.New(os.Stdout),
		OrderService: s.mockOrderService,
		JWTSecretKey: s.jwtSecret,
	})
}

func (s *OrdersHandlerTestSuite) userToken(userID int64) string {
	token, err := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
	return token
}

func (s *OrdersHandlerTestSuite) TestCreate() {
	var currentUserID int64 = 1
	jwtToken := s.userToken(currentUserID)

	validArgs := service.CreateOrderArgs{ProductID: 10, AddressID: 3, Quantity: 2}
	outOfStockArgs := service.CreateOrderArgs{ProductID: 11, AddressID: 3, Quantity: 100}

	s.mockOrderService.EXPECT().
		Create(gomock.Any(), currentUserID, validArgs).
		Return(&domain.Order{ID: 7, UserID: currentUserID, Status: domain.OrderStatusNew, InCart: true}, nil).
		Times(1)
	s.mockOrderService.EXPECT().
		Create(gomock.Any(), currentUserID, outOfStockArgs).
		Return(nil, domain.ErrNotEnoughStock).
		Times(1)

	cases := []struct {
		name       string
		payload    string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "all ok",
			payload:    `{"productID":10,"addressID":3,"quantity":2}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusCreated,
		}, {
			name:       "not enough stock",
			payload:    `{"productID":11,"addressID":3,"quantity":100}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusConflict,
		}, {
			name:       "zero quantity",
			payload:    `{"productID":10,"addressID":3,"quantity":0}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "not authorized",
			payload:    `{"productID":10,"addressID":3,"quantity":2}`,
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + OrdersRoute,
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

func (s *OrdersHandlerTestSuite) TestIndex() {
	var userID int64 = 1
	var emptyCartUserID int64 = 2

	orders := []domain.Order{
		{
			ID:             1,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
			UserID:         userID,
			OrderDetailsID: 1,
			Status:         domain.OrderStatusNew,
			InCart:         true,
		},
	}
	s.mockOrderService.EXPECT().GetByUserID(gomock.Any(), userID).Return(orders, nil)
	s.mockOrderService.EXPECT().GetByUserID(gomock.Any(), emptyCartUserID).Return([]domain.Order{}, nil)

	cases := []struct {
		name       string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "all ok",
			jwtToken:   s.userToken(userID),
			wantStatus: http.StatusOK,
		}, {
			name:       "not authorized",
			jwtToken:   "",
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "empty cart",
			jwtToken:   s.userToken(emptyCartUserID),
			wantStatus: http.StatusNoContent,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    RouteGroup + OrdersRoute,
			}
			var reqOpts []func(*testutils.RequestOptions)
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

func (s *OrdersHandlerTestSuite) TestUpdate() {
	var userID int64 = 1
	jwtToken := s.userToken(userID)

	s.mockOrderService.EXPECT().
		UpdateQuantity(gomock.Any(), int64(5), userID, int64(3)).
		Return(&domain.OrderDetails{ID: 9, Quantity: 3, Price: decimal.NewFromInt(300)}, nil).
		Times(1)
	s.mockOrderService.EXPECT().
		UpdateQuantity(gomock.Any(), int64(6), userID, int64(3)).
		Return(nil, domain.ErrOrderAlreadyPaid).
		Times(1)

	cases := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{
			name:       "all ok",
			url:        RouteGroup + "/user/orders/5",
			wantStatus: http.StatusOK,
		}, {
			name:       "already paid",
			url:        RouteGroup + "/user/orders/6",
			wantStatus: http.StatusConflict,
		}, {
			name:       "bad id",
			url:        RouteGroup + "/user/orders/abc",
			wantStatus: http.StatusNotFound,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPatch,
				URL:    t.url,
				Body:   bytes.NewReader([]byte(`{"quantity":3}`)),
			}
			res := testutils.MakeRequest(args,
				testutils.WithBearer(jwtToken),
				testutils.WithHeader("Content-Type", "application/json; charset=utf-8"),
			)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
