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

type PaymentsHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPaymentService *mocks.MockPaymentServicer
	jwtSecret          []byte
}

func TestPaymentsHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentsHandlerTestSuite))
}

func (s *PaymentsHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockPaymentService = mocks.NewMockPaymentServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:         logger.New(os.Stdout),
		PaymentService: s.mockPaymentService,
		JWTSecretKey:   s.jwtSecret,
	})
}

func (s *PaymentsHandlerTestSuite) TestPay() {
	var userID int64 = 1
	jwtToken, jwtErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)

	payment := &domain.Payment{
		ID:             3,
		OrderDetailsID: 5,
		AccountID:      2,
		UserID:         userID,
		Quantity:       1,
		Price:          decimal.NewFromInt(100),
	}

	s.mockPaymentService.EXPECT().
		Settle(gomock.Any(), userID, service.SettleArgs{OrderID: 5}).
		Return(payment, nil).Times(1)
	s.mockPaymentService.EXPECT().
		Settle(gomock.Any(), userID, service.SettleArgs{OrderID: 5, AccountNumber: "acc-1"}).
		Return(payment, nil).Times(1)
	s.mockPaymentService.EXPECT().
		Settle(gomock.Any(), userID, service.SettleArgs{OrderID: 6}).
		Return(nil, domain.ErrNotEnoughBalance).Times(1)
	s.mockPaymentService.EXPECT().
		Settle(gomock.Any(), userID, service.SettleArgs{OrderID: 7}).
		Return(nil, domain.ErrOrderAlreadyPaid).Times(1)
	s.mockPaymentService.EXPECT().
		Settle(gomock.Any(), userID, service.SettleArgs{OrderID: 8}).
		Return(nil, domain.ErrRecordNotFound).Times(1)
	s.mockPaymentService.EXPECT().
		Settle(gomock.Any(), userID, service.SettleArgs{OrderID: 9}).
		Return(nil, domain.ErrNoFundingAccount).Times(1)

	cases := []struct {
		name       string
		url        string
		payload    string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "auto account",
			url:        RouteGroup + "/user/orders/5/pay",
			jwtToken:   jwtToken,
			wantStatus: http.StatusOK,
		}, {
			name:       "explicit account",
			url:        RouteGroup + "/user/orders/5/pay",
			payload:    `{"accountNumber":"acc-1"}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusOK,
		}, {
			name:       "not enough balance",
			url:        RouteGroup + "/user/orders/6/pay",
			jwtToken:   jwtToken,
			wantStatus: http.StatusPaymentRequired,
		}, {
			name:       "already paid",
			url:        RouteGroup + "/user/orders/7/pay",
			jwtToken:   jwtToken,
			wantStatus: http.StatusConflict,
		}, {
			name:       "unknown order",
			url:        RouteGroup + "/user/orders/8/pay",
			jwtToken:   jwtToken,
			wantStatus: http.StatusNotFound,
		}, {
			name:       "no funding account",
			url:        RouteGroup + "/user/orders/9/pay",
			jwtToken:   jwtToken,
			wantStatus: http.StatusPaymentRequired,
		}, {
			name:       "not authorized",
			url:        RouteGroup + "/user/orders/5/pay",
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    t.url,
			}
			if t.payload != "" {
				args.Body = bytes.NewReader([]byte(t.payload))
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
