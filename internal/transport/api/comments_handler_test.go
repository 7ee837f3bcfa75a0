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
	"github.com/fsdevblog/aether-shop/internal/service"
	"github.com/fsdevblog/aether-shop/internal/service/tokens"
	"github.com/fsdevblog/aether-shop/internal/transport/api/mocks"
	"github.com/fsdevblog/aether-shop/internal/transport/api/testutils"
)

type CommentsHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockCommentService *mocks.MockCommentServicer
	jwtSecret          []byte
}

func TestCommentsHandlerSuite(t *testing.T) {
	suite.Run(t, new(CommentsHandlerTestSuite))
}

func (s *CommentsHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockCommentService = mocks.NewMockCommentServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:         logger.New(os.Stdout),
		CommentService: s.mockCommentService,
		JWTSecretKey:   s.jwtSecret,
	})
}

// TestIndex дерево комментариев отдается без авторизации, ответы вложены в родителей.
func (s *CommentsHandlerTestSuite) TestIndex() {
	parentID := int64(1)
	forest := []domain.CommentNode{
		{
			Comment: domain.Comment{ID: 1, ProductID: 3, UserID: 2, Text: "root"},
			Children: []domain.CommentNode{
				{Comment: domain.Comment{ID: 2, ProductID: 3, UserID: 4, ParentID: &parentID, Text: "reply"}},
			},
		},
	}
	s.mockCommentService.EXPECT().
		ForestByProduct(gomock.Any(), int64(3)).
		Return(forest, nil)

	res := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + "/products/3/comments",
	})
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	s.Require().Equal(http.StatusOK, res.StatusCode)

	var response []CommentResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&response))
	s.Require().Len(response, 1)
	s.Equal(int64(1), response[0].ID)
	s.Require().Len(response[0].Replies, 1)
	s.Equal(int64(2), response[0].Replies[0].ID)
}

func (s *CommentsHandlerTestSuite) TestCreate() {
	var userID int64 = 2
	jwtToken, jwtErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)

	parentID := int64(5)
	s.mockCommentService.EXPECT().
		Create(gomock.Any(), userID, service.CreateCommentArgs{ProductID: 3, Text: "hello"}).
		Return(&domain.Comment{ID: 10, UserID: userID, ProductID: 3, Text: "hello"}, nil).
		Times(1)
	s.mockCommentService.EXPECT().
		Create(gomock.Any(), userID, service.CreateCommentArgs{ProductID: 3, ParentID: &parentID, Text: "reply"}).
		Return(nil, &domain.ParentCommentError{ParentID: parentID, ProductID: 3}).
		Times(1)

	cases := []struct {
		name       string
		payload    string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "root comment",
			payload:    `{"text":"hello"}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusCreated,
		}, {
			name:       "parent from another product",
			payload:    `{"parentID":5,"text":"reply"}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "blank text",
			payload:    `{"text":""}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "not authorized",
			payload:    `{"text":"hello"}`,
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + "/products/3/comments",
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

func (s *CommentsHandlerTestSuite) TestDelete() {
	var userID int64 = 2
	jwtToken, jwtErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)

	s.mockCommentService.EXPECT().
		DeleteCascade(gomock.Any(), int64(10), userID).
		Return(nil).Times(1)
	s.mockCommentService.EXPECT().
		DeleteCascade(gomock.Any(), int64(11), userID).
		Return(domain.ErrPermissionDenied).Times(1)

	cases := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{
			name:       "own comment",
			url:        RouteGroup + "/comments/10",
			wantStatus: http.StatusNoContent,
		}, {
			name:       "foreign comment",
			url:        RouteGroup + "/comments/11",
			wantStatus: http.StatusForbidden,
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
