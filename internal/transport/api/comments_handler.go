package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/service"
)

type CommentsHandler struct {
	svs CommentServicer
}

func NewCommentsHandler(svs CommentServicer) *CommentsHandler {
	return &CommentsHandler{
		svs: svs,
	}
}

type CommentResponse struct {
	ID        int64             `json:"ID"`
	UserID    int64             `json:"userID"`
	ParentID  *int64            `json:"parentID,omitempty"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"createdAt"`
	Replies   []CommentResponse `json:"replies,omitempty"`
}

func newCommentResponse(node domain.CommentNode) CommentResponse {
	resp := CommentResponse{
		ID:        node.Comment.ID,
		UserID:    node.Comment.UserID,
		ParentID:  node.Comment.ParentID,
		Text:      node.Comment.Text,
		CreatedAt: node.Comment.CreatedAt,
	}
	if len(node.Children) > 0 {
		resp.Replies = make([]CommentResponse, len(node.Children))
		for i, child := range node.Children {
			resp.Replies[i] = newCommentResponse(child)
		}
	}
	return resp
}

// Index GET RouteGroup + ProductCommentsRoute. Дерево комментариев товара.
func (h *CommentsHandler) Index(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	forest, err := h.svs.ForestByProduct(reqCtx, productID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]CommentResponse, len(forest))
	for i, node := range forest {
		response[i] = newCommentResponse(node)
	}
	c.JSON(http.StatusOK, response)
}

type CreateCommentParams struct {
	ParentID *int64 `binding:"omitempty,gt=0"          json:"parentID"`
	Text     string `binding:"required,min=1,max=2000" json:"text"`
}

// Create POST RouteGroup + ProductCommentsRoute. Родительский комментарий, если
// указан, обязан относиться к тому же товару.
func (h *CommentsHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var params CreateCommentParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	comment, err := h.svs.Create(reqCtx, currentUserID, service.CreateCommentArgs{
		ProductID: productID,
		ParentID:  params.ParentID,
		Text:      params.Text,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		ParentID:  comment.ParentID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	})
}

// Delete DELETE RouteGroup + CommentRoute. Вместе с комментарием удаляется вся
// ветка ответов.
func (h *CommentsHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.svs.DeleteCascade(reqCtx, commentID, currentUserID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}
