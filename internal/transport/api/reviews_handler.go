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

type ReviewsHandler struct {
	svs ReviewServicer
}

func NewReviewsHandler(svs ReviewServicer) *ReviewsHandler {
	return &ReviewsHandler{
		svs: svs,
	}
}

type ReviewResponse struct {
	ID        int64     `json:"ID"`
	UserID    int64     `json:"userID"`
	ProductID int64     `json:"productID"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Rating    int32     `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

func newReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Title:     r.Title,
		Content:   r.Content,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
	}
}

// Index GET RouteGroup + ProductReviewsRoute. Отзывы на товар.
func (h *ReviewsHandler) Index(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	reviews, err := h.svs.GetByProductID(reqCtx, productID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		response[i] = newReviewResponse(&reviews[i])
	}
	c.JSON(http.StatusOK, response)
}

// UserIndex GET RouteGroup + UserReviewsRoute. Отзывы текущего пользователя.
func (h *ReviewsHandler) UserIndex(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	reviews, err := h.svs.GetByUserID(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		response[i] = newReviewResponse(&reviews[i])
	}
	c.JSON(http.StatusOK, response)
}

// Show GET RouteGroup + ReviewRoute.
func (h *ReviewsHandler) Show(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	review, err := h.svs.FindByID(reqCtx, reviewID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newReviewResponse(review))
}

type CreateReviewParams struct {
	Title   string `binding:"required,min=1,max=255"  json:"title"`
	Content string `binding:"required,min=1,max=5000" json:"content"`
	Rating  int32  `binding:"required,min=1,max=5"    json:"rating"`
}

// Create POST RouteGroup + ProductReviewsRoute.
func (h *ReviewsHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var params CreateReviewParams
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

	review, err := h.svs.Create(reqCtx, currentUserID, service.CreateReviewArgs{
		ProductID: productID,
		Title:     params.Title,
		Content:   params.Content,
		Rating:    params.Rating,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newReviewResponse(review))
}

type UpdateReviewParams struct {
	Title   *string `binding:"omitempty,min=1,max=255"  json:"title"`
	Content *string `binding:"omitempty,min=1,max=5000" json:"content"`
	Rating  *int32  `binding:"omitempty,min=1,max=5"    json:"rating"`
}

// Update PATCH RouteGroup + ReviewRoute. Меняет только переданные поля.
func (h *ReviewsHandler) Update(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var params UpdateReviewParams
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

	review, err := h.svs.Update(reqCtx, reviewID, currentUserID, service.UpdateReviewArgs{
		Title:   params.Title,
		Content: params.Content,
		Rating:  params.Rating,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newReviewResponse(review))
}

// Delete DELETE RouteGroup + ReviewRoute.
func (h *ReviewsHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.svs.Delete(reqCtx, reviewID, currentUserID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}
