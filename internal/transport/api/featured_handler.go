package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/aether-shop/internal/domain"
)

type FeaturedHandler struct {
	svs FeaturedServicer
}

func NewFeaturedHandler(svs FeaturedServicer) *FeaturedHandler {
	return &FeaturedHandler{
		svs: svs,
	}
}

type FeaturedResponse struct {
	ID        int64     `json:"ID"`
	ProductID int64     `json:"productID"`
	CreatedAt time.Time `json:"createdAt"`
}

func newFeaturedResponse(f *domain.FeaturedProduct) FeaturedResponse {
	return FeaturedResponse{
		ID:        f.ID,
		ProductID: f.ProductID,
		CreatedAt: f.CreatedAt,
	}
}

// Index GET RouteGroup + FeaturedRoute. Закладки текущего пользователя.
func (h *FeaturedHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	featured, err := h.svs.GetByUserID(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]FeaturedResponse, len(featured))
	for i := range featured {
		response[i] = newFeaturedResponse(&featured[i])
	}
	c.JSON(http.StatusOK, response)
}

type AddFeaturedParams struct {
	ProductID int64 `binding:"required,gt=0" json:"productID"`
}

// Create POST RouteGroup + FeaturedRoute. Повторное добавление того же товара
// не ошибка: возвращается существующая закладка.
func (h *FeaturedHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params AddFeaturedParams
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

	featured, err := h.svs.Add(reqCtx, currentUserID, params.ProductID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newFeaturedResponse(featured))
}

// Delete DELETE RouteGroup + FeaturedProductRoute. В пути передается id товара.
func (h *FeaturedHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.svs.Remove(reqCtx, productID, currentUserID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}
