package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/internal/service"
)

const (
	// defaultProductsLimit ограничение выдачи витрины по умолчанию.
	defaultProductsLimit = 30
	maxProductsLimit     = 200
)

type ProductsHandler struct {
	svs ProductServicer
}

func NewProductsHandler(svs ProductServicer) *ProductsHandler {
	return &ProductsHandler{
		svs: svs,
	}
}

type ProductResponse struct {
	ID          int64     `json:"ID"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Amount      int64     `json:"amount"`
	Views       int64     `json:"views"`
	SellerID    int64     `json:"sellerID"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Category:    p.Category,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Amount:      p.Amount,
		Views:       p.Views,
		SellerID:    p.UserID,
		CreatedAt:   p.CreatedAt,
	}
}

// Index GET RouteGroup + ProductsRoute. Витрина с поиском по подстроке.
// Параметры query: search, limit, sellerID.
func (h *ProductsHandler) Index(c *gin.Context) {
	filter := repoargs.ProductFilter{
		Search: c.Query("search"),
		Limit:  defaultProductsLimit,
	}
	if rawLimit := c.Query("limit"); rawLimit != "" {
		limit, err := strconv.ParseUint(rawLimit, 10, 32)
		if err != nil || limit == 0 || limit > maxProductsLimit {
			c.AbortWithStatus(http.StatusUnprocessableEntity)
			return
		}
		filter.Limit = uint(limit)
	}
	if rawSellerID := c.Query("sellerID"); rawSellerID != "" {
		sellerID, err := strconv.ParseInt(rawSellerID, 10, 64)
		if err != nil {
			c.AbortWithStatus(http.StatusUnprocessableEntity)
			return
		}
		filter.UserID = &sellerID
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	products, err := h.svs.List(reqCtx, filter)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]ProductResponse, len(products))
	for i := range products {
		response[i] = newProductResponse(&products[i])
	}
	c.JSON(http.StatusOK, response)
}

// Show GET RouteGroup + ProductRoute. Каждый просмотр увеличивает счетчик просмотров.
func (h *ProductsHandler) Show(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	product, err := h.svs.Detail(reqCtx, productID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(product))
}

type CreateProductParams struct {
	Category         string          `binding:"required,min=1,max=100"  json:"category"`
	Title            string          `binding:"required,min=1,max=255"  json:"title"`
	Description      string          `binding:"required,min=1,max=5000" json:"description"`
	Price            decimal.Decimal `binding:"required"                json:"price"`
	Amount           int64           `binding:"required,gt=0"           json:"amount"`
	DefaultAccountID *int64          `json:"defaultAccountID"`
}

// Create POST RouteGroup + ProductsRoute. Доступно только продавцам.
func (h *ProductsHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params CreateProductParams
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

	product, err := h.svs.Create(reqCtx, currentUserID, service.CreateProductArgs{
		Category:         params.Category,
		Title:            params.Title,
		Description:      params.Description,
		Price:            params.Price,
		Amount:           params.Amount,
		DefaultAccountID: params.DefaultAccountID,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newProductResponse(product))
}

type UpdateProductParams struct {
	Category         *string          `binding:"omitempty,min=1,max=100" json:"category"`
	Title            *string          `binding:"omitempty,min=1,max=255" json:"title"`
	Description      *string          `binding:"omitempty,max=5000"      json:"description"`
	Price            *decimal.Decimal `json:"price"`
	Amount           *int64           `binding:"omitempty,gte=0"         json:"amount"`
	DefaultAccountID *int64           `json:"defaultAccountID"`
}

// Update PATCH RouteGroup + ProductRoute. Меняет только переданные поля.
func (h *ProductsHandler) Update(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var params UpdateProductParams
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

	product, err := h.svs.Update(reqCtx, productID, currentUserID, service.UpdateProductArgs{
		Category:         params.Category,
		Title:            params.Title,
		Description:      params.Description,
		Price:            params.Price,
		Amount:           params.Amount,
		DefaultAccountID: params.DefaultAccountID,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(product))
}

// Delete DELETE RouteGroup + ProductRoute. Товар скрывается с витрины, а не удаляется физически.
func (h *ProductsHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.svs.Delete(reqCtx, productID, currentUserID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}
