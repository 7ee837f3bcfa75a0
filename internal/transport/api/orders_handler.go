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

type OrdersHandler struct {
	orderSvs OrderServicer
}

func NewOrdersHandler(orderSvs OrderServicer) *OrdersHandler {
	return &OrdersHandler{
		orderSvs: orderSvs,
	}
}

type OrderResponse struct {
	ID        int64                  `json:"ID"`
	Status    domain.OrderStatusType `json:"status"`
	IsPaid    bool                   `json:"isPaid"`
	InCart    bool                   `json:"inCart"`
	CreatedAt time.Time              `json:"createdAt"`
}

type OrderDetailsResponse struct {
	OrderResponse

	ProductID int64   `json:"productID"`
	AddressID int64   `json:"addressID"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

func newOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		Status:    o.Status,
		IsPaid:    o.IsPaid,
		InCart:    o.InCart,
		CreatedAt: o.CreatedAt,
	}
}

type CreateOrderParams struct {
	ProductID int64 `binding:"required,gt=0" json:"productID"`
	AddressID int64 `binding:"required,gt=0" json:"addressID"`
	Quantity  int64 `binding:"required,gt=0" json:"quantity"`
}

// Create POST RouteGroup + OrdersRoute. Кладет товар в корзину. Цена заказа
// фиксируется на момент добавления.
func (o *OrdersHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params CreateOrderParams
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

	order, createErr := o.orderSvs.Create(reqCtx, currentUserID, service.CreateOrderArgs{
		ProductID: params.ProductID,
		AddressID: params.AddressID,
		Quantity:  params.Quantity,
	})
	if createErr != nil {
		abortWithServiceError(c, createErr)
		return
	}

	c.JSON(http.StatusCreated, newOrderResponse(order))
}

// Index GET RouteGroup + OrdersRoute. Корзина текущего пользователя.
func (o *OrdersHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := o.orderSvs.GetByUserID(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if len(orders) == 0 {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	var response = make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = newOrderResponse(&orders[i])
	}

	c.JSON(http.StatusOK, response)
}

// SellerIndex GET RouteGroup + SellerOrderRoute. Заказы на товары текущего продавца.
func (o *OrdersHandler) SellerIndex(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := o.orderSvs.GetBySellerID(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if len(orders) == 0 {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	var response = make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = newOrderResponse(&orders[i])
	}

	c.JSON(http.StatusOK, response)
}

// Show GET RouteGroup + OrderRoute. Заказ вместе с позицией.
func (o *OrdersHandler) Show(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, details, err := o.orderSvs.FindDetails(reqCtx, orderID, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, OrderDetailsResponse{
		OrderResponse: newOrderResponse(order),
		ProductID:     details.ProductID,
		AddressID:     details.AddressID,
		Quantity:      details.Quantity,
		Price:         details.Price.InexactFloat64(),
	})
}

type UpdateOrderParams struct {
	Quantity int64 `binding:"required,gt=0" json:"quantity"`
}

// Update PATCH RouteGroup + OrderRoute. Меняет количество в неоплаченном заказе,
// цена пересчитывается по зафиксированной цене за единицу.
func (o *OrdersHandler) Update(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var params UpdateOrderParams
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

	details, err := o.orderSvs.UpdateQuantity(reqCtx, orderID, currentUserID, params.Quantity)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ID":       orderID,
		"quantity": details.Quantity,
		"price":    details.Price.InexactFloat64(),
	})
}

// Delete DELETE RouteGroup + OrderRoute. Убирает неоплаченный заказ из корзины
// и возвращает остаток на склад.
func (o *OrdersHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := o.orderSvs.Delete(reqCtx, orderID, currentUserID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}
