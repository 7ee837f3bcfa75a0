package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/service"
)

type PaymentsHandler struct {
	svs PaymentServicer
}

func NewPaymentsHandler(svs PaymentServicer) *PaymentsHandler {
	return &PaymentsHandler{
		svs: svs,
	}
}

type PaymentResponse struct {
	ID             int64     `json:"ID"`
	OrderDetailsID int64     `json:"orderDetailsID"`
	AccountID      int64     `json:"accountID"`
	Quantity       int64     `json:"quantity"`
	Price          float64   `json:"price"`
	CreatedAt      time.Time `json:"createdAt"`
}

func newPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		OrderDetailsID: p.OrderDetailsID,
		AccountID:      p.AccountID,
		Quantity:       p.Quantity,
		Price:          p.Price.InexactFloat64(),
		CreatedAt:      p.CreatedAt,
	}
}

type PayParams struct {
	// AccountNumber необязателен: без него счет списания подбирается автоматически.
	AccountNumber string `binding:"omitempty,max=64" json:"accountNumber"`
}

// Pay POST RouteGroup + OrderPayRoute. Проводит оплату заказа.
func (h *PaymentsHandler) Pay(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var params PayParams
	// тело запроса опционально
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
			_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
			return
		}
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	payment, err := h.svs.Settle(reqCtx, currentUserID, service.SettleArgs{
		OrderID:       orderID,
		AccountNumber: params.AccountNumber,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPaymentResponse(payment))
}

// Index GET RouteGroup + PaymentsRoute. История платежей текущего пользователя.
func (h *PaymentsHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	payments, err := h.svs.GetByUserID(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if len(payments) == 0 {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	response := make([]PaymentResponse, len(payments))
	for i := range payments {
		response[i] = newPaymentResponse(&payments[i])
	}
	c.JSON(http.StatusOK, response)
}

// Show GET RouteGroup + PaymentRoute.
func (h *PaymentsHandler) Show(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	payment, err := h.svs.FindByID(reqCtx, paymentID, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPaymentResponse(payment))
}

// Delete DELETE RouteGroup + PaymentRoute. Скрывает запись из истории,
// сама проводка остается неизменной.
func (h *PaymentsHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.svs.Delete(reqCtx, paymentID, currentUserID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}
