package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AccountsHandler struct {
	svs AccountServicer
}

func NewAccountsHandler(svs AccountServicer) *AccountsHandler {
	return &AccountsHandler{
		svs: svs,
	}
}

type AccountResponse struct {
	ID            int64     `json:"ID"`
	AccountNumber string    `json:"number"`
	Balance       float64   `json:"balance"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Index GET RouteGroup + AccountsRoute.
func (h *AccountsHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	accounts, err := h.svs.GetByUserID(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		response[i] = AccountResponse{
			ID:            account.ID,
			AccountNumber: account.AccountNumber,
			Balance:       account.Balance.InexactFloat64(),
			CreatedAt:     account.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, response)
}

// Show GET RouteGroup + AccountRoute. Только свой счет.
func (h *AccountsHandler) Show(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := h.svs.FindByID(reqCtx, accountID, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, AccountResponse{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance.InexactFloat64(),
		CreatedAt:     account.CreatedAt,
	})
}

// Create POST RouteGroup + AccountsRoute. Открывает новый счет с нулевым балансом.
func (h *AccountsHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := h.svs.Create(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance.InexactFloat64(),
		CreatedAt:     account.CreatedAt,
	})
}

type TopUpParams struct {
	Amount decimal.Decimal `binding:"required" json:"amount"`
}

// TopUp POST RouteGroup + AccountTopUpRoute. Пополняет счет на указанную сумму.
func (h *AccountsHandler) TopUp(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var params TopUpParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := h.svs.TopUp(reqCtx, accountID, currentUserID, params.Amount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccountResponse{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance.InexactFloat64(),
		CreatedAt:     account.CreatedAt,
	})
}

// Delete DELETE RouteGroup + AccountRoute.
func (h *AccountsHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.svs.Delete(reqCtx, accountID, currentUserID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}
