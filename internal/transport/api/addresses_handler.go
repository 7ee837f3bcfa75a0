package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AddressesHandler struct {
	svs AddressServicer
}

func NewAddressesHandler(svs AddressServicer) *AddressesHandler {
	return &AddressesHandler{
		svs: svs,
	}
}

type AddressResponse struct {
	ID        int64     `json:"ID"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

type AddressParams struct {
	Address string `binding:"required,min=1,max=500" json:"address"`
}

// Index GET RouteGroup + AddressesRoute.
func (h *AddressesHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	addresses, err := h.svs.GetByUserID(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]AddressResponse, len(addresses))
	for i, address := range addresses {
		response[i] = AddressResponse{
			ID:        address.ID,
			Address:   address.Address,
			CreatedAt: address.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, response)
}

// Create POST RouteGroup + AddressesRoute.
func (h *AddressesHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params AddressParams
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

	address, err := h.svs.Create(reqCtx, currentUserID, params.Address)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AddressResponse{
		ID:        address.ID,
		Address:   address.Address,
		CreatedAt: address.CreatedAt,
	})
}

// Update PATCH RouteGroup + AddressRoute.
func (h *AddressesHandler) Update(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var params AddressParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	address, err := h.svs.Update(reqCtx, addressID, currentUserID, params.Address)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AddressResponse{
		ID:        address.ID,
		Address:   address.Address,
		CreatedAt: address.CreatedAt,
	})
}

// Delete DELETE RouteGroup + AddressRoute.
func (h *AddressesHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.svs.Delete(reqCtx, addressID, currentUserID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}
