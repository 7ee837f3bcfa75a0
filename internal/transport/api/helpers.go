package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/transport/api/middlewares"
)

// getUserIDFromContext берет из контекста gin ID текущего юзера. ID устанавливается в
// middlewares.AuthRequired. В случае, если значения в контексте нет или ошибка утверждения типа -
// вернется 0.
func getUserIDFromContext(c *gin.Context) int64 {
	userIDStr, exist := c.Get(middlewares.CurrentUserIDKey)
	if !exist {
		return 0
	}
	userID, ok := userIDStr.(int64)
	if !ok {
		return 0
	}
	return userID
}

// parseIDParam парсит числовой path-параметр. При ошибке парсинга прерывает запрос
// со статусом 404 (несуществующий id неотличим от отсутствующей записи).
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatus(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// abortWithServiceError транслирует доменные ошибки сервисного слоя в http статусы.
// Всё, что не распознано, уходит 500-кой в лог через middlewares.Errors.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	case errors.Is(err, domain.ErrNotEnoughBalance), errors.Is(err, domain.ErrNoFundingAccount):
		_ = c.AbortWithError(http.StatusPaymentRequired, err).SetType(gin.ErrorTypePublic)
	case errors.Is(err, domain.ErrOrderAlreadyPaid),
		errors.Is(err, domain.ErrNotEnoughStock),
		errors.Is(err, domain.ErrOwnerConflict),
		errors.Is(err, domain.ErrDuplicateKey):
		_ = c.AbortWithError(http.StatusConflict, err).SetType(gin.ErrorTypePublic)
	case errors.Is(err, domain.ErrPermissionDenied):
		c.AbortWithStatus(http.StatusForbidden)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrBalanceFillTooLarge):
		_ = c.AbortWithError(http.StatusUnprocessableEntity, err).SetType(gin.ErrorTypePublic)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}
