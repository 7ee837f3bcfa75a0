package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")

	ErrNotEnoughBalance    = errors.New("not enough balance")
	ErrNoFundingAccount    = errors.New("no funding account")
	ErrOrderAlreadyPaid    = errors.New("order already paid")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrNotEnoughStock      = errors.New("not enough stock")
	ErrValidation          = errors.New("validation error")
	ErrOwnerConflict       = errors.New("owner conflict")
	ErrBalanceFillTooLarge = errors.New("balance fill amount is too large")
)

// ParentCommentError ошибка валидации родительского комментария: родитель не найден
// либо относится к другому продукту.
type ParentCommentError struct {
	ParentID  int64
	ProductID int64
}

func (e *ParentCommentError) Error() string {
	return fmt.Sprintf(
		"parent comment %d does not exist on product %d",
		e.ParentID,
		e.ProductID,
	)
}

func (e *ParentCommentError) Unwrap() error {
	return ErrValidation
}
