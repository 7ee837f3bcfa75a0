package repoargs

import "github.com/shopspring/decimal"

type CreatePayment struct {
	OrderDetailsID int64
	AccountID      int64
	UserID         int64
	Quantity       int64
	Price          decimal.Decimal
}
