package repoargs

import "github.com/shopspring/decimal"

type CreateProduct struct {
	UserID           int64
	Category         string
	Title            string
	Description      string
	Price            decimal.Decimal
	Amount           int64
	DefaultAccountID *int64
}

type UpdateProduct struct {
	Category         *string
	Title            *string
	Description      *string
	Price            *decimal.Decimal
	Amount           *int64
	DefaultAccountID *int64
}

type ProductFilter struct {
	Search string
	UserID *int64
	Limit  uint
}
