package repoargs

import (
	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateOrderDetails struct {
	ProductID int64
	AddressID int64
	Price     decimal.Decimal
	Quantity  int64
}

type CreateOrder struct {
	UserID         int64
	OrderDetailsID int64
	Status         domain.OrderStatusType
}

type UpdateOrderQuantity struct {
	OrderDetailsID int64
	Quantity       int64
	Price          decimal.Decimal
}
