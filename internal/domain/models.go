package domain

import (
	"github.com/shopspring/decimal"

	"time"
)

type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string
	Password  string
	IsSeller  bool
}

type Account struct {
	ID            int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UserID        int64
	AccountNumber string
	Balance       decimal.Decimal
	Status        RecordStatusType
}

type Product struct {
	ID               int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	UserID           int64
	Category         string
	Title            string
	Description      string
	Price            decimal.Decimal
	Amount           int64
	Views            int64
	DefaultAccountID *int64
	Status           RecordStatusType
}

type Address struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    int64
	Address   string
	Status    RecordStatusType
}

type Order struct {
	ID             int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	UserID         int64
	OrderDetailsID int64
	Status         OrderStatusType
	IsPaid         bool
	InCart         bool
}

type OrderDetails struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	ProductID int64
	AddressID int64
	Price     decimal.Decimal
	Quantity  int64
	Status    RecordStatusType
}

type Payment struct {
	ID             int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	OrderDetailsID int64
	AccountID      int64
	UserID         int64
	Quantity       int64
	Price          decimal.Decimal
	Status         RecordStatusType
}

type Review struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    int64
	ProductID int64
	Title     string
	Content   string
	Rating    int32
	Status    RecordStatusType
}

type Comment struct {
	ID        int64
	CreatedAt time.Time
	UserID    int64
	ProductID int64
	ParentID  *int64
	Text      string
}

// FeaturedProduct закладка юзера на товар. Пара (UserID, ProductID) уникальна.
type FeaturedProduct struct {
	ID        int64
	CreatedAt time.Time
	UserID    int64
	ProductID int64
}
