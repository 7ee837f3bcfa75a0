package domain

type OrderStatusType string

const (
	OrderStatusNew  OrderStatusType = "NEW"
	OrderStatusPaid OrderStatusType = "PAID"
)

// RecordStatusType статус жизненного цикла записи. Записи физически не удаляются,
// удаление переводит запись в статус RecordStatusDeleted.
type RecordStatusType string

const (
	RecordStatusActive  RecordStatusType = "active"
	RecordStatusDeleted RecordStatusType = "deleted"
)

const (
	ReviewMinRating int32 = 1
	ReviewMaxRating int32 = 5
)
