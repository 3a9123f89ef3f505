package models

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "Pending"
	OrderStatusPaid    OrderStatus = "Paid"
)

func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusPaid
}

const (
	FieldUserEmail     = "userEmail"
	FieldStatus        = "status"
	FieldTransactionID = "transactionId"
)
