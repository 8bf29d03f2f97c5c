package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCanceled  OrderStatus = "canceled"
)

// CanTransitionTo reports whether the status machine permits moving to
// next. Pending may complete or cancel; both of those are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusCompleted || next == StatusCanceled
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

type Order struct {
	ID         uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID uint64      `json:"customerId" gorm:"not null;index"`
	Status     OrderStatus `json:"status" gorm:"size:16;not null;default:'pending';index"`
	PlacedAt   time.Time   `json:"placedAt" gorm:"autoCreateTime"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID        uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64 `json:"orderId" gorm:"not null;index"`
	ProductID uint64 `json:"productId" gorm:"not null;index"`
	Quantity  int    `json:"quantity" gorm:"not null"`
}
