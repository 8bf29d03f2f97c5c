package domain

import "time"

// Routing keys for domain events published to the message broker.
const (
	EventUserRegistered = "user.registered"
	EventOrderCompleted = "order.completed"
	EventOrderCanceled  = "order.canceled"
)

type UserRegisteredEvent struct {
	UserID     uint64    `json:"userId"`
	CustomerID uint64    `json:"customerId"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OrderStatusEvent struct {
	OrderID    uint64      `json:"orderId"`
	CustomerID uint64      `json:"customerId"`
	Status     OrderStatus `json:"status"`
	PlacedAt   time.Time   `json:"placedAt"`
}
