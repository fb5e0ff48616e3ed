package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is the durable record of a purchase. CheckoutSessionID is the
// idempotency key: at most one order ever exists per payment session.
type Order struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	UserID            string      `gorm:"index;not null" json:"user_id"`
	CheckoutSessionID string      `gorm:"uniqueIndex;not null" json:"checkout_session_id"`
	Total             float64     `json:"total"` // snapshot at creation, never recomputed
	Status            OrderStatus `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	Address           string      `json:"address"` // shipping address serialized at order time
	Items             []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt         time.Time   `json:"created_at"`
}

// OrderItem snapshots the unit price and display fields at purchase time,
// decoupled from the live product row. Immutable after creation.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"index" json:"order_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	Price        float64 `json:"price"` // unit price at purchase time
	Quantity     int     `json:"quantity"`
}
