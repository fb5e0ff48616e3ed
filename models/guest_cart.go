package models

import "time"

// GuestCart holds an anonymous visitor's cart until it is merged into a user
// cart at login.
type GuestCart struct {
	CartID    uint            `gorm:"primaryKey" json:"cart_id"`
	GuestID   string          `gorm:"uniqueIndex" json:"guest_id"` // Enforces ONE cart per guest
	Items     []GuestCartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type GuestCartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index;uniqueIndex:idx_guest_cart_line" json:"cart_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_guest_cart_line" json:"product_id"`
	Size      string    `gorm:"uniqueIndex:idx_guest_cart_line" json:"size"`
	Color     string    `gorm:"uniqueIndex:idx_guest_cart_line" json:"color"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
}
