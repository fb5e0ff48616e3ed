package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one selected variant line. Product display fields are joined at
// read time against the live catalog row, never snapshotted, so price changes
// show up immediately in an open cart.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index;uniqueIndex:idx_cart_line" json:"cart_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_line" json:"product_id"`
	Size      string    `gorm:"uniqueIndex:idx_cart_line" json:"size"`
	Color     string    `gorm:"uniqueIndex:idx_cart_line" json:"color"`
	Quantity  int       `json:"quantity"` // 1..10
	AddedAt   time.Time `json:"added_at"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
}

// MaxLineQuantity caps a single cart line.
const MaxLineQuantity = 10
