package models

import "time"

// Wishlist membership is boolean: a product is in or out, no quantity or size.
type Wishlist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"uniqueIndex" json:"user_id"`
	Items     []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type WishlistItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WishlistID uint      `gorm:"index;uniqueIndex:idx_wishlist_line" json:"wishlist_id"`
	ProductID  uint      `gorm:"uniqueIndex:idx_wishlist_line" json:"product_id"`
	AddedAt    time.Time `json:"added_at"`
	Product    Product   `gorm:"foreignKey:ProductID" json:"-"`
}

type GuestWishlist struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	GuestID   string              `gorm:"uniqueIndex" json:"guest_id"`
	Items     []GuestWishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type GuestWishlistItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WishlistID uint      `gorm:"index;uniqueIndex:idx_guest_wishlist_line" json:"wishlist_id"`
	ProductID  uint      `gorm:"uniqueIndex:idx_guest_wishlist_line" json:"product_id"`
	AddedAt    time.Time `json:"added_at"`
	Product    Product   `gorm:"foreignKey:ProductID" json:"-"`
}
