package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"` // URL-safe, generated from Name
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Category    string     `gorm:"index" json:"category"`
	Gender      string     `gorm:"index" json:"gender"`
	Collections StringList `gorm:"type:text" json:"collections"`
	Price       float64    `gorm:"not null" json:"price"`
	Stock       int        `json:"stock"`
	InStock     bool       `json:"in_stock"` // kept equal to stock > 0 on every stock write
	Images      StringList `gorm:"type:text" json:"images"`
	Sizes       StringList `gorm:"type:text" json:"sizes"`
	Featured    bool       `json:"featured"`
	NewArrival  bool       `json:"new_arrival"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"review_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"` // soft delete keeps order snapshots resolvable
}

// FirstImage returns the primary image URL or a placeholder.
func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return "/placeholder-product.png"
}
