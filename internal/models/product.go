package models

import "gorm.io/datatypes"

// Product is a seller's listing. The unique index on SellerID enforces the
// one-listing-per-seller rule at the storage layer.
type Product struct {
	BaseModel

	SellerID   string `gorm:"type:uuid;uniqueIndex;not null" json:"seller_id"`
	CategoryID string `gorm:"type:uuid;index;not null" json:"category_id"`

	Title       string         `gorm:"type:varchar(200);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	PriceCents  int64          `gorm:"not null" json:"price_cents"`
	Images      datatypes.JSON `json:"images"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	Category *Category `json:"category,omitempty"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}
