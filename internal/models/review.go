package models

// Review is a buyer's rating of a product; one review per (product, buyer).
type Review struct {
	BaseModel

	ProductID string `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_buyer" json:"product_id"`
	BuyerID   string `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_buyer" json:"buyer_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:varchar(500)" json:"comment"`

	Buyer *User `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
}
