package models

// Category groups product listings for browsing and filtering.
type Category struct {
	BaseModel

	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}
