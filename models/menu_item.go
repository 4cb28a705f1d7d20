package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryFood    Category = "Food"
	CategoryDrink   Category = "Drink"
	CategoryDessert Category = "Dessert"
)

// ParseCategory falls back to Food for unknown values, matching how the
// menu has always been read back from storage.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryFood, CategoryDrink, CategoryDessert:
		return Category(s)
	}
	return CategoryFood
}

type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    Category        `gorm:"type:varchar(20);not null;default:'Food'" json:"category"`
	ImageID     string          `gorm:"type:varchar(255)" json:"image_id"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}
