package models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ShopProduct - разовый цифровой товар (например, готовый аккаунт).
// После оплаты снимается с продажи.
type ShopProduct struct {
	BaseModel

	Title       string            `gorm:"not null" json:"title"`
	Description string            `json:"description"`
	Category    string            `gorm:"index;not null" json:"category"`
	Price       float64           `gorm:"not null" json:"price"`
	Currency    string            `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`
	Stats       datatypes.JSONMap `gorm:"type:jsonb" json:"stats"`
	Images      pq.StringArray    `gorm:"type:text[];not null;default:'{}'" json:"images"`
	IsAvailable bool              `gorm:"index;not null;default:true" json:"is_available"`
}
