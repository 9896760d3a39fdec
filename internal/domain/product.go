package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"not null;size:255"`
	Description string          `json:"description" gorm:"size:2000"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;check:stock >= 0"`
	ImageURL    string          `json:"imageUrl" gorm:"column:image_url;size:255"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	CategoryID  uint64          `json:"categoryId" gorm:"not null;index"`
	Category    Category        `json:"category" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}
