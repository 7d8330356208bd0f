package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a catalog entry the target price is compared against.
type Item struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string          `json:"name" gorm:"type:varchar(255);not null;index"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(8,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
