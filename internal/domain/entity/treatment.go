package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Treatment is an entry in the clinic's service and price list.
type Treatment struct {
	ID              int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int             `gorm:"not null;default:30" json:"duration_minutes"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Treatment) TableName() string {
	return "treatments"
}
