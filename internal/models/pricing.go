package models

import (
	"time"
)

// PricingSettingsID is the fixed key of the single pricing row. Upserts
// always target this id so exactly one configuration exists system-wide.
const PricingSettingsID = 1

// PricingSettings holds the fare configuration read by every role that
// needs a quote. Admin-writable only.
type PricingSettings struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	BaseFare        float64   `json:"baseFare" gorm:"column:base_fare;not null;default:25"`
	PerKm           float64   `json:"perKm" gorm:"column:per_km;not null;default:10"`
	SurgeMultiplier float64   `json:"surgeMultiplier" gorm:"column:surge_multiplier;not null;default:1"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (PricingSettings) TableName() string {
	return "pricing_settings"
}
