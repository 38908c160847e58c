package models

import (
	"time"

	"gorm.io/gorm"
)

// TrackingSettings holds per-professional tracking configuration. Updates are
// merge-patch: fields absent from the request keep their prior value.
type TrackingSettings struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"uniqueIndex;not null" json:"professional_id"`
	// UpdateIntervalSec is the suggested client-side reporting cadence.
	UpdateIntervalSec int `gorm:"default:30" json:"update_interval_sec"`
	// SignificantChangeMeters is the minimum movement before subscribers are
	// notified of a location change.
	SignificantChangeMeters float64        `gorm:"type:decimal(8,2);default:50" json:"significant_change_meters"`
	BatteryOptimization     bool           `gorm:"default:false" json:"battery_optimization"`
	MaxHistoryItems         int            `gorm:"default:100" json:"max_history_items"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TrackingSettings) TableName() string {
	return "tracking_settings"
}

// TrackingSettingsPatch carries a merge-patch of TrackingSettings; nil fields
// are left unchanged.
type TrackingSettingsPatch struct {
	UpdateIntervalSec       *int     `json:"update_interval_sec"`
	SignificantChangeMeters *float64 `json:"significant_change_meters"`
	BatteryOptimization     *bool    `json:"battery_optimization"`
	MaxHistoryItems         *int     `json:"max_history_items"`
}
