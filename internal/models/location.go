package models

import (
	"time"

	"gorm.io/gorm"
)

// CurrentLocation is the most recently reported position for a professional.
// It lives in Redis as a JSON record keyed by professional ID (last-writer-wins,
// at most one record per professional), not in MySQL.
type CurrentLocation struct {
	ProfessionalID uint     `json:"professional_id"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Accuracy       *float64 `json:"accuracy,omitempty"`
	Speed          *float64 `json:"speed,omitempty"`
	Heading        *float64 `json:"heading,omitempty"`
	Status         string   `json:"status"` // available | busy | offline
	// Timestamp is server-assigned on write.
	Timestamp time.Time `json:"timestamp"`
}

// LocationHistory is an immutable record of a past reported position.
// Rows are append-only; read paths re-sort by timestamp desc and must not
// assume store-side ordering.
type LocationHistory struct {
	ID             string         `gorm:"type:char(36);primaryKey" json:"id"`
	ProfessionalID uint           `gorm:"not null;index:idx_history_pro_ts" json:"professional_id"`
	Latitude       float64        `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude      float64        `gorm:"type:decimal(11,8);not null" json:"longitude"`
	Accuracy       *float64       `gorm:"type:decimal(8,2)" json:"accuracy,omitempty"`
	Speed          *float64       `gorm:"type:decimal(8,2)" json:"speed,omitempty"`
	Heading        *float64       `gorm:"type:decimal(8,2)" json:"heading,omitempty"`
	Status         string         `gorm:"size:20" json:"status"`
	Timestamp      time.Time      `gorm:"not null;index:idx_history_pro_ts" json:"timestamp"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LocationHistory) TableName() string {
	return "location_history"
}
