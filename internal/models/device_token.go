package models

import "time"

// DeviceToken maps a push token to its owning user. The token is the
// identity: re-registering an existing token under another user reassigns
// ownership. Deletes are hard for the same unique-index reason as
// Subscription.
type DeviceToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;size:512;not null" json:"token"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Platform  string    `gorm:"size:20;default:'unknown'" json:"platform"` // android, ios, web
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}
