package models

import "time"

// Subscription records a customer's interest in a professional's location
// updates. At most one row per (subscriber, professional) pair; deletes are
// hard so a later re-subscribe never collides with the unique index.
type Subscription struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SubscriberID   uint      `gorm:"uniqueIndex:idx_sub_pair;not null" json:"subscriber_id"`
	ProfessionalID uint      `gorm:"uniqueIndex:idx_sub_pair;not null;index" json:"professional_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
