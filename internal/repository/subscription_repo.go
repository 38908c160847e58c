package repository

import (
	"context"

	"fixly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Upsert creates the subscription pair if absent; re-subscribing is a no-op.
func (r *SubscriptionRepository) Upsert(ctx context.Context, subscriberID, professionalID uint) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "professional_id"}},
		DoNothing: true,
	}).Create(&models.Subscription{
		SubscriberID:   subscriberID,
		ProfessionalID: professionalID,
	}).Error
}

// Delete removes the pair; absent pairs succeed silently.
func (r *SubscriptionRepository) Delete(ctx context.Context, subscriberID, professionalID uint) error {
	return r.db.WithContext(ctx).
		Where("subscriber_id = ? AND professional_id = ?", subscriberID, professionalID).
		Delete(&models.Subscription{}).Error
}

// ListSubscriberIDs returns user IDs of everyone subscribed to a professional.
func (r *SubscriptionRepository) ListSubscriberIDs(ctx context.Context, professionalID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("professional_id = ?", professionalID).
		Pluck("subscriber_id", &ids).Error
	return ids, err
}

// ListProfessionalIDs returns professionals a subscriber follows. Used for the
// initial websocket marker sync.
func (r *SubscriptionRepository) ListProfessionalIDs(ctx context.Context, subscriberID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Pluck("professional_id", &ids).Error
	return ids, err
}
