package repository

import (
	"context"

	"fixly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Register upserts a device token. The token is the identity: registering an
// existing token under another user reassigns ownership.
func (r *DeviceRepository) Register(ctx context.Context, userID uint, token, platform string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "updated_at"}),
	}).Create(&models.DeviceToken{
		Token:    token,
		UserID:   userID,
		Platform: platform,
	}).Error
}

// Deregister deletes by token; unknown tokens succeed silently.
func (r *DeviceRepository) Deregister(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.DeviceToken{}).Error
}

// ListTokens returns all push tokens registered for a user.
func (r *DeviceRepository) ListTokens(ctx context.Context, userID uint) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).Model(&models.DeviceToken{}).
		Where("user_id = ?", userID).
		Pluck("token", &tokens).Error
	return tokens, err
}
