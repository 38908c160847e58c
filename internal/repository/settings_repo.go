package repository

import (
	"context"
	"errors"

	"fixly/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the settings row for a professional, creating defaults lazily
// so callers always see a full record.
func (r *SettingsRepository) Get(ctx context.Context, professionalID uint) (*models.TrackingSettings, error) {
	var s models.TrackingSettings
	err := r.db.WithContext(ctx).Where("professional_id = ?", professionalID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = models.TrackingSettings{
			ProfessionalID:          professionalID,
			UpdateIntervalSec:       30,
			SignificantChangeMeters: 50,
			MaxHistoryItems:         100,
		}
		if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
			// a concurrent first access may have won the insert; the row it
			// created is just as good
			var existing models.TrackingSettings
			if retryErr := r.db.WithContext(ctx).Where("professional_id = ?", professionalID).First(&existing).Error; retryErr == nil {
				return &existing, nil
			}
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Patch applies a merge-patch: only non-nil fields overwrite stored values.
func (r *SettingsRepository) Patch(ctx context.Context, professionalID uint, patch *models.TrackingSettingsPatch) (*models.TrackingSettings, error) {
	s, err := r.Get(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if patch.UpdateIntervalSec != nil {
		updates["update_interval_sec"] = *patch.UpdateIntervalSec
	}
	if patch.SignificantChangeMeters != nil {
		updates["significant_change_meters"] = *patch.SignificantChangeMeters
	}
	if patch.BatteryOptimization != nil {
		updates["battery_optimization"] = *patch.BatteryOptimization
	}
	if patch.MaxHistoryItems != nil {
		updates["max_history_items"] = *patch.MaxHistoryItems
	}
	if len(updates) == 0 {
		return s, nil
	}
	if err := r.db.WithContext(ctx).Model(s).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s, nil
}
