package repository

import (
	"context"

	"fixly/internal/models"

	"gorm.io/gorm"
)

// HistoryRepository is the append-only location trail. Rows are never updated
// after insert; trimming deletes oldest rows only.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *models.LocationHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListRecent returns up to limit entries for a professional, newest first.
func (r *HistoryRepository) ListRecent(ctx context.Context, professionalID uint, limit int) ([]models.LocationHistory, error) {
	var list []models.LocationHistory
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *HistoryRepository) CountByProfessional(ctx context.Context, professionalID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LocationHistory{}).
		Where("professional_id = ?", professionalID).
		Count(&count).Error
	return count, err
}

// trimBatch caps the id pluck in TrimOldest. MySQL rejects OFFSET without a
// LIMIT clause, and trimming runs on every write so the excess per call is
// tiny anyway.
const trimBatch = 10000

// TrimOldest deletes everything beyond the keep newest entries for a
// professional. MySQL cannot delete from a subquery on the same table, hence
// the id list round trip.
func (r *HistoryRepository) TrimOldest(ctx context.Context, professionalID uint, keep int) error {
	if keep <= 0 {
		return nil
	}
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.LocationHistory{}).
		Where("professional_id = ?", professionalID).
		Order("timestamp DESC").
		Limit(trimBatch).
		Offset(keep).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return err
	}
	return r.db.WithContext(ctx).Unscoped().
		Where("id IN ?", ids).
		Delete(&models.LocationHistory{}).Error
}
