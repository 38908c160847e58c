package repository

import (
	"context"
	"errors"

	"fixly/internal/domain"
	"fixly/internal/models"

	"gorm.io/gorm"
)

// UserRepository is the professional/customer directory.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var u models.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

// GetRole returns the role for a user or ErrNotFound.
func (r *UserRepository) GetRole(ctx context.Context, id uint) (string, error) {
	var u models.User
	err := r.db.WithContext(ctx).Select("role").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// IsTrackingEnabled reports whether a professional has opted in to tracking.
func (r *UserRepository) IsTrackingEnabled(ctx context.Context, id uint) (bool, error) {
	var u models.User
	err := r.db.WithContext(ctx).Select("tracking_enabled").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, domain.ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return u.TrackingEnabled, nil
}

// SetTrackingEnabled flips the tracking opt-in flag. Location data is left
// untouched; visibility is computed from the flag.
func (r *UserRepository) SetTrackingEnabled(ctx context.Context, id uint, enabled bool) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("tracking_enabled", enabled).Error
}

// SetStatus updates the profile availability status.
func (r *UserRepository) SetStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("status", status).Error
}

// ListProfessionals returns tracking-enabled professionals, optionally
// filtered by availability status. These are the proximity-search candidates.
func (r *UserRepository) ListProfessionals(ctx context.Context, status string) ([]models.User, error) {
	q := r.db.WithContext(ctx).
		Where("role = ? AND tracking_enabled = ?", domain.RoleProfessional, true)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.User
	err := q.Find(&list).Error
	return list, err
}
