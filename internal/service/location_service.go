package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fixly/internal/domain"
	"fixly/internal/models"
	"fixly/pkg/geo"

	"github.com/google/uuid"
)

// Directory is the typed capability view of the user store used by the
// tracking subsystem.
type Directory interface {
	GetRole(ctx context.Context, id uint) (string, error)
	SetStatus(ctx context.Context, id uint, status string) error
	SetTrackingEnabled(ctx context.Context, id uint, enabled bool) error
}

// CurrentStore holds the single live position record per professional.
type CurrentStore interface {
	SetCurrent(ctx context.Context, loc *models.CurrentLocation) error
	GetCurrent(ctx context.Context, professionalID uint) (*models.CurrentLocation, error)
	PatchStatus(ctx context.Context, professionalID uint, status string) error
}

// HistoryStore is the append-only position trail.
type HistoryStore interface {
	Append(ctx context.Context, entry *models.LocationHistory) error
	ListRecent(ctx context.Context, professionalID uint, limit int) ([]models.LocationHistory, error)
	TrimOldest(ctx context.Context, professionalID uint, keep int) error
}

// SettingsStore holds per-professional tracking configuration.
type SettingsStore interface {
	Get(ctx context.Context, professionalID uint) (*models.TrackingSettings, error)
	Patch(ctx context.Context, professionalID uint, patch *models.TrackingSettingsPatch) (*models.TrackingSettings, error)
}

// PositionUpdate is a professional-reported position. Status and timestamp are
// server-assigned.
type PositionUpdate struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64
	Speed     *float64
	Heading   *float64
}

// LocationService owns current-position and history writes plus the
// tracking settings surface.
type LocationService struct {
	directory Directory
	current   CurrentStore
	history   HistoryStore
	settings  SettingsStore
}

func NewLocationService(directory Directory, current CurrentStore, history HistoryStore, settings SettingsStore) *LocationService {
	return &LocationService{directory: directory, current: current, history: history, settings: settings}
}

func (s *LocationService) requireProfessional(ctx context.Context, id uint) error {
	role, err := s.directory.GetRole(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: not a professional", domain.ErrForbidden)
	}
	if err != nil {
		return fmt.Errorf("%w: directory: %v", domain.ErrUpstream, err)
	}
	if role != domain.RoleProfessional {
		return fmt.Errorf("%w: not a professional", domain.ErrForbidden)
	}
	return nil
}

// SetCurrent overwrites the professional's current position and appends a
// history entry with the same payload. The returned bool reports whether the
// move exceeded the professional's significant-change threshold, so callers
// can decide whether to fan out notifications.
func (s *LocationService) SetCurrent(ctx context.Context, professionalID uint, pos PositionUpdate) (*models.CurrentLocation, bool, error) {
	if err := s.requireProfessional(ctx, professionalID); err != nil {
		return nil, false, err
	}
	if !geo.ValidCoordinates(pos.Latitude, pos.Longitude) {
		return nil, false, fmt.Errorf("%w: latitude must be in [-90,90] and longitude in [-180,180]", domain.ErrInvalidInput)
	}

	prev, err := s.current.GetCurrent(ctx, professionalID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		// Previous record unreadable; the write still proceeds.
		prev = nil
	}
	status := domain.StatusAvailable
	if prev != nil && prev.Status != "" {
		status = prev.Status
	}
	loc := &models.CurrentLocation{
		ProfessionalID: professionalID,
		Latitude:       pos.Latitude,
		Longitude:      pos.Longitude,
		Accuracy:       pos.Accuracy,
		Speed:          pos.Speed,
		Heading:        pos.Heading,
		Status:         status,
		Timestamp:      time.Now().UTC(),
	}
	if err := s.current.SetCurrent(ctx, loc); err != nil {
		return nil, false, err
	}

	entry := &models.LocationHistory{
		ID:             uuid.NewString(),
		ProfessionalID: professionalID,
		Latitude:       loc.Latitude,
		Longitude:      loc.Longitude,
		Accuracy:       loc.Accuracy,
		Speed:          loc.Speed,
		Heading:        loc.Heading,
		Status:         loc.Status,
		Timestamp:      loc.Timestamp,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		return nil, false, fmt.Errorf("%w: append history: %v", domain.ErrUpstream, err)
	}

	settings, err := s.settings.Get(ctx, professionalID)
	if err != nil {
		// Trim and threshold fall back to defaults when settings are unreadable.
		log.Printf("[LOCATION] settings for %d unavailable: %v", professionalID, err)
		settings = &models.TrackingSettings{SignificantChangeMeters: 50, MaxHistoryItems: 100}
	}
	if settings.MaxHistoryItems > 0 {
		if err := s.history.TrimOldest(ctx, professionalID, settings.MaxHistoryItems); err != nil {
			log.Printf("[LOCATION] trim history for %d: %v", professionalID, err)
		}
	}

	significant := prev == nil ||
		geo.HaversineMeters(prev.Latitude, prev.Longitude, loc.Latitude, loc.Longitude) >= settings.SignificantChangeMeters
	return loc, significant, nil
}

// GetCurrent returns the live position or ErrNotFound when none is recorded.
func (s *LocationService) GetCurrent(ctx context.Context, professionalID uint) (*models.CurrentLocation, error) {
	return s.current.GetCurrent(ctx, professionalID)
}

// GetHistory returns up to limit entries, newest first. Limit must be positive.
func (s *LocationService) GetHistory(ctx context.Context, professionalID uint, limit int) ([]models.LocationHistory, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidInput)
	}
	list, err := s.history.ListRecent(ctx, professionalID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list history: %v", domain.ErrUpstream, err)
	}
	return list, nil
}

// SetStatus updates the availability status on the profile and, when a current
// position exists, patches its status in place. No history entry is emitted:
// status changes are not positional events.
func (s *LocationService) SetStatus(ctx context.Context, professionalID uint, status string) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: status must be available, busy or offline", domain.ErrInvalidInput)
	}
	if err := s.requireProfessional(ctx, professionalID); err != nil {
		return err
	}
	if err := s.directory.SetStatus(ctx, professionalID, status); err != nil {
		return fmt.Errorf("%w: directory: %v", domain.ErrUpstream, err)
	}
	return s.current.PatchStatus(ctx, professionalID, status)
}

// SetTrackingEnabled flips the opt-in flag on the directory; while off the
// professional is excluded from proximity matches even if a current position
// is still stored.
func (s *LocationService) SetTrackingEnabled(ctx context.Context, professionalID uint, enabled bool) error {
	if err := s.requireProfessional(ctx, professionalID); err != nil {
		return err
	}
	if err := s.directory.SetTrackingEnabled(ctx, professionalID, enabled); err != nil {
		return fmt.Errorf("%w: directory: %v", domain.ErrUpstream, err)
	}
	return nil
}

// UpdateSettings merge-patches the tracking settings; nil fields keep their
// prior values.
func (s *LocationService) UpdateSettings(ctx context.Context, professionalID uint, patch *models.TrackingSettingsPatch) (*models.TrackingSettings, error) {
	if err := s.requireProfessional(ctx, professionalID); err != nil {
		return nil, err
	}
	if patch.UpdateIntervalSec != nil && *patch.UpdateIntervalSec <= 0 {
		return nil, fmt.Errorf("%w: update_interval_sec must be positive", domain.ErrInvalidInput)
	}
	if patch.MaxHistoryItems != nil && *patch.MaxHistoryItems <= 0 {
		return nil, fmt.Errorf("%w: max_history_items must be positive", domain.ErrInvalidInput)
	}
	if patch.SignificantChangeMeters != nil && *patch.SignificantChangeMeters < 0 {
		return nil, fmt.Errorf("%w: significant_change_meters must not be negative", domain.ErrInvalidInput)
	}
	updated, err := s.settings.Patch(ctx, professionalID, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: settings: %v", domain.ErrUpstream, err)
	}
	return updated, nil
}

// GetSettings returns the effective settings for a professional.
func (s *LocationService) GetSettings(ctx context.Context, professionalID uint) (*models.TrackingSettings, error) {
	if err := s.requireProfessional(ctx, professionalID); err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("%w: settings: %v", domain.ErrUpstream, err)
	}
	return settings, nil
}
