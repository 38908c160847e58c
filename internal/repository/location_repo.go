package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fixly/internal/domain"
	"fixly/internal/models"

	"github.com/redis/go-redis/v9"
)

const currentLocationKeyPrefix = "loc:current:"

// LocationRepository is the hot current-position store: one JSON record per
// professional in Redis with a TTL, last-writer-wins.
type LocationRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLocationRepository(client *redis.Client, ttl time.Duration) *LocationRepository {
	return &LocationRepository{client: client, ttl: ttl}
}

func currentLocationKey(professionalID uint) string {
	return fmt.Sprintf("%s%d", currentLocationKeyPrefix, professionalID)
}

// SetCurrent overwrites the current position record.
func (r *LocationRepository) SetCurrent(ctx context.Context, loc *models.CurrentLocation) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("marshal location: %w", err)
	}
	if err := r.client.Set(ctx, currentLocationKey(loc.ProfessionalID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set current location: %v", domain.ErrUpstream, err)
	}
	return nil
}

// GetCurrent returns the current position or ErrNotFound when none is recorded.
func (r *LocationRepository) GetCurrent(ctx context.Context, professionalID uint) (*models.CurrentLocation, error) {
	data, err := r.client.Get(ctx, currentLocationKey(professionalID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get current location: %v", domain.ErrUpstream, err)
	}
	var loc models.CurrentLocation
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		return nil, fmt.Errorf("unmarshal location: %w", err)
	}
	return &loc, nil
}

// PatchStatus rewrites only the status field of an existing current record,
// keeping position fields and timestamp intact. Missing records are a no-op:
// a status change is not a positional event.
func (r *LocationRepository) PatchStatus(ctx context.Context, professionalID uint, status string) error {
	loc, err := r.GetCurrent(ctx, professionalID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	loc.Status = status
	return r.SetCurrent(ctx, loc)
}

// Delete removes the current record. Used by tests and account teardown.
func (r *LocationRepository) Delete(ctx context.Context, professionalID uint) error {
	return r.client.Del(ctx, currentLocationKey(professionalID)).Err()
}
