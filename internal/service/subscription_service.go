package service

import (
	"context"
	"errors"
	"fmt"

	"fixly/internal/domain"
)

// SubscriptionStore persists customer-professional subscription pairs.
type SubscriptionStore interface {
	Upsert(ctx context.Context, subscriberID, professionalID uint) error
	Delete(ctx context.Context, subscriberID, professionalID uint) error
	ListSubscriberIDs(ctx context.Context, professionalID uint) ([]uint, error)
}

// RoleReader is the minimal directory view for subscription checks.
type RoleReader interface {
	GetRole(ctx context.Context, id uint) (string, error)
}

type SubscriptionService struct {
	store     SubscriptionStore
	directory RoleReader
}

func NewSubscriptionService(store SubscriptionStore, directory RoleReader) *SubscriptionService {
	return &SubscriptionService{store: store, directory: directory}
}

// Subscribe idempotently records interest in a professional's location
// updates. NotFound when the target does not exist or is not a professional.
func (s *SubscriptionService) Subscribe(ctx context.Context, subscriberID, professionalID uint) error {
	role, err := s.directory.GetRole(ctx, professionalID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: professional %d", domain.ErrNotFound, professionalID)
	}
	if err != nil {
		return fmt.Errorf("%w: directory: %v", domain.ErrUpstream, err)
	}
	if role != domain.RoleProfessional {
		return fmt.Errorf("%w: user %d is not a professional", domain.ErrNotFound, professionalID)
	}
	if err := s.store.Upsert(ctx, subscriberID, professionalID); err != nil {
		return fmt.Errorf("%w: subscriptions: %v", domain.ErrUpstream, err)
	}
	return nil
}

// Unsubscribe removes the pair; absent pairs succeed silently. Only the
// subscriber identity given here is affected, so ownership is implicit.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, subscriberID, professionalID uint) error {
	if err := s.store.Delete(ctx, subscriberID, professionalID); err != nil {
		return fmt.Errorf("%w: subscriptions: %v", domain.ErrUpstream, err)
	}
	return nil
}

// Subscribers returns everyone following a professional.
func (s *SubscriptionService) Subscribers(ctx context.Context, professionalID uint) ([]uint, error) {
	return s.store.ListSubscriberIDs(ctx, professionalID)
}
