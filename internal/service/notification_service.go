package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"fixly/internal/domain"
	"fixly/internal/models"
)

// DeviceStore persists push-token ownership.
type DeviceStore interface {
	Register(ctx context.Context, userID uint, token, platform string) error
	Deregister(ctx context.Context, token string) error
	ListTokens(ctx context.Context, userID uint) ([]string, error)
}

// Pusher is the external push transport. One call delivers to a batch of
// tokens and reports per-token outcomes.
type Pusher interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (success, failure int, err error)
}

// NotificationStore persists in-app notification records.
type NotificationStore interface {
	Create(n *models.Notification) error
}

// SendResult aggregates a batch delivery. Partial failure is a normal
// outcome, not an error.
type SendResult struct {
	SuccessCount int `json:"success_count"`
	FailureCount int `json:"failure_count"`
}

type NotificationService struct {
	devices DeviceStore
	records NotificationStore
	pusher  Pusher
}

func NewNotificationService(devices DeviceStore, records NotificationStore, pusher Pusher) *NotificationService {
	return &NotificationService{devices: devices, records: records, pusher: pusher}
}

// RegisterDevice upserts a token; re-registering under a new user reassigns
// ownership.
func (s *NotificationService) RegisterDevice(ctx context.Context, userID uint, token, platform string) error {
	if token == "" {
		return fmt.Errorf("%w: token required", domain.ErrInvalidInput)
	}
	if platform == "" {
		platform = "unknown"
	}
	if err := s.devices.Register(ctx, userID, token, platform); err != nil {
		return fmt.Errorf("%w: devices: %v", domain.ErrUpstream, err)
	}
	return nil
}

// DeregisterDevice deletes a token; unknown tokens succeed silently.
func (s *NotificationService) DeregisterDevice(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token required", domain.ErrInvalidInput)
	}
	if err := s.devices.Deregister(ctx, token); err != nil {
		return fmt.Errorf("%w: devices: %v", domain.ErrUpstream, err)
	}
	return nil
}

// Send delivers one message to every device registered for a user as a single
// batch. NotFound when the user has no devices; transport unavailability is an
// upstream failure; token-level failures come back in the result counts.
func (s *NotificationService) Send(ctx context.Context, userID uint, notifType, title, body string, data map[string]string) (*SendResult, error) {
	tokens, err := s.devices.ListTokens(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: devices: %v", domain.ErrUpstream, err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no devices registered for user %d", domain.ErrNotFound, userID)
	}
	if s.pusher == nil {
		return nil, fmt.Errorf("%w: push transport not configured", domain.ErrUpstream)
	}
	s.record(userID, notifType, title, body, data)
	success, failure, err := s.pusher.SendMulticast(ctx, tokens, title, body, data)
	if err != nil {
		return nil, fmt.Errorf("%w: push transport: %v", domain.ErrUpstream, err)
	}
	return &SendResult{SuccessCount: success, FailureCount: failure}, nil
}

// record persists the in-app copy; persistence failures never block delivery.
func (s *NotificationService) record(userID uint, notifType, title, body string, data map[string]string) {
	if s.records == nil {
		return
	}
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	if err := s.records.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	}); err != nil {
		log.Printf("[NOTIFY] persist notification for %d: %v", userID, err)
	}
}

// NotifyLocationUpdate fans a "professional moved" push to all subscribers,
// best effort. Missing devices and transport errors are logged and swallowed.
func (s *NotificationService) NotifyLocationUpdate(ctx context.Context, subscriberIDs []uint, professionalName string, professionalID uint) {
	data := map[string]string{
		"professional_id": fmt.Sprintf("%d", professionalID),
	}
	for _, id := range subscriberIDs {
		if _, err := s.Send(ctx, id, domain.NotifTypeLocationUpdate, "Location update", professionalName+" is on the move", data); err != nil {
			log.Printf("[NOTIFY] location update to %d: %v", id, err)
		}
	}
}
