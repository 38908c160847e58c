package service

import (
	"context"
	"testing"

	"fixly/internal/domain"

	"github.com/stretchr/testify/assert"
)

type pair struct{ subscriber, professional uint }

type fakeSubscriptionStore struct {
	pairs map[pair]struct{}
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{pairs: make(map[pair]struct{})}
}

func (s *fakeSubscriptionStore) Upsert(_ context.Context, subscriberID, professionalID uint) error {
	s.pairs[pair{subscriberID, professionalID}] = struct{}{}
	return nil
}

func (s *fakeSubscriptionStore) Delete(_ context.Context, subscriberID, professionalID uint) error {
	delete(s.pairs, pair{subscriberID, professionalID})
	return nil
}

func (s *fakeSubscriptionStore) ListSubscriberIDs(_ context.Context, professionalID uint) ([]uint, error) {
	var ids []uint
	for p := range s.pairs {
		if p.professional == professionalID {
			ids = append(ids, p.subscriber)
		}
	}
	return ids, nil
}

func newSubscriptionFixture() (*SubscriptionService, *fakeSubscriptionStore, *fakeRoleDirectory) {
	store := newFakeSubscriptionStore()
	dir := newFakeRoleDirectory()
	dir.roles[10] = domain.RoleProfessional
	dir.roles[20] = domain.RoleCustomer
	return NewSubscriptionService(store, dir), store, dir
}

func TestSubscribe_IsIdempotent(t *testing.T) {
	svc, store, _ := newSubscriptionFixture()

	assert.NoError(t, svc.Subscribe(context.Background(), 1, 10))
	assert.NoError(t, svc.Subscribe(context.Background(), 1, 10))
	assert.Len(t, store.pairs, 1)
}

func TestSubscribe_UnknownProfessional(t *testing.T) {
	svc, _, _ := newSubscriptionFixture()
	assert.ErrorIs(t, svc.Subscribe(context.Background(), 1, 999), domain.ErrNotFound)
}

func TestSubscribe_TargetMustBeProfessional(t *testing.T) {
	svc, _, _ := newSubscriptionFixture()
	assert.ErrorIs(t, svc.Subscribe(context.Background(), 1, 20), domain.ErrNotFound)
}

func TestUnsubscribe_AbsentPairSucceeds(t *testing.T) {
	svc, _, _ := newSubscriptionFixture()
	assert.NoError(t, svc.Unsubscribe(context.Background(), 1, 10))
}

func TestUnsubscribe_RemovesPair(t *testing.T) {
	svc, store, _ := newSubscriptionFixture()
	assert.NoError(t, svc.Subscribe(context.Background(), 1, 10))
	assert.NoError(t, svc.Unsubscribe(context.Background(), 1, 10))
	assert.Empty(t, store.pairs)

	// Re-subscribing after unsubscribe works.
	assert.NoError(t, svc.Subscribe(context.Background(), 1, 10))
	assert.Len(t, store.pairs, 1)
}

func TestSubscribers_ListsFollowers(t *testing.T) {
	svc, _, _ := newSubscriptionFixture()
	assert.NoError(t, svc.Subscribe(context.Background(), 1, 10))
	assert.NoError(t, svc.Subscribe(context.Background(), 2, 10))

	ids, err := svc.Subscribers(context.Background(), 10)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2}, ids)
}
