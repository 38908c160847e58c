package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"fixly/internal/domain"
	"fixly/internal/models"

	"github.com/stretchr/testify/assert"
)

type fakeRoleDirectory struct {
	roles    map[uint]string
	statuses map[uint]string
	tracking map[uint]bool
}

func newFakeRoleDirectory() *fakeRoleDirectory {
	return &fakeRoleDirectory{
		roles:    make(map[uint]string),
		statuses: make(map[uint]string),
		tracking: make(map[uint]bool),
	}
}

func (d *fakeRoleDirectory) GetRole(_ context.Context, id uint) (string, error) {
	role, ok := d.roles[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return role, nil
}

func (d *fakeRoleDirectory) SetStatus(_ context.Context, id uint, status string) error {
	d.statuses[id] = status
	return nil
}

func (d *fakeRoleDirectory) SetTrackingEnabled(_ context.Context, id uint, enabled bool) error {
	d.tracking[id] = enabled
	return nil
}

type fakeCurrentStore struct {
	records map[uint]*models.CurrentLocation
}

func newFakeCurrentStore() *fakeCurrentStore {
	return &fakeCurrentStore{records: make(map[uint]*models.CurrentLocation)}
}

func (s *fakeCurrentStore) SetCurrent(_ context.Context, loc *models.CurrentLocation) error {
	cp := *loc
	s.records[loc.ProfessionalID] = &cp
	return nil
}

func (s *fakeCurrentStore) GetCurrent(_ context.Context, professionalID uint) (*models.CurrentLocation, error) {
	loc, ok := s.records[professionalID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *loc
	return &cp, nil
}

func (s *fakeCurrentStore) PatchStatus(_ context.Context, professionalID uint, status string) error {
	if loc, ok := s.records[professionalID]; ok {
		loc.Status = status
	}
	return nil
}

type historyRecord struct {
	entry models.LocationHistory
	seq   int
}

type fakeHistoryStore struct {
	entries   map[uint][]historyRecord
	nextSeq   int
	trimCalls []int
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{entries: make(map[uint][]historyRecord)}
}

func (s *fakeHistoryStore) Append(_ context.Context, entry *models.LocationHistory) error {
	s.nextSeq++
	s.entries[entry.ProfessionalID] = append(s.entries[entry.ProfessionalID], historyRecord{entry: *entry, seq: s.nextSeq})
	return nil
}

func (s *fakeHistoryStore) ListRecent(_ context.Context, professionalID uint, limit int) ([]models.LocationHistory, error) {
	recs := append([]historyRecord(nil), s.entries[professionalID]...)
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].entry.Timestamp.Equal(recs[j].entry.Timestamp) {
			return recs[i].entry.Timestamp.After(recs[j].entry.Timestamp)
		}
		return recs[i].seq > recs[j].seq
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]models.LocationHistory, len(recs))
	for i, r := range recs {
		out[i] = r.entry
	}
	return out, nil
}

func (s *fakeHistoryStore) TrimOldest(_ context.Context, professionalID uint, keep int) error {
	s.trimCalls = append(s.trimCalls, keep)
	recs, _ := s.ListRecent(context.Background(), professionalID, keep)
	byID := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		byID[r.ID] = struct{}{}
	}
	var kept []historyRecord
	for _, r := range s.entries[professionalID] {
		if _, ok := byID[r.entry.ID]; ok {
			kept = append(kept, r)
		}
	}
	s.entries[professionalID] = kept
	return nil
}

type fakeSettingsStore struct {
	settings map[uint]*models.TrackingSettings
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{settings: make(map[uint]*models.TrackingSettings)}
}

func (s *fakeSettingsStore) Get(_ context.Context, professionalID uint) (*models.TrackingSettings, error) {
	if existing, ok := s.settings[professionalID]; ok {
		return existing, nil
	}
	created := &models.TrackingSettings{
		ProfessionalID:          professionalID,
		UpdateIntervalSec:       30,
		SignificantChangeMeters: 50,
		MaxHistoryItems:         100,
	}
	s.settings[professionalID] = created
	return created, nil
}

func (s *fakeSettingsStore) Patch(ctx context.Context, professionalID uint, patch *models.TrackingSettingsPatch) (*models.TrackingSettings, error) {
	existing, _ := s.Get(ctx, professionalID)
	if patch.UpdateIntervalSec != nil {
		existing.UpdateIntervalSec = *patch.UpdateIntervalSec
	}
	if patch.SignificantChangeMeters != nil {
		existing.SignificantChangeMeters = *patch.SignificantChangeMeters
	}
	if patch.BatteryOptimization != nil {
		existing.BatteryOptimization = *patch.BatteryOptimization
	}
	if patch.MaxHistoryItems != nil {
		existing.MaxHistoryItems = *patch.MaxHistoryItems
	}
	return existing, nil
}

const proID = uint(42)

func newLocationFixture() (*LocationService, *fakeRoleDirectory, *fakeCurrentStore, *fakeHistoryStore, *fakeSettingsStore) {
	dir := newFakeRoleDirectory()
	dir.roles[proID] = domain.RoleProfessional
	current := newFakeCurrentStore()
	history := newFakeHistoryStore()
	settings := newFakeSettingsStore()
	return NewLocationService(dir, current, history, settings), dir, current, history, settings
}

func TestSetCurrent_RejectsNonProfessional(t *testing.T) {
	svc, dir, _, _, _ := newLocationFixture()
	dir.roles[7] = domain.RoleCustomer

	_, _, err := svc.SetCurrent(context.Background(), 7, PositionUpdate{Latitude: 10, Longitude: 20})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Unknown callers are equally forbidden.
	_, _, err = svc.SetCurrent(context.Background(), 999, PositionUpdate{Latitude: 10, Longitude: 20})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSetCurrent_RejectsOutOfRangeCoordinates(t *testing.T) {
	svc, _, _, _, _ := newLocationFixture()
	for _, tc := range [][2]float64{{91, 0}, {-91, 0}, {0, 181}, {0, -181}} {
		_, _, err := svc.SetCurrent(context.Background(), proID, PositionUpdate{Latitude: tc[0], Longitude: tc[1]})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestSetCurrent_WriteThenReadReturnsWrite(t *testing.T) {
	svc, _, _, _, _ := newLocationFixture()
	written, _, err := svc.SetCurrent(context.Background(), proID, PositionUpdate{Latitude: 12.9716, Longitude: 77.5946})
	assert.NoError(t, err)

	got, err := svc.GetCurrent(context.Background(), proID)
	assert.NoError(t, err)
	assert.Equal(t, written.Latitude, got.Latitude)
	assert.Equal(t, written.Longitude, got.Longitude)
	assert.Equal(t, proID, got.ProfessionalID)
	assert.False(t, got.Timestamp.IsZero())
}

func TestSetCurrent_AppendsHistoryNewestFirst(t *testing.T) {
	svc, _, _, _, _ := newLocationFixture()
	_, _, err := svc.SetCurrent(context.Background(), proID, PositionUpdate{Latitude: 10, Longitude: 20})
	assert.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, _, err = svc.SetCurrent(context.Background(), proID, PositionUpdate{Latitude: 11, Longitude: 21})
	assert.NoError(t, err)

	entries, err := svc.GetHistory(context.Background(), proID, 1)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 11.0, entries[0].Latitude)

	all, err := svc.GetHistory(context.Background(), proID, 20)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 11.0, all[0].Latitude)
	assert.Equal(t, 10.0, all[1].Latitude)
}

func TestGetHistory_NonPositiveLimitIsInvalid(t *testing.T) {
	svc, _, _, _, _ := newLocationFixture()
	_, err := svc.GetHistory(context.Background(), proID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.GetHistory(context.Background(), proID, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetCurrent_TrimsHistoryToMaxItems(t *testing.T) {
	svc, _, _, history, settings := newLocationFixture()
	three := 3
	_, err := settings.Patch(context.Background(), proID, &models.TrackingSettingsPatch{MaxHistoryItems: &three})
	assert.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, _, err := svc.SetCurrent(context.Background(), proID, PositionUpdate{Latitude: float64(10 + i), Longitude: 20})
		assert.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	assert.Len(t, history.entries[proID], 3)

	entries, err := svc.GetHistory(context.Background(), proID, 20)
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	// Oldest entries were dropped, newest kept.
	assert.Equal(t, 14.0, entries[0].Latitude)
	assert.Equal(t, 12.0, entries[2].Latitude)
}

func TestSetCurrent_SignificantChangeFlag(t *testing.T) {
	svc, _, _, _, _ := newLocationFixture()

	// First report is always significant.
	_, significant, err := svc.SetCurrent(context.Background(), proID, PositionUpdate{Latitude: 12.9716, Longitude: 77.5946})
	assert.NoError(t, err)
	assert.True(t, significant)

	// A few meters of drift is below the default 50m threshold.
	_, significant, err = svc.SetCurrent(context.Background(), proID, PositionUpdate{Latitude: 12.97161, Longitude: 77.59461})
	assert.NoError(t, err)
	assert.False(t, significant)

	// ~1km move is significant.
	_, significant, err = svc.SetCurrent(context.Background(), proID, PositionUpdate{Latitude: 12.9716, Longitude: 77.6046})
	assert.NoError(t, err)
	assert.True(t, significant)
}

func TestSetStatus_PatchesCurrentWithoutHistoryEntry(t *testing.T) {
	svc, dir, _, history, _ := newLocationFixture()
	_, _, err := svc.SetCurrent(context.Background(), proID, PositionUpdate{Latitude: 10, Longitude: 20})
	assert.NoError(t, err)
	entriesBefore := len(history.entries[proID])

	err = svc.SetStatus(context.Background(), proID, domain.StatusBusy)
	assert.NoError(t, err)

	assert.Equal(t, domain.StatusBusy, dir.statuses[proID])
	loc, err := svc.GetCurrent(context.Background(), proID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusBusy, loc.Status)
	assert.Equal(t, 10.0, loc.Latitude) // position untouched
	assert.Len(t, history.entries[proID], entriesBefore)

	// Status survives the next position report.
	_, _, err = svc.SetCurrent(context.Background(), proID, PositionUpdate{Latitude: 11, Longitude: 21})
	assert.NoError(t, err)
	loc, _ = svc.GetCurrent(context.Background(), proID)
	assert.Equal(t, domain.StatusBusy, loc.Status)
}

func TestSetStatus_InvalidEnum(t *testing.T) {
	svc, _, _, _, _ := newLocationFixture()
	err := svc.SetStatus(context.Background(), proID, "sleeping")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetStatus_NoCurrentRecordIsFine(t *testing.T) {
	svc, dir, _, _, _ := newLocationFixture()
	err := svc.SetStatus(context.Background(), proID, domain.StatusAvailable)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, dir.statuses[proID])
}

func TestSetTrackingEnabled(t *testing.T) {
	svc, dir, _, _, _ := newLocationFixture()
	assert.NoError(t, svc.SetTrackingEnabled(context.Background(), proID, false))
	assert.False(t, dir.tracking[proID])

	dir.roles[8] = domain.RoleCustomer
	assert.ErrorIs(t, svc.SetTrackingEnabled(context.Background(), 8, true), domain.ErrForbidden)
}

func TestUpdateSettings_MergePatchKeepsUnsetFields(t *testing.T) {
	svc, _, _, _, _ := newLocationFixture()
	interval := 60
	updated, err := svc.UpdateSettings(context.Background(), proID, &models.TrackingSettingsPatch{UpdateIntervalSec: &interval})
	assert.NoError(t, err)
	assert.Equal(t, 60, updated.UpdateIntervalSec)
	assert.Equal(t, 50.0, updated.SignificantChangeMeters) // default untouched
	assert.Equal(t, 100, updated.MaxHistoryItems)          // default untouched

	battery := true
	updated, err = svc.UpdateSettings(context.Background(), proID, &models.TrackingSettingsPatch{BatteryOptimization: &battery})
	assert.NoError(t, err)
	assert.True(t, updated.BatteryOptimization)
	assert.Equal(t, 60, updated.UpdateIntervalSec) // earlier patch preserved
}

func TestUpdateSettings_Validation(t *testing.T) {
	svc, _, _, _, _ := newLocationFixture()
	zero := 0
	_, err := svc.UpdateSettings(context.Background(), proID, &models.TrackingSettingsPatch{UpdateIntervalSec: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateSettings(context.Background(), proID, &models.TrackingSettingsPatch{MaxHistoryItems: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negative := -1.0
	_, err = svc.UpdateSettings(context.Background(), proID, &models.TrackingSettingsPatch{SignificantChangeMeters: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
