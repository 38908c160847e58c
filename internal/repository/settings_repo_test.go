package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var settingsColumns = []string{
	"id", "professional_id", "update_interval_sec",
	"significant_change_meters", "battery_optimization", "max_history_items",
}

func TestSettingsGet_LazilyCreatesDefaults(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	mock.ExpectQuery("SELECT .+ FROM .tracking_settings. WHERE professional_id =").
		WillReturnRows(sqlmock.NewRows(settingsColumns))
	mock.ExpectExec("INSERT INTO .tracking_settings.").
		WillReturnResult(sqlmock.NewResult(1, 1))

	s, err := repo.Get(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), s.ProfessionalID)
	assert.Equal(t, 30, s.UpdateIntervalSec)
	assert.Equal(t, 50.0, s.SignificantChangeMeters)
	assert.Equal(t, 100, s.MaxHistoryItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsGet_RereadsAfterLostInsertRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	// Two requests race the lazy create; the loser's insert hits the unique
	// professional_id index and must fall back to the winner's row.
	mock.ExpectQuery("SELECT .+ FROM .tracking_settings. WHERE professional_id =").
		WillReturnRows(sqlmock.NewRows(settingsColumns))
	mock.ExpectExec("INSERT INTO .tracking_settings.").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '42' for key 'tracking_settings.idx_tracking_settings_professional_id'"))
	mock.ExpectQuery("SELECT .+ FROM .tracking_settings. WHERE professional_id =").
		WillReturnRows(sqlmock.NewRows(settingsColumns).
			AddRow(7, 42, 15, 25.0, true, 50))

	s, err := repo.Get(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, 15, s.UpdateIntervalSec)
	assert.Equal(t, 25.0, s.SignificantChangeMeters)
	assert.Equal(t, 50, s.MaxHistoryItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}
