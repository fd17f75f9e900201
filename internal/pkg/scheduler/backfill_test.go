package scheduler_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/complymate/doorguard/app/models"
	"github.com/complymate/doorguard/internal/pkg/scheduler"
)

type fakeBackfillStore struct {
	inspections []models.Inspection
	dueByID     map[uint]time.Time
	setErr      error
}

func (s *fakeBackfillStore) ListMissingNextDue(tenantID uint) ([]models.Inspection, error) {
	var missing []models.Inspection
	for _, insp := range s.inspections {
		if insp.TenantID != tenantID {
			continue
		}
		if _, done := s.dueByID[insp.ID]; done {
			continue
		}
		missing = append(missing, insp)
	}
	return missing, nil
}

func (s *fakeBackfillStore) SetNextDue(inspectionID uint, due time.Time) error {
	if s.setErr != nil {
		return s.setErr
	}
	if s.dueByID == nil {
		s.dueByID = map[uint]time.Time{}
	}
	s.dueByID[inspectionID] = due
	return nil
}

func inspectionFor(id uint, doorType string, height *float64, inspectedAt time.Time) models.Inspection {
	return models.Inspection{
		ID:          id,
		TenantID:    1,
		InspectedAt: inspectedAt,
		FireDoor: &models.FireDoor{
			DoorType: doorType,
			Building: &models.Building{TopStoreyHeightM: height},
		},
	}
}

func TestBackfill(t *testing.T) {
	height := 14.0
	inspected := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	store := &fakeBackfillStore{inspections: []models.Inspection{
		inspectionFor(1, models.DOOR_TYPE_FLAT_ENTRANCE, nil, inspected),
		inspectionFor(2, models.DOOR_TYPE_OTHER, &height, inspected),
	}}

	updated, err := scheduler.Backfill(store, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, updated)

	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), store.dueByID[1])
	assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), store.dueByID[2])
}

func TestBackfillIsIdempotent(t *testing.T) {
	inspected := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeBackfillStore{inspections: []models.Inspection{
		inspectionFor(1, models.DOOR_TYPE_COMMUNAL, nil, inspected),
	}}

	first, err := scheduler.Backfill(store, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := scheduler.Backfill(store, 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, second)
}

func TestBackfillSkipsUnloadedDoors(t *testing.T) {
	inspected := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeBackfillStore{inspections: []models.Inspection{
		{ID: 1, TenantID: 1, InspectedAt: inspected},
		inspectionFor(2, models.DOOR_TYPE_OTHER, nil, inspected),
	}}

	updated, err := scheduler.Backfill(store, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.NotContains(t, store.dueByID, uint(1))
}

func TestBackfillStopsOnStoreError(t *testing.T) {
	inspected := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeBackfillStore{
		inspections: []models.Inspection{inspectionFor(1, models.DOOR_TYPE_OTHER, nil, inspected)},
		setErr:      errors.New("connection lost"),
	}

	updated, err := scheduler.Backfill(store, 1)
	assert.Error(t, err)
	assert.Equal(t, 0, updated)
}
