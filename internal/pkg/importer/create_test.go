package importer_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complymate/doorguard/app/models"
	"github.com/complymate/doorguard/internal/pkg/importer"
)

func TestCreateBuildingRunsInsideTenantLock(t *testing.T) {
	store := newFakeStore(testTenant())

	building := &models.Building{TenantID: 1, Name: "Maple House", StoreyCount: 1}
	decision, err := importer.CreateBuilding(context.Background(), store, building)
	require.NoError(t, err)

	assert.True(t, decision.Allowed)
	assert.Equal(t, 1, store.lockCalls)
	require.Len(t, store.tx.buildings, 1)
	assert.Equal(t, "Maple House", store.tx.buildings[0].Name)
}

func TestCreateBuildingDeniedLeavesNothingBehind(t *testing.T) {
	tenant := testTenant()
	tenant.MaxBuildings = 2
	store := newFakeStore(tenant)
	store.tx.buildings = []*models.Building{
		{ID: 1, TenantID: 1, Name: "One"},
		{ID: 2, TenantID: 1, Name: "Two"},
	}

	decision, err := importer.CreateBuilding(context.Background(), store,
		&models.Building{TenantID: 1, Name: "Three", StoreyCount: 1})
	require.NoError(t, err)

	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Reason(), "cap is 2")
	assert.Len(t, store.tx.buildings, 2)
}

// The count each create gates on is the one read inside its own locked
// section, so back-to-back creates see each other's inserts and the cap
// holds exactly.
func TestCreateBuildingSequentialCreatesStopAtCap(t *testing.T) {
	tenant := testTenant()
	tenant.MaxBuildings = 3
	store := newFakeStore(tenant)

	created := 0
	for i := 0; i < 5; i++ {
		b := &models.Building{TenantID: 1, Name: fmt.Sprintf("Building %d", i), StoreyCount: 1}
		decision, err := importer.CreateBuilding(context.Background(), store, b)
		require.NoError(t, err)
		if decision.Allowed {
			created++
		}
	}

	assert.Equal(t, 3, created)
	assert.Len(t, store.tx.buildings, 3)
}

func TestCreateFireDoorUnderDoorQuota(t *testing.T) {
	tenant := testTenant()
	tenant.MaxDoors = 1
	store := newFakeStore(tenant)

	first := &models.FireDoor{TenantID: 1, BuildingID: 1, DoorNumber: "D-1", DoorType: models.DOOR_TYPE_OTHER}
	decision, err := importer.CreateFireDoor(context.Background(), store, first)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	second := &models.FireDoor{TenantID: 1, BuildingID: 1, DoorNumber: "D-2", DoorType: models.DOOR_TYPE_OTHER}
	decision, err = importer.CreateFireDoor(context.Background(), store, second)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Len(t, store.tx.doors, 1)
}

func TestCreateFireDoorUnlimitedCap(t *testing.T) {
	tenant := testTenant()
	tenant.MaxDoors = models.CapUnlimited
	store := newFakeStore(tenant)

	for i := 0; i < 200; i++ {
		door := &models.FireDoor{TenantID: 1, BuildingID: 1, DoorNumber: fmt.Sprintf("D-%d", i), DoorType: models.DOOR_TYPE_OTHER}
		decision, err := importer.CreateFireDoor(context.Background(), store, door)
		require.NoError(t, err)
		require.True(t, decision.Allowed)
	}
	assert.Len(t, store.tx.doors, 200)
}
