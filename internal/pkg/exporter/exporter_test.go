package exporter_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/complymate/doorguard/app/models"
	"github.com/complymate/doorguard/internal/pkg/exporter"
	"github.com/complymate/doorguard/internal/pkg/importer"
	"github.com/complymate/doorguard/internal/pkg/schema"
)

func parseCSV(t *testing.T, body []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 6, 1, 23, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	// The embedded date is the UTC date, not the local one.
	assert.Equal(t, "doorguard_doors_2024-06-01.csv", exporter.Filename("doors", now))
}

func TestTemplateMatchesImportSchema(t *testing.T) {
	for _, entity := range []string{"buildings", "doors"} {
		body, err := exporter.Template(entity)
		require.NoError(t, err)

		records := parseCSV(t, body)
		require.Len(t, records, 1)

		sch, _ := schema.ForEntity(entity)
		assert.Equal(t, sch.Headers(), records[0])
	}

	_, err := exporter.Template("inspectors")
	assert.Error(t, err)
}

func TestGuideCoversEveryColumn(t *testing.T) {
	body, err := exporter.Guide()
	require.NoError(t, err)

	records := parseCSV(t, body)
	wantRows := len(schema.Buildings().Fields) + len(schema.Doors().Fields)
	require.Len(t, records, wantRows+1)

	assert.Equal(t, []string{"Template", "Column", "Required", "Description"}, records[0])
	for _, row := range records[1:] {
		assert.NotEmpty(t, row[3], "column %s has no description", row[1])
	}
}

func TestBuildingsCSV(t *testing.T) {
	height := 14.5
	buildings := []models.Building{
		{
			Name:             "Maple House",
			AddressLine1:     "1 High Street",
			City:             "Leeds",
			Postcode:         "LS1 4AP",
			BuildingType:     "residential",
			StoreyCount:      6,
			TopStoreyHeightM: &height,
		},
		{Name: "Oak Court", BuildingType: "commercial", StoreyCount: 2},
	}

	body, err := exporter.BuildingsCSV(buildings)
	require.NoError(t, err)

	records := parseCSV(t, body)
	require.Len(t, records, 3)
	assert.Equal(t, schema.Buildings().Headers(), records[0])
	assert.Equal(t, []string{"Maple House", "1 High Street", "", "Leeds", "LS1 4AP", "residential", "6", "14.5", "", ""}, records[1])
	assert.Equal(t, "", records[2][7], "missing height stays blank")
}

func TestDoorsCSV(t *testing.T) {
	last := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	doors := []models.FireDoor{
		{
			Building:         &models.Building{Name: "Maple House"},
			DoorNumber:       "D-101",
			Location:         "Floor 1",
			DoorType:         models.DOOR_TYPE_FLAT_ENTRANCE,
			FireRating:       "FD30",
			LastInspectionAt: &last,
		},
		{DoorNumber: "D-2", DoorType: models.DOOR_TYPE_OTHER},
	}

	body, err := exporter.DoorsCSV(doors)
	require.NoError(t, err)

	records := parseCSV(t, body)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Maple House", "D-101", "Floor 1", "FLAT_ENTRANCE", "FD30", "2024-01-31"}, records[1])
	assert.Equal(t, "", records[2][0], "door without preloaded building exports a blank reference")
	assert.Equal(t, "", records[2][5])
}

func TestCSVQuoting(t *testing.T) {
	buildings := []models.Building{{
		Name:         `The "Old" Mill, East Wing`,
		AddressLine1: "1 High Street\nRear Entrance",
		StoreyCount:  1,
	}}

	body, err := exporter.BuildingsCSV(buildings)
	require.NoError(t, err)

	// Raw output must quote the troublesome fields.
	assert.Contains(t, string(body), `"The ""Old"" Mill, East Wing"`)

	// And a standard CSV reader must recover the original values.
	records := parseCSV(t, body)
	assert.Equal(t, `The "Old" Mill, East Wing`, records[1][0])
	assert.Equal(t, "1 High Street\nRear Entrance", records[1][1])
}

// Exported documents must be importable without edits: same columns, same
// order, same formats.
func TestExportImportRoundTrip(t *testing.T) {
	height := 14.5
	buildings := []models.Building{
		{Name: "Maple House", City: "Leeds", BuildingType: "residential", StoreyCount: 6, TopStoreyHeightM: &height},
		{Name: "Oak Court", BuildingType: "commercial", StoreyCount: 2},
	}

	body, err := exporter.BuildingsCSV(buildings)
	require.NoError(t, err)

	store := newFakeStore(&models.Tenant{ID: 1, MaxBuildings: 10})
	im := importer.New(store)
	report, err := im.Run(context.Background(), 1, importer.KindBuildings, bytes.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, 2, report.CreatedCount)
	assert.Equal(t, 0, report.RejectedCount)
}

func TestTemplateXLSX(t *testing.T) {
	body, err := exporter.TemplateXLSX("doors")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Import")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, schema.Doors().Headers(), rows[0])

	_, err = exporter.TemplateXLSX("inspectors")
	assert.Error(t, err)
}

type roundTripTx struct {
	buildings []*models.Building
}

func (tx *roundTripTx) CountBuildings(tenantID uint) (int64, error) { return int64(len(tx.buildings)), nil }
func (tx *roundTripTx) CountFireDoors(tenantID uint) (int64, error) { return 0, nil }
func (tx *roundTripTx) BuildingsByName(tenantID uint) (map[string]*models.Building, error) {
	byName := make(map[string]*models.Building, len(tx.buildings))
	for _, b := range tx.buildings {
		byName[strings.ToLower(b.Name)] = b
	}
	return byName, nil
}
func (tx *roundTripTx) CreateBuilding(b *models.Building) error {
	tx.buildings = append(tx.buildings, b)
	return nil
}
func (tx *roundTripTx) CreateFireDoor(d *models.FireDoor) error { return nil }

type roundTripStore struct {
	tenant *models.Tenant
	tx     *roundTripTx
}

func (s *roundTripStore) WithTenantLock(ctx context.Context, tenantID uint, fn func(tx importer.Tx, tenant *models.Tenant) error) error {
	return fn(s.tx, s.tenant)
}

func newFakeStore(tenant *models.Tenant) *roundTripStore {
	return &roundTripStore{tenant: tenant, tx: &roundTripTx{}}
}
