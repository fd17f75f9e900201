package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/complymate/doorguard/app/models"
	"github.com/complymate/doorguard/internal/pkg/schema"
)

// ContentTypeCSV is the content type for generated CSV documents.
const ContentTypeCSV = "text/csv"

// ContentTypeXLSX is the content type for generated XLSX workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename suggests a download name embedding the export date, e.g.
// doorguard_doors_2026-08-30.csv.
func Filename(entity string, now time.Time) string {
	return fmt.Sprintf("doorguard_%s_%s.csv", entity, now.UTC().Format("2006-01-02"))
}

// writeCSV renders a header plus data rows through encoding/csv, which quotes
// fields containing the delimiter, quote or newlines and doubles embedded
// quotes per the format's rules.
func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Template renders a header-only CSV for an entity kind. The headers are the
// same column set, in the same order, that the import pipeline validates
// against, so a filled-in template always round-trips.
func Template(entity string) ([]byte, error) {
	sch, ok := schema.ForEntity(entity)
	if !ok {
		return nil, fmt.Errorf("no template for entity kind %q", entity)
	}
	return writeCSV(sch.Headers(), nil)
}

// Guide renders the import guide: one row per column across both templates,
// explaining what the column means and whether it is required.
func Guide() ([]byte, error) {
	headers := []string{"Template", "Column", "Required", "Description"}
	var rows [][]string
	for _, sch := range []schema.Schema{schema.Buildings(), schema.Doors()} {
		for _, f := range sch.Fields {
			required := "no"
			if f.Required {
				required = "yes"
			}
			rows = append(rows, []string{sch.Entity, f.Name, required, f.Help})
		}
	}
	return writeCSV(headers, rows)
}

// BuildingsCSV serializes a tenant's buildings in import-template column order.
func BuildingsCSV(buildings []models.Building) ([]byte, error) {
	sch := schema.Buildings()
	rows := make([][]string, 0, len(buildings))
	for i := range buildings {
		rows = append(rows, buildingRow(&buildings[i]))
	}
	return writeCSV(sch.Headers(), rows)
}

// DoorsCSV serializes a tenant's fire doors in import-template column order.
// Doors must have their Building preloaded.
func DoorsCSV(doors []models.FireDoor) ([]byte, error) {
	sch := schema.Doors()
	rows := make([][]string, 0, len(doors))
	for i := range doors {
		rows = append(rows, doorRow(&doors[i]))
	}
	return writeCSV(sch.Headers(), rows)
}

func buildingRow(b *models.Building) []string {
	height := ""
	if b.TopStoreyHeightM != nil {
		height = strconv.FormatFloat(*b.TopStoreyHeightM, 'f', -1, 64)
	}
	return []string{
		b.Name,
		b.AddressLine1,
		b.AddressLine2,
		b.City,
		b.Postcode,
		b.BuildingType,
		strconv.Itoa(b.StoreyCount),
		height,
		b.ContactName,
		b.ContactPhone,
	}
}

func doorRow(d *models.FireDoor) []string {
	buildingName := ""
	if d.Building != nil {
		buildingName = d.Building.Name
	}
	lastInspection := ""
	if d.LastInspectionAt != nil {
		lastInspection = d.LastInspectionAt.Format(schema.DefaultDateFormat)
	}
	return []string{
		buildingName,
		d.DoorNumber,
		d.Location,
		d.DoorType,
		d.FireRating,
		lastInspection,
	}
}
