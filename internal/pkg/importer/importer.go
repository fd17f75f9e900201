package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/complymate/doorguard/app/models"
	"github.com/complymate/doorguard/internal/pkg/quota"
	"github.com/complymate/doorguard/internal/pkg/schema"
	"github.com/complymate/doorguard/internal/pkg/scheduler"
)

// File-level failures. These abort the run before any row is processed; every
// other failure mode is recorded per row inside the report.
var (
	ErrUnknownKind    = errors.New("unknown import entity kind")
	ErrMalformedInput = errors.New("malformed import file")
)

// Importer turns raw delimited text into validated, quota-gated records for
// one tenant. Stages per file: parse, validate, quota check, persist, report.
type Importer struct {
	store Store
}

// New creates an importer over the given persistence boundary.
func New(store Store) *Importer {
	return &Importer{store: store}
}

// pendingRow is a row that survived parsing, schema validation and in-batch
// duplicate detection and is waiting on the quota gate.
type pendingRow struct {
	idx    int
	record schema.Record
}

// Run processes one import file for a tenant. It always returns a report when
// the file structure is readable; a non-nil error is reserved for file-level
// failures where no report can be constructed.
func (im *Importer) Run(ctx context.Context, tenantID uint, kind EntityKind, r io.Reader) (*Report, error) {
	sch, ok := schema.ForEntity(string(kind))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	start := time.Now()
	report := &Report{
		RunID:  uuid.New().String(),
		Entity: kind,
	}

	rows, rowErrs, err := parseRows(r, sch)
	if err != nil {
		return nil, err
	}
	report.TotalRows = len(rows)
	report.Outcomes = make([]Outcome, len(rows))

	pending := im.validateRows(sch, kind, rows, rowErrs, report)

	if len(pending) > 0 {
		if err := im.persistBatch(ctx, tenantID, kind, pending, report); err != nil {
			return nil, err
		}
	}

	report.tally()
	report.Duration = time.Since(start)
	log.Infof("[Importer] Run %s finished: tenant=%d entity=%s total=%d created=%d rejected=%d in %s",
		report.RunID, tenantID, kind, report.TotalRows, report.CreatedCount, report.RejectedCount, report.Duration)
	return report, nil
}

// parseRows reads the whole file, checks the header against the schema and
// returns per-row field maps. A row that fails to parse yields a nil map and
// an entry in rowErrs; a bad row never aborts the file.
func parseRows(r io.Reader, sch schema.Schema) ([]map[string]string, map[int]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: missing header row", ErrMalformedInput)
	}
	want := sch.Headers()
	if len(header) != len(want) {
		return nil, nil, fmt.Errorf("%w: expected %d columns, got %d", ErrMalformedInput, len(want), len(header))
	}
	for i, name := range want {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return nil, nil, fmt.Errorf("%w: column %d must be %q, got %q", ErrMalformedInput, i+1, name, header[i])
		}
	}

	var rows []map[string]string
	rowErrs := make(map[int]string)
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		idx := len(rows)
		if err != nil {
			rows = append(rows, nil)
			rowErrs[idx] = fmt.Sprintf("row could not be parsed: %v", err)
			continue
		}
		if len(fields) != len(want) {
			rows = append(rows, nil)
			rowErrs[idx] = fmt.Sprintf("expected %d columns, got %d", len(want), len(fields))
			continue
		}
		row := make(map[string]string, len(want))
		for i, name := range want {
			row[name] = fields[i]
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

// validateRows applies schema validation and in-batch duplicate detection,
// recording rejections in the report and returning the surviving rows.
func (im *Importer) validateRows(sch schema.Schema, kind EntityKind, rows []map[string]string, rowErrs map[int]string, report *Report) []pendingRow {
	var pending []pendingRow
	seen := make(map[string]int)

	for idx, row := range rows {
		if row == nil {
			report.reject(idx, ReasonMalformedRow, rowErrs[idx])
			continue
		}

		record, ferrs := sch.Validate(row)
		if len(ferrs) > 0 {
			msgs := make([]string, len(ferrs))
			for i, fe := range ferrs {
				msgs[i] = fe.Message
			}
			report.reject(idx, ferrs[0].Code, strings.Join(msgs, "; "))
			continue
		}

		key := naturalKey(kind, record)
		if firstIdx, dup := seen[key]; dup {
			report.reject(idx, ReasonDuplicateInBatch,
				fmt.Sprintf("duplicate of row %d in the same file", firstIdx+1))
			continue
		}
		seen[key] = idx

		pending = append(pending, pendingRow{idx: idx, record: record})
	}
	return pending
}

// naturalKey identifies a record within one batch: building name for
// buildings, building name plus door number for doors. Case-insensitive.
func naturalKey(kind EntityKind, record schema.Record) string {
	switch kind {
	case KindDoors:
		return strings.ToLower(record.String(schema.ColBuildingName)) + "\x00" +
			strings.ToLower(record.String(schema.ColDoorNumber))
	default:
		return strings.ToLower(record.String(schema.ColBuildingName))
	}
}

// persistBatch runs reference resolution, the quota gate and row persistence
// inside one tenant-locked transaction. The gate is evaluated once over the
// whole set of validated rows: an over-quota batch persists nothing.
func (im *Importer) persistBatch(ctx context.Context, tenantID uint, kind EntityKind, pending []pendingRow, report *Report) error {
	return im.store.WithTenantLock(ctx, tenantID, func(tx Tx, tenant *models.Tenant) error {
		var buildings map[string]*models.Building
		if kind == KindDoors {
			var err error
			buildings, err = tx.BuildingsByName(tenantID)
			if err != nil {
				return fmt.Errorf("resolving building references: %w", err)
			}

			resolved := pending[:0]
			for _, p := range pending {
				name := p.record.String(schema.ColBuildingName)
				if _, ok := buildings[strings.ToLower(name)]; !ok {
					report.reject(p.idx, ReasonUnknownReference,
						fmt.Sprintf("no building named %q exists for this organisation", name))
					continue
				}
				resolved = append(resolved, p)
			}
			pending = resolved
		}
		if len(pending) == 0 {
			return nil
		}

		decision, err := im.checkQuota(tx, tenant, kind, len(pending))
		if err != nil {
			return err
		}
		if !decision.Allowed {
			report.BatchError = decision.Reason()
			for _, p := range pending {
				report.reject(p.idx, ReasonQuotaExceeded, decision.Reason())
			}
			return nil
		}

		for _, p := range pending {
			if err := im.persistRow(tx, tenant, kind, p.record, buildings); err != nil {
				report.reject(p.idx, ReasonPersistFailed, err.Error())
				continue
			}
			report.created(p.idx)
		}
		return nil
	})
}

func (im *Importer) checkQuota(tx Tx, tenant *models.Tenant, kind EntityKind, requested int) (quota.Decision, error) {
	switch kind {
	case KindDoors:
		current, err := tx.CountFireDoors(tenant.ID)
		if err != nil {
			return quota.Decision{}, fmt.Errorf("counting fire doors: %w", err)
		}
		return quota.ForTenant(tenant, quota.KindDoors, int(current), requested), nil
	default:
		current, err := tx.CountBuildings(tenant.ID)
		if err != nil {
			return quota.Decision{}, fmt.Errorf("counting buildings: %w", err)
		}
		return quota.ForTenant(tenant, quota.KindBuildings, int(current), requested), nil
	}
}

func (im *Importer) persistRow(tx Tx, tenant *models.Tenant, kind EntityKind, record schema.Record, buildings map[string]*models.Building) error {
	switch kind {
	case KindDoors:
		building := buildings[strings.ToLower(record.String(schema.ColBuildingName))]
		door := doorFromRecord(tenant.ID, building, record)
		if err := door.Validate(); err != nil {
			return err
		}
		return tx.CreateFireDoor(door)
	default:
		building := buildingFromRecord(tenant.ID, record)
		if err := building.Validate(); err != nil {
			return err
		}
		return tx.CreateBuilding(building)
	}
}

func buildingFromRecord(tenantID uint, record schema.Record) *models.Building {
	b := &models.Building{
		TenantID:     tenantID,
		Name:         record.String(schema.ColBuildingName),
		AddressLine1: record.String(schema.ColAddressLine1),
		AddressLine2: record.String(schema.ColAddressLine2),
		City:         record.String(schema.ColCity),
		Postcode:     record.String(schema.ColPostcode),
		BuildingType: models.BUILDING_TYPE_RESIDENTIAL,
	}
	if bt := record.String(schema.ColBuildingType); bt != "" {
		b.BuildingType = bt
	}
	if n, ok := record.Int(schema.ColStoreyCount); ok {
		b.StoreyCount = n
	} else {
		b.StoreyCount = 1
	}
	if h, ok := record.Float(schema.ColTopStoreyHeight); ok {
		b.TopStoreyHeightM = &h
	}
	b.ContactName = record.String(schema.ColContactName)
	b.ContactPhone = record.String(schema.ColContactPhone)
	return b
}

func doorFromRecord(tenantID uint, building *models.Building, record schema.Record) *models.FireDoor {
	d := &models.FireDoor{
		BuildingID: building.ID,
		TenantID:   tenantID,
		DoorNumber: record.String(schema.ColDoorNumber),
		Location:   record.String(schema.ColDoorLocation),
		DoorType:   record.String(schema.ColDoorType),
		FireRating: record.String(schema.ColFireRating),
	}
	if last, ok := record.Time(schema.ColLastInspection); ok {
		d.LastInspectionAt = &last
		due := scheduler.NextDueForDoor(d, building, last)
		d.NextInspectionDue = &due
	}
	return d
}
