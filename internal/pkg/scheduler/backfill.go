package scheduler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/complymate/doorguard/app/models"
)

// BackfillStore is the slice of the persistence layer the backfill job needs.
// ListMissingNextDue must return inspections with a non-null inspection date
// and a null next-due date, with FireDoor and its Building preloaded.
type BackfillStore interface {
	ListMissingNextDue(tenantID uint) ([]models.Inspection, error)
	SetNextDue(inspectionID uint, due time.Time) error
}

// Backfill populates the next-due date on historical inspections that lack
// one. It only ever touches inspections where the due date is null, so a
// second run over the same data changes nothing.
func Backfill(store BackfillStore, tenantID uint) (int, error) {
	inspections, err := store.ListMissingNextDue(tenantID)
	if err != nil {
		return 0, fmt.Errorf("backfill: listing inspections: %w", err)
	}

	updated := 0
	for _, insp := range inspections {
		if insp.FireDoor == nil {
			log.Warnf("[Scheduler] Backfill skipping inspection %d: door not loaded", insp.ID)
			continue
		}
		due := NextDueForDoor(insp.FireDoor, insp.FireDoor.Building, insp.InspectedAt)
		if err := store.SetNextDue(insp.ID, due); err != nil {
			return updated, fmt.Errorf("backfill: inspection %d: %w", insp.ID, err)
		}
		updated++
	}

	if updated > 0 {
		log.Infof("[Scheduler] Backfilled next-due dates for %d inspections (tenant %d)", updated, tenantID)
	}
	return updated, nil
}
