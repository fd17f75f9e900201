package jobqueue

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/complymate/doorguard/app/repository"
	"github.com/complymate/doorguard/internal/pkg/scheduler"
)

// processBackfillJob recomputes missing next-due dates for one tenant's
// historical inspections. The underlying backfill only touches inspections
// without a due date, so a retried or duplicated job is harmless.
func (q *Queue) processBackfillJob(job *Job) error {
	payload, err := BackfillJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid backfill payload: %w", err)
	}

	repo := repository.GetGlobalFactory().GetInspectionRepository()
	updated, err := scheduler.Backfill(repo, payload.TenantID)
	if err != nil {
		return err
	}

	log.Infof("[JobQueue] Backfill for tenant %d updated %d inspections", payload.TenantID, updated)
	return nil
}
