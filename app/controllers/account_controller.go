package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/complymate/doorguard/app/models"
	"github.com/complymate/doorguard/app/repository"
	"github.com/complymate/doorguard/internal/pkg/jobqueue"
	"github.com/complymate/doorguard/internal/pkg/metrics/counter"
	"github.com/complymate/doorguard/internal/pkg/quota"
	"github.com/complymate/doorguard/internal/pkg/trial"
	"github.com/complymate/doorguard/internal/pkg/usage"
)

// HandleGetAccount returns the tenant's account summary: plan, trial state,
// live resource usage and remaining quota headroom.
func HandleGetAccount(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	counts, err := usage.ForTenant(repository.GetGlobalRepositories(), tenant.ID)
	if err != nil {
		return internalError(c, "Failed to load usage")
	}

	evaluation := trial.Evaluate(tenant, time.Now().UTC())

	limits := fiber.Map{}
	for _, kind := range []quota.Kind{quota.KindBuildings, quota.KindDoors} {
		limit := quota.CapFor(tenant, kind)
		entry := fiber.Map{"cap": limit, "used": counts.For(kind)}
		if limit != models.CapUnlimited {
			remaining := limit - counts.For(kind)
			if remaining < 0 {
				remaining = 0
			}
			entry["remaining"] = remaining
		}
		limits[string(kind)] = entry
	}

	importRuns, importRows, exportDownloads := counter.Totals(tenant.ID)

	return c.JSON(fiber.Map{
		"id":                  tenant.ID,
		"name":                tenant.Name,
		"slug":                tenant.Slug,
		"subscription_plan":   tenant.SubscriptionPlan,
		"subscription_status": tenant.SubscriptionStatus,
		"billing_model":       tenant.BillingModel,
		"trial_ends_at":       formatTimePtr(tenant.TrialEndsAt),
		"trial":               evaluation,
		"usage":               counts,
		"limits":              limits,
		"activity": fiber.Map{
			"import_runs":      importRuns,
			"rows_imported":    importRows,
			"export_downloads": exportDownloads,
		},
	})
}

// HandleTriggerBackfill schedules a due-date backfill run for the tenant's
// historical inspections. The job is idempotent, so repeated triggers are safe.
func HandleTriggerBackfill(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	job, err := jobqueue.GetManager().EnqueueBackfill(tenant.ID)
	if err != nil {
		return internalError(c, "Failed to schedule backfill")
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"job_id": job.ID, "status": job.Status})
}
