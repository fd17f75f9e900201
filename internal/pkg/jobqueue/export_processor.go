package jobqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/complymate/doorguard/app/repository"
	"github.com/complymate/doorguard/internal/pkg/exporter"
	"github.com/complymate/doorguard/internal/pkg/exportstore"
)

// processExportArchiveJob generates an export document for a tenant and
// stores it in the S3 export archive.
func (q *Queue) processExportArchiveJob(ctx context.Context, job *Job) error {
	payload, err := ExportArchiveJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid export archive payload: %w", err)
	}

	cfg, err := exportstore.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading export store config: %w", err)
	}
	if !cfg.IsEnabled() {
		log.Warnf("[JobQueue] Export archiving disabled, dropping job %s", job.ID)
		return nil
	}

	client, err := exportstore.NewClient(cfg)
	if err != nil {
		return err
	}

	repos := repository.GetGlobalRepositories()
	var body []byte
	switch payload.Entity {
	case "buildings":
		buildings, err := repos.Building.ListByTenantID(payload.TenantID, 0, 0)
		if err != nil {
			return fmt.Errorf("loading buildings: %w", err)
		}
		body, err = exporter.BuildingsCSV(buildings)
		if err != nil {
			return err
		}
	case "doors":
		doors, err := repos.FireDoor.ListByTenantID(payload.TenantID, 0, 0)
		if err != nil {
			return fmt.Errorf("loading doors: %w", err)
		}
		body, err = exporter.DoorsCSV(doors)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export entity %q", payload.Entity)
	}

	filename := exporter.Filename(payload.Entity, time.Now())
	key, err := client.Put(ctx, payload.TenantID, filename, exporter.ContentTypeCSV, body)
	if err != nil {
		return err
	}

	url, err := client.PresignGet(ctx, key, 24*time.Hour)
	if err != nil {
		log.Warnf("[JobQueue] Archived %s but could not presign download link: %v", key, err)
	} else {
		log.Infof("[JobQueue] Archived %s export for tenant %d at %s (download: %s)", payload.Entity, payload.TenantID, key, url)
	}
	return nil
}
