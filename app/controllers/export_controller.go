package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/complymate/doorguard/app/repository"
	"github.com/complymate/doorguard/internal/pkg/exporter"
	"github.com/complymate/doorguard/internal/pkg/jobqueue"
	"github.com/complymate/doorguard/internal/pkg/metrics/counter"
)

// HandleExport streams a tenant's records as a CSV download. With ?archive=1
// the document is additionally generated in the background and stored in the
// S3 export archive.
func HandleExport(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	entity := c.Params("entity")
	repos := repository.GetGlobalRepositories()

	var body []byte
	var err error
	switch entity {
	case "buildings":
		buildings, lerr := repos.Building.ListByTenantID(tenant.ID, 0, 0)
		if lerr != nil {
			return internalError(c, "Failed to load buildings")
		}
		body, err = exporter.BuildingsCSV(buildings)
	case "doors":
		doors, lerr := repos.FireDoor.ListByTenantID(tenant.ID, 0, 0)
		if lerr != nil {
			return internalError(c, "Failed to load doors")
		}
		body, err = exporter.DoorsCSV(doors)
	default:
		return badRequest(c, fmt.Sprintf("unknown export entity %q", entity))
	}
	if err != nil {
		return internalError(c, "Export failed")
	}

	if c.Query("archive") == "1" {
		if _, qerr := jobqueue.GetManager().EnqueueExportArchive(tenant.ID, entity); qerr != nil {
			return internalError(c, "Failed to schedule export archive")
		}
	}

	_ = counter.AddExportDownload(tenant.ID)

	filename := exporter.Filename(entity, time.Now())
	c.Set(fiber.HeaderContentType, exporter.ContentTypeCSV)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}

// HandleTemplate serves a blank import template or the import guide. The kind
// is one of buildings, doors or guide; templates are also available as XLSX
// via ?format=xlsx.
func HandleTemplate(c *fiber.Ctx) error {
	kind := c.Params("kind")
	format := strings.ToLower(c.Query("format", "csv"))

	if kind == "guide" {
		body, err := exporter.Guide()
		if err != nil {
			return internalError(c, "Failed to build import guide")
		}
		c.Set(fiber.HeaderContentType, exporter.ContentTypeCSV)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="doorguard_import_guide.csv"`)
		return c.Send(body)
	}

	var body []byte
	var err error
	var contentType, ext string
	switch format {
	case "xlsx":
		body, err = exporter.TemplateXLSX(kind)
		contentType, ext = exporter.ContentTypeXLSX, "xlsx"
	default:
		body, err = exporter.Template(kind)
		contentType, ext = exporter.ContentTypeCSV, "csv"
	}
	if err != nil {
		return badRequest(c, err.Error())
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("doorguard_%s_template.%s", kind, ext)))
	return c.Send(body)
}
