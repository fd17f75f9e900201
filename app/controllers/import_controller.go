package controllers

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/complymate/doorguard/app/repository"
	"github.com/complymate/doorguard/internal/pkg/database"
	"github.com/complymate/doorguard/internal/pkg/importer"
	"github.com/complymate/doorguard/internal/pkg/metrics/counter"
)

// HandleImport accepts a CSV upload and runs the bulk import pipeline for the
// entity kind in the route. The response is always a row-level report unless
// the file structure itself is unusable.
func HandleImport(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	kind := importer.EntityKind(c.Params("entity"))

	body, err := importFileBody(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	im := importer.New(repository.NewImportStore(database.GetDB()))
	report, err := im.Run(c.Context(), tenant.ID, kind, bytes.NewReader(body))
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrUnknownKind):
			return badRequest(c, err.Error())
		case errors.Is(err, importer.ErrMalformedInput):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   "malformed_input",
				"message": err.Error(),
			})
		default:
			return internalError(c, "Import failed")
		}
	}

	// Counters are best effort, a Redis hiccup must not fail the import.
	_ = counter.AddImportRun(tenant.ID)
	_ = counter.AddImportRows(tenant.ID, int64(report.CreatedCount))

	return c.JSON(report)
}

// importFileBody reads the uploaded file from a multipart form, falling back
// to the raw request body for API clients that post text/csv directly.
func importFileBody(c *fiber.Ctx) ([]byte, error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, errors.New("uploaded file could not be opened")
		}
		defer f.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(f); err != nil {
			return nil, errors.New("uploaded file could not be read")
		}
		return buf.Bytes(), nil
	}
	if len(c.Body()) > 0 {
		return c.Body(), nil
	}
	return nil, errors.New("no import file provided")
}
