package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/complymate/doorguard/app/models"
	"github.com/complymate/doorguard/app/repository"
)

// HeaderTenantID carries the caller's tenant, set by the external auth
// gateway in front of this service.
const HeaderTenantID = "X-Tenant-ID"

// currentTenant resolves the request's tenant from the gateway header.
func currentTenant(c *fiber.Ctx) (*models.Tenant, error) {
	raw := c.Get(HeaderTenantID)
	if raw == "" {
		return nil, errors.New("missing tenant header")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.New("invalid tenant header")
	}
	return repository.GetGlobalFactory().GetTenantRepository().GetByID(uint(id))
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": message})
}

func internalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": message})
}

// tenantOrAbort loads the tenant or writes the error response, returning nil
// when the request has already been answered.
func tenantOrAbort(c *fiber.Ctx) *models.Tenant {
	tenant, err := currentTenant(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = notFound(c, "Tenant not found")
		} else {
			_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": err.Error()})
		}
		return nil
	}
	return tenant
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
