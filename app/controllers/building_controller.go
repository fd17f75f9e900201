package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/complymate/doorguard/app/models"
	"github.com/complymate/doorguard/app/repository"
	"github.com/complymate/doorguard/internal/pkg/database"
	"github.com/complymate/doorguard/internal/pkg/importer"
)

// HandleListBuildings returns a tenant's buildings.
func HandleListBuildings(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	buildings, err := repository.GetGlobalFactory().GetBuildingRepository().ListByTenantID(tenant.ID, offset, limit)
	if err != nil {
		return internalError(c, "Failed to load buildings")
	}
	return c.JSON(fiber.Map{"buildings": buildings})
}

// HandleGetBuilding returns one building with its fire doors.
func HandleGetBuilding(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid building id")
	}

	building, err := repository.GetGlobalFactory().GetBuildingRepository().GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Building not found")
		}
		return internalError(c, "Failed to load building")
	}
	if building.TenantID != tenant.ID {
		return notFound(c, "Building not found")
	}

	doors, err := repository.GetGlobalFactory().GetFireDoorRepository().ListByBuildingID(building.ID)
	if err != nil {
		return internalError(c, "Failed to load fire doors")
	}
	return c.JSON(fiber.Map{"building": building, "doors": doors})
}

// HandleCreateBuilding creates a single building. The quota check and the
// insert share the tenant-locked transaction used by bulk imports, so a
// create cannot race an import past the cap.
func HandleCreateBuilding(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	var building models.Building
	if err := c.BodyParser(&building); err != nil {
		return badRequest(c, "Invalid request body")
	}
	building.ID = 0
	building.TenantID = tenant.ID
	if building.BuildingType == "" {
		building.BuildingType = models.BUILDING_TYPE_RESIDENTIAL
	}
	if err := building.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	store := repository.NewImportStore(database.GetDB())
	decision, err := importer.CreateBuilding(c.Context(), store, &building)
	if err != nil {
		return internalError(c, "Failed to create building")
	}
	if !decision.Allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "quota_exceeded", "message": decision.Reason()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"building": building})
}

// HandleUpdateBuilding updates a building's editable fields.
func HandleUpdateBuilding(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid building id")
	}

	repo := repository.GetGlobalFactory().GetBuildingRepository()
	building, err := repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Building not found")
		}
		return internalError(c, "Failed to load building")
	}
	if building.TenantID != tenant.ID {
		return notFound(c, "Building not found")
	}

	var patch models.Building
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}
	building.Name = patch.Name
	building.AddressLine1 = patch.AddressLine1
	building.AddressLine2 = patch.AddressLine2
	building.City = patch.City
	building.Postcode = patch.Postcode
	if patch.BuildingType != "" {
		building.BuildingType = patch.BuildingType
	}
	building.StoreyCount = patch.StoreyCount
	building.TopStoreyHeightM = patch.TopStoreyHeightM
	building.ContactName = patch.ContactName
	building.ContactPhone = patch.ContactPhone

	if err := building.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repo.Update(building); err != nil {
		return internalError(c, "Failed to update building")
	}
	return c.JSON(fiber.Map{"building": building})
}
