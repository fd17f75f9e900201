package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/complymate/doorguard/app/models"
	"github.com/complymate/doorguard/app/repository"
	"github.com/complymate/doorguard/internal/pkg/database"
	"github.com/complymate/doorguard/internal/pkg/importer"
	"github.com/complymate/doorguard/internal/pkg/scheduler"
)

// HandleListDoors returns a tenant's fire doors.
func HandleListDoors(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	doors, err := repository.GetGlobalFactory().GetFireDoorRepository().ListByTenantID(tenant.ID, offset, limit)
	if err != nil {
		return internalError(c, "Failed to load doors")
	}
	return c.JSON(fiber.Map{"doors": doors})
}

// HandleListOverdueDoors returns the tenant's doors whose inspection due date
// has passed, soonest-lapsed first.
func HandleListOverdueDoors(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	now := time.Now().UTC()
	doors, err := repository.GetGlobalFactory().GetFireDoorRepository().ListOverdue(tenant.ID, now)
	if err != nil {
		return internalError(c, "Failed to load overdue doors")
	}

	type overdueDoor struct {
		models.FireDoor
		DaysOverdue int `json:"days_overdue"`
	}
	out := make([]overdueDoor, 0, len(doors))
	for _, d := range doors {
		days := 0
		if d.NextInspectionDue != nil {
			days = -scheduler.DaysUntilDue(*d.NextInspectionDue, now)
		}
		out = append(out, overdueDoor{FireDoor: d, DaysOverdue: days})
	}
	return c.JSON(fiber.Map{"doors": out})
}

// HandleCreateDoor creates a single fire door under the tenant's door quota.
// If a last inspection date is supplied, the next due date is derived from
// the scheduling rules; it is never accepted from the client.
func HandleCreateDoor(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	var door models.FireDoor
	if err := c.BodyParser(&door); err != nil {
		return badRequest(c, "Invalid request body")
	}
	door.ID = 0
	door.TenantID = tenant.ID
	door.NextInspectionDue = nil

	building, err := repository.GetGlobalFactory().GetBuildingRepository().GetByID(door.BuildingID)
	if err != nil || building.TenantID != tenant.ID {
		return badRequest(c, "Building does not exist for this organisation")
	}

	if door.DoorType == "" {
		door.DoorType = models.DOOR_TYPE_OTHER
	}
	if door.LastInspectionAt != nil {
		due := scheduler.NextDueForDoor(&door, building, *door.LastInspectionAt)
		door.NextInspectionDue = &due
	}
	if err := door.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	store := repository.NewImportStore(database.GetDB())
	decision, err := importer.CreateFireDoor(c.Context(), store, &door)
	if err != nil {
		return internalError(c, "Failed to create door")
	}
	if !decision.Allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "quota_exceeded", "message": decision.Reason()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"door": door})
}

// HandleRecordInspection records an inspection against a door. The next due
// date is computed from the door's type and building height and stamped on
// both the inspection and the door.
func HandleRecordInspection(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	doorID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid door id")
	}

	doorRepo := repository.GetGlobalFactory().GetFireDoorRepository()
	door, err := doorRepo.GetByID(uint(doorID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Door not found")
		}
		return internalError(c, "Failed to load door")
	}
	if door.TenantID != tenant.ID {
		return notFound(c, "Door not found")
	}

	var inspection models.Inspection
	if err := c.BodyParser(&inspection); err != nil {
		return badRequest(c, "Invalid request body")
	}
	inspection.ID = 0
	inspection.FireDoorID = door.ID
	inspection.TenantID = tenant.ID
	if inspection.InspectedAt.IsZero() {
		inspection.InspectedAt = time.Now().UTC()
	}
	if inspection.Outcome == "" {
		inspection.Outcome = models.INSPECTION_OUTCOME_PASS
	}

	due := scheduler.NextDueForDoor(door, door.Building, inspection.InspectedAt)
	inspection.NextDueAt = &due

	if err := inspection.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalFactory().GetInspectionRepository().Create(&inspection); err != nil {
		return internalError(c, "Failed to record inspection")
	}

	// Only advance the door when this inspection is its newest.
	if door.LastInspectionAt == nil || !door.LastInspectionAt.After(inspection.InspectedAt) {
		door.LastInspectionAt = &inspection.InspectedAt
		door.NextInspectionDue = &due
		if err := doorRepo.Update(door); err != nil {
			return internalError(c, "Failed to update door schedule")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"inspection": inspection, "door": door})
}

// HandleListInspections returns a door's inspection history.
func HandleListInspections(c *fiber.Ctx) error {
	tenant := tenantOrAbort(c)
	if tenant == nil {
		return nil
	}

	doorID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid door id")
	}
	door, err := repository.GetGlobalFactory().GetFireDoorRepository().GetByID(uint(doorID))
	if err != nil || door.TenantID != tenant.ID {
		return notFound(c, "Door not found")
	}

	inspections, err := repository.GetGlobalFactory().GetInspectionRepository().ListByFireDoorID(door.ID)
	if err != nil {
		return internalError(c, "Failed to load inspections")
	}
	return c.JSON(fiber.Map{"inspections": inspections})
}
