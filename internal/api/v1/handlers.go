package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to controllers to keep response shapes consistent
	"github.com/complymate/doorguard/app/controllers"
	"github.com/complymate/doorguard/internal/pkg/middleware"
)

// APIServer exposes the public v1 API surface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
}

// RegisterHandlers attaches the v1 routes to the given router group.
func RegisterHandlers(r fiber.Router, s *APIServer) {
	r.Get("/ping", s.GetPing)

	r.Get("/account", controllers.HandleGetAccount)

	r.Get("/buildings", controllers.HandleListBuildings)
	r.Post("/buildings", controllers.HandleCreateBuilding)
	r.Get("/buildings/:id", controllers.HandleGetBuilding)
	r.Put("/buildings/:id", controllers.HandleUpdateBuilding)

	r.Get("/doors", controllers.HandleListDoors)
	r.Get("/doors/overdue", controllers.HandleListOverdueDoors)
	r.Post("/doors", controllers.HandleCreateDoor)
	r.Get("/doors/:id/inspections", controllers.HandleListInspections)
	r.Post("/doors/:id/inspections", controllers.HandleRecordInspection)

	r.Post("/imports/:entity", controllers.HandleImport)
	r.Get("/exports/:entity", controllers.HandleExport)
	r.Get("/templates/:kind", controllers.HandleTemplate)

	r.Post("/jobs/backfill", middleware.AdminKeyMiddleware(), controllers.HandleTriggerBackfill)
}
