package repository

import (
	"time"

	"github.com/complymate/doorguard/app/models"
	"gorm.io/gorm"
)

// inspectionRepository implements the InspectionRepository interface
type inspectionRepository struct {
	db *gorm.DB
}

// NewInspectionRepository creates a new inspection repository instance
func NewInspectionRepository(db *gorm.DB) InspectionRepository {
	return &inspectionRepository{db: db}
}

// Create creates a new inspection in the database
func (r *inspectionRepository) Create(inspection *models.Inspection) error {
	return r.db.Create(inspection).Error
}

// GetByID retrieves an inspection by its ID
func (r *inspectionRepository) GetByID(id uint) (*models.Inspection, error) {
	var inspection models.Inspection
	err := r.db.First(&inspection, id).Error
	if err != nil {
		return nil, err
	}
	return &inspection, nil
}

// ListByFireDoorID retrieves all inspections of a fire door, newest first
func (r *inspectionRepository) ListByFireDoorID(fireDoorID uint) ([]models.Inspection, error) {
	var inspections []models.Inspection
	err := r.db.Where("fire_door_id = ?", fireDoorID).Order("inspected_at DESC").Find(&inspections).Error
	return inspections, err
}

// ListMissingNextDue retrieves a tenant's inspections that have an inspection
// date but no computed next-due date, with door and building preloaded so the
// scheduler can derive the interval.
func (r *inspectionRepository) ListMissingNextDue(tenantID uint) ([]models.Inspection, error) {
	var inspections []models.Inspection
	err := r.db.Preload("FireDoor").Preload("FireDoor.Building").
		Where("tenant_id = ? AND next_due_at IS NULL", tenantID).
		Order("id ASC").
		Find(&inspections).Error
	return inspections, err
}

// SetNextDue writes the computed next-due date on an inspection
func (r *inspectionRepository) SetNextDue(inspectionID uint, due time.Time) error {
	return r.db.Model(&models.Inspection{}).Where("id = ?", inspectionID).Update("next_due_at", due).Error
}

// CountByTenantID returns the number of inspections recorded for a tenant
func (r *inspectionRepository) CountByTenantID(tenantID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Inspection{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}
