package repository

import (
	"time"

	"github.com/complymate/doorguard/app/models"
	"gorm.io/gorm"
)

// fireDoorRepository implements the FireDoorRepository interface
type fireDoorRepository struct {
	db *gorm.DB
}

// NewFireDoorRepository creates a new fire door repository instance
func NewFireDoorRepository(db *gorm.DB) FireDoorRepository {
	return &fireDoorRepository{db: db}
}

// Create creates a new fire door in the database
func (r *fireDoorRepository) Create(door *models.FireDoor) error {
	return r.db.Create(door).Error
}

// GetByID retrieves a fire door by its ID
func (r *fireDoorRepository) GetByID(id uint) (*models.FireDoor, error) {
	var door models.FireDoor
	err := r.db.Preload("Building").First(&door, id).Error
	if err != nil {
		return nil, err
	}
	return &door, nil
}

// GetByBuildingAndNumber retrieves a fire door by building and door number
func (r *fireDoorRepository) GetByBuildingAndNumber(buildingID uint, doorNumber string) (*models.FireDoor, error) {
	var door models.FireDoor
	err := r.db.Where("building_id = ? AND door_number = ?", buildingID, doorNumber).First(&door).Error
	if err != nil {
		return nil, err
	}
	return &door, nil
}

// ListByBuildingID retrieves all fire doors of a building
func (r *fireDoorRepository) ListByBuildingID(buildingID uint) ([]models.FireDoor, error) {
	var doors []models.FireDoor
	err := r.db.Where("building_id = ?", buildingID).Order("door_number ASC").Find(&doors).Error
	return doors, err
}

// ListByTenantID retrieves a paginated list of a tenant's fire doors with
// their buildings preloaded (needed by the export serializer).
func (r *fireDoorRepository) ListByTenantID(tenantID uint, offset, limit int) ([]models.FireDoor, error) {
	var doors []models.FireDoor
	query := r.db.Preload("Building").Where("tenant_id = ?", tenantID).Order("building_id ASC, door_number ASC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	err := query.Find(&doors).Error
	return doors, err
}

// ListOverdue retrieves a tenant's fire doors whose next inspection date has passed
func (r *fireDoorRepository) ListOverdue(tenantID uint, asOf time.Time) ([]models.FireDoor, error) {
	var doors []models.FireDoor
	err := r.db.Preload("Building").
		Where("tenant_id = ? AND next_inspection_due IS NOT NULL AND next_inspection_due < ?", tenantID, asOf).
		Order("next_inspection_due ASC").
		Find(&doors).Error
	return doors, err
}

// Update updates an existing fire door in the database
func (r *fireDoorRepository) Update(door *models.FireDoor) error {
	return r.db.Save(door).Error
}

// Delete soft deletes a fire door by its ID
func (r *fireDoorRepository) Delete(id uint) error {
	return r.db.Delete(&models.FireDoor{}, id).Error
}

// CountByTenantID returns the number of fire doors owned by a tenant
func (r *fireDoorRepository) CountByTenantID(tenantID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.FireDoor{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}
