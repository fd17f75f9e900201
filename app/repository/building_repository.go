package repository

import (
	"github.com/complymate/doorguard/app/models"
	"gorm.io/gorm"
)

// buildingRepository implements the BuildingRepository interface
type buildingRepository struct {
	db *gorm.DB
}

// NewBuildingRepository creates a new building repository instance
func NewBuildingRepository(db *gorm.DB) BuildingRepository {
	return &buildingRepository{db: db}
}

// Create creates a new building in the database
func (r *buildingRepository) Create(building *models.Building) error {
	return r.db.Create(building).Error
}

// GetByID retrieves a building by its ID
func (r *buildingRepository) GetByID(id uint) (*models.Building, error) {
	var building models.Building
	err := r.db.First(&building, id).Error
	if err != nil {
		return nil, err
	}
	return &building, nil
}

// GetByTenantAndName retrieves a building by tenant and name
func (r *buildingRepository) GetByTenantAndName(tenantID uint, name string) (*models.Building, error) {
	var building models.Building
	err := r.db.Where("tenant_id = ? AND name = ?", tenantID, name).First(&building).Error
	if err != nil {
		return nil, err
	}
	return &building, nil
}

// ListByTenantID retrieves a paginated list of a tenant's buildings
func (r *buildingRepository) ListByTenantID(tenantID uint, offset, limit int) ([]models.Building, error) {
	var buildings []models.Building
	query := r.db.Where("tenant_id = ?", tenantID).Order("name ASC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	err := query.Find(&buildings).Error
	return buildings, err
}

// Update updates an existing building in the database
func (r *buildingRepository) Update(building *models.Building) error {
	return r.db.Save(building).Error
}

// Delete soft deletes a building by its ID
func (r *buildingRepository) Delete(id uint) error {
	return r.db.Delete(&models.Building{}, id).Error
}

// CountByTenantID returns the number of buildings owned by a tenant
func (r *buildingRepository) CountByTenantID(tenantID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Building{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}
