package repository

import (
	"time"

	"github.com/complymate/doorguard/app/models"
)

// TenantRepository defines the interface for tenant-related database operations
type TenantRepository interface {
	Create(tenant *models.Tenant) error
	GetByID(id uint) (*models.Tenant, error)
	GetBySlug(slug string) (*models.Tenant, error)
	Update(tenant *models.Tenant) error
	List(offset, limit int) ([]models.Tenant, error)
	Count() (int64, error)
}

// BuildingRepository defines the interface for building-related database operations
type BuildingRepository interface {
	Create(building *models.Building) error
	GetByID(id uint) (*models.Building, error)
	GetByTenantAndName(tenantID uint, name string) (*models.Building, error)
	ListByTenantID(tenantID uint, offset, limit int) ([]models.Building, error)
	Update(building *models.Building) error
	Delete(id uint) error
	CountByTenantID(tenantID uint) (int64, error)
}

// FireDoorRepository defines the interface for fire-door-related database operations
type FireDoorRepository interface {
	Create(door *models.FireDoor) error
	GetByID(id uint) (*models.FireDoor, error)
	GetByBuildingAndNumber(buildingID uint, doorNumber string) (*models.FireDoor, error)
	ListByBuildingID(buildingID uint) ([]models.FireDoor, error)
	ListByTenantID(tenantID uint, offset, limit int) ([]models.FireDoor, error)
	ListOverdue(tenantID uint, asOf time.Time) ([]models.FireDoor, error)
	Update(door *models.FireDoor) error
	Delete(id uint) error
	CountByTenantID(tenantID uint) (int64, error)
}

// InspectionRepository defines the interface for inspection-related database operations
type InspectionRepository interface {
	Create(inspection *models.Inspection) error
	GetByID(id uint) (*models.Inspection, error)
	ListByFireDoorID(fireDoorID uint) ([]models.Inspection, error)
	ListMissingNextDue(tenantID uint) ([]models.Inspection, error)
	SetNextDue(inspectionID uint, due time.Time) error
	CountByTenantID(tenantID uint) (int64, error)
}
