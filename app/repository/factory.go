package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories bundles all repository instances
type Repositories struct {
	Tenant     TenantRepository
	Building   BuildingRepository
	FireDoor   FireDoorRepository
	Inspection InspectionRepository
}

// NewRepositories creates all repositories backed by the given DB handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Tenant:     NewTenantRepository(db),
		Building:   NewBuildingRepository(db),
		FireDoor:   NewFireDoorRepository(db),
		Inspection: NewInspectionRepository(db),
	}
}

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetTenantRepository returns the tenant repository instance
func (f *Factory) GetTenantRepository() TenantRepository {
	return f.GetRepositories().Tenant
}

// GetBuildingRepository returns the building repository instance
func (f *Factory) GetBuildingRepository() BuildingRepository {
	return f.GetRepositories().Building
}

// GetFireDoorRepository returns the fire door repository instance
func (f *Factory) GetFireDoorRepository() FireDoorRepository {
	return f.GetRepositories().FireDoor
}

// GetInspectionRepository returns the inspection repository instance
func (f *Factory) GetInspectionRepository() InspectionRepository {
	return f.GetRepositories().Inspection
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
