package importer

import (
	"context"

	"github.com/complymate/doorguard/app/models"
)

// Store is the persistence boundary of the import pipeline. The pipeline
// never touches the database directly; the gorm-backed implementation lives
// in app/repository and tests substitute a fake.
type Store interface {
	// WithTenantLock runs fn inside a transaction holding a row lock on the
	// tenant, so two concurrent imports or creates for the same tenant cannot
	// both pass the quota gate and jointly overshoot a cap. The transaction
	// is bound to ctx; returning an error from fn rolls it back.
	WithTenantLock(ctx context.Context, tenantID uint, fn func(tx Tx, tenant *models.Tenant) error) error
}

// Tx is the set of operations available inside an import transaction.
type Tx interface {
	CountBuildings(tenantID uint) (int64, error)
	CountFireDoors(tenantID uint) (int64, error)
	// BuildingsByName returns the tenant's buildings keyed by lower-cased name.
	BuildingsByName(tenantID uint) (map[string]*models.Building, error)
	CreateBuilding(building *models.Building) error
	CreateFireDoor(door *models.FireDoor) error
}
