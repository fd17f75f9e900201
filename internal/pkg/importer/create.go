package importer

import (
	"context"
	"fmt"

	"github.com/complymate/doorguard/app/models"
	"github.com/complymate/doorguard/internal/pkg/quota"
)

// CreateBuilding persists a single building under the tenant's building
// quota. The live count, the gate decision and the insert all run inside the
// same tenant-locked transaction bulk imports use, so a create racing an
// import (or another create) cannot jointly overshoot a cap. A denied
// decision leaves the database untouched.
func CreateBuilding(ctx context.Context, store Store, building *models.Building) (quota.Decision, error) {
	var decision quota.Decision
	err := store.WithTenantLock(ctx, building.TenantID, func(tx Tx, tenant *models.Tenant) error {
		current, err := tx.CountBuildings(tenant.ID)
		if err != nil {
			return fmt.Errorf("counting buildings: %w", err)
		}
		decision = quota.ForTenant(tenant, quota.KindBuildings, int(current), 1)
		if !decision.Allowed {
			return nil
		}
		return tx.CreateBuilding(building)
	})
	return decision, err
}

// CreateFireDoor persists a single fire door under the tenant's door quota,
// with the same locked count-gate-insert discipline as CreateBuilding.
func CreateFireDoor(ctx context.Context, store Store, door *models.FireDoor) (quota.Decision, error) {
	var decision quota.Decision
	err := store.WithTenantLock(ctx, door.TenantID, func(tx Tx, tenant *models.Tenant) error {
		current, err := tx.CountFireDoors(tenant.ID)
		if err != nil {
			return fmt.Errorf("counting fire doors: %w", err)
		}
		decision = quota.ForTenant(tenant, quota.KindDoors, int(current), 1)
		if !decision.Allowed {
			return nil
		}
		return tx.CreateFireDoor(door)
	})
	return decision, err
}
