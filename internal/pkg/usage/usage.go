package usage

import (
	"fmt"

	"github.com/complymate/doorguard/app/repository"
	"github.com/complymate/doorguard/internal/pkg/quota"
)

// Counts are a tenant's live resource counts, read fresh from the database
// on every call. The quota gate is a pure function over these numbers, so
// they must never come from a cache.
type Counts struct {
	Buildings   int64 `json:"buildings"`
	Doors       int64 `json:"doors"`
	Inspections int64 `json:"inspections"`
}

// For returns the count for a quota kind.
func (c Counts) For(kind quota.Kind) int {
	switch kind {
	case quota.KindBuildings:
		return int(c.Buildings)
	case quota.KindDoors:
		return int(c.Doors)
	default:
		return 0
	}
}

// ForTenant gathers the tenant's current resource counts.
func ForTenant(repos *repository.Repositories, tenantID uint) (Counts, error) {
	var counts Counts
	var err error

	if counts.Buildings, err = repos.Building.CountByTenantID(tenantID); err != nil {
		return counts, fmt.Errorf("counting buildings: %w", err)
	}
	if counts.Doors, err = repos.FireDoor.CountByTenantID(tenantID); err != nil {
		return counts, fmt.Errorf("counting doors: %w", err)
	}
	if counts.Inspections, err = repos.Inspection.CountByTenantID(tenantID); err != nil {
		return counts, fmt.Errorf("counting inspections: %w", err)
	}
	return counts, nil
}
