package quota

import (
	"fmt"

	"github.com/complymate/doorguard/app/models"
)

// Kind names a quota-gated resource.
type Kind string

const (
	KindBuildings  Kind = "buildings"
	KindDoors      Kind = "doors"
	KindUsers      Kind = "users"
	KindInspectors Kind = "inspectors"
)

// Decision is the outcome of a quota check. When denied, Reason explains the
// cap, the live count and the overshoot.
type Decision struct {
	Allowed   bool
	Kind      Kind
	Cap       int
	Current   int
	Requested int
}

// Reason renders a user-facing denial explanation. Empty when allowed.
func (d Decision) Reason() string {
	if d.Allowed {
		return ""
	}
	return fmt.Sprintf("%s quota exceeded: cap is %d, you have %d and requested %d more (%d over the limit)",
		d.Kind, d.Cap, d.Current, d.Requested, d.Current+d.Requested-d.Cap)
}

// Check decides whether requested additional records of a kind fit under the
// cap. The caller supplies the live current count; the gate never queries
// storage itself. A cap of models.CapUnlimited always allows.
func Check(kind Kind, cap, current, requested int) Decision {
	d := Decision{Kind: kind, Cap: cap, Current: current, Requested: requested}
	if cap == models.CapUnlimited {
		d.Allowed = true
		return d
	}
	d.Allowed = current+requested <= cap
	return d
}

// CapFor returns the tenant's cap for a resource kind.
func CapFor(t *models.Tenant, kind Kind) int {
	switch kind {
	case KindBuildings:
		return t.MaxBuildings
	case KindDoors:
		return t.MaxDoors
	case KindUsers:
		return t.MaxUsers
	case KindInspectors:
		return t.MaxInspectors
	default:
		return 0
	}
}

// ForTenant checks a request against the tenant's configured cap for the kind.
func ForTenant(t *models.Tenant, kind Kind, current, requested int) Decision {
	return Check(kind, CapFor(t, kind), current, requested)
}
