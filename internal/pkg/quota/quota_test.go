package quota

import (
	"strings"
	"testing"

	"github.com/complymate/doorguard/app/models"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		cap       int
		current   int
		requested int
		want      bool
	}{
		{name: "well under cap", cap: 10, current: 2, requested: 3, want: true},
		{name: "exactly at cap", cap: 10, current: 7, requested: 3, want: true},
		{name: "one over cap", cap: 10, current: 8, requested: 3, want: false},
		{name: "already full", cap: 5, current: 5, requested: 1, want: false},
		{name: "zero cap blocks everything", cap: 0, current: 0, requested: 1, want: false},
		{name: "zero request at cap", cap: 5, current: 5, requested: 0, want: true},
		{name: "unlimited", cap: models.CapUnlimited, current: 100000, requested: 100000, want: true},
	}

	for _, tt := range tests {
		d := Check(KindDoors, tt.cap, tt.current, tt.requested)
		if d.Allowed != tt.want {
			t.Fatalf("%s: Check(%d, %d, %d).Allowed = %v, want %v",
				tt.name, tt.cap, tt.current, tt.requested, d.Allowed, tt.want)
		}
	}
}

func TestDecisionReason(t *testing.T) {
	allowed := Check(KindBuildings, 10, 1, 1)
	if allowed.Reason() != "" {
		t.Fatalf("allowed decision should have no reason, got %q", allowed.Reason())
	}

	denied := Check(KindBuildings, 5, 4, 3)
	reason := denied.Reason()
	for _, want := range []string{"buildings", "cap is 5", "you have 4", "3 more", "2 over"} {
		if !strings.Contains(reason, want) {
			t.Fatalf("reason %q missing %q", reason, want)
		}
	}
}

func TestCapFor(t *testing.T) {
	tenant := &models.Tenant{MaxBuildings: 5, MaxDoors: 100, MaxUsers: 3, MaxInspectors: 2}

	tests := []struct {
		kind Kind
		want int
	}{
		{kind: KindBuildings, want: 5},
		{kind: KindDoors, want: 100},
		{kind: KindUsers, want: 3},
		{kind: KindInspectors, want: 2},
		{kind: Kind("unknown"), want: 0},
	}
	for _, tt := range tests {
		if got := CapFor(tenant, tt.kind); got != tt.want {
			t.Fatalf("CapFor(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestForTenant(t *testing.T) {
	tenant := &models.Tenant{MaxDoors: 100}

	if d := ForTenant(tenant, KindDoors, 90, 10); !d.Allowed {
		t.Fatalf("expected 90+10 to fit a cap of 100")
	}
	if d := ForTenant(tenant, KindDoors, 95, 10); d.Allowed {
		t.Fatalf("expected 95+10 to exceed a cap of 100")
	}

	tenant.MaxDoors = models.CapUnlimited
	if d := ForTenant(tenant, KindDoors, 100000, 1); !d.Allowed {
		t.Fatalf("expected unlimited cap to always allow")
	}
}
