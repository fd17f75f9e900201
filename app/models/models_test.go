package models

import (
	"testing"
	"time"
)

func TestCreateTenantDefaults(t *testing.T) {
	tenant, err := CreateTenant("Acme Property Group", "acme", "ops@acme.example", 14)
	if err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}

	if tenant.SubscriptionPlan != PLAN_TRIAL {
		t.Fatalf("plan = %s, want %s", tenant.SubscriptionPlan, PLAN_TRIAL)
	}
	if tenant.SubscriptionStatus != SUB_STATUS_ACTIVE {
		t.Fatalf("status = %s, want %s", tenant.SubscriptionStatus, SUB_STATUS_ACTIVE)
	}
	if tenant.MaxBuildings != 5 || tenant.MaxDoors != 100 || tenant.MaxUsers != 3 || tenant.MaxInspectors != 2 {
		t.Fatalf("unexpected default caps: %+v", tenant)
	}
	if tenant.TrialEndsAt == nil {
		t.Fatalf("expected a trial window to be set")
	}
	if !tenant.IsOnTrial() {
		t.Fatalf("expected new tenant to be on trial")
	}

	until := time.Until(*tenant.TrialEndsAt)
	if until < 13*24*time.Hour || until > 15*24*time.Hour {
		t.Fatalf("trial window %v not around 14 days", until)
	}
}

func TestCreateTenantWithoutTrialWindow(t *testing.T) {
	tenant, err := CreateTenant("Acme Property Group", "acme", "ops@acme.example", 0)
	if err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}
	if tenant.TrialEndsAt != nil {
		t.Fatalf("expected no trial window for zero trial days")
	}
}

func TestCreateTenantRejectsBadInput(t *testing.T) {
	if _, err := CreateTenant("", "acme", "ops@acme.example", 14); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
	if _, err := CreateTenant("Acme", "acme", "not-an-email", 14); err == nil {
		t.Fatalf("expected invalid email to be rejected")
	}
}

func TestTenantValidateCaps(t *testing.T) {
	tenant, err := CreateTenant("Acme", "acme", "ops@acme.example", 0)
	if err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}

	tenant.MaxDoors = CapUnlimited
	if err := tenant.Validate(); err != nil {
		t.Fatalf("the unlimited sentinel must pass validation: %v", err)
	}

	tenant.MaxDoors = -2
	if err := tenant.Validate(); err == nil {
		t.Fatalf("caps below the sentinel must be rejected")
	}
}

func TestBuildingIsHighRise(t *testing.T) {
	tests := []struct {
		name   string
		height *float64
		want   bool
	}{
		{name: "no height recorded", height: nil, want: false},
		{name: "below threshold", height: floatPtr(5), want: false},
		{name: "exactly 11m", height: floatPtr(11), want: false},
		{name: "above threshold", height: floatPtr(11.5), want: true},
	}

	for _, tt := range tests {
		b := Building{TopStoreyHeightM: tt.height}
		if got := b.IsHighRise(); got != tt.want {
			t.Fatalf("%s: IsHighRise = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBuildingValidate(t *testing.T) {
	b := Building{TenantID: 1, Name: "Maple House", BuildingType: BUILDING_TYPE_RESIDENTIAL, StoreyCount: 6}
	if err := b.Validate(); err != nil {
		t.Fatalf("valid building rejected: %v", err)
	}

	b.BuildingType = "castle"
	if err := b.Validate(); err == nil {
		t.Fatalf("expected unknown building type to be rejected")
	}

	b.BuildingType = BUILDING_TYPE_RESIDENTIAL
	b.TopStoreyHeightM = floatPtr(-1)
	if err := b.Validate(); err == nil {
		t.Fatalf("expected negative height to be rejected")
	}
}

func TestFireDoorValidate(t *testing.T) {
	d := FireDoor{BuildingID: 1, TenantID: 1, DoorNumber: "D-101", DoorType: DOOR_TYPE_COMMUNAL}
	if err := d.Validate(); err != nil {
		t.Fatalf("valid door rejected: %v", err)
	}

	d.DoorType = "REVOLVING"
	if err := d.Validate(); err == nil {
		t.Fatalf("expected unknown door type to be rejected")
	}

	d.DoorType = DOOR_TYPE_FLAT_ENTRANCE
	if !d.IsFlatEntrance() {
		t.Fatalf("expected IsFlatEntrance to hold")
	}
}

func TestInspectionValidate(t *testing.T) {
	i := Inspection{FireDoorID: 1, TenantID: 1, InspectedAt: time.Now(), Outcome: INSPECTION_OUTCOME_PASS}
	if err := i.Validate(); err != nil {
		t.Fatalf("valid inspection rejected: %v", err)
	}

	i.Outcome = "shrug"
	if err := i.Validate(); err == nil {
		t.Fatalf("expected unknown outcome to be rejected")
	}
}

func floatPtr(v float64) *float64 { return &v }
