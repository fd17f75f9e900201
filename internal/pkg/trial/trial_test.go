package trial

import (
	"testing"
	"time"

	"github.com/complymate/doorguard/app/models"
)

func trialTenant(endsAt time.Time) *models.Tenant {
	return &models.Tenant{SubscriptionPlan: models.PLAN_TRIAL, TrialEndsAt: &endsAt}
}

func TestEvaluateNotOnTrial(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	paid := &models.Tenant{SubscriptionPlan: models.PLAN_PRO}
	if ev := Evaluate(paid, now); ev.State != StateNotOnTrial {
		t.Fatalf("paid plan: got %s", ev.State)
	}

	// Trial plan without an activated window is not on trial either.
	unset := &models.Tenant{SubscriptionPlan: models.PLAN_TRIAL}
	if ev := Evaluate(unset, now); ev.State != StateNotOnTrial {
		t.Fatalf("no trial window: got %s", ev.State)
	}
}

func TestEvaluateSubscriptionStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// Canceling ends the trial even with days left on the window.
	canceled := trialTenant(now.AddDate(0, 0, 10))
	canceled.SubscriptionStatus = models.SUB_STATUS_CANCELED
	if ev := Evaluate(canceled, now); ev.State != StateNotOnTrial {
		t.Fatalf("canceled trial: got %s", ev.State)
	}

	// past_due cannot occur before a first payment; the trial runs on.
	pastDue := trialTenant(now.AddDate(0, 0, 10))
	pastDue.SubscriptionStatus = models.SUB_STATUS_PAST_DUE
	if ev := Evaluate(pastDue, now); ev.State != StateActive {
		t.Fatalf("past_due trial: got %s", ev.State)
	}
}

func TestEvaluateStates(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		endsAt   time.Time
		want     State
		wantDays int
	}{
		{name: "well inside trial", endsAt: now.AddDate(0, 0, 10), want: StateActive, wantDays: 10},
		{name: "just above threshold", endsAt: now.AddDate(0, 0, 4), want: StateActive, wantDays: 4},
		{name: "at threshold", endsAt: now.AddDate(0, 0, 3), want: StateExpiring, wantDays: 3},
		{name: "one day left", endsAt: now.AddDate(0, 0, 1), want: StateExpiring, wantDays: 1},
		{name: "partial day rounds up", endsAt: now.Add(6 * time.Hour), want: StateExpiring, wantDays: 1},
		{name: "expired an hour ago", endsAt: now.Add(-time.Hour), want: StateExpired, wantDays: 0},
		{name: "expired months ago", endsAt: now.AddDate(0, -3, 0), want: StateExpired, wantDays: 0},
	}

	for _, tt := range tests {
		ev := Evaluate(trialTenant(tt.endsAt), now)
		if ev.State != tt.want {
			t.Fatalf("%s: state = %s, want %s", tt.name, ev.State, tt.want)
		}
		if ev.DaysRemaining != tt.wantDays {
			t.Fatalf("%s: days = %d, want %d", tt.name, ev.DaysRemaining, tt.wantDays)
		}
	}
}

func TestEvaluateMessages(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		endsAt time.Time
		want   string
	}{
		{endsAt: now.Add(6 * time.Hour), want: "Your trial expires tomorrow."},
		{endsAt: now.AddDate(0, 0, 1), want: "Your trial expires tomorrow."},
		{endsAt: now.AddDate(0, 0, 3), want: "Your trial expires in 3 days."},
		{endsAt: now.AddDate(0, 0, 14), want: "14 days remaining in your trial."},
		{endsAt: now, want: "Your trial expires today."},
	}

	for _, tt := range tests {
		ev := Evaluate(trialTenant(tt.endsAt), now)
		if ev.Message != tt.want {
			t.Fatalf("endsAt=%v: message = %q, want %q", tt.endsAt, ev.Message, tt.want)
		}
	}
}

func TestEvaluateExpiredMessageIsFixed(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// The expired message never mentions how long ago the trial ended.
	for _, endsAt := range []time.Time{now.Add(-time.Minute), now.AddDate(-1, 0, 0)} {
		ev := Evaluate(trialTenant(endsAt), now)
		if !ev.HasExpired() {
			t.Fatalf("endsAt=%v: expected expired", endsAt)
		}
		if ev.Message != ExpiredMessage {
			t.Fatalf("endsAt=%v: message = %q", endsAt, ev.Message)
		}
	}
}
