package trial

import (
	"fmt"
	"time"

	"github.com/complymate/doorguard/app/models"
)

// State is the tenant's trial position, derived fresh on every read from the
// tenant's billing fields. Nothing here is stored.
type State string

const (
	StateNotOnTrial State = "not_on_trial"
	StateActive     State = "on_trial_active"
	StateExpiring   State = "on_trial_expiring"
	StateExpired    State = "on_trial_expired"
)

// ExpiringThresholdDays is the remaining-day count at or under which a trial
// counts as expiring.
const ExpiringThresholdDays = 3

// ExpiredMessage is shown for any expired trial regardless of elapsed time.
const ExpiredMessage = "Your trial has ended. Upgrade to keep managing your fire door records."

// Evaluation is the computed trial position plus the user-facing message.
type Evaluation struct {
	State         State  `json:"state"`
	DaysRemaining int    `json:"days_remaining"`
	Message       string `json:"message,omitempty"`
}

// HasExpired reports whether the trial window has closed.
func (e Evaluation) HasExpired() bool {
	return e.State == StateExpired
}

// Evaluate computes the trial state for a tenant at the given instant. Day
// boundaries are evaluated in UTC. Tenants off the trial plan, without an
// activated trial window, or whose subscription was canceled are not on
// trial; past_due has no meaning before a first payment and is ignored.
func Evaluate(t *models.Tenant, now time.Time) Evaluation {
	if t.SubscriptionPlan != models.PLAN_TRIAL || t.TrialEndsAt == nil {
		return Evaluation{State: StateNotOnTrial}
	}
	if t.SubscriptionStatus == models.SUB_STATUS_CANCELED {
		return Evaluation{State: StateNotOnTrial}
	}

	days := daysRemaining(*t.TrialEndsAt, now)
	if now.After(t.TrialEndsAt.UTC()) {
		return Evaluation{State: StateExpired, DaysRemaining: 0, Message: ExpiredMessage}
	}

	ev := Evaluation{DaysRemaining: days, Message: message(days)}
	if days <= ExpiringThresholdDays {
		ev.State = StateExpiring
	} else {
		ev.State = StateActive
	}
	return ev
}

// daysRemaining is the whole number of days until the trial ends, partial
// days rounded up, clamped to zero once passed.
func daysRemaining(endsAt, now time.Time) int {
	diff := endsAt.UTC().Sub(now.UTC())
	if diff <= 0 {
		return 0
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

func message(days int) string {
	switch {
	case days == 0:
		return "Your trial expires today."
	case days == 1:
		return "Your trial expires tomorrow."
	case days <= ExpiringThresholdDays:
		return fmt.Sprintf("Your trial expires in %d days.", days)
	default:
		return fmt.Sprintf("%d days remaining in your trial.", days)
	}
}
