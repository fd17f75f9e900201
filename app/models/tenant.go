package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	PLAN_TRIAL   = "trial"
	PLAN_STARTER = "starter"
	PLAN_PRO     = "pro"

	SUB_STATUS_ACTIVE   = "active"
	SUB_STATUS_PAST_DUE = "past_due"
	SUB_STATUS_CANCELED = "canceled"

	BILLING_MONTHLY = "monthly"
	BILLING_ANNUAL  = "annual"

	// CapUnlimited disables quota enforcement for a resource kind.
	CapUnlimited = -1
)

type Tenant struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Slug               string         `gorm:"uniqueIndex;type:varchar(100)" json:"slug" validate:"required,min=2,max=100"`
	ContactEmail       string         `gorm:"type:varchar(200)" json:"contact_email" validate:"required,email,max=200"`
	MaxBuildings       int            `gorm:"default:5" json:"max_buildings" validate:"min=-1"`
	MaxDoors           int            `gorm:"default:100" json:"max_doors" validate:"min=-1"`
	MaxUsers           int            `gorm:"default:3" json:"max_users" validate:"min=-1"`
	MaxInspectors      int            `gorm:"default:2" json:"max_inspectors" validate:"min=-1"`
	BillingModel       string         `gorm:"type:varchar(50);default:'monthly'" json:"billing_model" validate:"oneof=monthly annual"`
	SubscriptionPlan   string         `gorm:"type:varchar(50);default:'trial'" json:"subscription_plan" validate:"oneof=trial starter pro"`
	SubscriptionStatus string         `gorm:"type:varchar(50);default:'active'" json:"subscription_status" validate:"oneof=active past_due canceled"`
	TrialEndsAt        *time.Time     `gorm:"type:timestamp;default:null" json:"trial_ends_at"`
	LogoURL            string         `gorm:"type:varchar(255);default:null" json:"logo_url" validate:"max=255"`
	AccentColor        string         `gorm:"type:varchar(20);default:null" json:"accent_color" validate:"max=20"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Tenant) Validate() error {
	v := validator.New()

	return v.Struct(t)
}

// CreateTenant builds a trial tenant with default caps applied.
func CreateTenant(name, slug, contactEmail string, trialDays int) (*Tenant, error) {
	t := &Tenant{
		Name:               name,
		Slug:               slug,
		ContactEmail:       contactEmail,
		MaxBuildings:       5,
		MaxDoors:           100,
		MaxUsers:           3,
		MaxInspectors:      2,
		BillingModel:       BILLING_MONTHLY,
		SubscriptionPlan:   PLAN_TRIAL,
		SubscriptionStatus: SUB_STATUS_ACTIVE,
	}
	if trialDays > 0 {
		ends := time.Now().UTC().AddDate(0, 0, trialDays)
		t.TrialEndsAt = &ends
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// IsOnTrial reports whether the tenant is on the trial plan.
func (t *Tenant) IsOnTrial() bool {
	return t.SubscriptionPlan == PLAN_TRIAL
}
