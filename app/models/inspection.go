package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	INSPECTION_OUTCOME_PASS     = "pass"
	INSPECTION_OUTCOME_FAIL     = "fail"
	INSPECTION_OUTCOME_ADVISORY = "advisory"
)

type Inspection struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	FireDoorID    uint           `gorm:"index" json:"fire_door_id" validate:"required"`
	FireDoor      *FireDoor      `gorm:"foreignKey:FireDoorID" json:"-"`
	TenantID      uint           `gorm:"index" json:"tenant_id" validate:"required"`
	InspectedAt   time.Time      `gorm:"type:timestamp" json:"inspected_at" validate:"required"`
	NextDueAt     *time.Time     `gorm:"type:timestamp;default:null" json:"next_due_at"`
	Outcome       string         `gorm:"type:varchar(20);default:'pass'" json:"outcome" validate:"oneof=pass fail advisory"`
	InspectorName string         `gorm:"type:varchar(150);default:null" json:"inspector_name" validate:"max=150"`
	Notes         string         `gorm:"type:text;default:null" json:"notes" validate:"max=2000"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Inspection) Validate() error {
	v := validator.New()

	return v.Struct(i)
}
