package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	BUILDING_TYPE_RESIDENTIAL = "residential"
	BUILDING_TYPE_COMMERCIAL  = "commercial"
	BUILDING_TYPE_MIXED_USE   = "mixed_use"
	BUILDING_TYPE_EDUCATION   = "education"
	BUILDING_TYPE_HEALTHCARE  = "healthcare"
)

type Building struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	TenantID         uint           `gorm:"index;uniqueIndex:idx_tenant_building_name" json:"tenant_id" validate:"required"`
	Tenant           *Tenant        `gorm:"foreignKey:TenantID" json:"-"`
	Name             string         `gorm:"type:varchar(150);uniqueIndex:idx_tenant_building_name" json:"name" validate:"required,min=1,max=150"`
	AddressLine1     string         `gorm:"type:varchar(200)" json:"address_line1" validate:"max=200"`
	AddressLine2     string         `gorm:"type:varchar(200);default:null" json:"address_line2" validate:"max=200"`
	City             string         `gorm:"type:varchar(100)" json:"city" validate:"max=100"`
	Postcode         string         `gorm:"type:varchar(20)" json:"postcode" validate:"max=20"`
	BuildingType     string         `gorm:"type:varchar(50);default:'residential'" json:"building_type" validate:"oneof=residential commercial mixed_use education healthcare"`
	StoreyCount      int            `gorm:"default:1" json:"storey_count" validate:"min=0"`
	TopStoreyHeightM *float64       `gorm:"type:decimal(6,2);default:null" json:"top_storey_height_m"`
	ContactName      string         `gorm:"type:varchar(150);default:null" json:"contact_name" validate:"max=150"`
	ContactPhone     string         `gorm:"type:varchar(50);default:null" json:"contact_phone" validate:"max=50"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Building) Validate() error {
	if b.TopStoreyHeightM != nil && *b.TopStoreyHeightM < 0 {
		return validator.New().Var(*b.TopStoreyHeightM, "min=0")
	}
	v := validator.New()

	return v.Struct(b)
}

// IsHighRise reports whether the building's top storey sits above the 11m
// threshold used by the three-monthly inspection rule.
func (b *Building) IsHighRise() bool {
	return b.TopStoreyHeightM != nil && *b.TopStoreyHeightM > 11
}
