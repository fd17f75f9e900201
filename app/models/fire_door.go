package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	DOOR_TYPE_FLAT_ENTRANCE = "FLAT_ENTRANCE"
	DOOR_TYPE_COMMUNAL      = "COMMUNAL"
	DOOR_TYPE_PLANT_ROOM    = "PLANT_ROOM"
	DOOR_TYPE_STAIRWELL     = "STAIRWELL"
	DOOR_TYPE_OTHER         = "OTHER"
)

// DoorTypes lists the accepted door classifications in display order.
var DoorTypes = []string{
	DOOR_TYPE_FLAT_ENTRANCE,
	DOOR_TYPE_COMMUNAL,
	DOOR_TYPE_PLANT_ROOM,
	DOOR_TYPE_STAIRWELL,
	DOOR_TYPE_OTHER,
}

type FireDoor struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	BuildingID        uint           `gorm:"index;uniqueIndex:idx_building_door_number" json:"building_id" validate:"required"`
	Building          *Building      `gorm:"foreignKey:BuildingID" json:"-"`
	TenantID          uint           `gorm:"index" json:"tenant_id" validate:"required"`
	DoorNumber        string         `gorm:"type:varchar(50);uniqueIndex:idx_building_door_number" json:"door_number" validate:"required,min=1,max=50"`
	Location          string         `gorm:"type:varchar(200);default:null" json:"location" validate:"max=200"`
	DoorType          string         `gorm:"type:varchar(50);default:'OTHER'" json:"door_type" validate:"oneof=FLAT_ENTRANCE COMMUNAL PLANT_ROOM STAIRWELL OTHER"`
	FireRating        string         `gorm:"type:varchar(20);default:null" json:"fire_rating" validate:"max=20"`
	LastInspectionAt  *time.Time     `gorm:"type:timestamp;default:null" json:"last_inspection_at"`
	NextInspectionDue *time.Time     `gorm:"type:timestamp;default:null" json:"next_inspection_due"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *FireDoor) Validate() error {
	v := validator.New()

	return v.Struct(d)
}

// IsFlatEntrance reports whether the annual flat entrance rule applies to this door.
func (d *FireDoor) IsFlatEntrance() bool {
	return d.DoorType == DOOR_TYPE_FLAT_ENTRANCE
}
