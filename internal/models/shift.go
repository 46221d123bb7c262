package models

import (
	"time"

	"gorm.io/datatypes"
)

type Shift struct {
	BaseModel
	HirerID     string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Category    string `gorm:"not null"`
	PayMin      float64
	PayMax      float64
	Address     *string
	City        string
	Latitude    *float64
	Longitude   *float64
	Date        *time.Time
	StartTime   string // "HH:MM"
	EndTime     string
	Skills      datatypes.JSON `gorm:"type:jsonb"`
	Status      ShiftStatus    `gorm:"type:varchar(20);not null;default:'open'"`

	// Relations
	Applications []ShiftApplication `gorm:"foreignKey:ShiftID"`
}

// ShiftApplication is a worker's bid on a shift. Rows are never deleted;
// at most one non-rejected row per (shift, worker) is enforced by a partial
// unique index created in database.Migrate.
type ShiftApplication struct {
	BaseModel
	ShiftID          string  `gorm:"not null;index"`
	WorkerID         string  `gorm:"not null;index"`
	BidAmount        float64 `gorm:"not null"`
	EstimatedArrival *string
	Message          *string
	Status           ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	// Relations
	Shift *Shift `gorm:"foreignKey:ShiftID"`
}
