package models

import (
	"time"

	"gorm.io/datatypes"
)

type RetreatType string

const (
	RetreatYoga       RetreatType = "YOGA"
	RetreatMeditation RetreatType = "MEDITATION"
	RetreatWellness   RetreatType = "WELLNESS"
	RetreatCorporate  RetreatType = "CORPORATE"
)

type Retreat struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Capacity  int            `gorm:"not null" json:"capacity"`
	Price     float64        `gorm:"not null" json:"price"`
	StartDate time.Time      `gorm:"not null" json:"startDate"`
	EndDate   time.Time      `gorm:"not null" json:"endDate"`
	Location  string         `json:"location"`
	Type      RetreatType    `gorm:"type:varchar(20);not null;default:'WELLNESS'" json:"type"`
	Amenities datatypes.JSON `json:"amenities,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
