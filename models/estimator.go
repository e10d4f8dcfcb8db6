package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Estimator is a saved cost and duration estimate for a road project.
type Estimator struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID        string         `gorm:"not null;index" json:"user"` // owner
	ProjectName   string         `gorm:"not null" json:"projectName"`
	ClientName    string         `json:"clientName"`
	RoadType      string         `json:"roadType"`
	RoadLength    float64        `gorm:"not null" json:"roadLength"`
	RoadWidth     float64        `gorm:"not null" json:"roadWidth"`
	Materials     any            `gorm:"type:text;serializer:json" json:"materials"` // material name -> quantity/unit cost
	LaborCost     float64        `json:"laborCost"`
	EquipmentCost float64        `json:"equipmentCost"`
	TotalCost     float64        `gorm:"not null" json:"totalCost"`
	EstimatedTime float64        `gorm:"not null" json:"estimatedTime"` // days
	Notes         string         `json:"notes"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Estimator model
func (Estimator) TableName() string {
	return "estimators"
}

func (e *Estimator) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	if e.Materials == nil {
		e.Materials = map[string]any{}
	}
	return nil
}

func (e *Estimator) BeforeSave(tx *gorm.DB) error {
	e.ProjectName = strings.TrimSpace(e.ProjectName)
	e.ClientName = strings.TrimSpace(e.ClientName)
	e.Notes = strings.TrimSpace(e.Notes)
	return e.Validate()
}

// Validate checks the fields the store requires on every save.
func (e *Estimator) Validate() error {
	if e.UserID == "" {
		return missingField("Estimator", "user")
	}
	return requireString("Estimator", "projectName", e.ProjectName)
}
