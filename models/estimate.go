package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Estimate is a lighter saved computation with an opaque details payload.
type Estimate struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID        string         `gorm:"not null;index" json:"user"`
	Title         string         `gorm:"not null" json:"title"`
	ProjectName   string         `gorm:"not null" json:"projectName"`
	EstimatedCost float64        `gorm:"not null" json:"estimatedCost"`
	EstimatedTime float64        `gorm:"not null" json:"estimatedTime"`
	Details       any            `gorm:"type:text;serializer:json" json:"details"`
	Status        Status         `gorm:"not null;default:'draft'" json:"status"`
	CreatedAt     time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Estimate model
func (Estimate) TableName() string {
	return "estimates"
}

func (e *Estimate) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	if e.Status == "" {
		e.Status = StatusDraft
	}
	return nil
}

func (e *Estimate) BeforeSave(tx *gorm.DB) error {
	e.Title = strings.TrimSpace(e.Title)
	return e.Validate()
}

// Validate checks the fields the store requires on every save.
func (e *Estimate) Validate() error {
	if e.UserID == "" {
		return missingField("Estimate", "user")
	}
	if err := requireString("Estimate", "title", e.Title); err != nil {
		return err
	}
	if err := requireString("Estimate", "projectName", e.ProjectName); err != nil {
		return err
	}
	if e.Details == nil {
		return missingField("Estimate", "details")
	}
	if e.Status == "" {
		e.Status = StatusDraft
	}
	return validateStatus("Estimate", e.Status)
}
