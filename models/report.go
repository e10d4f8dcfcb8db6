package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Report is a generated document derived from an estimate. The payload
// fields carry whatever structure the frontend renders; they are stored as
// JSON, NULL when unset, and never interpreted here.
type Report struct {
	ID            string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID        string  `gorm:"not null;index" json:"user"`
	Title         string  `gorm:"not null" json:"title"`
	Description   string  `gorm:"not null" json:"description"`
	ProjectName   string  `gorm:"not null" json:"projectName"`
	EstimatedCost float64 `gorm:"not null" json:"estimatedCost"`
	EstimatedTime float64 `gorm:"not null" json:"estimatedTime"`
	Status        Status  `gorm:"not null;default:'draft'" json:"status"`

	ProjectDetails    datatypes.JSON `json:"projectDetails,omitempty"`
	ClientDetails     datatypes.JSON `json:"clientDetails,omitempty"`
	Items             datatypes.JSON `json:"items,omitempty"`
	SearchResults     datatypes.JSON `json:"searchResults,omitempty"`
	InputData         datatypes.JSON `json:"inputData,omitempty"`
	EditableRates     datatypes.JSON `json:"editableRates,omitempty"`
	RateSelection     datatypes.JSON `json:"rateSelection,omitempty"`
	GrandTotalCost    *float64       `json:"grandTotalCost,omitempty"`
	GrandTotalInWords *string        `json:"grandTotalInWords,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Report model
func (Report) TableName() string {
	return "reports"
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	if r.Status == "" {
		r.Status = StatusDraft
	}
	return nil
}

// AfterFind turns NULL payload columns, which scan as a JSON null, back into
// unset fields.
func (r *Report) AfterFind(tx *gorm.DB) error {
	for _, payload := range []*datatypes.JSON{
		&r.ProjectDetails, &r.ClientDetails, &r.Items, &r.SearchResults,
		&r.InputData, &r.EditableRates, &r.RateSelection,
	} {
		if string(*payload) == "null" {
			*payload = nil
		}
	}
	return nil
}

func (r *Report) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}

// Validate checks the fields the store requires on every save.
func (r *Report) Validate() error {
	if r.UserID == "" {
		return missingField("Report", "user")
	}
	for _, f := range []struct{ name, value string }{
		{"title", r.Title},
		{"description", r.Description},
		{"projectName", r.ProjectName},
	} {
		if err := requireString("Report", f.name, f.value); err != nil {
			return err
		}
	}
	if r.Status == "" {
		r.Status = StatusDraft
	}
	return validateStatus("Report", r.Status)
}
