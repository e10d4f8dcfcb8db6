package models

// Status is the review state shared by reports and estimates.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func validateStatus(model string, s Status) error {
	if !s.Valid() {
		return &ValidationError{Model: model, Field: "status", Message: "`" + string(s) + "` is not a valid status"}
	}
	return nil
}
