package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidationError is returned by model hooks when a record is missing a
// required field or carries a value outside its allowed set.
type ValidationError struct {
	Model   string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s: %s", e.Model, e.Field, e.Message)
}

func missingField(model, field string) *ValidationError {
	return &ValidationError{Model: model, Field: field, Message: field + " is required"}
}

// MissingField builds the ValidationError used when a required request field is absent.
func MissingField(model, field string) error {
	return missingField(model, field)
}

func requireString(model, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return missingField(model, field)
	}
	return nil
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
