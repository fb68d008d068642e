package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
)

// RegisterCustomValidators wires the custom binding validations used by the
// request DTOs into the given validator instance.
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("entrystatus", validateEntryStatus)
}

// validateEntryStatus accepts only the known entry lifecycle statuses.
func validateEntryStatus(fl validator.FieldLevel) bool {
	switch domain.EntryStatus(fl.Field().String()) {
	case domain.Draft, domain.Posted, domain.Cancelled:
		return true
	}
	return false
}
