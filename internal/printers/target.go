// Package printers holds the printer registry and the TCP dispatcher
// that delivers encoded receipts to thermal printers.
package printers

import (
	"errors"
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"
)

// Validation failures for a single target. Detected before any network
// attempt; they block only the offending target.
var (
	ErrMissingAddress = errors.New("printer address missing")
	ErrInvalidPort    = errors.New("printer port out of range (must be 1-65535)")
	ErrMissingName    = errors.New("printer name missing")
)

// Target is one configured printer endpoint and the categories it
// serves. The registry owns these records; the dispatcher only reads
// them.
type Target struct {
	ID         string   `json:"id"`
	Name       string   `json:"name" validate:"required"`
	Host       string   `json:"ip" validate:"required"`
	Port       int      `json:"port" validate:"min=1,max=65535"`
	Enabled    bool     `json:"enabled"`
	Categories []string `json:"categories"`
}

var validate = validatorv10.New()

// Validate checks a target's configuration and returns the first
// problem found as a typed error.
func (t Target) Validate() error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			switch fe.Field() {
			case "Host":
				return ErrMissingAddress
			case "Port":
				return ErrInvalidPort
			case "Name":
				return ErrMissingName
			}
		}
	}
	return err
}

// ServesCategory reports whether the target is enabled and configured
// for the given category label.
func (t Target) ServesCategory(category string) bool {
	if !t.Enabled {
		return false
	}
	for _, c := range t.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// TargetError ties a validation failure to the target's position in the
// submitted list.
type TargetError struct {
	Index int
	Err   error
}

func (e TargetError) Error() string {
	return fmt.Sprintf("printer %d: %v", e.Index+1, e.Err)
}

func (e TargetError) Unwrap() error { return e.Err }

// ValidateAll validates every target and collects one TargetError per
// invalid entry. Valid targets are unaffected by invalid siblings.
func ValidateAll(targets []Target) []TargetError {
	var out []TargetError
	for i, t := range targets {
		if err := t.Validate(); err != nil {
			out = append(out, TargetError{Index: i, Err: err})
		}
	}
	return out
}
