package profile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError represents a specific validation failure in a launch
// profile.
type ValidationError struct {
	// Field is the profile field that failed validation (e.g., "venv").
	Field string

	// Message describes what is wrong with the field value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("profile validation error: %s: %s", e.Field, e.Message)
}

// Validate checks a profile after defaults have been applied and
// returns the list of problems found (empty list = valid profile).
//
// Validation is about catching profiles that cannot possibly launch
// correctly, not about predicting whether the launch will succeed —
// existence of the venv or the entry point on disk is deliberately not
// checked here, because the launch sequence attempts them regardless
// (doctor is the place for existence checks).
func Validate(p *Profile) []ValidationError {
	var errs []ValidationError

	// Check 1: a runner must exist to invoke. Defaults guarantee one
	// unless the file explicitly set it to whitespace.
	if strings.TrimSpace(p.Runner) == "" {
		errs = append(errs, ValidationError{
			Field:   "runner",
			Message: "runner must not be empty",
		})
	}

	// Check 2: the entry point is the one argument the sequence cannot
	// do without.
	if strings.TrimSpace(p.Entrypoint) == "" {
		errs = append(errs, ValidationError{
			Field:   "entrypoint",
			Message: "entrypoint must not be empty",
		})
	}

	// Check 3: venv and entrypoint are resolved against the launch
	// directory; absolute paths would silently escape it.
	if p.Venv != "" && filepath.IsAbs(p.Venv) {
		errs = append(errs, ValidationError{
			Field:   "venv",
			Message: "venv path must be relative to the launch directory",
		})
	}
	if p.Entrypoint != "" && filepath.IsAbs(p.Entrypoint) {
		errs = append(errs, ValidationError{
			Field:   "entrypoint",
			Message: "entrypoint path must be relative to the launch directory",
		})
	}

	// Check 4: env keys become KEY=VALUE pairs; a key containing "="
	// or an empty key would corrupt the child environment.
	for k := range p.Env {
		if k == "" || strings.Contains(k, "=") {
			errs = append(errs, ValidationError{
				Field:   "env",
				Message: fmt.Sprintf("invalid environment variable name %q", k),
			})
		}
	}

	return errs
}
