// Package model defines the domain types for the pylaunch CLI.
//
// All entities in this package are transient, in-memory representations
// built fresh on every invocation. The launcher keeps no persistent state:
// the only state it touches is the process working directory and the
// process environment, and both are set once and never inspected again.
package model

import (
	"fmt"
	"strings"
)

// CheckStatus represents the outcome of a single doctor check.
//
// A check is either satisfied (ok), satisfied with a caveat worth
// surfacing (warning), or unsatisfied (missing). The doctor command
// exits non-zero only when at least one check is missing.
type CheckStatus string

const (
	// CheckOK indicates the checked collaborator is present and usable.
	CheckOK CheckStatus = "ok"

	// CheckWarning indicates the collaborator is usable but degraded
	// (e.g., the venv exists under a non-default name, or the default
	// Streamlit port is already taken).
	CheckWarning CheckStatus = "warning"

	// CheckMissing indicates the collaborator is absent. The launcher
	// would still attempt the launch — run never gates on these checks —
	// but the launch would almost certainly fail.
	CheckMissing CheckStatus = "missing"
)

// String returns the string representation of CheckStatus.
// This satisfies fmt.Stringer for use in CLI output.
func (s CheckStatus) String() string {
	return string(s)
}

// IsValid checks whether the CheckStatus value is one of the
// predefined states.
func (s CheckStatus) IsValid() bool {
	switch s {
	case CheckOK, CheckWarning, CheckMissing:
		return true
	default:
		return false
	}
}

// ParseCheckStatus converts a string to a CheckStatus.
// Returns an error if the string does not match any valid status.
// Used to parse the doctor command's --fail-on flag.
func ParseCheckStatus(s string) (CheckStatus, error) {
	status := CheckStatus(strings.ToLower(s))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid check status: %q (valid: ok, warning, missing)", s)
	}
	return status, nil
}

// Severity orders statuses from healthy to broken, so a threshold
// status ("fail on warning or worse") can be compared numerically.
func (s CheckStatus) Severity() int {
	switch s {
	case CheckWarning:
		return 1
	case CheckMissing:
		return 2
	default:
		return 0
	}
}

// Check is a single doctor finding: what was inspected, how it went,
// and a short human-readable detail line.
type Check struct {
	// Name identifies the collaborator inspected (e.g., "venv",
	// "entrypoint", "runner").
	Name string `json:"name"`

	// Status is the outcome of the check.
	Status CheckStatus `json:"status"`

	// Detail is a one-line description of what was found
	// (a path, a version, or the reason the check failed).
	Detail string `json:"detail,omitempty"`
}

// LaunchPlan is the fully resolved description of one launch: where it
// will run, what environment it will activate, and the exact command
// line it will invoke. Both the run and show commands build one; show
// prints it, run executes it.
type LaunchPlan struct {
	// Dir is the absolute directory the launch runs from. By contract
	// this is the directory containing the launcher binary itself,
	// not the caller's working directory.
	Dir string `json:"dir"`

	// ProfileSource is the path of the profile file the plan was built
	// from, or empty when built-in defaults were used.
	ProfileSource string `json:"profileSource,omitempty"`

	// VenvPath is the absolute path of the virtual environment that
	// will be activated.
	VenvPath string `json:"venvPath"`

	// VenvFound reports whether the venv actually exists. A missing
	// venv does not stop the launch; the command is attempted with the
	// inherited environment instead.
	VenvFound bool `json:"venvFound"`

	// Argv is the complete command line, runner binary first.
	Argv []string `json:"argv"`

	// ExtraEnv holds additional KEY=VALUE pairs from the profile,
	// applied to the child on top of the activated environment.
	ExtraEnv []string `json:"extraEnv,omitempty"`

	// Pause reports whether the terminal pause will run after the
	// child exits.
	Pause bool `json:"pause"`
}

// CommandLine renders the plan's argv as a single shell-style string
// for display. Arguments containing whitespace are quoted.
func (p *LaunchPlan) CommandLine() string {
	parts := make([]string, 0, len(p.Argv))
	for _, a := range p.Argv {
		if strings.ContainsAny(a, " \t") {
			parts = append(parts, fmt.Sprintf("%q", a))
		} else {
			parts = append(parts, a)
		}
	}
	return strings.Join(parts, " ")
}

// ExitCode defines the CLI exit codes for pylaunch's own failures.
// When the launched application runs at all, its exit code is
// propagated verbatim and these constants do not apply.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error, including a
	// child process that could not be started at all.
	ExitGeneralError ExitCode = 1

	// ExitProfileInvalid indicates the launch profile file could not
	// be parsed or failed validation.
	ExitProfileInvalid ExitCode = 2

	// ExitDoctorFailed indicates doctor found at least one missing
	// collaborator.
	ExitDoctorFailed ExitCode = 3
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitStatusError carries a final process exit status whose explanation
// is already on the console.
//
// The run command returns one in two cases: the child ran and exited
// non-zero (its own output is the error report), or the child could not
// be started and run printed the failure before pausing. Either way the
// CLI layer exits with exactly this code and prints no banner of its
// own — everything the user needs to see was kept visible by the
// terminal pause.
type ExitStatusError struct {
	// Code is the exit status to return to the OS.
	Code int
}

// Error satisfies the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
