package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckStatus_IsValid verifies that only the three defined states
// are accepted.
func TestCheckStatus_IsValid(t *testing.T) {
	assert.True(t, CheckOK.IsValid())
	assert.True(t, CheckWarning.IsValid())
	assert.True(t, CheckMissing.IsValid())
	assert.False(t, CheckStatus("broken").IsValid())
	assert.False(t, CheckStatus("").IsValid())
}

// TestParseCheckStatus verifies parsing is case-insensitive and rejects
// unknown values with a descriptive error.
func TestParseCheckStatus(t *testing.T) {
	status, err := ParseCheckStatus("OK")
	require.NoError(t, err)
	assert.Equal(t, CheckOK, status)

	status, err = ParseCheckStatus("missing")
	require.NoError(t, err)
	assert.Equal(t, CheckMissing, status)

	_, err = ParseCheckStatus("fatal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid check status")
}

// TestCheckStatus_Severity verifies the ordering used by the doctor
// fail-on threshold: ok < warning < missing.
func TestCheckStatus_Severity(t *testing.T) {
	assert.Less(t, CheckOK.Severity(), CheckWarning.Severity())
	assert.Less(t, CheckWarning.Severity(), CheckMissing.Severity())
}

// TestLaunchPlan_CommandLine verifies the display rendering of argv,
// including quoting of arguments that contain whitespace.
func TestLaunchPlan_CommandLine(t *testing.T) {
	plan := &LaunchPlan{
		Argv: []string{"streamlit", "run", "src/main_app.py"},
	}
	assert.Equal(t, "streamlit run src/main_app.py", plan.CommandLine())

	plan = &LaunchPlan{
		Argv: []string{"streamlit", "run", "my app/main.py"},
	}
	assert.Equal(t, `streamlit run "my app/main.py"`, plan.CommandLine())
}

// TestCLIError_ErrorAndUnwrap verifies message formatting with and
// without an underlying error, and that Unwrap exposes the cause for
// errors.Is checks.
func TestCLIError_ErrorAndUnwrap(t *testing.T) {
	plain := NewCLIError(ExitProfileInvalid, "profile failed validation")
	assert.Equal(t, "profile failed validation", plain.Error())
	assert.Nil(t, plain.Unwrap())

	cause := fmt.Errorf("yaml: line 3: mapping values are not allowed")
	wrapped := WrapCLIError(ExitProfileInvalid, "failed to parse profile", cause)
	assert.Contains(t, wrapped.Error(), "failed to parse profile")
	assert.Contains(t, wrapped.Error(), "line 3")
	assert.True(t, errors.Is(wrapped, cause), "Unwrap should expose the underlying error")
}

// TestExitStatusError verifies that the child's exit code is carried
// through unchanged and surfaces in the message.
func TestExitStatusError(t *testing.T) {
	err := &ExitStatusError{Code: 7}
	assert.Equal(t, 7, err.Code)
	assert.Contains(t, err.Error(), "7")

	// ExitStatusError must be distinguishable from CLIError so the CLI
	// layer can suppress its error banner.
	var cliErr *CLIError
	assert.False(t, errors.As(err, &cliErr))
}
