package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/pylaunch/internal/model"
	"github.com/mmr-tortoise/pylaunch/internal/port"
	"github.com/mmr-tortoise/pylaunch/internal/profile"
)

// checkByName finds a check in a report; fails the test if absent.
func checkByName(t *testing.T, checks []model.Check, name string) model.Check {
	t.Helper()
	for _, c := range checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found in report", name)
	return model.Check{}
}

// TestCollectChecks_EmptyDirectory verifies the all-missing shape: a
// bare directory has no venv and no entry point, and the report says
// so without inventing failures elsewhere.
func TestCollectChecks_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	checks := collectChecks(dir, profile.Default(), nil, port.NewScanner())

	assert.Equal(t, model.CheckOK, checkByName(t, checks, "profile").Status)
	assert.Equal(t, "built-in defaults", checkByName(t, checks, "profile").Detail)
	assert.Equal(t, model.CheckMissing, checkByName(t, checks, "venv").Status)
	assert.Equal(t, model.CheckMissing, checkByName(t, checks, "entrypoint").Status)
}

// TestCollectChecks_HealthyLayout verifies the all-ok path with a full
// fake venv, a venv-local runner, and the entry point in place.
func TestCollectChecks_HealthyLayout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fixture uses Unix executable names")
	}
	dir := t.TempDir()

	binDir := filepath.Join(dir, "venv", platformBinDir())
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "python"), []byte("#!/bin/true\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "streamlit"), []byte("#!/bin/true\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "venv", "pyvenv.cfg"),
		[]byte("version = 3.11.4\n"), 0o644))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main_app.py"),
		[]byte("import streamlit\n"), 0o644))

	checks := collectChecks(dir, profile.Default(), nil, port.NewScanner())

	assert.Equal(t, model.CheckOK, checkByName(t, checks, "venv").Status)

	python := checkByName(t, checks, "python")
	assert.Equal(t, model.CheckOK, python.Status)
	assert.Contains(t, python.Detail, "3.11.4")

	runner := checkByName(t, checks, "runner")
	assert.Equal(t, model.CheckOK, runner.Status)
	assert.Contains(t, runner.Detail, "streamlit")

	assert.Equal(t, model.CheckOK, checkByName(t, checks, "entrypoint").Status)
}

// TestCollectChecks_AlternateVenvName verifies the warning when a venv
// exists under a conventional name other than the configured one —
// run will not fall back to it, so the user must be told.
func TestCollectChecks_AlternateVenvName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".venv", platformBinDir()), 0o755))

	checks := collectChecks(dir, profile.Default(), nil, port.NewScanner())

	venvCheck := checkByName(t, checks, "venv")
	assert.Equal(t, model.CheckWarning, venvCheck.Status)
	assert.Contains(t, venvCheck.Detail, ".venv")
}

// TestCollectChecks_BrokenProfile verifies a parse failure is reported
// as a missing profile while the rest of the report still runs on
// defaults.
func TestCollectChecks_BrokenProfile(t *testing.T) {
	dir := t.TempDir()

	profErr := model.NewCLIError(model.ExitProfileInvalid, "failed to parse profile")
	checks := collectChecks(dir, profile.Default(), profErr, port.NewScanner())

	profCheck := checkByName(t, checks, "profile")
	assert.Equal(t, model.CheckMissing, profCheck.Status)
	assert.Contains(t, profCheck.Detail, "failed to parse")

	// The remaining checks are still present.
	checkByName(t, checks, "venv")
	checkByName(t, checks, "entrypoint")
	checkByName(t, checks, "port")
}

// TestCountFailing verifies the fail-on threshold: the default counts
// only missing checks, --fail-on warning pulls warnings in too.
func TestCountFailing(t *testing.T) {
	checks := []model.Check{
		{Name: "profile", Status: model.CheckOK},
		{Name: "venv", Status: model.CheckWarning},
		{Name: "entrypoint", Status: model.CheckMissing},
	}

	assert.Equal(t, 1, countFailing(checks, model.CheckMissing))
	assert.Equal(t, 2, countFailing(checks, model.CheckWarning))
	assert.Equal(t, 0, countFailing(nil, model.CheckMissing))
}

// TestRunDoctor_MissingChecksExitCode verifies a bare directory makes
// doctor fail with its dedicated exit code.
func TestRunDoctor_MissingChecksExitCode(t *testing.T) {
	err := runDoctor(&doctorFlags{dir: t.TempDir(), failOn: "missing"})

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitDoctorFailed, cliErr.Code)
	assert.Contains(t, cliErr.Message, "checks failed")
}

// TestRunDoctor_InvalidFailOn verifies an unknown threshold is
// rejected before any check runs.
func TestRunDoctor_InvalidFailOn(t *testing.T) {
	err := runDoctor(&doctorFlags{dir: t.TempDir(), failOn: "fatal"})

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
	assert.Contains(t, cliErr.Error(), "invalid check status")
}

// platformBinDir mirrors the venv package's platform switch for test
// fixtures without exporting it.
func platformBinDir() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}
