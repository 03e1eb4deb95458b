package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/pylaunch/internal/model"
)

// writeProfile drops a profile file with the given name into dir.
func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad_NoFile verifies that a directory without a profile yields
// the built-in defaults — the classic launch sequence — with no error.
func TestLoad_NoFile(t *testing.T) {
	p, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "venv", p.Venv)
	assert.Equal(t, "streamlit", p.Runner)
	assert.Equal(t, []string{"run"}, p.RunnerArgs)
	assert.Equal(t, "src/main_app.py", p.Entrypoint)
	assert.Empty(t, p.Source, "defaults have no source file")
	assert.False(t, p.NoPause)
}

// TestLoad_JSONC verifies JSONC parsing: comments and trailing commas
// are legal, and unset fields fall back to defaults.
func TestLoad_JSONC(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "pylaunch.jsonc", `{
  // use the dot-prefixed venv created by the IDE
  "venv": ".venv",
  "args": ["--server.headless", "true"],
}`)

	p, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ".venv", p.Venv)
	assert.Equal(t, []string{"--server.headless", "true"}, p.Args)
	assert.Equal(t, path, p.Source)

	// Untouched fields keep their defaults.
	assert.Equal(t, "streamlit", p.Runner)
	assert.Equal(t, []string{"run"}, p.RunnerArgs)
	assert.Equal(t, "src/main_app.py", p.Entrypoint)
}

// TestLoad_YAML verifies the YAML variant, including the env map.
func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "pylaunch.yaml", `
runner: python
runnerArgs: ["-m", "streamlit", "run"]
entrypoint: app/main.py
env:
  STREAMLIT_SERVER_PORT: "8502"
noPause: true
`)

	p, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "python", p.Runner)
	assert.Equal(t, []string{"-m", "streamlit", "run"}, p.RunnerArgs)
	assert.Equal(t, "app/main.py", p.Entrypoint)
	assert.True(t, p.NoPause)
	assert.Equal(t, []string{"STREAMLIT_SERVER_PORT=8502"}, p.ExtraEnv())
}

// TestLoad_ExplicitEmptyRunnerArgs verifies that an explicit empty
// runnerArgs list suppresses the default ["run"] — needed for runners
// that take the entry point directly (e.g., plain python).
func TestLoad_ExplicitEmptyRunnerArgs(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "pylaunch.json", `{"runner": "python", "runnerArgs": []}`)

	p, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "python", p.Runner)
	assert.Empty(t, p.RunnerArgs)
}

// TestLoad_SearchOrder verifies JSONC beats YAML when both exist.
func TestLoad_SearchOrder(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "pylaunch.yaml", `entrypoint: from_yaml.py`)
	writeProfile(t, dir, "pylaunch.jsonc", `{"entrypoint": "from_jsonc.py"}`)

	p, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from_jsonc.py", p.Entrypoint)
}

// TestLoad_UnknownKeysIgnored verifies forward compatibility: extra
// keys in the file do not break loading.
func TestLoad_UnknownKeysIgnored(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "pylaunch.json", `{"entrypoint": "x.py", "$schema": "ignored", "notes": 42}`)

	p, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "x.py", p.Entrypoint)
}

// TestLoad_BrokenJSON verifies a present-but-invalid profile is a hard
// error with the profile exit code, not a silent fallback.
func TestLoad_BrokenJSON(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "pylaunch.json", `{"entrypoint": `)

	_, err := Load(dir)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitProfileInvalid, cliErr.Code)
}

// TestLoad_BrokenYAML mirrors TestLoad_BrokenJSON for the YAML path.
func TestLoad_BrokenYAML(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "pylaunch.yaml", "entrypoint: [unclosed")

	_, err := Load(dir)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitProfileInvalid, cliErr.Code)
}

// TestExtraEnv_Sorted verifies deterministic ordering of env pairs.
func TestExtraEnv_Sorted(t *testing.T) {
	p := &Profile{Env: map[string]string{
		"ZED":   "1",
		"ALPHA": "2",
		"MID":   "3",
	}}
	assert.Equal(t, []string{"ALPHA=2", "MID=3", "ZED=1"}, p.ExtraEnv())
}
