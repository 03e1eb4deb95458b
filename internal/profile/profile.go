package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/pylaunch/internal/model"
)

// Default values reproducing the original launcher's fixed paths.
const (
	// DefaultVenv is the venv directory name the launcher activates.
	DefaultVenv = "venv"

	// DefaultRunner is the command-line tool that runs the application.
	DefaultRunner = "streamlit"

	// DefaultEntrypoint is the application script the runner executes.
	DefaultEntrypoint = "src/main_app.py"
)

// defaultRunnerArgs returns the runner arguments placed before the
// entry point. Returned fresh so callers can append without sharing.
func defaultRunnerArgs() []string {
	return []string{"run"}
}

// fileNames are the profile file names probed by Load, in priority
// order. The order only matters when a directory carries more than one
// profile file; the first match wins and the rest are ignored.
var fileNames = []string{
	"pylaunch.jsonc",
	"pylaunch.json",
	"pylaunch.yaml",
	"pylaunch.yml",
}

// Profile holds the launch configuration after defaults are applied.
//
// Field tags cover both accepted formats. Unknown keys in the file are
// ignored, so a profile can carry editor or tooling metadata without
// breaking the launcher.
type Profile struct {
	// Venv is the virtual environment directory, relative to the
	// launch directory.
	Venv string `json:"venv,omitempty" yaml:"venv,omitempty"`

	// Runner is the command that runs the application.
	Runner string `json:"runner,omitempty" yaml:"runner,omitempty"`

	// RunnerArgs are the runner's arguments before the entry point.
	// Explicitly setting an empty list suppresses the default ["run"].
	RunnerArgs []string `json:"runnerArgs,omitempty" yaml:"runnerArgs,omitempty"`

	// Entrypoint is the application script, relative to the launch
	// directory.
	Entrypoint string `json:"entrypoint,omitempty" yaml:"entrypoint,omitempty"`

	// Args are extra arguments appended after the entry point.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`

	// Env holds extra environment variables for the child process,
	// applied on top of the activated environment.
	Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`

	// NoPause skips the terminal pause after the application exits.
	NoPause bool `json:"noPause,omitempty" yaml:"noPause,omitempty"`

	// Source is the absolute path of the file the profile was loaded
	// from, or empty for built-in defaults. Not read from the file.
	Source string `json:"-" yaml:"-"`

	// runnerArgsSet records whether the file provided runnerArgs at
	// all, so an explicit empty list can override the default.
	runnerArgsSet bool
}

// Default returns the built-in profile: the exact behavior of the
// original launcher with no configuration present.
func Default() *Profile {
	return &Profile{
		Venv:       DefaultVenv,
		Runner:     DefaultRunner,
		RunnerArgs: defaultRunnerArgs(),
		Entrypoint: DefaultEntrypoint,
	}
}

// Load searches dir for a profile file and returns the parsed profile
// with defaults applied. When no file exists, the built-in defaults
// are returned with a nil error — a missing profile is the normal
// case, not a failure.
//
// Parse failures are failures: a present-but-broken profile returns a
// model.CLIError with ExitProfileInvalid rather than silently falling
// back to defaults and launching the wrong thing.
func Load(dir string) (*Profile, error) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, model.WrapCLIError(model.ExitProfileInvalid,
				fmt.Sprintf("failed to read profile %s", path), err)
		}

		p, err := parse(name, data)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitProfileInvalid,
				fmt.Sprintf("failed to parse profile %s", path), err)
		}

		p.Source = path
		p.applyDefaults()
		return p, nil
	}

	return Default(), nil
}

// parse decodes profile file contents according to the file extension.
func parse(name string, data []byte) (*Profile, error) {
	var p Profile

	switch strings.ToLower(filepath.Ext(name)) {
	case ".jsonc", ".json":
		// Strip comments and trailing commas first, then decode with
		// the standard library. Plain JSON passes through unchanged.
		clean := jsonc.ToJSON(data)

		// Detect whether runnerArgs was present so an explicit empty
		// list can override the default ["run"].
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(clean, &probe); err != nil {
			return nil, err
		}
		if _, ok := probe["runnerArgs"]; ok {
			p.runnerArgsSet = true
		}

		if err := json.Unmarshal(clean, &p); err != nil {
			return nil, err
		}

	case ".yaml", ".yml":
		var probe map[string]yaml.Node
		if err := yaml.Unmarshal(data, &probe); err != nil {
			return nil, err
		}
		if _, ok := probe["runnerArgs"]; ok {
			p.runnerArgsSet = true
		}

		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unsupported profile format: %s", name)
	}

	return &p, nil
}

// applyDefaults fills unset fields with the built-in values.
func (p *Profile) applyDefaults() {
	if p.Venv == "" {
		p.Venv = DefaultVenv
	}
	if p.Runner == "" {
		p.Runner = DefaultRunner
	}
	if p.RunnerArgs == nil && !p.runnerArgsSet {
		p.RunnerArgs = defaultRunnerArgs()
	}
	if p.Entrypoint == "" {
		p.Entrypoint = DefaultEntrypoint
	}
}

// ExtraEnv renders the profile's env map as sorted KEY=VALUE pairs.
// Sorting keeps show output and tests deterministic.
func (p *Profile) ExtraEnv() []string {
	if len(p.Env) == 0 {
		return nil
	}
	pairs := make([]string, 0, len(p.Env))
	for k, v := range p.Env {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}
