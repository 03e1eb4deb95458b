package venv

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Env describes a located virtual environment on disk.
//
// All paths are absolute. The struct is a snapshot taken by Locate —
// nothing re-checks the filesystem afterwards, matching the launcher's
// "best effort, no re-inspection" contract.
type Env struct {
	// Root is the absolute path of the venv directory.
	Root string

	// BinDir is the scripts directory inside the venv:
	// <root>/bin on Unix, <root>\Scripts on Windows.
	BinDir string

	// Python is the expected interpreter path inside BinDir.
	// The file may not exist for a broken venv; doctor reports that,
	// run does not care.
	Python string

	// Cfg holds the parsed pyvenv.cfg contents, zero-valued when the
	// file is absent or unreadable.
	Cfg Config
}

// Config holds the fields of pyvenv.cfg that the CLI reports on.
// pyvenv.cfg is a flat "key = value" file written by the venv module
// at creation time.
type Config struct {
	// Home is the base interpreter's directory ("home" key).
	Home string

	// Version is the Python version the venv was created with
	// ("version" or, on newer Pythons, "version_info").
	Version string

	// Prompt is the custom prompt name, if one was set ("prompt").
	Prompt string

	// SystemSitePackages reports whether the venv sees the base
	// interpreter's site-packages ("include-system-site-packages").
	SystemSitePackages bool
}

// candidateNames are the conventional venv directory names probed by
// Discover, most common first. The launcher's fixed default is the
// first entry; the others only matter for diagnostics.
var candidateNames = []string{"venv", ".venv", "env"}

// binDirName returns the platform-specific scripts directory name.
// The venv module uses Scripts\ on Windows and bin/ everywhere else.
func binDirName() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

// exeSuffix returns the executable filename suffix for the platform.
func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// Locate resolves the venv rooted at path and returns its layout.
//
// It fails only when the root directory itself is missing or not a
// directory. A venv with a missing bin directory or interpreter is
// still returned — callers that care (doctor) inspect the paths,
// callers that don't (run) activate whatever is there.
func Locate(path string) (*Env, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve venv path %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("virtual environment not found at %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("virtual environment path %s is not a directory", abs)
	}

	e := &Env{
		Root:   abs,
		BinDir: filepath.Join(abs, binDirName()),
	}
	e.Python = filepath.Join(e.BinDir, "python"+exeSuffix())

	// pyvenv.cfg is informational only; ignore read errors.
	if data, readErr := os.ReadFile(filepath.Join(abs, "pyvenv.cfg")); readErr == nil {
		e.Cfg = ParsePyvenvCfg(data)
	}

	return e, nil
}

// Discover probes the conventional venv directory names under base and
// returns the first that exists, together with the name that matched.
//
// This exists for the doctor command: the run sequence never falls back
// to alternate names, it attempts exactly the configured path.
func Discover(base string) (*Env, string, error) {
	for _, name := range candidateNames {
		e, err := Locate(filepath.Join(base, name))
		if err == nil {
			return e, name, nil
		}
	}
	return nil, "", fmt.Errorf("no virtual environment found under %s (tried %s)",
		base, strings.Join(candidateNames, ", "))
}

// HasInterpreter reports whether the venv's Python interpreter exists
// on disk.
func (e *Env) HasInterpreter() bool {
	info, err := os.Stat(e.Python)
	return err == nil && !info.IsDir()
}

// LookupTool returns the absolute path of a command inside the venv's
// bin directory if it exists there, or an empty string otherwise.
//
// This mirrors what PATH resolution does after activation, without
// requiring the process environment to be mutated first. Doctor uses
// it to report where the runner would come from.
func (e *Env) LookupTool(name string) string {
	candidate := filepath.Join(e.BinDir, name+exeSuffix())
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}
	return ""
}

// ParsePyvenvCfg parses the contents of a pyvenv.cfg file.
//
// The format is one "key = value" pair per line. Example:
//
//	home = /usr/bin
//	include-system-site-packages = false
//	version = 3.11.4
//
// Unknown keys and malformed lines are ignored; the file is metadata,
// not configuration the launcher acts on.
func ParsePyvenvCfg(data []byte) Config {
	var cfg Config

	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "home":
			cfg.Home = value
		case "version", "version_info":
			// Older Pythons write "version", 3.12+ writes "version_info".
			// Prefer whichever appears; they never conflict in practice.
			if cfg.Version == "" {
				cfg.Version = value
			}
		case "prompt":
			cfg.Prompt = value
		case "include-system-site-packages":
			cfg.SystemSitePackages = strings.EqualFold(value, "true")
		}
	}

	return cfg
}
