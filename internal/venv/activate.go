package venv

import (
	"path/filepath"
	"strings"
)

// Environ returns a copy of base with the venv activation applied:
//
//   - the venv's bin directory is prepended to PATH, so command lookup
//     resolves venv-installed tools (streamlit, python) first;
//   - VIRTUAL_ENV is set to the venv root, which is how tools and
//     prompts detect an active venv;
//   - PYTHONHOME is removed, because a stale PYTHONHOME would override
//     the venv's interpreter configuration.
//
// The PATH key is matched case-insensitively because Windows
// environments spell it "Path". base is not modified; run passes the
// result to the child process as its complete environment.
func (e *Env) Environ(base []string) []string {
	out := make([]string, 0, len(base)+2)

	foundPath := false
	for _, kv := range base {
		key, _, found := strings.Cut(kv, "=")
		if !found {
			out = append(out, kv)
			continue
		}

		switch {
		case strings.EqualFold(key, "PATH"):
			// Preserve the original key spelling so Windows sees the
			// same "Path" variable it started with.
			value := kv[len(key)+1:]
			out = append(out, key+"="+e.BinDir+string(filepath.ListSeparator)+value)
			foundPath = true

		case strings.EqualFold(key, "VIRTUAL_ENV"):
			// Replaced below; dropping here avoids a duplicate entry
			// when a venv is already active in the caller's shell.

		case strings.EqualFold(key, "PYTHONHOME"):
			// Dropped: see function comment.

		default:
			out = append(out, kv)
		}
	}

	if !foundPath {
		out = append(out, "PATH="+e.BinDir)
	}
	out = append(out, "VIRTUAL_ENV="+e.Root)

	return out
}
