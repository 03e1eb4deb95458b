package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Spec describes one application launch: the runner binary, its fixed
// arguments, the entry point, and the context the child runs in.
type Spec struct {
	// Runner is the command-line tool that runs the application
	// (e.g., "streamlit"). Run resolves it inside the venv's bin
	// directory before building the spec; a bare name here falls back
	// to ordinary PATH lookup.
	Runner string

	// RunnerArgs are the runner's own arguments placed before the
	// entry point (e.g., ["run"] for streamlit).
	RunnerArgs []string

	// Entrypoint is the application script path, relative to Dir.
	Entrypoint string

	// Args are extra arguments appended after the entry point.
	Args []string

	// Dir is the working directory for the child process.
	Dir string

	// Env is the complete child environment, activation included.
	// Nil means inherit the current process environment.
	Env []string
}

// Argv returns the complete command line, runner binary first.
func (s *Spec) Argv() []string {
	argv := make([]string, 0, 2+len(s.RunnerArgs)+len(s.Args))
	argv = append(argv, s.Runner)
	argv = append(argv, s.RunnerArgs...)
	argv = append(argv, s.Entrypoint)
	argv = append(argv, s.Args...)
	return argv
}

// StartError indicates the child process could not be started at all —
// the runner binary was not found or was not executable. This is
// distinct from a child that ran and exited non-zero: a started child
// always yields an exit code, a StartError never does.
type StartError struct {
	// Runner is the binary that failed to start.
	Runner string

	// Err is the underlying exec error.
	Err error
}

// Error satisfies the error interface.
func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Runner, e.Err)
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *StartError) Unwrap() error {
	return e.Err
}

// Runner launches application sub-processes with inherited stdio.
//
// The stdio fields exist so tests can substitute buffers; the zero
// value is not usable — use NewRunner, which wires the process's own
// stdio, for production use.
type Runner struct {
	// Stdin, Stdout, Stderr are handed to the child verbatim.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a Runner wired to the current process's stdio.
// Inheriting stdio is load-bearing: the launched application's output,
// including any crash trace, must reach the console unmodified.
func NewRunner() *Runner {
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Launch runs the spec's command and blocks until the child exits or
// ctx is cancelled.
//
// Returns the child's exit code. The exit code is reported for any
// child that actually started, success and failure alike; the error
// return is a *StartError only when the child never started. Launch
// performs no retries and never inspects or buffers the child's output.
func (r *Runner) Launch(ctx context.Context, spec *Spec) (int, error) {
	argv := spec.Argv()

	// #nosec G204 — the command line comes from the launch profile and
	// built-in defaults, not from remote input
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	// A started-then-failed child carries its exit code in ExitError.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	// Anything else means the process never ran (binary not found,
	// permission denied, context cancelled before start).
	return 0, &StartError{Runner: spec.Runner, Err: err}
}
