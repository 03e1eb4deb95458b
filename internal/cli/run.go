// Package cli — run.go implements the launch sequence, both as the
// "pylaunch run" subcommand and as the root command's bare-invocation
// behavior.
//
// The sequence is fixed and unconditional:
//  1. Resolve the launch directory (the launcher binary's own directory)
//     and make it the process working directory
//  2. Activate the virtual environment by building the child's
//     environment from it — a missing venv is noted, never fatal
//  3. Launch the application runner and block until it exits
//  4. Pause for user acknowledgment so the console output stays visible
//  5. Exit with the application's exit code
//
// There is deliberately no gating between the steps: activation failure
// does not stop the launch, and a failed launch still reaches the
// pause. The launcher's entire error-handling contract is "do not
// swallow output, keep the window open".
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pylaunch/internal/launcher"
	"github.com/mmr-tortoise/pylaunch/internal/model"
	"github.com/mmr-tortoise/pylaunch/internal/profile"
	"github.com/mmr-tortoise/pylaunch/internal/venv"
)

// runOptions holds the flag values for the run command (and the root
// command's bare invocation).
type runOptions struct {
	dir     string // --dir: launch directory override
	noPause bool   // --no-pause: skip the terminal pause
}

// bindRunFlags registers the run flags on a command. Used by both the
// run subcommand and the root command so bare invocation accepts the
// same flags.
func bindRunFlags(cmd *cobra.Command, flags *runOptions) {
	cmd.Flags().StringVar(&flags.dir, "dir", "", "Launch directory (default: the launcher binary's directory)")
	cmd.Flags().BoolVar(&flags.noPause, "no-pause", false, "Exit immediately after the application exits")
}

// NewRunCommand creates the "run" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewRunCommand() *cobra.Command {
	flags := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Activate the venv and launch the application",
		Long: `Activate the virtual environment and launch the application.

The launch runs from the directory containing the launcher binary,
regardless of the current working directory. A missing virtual
environment is reported in verbose mode but does not stop the launch.
After the application exits — cleanly or not — the launcher pauses for
Enter so the console output stays visible, then exits with the
application's exit code.

Examples:
  pylaunch run
  pylaunch run --no-pause
  pylaunch run --dir /srv/medtranslate`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd.Context(), flags)
		},
	}

	bindRunFlags(cmd, flags)
	return cmd
}

// runLaunch executes the launch sequence with the process's own stdio.
func runLaunch(ctx context.Context, flags *runOptions) error {
	return executeLaunch(ctx, flags, launcher.NewRunner(), os.Stdin, os.Stderr)
}

// executeLaunch is the launch sequence proper. The runner and the pause
// streams are parameters so tests can drive the whole sequence against
// buffers; runLaunch binds them to the real stdio.
func executeLaunch(ctx context.Context, flags *runOptions, runner *launcher.Runner, pauseIn io.Reader, pauseOut io.Writer) error {
	// Step 1: Build the launch plan (directory, profile, command line).
	plan, env, prof, err := buildPlan(flags.dir)
	if err != nil {
		return err
	}
	VerboseLog("Launch directory: %s", plan.Dir)
	if plan.ProfileSource != "" {
		VerboseLog("Profile: %s", plan.ProfileSource)
	} else {
		VerboseLog("Profile: built-in defaults")
	}

	// Make the launch directory the process working directory, so the
	// relative entry point and venv paths resolve the same way no
	// matter where the launcher was invoked from.
	if err := os.Chdir(plan.Dir); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to change directory to %s", plan.Dir), err)
	}

	// Step 2: Activate the virtual environment. Activation builds the
	// child's environment (venv bin first on PATH, VIRTUAL_ENV set) and
	// resolves the runner inside the venv, the same resolution PATH
	// would perform. A missing venv gets a verbose note and nothing
	// else — the launch proceeds on the inherited environment and the
	// application (or its absence of a runner) speaks for itself.
	childEnv := os.Environ()
	runnerBin := prof.Runner
	if env != nil {
		VerboseLog("Activating virtual environment: %s", env.Root)
		childEnv = env.Environ(childEnv)
		if tool := env.LookupTool(prof.Runner); tool != "" {
			runnerBin = tool
		}
	} else {
		VerboseLog("Virtual environment not found at %s, continuing without activation", plan.VenvPath)
	}
	if len(plan.ExtraEnv) > 0 {
		// Extra profile variables ride on top of the activated
		// environment.
		childEnv = append(childEnv, plan.ExtraEnv...)
	}

	// Step 3: Launch the application and block until it exits.
	spec := &launcher.Spec{
		Runner:     runnerBin,
		RunnerArgs: prof.RunnerArgs,
		Entrypoint: prof.Entrypoint,
		Args:       prof.Args,
		Dir:        plan.Dir,
		Env:        childEnv,
	}

	VerboseLog("Launching: %s", plan.CommandLine())
	code, launchErr := runner.Launch(ctx, spec)

	// A start failure must be visible during the pause, so it is
	// printed before pausing rather than left for Execute.
	if launchErr != nil {
		fmt.Fprintf(runner.Stderr, "Error: %v\n", launchErr)
	}

	// Step 4: Pause. Reached on success, on a non-zero exit, and on a
	// start failure alike. The prompt goes to stderr so stdout remains
	// exactly the application's output.
	if !flags.noPause && !prof.NoPause {
		launcher.Pause(pauseIn, pauseOut)
	}

	// Step 5: Propagate the final status.
	if launchErr != nil {
		return &model.ExitStatusError{Code: int(model.ExitGeneralError)}
	}
	if code != 0 {
		return &model.ExitStatusError{Code: code}
	}
	return nil
}

// buildPlan resolves the launch directory, loads and validates the
// profile, and assembles the full launch plan. Shared by run and show.
//
// The returned venv.Env is nil when the virtual environment does not
// exist; the plan records that, and callers decide what it means (run:
// proceed without activation; show: display it).
func buildPlan(dirOverride string) (*model.LaunchPlan, *venv.Env, *profile.Profile, error) {
	dir, err := resolveLaunchDir(dirOverride)
	if err != nil {
		return nil, nil, nil, model.WrapCLIError(model.ExitGeneralError,
			"failed to resolve launch directory", err)
	}

	prof, err := profile.Load(dir)
	if err != nil {
		return nil, nil, nil, err // Load already returns CLIError
	}

	if verrs := profile.Validate(prof); len(verrs) > 0 {
		msgs := make([]string, 0, len(verrs))
		for _, ve := range verrs {
			msgs = append(msgs, ve.Error())
		}
		return nil, nil, nil, model.NewCLIError(model.ExitProfileInvalid, strings.Join(msgs, "; "))
	}

	venvPath := filepath.Join(dir, prof.Venv)
	env, locateErr := venv.Locate(venvPath)

	spec := &launcher.Spec{
		Runner:     prof.Runner,
		RunnerArgs: prof.RunnerArgs,
		Entrypoint: prof.Entrypoint,
		Args:       prof.Args,
	}

	plan := &model.LaunchPlan{
		Dir:           dir,
		ProfileSource: prof.Source,
		VenvPath:      venvPath,
		VenvFound:     locateErr == nil,
		Argv:          spec.Argv(),
		ExtraEnv:      prof.ExtraEnv(),
		Pause:         !prof.NoPause,
	}

	return plan, env, prof, nil
}

// resolveLaunchDir returns the directory the launch runs from: the
// override when given, otherwise the directory containing the launcher
// binary itself. Symlinks are resolved so a binary invoked through a
// symlink still launches from its real location.
func resolveLaunchDir(override string) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}

	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
