// Package cli — doctor.go implements the "pylaunch doctor" command.
//
// Doctor inspects the external collaborators the launch depends on —
// the virtual environment, its interpreter, the runner binary, the
// application entry point, and the default Streamlit port — and reports
// what it finds. It is read-only and has no effect on the run command:
// run attempts the launch sequence unconditionally whatever doctor
// would have said.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pylaunch/internal/model"
	"github.com/mmr-tortoise/pylaunch/internal/port"
	"github.com/mmr-tortoise/pylaunch/internal/profile"
	"github.com/mmr-tortoise/pylaunch/internal/venv"
)

// doctorFlags holds the flag values for the doctor command.
type doctorFlags struct {
	dir    string // --dir: launch directory override
	failOn string // --fail-on: lowest status counted as a failure
}

// NewDoctorCommand creates the "doctor" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDoctorCommand() *cobra.Command {
	flags := &doctorFlags{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the launch environment and report problems",
		Long: `Check everything the launch depends on: the profile, the virtual
environment and its interpreter, the runner binary, the application
entry point, and the default Streamlit port.

The report is informational. The run command never consults these
checks — it attempts the launch regardless, and whatever fails, fails
visibly on the console.

Exit code is 0 when every check passes (warnings allowed) and 3 when
at least one check is missing. Use --fail-on warning to treat
warnings as failures too.

Examples:
  pylaunch doctor
  pylaunch doctor --json
  pylaunch doctor --fail-on warning
  pylaunch doctor --dir /srv/medtranslate`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(flags)
		},
	}

	cmd.Flags().StringVar(&flags.dir, "dir", "", "Launch directory (default: the launcher binary's directory)")
	cmd.Flags().StringVar(&flags.failOn, "fail-on", string(model.CheckMissing), "Lowest check status counted as a failure (warning, missing)")

	return cmd
}

// runDoctor resolves the launch directory, collects the checks, prints
// the report, and maps failing checks to the doctor exit code.
func runDoctor(flags *doctorFlags) error {
	threshold, err := model.ParseCheckStatus(flags.failOn)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid --fail-on value", err)
	}

	dir, err := resolveLaunchDir(flags.dir)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			"failed to resolve launch directory", err)
	}

	// A broken profile becomes a finding rather than aborting the
	// report: doctor's whole job is describing what is wrong.
	prof, profErr := profile.Load(dir)
	if profErr != nil {
		prof = profile.Default()
	}

	checks := collectChecks(dir, prof, profErr, port.NewScanner())
	printDoctorResult(checks)

	if failed := countFailing(checks, threshold); failed > 0 {
		return model.NewCLIError(model.ExitDoctorFailed,
			fmt.Sprintf("%d of %d checks failed", failed, len(checks)))
	}
	return nil
}

// countFailing counts the checks whose status is at or above the
// threshold severity. With the default threshold only missing checks
// count; --fail-on warning pulls warnings in as well.
func countFailing(checks []model.Check, threshold model.CheckStatus) int {
	failed := 0
	for _, c := range checks {
		if c.Status.Severity() >= threshold.Severity() {
			failed++
		}
	}
	return failed
}

// collectChecks runs every doctor check against the launch directory
// and returns the findings in display order.
func collectChecks(dir string, prof *profile.Profile, profErr error, scanner *port.Scanner) []model.Check {
	checks := make([]model.Check, 0, 6)

	// Check 1: the profile in effect.
	switch {
	case profErr != nil:
		checks = append(checks, model.Check{
			Name:   "profile",
			Status: model.CheckMissing,
			Detail: profErr.Error(),
		})
	case prof.Source != "":
		checks = append(checks, model.Check{
			Name:   "profile",
			Status: model.CheckOK,
			Detail: prof.Source,
		})
	default:
		checks = append(checks, model.Check{
			Name:   "profile",
			Status: model.CheckOK,
			Detail: "built-in defaults",
		})
	}

	// Check 2: the virtual environment. The configured name is the one
	// run would use; an alternate conventional name is only a warning,
	// because run will not fall back to it.
	venvPath := filepath.Join(dir, prof.Venv)
	env, err := venv.Locate(venvPath)
	switch {
	case err == nil:
		checks = append(checks, model.Check{
			Name:   "venv",
			Status: model.CheckOK,
			Detail: env.Root,
		})
	default:
		if alt, altName, altErr := venv.Discover(dir); altErr == nil {
			checks = append(checks, model.Check{
				Name:   "venv",
				Status: model.CheckWarning,
				Detail: fmt.Sprintf("not found at %s, but %q exists at %s (set venv in the profile to use it)",
					venvPath, altName, alt.Root),
			})
		} else {
			checks = append(checks, model.Check{
				Name:   "venv",
				Status: model.CheckMissing,
				Detail: fmt.Sprintf("not found at %s", venvPath),
			})
		}
	}

	// Check 3: the venv interpreter, only meaningful when the venv exists.
	if env != nil {
		if env.HasInterpreter() {
			detail := env.Python
			if env.Cfg.Version != "" {
				detail = fmt.Sprintf("Python %s at %s", env.Cfg.Version, env.Python)
			}
			checks = append(checks, model.Check{
				Name:   "python",
				Status: model.CheckOK,
				Detail: detail,
			})
		} else {
			checks = append(checks, model.Check{
				Name:   "python",
				Status: model.CheckMissing,
				Detail: fmt.Sprintf("no interpreter at %s (venv layout is broken)", env.Python),
			})
		}
	}

	// Check 4: the runner binary. Venv-local resolution is what
	// activation produces; a PATH fallback works but usually means the
	// runner was never installed into the venv.
	switch {
	case env != nil && env.LookupTool(prof.Runner) != "":
		checks = append(checks, model.Check{
			Name:   "runner",
			Status: model.CheckOK,
			Detail: env.LookupTool(prof.Runner),
		})
	default:
		if path, lookErr := exec.LookPath(prof.Runner); lookErr == nil {
			checks = append(checks, model.Check{
				Name:   "runner",
				Status: model.CheckWarning,
				Detail: fmt.Sprintf("%q not in the venv, resolves to %s", prof.Runner, path),
			})
		} else {
			checks = append(checks, model.Check{
				Name:   "runner",
				Status: model.CheckMissing,
				Detail: fmt.Sprintf("%q not found in the venv or on PATH", prof.Runner),
			})
		}
	}

	// Check 5: the application entry point.
	entryPath := filepath.Join(dir, prof.Entrypoint)
	if fileExists(entryPath) {
		checks = append(checks, model.Check{
			Name:   "entrypoint",
			Status: model.CheckOK,
			Detail: entryPath,
		})
	} else {
		checks = append(checks, model.Check{
			Name:   "entrypoint",
			Status: model.CheckMissing,
			Detail: fmt.Sprintf("not found at %s", entryPath),
		})
	}

	// Check 6: the default Streamlit port. Occupied is a warning, not
	// missing: the launch still works, Streamlit just lands elsewhere
	// (or on top of an already-running instance).
	if scanner.IsAvailable(port.DefaultStreamlitPort) {
		checks = append(checks, model.Check{
			Name:   "port",
			Status: model.CheckOK,
			Detail: fmt.Sprintf("default Streamlit port %d is free", port.DefaultStreamlitPort),
		})
	} else {
		detail := fmt.Sprintf("port %d is already in use", port.DefaultStreamlitPort)
		if free, freeErr := scanner.FindAvailable(port.DefaultStreamlitPort+1, port.DefaultStreamlitPort+99); freeErr == nil {
			detail = fmt.Sprintf("port %d is already in use (next free: %d)", port.DefaultStreamlitPort, free)
		}
		checks = append(checks, model.Check{
			Name:   "port",
			Status: model.CheckWarning,
			Detail: detail,
		})
	}

	return checks
}

// printDoctorResult outputs the checks in text or JSON format.
func printDoctorResult(checks []model.Check) {
	if IsJSONOutput() {
		printDoctorResultJSON(checks)
	} else {
		printDoctorResultText(checks)
	}
}

// printDoctorResultJSON outputs the report as structured JSON with a
// top-level healthy flag for scripted consumers.
func printDoctorResultJSON(checks []model.Check) {
	type resultJSON struct {
		Healthy bool          `json:"healthy"`
		Checks  []model.Check `json:"checks"`
	}

	result := resultJSON{Healthy: true, Checks: checks}
	for _, c := range checks {
		if c.Status == model.CheckMissing {
			result.Healthy = false
		}
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printDoctorResultText outputs the report as an aligned text table.
//
// Example:
//
//	STATUS    CHECK       DETAIL
//	ok        profile     built-in defaults
//	missing   venv        not found at /srv/app/venv
func printDoctorResultText(checks []model.Check) {
	fmt.Printf("%-9s %-11s %s\n", "STATUS", "CHECK", "DETAIL")
	for _, c := range checks {
		fmt.Printf("%-9s %-11s %s\n", c.Status, c.Name, c.Detail)
	}
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
