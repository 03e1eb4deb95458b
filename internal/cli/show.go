// Package cli — show.go implements the "pylaunch show" command.
//
// Show is a dry run: it resolves exactly the launch plan that run would
// execute — directory, profile, venv, final command line — and prints
// it without launching anything. Useful for verifying a profile before
// handing the launcher to someone who will only ever double-click it.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/pylaunch/internal/model"
)

// showFlags holds the flag values for the show command.
type showFlags struct {
	dir string // --dir: launch directory override
}

// NewShowCommand creates the "show" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewShowCommand() *cobra.Command {
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved launch plan without launching",
		Long: `Show the fully resolved launch plan: the launch directory, the profile
in effect, the virtual environment that would be activated, and the
exact command line that would be invoked. Nothing is launched.

Examples:
  pylaunch show
  pylaunch show --json
  pylaunch show --dir /srv/medtranslate`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(flags)
		},
	}

	cmd.Flags().StringVar(&flags.dir, "dir", "", "Launch directory (default: the launcher binary's directory)")

	return cmd
}

// runShow builds the launch plan and prints it.
func runShow(flags *showFlags) error {
	plan, _, _, err := buildPlan(flags.dir)
	if err != nil {
		return err
	}

	printShowResult(plan)
	return nil
}

// printShowResult outputs the plan in text or JSON format, depending
// on the global --json flag.
func printShowResult(plan *model.LaunchPlan) {
	if IsJSONOutput() {
		printShowResultJSON(plan)
	} else {
		printShowResultText(plan)
	}
}

// printShowResultJSON outputs the plan as structured JSON. The model's
// own JSON tags define the wire format.
func printShowResultJSON(plan *model.LaunchPlan) {
	data, _ := json.MarshalIndent(plan, "", "  ")
	fmt.Println(string(data))
}

// printShowResultText outputs the plan as human-readable text.
func printShowResultText(plan *model.LaunchPlan) {
	fmt.Println("Launch plan")
	fmt.Printf("  Directory: %s\n", plan.Dir)

	if plan.ProfileSource != "" {
		fmt.Printf("  Profile:   %s\n", plan.ProfileSource)
	} else {
		fmt.Printf("  Profile:   built-in defaults\n")
	}

	venvState := "found"
	if !plan.VenvFound {
		venvState = "missing — launch would proceed without activation"
	}
	fmt.Printf("  Venv:      %s (%s)\n", plan.VenvPath, venvState)

	fmt.Printf("  Command:   %s\n", plan.CommandLine())

	for _, kv := range plan.ExtraEnv {
		fmt.Printf("  Env:       %s\n", kv)
	}

	if plan.Pause {
		fmt.Printf("  Pause:     enabled\n")
	} else {
		fmt.Printf("  Pause:     disabled\n")
	}
}
