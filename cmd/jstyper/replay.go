package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jstyper/internal/diag"
	"jstyper/internal/names"
	"jstyper/internal/script"
	"jstyper/internal/snapshot"
	"jstyper/internal/trace"
	"jstyper/internal/typer"
)

var replayCmd = &cobra.Command{
	Use:   "replay [flags] <script.json> <snapshot>",
	Short: "Re-run a script and diff its types against a previously recorded snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().String("env", "", "path to a TOML environment config (defaults to canonical primitives, no builtins)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	envPath, err := cmd.Flags().GetString("env")
	if err != nil {
		return err
	}
	scriptPath, snapPath := args[0], args[1]

	want, err := snapshot.Load(snapPath)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	in := names.New()
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}

	environment, err := loadEnvironment(envPath, in, rep)
	if err != nil {
		printDiagnostics(cmd, bag.Items())
		return err
	}

	f, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	defer f.Close()

	prog, err := script.Decode(f, in, rep)
	if err != nil {
		printDiagnostics(cmd, bag.Items())
		return err
	}

	t := typer.New(environment, in)
	t.SetTracer(trace.FromContext(cmd.Context()))
	if runErr := analyzeRecovering(prog, t); runErr != nil {
		bag.Add(diag.NewError(diag.TyperBlockNestingViolation, diag.NoLocation, runErr.Error()))
	}
	printDiagnostics(cmd, bag.Items())

	got := captureSnapshot(scriptPath, t, in, prog.Vars())
	mismatches := snapshot.Diff(want, got)

	out := cmd.OutOrStdout()
	if len(mismatches) == 0 {
		if useColor(cmd) {
			color.New(color.FgGreen).Fprintf(out, "replay matches snapshot: %s\n", snapPath)
		} else {
			fmt.Fprintf(out, "replay matches snapshot: %s\n", snapPath)
		}
		return nil
	}

	if useColor(cmd) {
		color.New(color.FgYellow).Fprintf(out, "replay diverges from snapshot: %s\n", snapPath)
	} else {
		fmt.Fprintf(out, "replay diverges from snapshot: %s\n", snapPath)
	}
	for _, m := range mismatches {
		fmt.Fprintf(out, "  %s\n", m)
	}
	cmd.SilenceUsage = true
	return fmt.Errorf("replay: %d mismatch(es) against %s", len(mismatches), snapPath)
}
