package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jstyper/internal/diag"
	"jstyper/internal/env"
	"jstyper/internal/ir"
	"jstyper/internal/lattice"
	"jstyper/internal/names"
	"jstyper/internal/observ"
	"jstyper/internal/script"
	"jstyper/internal/snapshot"
	"jstyper/internal/trace"
	"jstyper/internal/typer"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <script.json>",
	Short: "Analyze a single operation script and print its resulting variable types",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().String("env", "", "path to a TOML environment config (defaults to canonical primitives, no builtins)")
	runCmd.Flags().String("record", "", "write a msgpack snapshot of the run's resulting types to this path")
}

func runRun(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	timer := observ.NewTimer()
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	envPath, err := cmd.Flags().GetString("env")
	if err != nil {
		return err
	}
	recordPath, err := cmd.Flags().GetString("record")
	if err != nil {
		return err
	}

	in := names.New()
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}

	phase := timer.Begin("load environment")
	environment, err := loadEnvironment(envPath, in, rep)
	timer.End(phase, "")
	if err != nil {
		printDiagnostics(cmd, bag.Items())
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer f.Close()

	phase = timer.Begin("decode script")
	prog, err := script.Decode(f, in, rep)
	timer.End(phase, "")
	if err != nil {
		printDiagnostics(cmd, bag.Items())
		return err
	}

	t := typer.New(environment, in)
	t.SetTracer(trace.FromContext(cmd.Context()))

	phase = timer.Begin("analyze")
	if runErr := analyzeRecovering(prog, t); runErr != nil {
		bag.Add(diag.NewError(diag.TyperBlockNestingViolation, diag.NoLocation, runErr.Error()))
	}
	timer.End(phase, "")

	printDiagnostics(cmd, bag.Items())

	vars := prog.Vars()
	printVarTable(cmd, t, in, vars, useColor(cmd))

	if recordPath != "" {
		snap := captureSnapshot(args[0], t, in, vars)
		if err := snapshot.Save(recordPath, snap); err != nil {
			return fmt.Errorf("run: record snapshot: %w", err)
		}
	}

	if showTimings {
		fmt.Fprint(cmd.OutOrStdout(), timer.Summary())
	}
	if bag.HasErrors() {
		cmd.SilenceUsage = true
		return fmt.Errorf("analysis reported errors")
	}
	return nil
}

// analyzeRecovering drives prog through t, converting the one intentional
// panic path (malformed block nesting, §7) into an error instead of
// crashing the CLI process.
func analyzeRecovering(prog *script.Program, t *typer.Typer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("typer: %v", r)
		}
	}()
	prog.Run(t)
	return nil
}

func loadEnvironment(path string, in *names.Interner, rep diag.Reporter) (*env.StaticEnvironment, error) {
	if path == "" {
		return env.NewStaticEnvironment(in), nil
	}
	return env.LoadStaticEnvironment(path, in, rep)
}

func printDiagnostics(cmd *cobra.Command, diags []diag.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	out := diag.FormatDiagnostics(diags, true)
	if useColor(cmd) {
		for _, d := range diags {
			if d.Severity >= diag.SevError {
				color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), "errors reported:")
				break
			}
		}
	}
	fmt.Fprintln(cmd.ErrOrStderr(), out)
}

func printVarTable(cmd *cobra.Command, t *typer.Typer, in *names.Interner, vars []uint32, colorize bool) {
	if len(vars) == 0 {
		return
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	for _, v := range vars {
		ty := t.TypeOf(ir.VarID(v))
		rendered := ty.Render(in)
		if colorize {
			bold.Fprintf(out, "v%-4d", v)
			fmt.Fprintf(out, " %s\n", rendered)
			continue
		}
		fmt.Fprintf(out, "v%-4d %s\n", v, rendered)
	}
}

func captureSnapshot(label string, t *typer.Typer, in *names.Interner, vars []uint32) *snapshot.Snapshot {
	types := make(map[ir.VarID]lattice.Type, len(vars))
	for _, v := range vars {
		types[ir.VarID(v)] = t.TypeOf(ir.VarID(v))
	}
	return snapshot.Capture(label, types, in)
}
