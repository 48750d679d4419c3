package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"jstyper/internal/diag"
	"jstyper/internal/names"
	"jstyper/internal/script"
	"jstyper/internal/trace"
	"jstyper/internal/typer"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] <script.json>...",
	Short: "Analyze many independent scripts concurrently and summarize the results",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().String("env", "", "path to a TOML environment config shared by every script")
	batchCmd.Flags().Int("concurrency", 0, "maximum scripts analyzed in parallel (0 = GOMAXPROCS)")
}

// batchResult is one script's outcome. Each goroutine writes to its own
// slot, so no locking is needed around the results slice itself.
type batchResult struct {
	path  string
	diags []diag.Diagnostic
	nvars int
	err   error
}

func runBatch(cmd *cobra.Command, args []string) error {
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
	concurrency, err := cmd.Flags().GetInt("concurrency")
	if err != nil {
		return err
	}

	// Every script re-parses the same --env file with its own interner, so
	// an NFC builtin/group collision in that file would otherwise be
	// reported once per script. dedup shares one seen-set across all of
	// them, wrapping each script's own BagReporter as its forwarding target.
	dedup := &sharedDedupReporter{seen: make(map[dedupKey]struct{})}

	results := make([]batchResult, len(args))

	eg := new(errgroup.Group)
	if concurrency == 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	eg.SetLimit(concurrency)
	for i, path := range args {
		i, path := i, path
		eg.Go(func() error {
			results[i] = analyzeOneBatchScript(cmd, path, envPath, maxDiagnostics, dedup)
			return nil
		})
	}
	_ = eg.Wait() // per-script errors are carried in batchResult, not propagated

	return summarizeBatch(cmd, results)
}

// dedupKey identifies a diagnostic for cross-script deduplication.
type dedupKey struct {
	code diag.Code
	sev  diag.Severity
	at   diag.Location
	msg  string
}

// sharedDedupReporter suppresses a diagnostic already seen from an earlier
// script in the same batch, then forwards the first occurrence to whichever
// reporter the current script supplies. Safe for concurrent use.
type sharedDedupReporter struct {
	mu   sync.Mutex
	seen map[dedupKey]struct{}
}

func (d *sharedDedupReporter) reportTo(next diag.Reporter) diag.Reporter {
	return dedupTarget{shared: d, next: next}
}

type dedupTarget struct {
	shared *sharedDedupReporter
	next   diag.Reporter
}

func (t dedupTarget) Report(code diag.Code, sev diag.Severity, at diag.Location, msg string, notes []diag.Note) {
	key := dedupKey{code: code, sev: sev, at: at, msg: msg}
	t.shared.mu.Lock()
	_, dup := t.shared.seen[key]
	if !dup {
		t.shared.seen[key] = struct{}{}
	}
	t.shared.mu.Unlock()
	if dup {
		return
	}
	t.next.Report(code, sev, at, msg, notes)
}

func analyzeOneBatchScript(cmd *cobra.Command, path, envPath string, maxDiagnostics int, dedup *sharedDedupReporter) batchResult {
	in := names.New()
	bag := diag.NewBag(maxDiagnostics)
	rep := dedup.reportTo(diag.BagReporter{Bag: bag})

	environment, err := loadEnvironment(envPath, in, rep)
	if err != nil {
		return batchResult{path: path, diags: bag.Items(), err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return batchResult{path: path, diags: bag.Items(), err: err}
	}
	defer f.Close()

	prog, err := script.Decode(f, in, rep)
	if err != nil {
		return batchResult{path: path, diags: bag.Items(), err: err}
	}

	t := typer.New(environment, in)
	t.SetTracer(trace.FromContext(cmd.Context()))
	if runErr := analyzeRecovering(prog, t); runErr != nil {
		bag.Add(diag.NewError(diag.TyperBlockNestingViolation, diag.NoLocation, runErr.Error()))
	}

	return batchResult{path: path, diags: bag.Items(), nvars: len(prog.Vars())}
}

func summarizeBatch(cmd *cobra.Command, results []batchResult) error {
	out := cmd.OutOrStdout()
	colorize := useColor(cmd)
	failed := 0
	for _, r := range results {
		hasErrors := r.err != nil
		for _, d := range r.diags {
			if d.Severity >= diag.SevError {
				hasErrors = true
			}
		}
		status := "ok"
		statusColor := color.FgGreen
		if hasErrors {
			failed++
			status = "FAIL"
			statusColor = color.FgRed
		}
		if colorize {
			color.New(statusColor).Fprintf(out, "%-6s", status)
		} else {
			fmt.Fprintf(out, "%-6s", status)
		}
		fmt.Fprintf(out, " %s (%d vars, %d diagnostics)\n", r.path, r.nvars, len(r.diags))
		if r.err != nil {
			fmt.Fprintf(out, "       %v\n", r.err)
		}
		if len(r.diags) > 0 {
			fmt.Fprintf(out, "       %s\n", diag.FormatDiagnostics(r.diags, false))
		}
	}
	fmt.Fprintf(out, "%d/%d scripts ok\n", len(results)-failed, len(results))
	if failed > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("batch: %d of %d scripts failed", failed, len(results))
	}
	return nil
}
