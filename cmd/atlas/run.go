package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/atlas/internal/log"
	"github.com/mesh-intelligence/atlas/internal/metrics"
	"github.com/mesh-intelligence/atlas/internal/paths"
	"github.com/mesh-intelligence/atlas/internal/scenario"
	"github.com/mesh-intelligence/atlas/internal/tracing"
	"github.com/mesh-intelligence/atlas/internal/watcher"
	"github.com/mesh-intelligence/atlas/pkg/registry"
	"github.com/mesh-intelligence/atlas/pkg/types"
)

var errScenarioFailed = errors.New("scenario expectations failed")

var (
	flagTrace   bool
	flagMetrics bool
	flagWatch   bool
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>...",
	Short: "Run scenarios against one registry",
	Long: `Run executes each scenario in order against a single in-process
registry. Names bound by one scenario stay visible to the next. The exit
code is 1 if any expectation fails.

With --watch the scenarios are run again against a fresh registry every
time one of the files changes, until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScenarios,
}

func init() {
	runCmd.Flags().BoolVar(&flagTrace, "trace", false, "print the notification trace")
	runCmd.Flags().BoolVar(&flagMetrics, "metrics", false, "print registry metrics after the run")
	runCmd.Flags().BoolVar(&flagWatch, "watch", false, "re-run when a scenario file changes")
}

func runScenarios(cmd *cobra.Command, args []string) error {
	dir, err := resolveScenarioDir()
	if err != nil {
		return systemError(fmt.Errorf("resolve scenario dir: %w", err))
	}
	files := make([]string, len(args))
	for i, a := range args {
		files[i] = paths.ResolveScenario(dir, a)
	}

	tp, err := newTracing(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatTracing, "flush spans", err)
		}
	}()

	if flagWatch {
		return watchScenarios(cmd.Context(), cmd, tp, files)
	}
	return runOnce(cmd, tp, files)
}

// runOnce loads files, runs them against a fresh registry and writes the
// reports. It returns errScenarioFailed, as a user error, when any
// expectation failed.
func runOnce(cmd *cobra.Command, tp *tracing.Provider, files []string) error {
	scripts := make([]*scenario.Script, 0, len(files))
	for _, f := range files {
		s, err := scenario.Load(f)
		if err != nil {
			return userError(err)
		}
		scripts = append(scripts, s)
	}

	reg := registry.New()
	promReg := prometheus.NewRegistry()
	metrics.New(promReg).Attach(reg)
	runner := scenario.NewRunner(reg, scenario.WithTracer(tp.Tracer()))

	var reports []*scenario.Report
	failed := false
	for _, s := range scripts {
		rep, err := runner.Run(cmd.Context(), s)
		if err != nil {
			return userError(fmt.Errorf("%s: %w", s.Name, err))
		}
		if !rep.Passed() {
			failed = true
		}
		log.Info(log.CatCLI, "scenario finished", "script", s.Name, "passed", rep.Passed())
		reports = append(reports, rep)
	}

	out := cmd.OutOrStdout()
	if cfg.OutputFormat() == types.OutputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return systemError(err)
		}
	} else {
		for _, rep := range reports {
			if err := rep.WriteText(out, flagTrace); err != nil {
				return systemError(err)
			}
		}
	}

	if flagMetrics || cfg.Metrics {
		if err := metrics.Dump(out, promReg); err != nil {
			return systemError(err)
		}
	}

	if failed {
		return userError(errScenarioFailed)
	}
	return nil
}

// watchScenarios runs the files, then runs them again on every change.
// Failed runs are reported and the watch goes on; it ends cleanly when ctx
// is cancelled.
func watchScenarios(ctx context.Context, cmd *cobra.Command, tp *tracing.Provider, files []string) error {
	w, err := watcher.New(files, watcher.DefaultDebounce)
	if err != nil {
		return systemError(err)
	}
	changes, errs, err := w.Start()
	if err != nil {
		return systemError(err)
	}
	defer func() { _ = w.Stop() }()

	for {
		if err := runOnce(cmd, tp, files); err != nil {
			if exitCode(err) == exitSysError {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "watching %d file(s)\n", len(files))

		if !waitForChange(ctx, changes, errs) {
			return nil
		}
		log.Info(log.CatCLI, "scenario changed, re-running")
	}
}

// waitForChange blocks until a change (true) or cancellation (false).
func waitForChange(ctx context.Context, changes <-chan struct{}, errs <-chan error) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-changes:
			return true
		case err := <-errs:
			log.ErrorErr(log.CatCLI, "watch", err)
		}
	}
}

// newTracing builds the span exporter from the tracing section of the
// config. A relative trace file lives in the config dir; stdout spans go to
// stderr so they never mix with the report.
func newTracing(cmd *cobra.Command) (*tracing.Provider, error) {
	tc := cfg.Tracing
	if tc.FilePath != "" && !filepath.IsAbs(tc.FilePath) {
		tc.FilePath = filepath.Join(configDir, tc.FilePath)
	}
	tp, err := tracing.NewProvider(tc, cmd.ErrOrStderr())
	if err != nil {
		return nil, systemError(err)
	}
	return tp, nil
}
