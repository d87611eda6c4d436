package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"clipsync/internal/bundle"
	"clipsync/internal/deps"
	"clipsync/internal/logging"
	"clipsync/internal/pipeline"
	"clipsync/internal/services"
	"clipsync/internal/staging"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var keepScratch bool

	cmd := &cobra.Command{
		Use:   "sync <media-file>...",
		Short: "Group media files into clips and mux aligned audio into each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			inputs, err := resolveInputs(args)
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Required(cfg))
			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s (run `clipsync deps` for details)", strings.Join(missing, ", "))
			}

			// One run at a time per staging root: concurrent runs would
			// race on stale cleanup and on delivered archive names.
			lock := flock.New(filepath.Join(cfg.Paths.StagingDir, "clipsync.lock"))
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire staging lock: %w", err)
			}
			if !ok {
				return fmt.Errorf("another clipsync run is already using %s", cfg.Paths.StagingDir)
			}
			defer func() { _ = lock.Unlock() }()

			staleAge := time.Duration(cfg.Workflow.StaleRunMaxAgeHours) * time.Hour
			staging.CleanStale(cfg.Paths.StagingDir, staleAge, logger)

			run, err := staging.NewRun(cfg.Paths.StagingDir)
			if err != nil {
				return err
			}
			if !keepScratch {
				defer func() { _ = run.Cleanup() }()
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, err := ctx.newPipeline(logger)
			if err != nil {
				return err
			}
			job, err := p.Run(runCtx, inputs, run)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderResults(job, shouldColorize(out)))

			if job.DoneCount() == 0 {
				return fmt.Errorf("no clip could be synced")
			}

			delivered, err := bundle.Deliver(cfg.Paths.OutputDir, job.Synced())
			if err != nil {
				return err
			}
			if delivered.Archived {
				fmt.Fprintf(out, "Delivered %d synced clips as %s\n", job.DoneCount(), delivered.Path)
			} else {
				fmt.Fprintf(out, "Delivered %s\n", delivered.Path)
			}
			logger.Info("job delivered",
				logging.String("path", delivered.Path),
				logging.Bool("archived", delivered.Archived),
				logging.String(logging.FieldEventType, "job_delivered"),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepScratch, "keep-scratch", false, "Keep the run's scratch directory for debugging")
	return cmd
}

func resolveInputs(args []string) ([]string, error) {
	inputs := make([]string, 0, len(args))
	for _, arg := range args {
		path, err := filepath.Abs(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("resolve input %q: %w", arg, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("inspect input %q: %w", arg, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("input %q is a directory; pass media files", arg)
		}
		inputs = append(inputs, path)
	}
	return inputs, nil
}

func renderResults(job pipeline.JobResult, colorize bool) string {
	headers := []string{"CLIP", "STATUS", "OFFSETS", "RESULT"}
	rows := make([][]string, 0, len(job.Results))
	for _, r := range job.Results {
		rows = append(rows, []string{
			r.Key,
			statusLabel(r.Status, colorize),
			formatOffsets(r.Offsets),
			resultDetail(r),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft})
}

func formatOffsets(offsets []pipeline.TrackOffset) string {
	if len(offsets) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(offsets))
	for _, o := range offsets {
		parts = append(parts, fmt.Sprintf("%+.3fs", o.Offset.Seconds))
	}
	return strings.Join(parts, ", ")
}

func resultDetail(r pipeline.ClipResult) string {
	if r.Status == pipeline.StatusDone {
		return filepath.Base(r.OutputPath)
	}
	if label := services.Category(r.Err); label != "" {
		return label
	}
	return "failed"
}
