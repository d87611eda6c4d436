package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"clipsync/internal/align"
	"clipsync/internal/media/transcode"
	"clipsync/internal/staging"
	"clipsync/internal/wave"
)

// newOffsetCommand estimates the offset for a single pair without muxing.
// Useful to sanity-check a problem pair before a full sync run.
func newOffsetCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "offset <reference> <external>",
		Short: "Estimate the time offset between a reference clip and an external recording",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.newLogger()
			if err != nil {
				return err
			}

			inputs, err := resolveInputs(args)
			if err != nil {
				return err
			}

			run, err := staging.NewRun(cfg.Paths.StagingDir)
			if err != nil {
				return err
			}
			defer func() { _ = run.Cleanup() }()

			runner := transcode.NewRunner(
				cfg.Media.FFmpegBin,
				decodeTimeout(cfg),
				muxTimeout(cfg),
				logger,
			)

			waveforms := make([]wave.Waveform, 2)
			for i, input := range inputs {
				scratch := filepath.Join(run.Root, fmt.Sprintf("probe_%d.wav", i))
				if err := runner.ExtractMonoWAV(cmd.Context(), input, scratch, cfg.Analysis.SampleRate); err != nil {
					return err
				}
				waveforms[i], err = wave.ReadFile(scratch)
				if err != nil {
					return err
				}
			}

			offset, err := align.EstimateOffset(waveforms[0], waveforms[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Offset:     %+.3f s\n", offset.Seconds)
			fmt.Fprintf(out, "Confidence: %.2f\n", offset.Confidence)
			if min := cfg.Analysis.MinConfidence; min > 0 && offset.Confidence < min {
				fmt.Fprintf(out, "Warning: confidence is below the configured threshold (%.2f); a sync run would reject this pair\n", min)
			}
			return nil
		},
	}
}
