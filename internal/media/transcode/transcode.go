package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"clipsync/internal/logging"
	"clipsync/internal/services"
)

// MediaTranscoder is the capability contract the pipeline depends on.
type MediaTranscoder interface {
	// ExtractMonoWAV pulls a single-channel waveform out of any media
	// file, resampled to sampleRate, written as PCM WAV at outputPath.
	ExtractMonoWAV(ctx context.Context, inputPath, outputPath string, sampleRate int) error
	// Mux runs a prepared container assembly argument vector.
	Mux(ctx context.Context, args []string) error
}

// Runner invokes the configured ffmpeg binary.
type Runner struct {
	binary        string
	decodeTimeout time.Duration
	muxTimeout    time.Duration
	logger        *slog.Logger
}

// NewRunner constructs a Runner. Zero timeouts disable the corresponding
// deadline.
func NewRunner(binary string, decodeTimeout, muxTimeout time.Duration, logger *slog.Logger) *Runner {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &Runner{
		binary:        binary,
		decodeTimeout: decodeTimeout,
		muxTimeout:    muxTimeout,
		logger:        logging.NewComponentLogger(logger, "transcode"),
	}
}

var _ MediaTranscoder = (*Runner)(nil)

// ExtractMonoWAV drops the video stream, downmixes to one channel, and
// resamples to the analysis rate.
func (r *Runner) ExtractMonoWAV(ctx context.Context, inputPath, outputPath string, sampleRate int) error {
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		outputPath,
	}
	if err := r.run(ctx, r.decodeTimeout, args); err != nil {
		marker := services.ErrDecode
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return services.Wrap(marker, "decoding", "extract waveform", inputPath, err)
	}
	return nil
}

// Mux executes the planner-built argument vector.
func (r *Runner) Mux(ctx context.Context, args []string) error {
	if err := r.run(ctx, r.muxTimeout, args); err != nil {
		marker := services.ErrMux
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return services.Wrap(marker, "muxing", "assemble container", "", err)
	}
	return nil
}

func (r *Runner) run(ctx context.Context, timeout time.Duration, args []string) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	full := append([]string{"-y", "-hide_banner", "-nostdin"}, args...)
	cmd := exec.CommandContext(ctx, r.binary, full...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	r.logger.Debug("invoking transcoder",
		logging.String("binary", r.binary),
		logging.String("args", strings.Join(full, " ")),
	)

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		switch ctx.Err() {
		case context.DeadlineExceeded:
			return fmt.Errorf("%s timed out after %s: %w", r.binary, elapsed.Round(time.Millisecond), context.DeadlineExceeded)
		case context.Canceled:
			return fmt.Errorf("%s interrupted: %w", r.binary, context.Canceled)
		}
		return fmt.Errorf("%s failed: %w: %s", r.binary, err, stderrTail(stderr.String()))
	}

	r.logger.Debug("transcoder finished", logging.Duration("elapsed", elapsed))
	return nil
}

// stderrTail keeps the end of the diagnostic output, which is where ffmpeg
// states the actual failure.
func stderrTail(output string) string {
	output = strings.TrimSpace(output)
	const limit = 2048
	if len(output) > limit {
		output = "..." + output[len(output)-limit:]
	}
	return output
}
