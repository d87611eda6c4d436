package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDecode marks failures extracting audio from an input file: the
	// external tool exited non-zero, the binary is unavailable, or the
	// input path is unreadable.
	ErrDecode = errors.New("decode error")
	// ErrRateMismatch marks two waveforms entering the same comparison
	// with different sample rates. The decode layer guarantees a uniform
	// analysis rate, so this indicates a contract violation upstream.
	ErrRateMismatch = errors.New("sample rate mismatch")
	// ErrMux marks a failure in the final container assembly invocation.
	ErrMux = errors.New("mux error")
	// ErrNoValidClips is the only job-level error: no clip group had both
	// a reference video and at least one external audio source.
	ErrNoValidClips = errors.New("no valid clip groups")
	// ErrLowConfidence marks an alignment rejected because the correlation
	// peak was not distinct enough from the runner-up.
	ErrLowConfidence = errors.New("low alignment confidence")

	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrTimeout       = errors.New("timeout")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// JobLevel reports whether the error aborts the whole job rather than a
// single clip. Everything except ErrNoValidClips is clip-scoped.
func JobLevel(err error) bool {
	return errors.Is(err, ErrNoValidClips)
}

// Category returns a short human-readable label for the error kind, suitable
// for the user-facing per-clip status surface. Diagnostic detail stays in the
// wrapped chain for logging.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDecode):
		return "decode failed"
	case errors.Is(err, ErrRateMismatch):
		return "sample rate mismatch"
	case errors.Is(err, ErrMux):
		return "mux failed"
	case errors.Is(err, ErrLowConfidence):
		return "low alignment confidence"
	case errors.Is(err, ErrTimeout):
		return "timed out"
	case errors.Is(err, ErrNoValidClips):
		return "no valid clip groups"
	case errors.Is(err, ErrConfiguration):
		return "configuration error"
	case errors.Is(err, ErrValidation):
		return "invalid input"
	default:
		return "processing failed"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
