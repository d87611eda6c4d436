package ffprobe_test

import (
	"context"
	"encoding/json"
	"testing"

	"clipsync/internal/media/ffprobe"
)

func TestInspectEmptyPath(t *testing.T) {
	if _, err := ffprobe.Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestInspectMissingBinary(t *testing.T) {
	_, err := ffprobe.Inspect(context.Background(), "definitely-not-ffprobe-xyz", "/tmp/whatever.mov")
	if err == nil {
		t.Fatal("expected error when binary is unavailable")
	}
}

func TestReportHelpers(t *testing.T) {
	payload := `{
		"streams": [
			{"index": 0, "codec_name": "h264", "codec_type": "video"},
			{"index": 1, "codec_name": "aac", "codec_type": "audio", "channels": 2, "sample_rate": "48000"}
		],
		"format": {"filename": "A001_cam.mp4", "duration": "12.5", "format_name": "mov,mp4,m4a"}
	}`
	var report ffprobe.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	if !report.HasVideo() {
		t.Fatal("expected video stream")
	}
	if !report.HasAudio() {
		t.Fatal("expected audio stream")
	}
	if got := report.DurationSeconds(); got != 12.5 {
		t.Fatalf("duration = %f, want 12.5", got)
	}
}

func TestReportWithoutAudio(t *testing.T) {
	payload := `{
		"streams": [{"index": 0, "codec_type": "video"}],
		"format": {"duration": "bogus"}
	}`
	var report ffprobe.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	if report.HasAudio() {
		t.Fatal("expected no audio stream")
	}
	if got := report.DurationSeconds(); got != 0 {
		t.Fatalf("unparsable duration should be 0, got %f", got)
	}
}
