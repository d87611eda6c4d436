package deps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"clipsync/internal/config"
)

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(path, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "present")

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "   "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}

	if results[2].Available {
		t.Fatal("expected unset command to be unavailable")
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for unset command: %s", results[2].Detail)
	}
}

func TestRequiredCoversMediaTools(t *testing.T) {
	cfg := config.Default()
	reqs := Required(&cfg)
	if len(reqs) != 2 {
		t.Fatalf("expected ffmpeg and ffprobe requirements, got %d", len(reqs))
	}
	if reqs[0].Command != cfg.Media.FFmpegBin || reqs[1].Command != cfg.Media.FFprobeBin {
		t.Fatalf("requirements do not reflect configured binaries: %#v", reqs)
	}
	for _, req := range reqs {
		if req.Optional {
			t.Fatalf("%s must not be optional", req.Name)
		}
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []Status{
		{Name: "FFmpeg", Available: true},
		{Name: "FFprobe", Available: false},
		{Name: "Extra", Available: false, Optional: true},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0] != "FFprobe" {
		t.Fatalf("missing = %v, want [FFprobe]", missing)
	}
}

func TestVersionHandlesMissingBinary(t *testing.T) {
	if got := Version(context.Background(), "clearly-not-present-binary"); got != "" {
		t.Fatalf("expected empty version for missing binary, got %q", got)
	}
	if got := Version(context.Background(), "  "); got != "" {
		t.Fatalf("expected empty version for blank command, got %q", got)
	}
}

func TestVersionReadsFirstLine(t *testing.T) {
	binDir := t.TempDir()
	path := filepath.Join(binDir, "fakeffmpeg")
	script := []byte("#!/bin/sh\necho 'ffmpeg version 7.1'\necho 'configuration: --enable-gpl'\n")
	if err := os.WriteFile(path, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	got := Version(context.Background(), path)
	if got != "ffmpeg version 7.1" {
		t.Fatalf("version = %q", got)
	}
}
