package staging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"clipsync/internal/logging"
	"clipsync/internal/staging"
)

func TestNewRunCreatesUniqueDirectories(t *testing.T) {
	root := t.TempDir()

	first, err := staging.NewRun(root)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	second, err := staging.NewRun(root)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}

	if first.Root == second.Root {
		t.Fatalf("expected distinct run directories, both are %s", first.Root)
	}
	for _, run := range []*staging.Run{first, second} {
		info, err := os.Stat(run.Root)
		if err != nil {
			t.Fatalf("stat %s: %v", run.Root, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", run.Root)
		}
	}
}

func TestNewRunRejectsEmptyStagingDir(t *testing.T) {
	if _, err := staging.NewRun("   "); err == nil {
		t.Fatal("expected error for empty staging directory")
	}
}

func TestClipDirIsolatesClips(t *testing.T) {
	run, err := staging.NewRun(t.TempDir())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}

	a, err := run.ClipDir("A001")
	if err != nil {
		t.Fatalf("ClipDir: %v", err)
	}
	b, err := run.ClipDir("B002")
	if err != nil {
		t.Fatalf("ClipDir: %v", err)
	}

	if a == b {
		t.Fatal("clip directories must be distinct")
	}
	if !strings.HasPrefix(a, run.Root) || !strings.HasPrefix(b, run.Root) {
		t.Fatalf("clip dirs must live under run root %s (got %s, %s)", run.Root, a, b)
	}
}

func TestClipDirSanitizesHostileKeys(t *testing.T) {
	run, err := staging.NewRun(t.TempDir())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}

	dir, err := run.ClipDir("../escape")
	if err != nil {
		t.Fatalf("ClipDir: %v", err)
	}
	rel, err := filepath.Rel(run.Root, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		t.Fatalf("clip dir %s escapes run root %s", dir, run.Root)
	}
}

func TestCleanupRemovesRunTree(t *testing.T) {
	run, err := staging.NewRun(t.TempDir())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	dir, err := run.ClipDir("A001")
	if err != nil {
		t.Fatalf("ClipDir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ref.wav"), []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := run.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(run.Root); !os.IsNotExist(err) {
		t.Fatalf("run root still present after cleanup: %v", err)
	}
	if err := run.Cleanup(); err != nil {
		t.Fatalf("second Cleanup should be a no-op, got %v", err)
	}
}

func TestCleanStaleRemovesOldRunsOnly(t *testing.T) {
	root := t.TempDir()

	stale, err := staging.NewRun(root)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	fresh, err := staging.NewRun(root)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	unrelated := filepath.Join(root, "keep-me")
	if err := os.MkdirAll(unrelated, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale.Root, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Chtimes(unrelated, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	result := staging.CleanStale(root, 24*time.Hour, logging.NewNop())
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected cleanup errors: %v", result.Errors)
	}
	if len(result.Removed) != 1 || result.Removed[0] != stale.Root {
		t.Fatalf("removed = %v, want only %s", result.Removed, stale.Root)
	}

	if _, err := os.Stat(fresh.Root); err != nil {
		t.Fatalf("fresh run was removed: %v", err)
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Fatalf("unrelated directory was removed: %v", err)
	}
}

func TestCleanStaleHandlesMissingRoot(t *testing.T) {
	result := staging.CleanStale(filepath.Join(t.TempDir(), "nope"), time.Hour, nil)
	if len(result.Removed) != 0 || len(result.Errors) != 0 {
		t.Fatalf("expected empty result for missing root, got %+v", result)
	}
}
