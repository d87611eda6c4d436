package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// runDirPrefix namespaces scratch directories so stale cleanup never touches
// unrelated content placed in the staging root.
const runDirPrefix = "run-"

// Run is a scratch directory tree for a single sync job. Every clip gets its
// own subdirectory so its intermediate WAV files never collide with a
// sibling's.
type Run struct {
	ID   string
	Root string
}

// NewRun creates a fresh run-scoped scratch directory under stagingDir.
func NewRun(stagingDir string) (*Run, error) {
	stagingDir = strings.TrimSpace(stagingDir)
	if stagingDir == "" {
		return nil, fmt.Errorf("staging directory is not configured")
	}

	id := uuid.NewString()
	root := filepath.Join(stagingDir, runDirPrefix+id)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create staging run directory: %w", err)
	}

	return &Run{ID: id, Root: root}, nil
}

// ClipDir returns (creating it if needed) the scratch directory for one clip.
func (r *Run) ClipDir(clipKey string) (string, error) {
	dir := filepath.Join(r.Root, sanitizeKey(clipKey))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create clip staging directory: %w", err)
	}
	return dir, nil
}

// Cleanup removes the entire run directory. Safe to call multiple times.
func (r *Run) Cleanup() error {
	if r == nil || r.Root == "" {
		return nil
	}
	if err := os.RemoveAll(r.Root); err != nil {
		return fmt.Errorf("remove staging run directory: %w", err)
	}
	return nil
}

// sanitizeKey keeps clip keys filesystem-safe. Keys come from user-supplied
// filenames, so path separators must not escape the run directory.
func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "clip"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	return replacer.Replace(key)
}
