package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveName is the filename used when multiple synced clips are bundled
// into a single archive.
const ArchiveName = "synced_clips.zip"

// Result describes what Deliver placed in the output directory.
type Result struct {
	// Path is the delivered artifact: either the single synced clip or the
	// zip archive containing all of them.
	Path string
	// Archived reports whether the outputs were bundled into a zip.
	Archived bool
}

// Deliver moves synced clip files from staging into outputDir. A single clip
// is delivered as-is; two or more are bundled into one zip archive so the
// caller hands back exactly one artifact either way.
func Deliver(outputDir string, syncedPaths []string) (Result, error) {
	outputDir = strings.TrimSpace(outputDir)
	if outputDir == "" {
		return Result{}, fmt.Errorf("output directory is not configured")
	}
	if len(syncedPaths) == 0 {
		return Result{}, fmt.Errorf("no synced clips to deliver")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}

	if len(syncedPaths) == 1 {
		dest := filepath.Join(outputDir, filepath.Base(syncedPaths[0]))
		if err := moveFile(syncedPaths[0], dest); err != nil {
			return Result{}, err
		}
		return Result{Path: dest}, nil
	}

	dest := filepath.Join(outputDir, ArchiveName)
	if err := writeArchive(dest, syncedPaths); err != nil {
		return Result{}, err
	}
	for _, path := range syncedPaths {
		// Best effort: the archive already holds the content.
		_ = os.Remove(path)
	}
	return Result{Path: dest, Archived: true}, nil
}

// writeArchive zips the given files flat (base names only) into dest.
func writeArchive(dest string, paths []string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, path := range paths {
		if err := addToArchive(zw, path); err != nil {
			zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return out.Close()
}

func addToArchive(zw *zip.Writer, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s for archiving: %w", path, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("archive header for %s: %w", path, err)
	}
	header.Name = filepath.Base(path)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("add %s to archive: %w", path, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("write %s to archive: %w", path, err)
	}
	return nil
}

// moveFile renames src to dest, falling back to copy+remove when staging and
// output live on different filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}
	return os.Remove(src)
}
