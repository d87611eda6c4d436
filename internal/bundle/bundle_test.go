package bundle_test

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"clipsync/internal/bundle"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

func TestDeliverSingleClipMovesFile(t *testing.T) {
	stagingDir := t.TempDir()
	outputDir := t.TempDir()
	src := writeFixture(t, stagingDir, "A001_synced.mov", "mov-bytes")

	result, err := bundle.Deliver(outputDir, []string{src})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	if result.Archived {
		t.Fatal("single clip should not be archived")
	}
	want := filepath.Join(outputDir, "A001_synced.mov")
	if result.Path != want {
		t.Fatalf("path = %s, want %s", result.Path, want)
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("read delivered clip: %v", err)
	}
	if string(data) != "mov-bytes" {
		t.Fatalf("delivered content = %q", data)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("staging copy should be gone: %v", err)
	}
}

func TestDeliverMultipleClipsCreatesArchive(t *testing.T) {
	stagingDir := t.TempDir()
	outputDir := t.TempDir()
	first := writeFixture(t, stagingDir, "A001_synced.mov", "first")
	second := writeFixture(t, stagingDir, "B002_synced.mov", "second")

	result, err := bundle.Deliver(outputDir, []string{first, second})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	if !result.Archived {
		t.Fatal("multiple clips should be archived")
	}
	want := filepath.Join(outputDir, bundle.ArchiveName)
	if result.Path != want {
		t.Fatalf("path = %s, want %s", result.Path, want)
	}

	zr, err := zip.OpenReader(result.Path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()

	var names []string
	contents := map[string]string{}
	for _, f := range zr.File {
		names = append(names, f.Name)
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open archive member %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read archive member %s: %v", f.Name, err)
		}
		contents[f.Name] = string(data)
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "A001_synced.mov" || names[1] != "B002_synced.mov" {
		t.Fatalf("archive members = %v", names)
	}
	if contents["A001_synced.mov"] != "first" || contents["B002_synced.mov"] != "second" {
		t.Fatalf("archive contents = %v", contents)
	}

	for _, src := range []string{first, second} {
		if _, err := os.Stat(src); !os.IsNotExist(err) {
			t.Fatalf("staging copy %s should be gone: %v", src, err)
		}
	}
}

func TestDeliverRejectsEmptyInputs(t *testing.T) {
	if _, err := bundle.Deliver(t.TempDir(), nil); err == nil {
		t.Fatal("expected error for zero synced clips")
	}
	if _, err := bundle.Deliver("", []string{"a.mov"}); err == nil {
		t.Fatal("expected error for empty output directory")
	}
}

func TestDeliverCreatesOutputDirectory(t *testing.T) {
	stagingDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "nested", "out")
	src := writeFixture(t, stagingDir, "A001_synced.mov", "x")

	result, err := bundle.Deliver(outputDir, []string{src})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if _, err := os.Stat(result.Path); err != nil {
		t.Fatalf("delivered file missing: %v", err)
	}
}
