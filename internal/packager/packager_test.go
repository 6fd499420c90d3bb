package packager_test

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"lskinbot/internal/manifest"
	"lskinbot/internal/packager"
	"lskinbot/internal/testsupport"
)

func seedWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, manifest.ManifestFileName), `{"format_version": 1}`)
	testsupport.WriteFile(t, filepath.Join(dir, manifest.SkinsFileName), `{"skins": []}`)
	testsupport.WritePNG(t, filepath.Join(dir, manifest.TextureFileName))
	return dir
}

func TestBuildProducesPackWithExactEntries(t *testing.T) {
	t.Parallel()

	dir := seedWorkspace(t)
	packPath, err := packager.Build(dir)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if want := filepath.Join(dir, "lskinbot.mcpack"); packPath != want {
		t.Fatalf("pack path = %q, want %q", packPath, want)
	}

	r, err := zip.OpenReader(packPath)
	if err != nil {
		t.Fatalf("pack is not a readable zip: %v", err)
	}
	defer r.Close()

	want := packager.Entries()
	if len(r.File) != len(want) {
		t.Fatalf("archive holds %d entries, want %d", len(r.File), len(want))
	}
	for i, f := range r.File {
		if f.Name != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, f.Name, want[i])
		}
	}
}

func TestBuildPreservesEntryContent(t *testing.T) {
	t.Parallel()

	dir := seedWorkspace(t)
	packPath, err := packager.Build(dir)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	r, err := zip.OpenReader(packPath)
	if err != nil {
		t.Fatalf("open pack: %v", err)
	}
	defer r.Close()

	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %s: %v", f.Name, err)
		}
		disk, err := os.ReadFile(filepath.Join(dir, f.Name))
		if err != nil {
			t.Fatalf("read source %s: %v", f.Name, err)
		}
		if string(got) != string(disk) {
			t.Fatalf("entry %s differs from source file", f.Name)
		}
	}
}

func TestBuildLeavesNoIntermediateZip(t *testing.T) {
	t.Parallel()

	dir := seedWorkspace(t)
	if _, err := packager.Build(dir); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "lskinbot.zip")); !os.IsNotExist(err) {
		t.Fatalf("intermediate zip left behind: stat err = %v", err)
	}
}

func TestBuildOverwritesStalePack(t *testing.T) {
	t.Parallel()

	dir := seedWorkspace(t)
	stale := filepath.Join(dir, "lskinbot.mcpack")
	testsupport.WriteFile(t, stale, "stale bytes from a crashed run")

	packPath, err := packager.Build(dir)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	r, err := zip.OpenReader(packPath)
	if err != nil {
		t.Fatalf("stale pack not replaced with a valid zip: %v", err)
	}
	r.Close()
}

func TestBuildFailsWhenEntryMissing(t *testing.T) {
	t.Parallel()

	dir := seedWorkspace(t)
	if err := os.Remove(filepath.Join(dir, manifest.TextureFileName)); err != nil {
		t.Fatalf("remove texture: %v", err)
	}

	if _, err := packager.Build(dir); err == nil {
		t.Fatal("Build succeeded without the texture file")
	}
	if _, err := os.Stat(filepath.Join(dir, "lskinbot.zip")); !os.IsNotExist(err) {
		t.Fatalf("partial zip left behind after failure: stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "lskinbot.mcpack")); !os.IsNotExist(err) {
		t.Fatalf("pack present after failed build: stat err = %v", err)
	}
}
