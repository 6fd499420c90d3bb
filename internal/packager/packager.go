// Package packager assembles the workspace files into the distributable
// archive. The bytes are an ordinary zip; only the final extension is the
// engine's .mcpack convention.
package packager

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lskinbot/internal/manifest"
)

// ArchiveBaseName is the fixed stem of the produced package file.
const ArchiveBaseName = "lskinbot"

// PackExtension is the extension the consuming engine expects. The zip is
// built under its native extension first and renamed in place.
const PackExtension = ".mcpack"

const zipExtension = ".zip"

// Entries lists the exact archive contents in order.
func Entries() []string {
	return []string{
		manifest.ManifestFileName,
		manifest.SkinsFileName,
		manifest.TextureFileName,
	}
}

// Build archives the three workspace files under their fixed arc-names and
// finalizes the package under PackExtension, overwriting any stale archive
// from a prior attempt. I/O failures propagate; the pipeline cannot deliver
// without a valid archive.
func Build(dir string) (string, error) {
	zipPath := filepath.Join(dir, ArchiveBaseName+zipExtension)

	if err := writeZip(zipPath, dir); err != nil {
		_ = os.Remove(zipPath)
		return "", err
	}

	packPath := filepath.Join(dir, ArchiveBaseName+PackExtension)
	if err := os.Remove(packPath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("remove stale package: %w", err)
	}
	if err := os.Rename(zipPath, packPath); err != nil {
		return "", fmt.Errorf("finalize package: %w", err)
	}
	return packPath, nil
}

func writeZip(zipPath, dir string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	for _, name := range Entries() {
		if err := addEntry(zw, dir, name); err != nil {
			_ = zw.Close()
			_ = out.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("close archive: %w", err)
	}
	return out.Close()
}

func addEntry(zw *zip.Writer, dir, name string) error {
	src, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer src.Close()

	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create archive entry %s: %w", name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	return nil
}
