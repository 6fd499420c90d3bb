// Package upload validates inbound file references before any disk I/O.
package upload

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotPNG rejects uploads whose declared extension is not .png.
// Validation is by extension only; byte content is never inspected, so a
// mislabeled file passes the gate and fails later in the consuming engine.
type ErrNotPNG struct {
	Filename string
}

func (e *ErrNotPNG) Error() string {
	ext := filepath.Ext(e.Filename)
	if ext == "" {
		return fmt.Sprintf("upload %q has no file extension, need .png", e.Filename)
	}
	return fmt.Sprintf("upload %q has extension %q, need .png", e.Filename, ext)
}

// Validate accepts only case-insensitive .png filenames. It touches nothing on
// disk and must run before the file is downloaded.
func Validate(filename string) error {
	if strings.EqualFold(filepath.Ext(filename), ".png") {
		return nil
	}
	return &ErrNotPNG{Filename: filename}
}
