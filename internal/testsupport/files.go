package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// pngHeader is the 8-byte PNG signature; enough for fixtures since the
// pipeline never inspects image bytes.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// WritePNG writes a minimal PNG-signature fixture at path.
func WritePNG(t testing.TB, path string) {
	t.Helper()
	WriteFile(t, path, string(pngHeader))
}

// WriteFile creates path (and parent directories) with the given content.
func WriteFile(t testing.TB, path string, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
