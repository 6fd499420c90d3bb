package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"lskinbot/internal/testsupport"
	"lskinbot/internal/workspace"
)

func TestAcquireCreatesPrefixedDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ws, err := workspace.Acquire(root, 42)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	want := filepath.Join(root, "user_42")
	if ws.Dir() != want {
		t.Fatalf("workspace dir = %q, want %q", ws.Dir(), want)
	}
	info, err := os.Stat(ws.Dir())
	if err != nil {
		t.Fatalf("stat workspace: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("workspace path is not a directory")
	}
}

func TestAcquireReusesExistingDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	first, err := workspace.Acquire(root, 7)
	if err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	testsupport.WritePNG(t, first.Path("zombie.png"))

	second, err := workspace.Acquire(root, 7)
	if err != nil {
		t.Fatalf("second Acquire failed: %v", err)
	}
	if second.Dir() != first.Dir() {
		t.Fatalf("reacquired dir = %q, want %q", second.Dir(), first.Dir())
	}
	if _, err := os.Stat(second.Path("zombie.png")); err != nil {
		t.Fatalf("existing file lost on reacquire: %v", err)
	}
}

func TestPathJoinsIntoWorkspace(t *testing.T) {
	t.Parallel()

	ws, err := workspace.Acquire(t.TempDir(), 1)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if got, want := ws.Path("skins.json"), filepath.Join(ws.Dir(), "skins.json"); got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
}

func TestReleaseRemovesEverything(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ws, err := workspace.Acquire(root, 9)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	testsupport.WritePNG(t, ws.Path("zombie.png"))
	testsupport.WriteFile(t, ws.Path("manifest.json"), "{}")
	testsupport.WriteFile(t, ws.Path("lskinbot.mcpack"), "not a real zip")

	ws.Release(nil)

	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Fatalf("workspace still present after release: stat err = %v", err)
	}
}

func TestReleaseToleratesMissingFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ws, err := workspace.Acquire(root, 11)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	testsupport.WriteFile(t, ws.Path("zombie.png"), "x")
	if err := os.Remove(ws.Path("zombie.png")); err != nil {
		t.Fatalf("pre-remove: %v", err)
	}

	ws.Release(nil)

	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Fatalf("workspace still present after release: stat err = %v", err)
	}
}

func TestReleaseToleratesMissingDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ws, err := workspace.Acquire(root, 13)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := os.RemoveAll(ws.Dir()); err != nil {
		t.Fatalf("pre-remove dir: %v", err)
	}

	// Must not panic or recreate the directory.
	ws.Release(nil)

	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Fatalf("release recreated the directory: stat err = %v", err)
	}
}
