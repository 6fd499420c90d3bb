// Package workspace manages the per-requester temporary directory that scopes
// one packaging run. Acquisition is idempotent; release removes everything on
// every exit path and never raises.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"lskinbot/internal/logging"
)

// DirPrefix is the fixed prefix of workspace directory names; the requester id
// is appended, so repeated requests by the same user reuse one path.
const DirPrefix = "user_"

// Workspace is an exclusively-owned filesystem scope bound to one request.
type Workspace struct {
	dir    string
	userID int64
}

// Acquire creates (or reuses) the workspace directory for the given requester.
func Acquire(root string, userID int64) (*Workspace, error) {
	dir := filepath.Join(root, fmt.Sprintf("%s%d", DirPrefix, userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace %q: %w", dir, err)
	}
	return &Workspace{dir: dir, userID: userID}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path joins a file name onto the workspace directory.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Release removes whatever the pipeline left behind and then the directory
// itself. Files that already vanished are not an error. Failures are logged
// and swallowed so they can never mask an in-flight pipeline error; callers
// defer Release unconditionally.
func (w *Workspace) Release(logger *slog.Logger) {
	if logger == nil {
		logger = logging.NewNop()
	}

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		logger.Warn("workspace enumeration failed, directory left behind",
			logging.String("path", w.dir),
			logging.Error(err),
			logging.String(logging.FieldEventType, "workspace_release_failed"),
			logging.String(logging.FieldErrorHint, "check work_dir permissions"),
		)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(w.dir, entry.Name())
		if err := os.RemoveAll(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove workspace file",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldEventType, "workspace_release_failed"),
			)
		}
	}

	if err := os.Remove(w.dir); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to remove workspace directory",
			logging.String("path", w.dir),
			logging.Error(err),
			logging.String(logging.FieldEventType, "workspace_release_failed"),
			logging.String(logging.FieldErrorHint, "check work_dir permissions"),
		)
	}
}
