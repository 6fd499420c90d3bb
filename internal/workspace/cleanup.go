package workspace

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lskinbot/internal/logging"
)

// CleanStaleResult contains the outcome of a stale workspace sweep.
type CleanStaleResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a directory path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// CleanStale removes workspace directories older than maxAge. Workspaces only
// outlive a request when the process crashed mid-pipeline, so this runs once
// at startup.
func CleanStale(root string, maxAge time.Duration, logger *slog.Logger) CleanStaleResult {
	result := CleanStaleResult{}
	if logger == nil {
		logger = logging.NewNop()
	}

	root = strings.TrimSpace(root)
	if root == "" {
		return result
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: root, Error: err})
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), DirPrefix) {
			continue
		}

		dirPath := filepath.Join(root, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dirPath, Error: err})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.RemoveAll(dirPath); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dirPath, Error: err})
			logger.Warn("failed to remove stale workspace",
				logging.String("path", dirPath),
				logging.Error(err),
				logging.String(logging.FieldEventType, "workspace_sweep_failed"),
				logging.String(logging.FieldErrorHint, "check work_dir permissions"),
			)
			continue
		}
		result.Removed = append(result.Removed, dirPath)
		logger.Info("removed stale workspace",
			logging.String("path", dirPath),
			logging.Duration("age", time.Since(info.ModTime())),
			logging.String(logging.FieldEventType, "workspace_sweep"),
		)
	}

	return result
}
