package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Download resolves the remote file reference and streams it to destPath.
// The destination is created with 0644 and truncated if it already exists.
func (c *Client) Download(ctx context.Context, fileID, destPath string) error {
	url, err := c.api.GetFileDirectURL(fileID)
	if err != nil {
		return fmt.Errorf("resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("file server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create download target: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		_ = os.Remove(destPath)
		return fmt.Errorf("write download: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close download target: %w", err)
	}
	return nil
}
