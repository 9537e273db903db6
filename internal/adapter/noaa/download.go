// Package noaa supplies storm event records to the pipeline: it downloads
// the StormData archive and streams its rows as raw records.
package noaa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Downloader fetches the StormData archive to a local cache path. The
// archive is ~47 MB compressed and immutable, so a file that already
// exists is never re-fetched.
type Downloader struct {
	url        string
	path       string
	httpClient *http.Client
	logger     *slog.Logger
	progress   bool
}

// NewDownloader creates a Downloader. With progress enabled a byte-level
// progress bar is written to stderr during the transfer.
func NewDownloader(url, path string, timeout time.Duration, progress bool, logger *slog.Logger) *Downloader {
	return &Downloader{
		url:        url,
		path:       path,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		progress:   progress,
	}
}

// Ensure makes the dataset available at the configured path, downloading
// it when absent, and returns the path. A partial download never replaces
// the cache file: data is written to a sibling temp file and renamed only
// after the transfer completes.
func (d *Downloader) Ensure(ctx context.Context) (string, error) {
	if _, err := os.Stat(d.path); err == nil {
		d.logger.Info("dataset already present", "path", d.path)
		return d.path, nil
	}

	d.logger.Info("downloading dataset", "url", d.url, "path", d.path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download dataset: unexpected status %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}

	tmp := d.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	var dst io.Writer = f
	if d.progress {
		bar := progressbar.DefaultBytes(resp.ContentLength, "downloading "+filepath.Base(d.path))
		dst = io.MultiWriter(f, bar)
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("write dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		return "", fmt.Errorf("move dataset into place: %w", err)
	}

	d.logger.Info("dataset downloaded", "path", d.path)
	return d.path, nil
}
