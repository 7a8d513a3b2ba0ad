// Package download fetches release files to the local download directory.
// Files of one release land in a subdirectory named after the project, and
// a batch is written in listing order, stopping at the first failure so a
// broken network never leaves gaps in the middle of a listing.
package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/steviee/modseek/internal/modrinth"
)

// chunkSize is how many bytes are copied between progress updates.
const chunkSize = 32 * 1024

// Progress receives the running byte count of the file currently being
// written. It is called once with zero received before the first chunk and
// again after every chunk. Total is the expected size and may be zero when
// neither the server nor the release metadata knows it.
type Progress func(name string, received, total int64)

// FSError wraps a local filesystem failure: the download directory could
// not be created or a file could not be written.
type FSError struct {
	Path string
	Err  error
}

// Error returns the error message.
func (e *FSError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *FSError) Unwrap() error {
	return e.Err
}

// Batch describes the files of one release and the directory under the
// download root they belong in.
type Batch struct {
	Dir   string
	Files []modrinth.File
}

// Downloader fetches release files over plain HTTP.
type Downloader struct {
	httpClient *http.Client
	userAgent  string
	root       string
}

// NewDownloader creates a downloader writing below root.
func NewDownloader(root string) *Downloader {
	return &Downloader{
		httpClient: &http.Client{Timeout: 10 * time.Minute},
		userAgent:  modrinth.UserAgent,
		root:       root,
	}
}

// Dir returns the directory the files of a batch land in.
func (d *Downloader) Dir(sub string) string {
	return filepath.Join(d.root, sub)
}

// Fetch downloads every file of the batch in order and returns the paths
// written. On failure the paths downloaded so far are returned alongside
// the error; finished files are kept.
func (d *Downloader) Fetch(ctx context.Context, batch Batch, progress Progress) ([]string, error) {
	if len(batch.Files) == 0 {
		return nil, nil
	}

	dir := d.Dir(batch.Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &FSError{Path: dir, Err: err}
	}

	slog.Info("downloading release files",
		"dir", dir,
		"files", len(batch.Files))

	var written []string
	for _, file := range batch.Files {
		dest, err := d.fetchFile(ctx, dir, file, progress)
		if err != nil {
			return written, err
		}
		written = append(written, dest)

		slog.Debug("file downloaded",
			"path", dest,
			"size", file.Size)
	}

	return written, nil
}

// fetchFile streams one file to disk in chunks, reporting progress after
// every chunk.
func (d *Downloader) fetchFile(ctx context.Context, dir string, file modrinth.File, progress Progress) (string, error) {
	name := file.LocalName()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", &modrinth.TransportError{Op: "download " + name, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", modrinth.NewAPIError(resp.StatusCode, "download failed", name)
	}

	total := resp.ContentLength
	if total <= 0 {
		total = file.Size
	}

	dest := filepath.Join(dir, name)
	out, err := os.Create(dest)
	if err != nil {
		return "", &FSError{Path: dest, Err: err}
	}
	defer func() {
		_ = out.Close()
	}()

	if progress != nil {
		progress(name, 0, total)
	}

	buf := make([]byte, chunkSize)
	var received int64
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return "", &FSError{Path: dest, Err: writeErr}
			}
			received += int64(n)
			if progress != nil {
				progress(name, received, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", &modrinth.TransportError{Op: "download " + name, Err: readErr}
		}
	}

	return dest, nil
}
