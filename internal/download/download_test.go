package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steviee/modseek/internal/modrinth"
)

func TestDownloader_Fetch(t *testing.T) {
	content := strings.Repeat("x", 100*1024) // several chunks

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, modrinth.UserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(content))
	}))
	defer server.Close()

	root := t.TempDir()
	d := NewDownloader(root)

	var (
		lastReceived int64
		lastTotal    int64
		calls        int
	)
	progress := func(name string, received, total int64) {
		assert.Equal(t, "sodium-0.5.11.jar", name)
		assert.GreaterOrEqual(t, received, lastReceived)
		lastReceived = received
		lastTotal = total
		calls++
	}

	written, err := d.Fetch(context.Background(), Batch{
		Dir: "sodium",
		Files: []modrinth.File{
			{URL: server.URL + "/sodium-0.5.11.jar", Filename: "sodium-0.5.11.jar", Size: int64(len(content))},
		},
	}, progress)

	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, filepath.Join(root, "sodium", "sodium-0.5.11.jar"), written[0])

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	assert.Equal(t, int64(len(content)), lastReceived)
	assert.Equal(t, int64(len(content)), lastTotal)
	assert.GreaterOrEqual(t, calls, 2, "expected a progress call per chunk")
}

func TestDownloader_Fetch_MultipleFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("content of " + r.URL.Path))
	}))
	defer server.Close()

	root := t.TempDir()
	d := NewDownloader(root)

	written, err := d.Fetch(context.Background(), Batch{
		Dir: "some-mod",
		Files: []modrinth.File{
			{URL: server.URL + "/first.jar", Filename: "first.jar"},
			{URL: server.URL + "/second.jar", Filename: "second.jar"},
		},
	}, nil)

	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, filepath.Join(root, "some-mod", "first.jar"), written[0])
	assert.Equal(t, filepath.Join(root, "some-mod", "second.jar"), written[1])
}

func TestDownloader_Fetch_EmptyBatch(t *testing.T) {
	d := NewDownloader(t.TempDir())

	written, err := d.Fetch(context.Background(), Batch{Dir: "empty"}, nil)

	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestDownloader_Fetch_AbortsAtFirstFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	root := t.TempDir()
	d := NewDownloader(root)

	written, err := d.Fetch(context.Background(), Batch{
		Dir: "partial",
		Files: []modrinth.File{
			{URL: server.URL + "/good.jar", Filename: "good.jar"},
			{URL: server.URL + "/broken.jar", Filename: "broken.jar"},
			{URL: server.URL + "/never.jar", Filename: "never.jar"},
		},
	}, nil)

	require.Error(t, err)
	var apiErr *modrinth.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	// The file finished before the failure stays on disk, the rest were
	// never requested.
	require.Len(t, written, 1)
	assert.FileExists(t, filepath.Join(root, "partial", "good.jar"))
	assert.NoFileExists(t, filepath.Join(root, "partial", "never.jar"))
}

func TestDownloader_Fetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	d := NewDownloader(t.TempDir())

	_, err := d.Fetch(context.Background(), Batch{
		Dir: "gone",
		Files: []modrinth.File{
			{URL: server.URL + "/file.jar", Filename: "file.jar"},
		},
	}, nil)

	require.Error(t, err)
	var transportErr *modrinth.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Op, "file.jar")
}

func TestDownloader_Fetch_FSError(t *testing.T) {
	// A regular file where the download root should be makes MkdirAll fail.
	root := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(root, []byte("in the way"), 0644))

	d := NewDownloader(root)

	_, err := d.Fetch(context.Background(), Batch{
		Dir: "sub",
		Files: []modrinth.File{
			{URL: "http://irrelevant.invalid/file.jar", Filename: "file.jar"},
		},
	}, nil)

	require.Error(t, err)
	var fsErr *FSError
	require.ErrorAs(t, err, &fsErr)
	assert.Contains(t, fsErr.Path, "blocked")
}

func TestDownloader_Fetch_SizeFallback(t *testing.T) {
	// Chunked responses carry no Content-Length; the release metadata size
	// is used for the total instead.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.(http.Flusher).Flush()
		_, _ = w.Write([]byte("abcdef"))
	}))
	defer server.Close()

	d := NewDownloader(t.TempDir())

	var lastTotal int64
	_, err := d.Fetch(context.Background(), Batch{
		Dir: "sized",
		Files: []modrinth.File{
			{URL: server.URL + "/file.jar", Filename: "file.jar", Size: 6},
		},
	}, func(name string, received, total int64) {
		lastTotal = total
	})

	require.NoError(t, err)
	assert.Equal(t, int64(6), lastTotal)
}

func TestDownloader_Dir(t *testing.T) {
	d := NewDownloader("/downloads")

	assert.Equal(t, filepath.Join("/downloads", "sodium"), d.Dir("sodium"))
}
