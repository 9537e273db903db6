package noaa

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Ensure(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Write([]byte("EVTYPE,FATALITIES\n"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "data", "StormData.csv.bz2")
	d := NewDownloader(server.URL, path, 5*time.Second, false, slog.Default())

	got, err := d.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "EVTYPE,FATALITIES\n", string(data))
	assert.Equal(t, int64(1), hits.Load())

	// A present file short-circuits the fetch.
	_, err = d.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())
}

func TestDownloader_Ensure_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "StormData.csv.bz2")
	d := NewDownloader(server.URL, path, 5*time.Second, false, slog.Default())

	_, err := d.Ensure(context.Background())
	require.Error(t, err)
	assert.NoFileExists(t, path)
	assert.NoFileExists(t, path+".tmp")
}

func TestDownloader_Ensure_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "StormData.csv.bz2")
	d := NewDownloader(server.URL, path, 5*time.Second, false, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Ensure(ctx)
	assert.Error(t, err)
}
