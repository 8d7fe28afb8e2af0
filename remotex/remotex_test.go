package remotex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upcraft-io/upcraft/errx"
	"github.com/upcraft-io/upcraft/fsx"
)

func TestOpenAndRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Custom", "yes")
		w.Write([]byte("remote payload"))
	}))
	defer srv.Close()

	f, err := Open(context.Background(), srv.URL+"/file.txt", Options{})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, srv.URL+"/file.txt", f.URL())
	assert.Equal(t, "text/plain", f.ContentType())
	assert.Equal(t, int64(len("remote payload")), f.ContentLength())
	assert.Equal(t, "yes", f.Header("X-Custom"))

	data, err := f.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []byte("remote payload"), data)
}

func TestOpenBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Open(context.Background(), srv.URL, Options{})
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrBadStatus))
}

func TestOpenConnectionRefused(t *testing.T) {
	// a closed server port fails at the transport level
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := Open(context.Background(), url, Options{})
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrOpenFailed))
}

func TestOpenSendsHeaders(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	f, err := Open(context.Background(), srv.URL, Options{
		Headers: map[string]string{"Authorization": "Bearer token123"},
	})
	require.NoError(t, err)
	f.Close()

	assert.Equal(t, "Bearer token123", gotAuth)
}

func TestSaveTo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("save me"))
	}))
	defer srv.Close()

	ctx := context.Background()
	f, err := Open(ctx, srv.URL, Options{})
	require.NoError(t, err)
	defer f.Close()

	disk := fsx.NewLocal()
	dest := disk.Join(t.TempDir(), "saved.bin")
	require.NoError(t, f.SaveTo(ctx, disk, dest))

	data, err := disk.ReadFile(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("save me"), data)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("one shot"))
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, []byte("one shot"), data)
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("never seen"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch(ctx, srv.URL, Options{})
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrOpenFailed))
}
