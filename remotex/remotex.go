// Package remotex reads remote files over HTTP. One File wraps one
// response stream: open it, inspect the headers, read or save the
// body, close it.
package remotex

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/upcraft-io/upcraft/errx"
	"github.com/upcraft-io/upcraft/fsx"
	"github.com/upcraft-io/upcraft/logx"
)

// Error registry for remotex
var (
	remoteErrors = errx.NewRegistry("REMOTE")

	ErrOpenFailed = remoteErrors.Register("OPEN_FAILED", errx.TypeExternal, 502, "Failed to open remote file")
	ErrBadStatus  = remoteErrors.Register("BAD_STATUS", errx.TypeExternal, 502, "Remote server returned an error status")
	ErrReadFailed = remoteErrors.Register("READ_FAILED", errx.TypeExternal, 502, "Failed to read remote file")
)

// DefaultTimeout bounds the whole fetch, from dial to the last body
// byte.
const DefaultTimeout = 30 * time.Second

// File is an open remote file. It implements io.ReadCloser; the
// caller must Close it on every path.
type File struct {
	url  string
	resp *http.Response
}

// Options tunes how a remote file is opened.
type Options struct {
	// Timeout bounds the whole request. Zero means DefaultTimeout.
	Timeout time.Duration

	// Headers are added to the request, e.g. Authorization.
	Headers map[string]string
}

// Open fetches url and returns the open stream. Any status outside
// 2xx fails with ErrBadStatus.
func Open(ctx context.Context, url string, opts Options) (*File, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, remoteErrors.NewWithCause(ErrOpenFailed, err).WithDetail("url", url)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, remoteErrors.NewWithCause(ErrOpenFailed, err).WithDetail("url", url)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, remoteErrors.New(ErrBadStatus).
			WithDetail("url", url).
			WithDetail("status", resp.StatusCode)
	}

	logx.Debug("opened remote file %s (%s, %d bytes)",
		url, resp.Header.Get("Content-Type"), resp.ContentLength)
	return &File{url: url, resp: resp}, nil
}

// Read reads from the response body.
func (f *File) Read(p []byte) (int, error) {
	return f.resp.Body.Read(p)
}

// Close closes the response body.
func (f *File) Close() error {
	return f.resp.Body.Close()
}

// URL returns the fetched URL.
func (f *File) URL() string {
	return f.url
}

// ContentType returns the Content-Type response header, without
// parameters.
func (f *File) ContentType() string {
	ct := f.resp.Header.Get("Content-Type")
	for i := 0; i < len(ct); i++ {
		if ct[i] == ';' {
			return ct[:i]
		}
	}
	return ct
}

// ContentLength returns the advertised body length, or -1 when
// unknown.
func (f *File) ContentLength() int64 {
	return f.resp.ContentLength
}

// Header returns a response header value.
func (f *File) Header(name string) string {
	return f.resp.Header.Get(name)
}

// ReadAll consumes the rest of the stream into memory.
func (f *File) ReadAll() ([]byte, error) {
	data, err := io.ReadAll(f.resp.Body)
	if err != nil {
		return nil, remoteErrors.NewWithCause(ErrReadFailed, err).WithDetail("url", f.url)
	}
	return data, nil
}

// SaveTo streams the remaining body onto an fsx backend.
func (f *File) SaveTo(ctx context.Context, fs fsx.FileSystem, path string) error {
	if err := fs.WriteFileStream(ctx, path, f.resp.Body); err != nil {
		return err
	}
	return nil
}

// Fetch is the one-shot helper: open, read fully, close.
func Fetch(ctx context.Context, url string, opts Options) ([]byte, error) {
	f, err := Open(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadAll()
}
