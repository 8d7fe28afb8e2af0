package fsx

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// Local is a FileSystem backed by the local disk. Paths are used as
// given, so callers decide whether they are absolute or relative.
type Local struct{}

// NewLocal creates a local filesystem backend.
func NewLocal() *Local {
	return &Local{}
}

// ReadFile reads the whole file into memory.
func (l *Local) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, translateOSError(err, path)
	}
	return data, nil
}

// ReadFileStream opens the file for streaming reads.
func (l *Local) ReadFileStream(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, translateOSError(err, path)
	}
	return f, nil
}

// Stat probes the file with an explicit stat call instead of relying
// on open failures.
func (l *Local) Stat(_ context.Context, path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, translateOSError(err, path)
	}
	return FileInfo{
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}, nil
}

// List returns the entries of a directory, non-recursively.
func (l *Local) List(_ context.Context, path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, translateOSError(err, path)
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, translateOSError(err, filepath.Join(path, entry.Name()))
		}
		infos = append(infos, FileInfo{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			IsDir:   entry.IsDir(),
		})
	}
	return infos, nil
}

// WriteFile writes data, creating parent directories as needed.
// Pre-existing files are overwritten.
func (l *Local) WriteFile(_ context.Context, path string, data []byte) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return translateOSError(err, path)
	}
	return nil
}

// WriteFileStream copies the reader into the file.
func (l *Local) WriteFileStream(_ context.Context, path string, r io.Reader) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return translateOSError(err, path)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path) // no partial destination on failure
		return translateOSError(err, path)
	}
	if err := f.Close(); err != nil {
		return translateOSError(err, path)
	}
	return nil
}

// CreateDir creates the directory and any missing parents.
func (l *Local) CreateDir(_ context.Context, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fsErrors.NewWithCause(ErrMkdirFailed, err).WithDetail("path", path)
	}
	return nil
}

// DeleteFile removes a single file.
func (l *Local) DeleteFile(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		return translateOSError(err, path)
	}
	return nil
}

// Rename moves a file within the local filesystem.
func (l *Local) Rename(_ context.Context, oldPath, newPath string) error {
	if err := ensureParentDir(newPath); err != nil {
		return err
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return translateOSError(err, oldPath)
	}
	return nil
}

// Join joins path elements with the OS separator.
func (l *Local) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Exists reports whether the path exists.
func (l *Local) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, translateOSError(err, path)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fsErrors.NewWithCause(ErrMkdirFailed, err).WithDetail("path", dir)
	}
	return nil
}

// translateOSError maps os errors to the fsx registry, keeping the
// system error as the cause.
func translateOSError(err error, path string) error {
	if os.IsNotExist(err) {
		return fsErrors.NewWithCause(ErrNotFound, err).WithDetail("path", path)
	}
	if os.IsExist(err) {
		return fsErrors.NewWithCause(ErrAlreadyExists, err).WithDetail("path", path)
	}
	if errors.Is(err, syscall.ENOTDIR) {
		return fsErrors.NewWithCause(ErrNotDirectory, err).WithDetail("path", path)
	}
	return fsErrors.NewWithCause(ErrIOFailed, err).WithDetail("path", path)
}
