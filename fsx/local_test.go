package fsx

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalReadWrite(t *testing.T) {
	ctx := context.Background()
	disk := NewLocal()
	path := disk.Join(t.TempDir(), "nested", "dir", "file.txt")

	require.NoError(t, disk.WriteFile(ctx, path, []byte("hello")))

	data, err := disk.ReadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	// overwrite replaces content
	require.NoError(t, disk.WriteFile(ctx, path, []byte("bye")))
	data, err = disk.ReadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("bye"), data)
}

func TestLocalReadMissing(t *testing.T) {
	disk := NewLocal()
	_, err := disk.ReadFile(context.Background(), disk.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestLocalStreamRoundTrip(t *testing.T) {
	ctx := context.Background()
	disk := NewLocal()
	path := disk.Join(t.TempDir(), "stream.bin")

	require.NoError(t, disk.WriteFileStream(ctx, path, strings.NewReader("streamed")))

	r, err := disk.ReadFileStream(ctx, path)
	require.NoError(t, err)
	defer r.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	assert.Equal(t, "streamed", buf.String())
}

func TestLocalStat(t *testing.T) {
	ctx := context.Background()
	disk := NewLocal()
	dir := t.TempDir()
	path := disk.Join(dir, "info.txt")
	require.NoError(t, disk.WriteFile(ctx, path, []byte("12345")))

	info, err := disk.Stat(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "info.txt", info.Name)
	assert.Equal(t, int64(5), info.Size)
	assert.False(t, info.IsDir)

	dirInfo, err := disk.Stat(ctx, dir)
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir)
}

func TestLocalList(t *testing.T) {
	ctx := context.Background()
	disk := NewLocal()
	dir := t.TempDir()
	require.NoError(t, disk.WriteFile(ctx, disk.Join(dir, "a.txt"), []byte("a")))
	require.NoError(t, disk.WriteFile(ctx, disk.Join(dir, "b.txt"), []byte("bb")))
	require.NoError(t, disk.CreateDir(ctx, disk.Join(dir, "sub")))

	infos, err := disk.List(ctx, dir)
	require.NoError(t, err)
	require.Len(t, infos, 3)

	names := make(map[string]FileInfo, len(infos))
	for _, info := range infos {
		names[info.Name] = info
	}
	assert.Equal(t, int64(1), names["a.txt"].Size)
	assert.Equal(t, int64(2), names["b.txt"].Size)
	assert.True(t, names["sub"].IsDir)
}

func TestLocalListOnFileFails(t *testing.T) {
	ctx := context.Background()
	disk := NewLocal()
	path := disk.Join(t.TempDir(), "plain.txt")
	require.NoError(t, disk.WriteFile(ctx, path, []byte("x")))

	_, err := disk.List(ctx, path)
	require.Error(t, err)
}

func TestLocalDeleteAndExists(t *testing.T) {
	ctx := context.Background()
	disk := NewLocal()
	path := disk.Join(t.TempDir(), "gone.txt")
	require.NoError(t, disk.WriteFile(ctx, path, []byte("x")))

	exists, err := disk.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, disk.DeleteFile(ctx, path))

	exists, err = disk.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	err = disk.DeleteFile(ctx, path)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestLocalRename(t *testing.T) {
	ctx := context.Background()
	disk := NewLocal()
	dir := t.TempDir()
	oldPath := disk.Join(dir, "old.txt")
	newPath := disk.Join(dir, "moved", "new.txt")
	require.NoError(t, disk.WriteFile(ctx, oldPath, []byte("content")))

	require.NoError(t, disk.Rename(ctx, oldPath, newPath))

	exists, err := disk.Exists(ctx, oldPath)
	require.NoError(t, err)
	assert.False(t, exists)

	data, err := disk.ReadFile(ctx, newPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestCopyAcrossBackends(t *testing.T) {
	ctx := context.Background()
	disk := NewLocal()
	srcPath := disk.Join(t.TempDir(), "src.txt")
	dstPath := disk.Join(t.TempDir(), "dst.txt")
	require.NoError(t, disk.WriteFile(ctx, srcPath, []byte("payload")))

	require.NoError(t, Copy(ctx, disk, srcPath, disk, dstPath))

	data, err := disk.ReadFile(ctx, dstPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	// source is untouched
	data, err = disk.ReadFile(ctx, srcPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestCopyMissingSource(t *testing.T) {
	ctx := context.Background()
	disk := NewLocal()
	err := Copy(ctx, disk, disk.Join(t.TempDir(), "nope"), disk, disk.Join(t.TempDir(), "out"))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
