package mimex

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngData(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestDetectBytes(t *testing.T) {
	assert.Equal(t, "image/png", DetectBytes(pngData(t)))
	assert.Equal(t, "application/octet-stream", DetectBytes([]byte{0x01, 0x02, 0x03}))
}

func TestDetectBytesStripsCharset(t *testing.T) {
	// text sniffs with a charset parameter, which canonical() removes
	got := DetectBytes([]byte("plain old text"))
	assert.Equal(t, "text/plain", got)
	assert.NotContains(t, got, ";")
}

func TestDetectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	require.NoError(t, os.WriteFile(path, pngData(t), 0o644))

	got, err := Detect(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", got)
}

func TestDetectFileMissing(t *testing.T) {
	_, err := Detect(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestDetectReader(t *testing.T) {
	got, err := DetectReader(bytes.NewReader(pngData(t)))
	require.NoError(t, err)
	assert.Equal(t, "image/png", got)

	got, err = DetectReader(strings.NewReader("just some text"))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", got)
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		mimeType string
		want     string
		ok       bool
	}{
		{"image/png", "png", true},
		{"image/jpeg", "jpg", true},
		{"IMAGE/PNG", "png", true},
		{"image/png; charset=binary", "png", true},
		{"application/octet-stream", "bin", true},
		{"application/pdf", "pdf", true},
		{"made/up", "", false},
	}

	for _, tt := range tests {
		got, ok := ExtensionFor(tt.mimeType)
		assert.Equal(t, tt.ok, ok, tt.mimeType)
		assert.Equal(t, tt.want, got, tt.mimeType)
	}
}

func TestTypeFor(t *testing.T) {
	tests := []struct {
		ext  string
		want string
		ok   bool
	}{
		{"png", "image/png", true},
		{".png", "image/png", true},
		{"JPG", "image/jpeg", true},
		{"jpeg", "image/jpeg", true},
		{"webp", "image/webp", true},
		{"zzz", "", false},
	}

	for _, tt := range tests {
		got, ok := TypeFor(tt.ext)
		assert.Equal(t, tt.ok, ok, tt.ext)
		assert.Equal(t, tt.want, got, tt.ext)
	}
}

func TestTableRoundTrip(t *testing.T) {
	// every canonical extension maps back to a type whose canonical
	// extension is itself, so alias types still round-trip
	for mimeType, ext := range typeToExtension {
		back, ok := extensionToType[ext]
		require.True(t, ok, "extension %q (from %q) has no reverse mapping", ext, mimeType)
		assert.Equal(t, ext, typeToExtension[back], "extension %q", ext)
	}
}
