// Package mimex resolves MIME types. Detection sniffs magic bytes, so
// the result is authoritative regardless of what a client declared,
// and a process-wide constant table maps between types and extensions.
package mimex

import (
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Detect sniffs the MIME type of a file on disk.
func Detect(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", mimeErrors.NewWithCause(ErrDetectFailed, err).WithDetail("path", path)
	}
	return canonical(mt.String()), nil
}

// DetectReader sniffs the MIME type from a reader. Only the header
// bytes are consumed; callers streaming the same reader afterwards
// must re-open or seek.
func DetectReader(r io.Reader) (string, error) {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return "", mimeErrors.NewWithCause(ErrDetectFailed, err)
	}
	return canonical(mt.String()), nil
}

// DetectBytes sniffs the MIME type of an in-memory buffer.
func DetectBytes(data []byte) string {
	return canonical(mimetype.Detect(data).String())
}

// canonical strips parameters like "; charset=utf-8".
func canonical(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.TrimSpace(strings.ToLower(mimeType))
}

// ExtensionFor returns the canonical extension (without dot) for a
// MIME type.
func ExtensionFor(mimeType string) (string, bool) {
	ext, ok := typeToExtension[canonical(mimeType)]
	return ext, ok
}

// TypeFor returns the MIME type for an extension (with or without a
// leading dot).
func TypeFor(ext string) (string, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	mimeType, ok := extensionToType[ext]
	return mimeType, ok
}
