package mimex

import "github.com/upcraft-io/upcraft/errx"

// Error registry for mimex
var (
	mimeErrors = errx.NewRegistry("MIME")

	ErrDetectFailed = mimeErrors.Register("DETECT_FAILED", errx.TypeSystem, 500, "Failed to detect MIME type")
)
