package imagex

import "github.com/upcraft-io/upcraft/errx"

// Error registry for imagex
var (
	imageErrors = errx.NewRegistry("IMG")

	ErrDecodeFailed      = imageErrors.Register("DECODE_FAILED", errx.TypeBadRequest, 400, "Failed to decode image")
	ErrEncodeFailed      = imageErrors.Register("ENCODE_FAILED", errx.TypeInternal, 500, "Failed to encode image")
	ErrResampleFailed    = imageErrors.Register("RESAMPLE_FAILED", errx.TypeInternal, 500, "Image resample failed")
	ErrUnsupportedFormat = imageErrors.Register("UNSUPPORTED_FORMAT", errx.TypeBadRequest, 400, "Unsupported image format")
	ErrInvalidConfig     = imageErrors.Register("INVALID_CONFIG", errx.TypeValidation, 400, "Invalid image options")
	ErrClosed            = imageErrors.Register("CLOSED", errx.TypeInternal, 500, "Image pipeline already closed")
)

// Helper functions
func IsUnsupportedFormat(err error) bool {
	return errx.IsCode(err, ErrUnsupportedFormat)
}

func IsDecodeFailed(err error) bool {
	return errx.IsCode(err, ErrDecodeFailed)
}
