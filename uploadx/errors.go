package uploadx

import "github.com/upcraft-io/upcraft/errx"

// Error registry for uploadx
var (
	uploadErrors = errx.NewRegistry("UPLOAD")

	ErrInvalidConfig       = uploadErrors.Register("INVALID_CONFIG", errx.TypeValidation, 500, "Invalid upload configuration")
	ErrSizeExceeded        = uploadErrors.Register("SIZE_EXCEEDED", errx.TypeValidation, 413, "File exceeds the configured size limit")
	ErrTypeNotAllowed      = uploadErrors.Register("TYPE_NOT_ALLOWED", errx.TypeValidation, 415, "File type is not allowed")
	ErrExtensionNotAllowed = uploadErrors.Register("EXTENSION_NOT_ALLOWED", errx.TypeValidation, 415, "File extension is not allowed")
	ErrEmptyExtension      = uploadErrors.Register("EMPTY_EXTENSION", errx.TypeValidation, 400, "File has no extension")
	ErrSourceNotFound      = uploadErrors.Register("SOURCE_NOT_FOUND", errx.TypeNotFound, 404, "Upload source file not found")
	ErrDestinationExists   = uploadErrors.Register("DESTINATION_EXISTS", errx.TypeConflict, 409, "Destination file already exists")
	ErrNotValidated        = uploadErrors.Register("NOT_VALIDATED", errx.TypeInternal, 500, "Upload has not been validated")
	ErrAlreadyCleared      = uploadErrors.Register("ALREADY_CLEARED", errx.TypeInternal, 500, "Upload source already cleared")
)

// Helper functions
func IsSizeExceeded(err error) bool {
	return errx.IsCode(err, ErrSizeExceeded)
}

func IsTypeNotAllowed(err error) bool {
	return errx.IsCode(err, ErrTypeNotAllowed)
}

func IsExtensionNotAllowed(err error) bool {
	return errx.IsCode(err, ErrExtensionNotAllowed)
}

func IsInvalidConfig(err error) bool {
	return errx.IsCode(err, ErrInvalidConfig)
}
