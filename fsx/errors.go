package fsx

import "github.com/upcraft-io/upcraft/errx"

// Error registry for fsx
var (
	fsErrors = errx.NewRegistry("FS")

	ErrNotFound      = fsErrors.Register("NOT_FOUND", errx.TypeNotFound, 404, "File not found")
	ErrAlreadyExists = fsErrors.Register("ALREADY_EXISTS", errx.TypeConflict, 409, "File already exists")
	ErrMkdirFailed   = fsErrors.Register("MKDIR_FAILED", errx.TypeSystem, 500, "Failed to create directory")
	ErrIOFailed      = fsErrors.Register("IO_FAILED", errx.TypeSystem, 500, "Filesystem operation failed")
	ErrNotDirectory  = fsErrors.Register("NOT_DIRECTORY", errx.TypeBadRequest, 400, "Path is not a directory")
)

// Helper functions
func IsNotFound(err error) bool {
	return errx.IsCode(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errx.IsCode(err, ErrAlreadyExists)
}

func IsIOFailed(err error) bool {
	return errx.IsCode(err, ErrIOFailed)
}
