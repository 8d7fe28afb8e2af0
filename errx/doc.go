/*
Package errx is the structured error foundation for upcraft. Every
package declares its failure modes in an errors.go through a Registry,
so callers can branch on stable codes instead of matching message text.

# Registries

	var uploadErrors = errx.NewRegistry("UPLOAD")

	ErrSizeExceeded = uploadErrors.Register("SIZE_EXCEEDED",
		errx.TypeValidation, http.StatusRequestEntityTooLarge,
		"File exceeds the configured size limit")

	return uploadErrors.New(ErrSizeExceeded).
		WithDetail("limit_bytes", limit).
		WithDetail("size_bytes", size)

# Checking

	if errx.IsCode(err, uploadx.ErrSizeExceeded) {
		// reject the request
	}
	if errx.IsType(err, errx.TypeValidation) {
		// any validation failure
	}

Underlying system errors stay reachable through errors.Is/errors.As via
the cause chain set with WithCause or Wrap.

# HTTP

Errors serialize to JSON and know their HTTP status, for both net/http
(ToHTTP) and Fiber (ToFiber) handlers.
*/
package errx
