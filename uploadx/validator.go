package uploadx

import (
	"context"
	"path"
	"strings"

	"github.com/upcraft-io/upcraft/fsx"
	"github.com/upcraft-io/upcraft/logx"
	"github.com/upcraft-io/upcraft/mimex"
)

// ValidatedUpload is the outcome of a successful validation pass.
type ValidatedUpload struct {
	// DetectedType is the sniffed MIME type. Authoritative: the
	// client-declared type is never trusted.
	DetectedType string

	// Extension is the resolved extension without dot; empty only
	// when AllowEmptyExtensions permitted it.
	Extension string

	// Size is the verified size in bytes.
	Size int64
}

// Validator checks upload requests against Options. The zero-cost
// struct just carries the source filesystem used for sniffing.
type Validator struct {
	src fsx.FileSystem
}

// NewValidator creates a Validator reading sources from src.
func NewValidator(src fsx.FileSystem) *Validator {
	return &Validator{src: src}
}

// Validate runs the full pipeline: config check, size ceiling, content
// sniffing, type allow-list, extension resolution and allow-list.
// Failures are raised at the point of detection and leave nothing
// behind.
func (v *Validator) Validate(ctx context.Context, req Request, opts Options) (ValidatedUpload, error) {
	if err := opts.check(); err != nil {
		return ValidatedUpload{}, err
	}

	// The allow-lists are mandatory. There is deliberately no
	// "allow everything by omission" path.
	if strings.TrimSpace(opts.AllowedTypes) == "" {
		return ValidatedUpload{}, uploadErrors.NewWithMessage(ErrInvalidConfig,
			"AllowedTypes must be set (use \"*\" to allow all)")
	}
	if strings.TrimSpace(opts.AllowedExtensions) == "" {
		return ValidatedUpload{}, uploadErrors.NewWithMessage(ErrInvalidConfig,
			"AllowedExtensions must be set (use \"*\" to allow all)")
	}

	limit, err := opts.maxSizeBytes()
	if err != nil {
		return ValidatedUpload{}, err
	}
	if limit > 0 && req.DeclaredSize > limit {
		return ValidatedUpload{}, uploadErrors.New(ErrSizeExceeded).
			WithDetail("size_bytes", req.DeclaredSize).
			WithDetail("limit_bytes", limit)
	}

	detected, err := v.sniffType(ctx, req.SourcePath)
	if err != nil {
		return ValidatedUpload{}, err
	}
	if req.MimeHint != "" && req.MimeHint != detected {
		logx.Debug("upload %q: declared type %s, detected %s",
			req.DeclaredName, req.MimeHint, detected)
	}

	if !listAllows(opts.AllowedTypes, detected) {
		return ValidatedUpload{}, uploadErrors.New(ErrTypeNotAllowed).
			WithDetail("detected_type", detected)
	}

	ext := extensionOf(req.DeclaredName)
	if ext == "" {
		// fall back to the detected type's canonical extension
		ext, _ = mimex.ExtensionFor(detected)
	}

	if ext == "" {
		if !opts.AllowEmptyExtensions {
			return ValidatedUpload{}, uploadErrors.New(ErrEmptyExtension).
				WithDetail("name", req.DeclaredName)
		}
	} else if !listAllows(opts.AllowedExtensions, ext) {
		return ValidatedUpload{}, uploadErrors.New(ErrExtensionNotAllowed).
			WithDetail("extension", ext)
	}

	return ValidatedUpload{
		DetectedType: detected,
		Extension:    ext,
		Size:         req.DeclaredSize,
	}, nil
}

func (v *Validator) sniffType(ctx context.Context, sourcePath string) (string, error) {
	r, err := v.src.ReadFileStream(ctx, sourcePath)
	if err != nil {
		if fsx.IsNotFound(err) {
			return "", uploadErrors.NewWithCause(ErrSourceNotFound, err).
				WithDetail("source", sourcePath)
		}
		return "", err
	}
	defer r.Close()

	return mimex.DetectReader(r)
}

// listAllows checks a comma-joined allow-list, honoring the wildcard.
// Matching is case-insensitive.
func listAllows(allowList, candidate string) bool {
	allowList = strings.TrimSpace(allowList)
	if allowList == Wildcard {
		return true
	}
	candidate = strings.ToLower(candidate)
	for _, entry := range strings.Split(allowList, ",") {
		if strings.ToLower(strings.TrimSpace(entry)) == candidate {
			return true
		}
	}
	return false
}

// extensionOf extracts the lower-cased extension (without dot) from a
// declared filename.
func extensionOf(name string) string {
	ext := strings.TrimPrefix(path.Ext(strings.ReplaceAll(name, "\\", "/")), ".")
	return strings.ToLower(ext)
}
