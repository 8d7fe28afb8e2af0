package uploadx

import (
	"github.com/upcraft-io/upcraft/configx"
	"github.com/upcraft-io/upcraft/imagex"
	"github.com/upcraft-io/upcraft/validatex"
)

// HashMode controls how the stored base name is derived.
type HashMode string

const (
	// HashNone keeps the sanitized original stem.
	HashNone HashMode = "none"

	// HashRand derives the name from fresh random entropy.
	HashRand HashMode = "rand"

	// HashFile digests the full file content. The only mode that
	// touches the filesystem.
	HashFile HashMode = "file"

	// HashFileName digests the sanitized stem itself, so identical
	// input names map to identical stored names.
	HashFileName HashMode = "filename"
)

// Wildcard allows every type or extension in an allow-list.
const Wildcard = "*"

// Options configures sanitizing, validation, and save behavior for
// one upload.
type Options struct {
	// HashMode selects name derivation. Empty means HashNone.
	HashMode HashMode `validatex:"oneof=none rand file filename"`

	// HashLength selects the digest algorithm by output length:
	// 8=fnv1a32, 16=fnv1a64, 32=md5, 40=sha1.
	HashLength int `validatex:"oneof=8 16 32 40"`

	// MaxFileSize is a byte ceiling; accepts "512", "2k", "2m", "1g"
	// (base 1024). Empty disables the check.
	MaxFileSize string

	// AllowedTypes is Wildcard or a comma-joined MIME allow-list.
	// Mandatory: an empty allow-list fails validation instead of
	// silently allowing everything.
	AllowedTypes string

	// AllowedExtensions is Wildcard or a comma-joined extension
	// allow-list. Mandatory, like AllowedTypes.
	AllowedExtensions string

	// AllowEmptyExtensions accepts files whose extension cannot be
	// derived from the name or the detected type.
	AllowEmptyExtensions bool

	// GuardOverwrite makes saves fail when the destination already
	// exists. Off by default: re-saving the same name overwrites.
	GuardOverwrite bool

	// ClearSource lets Clear delete the source file without force.
	ClearSource bool

	// Encode carries encoder knobs for image transforms.
	Encode imagex.EncodeOptions
}

// DefaultOptions returns Options with md5 naming and default encoder
// knobs. Allow-lists stay empty on purpose: callers must set them.
func DefaultOptions() Options {
	return Options{
		HashMode:    HashNone,
		HashLength:  32,
		ClearSource: true,
		Encode:      imagex.DefaultEncodeOptions(),
	}
}

// OptionsFromConfig builds Options from a configx view, e.g. from
// UPCRAFT_-prefixed environment variables (upload_hash_mode,
// upload_max_file_size, upload_allowed_types, ...).
func OptionsFromConfig(cfg configx.Config) Options {
	opts := DefaultOptions()

	opts.HashMode = HashMode(cfg.Get("upload_hash_mode").AsStringDefault(string(opts.HashMode)))
	opts.HashLength = cfg.Get("upload_hash_length").AsIntDefault(opts.HashLength)
	opts.MaxFileSize = cfg.Get("upload_max_file_size").AsStringDefault("")
	opts.AllowedTypes = cfg.Get("upload_allowed_types").AsStringDefault("")
	opts.AllowedExtensions = cfg.Get("upload_allowed_extensions").AsStringDefault("")
	opts.AllowEmptyExtensions = cfg.Get("upload_allow_empty_extensions").AsBoolDefault(false)
	opts.GuardOverwrite = cfg.Get("upload_guard_overwrite").AsBoolDefault(false)
	opts.ClearSource = cfg.Get("upload_clear_source").AsBoolDefault(true)
	opts.Encode.JpegQuality = cfg.Get("upload_jpeg_quality").AsIntDefault(imagex.BackendDefault)
	opts.Encode.WebpQuality = cfg.Get("upload_webp_quality").AsIntDefault(imagex.BackendDefault)
	opts.Encode.PngZipLevel = cfg.Get("upload_png_zip_level").AsIntDefault(imagex.BackendDefault)

	return opts
}

// check validates the option struct itself, before any request data is
// looked at.
func (o Options) check() error {
	if o.HashMode == "" {
		o.HashMode = HashNone
	}
	if err := validatex.Validate(o); err != nil {
		return uploadErrors.NewWithCause(ErrInvalidConfig, err)
	}
	return nil
}

// maxSizeBytes parses MaxFileSize. Zero means unlimited.
func (o Options) maxSizeBytes() (int64, error) {
	if o.MaxFileSize == "" {
		return 0, nil
	}
	n, err := configx.ParseSizeBytes(o.MaxFileSize)
	if err != nil {
		return 0, uploadErrors.NewWithCause(ErrInvalidConfig, err).
			WithDetail("max_file_size", o.MaxFileSize)
	}
	return n, nil
}
