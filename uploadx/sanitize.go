package uploadx

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/fnv"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/upcraft-io/upcraft/fsx"
)

// ResolvedName is the sanitized base name of an upload. The extension
// is resolved separately by validation.
type ResolvedName struct {
	BaseName  string
	Extension string
}

// FileName joins base name and extension.
func (n ResolvedName) FileName() string {
	if n.Extension == "" {
		return n.BaseName
	}
	return n.BaseName + "." + n.Extension
}

// maxStemBytes caps the sanitized stem before hashing or appendixing.
const maxStemBytes = 250

// Sanitize turns a raw client filename into a safe base name.
//
// The path and extension are stripped, every character outside
// [a-z0-9-] becomes '-', the result is lower-cased, trimmed of
// leading/trailing dashes, and byte-truncated at 250. Hash modes then
// replace the stem with a digest; HashFile is the only mode that reads
// the source, through src. A non-empty appendix is sanitized the same
// way and appended as "-appendix".
func Sanitize(ctx context.Context, src fsx.FileSystem, sourcePath, rawName, appendix string, opts Options) (ResolvedName, error) {
	if err := opts.check(); err != nil {
		return ResolvedName{}, err
	}

	stem := sanitizeStem(rawName)

	switch normalizeHashMode(opts.HashMode) {
	case HashNone:
		// keep the sanitized stem
	case HashRand:
		digest, err := digestString(uuid.NewString()+fmt.Sprint(time.Now().UnixNano()), opts.HashLength)
		if err != nil {
			return ResolvedName{}, err
		}
		stem = digest
	case HashFile:
		if src == nil {
			return ResolvedName{}, uploadErrors.NewWithMessage(ErrInvalidConfig,
				"hash mode \"file\" needs a source filesystem")
		}
		data, err := src.ReadFile(ctx, sourcePath)
		if err != nil {
			if fsx.IsNotFound(err) {
				return ResolvedName{}, uploadErrors.NewWithCause(ErrSourceNotFound, err).
					WithDetail("source", sourcePath)
			}
			return ResolvedName{}, err
		}
		digest, err := digestBytes(data, opts.HashLength)
		if err != nil {
			return ResolvedName{}, err
		}
		stem = digest
	case HashFileName:
		digest, err := digestString(stem, opts.HashLength)
		if err != nil {
			return ResolvedName{}, err
		}
		stem = digest
	default:
		return ResolvedName{}, uploadErrors.NewWithMessage(ErrInvalidConfig,
			fmt.Sprintf("unknown hash mode %q", opts.HashMode))
	}

	if appendix != "" {
		stem += "-" + sanitizeStem(appendix)
	}

	return ResolvedName{BaseName: stem}, nil
}

// sanitizeStem applies the character policy to a raw name: path and
// extension stripped, lower-cased, [^a-z0-9-] replaced with '-',
// dashes trimmed, 250-byte cap. Idempotent on already-clean stems.
func sanitizeStem(rawName string) string {
	// Client names may carry either separator.
	rawName = strings.ReplaceAll(rawName, "\\", "/")
	base := path.Base(rawName)
	if base == "." || base == "/" {
		base = ""
	}

	stem := strings.TrimSuffix(base, path.Ext(base))
	stem = strings.ToLower(stem)

	var b strings.Builder
	b.Grow(len(stem))
	for _, r := range stem {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > maxStemBytes {
		out = strings.Trim(out[:maxStemBytes], "-")
	}
	return out
}

// digestAlgos maps output hex length to the digest constructor.
var digestAlgos = map[int]func() hash.Hash{
	8:  func() hash.Hash { return fnv.New32a() },
	16: func() hash.Hash { return fnv.New64a() },
	32: md5.New,
	40: sha1.New,
}

func digestBytes(data []byte, hashLength int) (string, error) {
	newHash, ok := digestAlgos[hashLength]
	if !ok {
		return "", uploadErrors.NewWithMessage(ErrInvalidConfig,
			fmt.Sprintf("unsupported hash length %d (want 8, 16, 32, or 40)", hashLength))
	}
	h := newHash()
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func digestString(s string, hashLength int) (string, error) {
	return digestBytes([]byte(s), hashLength)
}

func normalizeHashMode(mode HashMode) HashMode {
	if mode == "" {
		return HashNone
	}
	return mode
}
