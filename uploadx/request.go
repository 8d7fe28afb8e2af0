package uploadx

import (
	"context"
	"mime/multipart"
	"path"

	"github.com/google/uuid"

	"github.com/upcraft-io/upcraft/fsx"
)

// Request describes one upload source. Immutable once constructed; a
// coordinator consumes it exactly once.
type Request struct {
	// SourcePath is where the uploaded bytes already live (a spool
	// file, a temp path).
	SourcePath string

	// DeclaredName is the client-supplied filename. Only its stem and
	// extension are trusted, never its path.
	DeclaredName string

	// DeclaredSize is the size the client reported, in bytes.
	DeclaredSize int64

	// MimeHint is the client-declared content type. Informational
	// only: validation sniffs the real type from content.
	MimeHint string
}

// SpoolMultipart copies a parsed multipart file part onto fs under
// spoolDir and returns the Request describing it. The spool name is
// random so concurrent uploads of the same filename never collide.
func SpoolMultipart(ctx context.Context, fs fsx.FileSystem, spoolDir string, fh *multipart.FileHeader) (Request, error) {
	f, err := fh.Open()
	if err != nil {
		return Request{}, uploadErrors.NewWithCause(ErrSourceNotFound, err).
			WithDetail("name", fh.Filename)
	}
	defer f.Close()

	spoolName := uuid.NewString() + path.Ext(fh.Filename)
	spoolPath := fs.Join(spoolDir, spoolName)
	if err := fs.WriteFileStream(ctx, spoolPath, f); err != nil {
		return Request{}, err
	}

	return Request{
		SourcePath:   spoolPath,
		DeclaredName: fh.Filename,
		DeclaredSize: fh.Size,
		MimeHint:     fh.Header.Get("Content-Type"),
	}, nil
}
