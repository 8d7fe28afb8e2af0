// Package uploadx accepts uploaded files: it sanitizes their names,
// validates size, content type, and extension against mandatory
// allow-lists, optionally runs image transforms, and stores the result
// on an fsx backend.
package uploadx

import (
	"context"

	"github.com/upcraft-io/upcraft/fsx"
	"github.com/upcraft-io/upcraft/imagex"
	"github.com/upcraft-io/upcraft/logx"
)

type state int

const (
	stateNew state = iota
	stateValidated
	stateStored
	stateCleared
)

// Coordinator runs one upload through validate -> (transform) ->
// save/move -> clear. A coordinator owns its request exclusively and
// is not safe for concurrent use.
type Coordinator struct {
	src  fsx.FileSystem
	dst  fsx.FileSystem
	req  Request
	opts Options

	state       state
	validated   ValidatedUpload
	name        ResolvedName
	transformed []byte
}

// NewCoordinator creates a coordinator reading the source from src and
// storing into dst. Both may be the same backend.
func NewCoordinator(src, dst fsx.FileSystem, req Request, opts Options) *Coordinator {
	return &Coordinator{src: src, dst: dst, req: req, opts: opts}
}

// Validate checks the request and resolves the destination name. It
// runs at most once; later calls are no-ops.
func (c *Coordinator) Validate(ctx context.Context) error {
	switch c.state {
	case stateCleared:
		return uploadErrors.New(ErrAlreadyCleared)
	case stateValidated, stateStored:
		return nil
	}

	validated, err := NewValidator(c.src).Validate(ctx, c.req, c.opts)
	if err != nil {
		return err
	}

	name, err := Sanitize(ctx, c.src, c.req.SourcePath, c.req.DeclaredName, "", c.opts)
	if err != nil {
		return err
	}
	name.Extension = validated.Extension

	c.validated = validated
	c.name = name
	c.state = stateValidated
	logx.Debug("upload %q validated as %s (%s, %d bytes)",
		c.req.DeclaredName, name.FileName(), validated.DetectedType, validated.Size)
	return nil
}

// Result returns the validation outcome. Fails with ErrNotValidated
// before Validate has run.
func (c *Coordinator) Result() (ValidatedUpload, error) {
	if c.state == stateNew {
		return ValidatedUpload{}, uploadErrors.New(ErrNotValidated)
	}
	return c.validated, nil
}

// Name returns the resolved destination name. Fails with
// ErrNotValidated before Validate has run.
func (c *Coordinator) Name() (ResolvedName, error) {
	if c.state == stateNew {
		return ResolvedName{}, uploadErrors.New(ErrNotValidated)
	}
	return c.name, nil
}

// Transform decodes the source image, applies fn to the pipeline, and
// keeps the re-encoded bytes as the content to store. A later call
// decodes the previous output, so transforms chain; fn itself may also
// chain resize and crop on the one pipeline it receives.
func (c *Coordinator) Transform(ctx context.Context, fn func(*imagex.Pipeline) error) error {
	if err := c.ensureValidated(ctx); err != nil {
		return err
	}

	data := c.transformed
	if data == nil {
		var err error
		data, err = c.src.ReadFile(ctx, c.req.SourcePath)
		if err != nil {
			if fsx.IsNotFound(err) {
				return uploadErrors.NewWithCause(ErrSourceNotFound, err).
					WithDetail("source", c.req.SourcePath)
			}
			return err
		}
	}

	p, err := imagex.Decode(data)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := fn(p); err != nil {
		return err
	}

	out, err := p.Encode(c.opts.Encode)
	if err != nil {
		return err
	}
	c.transformed = out
	return nil
}

// Save validates if needed and byte-copies the content to
// destDir/<resolved name>. The source stays untouched.
func (c *Coordinator) Save(ctx context.Context, destDir string) (string, error) {
	if err := c.ensureValidated(ctx); err != nil {
		return "", err
	}
	return c.store(ctx, destDir, c.name, false)
}

// Move is Save followed by a best-effort delete of the source. A
// failed delete is logged, never surfaced: the destination write
// already succeeded.
func (c *Coordinator) Move(ctx context.Context, destDir string) (string, error) {
	if err := c.ensureValidated(ctx); err != nil {
		return "", err
	}
	return c.store(ctx, destDir, c.name, true)
}

// SaveAs stores under an explicit name (plus optional appendix)
// instead of the resolved one. If the new name implies a different
// extension, that extension is re-checked against the allow-list.
func (c *Coordinator) SaveAs(ctx context.Context, destDir, newName, appendix string) (string, error) {
	name, err := c.renameTo(ctx, newName, appendix)
	if err != nil {
		return "", err
	}
	return c.store(ctx, destDir, name, false)
}

// MoveAs is SaveAs followed by the best-effort source delete.
func (c *Coordinator) MoveAs(ctx context.Context, destDir, newName, appendix string) (string, error) {
	name, err := c.renameTo(ctx, newName, appendix)
	if err != nil {
		return "", err
	}
	return c.store(ctx, destDir, name, true)
}

// Clear deletes the spooled source. Without force it respects the
// ClearSource option, so callers can keep a source around for a
// follow-up transform. Deletion failures are logged, not surfaced.
func (c *Coordinator) Clear(ctx context.Context, force bool) error {
	if c.state == stateCleared {
		return nil
	}
	if !force && !c.opts.ClearSource {
		return nil
	}

	if err := c.src.DeleteFile(ctx, c.req.SourcePath); err != nil && !fsx.IsNotFound(err) {
		logx.Warn("clear: could not delete source %s: %v", c.req.SourcePath, err)
	}
	c.transformed = nil
	c.state = stateCleared
	return nil
}

func (c *Coordinator) ensureValidated(ctx context.Context) error {
	if c.state == stateNew {
		return c.Validate(ctx)
	}
	if c.state == stateCleared {
		return uploadErrors.New(ErrAlreadyCleared)
	}
	return nil
}

func (c *Coordinator) renameTo(ctx context.Context, newName, appendix string) (ResolvedName, error) {
	if err := c.ensureValidated(ctx); err != nil {
		return ResolvedName{}, err
	}

	name, err := Sanitize(ctx, c.src, c.req.SourcePath, newName, appendix, c.opts)
	if err != nil {
		return ResolvedName{}, err
	}

	name.Extension = c.validated.Extension
	if ext := extensionOf(newName); ext != "" && ext != c.validated.Extension {
		if !listAllows(c.opts.AllowedExtensions, ext) {
			return ResolvedName{}, uploadErrors.New(ErrExtensionNotAllowed).
				WithDetail("extension", ext)
		}
		name.Extension = ext
	}
	return name, nil
}

func (c *Coordinator) store(ctx context.Context, destDir string, name ResolvedName, move bool) (string, error) {
	destPath := c.dst.Join(destDir, name.FileName())

	if c.opts.GuardOverwrite {
		exists, err := c.dst.Exists(ctx, destPath)
		if err != nil {
			return "", err
		}
		if exists {
			return "", uploadErrors.New(ErrDestinationExists).
				WithDetail("destination", destPath)
		}
	}

	if c.transformed != nil {
		if err := c.dst.WriteFile(ctx, destPath, c.transformed); err != nil {
			return "", err
		}
	} else {
		if err := fsx.Copy(ctx, c.src, c.req.SourcePath, c.dst, destPath); err != nil {
			if fsx.IsNotFound(err) {
				return "", uploadErrors.NewWithCause(ErrSourceNotFound, err).
					WithDetail("source", c.req.SourcePath)
			}
			return "", err
		}
	}

	if move {
		if err := c.src.DeleteFile(ctx, c.req.SourcePath); err != nil && !fsx.IsNotFound(err) {
			logx.Warn("move: could not delete source %s: %v", c.req.SourcePath, err)
		}
	}

	c.state = stateStored
	logx.Info("upload stored at %s", destPath)
	return destPath, nil
}
