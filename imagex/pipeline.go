// Package imagex computes resize/crop geometry and runs raster
// transforms: decode, resample onto a fresh canvas, encode with
// per-format quality knobs.
package imagex

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/upcraft-io/upcraft/logx"
	"github.com/upcraft-io/upcraft/validatex"
)

// BackendDefault tells the encoder to use its own default for a knob.
const BackendDefault = -1

// ResizeOptions controls ResizeDimensions behavior inside the
// pipeline.
type ResizeOptions struct {
	// Proportional fits the source inside the target box, preserving
	// aspect ratio.
	Proportional bool

	// ClampToSource never upscales past the original dimensions.
	ClampToSource bool
}

// CropOptions controls crop geometry.
type CropOptions struct {
	// Proportional derives the crop window from half of
	// max(width, height) instead of the literal target size.
	Proportional bool

	// Origin places the crop window explicitly instead of centering
	// it. Used verbatim, without bounds clamping.
	Origin *Point
}

// EncodeOptions carries per-format encoder tuning. BackendDefault (-1)
// leaves the knob at the encoder's default.
type EncodeOptions struct {
	JpegQuality int `validatex:"min=-1,max=100"`
	WebpQuality int `validatex:"min=-1,max=100"`
	PngZipLevel int `validatex:"min=-1,max=9"`
}

// DefaultEncodeOptions returns options with every knob on
// BackendDefault.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		JpegQuality: BackendDefault,
		WebpQuality: BackendDefault,
		PngZipLevel: BackendDefault,
	}
}

// Pipeline holds a decoded raster image and applies chained
// transforms: each resize or crop replaces the current canvas, so the
// most recent destination is the next operation's source. Pipelines
// are not safe for concurrent use.
type Pipeline struct {
	img    image.Image
	format Format
	closed bool
}

// Decode sniffs the format of raw image bytes and decodes them into a
// new pipeline.
func Decode(data []byte) (*Pipeline, error) {
	format, err := sniffFormat(data)
	if err != nil {
		return nil, err
	}

	img, err := decodeImage(data, format)
	if err != nil {
		return nil, imageErrors.NewWithCause(ErrDecodeFailed, err).
			WithDetail("format", string(format))
	}

	return &Pipeline{img: img, format: format}, nil
}

// Close releases the pipeline's canvases. Further operations fail.
// Calling Close more than once is a no-op.
func (p *Pipeline) Close() {
	p.img = nil
	p.closed = true
}

// Format returns the source encoding of the pipeline.
func (p *Pipeline) Format() Format {
	return p.format
}

// Dimensions returns the current canvas size.
func (p *Pipeline) Dimensions() Dimensions {
	if p.closed {
		return Dimensions{}
	}
	b := p.img.Bounds()
	return Dimensions{Width: b.Dx(), Height: b.Dy()}
}

// Resize resamples the current canvas to the computed target size.
// Either target may be Auto (-1) to derive it from the other.
func (p *Pipeline) Resize(targetWidth, targetHeight int, opts ResizeOptions) error {
	if p.closed {
		return imageErrors.New(ErrClosed)
	}

	target := ResizeDimensions(p.Dimensions(), targetWidth, targetHeight,
		opts.Proportional, opts.ClampToSource)
	logx.Debug("resize %dx%d -> %dx%d", p.Dimensions().Width, p.Dimensions().Height,
		target.Width, target.Height)

	dst, err := p.resample(p.img.Bounds(), target)
	if err != nil {
		return err
	}
	p.img = dst
	return nil
}

// Crop samples the computed crop window of the current canvas onto a
// destination of the requested size. A nil origin in opts centers the
// window.
func (p *Pipeline) Crop(width, height int, opts CropOptions) error {
	if p.closed {
		return imageErrors.New(ErrClosed)
	}

	plan := CropRegion(p.Dimensions(), width, height, opts.Proportional, opts.Origin)
	window := image.Rect(plan.Window.X, plan.Window.Y,
		plan.Window.X+plan.Window.Width, plan.Window.Y+plan.Window.Height)
	logx.Debug("crop window %v -> canvas %dx%d", window, plan.Canvas.Width, plan.Canvas.Height)

	dst, err := p.resample(window, plan.Canvas)
	if err != nil {
		return err
	}
	p.img = dst
	return nil
}

// resample maps the srcRect region of the current canvas onto a fresh
// canvas of the target size with a Catmull-Rom scaler. The destination
// starts fully transparent and pixels are written with Src, so alpha
// formats never pick up compositing artifacts. On failure the current
// canvas stays in place.
func (p *Pipeline) resample(srcRect image.Rectangle, target Dimensions) (image.Image, error) {
	if target.Width <= 0 || target.Height <= 0 {
		return nil, imageErrors.New(ErrResampleFailed).
			WithDetail("width", target.Width).
			WithDetail("height", target.Height)
	}
	if srcRect.Dx() <= 0 || srcRect.Dy() <= 0 {
		return nil, imageErrors.New(ErrResampleFailed).
			WithDetail("window", srcRect.String())
	}

	dst := image.NewRGBA(image.Rect(0, 0, target.Width, target.Height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), p.img, srcRect, xdraw.Src, nil)
	return dst, nil
}

// Encode serializes the current canvas in its source format.
func (p *Pipeline) Encode(opts EncodeOptions) ([]byte, error) {
	return p.EncodeAs(p.format, opts)
}

// EncodeAs serializes the current canvas in an explicit format,
// converting between formats when it differs from the source.
func (p *Pipeline) EncodeAs(format Format, opts EncodeOptions) ([]byte, error) {
	if p.closed {
		return nil, imageErrors.New(ErrClosed)
	}
	if err := validatex.Validate(opts); err != nil {
		return nil, imageErrors.NewWithCause(ErrInvalidConfig, err)
	}
	return encodeImage(p.img, format, opts)
}
