package imagex

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upcraft-io/upcraft/errx"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestDecodeSniffsFormat(t *testing.T) {
	p, err := Decode(pngBytes(t, 10, 10))
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, FormatPNG, p.Format())
	assert.Equal(t, Dimensions{10, 10}, p.Dimensions())

	j, err := Decode(jpegBytes(t, 4, 6))
	require.NoError(t, err)
	defer j.Close()
	assert.Equal(t, FormatJPEG, j.Format())
	assert.Equal(t, Dimensions{4, 6}, j.Dimensions())
}

func TestDecodeRejectsNonImage(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrUnsupportedFormat))
}

func TestPipelineResize(t *testing.T) {
	p, err := Decode(pngBytes(t, 800, 600))
	require.NoError(t, err)
	defer p.Close()

	err = p.Resize(Auto, 300, ResizeOptions{Proportional: true})
	require.NoError(t, err)
	assert.Equal(t, Dimensions{400, 300}, p.Dimensions())
}

func TestPipelineResizeZeroTargetFails(t *testing.T) {
	p, err := Decode(pngBytes(t, 10, 10))
	require.NoError(t, err)
	defer p.Close()

	err = p.Resize(0, 0, ResizeOptions{})
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrResampleFailed))
	// failed resample leaves the previous canvas in place
	assert.Equal(t, Dimensions{10, 10}, p.Dimensions())
}

func TestPipelineCrop(t *testing.T) {
	p, err := Decode(pngBytes(t, 800, 600))
	require.NoError(t, err)
	defer p.Close()

	err = p.Crop(200, 200, CropOptions{})
	require.NoError(t, err)
	assert.Equal(t, Dimensions{200, 200}, p.Dimensions())
}

func TestPipelineChainedResizeThenCrop(t *testing.T) {
	p, err := Decode(pngBytes(t, 800, 600))
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.Resize(400, Auto, ResizeOptions{Proportional: true}))
	assert.Equal(t, Dimensions{400, 300}, p.Dimensions())

	// the resized canvas is the crop's source
	require.NoError(t, p.Crop(100, 100, CropOptions{}))
	assert.Equal(t, Dimensions{100, 100}, p.Dimensions())
}

func TestPipelineEncodeRoundTrip(t *testing.T) {
	p, err := Decode(pngBytes(t, 64, 48))
	require.NoError(t, err)
	defer p.Close()

	out, err := p.Encode(DefaultEncodeOptions())
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestPipelineEncodeAsConverts(t *testing.T) {
	p, err := Decode(pngBytes(t, 32, 32))
	require.NoError(t, err)
	defer p.Close()

	out, err := p.EncodeAs(FormatJPEG, EncodeOptions{
		JpegQuality: 60,
		WebpQuality: BackendDefault,
		PngZipLevel: BackendDefault,
	})
	require.NoError(t, err)

	_, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestPipelineEncodeRejectsBadOptions(t *testing.T) {
	p, err := Decode(pngBytes(t, 8, 8))
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Encode(EncodeOptions{JpegQuality: 150})
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrInvalidConfig))

	_, err = p.Encode(EncodeOptions{PngZipLevel: 42})
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrInvalidConfig))
}

func TestPipelineClosed(t *testing.T) {
	p, err := Decode(pngBytes(t, 8, 8))
	require.NoError(t, err)
	p.Close()

	assert.True(t, errx.IsCode(p.Resize(4, 4, ResizeOptions{}), ErrClosed))
	assert.True(t, errx.IsCode(p.Crop(4, 4, CropOptions{}), ErrClosed))
	_, err = p.Encode(DefaultEncodeOptions())
	assert.True(t, errx.IsCode(err, ErrClosed))
}

func TestFormatHelpers(t *testing.T) {
	assert.True(t, FormatPNG.HasAlpha())
	assert.True(t, FormatWEBP.HasAlpha())
	assert.False(t, FormatJPEG.HasAlpha())

	assert.Equal(t, "jpg", FormatJPEG.Extension())
	assert.Equal(t, "png", FormatPNG.Extension())
	assert.Equal(t, "image/webp", FormatWEBP.MIMEType())

	f, ok := FormatFromExtension(".JPEG")
	assert.True(t, ok)
	assert.Equal(t, FormatJPEG, f)

	_, ok = FormatFromExtension("exe")
	assert.False(t, ok)
}
