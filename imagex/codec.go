package imagex

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"

	"github.com/upcraft-io/upcraft/mimex"
)

// Format identifies an image encoding.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
	FormatWEBP Format = "webp"
)

// HasAlpha reports whether the format carries an alpha channel that
// must be preserved through resampling.
func (f Format) HasAlpha() bool {
	switch f {
	case FormatPNG, FormatGIF, FormatWEBP:
		return true
	}
	return false
}

// MIMEType returns the MIME type of the format.
func (f Format) MIMEType() string {
	return "image/" + string(f)
}

// Extension returns the canonical file extension of the format.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// FormatFromExtension maps a file extension (with or without dot) to a
// Format.
func FormatFromExtension(ext string) (Format, bool) {
	mimeType, ok := mimex.TypeFor(ext)
	if !ok {
		return "", false
	}
	return formatFromMIME(mimeType)
}

func formatFromMIME(mimeType string) (Format, bool) {
	switch mimeType {
	case "image/jpeg":
		return FormatJPEG, true
	case "image/png":
		return FormatPNG, true
	case "image/gif":
		return FormatGIF, true
	case "image/webp":
		return FormatWEBP, true
	}
	return "", false
}

// sniffFormat resolves the format of raw bytes by magic-byte
// detection.
func sniffFormat(data []byte) (Format, error) {
	mimeType := mimex.DetectBytes(data)
	format, ok := formatFromMIME(mimeType)
	if !ok {
		return "", imageErrors.New(ErrUnsupportedFormat).
			WithDetail("detected_type", mimeType)
	}
	return format, nil
}

func decodeImage(data []byte, format Format) (image.Image, error) {
	r := bytes.NewReader(data)
	switch format {
	case FormatJPEG:
		return jpeg.Decode(r)
	case FormatPNG:
		return png.Decode(r)
	case FormatGIF:
		return gif.Decode(r)
	case FormatWEBP:
		return webp.Decode(r)
	}
	return nil, imageErrors.New(ErrUnsupportedFormat).WithDetail("format", string(format))
}

func encodeImage(img image.Image, format Format, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case FormatJPEG:
		quality := opts.JpegQuality
		if quality == BackendDefault {
			quality = jpeg.DefaultQuality
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case FormatPNG:
		encoder := png.Encoder{CompressionLevel: pngLevel(opts.PngZipLevel)}
		err = encoder.Encode(&buf, img)
	case FormatGIF:
		err = gif.Encode(&buf, img, nil)
	case FormatWEBP:
		quality := opts.WebpQuality
		if quality == BackendDefault {
			quality = 75
		}
		err = webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)})
	default:
		return nil, imageErrors.New(ErrUnsupportedFormat).WithDetail("format", string(format))
	}

	if err != nil {
		return nil, imageErrors.NewWithCause(ErrEncodeFailed, err).
			WithDetail("format", string(format))
	}
	return buf.Bytes(), nil
}

// pngLevel maps the zlib-style 0-9 knob onto the levels image/png
// actually supports.
func pngLevel(level int) png.CompressionLevel {
	switch {
	case level == BackendDefault:
		return png.DefaultCompression
	case level <= 0:
		return png.NoCompression
	case level <= 5:
		return png.BestSpeed
	default:
		return png.BestCompression
	}
}
