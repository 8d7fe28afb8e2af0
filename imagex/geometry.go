package imagex

// Auto means "derive this dimension from the other one".
const Auto = -1

// Dimensions is a width/height pair, used for both source geometry and
// computed target geometry.
type Dimensions struct {
	Width  int
	Height int
}

// Point is an explicit crop origin.
type Point struct {
	X int
	Y int
}

// CropBox is a sampling rectangle on the source image.
type CropBox struct {
	X      int
	Y      int
	Width  int
	Height int
}

// CropPlan is the result of crop geometry: Window is the region of the
// source that gets sampled, Canvas is the size of the destination the
// window is mapped onto.
type CropPlan struct {
	Window CropBox
	Canvas Dimensions
}

// ResizeDimensions computes the target size for a resize.
//
// Auto (-1) for either target dimension derives it from the other,
// preserving aspect ratio. With clampToSource, explicit targets larger
// than the source are first clamped down to the source value, so the
// image is never upscaled past the original. Proportional mode fits
// the source inside the target box (min scale factor, never crops) and
// floors the results; non-proportional mode returns the targets
// as given, with Auto falling back to the source dimension.
func ResizeDimensions(source Dimensions, targetWidth, targetHeight int, proportional, clampToSource bool) Dimensions {
	if clampToSource {
		if targetWidth > source.Width {
			targetWidth = source.Width
		}
		if targetHeight > source.Height {
			targetHeight = source.Height
		}
	}

	if !proportional {
		out := Dimensions{Width: targetWidth, Height: targetHeight}
		if out.Width == Auto {
			out.Width = source.Width
		}
		if out.Height == Auto {
			out.Height = source.Height
		}
		return out
	}

	var factor float64
	switch {
	case targetWidth == Auto && targetHeight == Auto:
		factor = 1
	case targetWidth == Auto:
		factor = float64(targetHeight) / float64(source.Height)
	case targetHeight == Auto:
		factor = float64(targetWidth) / float64(source.Width)
	default:
		fw := float64(targetWidth) / float64(source.Width)
		fh := float64(targetHeight) / float64(source.Height)
		factor = fw
		if fh < fw {
			factor = fh
		}
	}

	return Dimensions{
		Width:  int(float64(source.Width) * factor),
		Height: int(float64(source.Height) * factor),
	}
}

// CropRegion computes the crop window and destination canvas for a
// crop.
//
// height <= 0 defaults to width (square crop). In proportional mode
// the window is half of max(width, height) on both axes; this
// reproduces the sizing the library has always used for proportional
// thumbnail crops and is kept for compatibility. The requested width
// and height always remain the destination canvas size; the window is
// only the source sampling region.
//
// A nil origin centers the window. An explicit origin is used
// verbatim, with no bounds clamping: out-of-range origins are the
// caller's responsibility.
func CropRegion(source Dimensions, width, height int, proportional bool, origin *Point) CropPlan {
	if height <= 0 {
		height = width
	}

	windowW, windowH := width, height
	if proportional {
		factor := width
		if height > factor {
			factor = height
		}
		windowW = int(0.5 * float64(factor))
		windowH = windowW
	}

	var x, y int
	if origin != nil {
		x, y = origin.X, origin.Y
	} else {
		x = (source.Width - windowW) / 2
		y = (source.Height - windowH) / 2
	}

	return CropPlan{
		Window: CropBox{X: x, Y: y, Width: windowW, Height: windowH},
		Canvas: Dimensions{Width: width, Height: height},
	}
}
