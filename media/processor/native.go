package processor

import (
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Resampler produces a new raster of exactly width x height from img.
type Resampler interface {
	Resample(img image.Image, width, height uint32) image.Image
}

// LanczosResampler implements Resampler in pure Go with a Lanczos3 kernel.
// The result never aliases the input raster.
type LanczosResampler struct{}

func NewLanczosResampler() *LanczosResampler {
	return &LanczosResampler{}
}

func (r *LanczosResampler) Resample(img image.Image, width, height uint32) image.Image {
	// resize.Resize treats a zero side as "keep aspect"; here zero means empty.
	if width == 0 || height == 0 {
		return image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	}

	b := img.Bounds()
	if b.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	}

	// resize.Resize hands back the source itself when nothing changes.
	if b.Dx() == int(width) && b.Dy() == int(height) {
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}

	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
}
