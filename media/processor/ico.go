package processor

import (
	"fmt"
	"image"
	"io"

	ico "github.com/sergeymakinen/go-ico"
)

const icoMaxSide = 256

// encodeICO writes m as a one-image icon. Icons cannot be empty or larger
// than 256 pixels on either side.
func encodeICO(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("ico: invalid image size %dx%d", b.Dx(), b.Dy())
	}
	if b.Dx() > icoMaxSide || b.Dy() > icoMaxSide {
		return fmt.Errorf("ico: image %dx%d exceeds %dx%d", b.Dx(), b.Dy(), icoMaxSide, icoMaxSide)
	}
	return ico.Encode(w, m)
}
