package processor

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"time"

	"github.com/chai2010/webp"
	"github.com/leeforge/devkit/errors"
	"github.com/leeforge/devkit/logging"
	"github.com/leeforge/devkit/media/storage"
	"go.uber.org/zap"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// EncodeOptions tunes the lossy encoders.
type EncodeOptions struct {
	// JPEGQuality ranges from 1 to 100.
	JPEGQuality int
	// WebPLossy switches WebP output from lossless to lossy.
	WebPLossy bool
	// WebPQuality ranges from 0 to 100 and only applies to lossy WebP.
	WebPQuality float32
}

func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		JPEGQuality: 75,
		WebPLossy:   false,
		WebPQuality: 80,
	}
}

// Codec decodes images from and encodes images to files. It is the only
// component that reads or writes image bytes.
type Codec struct {
	provider storage.Provider
	opts     EncodeOptions
	logger   logging.Logger
}

type CodecOption func(*Codec)

func WithEncodeOptions(opts EncodeOptions) CodecOption {
	return func(c *Codec) {
		c.opts = opts
	}
}

func WithCodecLogger(logger logging.Logger) CodecOption {
	return func(c *Codec) {
		c.logger = logger
	}
}

// NewCodec creates a codec over provider; nil means the local filesystem.
func NewCodec(provider storage.Provider, opts ...CodecOption) *Codec {
	if provider == nil {
		provider = storage.NewLocalProvider("")
	}
	c := &Codec{
		provider: provider,
		opts:     DefaultEncodeOptions(),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode reads path and decodes it, detecting the container from its
// signature rather than its name.
func (c *Codec) Decode(path string) (image.Image, error) {
	start := time.Now()

	rc, err := c.provider.Open(path)
	if err != nil {
		return nil, errors.NewDecode(path, err)
	}
	defer rc.Close()

	img, detected, err := image.Decode(bufio.NewReader(rc))
	if err != nil {
		return nil, errors.NewDecode(path, err)
	}

	b := img.Bounds()
	c.logger.Debug("decoded image",
		zap.String("path", path),
		zap.String("storage", c.provider.Name()),
		zap.String("detected", detected),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
		zap.Duration("took", time.Since(start)),
	)
	return img, nil
}

// Encode writes img to path as format. The whole file is encoded in memory
// first, so an encoder failure leaves path untouched.
func (c *Codec) Encode(img image.Image, path string, format Format) error {
	start := time.Now()

	if !format.Valid() {
		return errors.NewEncode(path, fmt.Errorf("no encoder for format %d", int(format)))
	}

	var buf bytes.Buffer
	if err := c.encodeTo(&buf, img, format); err != nil {
		return errors.NewEncode(path, err).WithDetail("format", format.String())
	}

	n, err := c.provider.Write(path, &buf)
	if err != nil {
		return errors.NewEncode(path, err).WithDetail("format", format.String())
	}

	c.logger.Debug("encoded image",
		zap.String("path", path),
		zap.Stringer("format", format),
		zap.Int64("bytes", n),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

func (c *Codec) encodeTo(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: c.opts.JPEGQuality})
	case FormatPNG:
		return png.Encode(w, img)
	case FormatGIF:
		return gif.Encode(w, img, &gif.Options{NumColors: 256})
	case FormatWebP:
		return webp.Encode(w, img, &webp.Options{
			Lossless: !c.opts.WebPLossy,
			Quality:  c.opts.WebPQuality,
		})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatICO:
		return encodeICO(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("no encoder for format %s", format)
}
