package processor

import (
	"fmt"
	"math"

	"github.com/leeforge/devkit/errors"
	"github.com/leeforge/devkit/logging"
	"github.com/leeforge/devkit/validation"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownLabel is reported by Inspect for a path without an extension.
const UnknownLabel = "UNKNOWN"

// Pipeline orchestrates decode, plan, resample and encode for one call at a
// time. It holds no per-call state and is safe for concurrent use.
type Pipeline struct {
	codec     *Codec
	resampler Resampler
	logger    logging.Logger
}

type PipelineOption func(*Pipeline)

func WithResampler(r Resampler) PipelineOption {
	return func(p *Pipeline) {
		p.resampler = r
	}
}

func WithLogger(logger logging.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a pipeline over codec; nil means a local codec with
// default encode options.
func NewPipeline(codec *Codec, opts ...PipelineOption) *Pipeline {
	if codec == nil {
		codec = NewCodec(nil)
	}
	p := &Pipeline{
		codec:     codec,
		resampler: NewLanczosResampler(),
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Inspect decodes path and reports its dimensions. The label is the path's
// extension uppercased and is not checked against the writable formats.
func (p *Pipeline) Inspect(path string) (*ImageInfo, error) {
	img, err := p.codec.Decode(path)
	if err != nil {
		return nil, err
	}

	label := UnknownLabel
	if ext, ok := extension(path); ok {
		label = cases.Upper(language.Und).String(ext)
	}

	b := img.Bounds()
	info := &ImageInfo{
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
		Format: label,
	}
	p.logger.Debug("inspected image",
		zap.String("path", path),
		zap.Uint32("width", info.Width),
		zap.Uint32("height", info.Height),
	)
	return info, nil
}

// Resize decodes input, resamples it to the size planned from opts and
// writes it to output in the format named by output's extension. The
// returned dimensions are the planned ones.
func (p *Pipeline) Resize(input, output string, opts ResizeOptions) (*ImageInfo, error) {
	if err := checkResizeOptions(opts); err != nil {
		return nil, err
	}

	img, err := p.codec.Decode(input)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, errors.NewInvalidOptions(fmt.Sprintf("cannot resize empty image %s", input)).
			WithDetail("width", b.Dx()).
			WithDetail("height", b.Dy())
	}

	width, height := Plan(uint32(b.Dx()), uint32(b.Dy()), opts.Sizing())
	p.logger.Debug("planned resize",
		zap.String("input", input),
		zap.Int("from_width", b.Dx()),
		zap.Int("from_height", b.Dy()),
		zap.Uint32("to_width", width),
		zap.Uint32("to_height", height),
	)

	resized := p.resampler.Resample(img, width, height)

	format, err := Resolve(output)
	if err != nil {
		return nil, err
	}
	if err := p.codec.Encode(resized, output, format); err != nil {
		return nil, err
	}

	return &ImageInfo{Width: width, Height: height, Format: format.String()}, nil
}

// Convert re-encodes input as the format named by output's extension
// without resampling.
func (p *Pipeline) Convert(input, output string) (*ImageInfo, error) {
	img, err := p.codec.Decode(input)
	if err != nil {
		return nil, err
	}

	format, err := Resolve(output)
	if err != nil {
		return nil, err
	}
	if err := p.codec.Encode(img, output, format); err != nil {
		return nil, err
	}

	b := img.Bounds()
	p.logger.Debug("converted image",
		zap.String("input", input),
		zap.String("output", output),
		zap.Stringer("format", format),
	)
	return &ImageInfo{Width: uint32(b.Dx()), Height: uint32(b.Dy()), Format: format.String()}, nil
}

func checkResizeOptions(opts ResizeOptions) error {
	if err := validation.Struct(opts); err != nil {
		return err
	}
	if opts.Percentage != nil {
		pct := float64(*opts.Percentage)
		if math.IsInf(pct, 0) || math.IsNaN(pct) {
			return errors.NewInvalidOptions("percentage must be a finite number")
		}
	}
	return nil
}
