package processor

import (
	"image"
	"math"
	"path/filepath"
	"testing"

	"github.com/leeforge/devkit/errors"
	"github.com/leeforge/devkit/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPipeline(t *testing.T, width, height int) (*Pipeline, string, string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "input.png")
	writePNG(t, input, newGradient(width, height))
	return NewPipeline(nil, WithLogger(logging.Nop())), dir, input
}

func TestPipelineResizeEndToEnd(t *testing.T) {
	p, dir, input := setupPipeline(t, 200, 100)
	output := filepath.Join(dir, "half.png")

	info, err := p.Resize(input, output, ResizeOptions{Percentage: f32(50)})
	require.NoError(t, err)
	assert.Equal(t, &ImageInfo{Width: 100, Height: 50, Format: "Png"}, info)

	img, err := NewCodec(nil).Decode(output)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), img.Bounds())
}

func TestPipelineResizeMatchesPlan(t *testing.T) {
	tests := []struct {
		name   string
		output string
		opts   ResizeOptions
		label  string
	}{
		{"width aspect", "a.jpg", ResizeOptions{Width: u32(50), MaintainAspect: true}, "Jpeg"},
		{"height aspect", "b.gif", ResizeOptions{Height: u32(20), MaintainAspect: true}, "Gif"},
		{"explicit", "c.bmp", ResizeOptions{Width: u32(30), Height: u32(30)}, "Bmp"},
		{"unchanged", "d.TIFF", ResizeOptions{}, "Tiff"},
		{"icon", "e.ico", ResizeOptions{Width: u32(32), Height: u32(32)}, "Ico"},
		{"webp", "f.webp", ResizeOptions{Percentage: f32(25)}, "WebP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, dir, input := setupPipeline(t, 120, 80)
			output := filepath.Join(dir, tt.output)

			info, err := p.Resize(input, output, tt.opts)
			require.NoError(t, err)

			wantW, wantH := Plan(120, 80, tt.opts.Sizing())
			assert.Equal(t, wantW, info.Width)
			assert.Equal(t, wantH, info.Height)
			assert.Equal(t, tt.label, info.Format)

			inspected, err := p.Inspect(output)
			require.NoError(t, err)
			assert.Equal(t, wantW, inspected.Width)
			assert.Equal(t, wantH, inspected.Height)
		})
	}
}

func TestPipelineResizeRejectsBadPercentage(t *testing.T) {
	p, dir, input := setupPipeline(t, 10, 10)

	for _, pct := range []float32{0, -5, float32(math.NaN()), float32(math.Inf(1))} {
		output := filepath.Join(dir, "out.png")
		_, err := p.Resize(input, output, ResizeOptions{Percentage: f32(pct)})
		require.Error(t, err, pct)
		assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidOptions), pct)
		assert.NoFileExists(t, output)
	}
}

func TestPipelineResizeErrors(t *testing.T) {
	p, dir, input := setupPipeline(t, 10, 10)

	_, err := p.Resize(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.png"), ResizeOptions{})
	assert.True(t, errors.IsType(err, errors.ErrorTypeDecode))

	_, err = p.Resize(input, filepath.Join(dir, "out.xyz"), ResizeOptions{})
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnsupportedFormat))
	assert.NoFileExists(t, filepath.Join(dir, "out.xyz"))

	_, err = p.Resize(input, filepath.Join(dir, "out"), ResizeOptions{})
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidExtension))

	_, err = p.Resize(input, filepath.Join(dir, "big.ico"), ResizeOptions{Width: u32(512), Height: u32(512)})
	assert.True(t, errors.IsType(err, errors.ErrorTypeEncode))
}

func TestPipelineResizeToZeroWidthFailsOnEncode(t *testing.T) {
	p, dir, input := setupPipeline(t, 10, 10)

	_, err := p.Resize(input, filepath.Join(dir, "zero.ico"), ResizeOptions{Width: u32(0)})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeEncode))
}

func TestPipelineConvertPreservesDimensions(t *testing.T) {
	p, dir, input := setupPipeline(t, 64, 48)

	for _, f := range Formats() {
		t.Run(f.String(), func(t *testing.T) {
			output := filepath.Join(dir, "converted."+f.Extension())
			info, err := p.Convert(input, output)
			require.NoError(t, err)
			assert.Equal(t, &ImageInfo{Width: 64, Height: 48, Format: f.String()}, info)

			img, err := NewCodec(nil).Decode(output)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())
		})
	}
}

func TestPipelineConvertErrors(t *testing.T) {
	p, dir, input := setupPipeline(t, 4, 4)

	_, err := p.Convert(filepath.Join(dir, "nope.png"), filepath.Join(dir, "out.jpg"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeDecode))

	_, err = p.Convert(input, filepath.Join(dir, "out.heic"))
	require.Error(t, err)
	assert.Equal(t, "Unsupported format: heic", err.Error())
}

func TestPipelineInspectLabels(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(nil)
	img := newGradient(12, 7)

	tests := map[string]string{
		"photo.png":  "PNG",
		"photo.JpEg": "JPEG",
		"photo.xyz":  "XYZ",
		"photo":      UnknownLabel,
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			writePNG(t, path, img)

			info, err := p.Inspect(path)
			require.NoError(t, err)
			assert.Equal(t, &ImageInfo{Width: 12, Height: 7, Format: want}, info)
		})
	}
}

func TestPipelineInspectDecodeError(t *testing.T) {
	_, err := NewPipeline(nil).Inspect(filepath.Join(t.TempDir(), "missing.gif"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeDecode))
}

type recordingResampler struct {
	calls int
}

func (r *recordingResampler) Resample(img image.Image, width, height uint32) image.Image {
	r.calls++
	return NewLanczosResampler().Resample(img, width, height)
}

func TestPipelineConvertNeverResamples(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writePNG(t, input, newGradient(6, 6))

	rec := &recordingResampler{}
	p := NewPipeline(nil, WithResampler(rec))

	_, err := p.Convert(input, filepath.Join(dir, "out.bmp"))
	require.NoError(t, err)
	assert.Zero(t, rec.calls)

	_, err = p.Resize(input, filepath.Join(dir, "out2.bmp"), ResizeOptions{Percentage: f32(50)})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.calls)
}
