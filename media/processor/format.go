package processor

import (
	"path/filepath"
	"strings"

	"github.com/leeforge/devkit/errors"
)

// Format is an image container the codec can write.
type Format int

const (
	FormatJPEG Format = iota + 1
	FormatPNG
	FormatGIF
	FormatWebP
	FormatBMP
	FormatICO
	FormatTIFF
)

type formatSpec struct {
	label     string
	extension string
	mimeType  string
}

var formatSpecs = map[Format]formatSpec{
	FormatJPEG: {"Jpeg", "jpg", "image/jpeg"},
	FormatPNG:  {"Png", "png", "image/png"},
	FormatGIF:  {"Gif", "gif", "image/gif"},
	FormatWebP: {"WebP", "webp", "image/webp"},
	FormatBMP:  {"Bmp", "bmp", "image/bmp"},
	FormatICO:  {"Ico", "ico", "image/x-icon"},
	FormatTIFF: {"Tiff", "tiff", "image/tiff"},
}

// extensionFormats is the only mapping from extensions to formats.
var extensionFormats = map[string]Format{
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"png":  FormatPNG,
	"gif":  FormatGIF,
	"webp": FormatWebP,
	"bmp":  FormatBMP,
	"ico":  FormatICO,
	"tif":  FormatTIFF,
	"tiff": FormatTIFF,
}

// Formats lists every supported output format.
func Formats() []Format {
	return []Format{FormatJPEG, FormatPNG, FormatGIF, FormatWebP, FormatBMP, FormatICO, FormatTIFF}
}

// String returns the display label reported in ImageInfo, e.g. "Png".
func (f Format) String() string {
	if spec, ok := formatSpecs[f]; ok {
		return spec.label
	}
	return "Unknown"
}

// Extension returns the canonical file extension without the dot.
func (f Format) Extension() string {
	return formatSpecs[f].extension
}

func (f Format) MIMEType() string {
	return formatSpecs[f].mimeType
}

func (f Format) Valid() bool {
	_, ok := formatSpecs[f]
	return ok
}

// ParseFormat maps an extension (without the dot, any case) to a Format.
func ParseFormat(ext string) (Format, error) {
	ext = strings.ToLower(ext)
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}
	return 0, errors.NewUnsupportedFormat(ext)
}

// Resolve derives the output format of path from its extension alone.
func Resolve(path string) (Format, error) {
	ext, ok := extension(path)
	if !ok {
		return 0, errors.NewInvalidExtension(path)
	}
	return ParseFormat(ext)
}

// extension returns the text after the last dot of the final path element.
// A name whose only dot is its first character (".png") has no extension;
// a trailing dot ("img.") yields an empty one.
func extension(path string) (string, bool) {
	base := filepath.Base(path)
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return "", false
	}
	return base[idx+1:], true
}
