package processor

import (
	"math"
)

// Sizing is the one authoritative sizing strategy of a resize call. The
// concrete types are ByPercentage, ByWidthAspect, ByHeightAspect,
// ByExplicit and Original.
type Sizing interface {
	target(width, height uint32) (uint32, uint32)
}

// ByPercentage scales both axes by Percent/100.
type ByPercentage struct {
	Percent float32
}

// ByWidthAspect fixes the width and derives the height from the original ratio.
type ByWidthAspect struct {
	Width uint32
}

// ByHeightAspect fixes the height and derives the width from the original ratio.
type ByHeightAspect struct {
	Height uint32
}

// ByExplicit sets each axis independently; a nil axis keeps the original size.
type ByExplicit struct {
	Width  *uint32
	Height *uint32
}

// Original keeps the original dimensions.
type Original struct{}

func (s ByPercentage) target(w, h uint32) (uint32, uint32) {
	scale := s.Percent / 100
	return truncate(float32(w) * scale), truncate(float32(h) * scale)
}

func (s ByWidthAspect) target(w, h uint32) (uint32, uint32) {
	ratio := float32(s.Width) / float32(w)
	return s.Width, truncate(float32(h) * ratio)
}

func (s ByHeightAspect) target(w, h uint32) (uint32, uint32) {
	ratio := float32(s.Height) / float32(h)
	return truncate(float32(w) * ratio), s.Height
}

func (s ByExplicit) target(w, h uint32) (uint32, uint32) {
	if s.Width != nil {
		w = *s.Width
	}
	if s.Height != nil {
		h = *s.Height
	}
	return w, h
}

func (Original) target(w, h uint32) (uint32, uint32) {
	return w, h
}

// Plan computes the target dimensions for an image of width x height. It
// never fails: degenerate inputs produce degenerate (possibly zero) sizes.
func Plan(width, height uint32, s Sizing) (uint32, uint32) {
	if s == nil {
		return width, height
	}
	return s.target(width, height)
}

// truncate converts toward zero, saturating at the uint32 range. NaN maps to 0.
func truncate(v float32) uint32 {
	switch {
	case math.IsNaN(float64(v)), v <= 0:
		return 0
	case v >= math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(v)
	}
}
