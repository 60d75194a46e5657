package processor

// ImageInfo describes the result of an image operation.
type ImageInfo struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Format string `json:"format"`
}

// ResizeOptions is the caller-facing form of a resize request. Percentage
// wins over Width/Height; with none of them set the size is unchanged.
type ResizeOptions struct {
	Width          *uint32  `json:"width,omitempty"`
	Height         *uint32  `json:"height,omitempty"`
	Percentage     *float32 `json:"percentage,omitempty" validate:"omitempty,gt=0"`
	MaintainAspect bool     `json:"maintain_aspect"`
}

// Sizing picks the single strategy these options stand for.
func (o ResizeOptions) Sizing() Sizing {
	switch {
	case o.Percentage != nil:
		return ByPercentage{Percent: *o.Percentage}
	case o.MaintainAspect && o.Width != nil:
		return ByWidthAspect{Width: *o.Width}
	case o.MaintainAspect && o.Height != nil:
		return ByHeightAspect{Height: *o.Height}
	case o.MaintainAspect:
		return Original{}
	default:
		return ByExplicit{Width: o.Width, Height: o.Height}
	}
}
