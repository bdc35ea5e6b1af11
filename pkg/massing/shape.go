package massing

import "fmt"

// Shape parameterizes one footprint variant: Ratio is the fraction of the
// offset polygon's bounding dimension retained by the slab mask, and
// Orientation is the mask axis rotation in degrees. The identity shape
// (ratio 1) keeps the plain offset polygon untouched.
type Shape struct {
	Ratio       float64 `json:"shape_ratio"`
	Orientation float64 `json:"orientation"`
}

// IdentityShape is the plain orthogonal footprint used by the baseline.
var IdentityShape = Shape{Ratio: 1.0, Orientation: 0}

// IsIdentity reports whether the shape leaves the offset polygon unchanged.
func (s Shape) IsIdentity() bool {
	return s.Ratio >= 1.0
}

// Name returns the export label for this variant.
func (s Shape) Name() string {
	if s.IsIdentity() {
		return "orthogonal"
	}
	return fmt.Sprintf("slab_r%02.0f_o%03.0f", s.Ratio*100, s.Orientation)
}
