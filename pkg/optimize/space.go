// Package optimize searches the shape candidate space for the massing that
// best satisfies the configured objective.
package optimize

import (
	"github.com/eluisluzquadros/cogniticy/pkg/massing"
	"github.com/eluisluzquadros/cogniticy/pkg/params"
)

// CandidateSpace enumerates the shapes to evaluate for one lot. Basic mode
// is the single identity shape; advanced mode is the Cartesian product of
// the configured ratio and orientation steps. A single optimizer handles
// both by iterating whatever set it receives.
func CandidateSpace(set params.Set) []massing.Shape {
	if !set.Advanced() {
		return []massing.Shape{massing.IdentityShape}
	}
	ratios := set.Strategy.ShapeRatioSteps
	orients := set.Strategy.OrientationSteps
	if len(ratios) == 0 || len(orients) == 0 {
		return []massing.Shape{massing.IdentityShape}
	}
	shapes := make([]massing.Shape, 0, len(ratios)*len(orients))
	for _, r := range ratios {
		for _, o := range orients {
			shapes = append(shapes, massing.Shape{Ratio: r, Orientation: o})
		}
	}
	return shapes
}
