package lot

import (
	"fmt"

	"github.com/eluisluzquadros/cogniticy/pkg/geo"
	"github.com/eluisluzquadros/cogniticy/pkg/validation"
)

// boundaryTolerance is how far a face endpoint may sit from the boundary
// ring before it is considered off-boundary. Meters.
const boundaryTolerance = 0.01

// Validate checks a lot geometry for the malformations that make the
// setback rules ambiguous: degenerate or self-intersecting rings, faces
// that do not lie on the boundary, and missing role coverage.
func Validate(g Geometry) *validation.Report {
	r := validation.NewReport()

	if g.Boundary.Len() < 3 {
		r.AddError(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     "lot boundary must have at least 3 vertices",
			LotID:       g.ID,
			ActualValue: g.Boundary.Len(),
			Expected:    ">= 3 vertices",
		})
		return r
	}

	if g.Boundary.Area() < 1e-9 {
		r.AddError(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     "lot boundary has zero area",
			LotID:       g.ID,
			ActualValue: g.Boundary.Area(),
			Expected:    "> 0",
		})
	}

	if selfIntersects(g.Boundary) {
		r.AddError(validation.Result{
			Level:   validation.LevelGeometry,
			Message: "lot boundary is self-intersecting",
			LotID:   g.ID,
		})
	}

	if len(g.Faces) == 0 {
		r.AddError(validation.Result{
			Level:   validation.LevelGeometry,
			Message: "lot has no classified boundary faces",
			LotID:   g.ID,
			Expected: "at least one face per role partitioning the boundary",
		})
		return r
	}

	for i, f := range g.Faces {
		if f.A.Distance(f.B) < 1e-9 {
			r.AddError(validation.Result{
				Level:   validation.LevelGeometry,
				Message: fmt.Sprintf("face %d is degenerate (zero length)", i),
				LotID:   g.ID,
			})
			continue
		}
		if !onBoundary(g.Boundary, f.A) || !onBoundary(g.Boundary, f.B) {
			r.AddError(validation.Result{
				Level:   validation.LevelGeometry,
				Message: fmt.Sprintf("face %d (%s) does not lie on the lot boundary", i, f.Role),
				LotID:   g.ID,
			})
		}
	}

	for _, role := range []FaceRole{RoleFront, RoleBack, RoleSide} {
		if len(g.FacesByRole(role)) == 0 {
			r.AddWarning(validation.Result{
				Level:   validation.LevelGeometry,
				Message: fmt.Sprintf("no %s face classified; its setback will not bind", role),
				LotID:   g.ID,
			})
		}
	}

	return r
}

// selfIntersects checks every non-adjacent edge pair. Quadratic, which is
// fine for cadastral rings.
func selfIntersects(p geo.Polygon) bool {
	n := p.Len()
	for i := 0; i < n; i++ {
		a1, a2 := p.Edge(i)
		for j := i + 1; j < n; j++ {
			// Skip adjacent edges (they share a vertex by construction).
			if j == i || (j+1)%n == i || (i+1)%n == j {
				continue
			}
			b1, b2 := p.Edge(j)
			if geo.SegmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// onBoundary reports whether pt lies on any boundary edge within tolerance.
func onBoundary(p geo.Polygon, pt geo.Point2D) bool {
	n := p.Len()
	for i := 0; i < n; i++ {
		a, b := p.Edge(i)
		if geo.DistancePointToSegment(pt, a, b) <= boundaryTolerance {
			return true
		}
	}
	return false
}
