package geo

import "math"

// HalfPlane describes the set of points q with (q - Origin)·Normal >= 0.
// Normal need not be unit length for the inside test, but offsetting
// assumes it is.
type HalfPlane struct {
	Origin Point2D
	Normal Point2D
}

// Inside returns true if the point lies on the kept side of the half-plane.
func (h HalfPlane) Inside(p Point2D) bool {
	return p.Sub(h.Origin).Dot(h.Normal) >= -1e-9
}

// ClipToHalfPlane clips the subject polygon against a single half-plane,
// keeping the portion on the Normal side. Sutherland-Hodgman step for one
// clip edge.
func ClipToHalfPlane(subject Polygon, h HalfPlane) Polygon {
	if subject.IsEmpty() {
		return Polygon{}
	}
	input := subject.Vertices
	output := make([]Point2D, 0, len(input)+2)

	n := len(input)
	for i := 0; i < n; i++ {
		current := input[i]
		next := input[(i+1)%n]
		curInside := h.Inside(current)
		nextInside := h.Inside(next)

		switch {
		case curInside && nextInside:
			output = append(output, next)
		case curInside && !nextInside:
			if ix, ok := halfPlaneIntersection(current, next, h); ok {
				output = append(output, ix)
			}
		case !curInside && nextInside:
			if ix, ok := halfPlaneIntersection(current, next, h); ok {
				output = append(output, ix)
			}
			output = append(output, next)
		}
	}
	if len(output) < 3 {
		return Polygon{}
	}
	return Polygon{Vertices: dedupe(output)}
}

// halfPlaneIntersection returns the point where segment a→b crosses the
// half-plane boundary line.
func halfPlaneIntersection(a, b Point2D, h HalfPlane) (Point2D, bool) {
	da := a.Sub(h.Origin).Dot(h.Normal)
	db := b.Sub(h.Origin).Dot(h.Normal)
	if math.Abs(da-db) < 1e-12 {
		return Point2D{}, false
	}
	t := da / (da - db)
	return a.Lerp(b, t), true
}

// ClipToConvex clips the subject polygon to a convex clip polygon using
// the Sutherland-Hodgman algorithm. The clip polygon must be in CCW order.
// Returns the intersection polygon.
func ClipToConvex(subject, clipper Polygon) Polygon {
	if subject.IsEmpty() || clipper.IsEmpty() {
		return Polygon{}
	}
	clipper = clipper.EnsureCCW()
	result := subject
	clipN := len(clipper.Vertices)
	for i := 0; i < clipN; i++ {
		if result.IsEmpty() {
			return Polygon{}
		}
		edgeStart := clipper.Vertices[i]
		edgeEnd := clipper.Vertices[(i+1)%clipN]
		// Interior of a CCW polygon is on the left of each directed edge.
		h := HalfPlane{
			Origin: edgeStart,
			Normal: edgeEnd.Sub(edgeStart).Perp(),
		}
		result = ClipToHalfPlane(result, h)
	}
	return result
}

// InwardOffsetFromSegment clips the polygon to the half-plane at distance
// dist inward from the infinite line through segment (segA, segB). The
// inward side is the side containing `interior` (typically the polygon
// centroid). A zero or negative distance leaves the polygon unchanged.
func InwardOffsetFromSegment(subject Polygon, segA, segB, interior Point2D, dist float64) Polygon {
	if subject.IsEmpty() || dist <= 0 {
		return subject
	}
	dir := segB.Sub(segA)
	if dir.Length() < 1e-12 {
		return subject
	}
	normal := dir.Normalize().Perp()
	// Flip the normal so it points toward the interior.
	if interior.Sub(segA).Dot(normal) < 0 {
		normal = normal.Scale(-1)
	}
	h := HalfPlane{
		Origin: segA.Add(normal.Scale(dist)),
		Normal: normal,
	}
	return ClipToHalfPlane(subject, h)
}

// BandMask returns a convex rectangle covering a band through `center`,
// aligned with the direction at `angle` radians, with the given thickness
// perpendicular to the axis and halfLength along it. Used to carve slab
// footprints out of an offset polygon.
func BandMask(center Point2D, angle, thickness, halfLength float64) Polygon {
	u := Pt(math.Cos(angle), math.Sin(angle))
	v := u.Perp()
	halfT := thickness / 2
	return NewPolygon(
		center.Add(u.Scale(-halfLength)).Add(v.Scale(-halfT)),
		center.Add(u.Scale(halfLength)).Add(v.Scale(-halfT)),
		center.Add(u.Scale(halfLength)).Add(v.Scale(halfT)),
		center.Add(u.Scale(-halfLength)).Add(v.Scale(halfT)),
	)
}

// dedupe removes consecutive duplicate vertices (within tolerance),
// including the wrap-around pair.
func dedupe(pts []Point2D) []Point2D {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:0:0]
	for _, p := range pts {
		if len(out) == 0 || out[len(out)-1].Distance(p) > 1e-9 {
			out = append(out, p)
		}
	}
	for len(out) > 1 && out[0].Distance(out[len(out)-1]) <= 1e-9 {
		out = out[:len(out)-1]
	}
	return out
}

// SegmentsIntersect reports whether segments a→b and c→d properly intersect
// or touch.
func SegmentsIntersect(a, b, c, d Point2D) bool {
	d1 := orientation(c, d, a)
	d2 := orientation(c, d, b)
	d3 := orientation(a, b, c)
	d4 := orientation(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(c, d, a) {
		return true
	}
	if d2 == 0 && onSegment(c, d, b) {
		return true
	}
	if d3 == 0 && onSegment(a, b, c) {
		return true
	}
	if d4 == 0 && onSegment(a, b, d) {
		return true
	}
	return false
}

func orientation(a, b, p Point2D) float64 {
	return b.Sub(a).Cross(p.Sub(a))
}

func onSegment(a, b, p Point2D) bool {
	return math.Min(a.X, b.X)-1e-9 <= p.X && p.X <= math.Max(a.X, b.X)+1e-9 &&
		math.Min(a.Y, b.Y)-1e-9 <= p.Y && p.Y <= math.Max(a.Y, b.Y)+1e-9
}

// DistancePointToSegment returns the shortest distance from p to segment a→b.
func DistancePointToSegment(p, a, b Point2D) float64 {
	d := b.Sub(a)
	lenSq := d.Dot(d)
	if lenSq < 1e-12 {
		return p.Distance(a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(d)/lenSq))
	return p.Distance(a.Lerp(b, t))
}
