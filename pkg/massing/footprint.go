package massing

import (
	"fmt"
	"math"

	"github.com/eluisluzquadros/cogniticy/pkg/geo"
	"github.com/eluisluzquadros/cogniticy/pkg/lot"
	"github.com/eluisluzquadros/cogniticy/pkg/params"
)

// RejectReason identifies why a candidate footprint was refused.
type RejectReason string

const (
	RejectEmpty        RejectReason = "empty_footprint"
	RejectMinFloorArea RejectReason = "below_min_floor_area"
	RejectMinUnitWidth RejectReason = "below_min_unit_width"
	RejectPatio        RejectReason = "patio_does_not_fit"
	RejectCore         RejectReason = "core_does_not_fit"
)

// Rejection is the explicit refusal result from the footprint generator.
// It is a value, not an error: the optimizer skips rejected candidates
// without special-casing control flow.
type Rejection struct {
	Reason RejectReason `json:"reason"`
	Detail string       `json:"detail"`
}

func (r *Rejection) String() string {
	return fmt.Sprintf("%s: %s", r.Reason, r.Detail)
}

// Footprint is one floor's accepted buildable polygon.
type Footprint struct {
	Polygon    geo.Polygon
	Area       float64
	HasSetback bool
}

// FootprintGenerator produces a single floor's buildable polygon for a
// given shape parameterization, applying the per-role offsets to the lot
// boundary and validating the architectural minimums.
type FootprintGenerator struct {
	lot  lot.Geometry
	arch params.Architectural
}

// NewFootprintGenerator creates a generator bound to one lot.
func NewFootprintGenerator(g lot.Geometry, arch params.Architectural) FootprintGenerator {
	return FootprintGenerator{lot: g, arch: arch}
}

// Generate applies the offsets and shape mask and validates the result.
// Returns either an accepted footprint or a rejection, never both.
func (fg FootprintGenerator) Generate(offsets Offsets, shape Shape) (Footprint, *Rejection) {
	poly := fg.applyOffsets(offsets)
	if poly.IsEmpty() {
		return Footprint{}, &Rejection{
			Reason: RejectEmpty,
			Detail: "setback offsets consume the entire lot",
		}
	}

	if !shape.IsIdentity() {
		poly = applyShapeMask(poly, shape)
		if poly.IsEmpty() {
			return Footprint{}, &Rejection{
				Reason: RejectEmpty,
				Detail: fmt.Sprintf("shape mask %s leaves no footprint", shape.Name()),
			}
		}
	}

	area := poly.Area()
	if area < fg.arch.MinFloorArea {
		return Footprint{}, &Rejection{
			Reason: RejectMinFloorArea,
			Detail: fmt.Sprintf("area %.2f m2 below minimum %.2f m2", area, fg.arch.MinFloorArea),
		}
	}

	minWidth := poly.MinWidth()
	if minWidth < fg.arch.MinUnitWidth {
		return Footprint{}, &Rejection{
			Reason: RejectMinUnitWidth,
			Detail: fmt.Sprintf("minimum width %.2f m below unit width %.2f m", minWidth, fg.arch.MinUnitWidth),
		}
	}
	if fg.arch.MinPatiosDim > 0 && minWidth < fg.arch.MinPatiosDim {
		return Footprint{}, &Rejection{
			Reason: RejectPatio,
			Detail: fmt.Sprintf("minimum width %.2f m cannot host a %.2f m patio", minWidth, fg.arch.MinPatiosDim),
		}
	}
	if fg.arch.CoreAreaFraction > 0 {
		coreSide := math.Sqrt(fg.arch.CoreAreaFraction * area)
		if coreSide > minWidth {
			return Footprint{}, &Rejection{
				Reason: RejectCore,
				Detail: fmt.Sprintf("core block of %.2f m side exceeds footprint width %.2f m", coreSide, minWidth),
			}
		}
	}

	return Footprint{
		Polygon:    poly,
		Area:       area,
		HasSetback: offsets.Any() && area < fg.lot.Area()-1e-6,
	}, nil
}

// applyOffsets shrinks the lot boundary by clipping against the half-plane
// at each face's offset distance, on the interior side of the face line.
// The per-role distance rule makes the rectangular-lot case exact; for
// irregular lots the half-plane clip generalizes conservatively.
func (fg FootprintGenerator) applyOffsets(offsets Offsets) geo.Polygon {
	poly := fg.lot.Boundary
	interior := fg.lot.Boundary.Centroid()
	for _, f := range fg.lot.Faces {
		var dist float64
		switch f.Role {
		case lot.RoleFront:
			dist = offsets.Front
		case lot.RoleBack:
			dist = offsets.Back
		case lot.RoleSide:
			dist = offsets.Side
		}
		if dist <= 0 {
			continue
		}
		poly = geo.InwardOffsetFromSegment(poly, f.A, f.B, interior, dist)
		if poly.IsEmpty() {
			return geo.Polygon{}
		}
	}
	return poly
}

// applyShapeMask intersects the offset polygon with a slab band through its
// centroid: the band axis sits at shape.Orientation degrees and its
// thickness retains shape.Ratio of the polygon's extent perpendicular to
// that axis.
func applyShapeMask(poly geo.Polygon, shape Shape) geo.Polygon {
	angle := shape.Orientation * math.Pi / 180
	axis := geo.Pt(math.Cos(angle), math.Sin(angle))
	center := poly.Centroid()

	thickness := shape.Ratio * poly.ExtentAlong(axis.Perp())
	if thickness <= 0 {
		return geo.Polygon{}
	}
	// Half-length comfortably beyond the polygon so the band only cuts
	// perpendicular to its axis.
	halfLength := poly.ExtentAlong(axis) // full extent = 2x what is needed
	mask := geo.BandMask(center, angle, thickness, halfLength)
	return geo.ClipToConvex(poly, mask)
}
