// Package lot models a single cadastral parcel: its boundary polygon and the
// role-tagged boundary faces the setback rules key off.
package lot

import (
	"fmt"

	"github.com/eluisluzquadros/cogniticy/pkg/geo"
	"github.com/eluisluzquadros/cogniticy/pkg/params"
)

// FaceRole classifies a boundary face for setback purposes.
type FaceRole string

const (
	RoleFront FaceRole = "front"
	RoleBack  FaceRole = "back"
	RoleSide  FaceRole = "side"
)

// ParseRole converts a string tag into a FaceRole.
func ParseRole(s string) (FaceRole, error) {
	switch FaceRole(s) {
	case RoleFront, RoleBack, RoleSide:
		return FaceRole(s), nil
	}
	return "", fmt.Errorf("unknown face role %q", s)
}

// Face is one boundary segment with its setback role.
type Face struct {
	Role FaceRole    `json:"role"`
	A    geo.Point2D `json:"a"`
	B    geo.Point2D `json:"b"`
}

// Geometry is the read-only lot input to the massing engine: a closed
// boundary ring plus its classified faces. Owned by the caller; the engine
// never mutates it.
type Geometry struct {
	ID       string      `json:"id"`
	Boundary geo.Polygon `json:"boundary"`
	Faces    []Face      `json:"faces"`
}

// Area returns the lot area in square meters.
func (g Geometry) Area() float64 {
	return g.Boundary.Area()
}

// FacesByRole returns the faces carrying the given role.
func (g Geometry) FacesByRole(role FaceRole) []Face {
	var out []Face
	for _, f := range g.Faces {
		if f.Role == role {
			out = append(out, f)
		}
	}
	return out
}

// FromSpec builds a Geometry from the raw project-file representation.
func FromSpec(spec params.LotSpec) (Geometry, error) {
	pts := make([]geo.Point2D, len(spec.Polygon))
	for i, c := range spec.Polygon {
		pts[i] = geo.Pt(c[0], c[1])
	}
	g := Geometry{
		ID:       spec.ID,
		Boundary: geo.NewPolygon(pts...).EnsureCCW(),
	}
	for _, fs := range spec.Faces {
		role, err := ParseRole(fs.Role)
		if err != nil {
			return Geometry{}, fmt.Errorf("lot %s: %w", spec.ID, err)
		}
		g.Faces = append(g.Faces, Face{
			Role: role,
			A:    geo.Pt(fs.From[0], fs.From[1]),
			B:    geo.Pt(fs.To[0], fs.To[1]),
		})
	}
	return g, nil
}
