package lot

import (
	"testing"

	"github.com/eluisluzquadros/cogniticy/pkg/geo"
	"github.com/eluisluzquadros/cogniticy/pkg/params"
)

func rectGeometry() Geometry {
	return Geometry{
		ID: "rect",
		Boundary: geo.NewPolygon(
			geo.Pt(0, 0), geo.Pt(25, 0), geo.Pt(25, 50), geo.Pt(0, 50),
		),
		Faces: []Face{
			{Role: RoleFront, A: geo.Pt(0, 0), B: geo.Pt(25, 0)},
			{Role: RoleSide, A: geo.Pt(25, 0), B: geo.Pt(25, 50)},
			{Role: RoleBack, A: geo.Pt(25, 50), B: geo.Pt(0, 50)},
			{Role: RoleSide, A: geo.Pt(0, 50), B: geo.Pt(0, 0)},
		},
	}
}

func TestFromSpec(t *testing.T) {
	spec := params.LotSpec{
		ID:      "lot-a",
		Polygon: [][2]float64{{0, 0}, {25, 0}, {25, 50}, {0, 50}},
		Faces: []params.FaceSpec{
			{Role: "front", From: [2]float64{0, 0}, To: [2]float64{25, 0}},
			{Role: "back", From: [2]float64{25, 50}, To: [2]float64{0, 50}},
		},
	}
	g, err := FromSpec(spec)
	if err != nil {
		t.Fatal(err)
	}
	if g.Area() != 1250 {
		t.Errorf("expected area 1250, got %f", g.Area())
	}
	if len(g.FacesByRole(RoleFront)) != 1 || len(g.FacesByRole(RoleBack)) != 1 {
		t.Errorf("face roles not preserved: %v", g.Faces)
	}
}

func TestFromSpecNormalizesWinding(t *testing.T) {
	spec := params.LotSpec{
		ID:      "cw",
		Polygon: [][2]float64{{0, 50}, {25, 50}, {25, 0}, {0, 0}}, // clockwise
	}
	g, err := FromSpec(spec)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Boundary.IsCounterClockwise() {
		t.Error("expected CCW boundary after FromSpec")
	}
}

func TestFromSpecRejectsUnknownRole(t *testing.T) {
	spec := params.LotSpec{
		ID:      "bad",
		Polygon: [][2]float64{{0, 0}, {25, 0}, {25, 50}, {0, 50}},
		Faces: []params.FaceSpec{
			{Role: "rear", From: [2]float64{25, 50}, To: [2]float64{0, 50}},
		},
	}
	if _, err := FromSpec(spec); err == nil {
		t.Error("expected an error for an unknown face role")
	}
}

func TestValidateAcceptsRectangle(t *testing.T) {
	r := Validate(rectGeometry())
	if !r.Valid {
		t.Errorf("expected valid geometry, got errors: %v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
}

func TestValidateRejectsTooFewVertices(t *testing.T) {
	g := Geometry{ID: "line", Boundary: geo.NewPolygon(geo.Pt(0, 0), geo.Pt(10, 0))}
	if Validate(g).Valid {
		t.Error("expected an error for a 2-vertex ring")
	}
}

func TestValidateRejectsZeroArea(t *testing.T) {
	g := Geometry{
		ID:       "flat",
		Boundary: geo.NewPolygon(geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(20, 0)),
		Faces:    []Face{{Role: RoleFront, A: geo.Pt(0, 0), B: geo.Pt(10, 0)}},
	}
	if Validate(g).Valid {
		t.Error("expected an error for a zero-area ring")
	}
}

func TestValidateRejectsSelfIntersection(t *testing.T) {
	// Bowtie.
	g := Geometry{
		ID:       "bowtie",
		Boundary: geo.NewPolygon(geo.Pt(0, 0), geo.Pt(10, 10), geo.Pt(10, 0), geo.Pt(0, 10)),
		Faces:    []Face{{Role: RoleFront, A: geo.Pt(0, 0), B: geo.Pt(10, 10)}},
	}
	if Validate(g).Valid {
		t.Error("expected an error for a self-intersecting ring")
	}
}

func TestValidateRejectsDegenerateFace(t *testing.T) {
	g := rectGeometry()
	g.Faces = append(g.Faces, Face{Role: RoleSide, A: geo.Pt(5, 0), B: geo.Pt(5, 0)})
	if Validate(g).Valid {
		t.Error("expected an error for a zero-length face")
	}
}

func TestValidateRejectsOffBoundaryFace(t *testing.T) {
	g := rectGeometry()
	g.Faces[0] = Face{Role: RoleFront, A: geo.Pt(5, 5), B: geo.Pt(20, 5)}
	if Validate(g).Valid {
		t.Error("expected an error for a face off the boundary ring")
	}
}

func TestValidateRejectsMissingFaces(t *testing.T) {
	g := rectGeometry()
	g.Faces = nil
	if Validate(g).Valid {
		t.Error("expected an error when no faces are classified")
	}
}

func TestValidateWarnsOnMissingRole(t *testing.T) {
	g := rectGeometry()
	g.Faces = g.Faces[:2] // drop back and one side
	r := Validate(g)
	if !r.Valid {
		t.Errorf("missing role coverage is a warning, not an error: %v", r.Errors)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning for the unclassified back face")
	}
}
