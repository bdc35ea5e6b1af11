package params

import (
	"os"
	"path/filepath"
	"testing"
)

const projectYAML = `
params:
  normative_parameters:
    max_height: 36.0
    max_far: 2.0
  modeling_strategy:
    modeling_mode: advanced
    shape_ratio_steps: [0.4, 0.6]
    orientation_steps: [0, 90]
lots:
  - id: lot-a
    polygon: [[0, 0], [25, 0], [25, 50], [0, 50]]
    faces:
      - {role: front, from: [0, 0], to: [25, 0]}
      - {role: side, from: [25, 0], to: [25, 50]}
      - {role: back, from: [25, 50], to: [0, 50]}
      - {role: side, from: [0, 50], to: [0, 0]}
  - id: lot-b
    polygon: [[0, 0], [30, 0], [30, 30], [0, 30]]
    faces:
      - {role: front, from: [0, 0], to: [30, 0]}
    overrides:
      normative_parameters:
        max_height: 24.0
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProjectKeepsDefaults(t *testing.T) {
	proj, err := LoadProject(writeProject(t, projectYAML))
	if err != nil {
		t.Fatal(err)
	}

	// Fields absent from the file keep their built-in defaults.
	if proj.Params.Normative.GFFloorHeight != 4.0 {
		t.Errorf("expected default gf_floor_height 4.0, got %f", proj.Params.Normative.GFFloorHeight)
	}
	if proj.Params.Normative.MaxHeight != 36.0 {
		t.Errorf("expected project max_height 36.0, got %f", proj.Params.Normative.MaxHeight)
	}
	if len(proj.Lots) != 2 {
		t.Fatalf("expected 2 lots, got %d", len(proj.Lots))
	}
}

func TestResolveWithoutOverrides(t *testing.T) {
	proj, err := LoadProject(writeProject(t, projectYAML))
	if err != nil {
		t.Fatal(err)
	}

	set, err := proj.Resolve(proj.Lots[0])
	if err != nil {
		t.Fatal(err)
	}
	if set.Normative.MaxHeight != 36.0 {
		t.Errorf("expected project max_height, got %f", set.Normative.MaxHeight)
	}
	if set.Zoning.LotID != "lot-a" {
		t.Errorf("expected lot id stamped, got %q", set.Zoning.LotID)
	}
}

func TestResolveOverridesOnlyNamedFields(t *testing.T) {
	proj, err := LoadProject(writeProject(t, projectYAML))
	if err != nil {
		t.Fatal(err)
	}

	set, err := proj.Resolve(proj.Lots[1])
	if err != nil {
		t.Fatal(err)
	}
	if set.Normative.MaxHeight != 24.0 {
		t.Errorf("expected override max_height 24.0, got %f", set.Normative.MaxHeight)
	}
	// Sibling fields in the overridden section keep the project layer.
	if set.Normative.MaxFAR != 2.0 {
		t.Errorf("expected project max_far 2.0 to survive, got %f", set.Normative.MaxFAR)
	}
	if set.Strategy.ModelingMode != ModeAdvanced {
		t.Errorf("expected untouched strategy section, got %q", set.Strategy.ModelingMode)
	}

	// Resolving one lot must not leak into the shared layer.
	if proj.Params.Normative.MaxHeight != 36.0 {
		t.Errorf("project layer mutated: %f", proj.Params.Normative.MaxHeight)
	}
}

func TestLoadProjectMissingFile(t *testing.T) {
	if _, err := LoadProject(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing project file")
	}
}

func TestFloorHeightSelection(t *testing.T) {
	n := Normative{GFFloorHeight: 4.0, UFFloorHeight: 3.0}
	if n.FloorHeight(1) != 4.0 {
		t.Errorf("expected ground floor height 4.0, got %f", n.FloorHeight(1))
	}
	if n.FloorHeight(2) != 3.0 || n.FloorHeight(14) != 3.0 {
		t.Error("expected upper floor height 3.0")
	}
}

// --- Schema validation ---

func TestValidateSchemaAcceptsDefaults(t *testing.T) {
	r := ValidateSchema(DefaultSet())
	if !r.Valid {
		t.Errorf("defaults must validate, got errors: %v", r.Errors)
	}
}

func TestValidateSchemaRejectsNegativeSetback(t *testing.T) {
	set := DefaultSet()
	set.Normative.MinBackSetback = -1
	r := ValidateSchema(set)
	if r.Valid {
		t.Error("expected a schema error for a negative setback")
	}
}

func TestValidateSchemaErrorOrderIsStable(t *testing.T) {
	set := DefaultSet()
	set.Normative.MaxHeight = -1
	set.Normative.MinBackSetback = -1
	set.Parking.AreaPerSlot = -1
	set.Normative.UFFloorHeight = 0

	first := ValidateSchema(set)
	if len(first.Errors) != 4 {
		t.Fatalf("expected 4 errors, got %d", len(first.Errors))
	}
	// Results follow the declared check order, starting with max_height.
	if first.Errors[0].Path != "normative_parameters.max_height" {
		t.Errorf("unexpected first error %q", first.Errors[0].Path)
	}
	for range 10 {
		again := ValidateSchema(set)
		for i := range first.Errors {
			if again.Errors[i].Path != first.Errors[i].Path {
				t.Fatalf("error order changed between runs: %q vs %q",
					again.Errors[i].Path, first.Errors[i].Path)
			}
		}
	}
}

func TestValidateSchemaRejectsZeroFloorHeight(t *testing.T) {
	set := DefaultSet()
	set.Normative.UFFloorHeight = 0
	if ValidateSchema(set).Valid {
		t.Error("expected a schema error for a zero floor height")
	}
}

func TestValidateSchemaRejectsBadMode(t *testing.T) {
	set := DefaultSet()
	set.Strategy.ModelingMode = "aggressive"
	if ValidateSchema(set).Valid {
		t.Error("expected a schema error for an unknown modeling mode")
	}
}

func TestValidateSchemaRejectsOutOfRangeRatioStep(t *testing.T) {
	set := DefaultSet()
	set.Strategy.ModelingMode = ModeAdvanced
	set.Strategy.ShapeRatioSteps = []float64{0.4, 1.5}
	if ValidateSchema(set).Valid {
		t.Error("expected a schema error for a ratio step above 1")
	}
}

func TestValidateSchemaWarnsOnEmptyAdvancedGrid(t *testing.T) {
	set := DefaultSet()
	set.Strategy.ModelingMode = ModeAdvanced
	set.Strategy.ShapeRatioSteps = nil
	r := ValidateSchema(set)
	if !r.Valid {
		t.Errorf("an empty grid is a warning, not an error: %v", r.Errors)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning about the empty grid-search space")
	}
}

func TestValidateSchemaRejectsCoreFractionOfOne(t *testing.T) {
	set := DefaultSet()
	set.Architectural.CoreAreaFraction = 1.0
	if ValidateSchema(set).Valid {
		t.Error("expected a schema error for core_area_fraction = 1")
	}
}
