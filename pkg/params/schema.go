package params

import (
	"fmt"

	"github.com/eluisluzquadros/cogniticy/pkg/validation"
)

// ValidateSchema checks structural correctness of a parameter set before
// any computation. Out-of-range values fail the lot they belong to, not the
// whole batch.
func ValidateSchema(s Set) *validation.Report {
	r := validation.NewReport()

	// Fixed slices, not maps: reports must list results in a stable order.
	nonNegative := []struct {
		path  string
		value float64
	}{
		{"normative_parameters.max_height", s.Normative.MaxHeight},
		{"normative_parameters.max_far", s.Normative.MaxFAR},
		{"normative_parameters.max_lot_coverage", s.Normative.MaxLotCoverage},
		{"normative_parameters.min_front_setback", s.Normative.MinFrontSetback},
		{"normative_parameters.min_back_setback", s.Normative.MinBackSetback},
		{"normative_parameters.min_side_setback", s.Normative.MinSideSetback},
		{"normative_parameters.back_setback_percent", s.Normative.BackSetbackPercent},
		{"architectural_parameters.min_floor_area", s.Architectural.MinFloorArea},
		{"architectural_parameters.min_unit_width", s.Architectural.MinUnitWidth},
		{"architectural_parameters.target_unit_area", s.Architectural.TargetUnitArea},
		{"architectural_parameters.min_patios_dimension", s.Architectural.MinPatiosDim},
		{"parking_parameters.parking_ratio_residential", s.Parking.RatioResidential},
		{"parking_parameters.parking_ratio_commercial", s.Parking.RatioCommercial},
		{"parking_parameters.commercial_area_for_parking_ratio", s.Parking.CommercialAreaPerStall},
		{"parking_parameters.parking_area_per_slot", s.Parking.AreaPerSlot},
		{"parking_parameters.ramp_area_per_floor", s.Parking.RampAreaPerFloor},
	}
	for _, c := range nonNegative {
		if c.value < 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("%s must be non-negative", c.path),
				Path:        c.path,
				LotID:       s.Zoning.LotID,
				ActualValue: c.value,
				Expected:    ">= 0",
			})
		}
	}

	positive := []struct {
		path  string
		value float64
	}{
		{"normative_parameters.gf_floor_height", s.Normative.GFFloorHeight},
		{"normative_parameters.uf_floor_height", s.Normative.UFFloorHeight},
	}
	for _, c := range positive {
		if c.value <= 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("%s must be greater than 0", c.path),
				Path:        c.path,
				LotID:       s.Zoning.LotID,
				ActualValue: c.value,
				Expected:    "> 0",
			})
		}
	}

	if s.Normative.MinSetbackStartFloor < 1 {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "min_setback_start_floor must be at least 1",
			Path:        "normative_parameters.min_setback_start_floor",
			LotID:       s.Zoning.LotID,
			ActualValue: s.Normative.MinSetbackStartFloor,
			Expected:    ">= 1",
		})
	}

	if f := s.Architectural.CoreAreaFraction; f < 0 || f >= 1 {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "core_area_fraction must be in [0, 1)",
			Path:        "architectural_parameters.core_area_fraction",
			LotID:       s.Zoning.LotID,
			ActualValue: f,
			Expected:    "[0, 1)",
		})
	}

	if m := s.Strategy.ModelingMode; m != ModeBasic && m != ModeAdvanced {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "modeling_mode must be basic or advanced",
			Path:        "modeling_strategy.modeling_mode",
			LotID:       s.Zoning.LotID,
			ActualValue: m,
			Expected:    "basic | advanced",
		})
	}

	switch s.Strategy.Objective {
	case ObjectiveMaxFAR, ObjectiveMaxUnits, ObjectiveMaxEfficiency:
	default:
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "unknown optimization_objective",
			Path:        "modeling_strategy.optimization_objective",
			LotID:       s.Zoning.LotID,
			ActualValue: s.Strategy.Objective,
			Expected:    fmt.Sprintf("%s | %s | %s", ObjectiveMaxFAR, ObjectiveMaxUnits, ObjectiveMaxEfficiency),
		})
	}

	if s.Advanced() {
		for i, ratio := range s.Strategy.ShapeRatioSteps {
			if ratio <= 0 || ratio > 1 {
				r.AddError(validation.Result{
					Level:       validation.LevelSchema,
					Message:     "shape_ratio_steps entries must be in (0, 1]",
					Path:        fmt.Sprintf("modeling_strategy.shape_ratio_steps[%d]", i),
					LotID:       s.Zoning.LotID,
					ActualValue: ratio,
					Expected:    "(0, 1]",
				})
			}
		}
		if len(s.Strategy.ShapeRatioSteps) == 0 || len(s.Strategy.OrientationSteps) == 0 {
			r.AddWarning(validation.Result{
				Level:   validation.LevelSchema,
				Message: "advanced mode with an empty grid-search space; only the orthogonal shape will be evaluated",
				Path:    "modeling_strategy",
				LotID:   s.Zoning.LotID,
			})
		}
	}

	if s.Parking.LevelsAllowed < 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "parking_levels_allowed must be non-negative",
			Path:        "parking_parameters.parking_levels_allowed",
			LotID:       s.Zoning.LotID,
			ActualValue: s.Parking.LevelsAllowed,
			Expected:    ">= 0",
		})
	}

	return r
}
