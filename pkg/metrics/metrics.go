// Package metrics reduces finished floor stacks into summary figures for
// the cross-lot report. Pure reductions; stacks handed in are assumed
// already validated by their builders.
package metrics

import (
	"fmt"

	"github.com/eluisluzquadros/cogniticy/pkg/lot"
	"github.com/eluisluzquadros/cogniticy/pkg/massing"
	"github.com/eluisluzquadros/cogniticy/pkg/params"
	"github.com/eluisluzquadros/cogniticy/pkg/parking"
)

// complianceTolerance allows a 0.1% overrun before a limit counts as
// violated, absorbing float accumulation across floors.
const complianceTolerance = 1.001

// Summary aggregates one floor stack. Computed once, never mutated.
type Summary struct {
	LotID          string   `json:"lot_id"`
	NumFloors      int      `json:"num_floors"`
	TotalHeight    float64  `json:"total_height"`
	GrossFloorArea float64  `json:"gross_floor_area"`
	AchievedFAR    float64  `json:"achieved_far"`
	LotCoverage    float64  `json:"lot_coverage"`
	UnitEstimate   int      `json:"unit_estimate"`
	Efficiency     float64  `json:"efficiency"`
	Slenderness    float64  `json:"slenderness"`
	ObjectiveValue float64  `json:"objective_value"`
	ParkingStalls  int      `json:"parking_stalls_provided"`
	ParkingArea    float64  `json:"parking_area_provided"`
	ParkingReqArea float64  `json:"parking_area_required"`
	ParkingShort   bool     `json:"parking_shortfall"`
	Compliant      bool     `json:"compliant"`
	Violations     []string `json:"violations,omitempty"`
}

// Summarize reduces a stack and its parking plan into summary metrics.
// When the parking plan is included in FAR accounting, its provided area
// counts toward gross floor area and the achieved ratio.
func Summarize(stack massing.FloorStack, plan parking.Plan, g lot.Geometry, set params.Set) Summary {
	lotArea := g.Area()
	gross := stack.TotalArea()
	if plan.IncludeInFAR {
		gross += plan.ProvidedArea
	}
	far := 0.0
	coverage := 0.0
	if lotArea > 1e-9 {
		far = gross / lotArea
		coverage = stack.GroundArea() / lotArea
	}

	s := Summary{
		LotID:          set.Zoning.LotID,
		NumFloors:      stack.NumFloors(),
		TotalHeight:    stack.TotalHeight(),
		GrossFloorArea: gross,
		AchievedFAR:    far,
		LotCoverage:    coverage,
		UnitEstimate:   stack.UnitEstimate(set.Architectural),
		Efficiency:     stack.Efficiency(set.Architectural),
		Slenderness:    stack.Slenderness(),
		ParkingStalls:  plan.ProvidedStalls,
		ParkingArea:    plan.ProvidedArea,
		ParkingReqArea: plan.RequiredArea,
		ParkingShort:   plan.Shortfall,
	}
	s.Compliant, s.Violations = compliance(s, set.Normative)
	return s
}

// compliance checks the summary against the normative caps: height, FAR,
// and lot coverage, each with the shared tolerance.
func compliance(s Summary, norm params.Normative) (bool, []string) {
	var violations []string
	if norm.MaxHeight > 0 && s.TotalHeight > norm.MaxHeight*complianceTolerance {
		violations = append(violations,
			fmt.Sprintf("height exceeded: %.2f m > %.2f m", s.TotalHeight, norm.MaxHeight))
	}
	if norm.MaxFAR > 0 && s.AchievedFAR > norm.MaxFAR*complianceTolerance {
		violations = append(violations,
			fmt.Sprintf("FAR exceeded: %.3f > %.3f", s.AchievedFAR, norm.MaxFAR))
	}
	if norm.MaxLotCoverage > 0 && s.LotCoverage > norm.MaxLotCoverage*complianceTolerance {
		violations = append(violations,
			fmt.Sprintf("lot coverage exceeded: %.3f > %.3f", s.LotCoverage, norm.MaxLotCoverage))
	}
	return len(violations) == 0, violations
}
