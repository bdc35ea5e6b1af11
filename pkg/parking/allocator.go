// Package parking derives required stall counts and areas from the
// residential and commercial program of a floor stack and distributes them
// across parking levels.
package parking

import (
	"math"

	"github.com/eluisluzquadros/cogniticy/pkg/massing"
	"github.com/eluisluzquadros/cogniticy/pkg/params"
)

// Level is one allocated parking level.
type Level struct {
	Index int     `json:"level"` // 1-based, counting away from grade
	Area  float64 `json:"area"`
	Type  string  `json:"type"`
}

// Plan is the parking allocation for one building. A shortfall is a
// reported condition, never a hard failure.
type Plan struct {
	RequiredStalls int     `json:"required_stalls"`
	RequiredArea   float64 `json:"required_area"`
	ProvidedStalls int     `json:"provided_stalls"`
	ProvidedArea   float64 `json:"provided_area"`
	Levels         []Level `json:"levels"`
	Shortfall      bool    `json:"shortfall"`
	ShortfallArea  float64 `json:"shortfall_area"`
	IncludeInFAR   bool    `json:"include_in_far"`
}

// Allocate computes the parking plan for a finished floor stack.
//
// Required stalls combine the residential ratio per unit with the
// commercial ratio per tranche of commercial area; the commercial area is
// the configured fraction of the ground floor. Required area adds the ramp
// overhead per level. Levels are filled up to the allowed count at the
// capacity of the ground footprint; unmet demand is flagged as a
// shortfall rather than silently expanding levels.
func Allocate(stack massing.FloorStack, set params.Set) Plan {
	p := set.Parking
	plan := Plan{IncludeInFAR: p.IncludeInFAR}

	units := stack.UnitEstimate(set.Architectural)
	commercialArea := stack.GroundArea() * p.CommercialGroundFloor

	required := float64(units) * p.RatioResidential
	if p.CommercialAreaPerStall > 0 {
		required += commercialArea / p.CommercialAreaPerStall * p.RatioCommercial
	}
	plan.RequiredStalls = int(math.Ceil(required - 1e-9))
	plan.RequiredArea = float64(plan.RequiredStalls) * p.AreaPerSlot * (1 + p.RampAreaPerFloor)

	levelCapacity := stack.GroundArea()
	if levelCapacity <= 0 || p.LevelsAllowed <= 0 {
		if plan.RequiredArea > 0 {
			plan.Shortfall = true
			plan.ShortfallArea = plan.RequiredArea
		}
		return plan
	}

	remaining := plan.RequiredArea
	for i := 1; i <= p.LevelsAllowed && remaining > 1e-9; i++ {
		area := math.Min(remaining, levelCapacity)
		plan.Levels = append(plan.Levels, Level{Index: i, Area: area, Type: p.Type})
		plan.ProvidedArea += area
		remaining -= area
	}
	if remaining > 1e-9 {
		plan.Shortfall = true
		plan.ShortfallArea = remaining
	}

	if p.AreaPerSlot > 0 {
		perStall := p.AreaPerSlot * (1 + p.RampAreaPerFloor)
		plan.ProvidedStalls = int(math.Floor(plan.ProvidedArea/perStall + 1e-9))
	}
	return plan
}
