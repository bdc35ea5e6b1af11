package massing

import (
	"math"

	"github.com/eluisluzquadros/cogniticy/pkg/params"
)

// UsableArea returns the summed non-core floor area across the stack.
func (s FloorStack) UsableArea(arch params.Architectural) float64 {
	return s.TotalArea() * (1 - arch.CoreAreaFraction)
}

// UnitEstimate derives the unit count: per floor, usable area divided by the
// target unit area, floored to an integer, then summed.
func (s FloorStack) UnitEstimate(arch params.Architectural) int {
	if arch.TargetUnitArea <= 0 {
		return 0
	}
	units := 0
	for _, f := range s.Floors {
		usable := f.Area * (1 - arch.CoreAreaFraction)
		units += int(math.Floor(usable / arch.TargetUnitArea))
	}
	return units
}

// Efficiency returns the floor-area-weighted mean of usable over gross area.
func (s FloorStack) Efficiency(arch params.Architectural) float64 {
	total := s.TotalArea()
	if total < 1e-9 {
		return 0
	}
	weighted := 0.0
	for _, f := range s.Floors {
		eff := 1 - arch.CoreAreaFraction
		weighted += eff * f.Area
	}
	return weighted / total
}

// Slenderness returns total height over the narrowest footprint width, the
// ratio reported alongside the summary metrics. Returns 0 for an empty
// stack or a degenerate footprint.
func (s FloorStack) Slenderness() float64 {
	if s.IsEmpty() {
		return 0
	}
	minWidth := s.Floors[0].Footprint.MinWidth()
	if minWidth < 1e-9 {
		return 0
	}
	return s.TotalHeight() / minWidth
}
