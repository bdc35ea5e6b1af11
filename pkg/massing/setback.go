// Package massing turns a lot polygon, its face classification, and a
// normative parameter set into a legally compliant stack of floor
// footprints.
package massing

import (
	"math"

	"github.com/eluisluzquadros/cogniticy/pkg/params"
)

// Offsets are the inward setback distances for one floor, per face role.
type Offsets struct {
	Front float64 `json:"front"`
	Back  float64 `json:"back"`
	Side  float64 `json:"side"`
}

// Any reports whether any offset is positive.
func (o Offsets) Any() bool {
	return o.Front > 0 || o.Back > 0 || o.Side > 0
}

// SetbackEngine computes per-floor setback distances from the normative
// parameters. It is a pure function of its inputs.
type SetbackEngine struct {
	norm params.Normative
}

// NewSetbackEngine creates an engine for one lot's normative parameters.
func NewSetbackEngine(norm params.Normative) SetbackEngine {
	return SetbackEngine{norm: norm}
}

// Offsets returns the setback distances for the given 1-based floor index.
// accumHeight is the sum of floor-to-floor heights of all floors strictly
// below floorIndex.
//
// Front and side offsets are the fixed minimums on every floor. The back
// offset escalates with accumulated height once the start floor is
// reached: max(min_back_setback, back_setback_percent × accumHeight).
func (e SetbackEngine) Offsets(floorIndex int, accumHeight float64) Offsets {
	o := Offsets{
		Front: e.norm.MinFrontSetback,
		Back:  e.norm.MinBackSetback,
		Side:  e.norm.MinSideSetback,
	}
	if floorIndex >= e.norm.MinSetbackStartFloor {
		o.Back = math.Max(e.norm.MinBackSetback, e.norm.BackSetbackPercent*accumHeight)
	}
	return o
}
