package massing

import (
	"fmt"

	"github.com/eluisluzquadros/cogniticy/pkg/geo"
	"github.com/eluisluzquadros/cogniticy/pkg/lot"
	"github.com/eluisluzquadros/cogniticy/pkg/params"
)

// heightTolerance absorbs float accumulation when comparing against the
// height cap, matching the behavior of prior implementations.
const heightTolerance = 1.0001

// defaultMaxFloorCount is the defensive floor-count limit applied when the
// strategy leaves it unset. Not a zoning rule.
const defaultMaxFloorCount = 200

// FloorRecord is one generated floor. Immutable once built.
type FloorRecord struct {
	Index         int         `json:"floor_number"` // 1-based, ground floor = 1
	Name          string      `json:"floor_name"`
	BaseElevation float64     `json:"base_height"`
	FloorHeight   float64     `json:"floor_height"`
	Footprint     geo.Polygon `json:"-"`
	Area          float64     `json:"floor_area"`
	Applied       Offsets     `json:"applied_setbacks"`
	HasSetback    bool        `json:"has_setback"`
	Shape         Shape       `json:"shape,omitzero"` // only set on shape-search variants
}

// TopElevation returns the elevation of the floor's ceiling slab.
func (f FloorRecord) TopElevation() float64 {
	return f.BaseElevation + f.FloorHeight
}

// FloorStack is an ordered sequence of floors with monotonically increasing
// base elevation, terminated at the height cap or at the first degenerate
// footprint.
type FloorStack struct {
	Floors []FloorRecord `json:"floors"`
}

// IsEmpty reports whether no floor fit on the lot (infeasibility).
func (s FloorStack) IsEmpty() bool {
	return len(s.Floors) == 0
}

// NumFloors returns the floor count.
func (s FloorStack) NumFloors() int {
	return len(s.Floors)
}

// TotalArea returns the summed floor area.
func (s FloorStack) TotalArea() float64 {
	total := 0.0
	for _, f := range s.Floors {
		total += f.Area
	}
	return total
}

// TotalHeight returns the top elevation of the last floor.
func (s FloorStack) TotalHeight() float64 {
	if len(s.Floors) == 0 {
		return 0
	}
	return s.Floors[len(s.Floors)-1].TopElevation()
}

// GroundArea returns the ground-floor footprint area, or 0 for an empty stack.
func (s FloorStack) GroundArea() float64 {
	if len(s.Floors) == 0 {
		return 0
	}
	return s.Floors[0].Area
}

// FAR returns the achieved floor-area-ratio against the given lot area.
func (s FloorStack) FAR(lotArea float64) float64 {
	if lotArea < 1e-9 {
		return 0
	}
	return s.TotalArea() / lotArea
}

// floorName labels floors for export: the ground floor is "Ground", upper
// floors are numbered.
func floorName(index int) string {
	if index == 1 {
		return "Ground"
	}
	return fmt.Sprintf("Floor %d", index)
}

// StackBuilder generates floor stacks for one lot under one parameter set.
// It is stateless across builds: the same builder can evaluate many shape
// candidates, concurrently, because every Build call only reads the
// immutable lot and parameters.
type StackBuilder struct {
	lot    lot.Geometry
	set    params.Set
	engine SetbackEngine
	gen    FootprintGenerator
}

// NewStackBuilder creates a builder for the lot and its resolved parameters.
func NewStackBuilder(g lot.Geometry, set params.Set) StackBuilder {
	return StackBuilder{
		lot:    g,
		set:    set,
		engine: NewSetbackEngine(set.Normative),
		gen:    NewFootprintGenerator(g, set.Architectural),
	}
}

// Build generates the floor stack for one shape candidate. The shape is
// constant across floors. An empty stack means not even the ground floor
// fits; callers report that as infeasibility, not as an error.
func (b StackBuilder) Build(shape Shape) FloorStack {
	maxFloors := b.set.Strategy.MaxFloorCount
	if maxFloors <= 0 {
		maxFloors = defaultMaxFloorCount
	}

	var stack FloorStack
	accumHeight := 0.0
	for index := 1; index <= maxFloors; index++ {
		floorHeight := b.set.Normative.FloorHeight(index)
		if accumHeight+floorHeight > b.set.Normative.MaxHeight*heightTolerance {
			break
		}

		offsets := b.engine.Offsets(index, accumHeight)
		fp, rejected := b.gen.Generate(offsets, shape)
		if rejected != nil {
			break
		}

		rec := FloorRecord{
			Index:         index,
			Name:          floorName(index),
			BaseElevation: accumHeight,
			FloorHeight:   floorHeight,
			Footprint:     fp.Polygon,
			Area:          fp.Area,
			Applied:       offsets,
			HasSetback:    fp.HasSetback,
		}
		// Baseline floors carry no shape variant; the identifier belongs
		// to shape-search output only.
		if !shape.IsIdentity() {
			rec.Shape = shape
		}
		stack.Floors = append(stack.Floors, rec)
		accumHeight += floorHeight
	}
	return stack
}

// BuildBaseline generates the plain orthogonal stack with no shape search.
func (b StackBuilder) BuildBaseline() FloorStack {
	return b.Build(IdentityShape)
}
