package params

// Set is the resolved, immutable parameter bundle for one lot: the merge of
// defaults, project and per-lot layers (the merge itself happens at load
// time; the engine only reads the result).
type Set struct {
	Zoning        Zoning        `yaml:"zoning_parameters" json:"zoning_parameters"`
	Normative     Normative     `yaml:"normative_parameters" json:"normative_parameters"`
	Architectural Architectural `yaml:"architectural_parameters" json:"architectural_parameters"`
	Parking       Parking       `yaml:"parking_parameters" json:"parking_parameters"`
	Strategy      Strategy      `yaml:"modeling_strategy" json:"modeling_strategy"`
}

// Zoning identifies the lot and its zone.
type Zoning struct {
	LotID string `yaml:"lot_id" json:"lot_id"`
	Zone  string `yaml:"zone" json:"zone"`
}

// Normative holds the zoning-code envelope rules.
type Normative struct {
	MaxHeight            float64 `yaml:"max_height" json:"max_height"`
	MaxFAR               float64 `yaml:"max_far" json:"max_far"`
	MaxLotCoverage       float64 `yaml:"max_lot_coverage" json:"max_lot_coverage"`
	MinFrontSetback      float64 `yaml:"min_front_setback" json:"min_front_setback"`
	MinBackSetback       float64 `yaml:"min_back_setback" json:"min_back_setback"`
	MinSideSetback       float64 `yaml:"min_side_setback" json:"min_side_setback"`
	GFFloorHeight        float64 `yaml:"gf_floor_height" json:"gf_floor_height"`
	UFFloorHeight        float64 `yaml:"uf_floor_height" json:"uf_floor_height"`
	MinSetbackStartFloor int     `yaml:"min_setback_start_floor" json:"min_setback_start_floor"`
	BackSetbackPercent   float64 `yaml:"back_setback_percent" json:"back_setback_percent"`
}

// Architectural holds the building-design minimums.
type Architectural struct {
	MinFloorArea      float64 `yaml:"min_floor_area" json:"min_floor_area"`
	MinUnitWidth      float64 `yaml:"min_unit_width" json:"min_unit_width"`
	TargetUnitArea    float64 `yaml:"target_unit_area" json:"target_unit_area"`
	MinPatiosDim      float64 `yaml:"min_patios_dimension" json:"min_patios_dimension"`
	CoreAreaFraction  float64 `yaml:"core_area_fraction" json:"core_area_fraction"`
	TargetEfficiency  float64 `yaml:"target_efficiency" json:"target_efficiency"`
	SlendernessRatio  float64 `yaml:"slenderness_ratio" json:"slenderness_ratio"`   // reserved, not enforced
	NumUnitsTarget    int     `yaml:"num_units_target" json:"num_units_target"`     // reserved, not enforced
}

// Parking holds the stall-derivation and level-distribution rules.
type Parking struct {
	RatioResidential       float64 `yaml:"parking_ratio_residential" json:"parking_ratio_residential"`
	RatioCommercial        float64 `yaml:"parking_ratio_commercial" json:"parking_ratio_commercial"`
	CommercialAreaPerStall float64 `yaml:"commercial_area_for_parking_ratio" json:"commercial_area_for_parking_ratio"`
	AreaPerSlot            float64 `yaml:"parking_area_per_slot" json:"parking_area_per_slot"`
	RampAreaPerFloor       float64 `yaml:"ramp_area_per_floor" json:"ramp_area_per_floor"`
	LevelsAllowed          int     `yaml:"parking_levels_allowed" json:"parking_levels_allowed"`
	Type                   string  `yaml:"parking_type" json:"parking_type"`
	IncludeInFAR           bool    `yaml:"include_parking_in_far" json:"include_parking_in_far"`
	CommercialGroundFloor  float64 `yaml:"commercial_ground_floor" json:"commercial_ground_floor"`
	MaxParkingRatio        float64 `yaml:"max_parking_ratio" json:"max_parking_ratio"` // reserved, not enforced
}

// Modeling modes.
const (
	ModeBasic    = "basic"
	ModeAdvanced = "advanced"
)

// Optimization objectives.
const (
	ObjectiveMaxFAR        = "maximize_far_within_height"
	ObjectiveMaxUnits      = "maximize_units"
	ObjectiveMaxEfficiency = "maximize_efficiency"
)

// Strategy selects the modeling mode, objective, and the grid-search space.
type Strategy struct {
	ModelingMode     string    `yaml:"modeling_mode" json:"modeling_mode"`
	Objective        string    `yaml:"optimization_objective" json:"optimization_objective"`
	ShapeRatioSteps  []float64 `yaml:"shape_ratio_steps" json:"shape_ratio_steps"`
	OrientationSteps []float64 `yaml:"orientation_steps" json:"orientation_steps"` // degrees
	MaxFloorCount    int       `yaml:"max_floor_count" json:"max_floor_count"`     // defensive limit, not a zoning rule
}

// Advanced reports whether the shape grid search is enabled.
func (s Set) Advanced() bool {
	return s.Strategy.ModelingMode == ModeAdvanced
}

// FloorHeight returns the floor-to-floor height for a 1-based floor index.
func (n Normative) FloorHeight(floorIndex int) float64 {
	if floorIndex <= 1 {
		return n.GFFloorHeight
	}
	return n.UFFloorHeight
}

// DefaultSet returns the built-in defaults used when a project file omits a
// field. Values mirror the shipped default configuration.
func DefaultSet() Set {
	return Set{
		Normative: Normative{
			MaxHeight:            45.0,
			MaxFAR:               2.5,
			MaxLotCoverage:       0.7,
			MinFrontSetback:      4.0,
			MinBackSetback:       3.0,
			MinSideSetback:       1.5,
			GFFloorHeight:        4.0,
			UFFloorHeight:        3.0,
			MinSetbackStartFloor: 3,
			BackSetbackPercent:   0.0,
		},
		Architectural: Architectural{
			MinFloorArea:     50.0,
			MinUnitWidth:     5.0,
			TargetUnitArea:   50.0,
			MinPatiosDim:     0.0,
			CoreAreaFraction: 0.15,
			TargetEfficiency: 0.85,
		},
		Parking: Parking{
			RatioResidential:       1.0,
			RatioCommercial:        1.0,
			CommercialAreaPerStall: 50.0,
			AreaPerSlot:            25.0,
			RampAreaPerFloor:       0.15,
			LevelsAllowed:          2,
			Type:                   "underground",
			IncludeInFAR:           false,
			CommercialGroundFloor:  0.0,
		},
		Strategy: Strategy{
			ModelingMode:     ModeBasic,
			Objective:        ObjectiveMaxFAR,
			ShapeRatioSteps:  []float64{0.4, 0.5, 0.6},
			OrientationSteps: []float64{0, 90},
			MaxFloorCount:    200,
		},
	}
}
