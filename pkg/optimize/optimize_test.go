package optimize

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/eluisluzquadros/cogniticy/pkg/geo"
	"github.com/eluisluzquadros/cogniticy/pkg/lot"
	"github.com/eluisluzquadros/cogniticy/pkg/massing"
	"github.com/eluisluzquadros/cogniticy/pkg/params"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func rectLot(width, depth float64) lot.Geometry {
	return lot.Geometry{
		ID: "test-lot",
		Boundary: geo.NewPolygon(
			geo.Pt(0, 0), geo.Pt(width, 0), geo.Pt(width, depth), geo.Pt(0, depth),
		),
		Faces: []lot.Face{
			{Role: lot.RoleFront, A: geo.Pt(0, 0), B: geo.Pt(width, 0)},
			{Role: lot.RoleSide, A: geo.Pt(width, 0), B: geo.Pt(width, depth)},
			{Role: lot.RoleBack, A: geo.Pt(width, depth), B: geo.Pt(0, depth)},
			{Role: lot.RoleSide, A: geo.Pt(0, depth), B: geo.Pt(0, 0)},
		},
	}
}

func testSet() params.Set {
	set := params.DefaultSet()
	set.Normative.MaxHeight = 45.0
	set.Normative.MaxFAR = 20.0 // generous so the baseline is feasible
	set.Normative.MinFrontSetback = 5.0
	set.Normative.MinBackSetback = 3.0
	set.Normative.MinSideSetback = 1.5
	set.Normative.MinSetbackStartFloor = 4
	set.Normative.BackSetbackPercent = 0.20
	return set
}

// --- Candidate space tests ---

func TestCandidateSpaceBasicMode(t *testing.T) {
	set := testSet()
	set.Strategy.ModelingMode = params.ModeBasic
	shapes := CandidateSpace(set)
	if len(shapes) != 1 || !shapes[0].IsIdentity() {
		t.Errorf("expected single identity shape, got %v", shapes)
	}
}

func TestCandidateSpaceAdvancedGrid(t *testing.T) {
	set := testSet()
	set.Strategy.ModelingMode = params.ModeAdvanced
	set.Strategy.ShapeRatioSteps = []float64{0.4, 0.5, 0.6}
	set.Strategy.OrientationSteps = []float64{0, 90}
	shapes := CandidateSpace(set)
	if len(shapes) != 6 {
		t.Fatalf("expected 6 candidates, got %d", len(shapes))
	}
	if shapes[0].Ratio != 0.4 || shapes[0].Orientation != 0 {
		t.Errorf("unexpected first candidate %v", shapes[0])
	}
	if shapes[5].Ratio != 0.6 || shapes[5].Orientation != 90 {
		t.Errorf("unexpected last candidate %v", shapes[5])
	}
}

func TestCandidateSpaceAdvancedEmptyGridFallsBack(t *testing.T) {
	set := testSet()
	set.Strategy.ModelingMode = params.ModeAdvanced
	set.Strategy.ShapeRatioSteps = nil
	shapes := CandidateSpace(set)
	if len(shapes) != 1 || !shapes[0].IsIdentity() {
		t.Errorf("expected identity fallback, got %v", shapes)
	}
}

// --- Score tests ---

func TestScoreEmptyStackIsNegInf(t *testing.T) {
	score := Score(massing.FloorStack{}, 1250, testSet())
	if !math.IsInf(score, -1) {
		t.Errorf("expected -Inf for empty stack, got %f", score)
	}
}

func TestScoreExcludesOverCapFAR(t *testing.T) {
	set := testSet()
	set.Normative.MaxFAR = 2.5 // 1250 m2 lot tops out at 3125 m2

	builder := massing.NewStackBuilder(rectLot(25, 50), set)
	stack := builder.BuildBaseline()
	if stack.TotalArea() <= 3125 {
		t.Fatalf("fixture must exceed the cap, got %f m2", stack.TotalArea())
	}
	score := Score(stack, 1250, set)
	if !math.IsInf(score, -1) {
		t.Errorf("over-cap candidate must score -Inf, got %f", score)
	}
}

func TestObjectiveValueStaysFiniteOverCap(t *testing.T) {
	set := testSet()
	set.Normative.MaxFAR = 2.5

	builder := massing.NewStackBuilder(rectLot(25, 50), set)
	stack := builder.BuildBaseline()
	far := stack.FAR(1250)
	if far <= set.Normative.MaxFAR {
		t.Fatalf("fixture must exceed the cap, got FAR %f", far)
	}

	// Selection penalizes the candidate; the reported figure does not.
	if s := Score(stack, 1250, set); !math.IsInf(s, -1) {
		t.Errorf("expected -Inf selection score, got %f", s)
	}
	if v := ObjectiveValue(stack, 1250, set); !approxEqual(v, far, 1e-9) {
		t.Errorf("expected reported value %f, got %f", far, v)
	}
}

func TestObjectiveValueEmptyStack(t *testing.T) {
	if v := ObjectiveValue(massing.FloorStack{}, 1250, testSet()); v != 0 {
		t.Errorf("expected 0 for an empty stack, got %f", v)
	}
}

func TestScoreObjectives(t *testing.T) {
	set := testSet()
	builder := massing.NewStackBuilder(rectLot(25, 50), set)
	stack := builder.BuildBaseline()

	set.Strategy.Objective = params.ObjectiveMaxFAR
	if got := Score(stack, 1250, set); !approxEqual(got, stack.FAR(1250), 1e-9) {
		t.Errorf("FAR objective: expected %f, got %f", stack.FAR(1250), got)
	}

	set.Strategy.Objective = params.ObjectiveMaxUnits
	if got := Score(stack, 1250, set); got != float64(stack.UnitEstimate(set.Architectural)) {
		t.Errorf("units objective: expected %d, got %f", stack.UnitEstimate(set.Architectural), got)
	}

	set.Strategy.Objective = params.ObjectiveMaxEfficiency
	if got := Score(stack, 1250, set); !approxEqual(got, stack.Efficiency(set.Architectural), 1e-9) {
		t.Errorf("efficiency objective: expected %f, got %f", stack.Efficiency(set.Architectural), got)
	}
}

// --- Search tests ---

func TestSearchBasicModeMatchesBaseline(t *testing.T) {
	set := testSet()
	set.Strategy.ModelingMode = params.ModeBasic
	g := rectLot(25, 50)

	result, err := Searcher{}.Search(context.Background(), g, set)
	if err != nil {
		t.Fatal(err)
	}
	if result.Best == nil {
		t.Fatal("expected a feasible best candidate")
	}
	if !result.Best.Shape.IsIdentity() {
		t.Errorf("basic mode must select the identity shape, got %v", result.Best.Shape)
	}

	baseline := massing.NewStackBuilder(g, set).BuildBaseline()
	if result.BestStack.NumFloors() != baseline.NumFloors() {
		t.Errorf("floor counts differ: %d vs %d", result.BestStack.NumFloors(), baseline.NumFloors())
	}
	if result.BestStack.TotalArea() != baseline.TotalArea() {
		t.Errorf("areas differ: %f vs %f", result.BestStack.TotalArea(), baseline.TotalArea())
	}
}

func TestSearchExcludesOverCapCandidates(t *testing.T) {
	// With a tight FAR cap the full-footprint baseline is over the cap and
	// must not be selected even though its raw floor area is the largest.
	set := testSet()
	set.Normative.MaxFAR = 2.5
	set.Strategy.ModelingMode = params.ModeAdvanced
	set.Strategy.ShapeRatioSteps = []float64{0.2, 1.0}
	set.Strategy.OrientationSteps = []float64{0}
	set.Architectural.MinFloorArea = 1
	set.Architectural.MinUnitWidth = 1
	g := rectLot(25, 50)

	result, err := Searcher{Workers: 2}.Search(context.Background(), g, set)
	if err != nil {
		t.Fatal(err)
	}
	if result.Evaluated != 2 {
		t.Errorf("expected 2 candidates evaluated, got %d", result.Evaluated)
	}
	if result.Best == nil {
		t.Fatal("expected the slab candidate to be feasible")
	}
	if result.Best.Shape.Ratio != 0.2 {
		t.Errorf("expected the ratio-0.2 slab to win under the cap, got %v", result.Best.Shape)
	}
	if result.BestStack.FAR(g.Area()) > set.Normative.MaxFAR*1.001 {
		t.Errorf("selected candidate exceeds the cap: FAR %f", result.BestStack.FAR(g.Area()))
	}
}

func TestSearchNoFeasibleCandidate(t *testing.T) {
	set := testSet()
	set.Normative.MinFrontSetback = 26
	set.Normative.MinBackSetback = 26

	result, err := Searcher{}.Search(context.Background(), rectLot(25, 50), set)
	if err != nil {
		t.Fatal(err)
	}
	if result.Best != nil {
		t.Errorf("expected nil best on an infeasible lot, got %v", result.Best)
	}
	if result.Evaluated == 0 {
		t.Error("candidates must still be counted as evaluated")
	}
}

func TestSearchDeterministicUnderParallelism(t *testing.T) {
	set := testSet()
	set.Strategy.ModelingMode = params.ModeAdvanced
	set.Strategy.ShapeRatioSteps = []float64{0.4, 0.5, 0.6}
	set.Strategy.OrientationSteps = []float64{0, 45, 90}
	g := rectLot(25, 50)

	serial, err := Searcher{}.Search(context.Background(), g, set)
	if err != nil {
		t.Fatal(err)
	}
	if serial.Best == nil {
		t.Fatal("expected a feasible best candidate")
	}
	for range 5 {
		parallel, err := Searcher{Workers: 4}.Search(context.Background(), g, set)
		if err != nil {
			t.Fatal(err)
		}
		if parallel.Best == nil {
			t.Fatal("expected a feasible best candidate")
		}
		if *parallel.Best != *serial.Best {
			t.Errorf("parallel run selected %v, serial selected %v", *parallel.Best, *serial.Best)
		}
	}
}

func TestSearchSelectionIndependentOfEnumerationOrder(t *testing.T) {
	set := testSet()
	set.Strategy.ModelingMode = params.ModeAdvanced
	set.Strategy.ShapeRatioSteps = []float64{0.4, 0.5, 0.6}
	set.Strategy.OrientationSteps = []float64{0, 45, 90}
	g := rectLot(25, 50)

	want, err := Searcher{}.Search(context.Background(), g, set)
	if err != nil {
		t.Fatal(err)
	}
	if want.Best == nil {
		t.Fatal("expected a feasible best candidate")
	}

	shapes := CandidateSpace(set)
	builder := massing.NewStackBuilder(g, set)
	scores := make([]float64, len(shapes))
	for i, shape := range shapes {
		scores[i] = Score(builder.Build(shape), g.Area(), set)
	}

	// The tie-break is a strict total order, so scanning the candidates in
	// any permutation must land on the same winner as enumeration order.
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		bestIdx := -1
		for _, i := range rng.Perm(len(shapes)) {
			if math.IsInf(scores[i], -1) {
				continue
			}
			if bestIdx < 0 || better(shapes[i], scores[i], shapes[bestIdx], scores[bestIdx]) {
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			t.Fatal("expected a feasible candidate in the shuffled scan")
		}
		if shapes[bestIdx] != want.Best.Shape || scores[bestIdx] != want.Best.Score {
			t.Errorf("trial %d: shuffled scan selected %v (%f), enumeration order selected %v (%f)",
				trial, shapes[bestIdx], scores[bestIdx], want.Best.Shape, want.Best.Score)
		}
	}
}

func TestSearchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	set := testSet()
	set.Strategy.ModelingMode = params.ModeAdvanced
	set.Strategy.ShapeRatioSteps = []float64{0.4, 0.5, 0.6}
	set.Strategy.OrientationSteps = []float64{0, 90}

	_, err := Searcher{Workers: 2}.Search(ctx, rectLot(25, 50), set)
	if err == nil {
		t.Error("expected a context error from a cancelled search")
	}
}

// --- Tie-break tests ---

func TestBetterPrefersHigherScore(t *testing.T) {
	a := massing.Shape{Ratio: 0.6, Orientation: 90}
	b := massing.Shape{Ratio: 0.4, Orientation: 0}
	if !better(a, 2.0, b, 1.0) {
		t.Error("higher score must win regardless of shape")
	}
	if better(a, 1.0, b, 2.0) {
		t.Error("lower score must lose")
	}
}

func TestBetterTieBreaksOnRatioThenOrientation(t *testing.T) {
	if !better(massing.Shape{Ratio: 0.4, Orientation: 90}, 1.0, massing.Shape{Ratio: 0.5, Orientation: 0}, 1.0) {
		t.Error("equal scores: smaller ratio must win")
	}
	if !better(massing.Shape{Ratio: 0.4, Orientation: 0}, 1.0, massing.Shape{Ratio: 0.4, Orientation: 90}, 1.0) {
		t.Error("equal scores and ratios: smaller orientation must win")
	}
	if better(massing.Shape{Ratio: 0.4, Orientation: 90}, 1.0, massing.Shape{Ratio: 0.4, Orientation: 0}, 1.0) {
		t.Error("larger orientation must not displace the incumbent on a tie")
	}
}
