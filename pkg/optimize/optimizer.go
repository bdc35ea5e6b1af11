package optimize

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/eluisluzquadros/cogniticy/pkg/lot"
	"github.com/eluisluzquadros/cogniticy/pkg/massing"
	"github.com/eluisluzquadros/cogniticy/pkg/params"
)

// farTolerance lets a candidate sit a hair over the FAR cap before it is
// excluded, absorbing float accumulation across floors.
const farTolerance = 1.001

// Candidate pairs a shape with the score of its resulting floor stack.
type Candidate struct {
	Shape massing.Shape `json:"shape"`
	Score float64       `json:"score"`
}

// Result is the outcome of one grid search.
type Result struct {
	Best      *Candidate         `json:"best,omitempty"` // nil when no candidate is feasible
	BestStack massing.FloorStack `json:"-"`
	Evaluated int                `json:"evaluated"`
}

// Searcher runs the grid search for one lot. Candidate evaluations share no
// mutable state, so they run on parallel workers; selection is a
// deterministic scan over the enumeration order once all scores are in, so
// execution order never changes the winner.
type Searcher struct {
	Workers int // max parallel candidate evaluations; <=0 means serial
}

// Search builds a floor stack per candidate shape, scores it against the
// configured objective, and returns the best candidate under the
// deterministic tie-break (higher score, then smaller ratio, then smaller
// orientation). A nil Best means the search was exhausted with no feasible
// candidate; callers fall back to the baseline result.
func (s Searcher) Search(ctx context.Context, g lot.Geometry, set params.Set) (Result, error) {
	shapes := CandidateSpace(set)
	builder := massing.NewStackBuilder(g, set)

	scores := make([]float64, len(shapes))
	stacks := make([]massing.FloorStack, len(shapes))

	eg, ctx := errgroup.WithContext(ctx)
	if s.Workers > 0 {
		eg.SetLimit(s.Workers)
	} else {
		eg.SetLimit(1)
	}
	for i, shape := range shapes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stack := builder.Build(shape)
			stacks[i] = stack
			scores[i] = Score(stack, g.Area(), set)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Evaluated: len(shapes)}
	bestIdx := -1
	for i := range shapes {
		if math.IsInf(scores[i], -1) {
			continue
		}
		if bestIdx < 0 || better(shapes[i], scores[i], shapes[bestIdx], scores[bestIdx]) {
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		result.Best = &Candidate{Shape: shapes[bestIdx], Score: scores[bestIdx]}
		result.BestStack = stacks[bestIdx]
	}
	return result, nil
}

// better implements the selection order: higher score wins; on an exact
// tie the smaller shape ratio wins, then the smaller orientation.
func better(shape massing.Shape, score float64, bestShape massing.Shape, bestScore float64) bool {
	if score != bestScore {
		return score > bestScore
	}
	if shape.Ratio != bestShape.Ratio {
		return shape.Ratio < bestShape.Ratio
	}
	return shape.Orientation < bestShape.Orientation
}

// Score reduces a floor stack to the scalar used for candidate selection.
// Infeasible stacks, and FAR-objective candidates exceeding the cap, score
// -Inf so they can never be selected. The -Inf penalty is internal to the
// search; reported figures come from ObjectiveValue.
func Score(stack massing.FloorStack, lotArea float64, set params.Set) float64 {
	if stack.IsEmpty() {
		return math.Inf(-1)
	}
	switch set.Strategy.Objective {
	case params.ObjectiveMaxUnits, params.ObjectiveMaxEfficiency:
		return ObjectiveValue(stack, lotArea, set)
	default: // params.ObjectiveMaxFAR
		far := stack.FAR(lotArea)
		if set.Normative.MaxFAR > 0 && far > set.Normative.MaxFAR*farTolerance {
			return math.Inf(-1)
		}
		return far
	}
}

// ObjectiveValue is the raw objective figure for a finished stack, without
// the selection penalties: always finite, so summaries serialize to JSON
// even when a baseline overshoots the FAR cap. An empty stack reports 0.
func ObjectiveValue(stack massing.FloorStack, lotArea float64, set params.Set) float64 {
	if stack.IsEmpty() {
		return 0
	}
	switch set.Strategy.Objective {
	case params.ObjectiveMaxUnits:
		return float64(stack.UnitEstimate(set.Architectural))
	case params.ObjectiveMaxEfficiency:
		return stack.Efficiency(set.Architectural)
	default: // params.ObjectiveMaxFAR
		return stack.FAR(lotArea)
	}
}
