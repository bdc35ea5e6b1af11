// Package batch orchestrates massing evaluation across many lots:
// validation, baseline build, optional shape search, parking and metrics,
// with per-lot failure isolation and parallel workers.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/eluisluzquadros/cogniticy/pkg/lot"
	"github.com/eluisluzquadros/cogniticy/pkg/massing"
	"github.com/eluisluzquadros/cogniticy/pkg/metrics"
	"github.com/eluisluzquadros/cogniticy/pkg/optimize"
	"github.com/eluisluzquadros/cogniticy/pkg/parking"
	"github.com/eluisluzquadros/cogniticy/pkg/params"
	"github.com/eluisluzquadros/cogniticy/pkg/validation"
)

// Status classifies the per-lot outcome.
type Status string

const (
	StatusOK         Status = "ok"
	StatusInvalid    Status = "invalid"    // input validity error; other lots continue
	StatusInfeasible Status = "infeasible" // not even the ground floor fits
)

// Building is one evaluated massing (baseline or best-shape) with its
// parking plan and summary.
type Building struct {
	Label   string             `json:"label"`
	Stack   massing.FloorStack `json:"stack"`
	Parking parking.Plan       `json:"parking"`
	Summary metrics.Summary    `json:"summary"`
}

// LotResult is the complete outcome for one lot. BestShape is nil when the
// optimizer exhausted its candidates with nothing feasible; the baseline
// result still stands on its own.
type LotResult struct {
	LotID     string              `json:"lot_id"`
	Status    Status              `json:"status"`
	Report    *validation.Report  `json:"report,omitempty"`
	Baseline  *Building           `json:"baseline,omitempty"`
	BestShape *Building           `json:"best_shape,omitempty"`
	Candidate *optimize.Candidate `json:"best_candidate,omitempty"`
	Evaluated int                 `json:"candidates_evaluated"`
}

// Case pairs one lot geometry with its resolved parameters.
type Case struct {
	Lot    lot.Geometry
	Params params.Set
}

// RunResult is the batch output: one result per input case, input order.
type RunResult struct {
	RunID   string      `json:"run_id"`
	Results []LotResult `json:"results"`
}

// Runner evaluates batches of lots. Zero value is usable: serial execution
// and the default logger.
type Runner struct {
	Workers int
	Logger  *log.Logger
}

func (r Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// Run evaluates every case. Lots run on parallel workers; each result is
// committed to the collector exactly once. Cancelling the context abandons
// lots not yet started and stops in-flight searches at candidate
// granularity, without corrupting results already committed.
func (r Runner) Run(ctx context.Context, cases []Case) (*RunResult, error) {
	runID := uuid.NewString()
	logger := r.logger().With("run", runID)
	start := time.Now()
	logger.Info("starting batch", "lots", len(cases), "workers", r.Workers)

	col := newCollector(len(cases))
	eg, ctx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		eg.SetLimit(r.Workers)
	} else {
		eg.SetLimit(1)
	}

	for i, c := range cases {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.EvaluateLot(ctx, c)
			if err != nil {
				return err
			}
			col.commit(i, res)
			logger.Debug("lot done", "lot", res.LotID, "status", res.Status)
			return nil
		})
	}

	err := eg.Wait()
	result := &RunResult{RunID: runID, Results: col.results()}
	if err != nil {
		logger.Warn("batch interrupted", "completed", col.completed(), "err", err)
		return result, err
	}
	logger.Info("batch complete", "lots", len(cases), "duration", time.Since(start).Round(time.Millisecond))
	return result, nil
}

// EvaluateLot runs the full per-lot flow. Only context cancellation is
// returned as an error; every domain failure is folded into the result so
// one bad lot never aborts a batch.
func (r Runner) EvaluateLot(ctx context.Context, c Case) (LotResult, error) {
	res := LotResult{LotID: c.Lot.ID}

	report := params.ValidateSchema(c.Params)
	report.Merge(lot.Validate(c.Lot))
	if !report.Valid {
		res.Status = StatusInvalid
		res.Report = report
		return res, nil
	}

	builder := massing.NewStackBuilder(c.Lot, c.Params)
	baseline := builder.BuildBaseline()
	if baseline.IsEmpty() {
		report.AddError(validation.Result{
			Level:   validation.LevelFeasibility,
			Message: "ground floor does not satisfy minimum area/dimension constraints",
			LotID:   c.Lot.ID,
		})
		res.Status = StatusInfeasible
		res.Report = report
		return res, nil
	}

	res.Baseline = r.finishBuilding("baseline", baseline, c)
	res.Status = StatusOK

	searcher := optimize.Searcher{Workers: r.Workers}
	search, err := searcher.Search(ctx, c.Lot, c.Params)
	if err != nil {
		return res, err
	}
	res.Evaluated = search.Evaluated
	if search.Best != nil {
		res.Candidate = search.Best
		res.BestShape = r.finishBuilding("best_shape", search.BestStack, c)
	}
	return res, nil
}

// finishBuilding attaches parking and summary metrics to a finished stack.
func (r Runner) finishBuilding(label string, stack massing.FloorStack, c Case) *Building {
	plan := parking.Allocate(stack, c.Params)
	summary := metrics.Summarize(stack, plan, c.Lot, c.Params)
	summary.ObjectiveValue = optimize.ObjectiveValue(stack, c.Lot.Area(), c.Params)
	return &Building{
		Label:   label,
		Stack:   stack,
		Parking: plan,
		Summary: summary,
	}
}

// CasesFromProject resolves every lot of a project into an evaluation case.
// Lots whose spec cannot be resolved are reported and skipped so the rest
// of the project still runs.
func CasesFromProject(p *params.Project) ([]Case, *validation.Report) {
	report := validation.NewReport()
	cases := make([]Case, 0, len(p.Lots))
	for _, spec := range p.Lots {
		set, err := p.Resolve(spec)
		if err != nil {
			report.AddError(validation.Result{
				Level:   validation.LevelSchema,
				Message: "parameter overrides could not be applied: " + err.Error(),
				LotID:   spec.ID,
			})
			continue
		}
		g, err := lot.FromSpec(spec)
		if err != nil {
			report.AddError(validation.Result{
				Level:   validation.LevelGeometry,
				Message: "lot geometry could not be built: " + err.Error(),
				LotID:   spec.ID,
			})
			continue
		}
		cases = append(cases, Case{Lot: g, Params: set})
	}
	return cases, report
}

// collector serializes result commits from concurrent lot evaluations.
// Each slot is written at most once.
type collector struct {
	mu   sync.Mutex
	out  []LotResult
	set  []bool
	done int
}

func newCollector(n int) *collector {
	return &collector{out: make([]LotResult, n), set: make([]bool, n)}
}

func (c *collector) commit(i int, res LotResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.set[i] {
		return
	}
	c.set[i] = true
	c.out[i] = res
	c.done++
}

func (c *collector) completed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

func (c *collector) results() []LotResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LotResult, len(c.out))
	copy(out, c.out)
	return out
}
