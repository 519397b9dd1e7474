package forecast

// engine.go - forecast run orchestration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Engine runs the full forecast pipeline over an immutable input
// snapshot: validate, project every subzone, resolve gaps. A run is a
// pure computation; running twice on the same snapshot and parameters
// yields byte-identical output.
type Engine struct {
	params Params
	logger *slog.Logger
}

// New creates an engine after validating the parameter bundle.
func New(params Params, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid forecast parameters: %w", err)
	}
	return &Engine{params: params, logger: logger}, nil
}

// Params returns the engine's parameter bundle.
func (e *Engine) Params() Params { return e.params }

// Validate fail-fast checks the snapshot before any projection begins:
// every record must reference a known subzone, fertility series must be
// ordered and duplicate-free, counts must be non-negative.
func (e *Engine) Validate(snap *Snapshot) error {
	known := make(map[string]bool, len(snap.Subzones))
	for _, sz := range snap.Subzones {
		if sz.ID == "" {
			return fmt.Errorf("subzone with empty identifier")
		}
		if known[sz.ID] {
			return fmt.Errorf("duplicate subzone identifier %q", sz.ID)
		}
		known[sz.ID] = true
	}

	for _, r := range snap.Fertility {
		if !known[r.Subzone] {
			return &UnknownSubzoneError{Subzone: r.Subzone, Source: "fertility record"}
		}
	}
	if err := ValidateFertility(snap.Fertility); err != nil {
		return err
	}

	for _, c := range snap.Housing {
		if !known[c.Subzone] {
			return &UnknownSubzoneError{Subzone: c.Subzone, Source: "housing completion"}
		}
		if c.Units < 0 {
			return fmt.Errorf("negative unit count %d for subzone %s completion year %d", c.Units, c.Subzone, c.CompletionYear)
		}
		if c.OccupancyRate < 0 {
			return fmt.Errorf("negative occupancy rate %v for subzone %s", c.OccupancyRate, c.Subzone)
		}
	}

	for _, b := range snap.Baseline {
		if !known[b.Subzone] {
			return &UnknownSubzoneError{Subzone: b.Subzone, Source: "baseline population"}
		}
		if b.Count < 0 {
			return fmt.Errorf("negative baseline count %d for subzone %s age band %q", b.Count, b.Subzone, b.AgeBand)
		}
	}

	for _, f := range snap.Facilities {
		if !known[f.Subzone] {
			return &UnknownSubzoneError{Subzone: f.Subzone, Source: "preschool facility"}
		}
		if f.Capacity < 0 {
			return fmt.Errorf("negative capacity %d for facility %q in subzone %s", f.Capacity, f.Name, f.Subzone)
		}
	}

	for _, c := range snap.Schedule {
		if !known[c.Subzone] {
			return &UnknownSubzoneError{Subzone: c.Subzone, Source: "capacity schedule"}
		}
	}

	return nil
}

// Run validates the snapshot, projects demand for every subzone and
// resolves the supply gap. Per-subzone projections run concurrently;
// one subzone's failure is isolated to its manifest entry and does not
// abort the others. Validation errors abort the whole run.
func (e *Engine) Run(ctx context.Context, snap *Snapshot) (*Result, error) {
	e.logger.Info("starting forecast run",
		"reference_year", e.params.ReferenceYear,
		"horizon_year", e.params.HorizonYear,
		"subzones", len(snap.Subzones))

	if err := e.Validate(snap); err != nil {
		return nil, err
	}

	cohorts := NewCohortProjector(e.params, snap.Fertility)
	housing := NewHousingAdapter(e.params, snap.Housing)
	baseline, err := NewBaseline(snap.Baseline)
	if err != nil {
		return nil, err
	}
	agg := NewAggregator(e.params, cohorts, housing, baseline)
	ledger := NewCapacityLedger(snap.Facilities, snap.Schedule)

	subzones := make([]Subzone, len(snap.Subzones))
	copy(subzones, snap.Subzones)
	sort.Slice(subzones, func(i, j int) bool { return subzones[i].ID < subzones[j].ID })

	// Each goroutine writes only its own slot; no cross-subzone state.
	projected := make([][]DemandProjection, len(subzones))
	failures := make([]error, len(subzones))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, sz := range subzones {
		i, sz := i, sz
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			series, err := agg.Project(sz.ID)
			if err != nil {
				// Computational errors isolate to this subzone.
				failures[i] = err
				return nil
			}
			projected[i] = series
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Manifest: make([]SubzoneOutcome, 0, len(subzones)),
	}
	for i, sz := range subzones {
		if failures[i] != nil {
			e.logger.Warn("subzone projection failed", "subzone", sz.ID, "error", failures[i])
			result.Manifest = append(result.Manifest, SubzoneOutcome{
				Subzone: sz.ID,
				Status:  SubzoneFailed,
				Error:   failures[i].Error(),
			})
			continue
		}
		result.Manifest = append(result.Manifest, SubzoneOutcome{Subzone: sz.ID, Status: SubzoneOK})
		result.Projections = append(result.Projections, projected[i]...)
	}

	resolver := NewGapResolver(e.params, ledger)
	result.Gaps = resolver.Resolve(result.Projections)

	e.logger.Info("forecast run completed",
		"projections", len(result.Projections),
		"failed_subzones", countFailed(result.Manifest))
	return result, nil
}

func countFailed(manifest []SubzoneOutcome) int {
	n := 0
	for _, o := range manifest {
		if o.Status == SubzoneFailed {
			n++
		}
	}
	return n
}
