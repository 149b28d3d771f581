package sample

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plotsample/plotsample/pkg/geom"
)

// State is a position in the engine's workflow state machine.
type State int

// Workflow states. Idle is both initial and terminal; Reset always
// returns to it.
const (
	// StateIdle: no configuration, no samples.
	StateIdle State = iota
	// StateConfigured: regions, zones and constraints are loaded; a run
	// may start.
	StateConfigured
	// StateGenerating: a background random run is active.
	StateGenerating
	// StatePositioning: an unfiltered grid lattice exists and may be
	// translated before finalization.
	StatePositioning
	// StateEditing: a run has produced a registry; manual add/remove and
	// export are available.
	StateEditing
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateGenerating:
		return "generating"
	case StatePositioning:
		return "positioning"
	case StateEditing:
		return "editing"
	default:
		return "idle"
	}
}

// Engine drives sampling runs over one configuration of regions, exclusion
// zones and constraints. It enforces the workflow transitions itself, so
// callers invoke named operations and illegal sequences fail with typed
// errors instead of relying on caller-side discipline.
//
// All methods are safe for concurrent use; at most one background run is
// active at a time.
type Engine struct {
	opts Options

	mu          sync.Mutex
	state       State
	regions     []Region
	zones       []ExclusionZone
	constraints Constraints
	gridSpec    GridSpec
	lattice     []geom.Point
	registry    *Registry
	active      *Run
}

// NewEngine creates an engine with the given tunables; zero fields take
// their defaults.
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("sample: invalid options: %w", err)
	}
	return &Engine{opts: opts, state: StateIdle}, nil
}

// State returns the engine's current workflow state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Configure loads the run inputs. The engine never reaches into ambient
// state: everything a run needs is passed here and treated as read-only
// until Reset. Configuring is only legal before a run has produced
// samples; call Reset first to start over.
func (e *Engine) Configure(regions []Region, zones []ExclusionZone, c Constraints) error {
	if len(regions) == 0 {
		return ErrNoRegions
	}
	for _, r := range regions {
		if len(r.Geometry) == 0 {
			return fmt.Errorf("%w: region %s", ErrEmptyGeometry, r.Key)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case StateGenerating:
		return ErrRunInProgress
	case StatePositioning, StateEditing:
		return ErrSamplesExist
	}

	e.regions = append([]Region(nil), regions...)
	e.zones = append([]ExclusionZone(nil), zones...)
	e.constraints = c
	e.state = StateConfigured
	return nil
}

// AllocateCounts computes per-region targets from the configured regions.
func (e *Engine) AllocateCounts(requestedMin int, adjustByArea bool) (map[RegionKey]int, error) {
	e.mu.Lock()
	regions := e.regions
	e.mu.Unlock()
	if len(regions) == 0 {
		return nil, ErrNotConfigured
	}
	return Allocate(regions, requestedMin, adjustByArea)
}

// Constraints returns the configured constraints.
func (e *Engine) Constraints() Constraints {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.constraints
}

// Regions returns the configured regions.
func (e *Engine) Regions() []Region {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Region(nil), e.regions...)
}

// =============================================================================
// Random design
// =============================================================================

// Run is the handle of one background sampling run. Progress updates are
// published on a lossy channel; the final result is delivered exactly once
// through Wait.
type Run struct {
	// ID uniquely identifies the run, e.g. in logs and API responses.
	ID uuid.UUID

	progress chan ProgressUpdate
	done     chan struct{}
	cancel   context.CancelFunc

	result *RunResult
	err    error
}

// Progress returns the run's progress channel. It is closed when the run
// finishes. Updates are dropped rather than ever blocking the worker, so
// consumers see a sampled view of progress.
func (r *Run) Progress() <-chan ProgressUpdate { return r.progress }

// Done returns a channel closed when the run has finished.
func (r *Run) Done() <-chan struct{} { return r.done }

// Cancel requests cooperative cancellation. The worker observes the flag
// between attempts, discards everything generated so far, and finishes
// with ErrCancelled.
func (r *Run) Cancel() { r.cancel() }

// Wait blocks until the run finishes and returns its one-shot result. On
// cancellation or geometry failure the result is nil and nothing has been
// committed to the engine's registry.
func (r *Run) Wait() (*RunResult, error) {
	<-r.done
	return r.result, r.err
}

// StartRandomRun launches the random design on a background worker and
// returns its handle. targets maps region keys to requested counts,
// typically from AllocateCounts; regions without an entry are skipped.
//
// The guard is strict: a run may not start while another is active
// (ErrRunInProgress) or while samples from a prior run exist
// (ErrSamplesExist). The registry is populated atomically from the final
// result only, so a cancelled or failed run leaves no trace.
func (e *Engine) StartRandomRun(ctx context.Context, targets map[RegionKey]int) (*Run, error) {
	for key, t := range targets {
		if t < 0 {
			return nil, fmt.Errorf("%w: region %s", ErrInvalidTarget, key)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case StateGenerating:
		return nil, ErrRunInProgress
	case StatePositioning, StateEditing:
		return nil, ErrSamplesExist
	case StateIdle:
		return nil, ErrNotConfigured
	}

	runCtx, cancel := context.WithCancel(ctx)
	run := &Run{
		ID:       uuid.New(),
		progress: make(chan ProgressUpdate, 16),
		done:     make(chan struct{}),
		cancel:   cancel,
	}
	e.active = run
	e.state = StateGenerating

	regions := append([]Region(nil), e.regions...)
	zones := append([]ExclusionZone(nil), e.zones...)
	constraints := e.constraints

	go e.runRandom(runCtx, run, regions, zones, constraints, targets)
	return run, nil
}

// runRandom is the worker body. It owns its point buffers exclusively and
// touches the engine only under the mutex in finish.
func (e *Engine) runRandom(ctx context.Context, run *Run, regions []Region, zones []ExclusionZone, c Constraints, targets map[RegionKey]int) {
	defer close(run.done)
	defer close(run.progress)
	defer run.cancel()

	rng := e.newRNG()

	totalTarget := 0
	for _, r := range regions {
		totalTarget += targets[r.Key]
	}

	type regionResult struct {
		key    RegionKey
		sample RegionSample
	}
	var (
		results    []regionResult
		shortfalls = make(map[RegionKey]Shortfall)
		attempts   int
		generated  int
	)

	// Regions are processed independently and sequentially: a shortfall in
	// one never blocks the others.
	for _, region := range regions {
		target := targets[region.Key]
		if target == 0 {
			continue
		}
		res, err := SampleRegion(ctx, rng, region, target, zones, c, e.opts.AttemptMultiplier,
			func(accepted int) {
				run.publish(ProgressUpdate{
					Region:    region.Key,
					Generated: generated + accepted,
					Target:    totalTarget,
				})
			})
		if err != nil {
			e.finish(run, nil, err)
			return
		}
		attempts += res.Attempts
		generated += len(res.Points)
		if res.Shortfall {
			shortfalls[region.Key] = Shortfall{
				Requested: target,
				Generated: len(res.Points),
				Attempts:  res.Attempts,
			}
		}
		results = append(results, regionResult{key: region.Key, sample: res})
	}

	registry := NewRegistry(e.opts.LabelRoot)
	for _, rr := range results {
		for _, p := range rr.sample.Points {
			registry.Add(p, rr.key)
		}
	}
	registry.Renumber()

	e.finishCommit(run, registry, &RunResult{
		ID:         run.ID,
		Points:     registry.Snapshot(),
		Shortfalls: shortfalls,
		Attempts:   attempts,
	})
}

// finish records a failed or cancelled run and returns the engine to its
// pre-run state without touching the registry.
func (e *Engine) finish(run *Run, _ *RunResult, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	run.err = err
	e.active = nil
	e.state = StateConfigured
}

// finishCommit publishes a successful run's registry in one step.
func (e *Engine) finishCommit(run *Run, registry *Registry, result *RunResult) {
	e.mu.Lock()
	defer e.mu.Unlock()
	run.result = result
	e.registry = registry
	e.active = nil
	e.state = StateEditing
}

func (r *Run) publish(u ProgressUpdate) {
	select {
	case r.progress <- u:
	default: // drop rather than stall the worker
	}
}

func (e *Engine) newRNG() *rand.Rand {
	seed := e.opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// =============================================================================
// Grid design
// =============================================================================

// GenerateGrid builds the unfiltered lattice for the configured regions
// and enters the positioning phase. The returned slice is a copy; the grid
// is moved with TranslateGrid and committed with FinalizeGrid.
func (e *Engine) GenerateGrid(spec GridSpec) ([]geom.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case StateGenerating:
		return nil, ErrRunInProgress
	case StateEditing:
		return nil, ErrSamplesExist
	case StateIdle:
		return nil, ErrNotConfigured
	}

	lattice, err := GenerateLattice(e.regions, spec, e.opts)
	if err != nil {
		return nil, err
	}
	e.gridSpec = spec
	e.lattice = lattice
	e.state = StatePositioning
	return append([]geom.Point(nil), lattice...), nil
}

// TranslateGrid shifts the unfiltered lattice by (dx, dy). Only legal
// while positioning; filtering does not rerun until FinalizeGrid.
func (e *Engine) TranslateGrid(dx, dy float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StatePositioning {
		return ErrNoGrid
	}
	Translate(e.lattice, dx, dy)
	return nil
}

// Lattice returns a copy of the current unfiltered lattice.
func (e *Engine) Lattice() ([]geom.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StatePositioning {
		return nil, ErrNoGrid
	}
	return append([]geom.Point(nil), e.lattice...), nil
}

// FinalizeGrid filters the positioned lattice into regions exactly once
// and enters manual editing. This is the explicit confirmation step of the
// workflow; there is no way back to positioning short of Reset.
func (e *Engine) FinalizeGrid() (*RunResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StatePositioning {
		return nil, ErrNoGrid
	}

	registry := FilterIntoRegions(e.lattice, e.regions, e.zones, e.gridSpec, e.constraints, e.opts.LabelRoot)
	e.registry = registry
	e.lattice = nil
	e.state = StateEditing
	return &RunResult{
		ID:     uuid.New(),
		Points: registry.Snapshot(),
	}, nil
}

// =============================================================================
// Manual editing
// =============================================================================

// AddManual validates and adds a user-placed point. The point is assigned
// to the first configured region containing it; with outside sampling
// allowed, a point beyond every region is kept under the Outside key.
// Constraint violations return the validator's *RejectionError and leave
// the registry untouched.
func (e *Engine) AddManual(p geom.Point) (SamplePoint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateGenerating {
		return SamplePoint{}, ErrRunInProgress
	}
	if e.state != StateEditing {
		return SamplePoint{}, fmt.Errorf("%w: %s", ErrInvalidState, e.state)
	}

	owner := Region{Key: Outside}
	for _, r := range e.regions {
		if r.Geometry.Contains(p) {
			owner = r
			break
		}
	}

	existing := make([]geom.Point, 0)
	for _, sp := range e.registry.Points(owner.Key) {
		existing = append(existing, sp.Coord())
	}
	if err := Validate(p, owner, e.zones, existing, e.constraints, ModeManual); err != nil {
		return SamplePoint{}, err
	}

	sp := e.registry.Add(p, owner.Key)
	e.registry.Renumber()
	return sp, nil
}

// RemoveNearest removes the accepted point closest to p, subject to the
// optional tolerance (non-positive removes unconditionally). The registry
// is renumbered so order values stay contiguous.
func (e *Engine) RemoveNearest(p geom.Point, maxTolerance float64) (SamplePoint, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateGenerating {
		return SamplePoint{}, false, ErrRunInProgress
	}
	if e.state != StateEditing {
		return SamplePoint{}, false, fmt.Errorf("%w: %s", ErrInvalidState, e.state)
	}

	removed, ok := e.registry.RemoveNearest(p, maxTolerance)
	if ok {
		e.registry.Renumber()
	}
	return removed, ok, nil
}

// ExportSnapshot renumbers the registry and returns every accepted point
// in order. The engine state is unchanged; callers typically Reset once
// the export collaborator has persisted the snapshot.
func (e *Engine) ExportSnapshot() ([]SamplePoint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateGenerating {
		return nil, ErrRunInProgress
	}
	if e.registry == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidState, e.state)
	}
	e.registry.Renumber()
	return e.registry.Snapshot(), nil
}

// Reset cancels any active run, discards the registry, lattice and
// configuration, and returns to Idle. Idle is terminal as well as
// initial: a fresh Configure starts the next run.
func (e *Engine) Reset() {
	e.mu.Lock()
	active := e.active
	e.mu.Unlock()
	if active != nil {
		active.Cancel()
		<-active.Done()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.regions = nil
	e.zones = nil
	e.constraints = Constraints{}
	e.gridSpec = GridSpec{}
	e.lattice = nil
	e.registry = nil
	e.state = StateIdle
}
