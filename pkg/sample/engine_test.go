package sample

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plotsample/plotsample/pkg/geom"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(Options{Seed: 7, LabelRoot: "S"})
	require.NoError(t, err)
	return e
}

func configureTwoRegions(t *testing.T, e *Engine, c Constraints) {
	t.Helper()
	regions := []Region{
		squareRegion(1, 0, 0, 100),
		squareRegion(2, 200, 0, 100),
	}
	require.NoError(t, e.Configure(regions, nil, c))
}

func TestEngine_StateMachine(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, StateIdle, e.State())

	_, err := e.StartRandomRun(context.Background(), map[RegionKey]int{1: 5})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = e.AllocateCounts(5, false)
	assert.ErrorIs(t, err, ErrNotConfigured)

	configureTwoRegions(t, e, Constraints{})
	assert.Equal(t, StateConfigured, e.State())

	err = e.TranslateGrid(1, 1)
	assert.ErrorIs(t, err, ErrNoGrid)

	_, err = e.AddManual(geom.Point{X: 5, Y: 5})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestEngine_ConfigureValidation(t *testing.T) {
	e := newTestEngine(t)

	assert.ErrorIs(t, e.Configure(nil, nil, Constraints{}), ErrNoRegions)
	assert.ErrorIs(t, e.Configure([]Region{{Key: 1}}, nil, Constraints{}), ErrEmptyGeometry)
}

func TestEngine_RandomRunLifecycle(t *testing.T) {
	e := newTestEngine(t)
	configureTwoRegions(t, e, Constraints{MinDistanceSamples: 3})

	targets, err := e.AllocateCounts(10, false)
	require.NoError(t, err)

	run, err := e.StartRandomRun(context.Background(), targets)
	require.NoError(t, err)

	result, err := run.Wait()
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, StateEditing, e.State())
	assert.Len(t, result.Points, 20)
	assert.Empty(t, result.Shortfalls)

	// Orders are contiguous and labels derived from them.
	for i, sp := range result.Points {
		assert.Equal(t, i+1, sp.Order)
		assert.NotEmpty(t, sp.Label)
	}

	// A second run needs a reset first.
	_, err = e.StartRandomRun(context.Background(), targets)
	assert.ErrorIs(t, err, ErrSamplesExist)
}

func TestEngine_RunReportsShortfall(t *testing.T) {
	e := newTestEngine(t)
	configureTwoRegions(t, e, Constraints{MinDistanceSamples: 1000})

	run, err := e.StartRandomRun(context.Background(), map[RegionKey]int{1: 5})
	require.NoError(t, err)
	result, err := run.Wait()
	require.NoError(t, err)

	// One point fits; the rest of the budget is spent and reported.
	require.Contains(t, result.Shortfalls, RegionKey(1))
	sf := result.Shortfalls[1]
	assert.Equal(t, 5, sf.Requested)
	assert.Equal(t, 1, sf.Generated)
	assert.Equal(t, 5*DefaultAttemptMultiplier, sf.Attempts)
	assert.Len(t, result.Points, 1)
	assert.Equal(t, StateEditing, e.State())
}

func TestEngine_Cancellation(t *testing.T) {
	e, err := NewEngine(Options{Seed: 7, AttemptMultiplier: 50_000_000})
	require.NoError(t, err)
	configureTwoRegions(t, e, Constraints{MinDistanceSamples: 1000})

	// The constraints admit a single point, so the run grinds through its
	// huge budget until cancelled.
	run, err := e.StartRandomRun(context.Background(), map[RegionKey]int{1: 5})
	require.NoError(t, err)

	_, err = e.StartRandomRun(context.Background(), map[RegionKey]int{1: 5})
	assert.ErrorIs(t, err, ErrRunInProgress)
	_, err = e.AddManual(geom.Point{X: 5, Y: 5})
	assert.ErrorIs(t, err, ErrRunInProgress)

	run.Cancel()
	result, err := run.Wait()
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Nil(t, result)

	// Nothing was committed and the configuration survives.
	assert.Equal(t, StateConfigured, e.State())
	_, err = e.ExportSnapshot()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestEngine_ProgressUpdates(t *testing.T) {
	e := newTestEngine(t)
	configureTwoRegions(t, e, Constraints{})

	run, err := e.StartRandomRun(context.Background(), map[RegionKey]int{1: 5, 2: 5})
	require.NoError(t, err)

	var last ProgressUpdate
	seen := 0
	for u := range run.Progress() {
		last = u
		seen++
	}
	_, err = run.Wait()
	require.NoError(t, err)

	// The channel is lossy but the buffer comfortably holds ten updates.
	assert.Greater(t, seen, 0)
	assert.Equal(t, 10, last.Generated)
	assert.Equal(t, 10, last.Target)
}

func TestEngine_ManualEditing(t *testing.T) {
	e := newTestEngine(t)
	configureTwoRegions(t, e, Constraints{MinDistanceSamples: 5})

	run, err := e.StartRandomRun(context.Background(), map[RegionKey]int{1: 5})
	require.NoError(t, err)
	_, err = run.Wait()
	require.NoError(t, err)

	before, err := e.ExportSnapshot()
	require.NoError(t, err)

	// A manual point on top of an accepted one violates spacing and leaves
	// the registry untouched.
	_, err = e.AddManual(before[0].Coord())
	rej, ok := AsRejection(err)
	require.True(t, ok, "expected rejection, got %v", err)
	assert.Equal(t, TooCloseToSample, rej.Reason)

	after, err := e.ExportSnapshot()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// A clear spot in the second region is accepted and renumbered in.
	added, err := e.AddManual(geom.Point{X: 250, Y: 50})
	require.NoError(t, err)
	assert.Equal(t, RegionKey(2), added.Region)

	snapshot, err := e.ExportSnapshot()
	require.NoError(t, err)
	assert.Len(t, snapshot, 6)
	for i, sp := range snapshot {
		assert.Equal(t, i+1, sp.Order)
	}
}

func TestEngine_ManualOutsidePoint(t *testing.T) {
	e := newTestEngine(t)
	configureTwoRegions(t, e, Constraints{AllowOutsideSampling: true})

	run, err := e.StartRandomRun(context.Background(), map[RegionKey]int{1: 3})
	require.NoError(t, err)
	_, err = run.Wait()
	require.NoError(t, err)

	added, err := e.AddManual(geom.Point{X: 150, Y: 50})
	require.NoError(t, err)
	assert.Equal(t, Outside, added.Region)

	// With outside sampling off the same point is rejected.
	e2 := newTestEngine(t)
	configureTwoRegions(t, e2, Constraints{})
	run2, err := e2.StartRandomRun(context.Background(), map[RegionKey]int{1: 3})
	require.NoError(t, err)
	_, err = run2.Wait()
	require.NoError(t, err)

	_, err = e2.AddManual(geom.Point{X: 150, Y: 50})
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, OutsideRegion, rej.Reason)
}

func TestEngine_RemoveNearest(t *testing.T) {
	e := newTestEngine(t)
	configureTwoRegions(t, e, Constraints{})

	run, err := e.StartRandomRun(context.Background(), map[RegionKey]int{1: 4})
	require.NoError(t, err)
	result, err := run.Wait()
	require.NoError(t, err)

	target := result.Points[2]
	removed, ok, err := e.RemoveNearest(target.Coord(), 0.001)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, target.X, removed.X)
	assert.Equal(t, target.Y, removed.Y)

	snapshot, err := e.ExportSnapshot()
	require.NoError(t, err)
	require.Len(t, snapshot, 3)
	for i, sp := range snapshot {
		assert.Equal(t, i+1, sp.Order)
	}

	// Outside every tolerance nothing is removed.
	_, ok, err = e.RemoveNearest(geom.Point{X: -1000, Y: -1000}, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngine_GridWorkflow(t *testing.T) {
	e := newTestEngine(t)
	configureTwoRegions(t, e, Constraints{})
	spec := GridSpec{SpacingX: 20, SpacingY: 20, RotationDegrees: 90}

	lattice, err := e.GenerateGrid(spec)
	require.NoError(t, err)
	require.NotEmpty(t, lattice)
	assert.Equal(t, StatePositioning, e.State())

	require.NoError(t, e.TranslateGrid(3, -2))
	moved, err := e.Lattice()
	require.NoError(t, err)
	assert.InDelta(t, lattice[0].X+3, moved[0].X, 1e-9)
	assert.InDelta(t, lattice[0].Y-2, moved[0].Y, 1e-9)

	result, err := e.FinalizeGrid()
	require.NoError(t, err)
	assert.Equal(t, StateEditing, e.State())
	assert.NotEmpty(t, result.Points)
	assert.Zero(t, result.Attempts)

	// Every committed point sits in the region it was assigned to.
	for _, sp := range result.Points {
		var owner Region
		for _, r := range e.Regions() {
			if r.Key == sp.Region {
				owner = r
			}
		}
		require.NotNil(t, owner.Geometry)
		assert.True(t, owner.Geometry.Contains(sp.Coord()), "point %v outside region %s", sp, sp.Region)
	}

	// Finalizing twice is not possible.
	_, err = e.FinalizeGrid()
	assert.ErrorIs(t, err, ErrNoGrid)
}

func TestEngine_GridGuards(t *testing.T) {
	e := newTestEngine(t)
	spec := GridSpec{SpacingX: 10, SpacingY: 10}

	_, err := e.GenerateGrid(spec)
	assert.ErrorIs(t, err, ErrNotConfigured)

	configureTwoRegions(t, e, Constraints{})
	_, err = e.GenerateGrid(GridSpec{SpacingX: 0, SpacingY: 10})
	assert.ErrorIs(t, err, ErrInvalidSpacing)

	_, err = e.FinalizeGrid()
	assert.ErrorIs(t, err, ErrNoGrid)
}

func TestEngine_Reset(t *testing.T) {
	e := newTestEngine(t)
	configureTwoRegions(t, e, Constraints{})

	run, err := e.StartRandomRun(context.Background(), map[RegionKey]int{1: 3})
	require.NoError(t, err)
	_, err = run.Wait()
	require.NoError(t, err)
	require.Equal(t, StateEditing, e.State())

	e.Reset()
	assert.Equal(t, StateIdle, e.State())
	assert.Empty(t, e.Regions())

	// A fresh configure and run work after the reset.
	configureTwoRegions(t, e, Constraints{})
	run, err = e.StartRandomRun(context.Background(), map[RegionKey]int{2: 2})
	require.NoError(t, err)
	result, err := run.Wait()
	require.NoError(t, err)
	assert.Len(t, result.Points, 2)
}

func TestEngine_ResetCancelsActiveRun(t *testing.T) {
	e, err := NewEngine(Options{Seed: 7, AttemptMultiplier: 50_000_000})
	require.NoError(t, err)
	configureTwoRegions(t, e, Constraints{MinDistanceSamples: 1000})

	run, err := e.StartRandomRun(context.Background(), map[RegionKey]int{1: 5})
	require.NoError(t, err)

	e.Reset()
	assert.Equal(t, StateIdle, e.State())
	_, err = run.Wait()
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestEngine_SeededRunsAreReproducible(t *testing.T) {
	results := make([][]SamplePoint, 2)
	for i := range results {
		e, err := NewEngine(Options{Seed: 99, LabelRoot: "S"})
		require.NoError(t, err)
		configureTwoRegions(t, e, Constraints{MinDistanceSamples: 4})

		run, err := e.StartRandomRun(context.Background(), map[RegionKey]int{1: 8, 2: 8})
		require.NoError(t, err)
		result, err := run.Wait()
		require.NoError(t, err)
		results[i] = result.Points
	}
	assert.Equal(t, results[0], results[1])
}
