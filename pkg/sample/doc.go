// Package sample implements the constrained spatial sampling engine:
// laying out statistical sampling points over one or more delineated areas
// under random and systematic-grid designs, subject to exclusion zones and
// minimum-distance constraints.
//
// # Components
//
//   - [Validate]: the pure constraint predicate combining containment,
//     exclusion-zone, perimeter, and inter-sample distance rules.
//   - [Allocate]: per-region target counts, uniform or area-proportional.
//   - [SampleRegion]: bounded rejection sampling of uniform candidates
//     inside a region's bounding box.
//   - [GenerateLattice] / [FilterIntoRegions]: the systematic-grid design
//     with circular over-coverage, zigzag row offsetting, and rigid
//     rotation about the combined centroid.
//   - [Registry]: the ordered, renumbering collection of accepted points.
//   - [Engine]: the workflow state machine tying everything together and
//     running random designs on a background worker.
//
// # Workflow
//
// A typical random design run:
//
//	eng, _ := sample.NewEngine(sample.Options{LabelRoot: "S"})
//	eng.Configure(regions, zones, constraints)
//	targets, _ := eng.AllocateCounts(10, true)
//	run, _ := eng.StartRandomRun(ctx, targets)
//	for range run.Progress() {
//	    // lossy progress notifications
//	}
//	result, err := run.Wait()
//	points, _ := eng.ExportSnapshot()
//
// Grid designs use [Engine.GenerateGrid], [Engine.TranslateGrid] (the
// interactive positioning step), and [Engine.FinalizeGrid], after which
// manual editing via [Engine.AddManual] and [Engine.RemoveNearest] is
// available just as after a random run.
//
// # Failure Model
//
// A sampling run that exhausts its attempt budget before reaching the
// target keeps the points it accepted and reports the gap as a
// [Shortfall] value; it is a normal, anticipated outcome, not an error.
// Constraint violations surface as [RejectionError] values with a
// machine-readable [RejectionReason]. Fatal conditions (degenerate
// geometry, illegal state transitions, concurrent run attempts) are
// sentinel errors and abort without mutating the registry.
//
// # Concurrency
//
// At most one sampling run is active per engine; starting another, or
// editing while one runs, fails with [ErrRunInProgress]. The background
// worker owns its point buffer exclusively and publishes into the engine's
// registry only once, atomically, on successful completion. Progress
// notifications are lossy: sends never block the worker.
package sample
