// Package pkg provides the core libraries for Plotsample survey point layout.
//
// # Overview
//
// Plotsample generates sampling point layouts over polygonal survey regions,
// either by constrained random rejection sampling or by positioning a
// systematic grid. The pkg directory is organized into three main areas:
//
//  1. [geom] - Planar geometry (polygons, distance, buffering, centroids)
//  2. [sample] - The sampling engine (allocation, random runs, grids, editing)
//  3. [export] - Point set serialization (CSV, GeoJSON)
//
// # Architecture
//
// The typical data flow through Plotsample:
//
//	Survey regions + exclusion zones + constraints
//	         ↓
//	    [sample] engine (allocate → generate or position grid → edit)
//	         ↓
//	    [geom] predicates (containment, spacing, buffers)
//	         ↓
//	    CSV/GeoJSON output via [export]
//
// # Quick Start
//
// Configure an engine and run a random sampling pass:
//
//	import (
//	    "context"
//	    "github.com/plotsample/plotsample/pkg/geom"
//	    "github.com/plotsample/plotsample/pkg/sample"
//	)
//
//	engine, _ := sample.NewEngine(sample.Options{Seed: 42, LabelRoot: "S"})
//	_ = engine.Configure(regions, zones, sample.Constraints{
//	    MinDistanceSamples: 10,
//	})
//
//	targets, _ := engine.AllocateCounts(20, false)
//	run, _ := engine.StartRandomRun(context.Background(), targets)
//	result, _ := run.Wait()
//
// # Main Packages
//
// [geom] - Pure planar geometry: rings, polygons with holes, multipolygons,
// point containment, boundary distance, area-weighted centroids, circle
// construction, and round-join buffering. No projection or CRS handling.
//
// [sample] - The engine state machine and everything it drives: per-region
// target allocation, rejection sampling with a bounded attempt budget,
// systematic grid generation with zigzag and rotation, constraint validation,
// manual point editing, and the ordered point registry.
//
// [export] - Writers for the engine's point snapshots: CSV rows and GeoJSON
// FeatureCollections.
//
// [buildinfo] - Version and commit metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/sample/...       # Specific package
//	go test -run Example           # Examples only
//
// [geom]: https://pkg.go.dev/github.com/plotsample/plotsample/pkg/geom
// [sample]: https://pkg.go.dev/github.com/plotsample/plotsample/pkg/sample
// [export]: https://pkg.go.dev/github.com/plotsample/plotsample/pkg/export
// [buildinfo]: https://pkg.go.dev/github.com/plotsample/plotsample/pkg/buildinfo
package pkg
