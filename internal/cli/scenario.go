package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/plotsample/plotsample/pkg/geom"
	"github.com/plotsample/plotsample/pkg/sample"
)

// Scenario is a fully decoded sampling scenario: the engine tunables plus
// the regions, exclusion zones and constraints of one run.
type Scenario struct {
	Options     sample.Options
	Regions     []sample.Region
	Exclusions  []sample.ExclusionZone
	Constraints sample.Constraints
	Grid        sample.GridSpec
}

// scenarioFile mirrors the TOML scenario layout:
//
//	[engine]
//	seed = 42
//	label_root = "S"
//
//	[constraints]
//	min_distance_samples = 10.0
//	allow_outside = false
//	adjust_by_area = true
//
//	[grid]
//	spacing_x = 25.0
//	spacing_y = 25.0
//	rotation = 30.0
//	zigzag = true
//
//	[[region]]
//	key = 1
//	role = "stratum"
//	polygon = [[0.0, 0.0], [100.0, 0.0], [100.0, 100.0], [0.0, 100.0]]
//
//	[[exclusion]]
//	polygon = [[40.0, 40.0], [60.0, 40.0], [60.0, 60.0], [40.0, 60.0]]
//	buffer = 5.0
type scenarioFile struct {
	Engine      engineSection      `toml:"engine"`
	Constraints constraintsSection `toml:"constraints"`
	Grid        gridSection        `toml:"grid"`
	Regions     []regionSection    `toml:"region"`
	Exclusions  []exclusionSection `toml:"exclusion"`
}

type engineSection struct {
	Seed              uint64 `toml:"seed"`
	LabelRoot         string `toml:"label_root"`
	AttemptMultiplier int    `toml:"attempt_multiplier"`
}

type constraintsSection struct {
	MinDistanceSamples   float64 `toml:"min_distance_samples"`
	MinDistancePerimeter float64 `toml:"min_distance_perimeter"`
	MinDistanceExclusion float64 `toml:"min_distance_exclusion"`
	AllowOutside         bool    `toml:"allow_outside"`
	AdjustByArea         bool    `toml:"adjust_by_area"`
}

type gridSection struct {
	SpacingX        float64 `toml:"spacing_x"`
	SpacingY        float64 `toml:"spacing_y"`
	Rotation        float64 `toml:"rotation"`
	Zigzag          bool    `toml:"zigzag"`
	PerimeterBuffer float64 `toml:"perimeter_buffer"`
	ExclusionBuffer float64 `toml:"exclusion_buffer"`
}

type regionSection struct {
	Key     int           `toml:"key"`
	Role    string        `toml:"role"`
	Polygon [][]float64   `toml:"polygon"`
	Holes   [][][]float64 `toml:"holes"`
}

type exclusionSection struct {
	Polygon [][]float64 `toml:"polygon"`
	Buffer  float64     `toml:"buffer"`
}

// LoadScenario reads and validates a TOML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	var file scenarioFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	return buildScenario(&file)
}

func buildScenario(file *scenarioFile) (*Scenario, error) {
	if len(file.Regions) == 0 {
		return nil, fmt.Errorf("scenario has no regions")
	}

	sc := &Scenario{
		Options: sample.Options{
			Seed:              file.Engine.Seed,
			LabelRoot:         file.Engine.LabelRoot,
			AttemptMultiplier: file.Engine.AttemptMultiplier,
		},
		Constraints: sample.Constraints{
			MinDistanceSamples:   file.Constraints.MinDistanceSamples,
			MinDistancePerimeter: file.Constraints.MinDistancePerimeter,
			MinDistanceExclusion: file.Constraints.MinDistanceExclusion,
			AllowOutsideSampling: file.Constraints.AllowOutside,
			AdjustByArea:         file.Constraints.AdjustByArea,
		},
		Grid: sample.GridSpec{
			SpacingX:                     file.Grid.SpacingX,
			SpacingY:                     file.Grid.SpacingY,
			RotationDegrees:              file.Grid.Rotation,
			Zigzag:                       file.Grid.Zigzag,
			PerimeterBufferSampleArea:    file.Grid.PerimeterBuffer,
			PerimeterBufferExclusionArea: file.Grid.ExclusionBuffer,
		},
	}

	seen := make(map[sample.RegionKey]bool)
	for i, rs := range file.Regions {
		key := sample.RegionKey(rs.Key)
		if key == sample.Outside {
			return nil, fmt.Errorf("region %d: key must be >= 1", i)
		}
		if seen[key] {
			return nil, fmt.Errorf("region %d: duplicate key %s", i, key)
		}
		seen[key] = true

		role, err := parseRole(rs.Role)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", key, err)
		}
		geometry, err := buildPolygon(rs.Polygon, rs.Holes)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", key, err)
		}
		sc.Regions = append(sc.Regions, sample.Region{Key: key, Role: role, Geometry: geometry})
	}

	for i, es := range file.Exclusions {
		geometry, err := buildPolygon(es.Polygon, nil)
		if err != nil {
			return nil, fmt.Errorf("exclusion %d: %w", i, err)
		}
		if es.Buffer < 0 {
			return nil, fmt.Errorf("exclusion %d: buffer must not be negative", i)
		}
		sc.Exclusions = append(sc.Exclusions, sample.ExclusionZone{Geometry: geometry, Buffer: es.Buffer})
	}

	return sc, nil
}

func parseRole(s string) (sample.Role, error) {
	switch s {
	case "", "global":
		return sample.RoleGlobal, nil
	case "stratum":
		return sample.RoleStratum, nil
	case "cluster":
		return sample.RoleCluster, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func buildPolygon(exterior [][]float64, holes [][][]float64) (geom.MultiPolygon, error) {
	ext, err := buildRing(exterior)
	if err != nil {
		return nil, err
	}
	pg := geom.Polygon{Exterior: ext}
	for i, h := range holes {
		ring, err := buildRing(h)
		if err != nil {
			return nil, fmt.Errorf("hole %d: %w", i, err)
		}
		pg.Holes = append(pg.Holes, ring)
	}
	return geom.MultiPolygon{pg}, nil
}

func buildRing(coords [][]float64) (geom.Ring, error) {
	if len(coords) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(coords))
	}
	ring := make(geom.Ring, 0, len(coords))
	for i, c := range coords {
		if len(c) != 2 {
			return nil, fmt.Errorf("vertex %d: expected [x, y], got %d values", i, len(c))
		}
		ring = append(ring, geom.Point{X: c[0], Y: c[1]})
	}
	// Tolerate an explicitly closed ring; closure is implicit.
	if ring[0] == ring[len(ring)-1] && len(ring) > 3 {
		ring = ring[:len(ring)-1]
	}
	return ring, nil
}
