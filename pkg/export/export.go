// Package export writes accepted sample points to interchange formats.
//
// Two formats are supported: CSV for spreadsheet workflows and GeoJSON for
// GIS tools. Both emit the points of one run snapshot in order-number
// sequence, so re-imports keep the run's numbering.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/plotsample/plotsample/pkg/sample"
)

// WriteCSV encodes a run snapshot as CSV and writes it to w. Columns are
// label, order, region, x and y, with one header row.
func WriteCSV(points []sample.SamplePoint, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"label", "order", "region", "x", "y"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range points {
		record := []string{
			p.Label,
			strconv.Itoa(p.Order),
			p.Region.String(),
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write point %s: %w", p.Label, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes a run snapshot to a CSV file at path.
// This is a convenience wrapper around [WriteCSV] for file-based output.
func ExportCSV(points []sample.SamplePoint, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCSV(points, f)
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string         `json:"type"`
	Geometry   pointGeometry  `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type pointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// WriteGeoJSON encodes a run snapshot as a GeoJSON FeatureCollection of
// Point features and writes it to w. Label, order and region key are
// carried as feature properties.
func WriteGeoJSON(points []sample.SamplePoint, w io.Writer) error {
	fc := featureCollection{
		Type:     "FeatureCollection",
		Features: make([]feature, len(points)),
	}
	for i, p := range points {
		fc.Features[i] = feature{
			Type: "Feature",
			Geometry: pointGeometry{
				Type:        "Point",
				Coordinates: [2]float64{p.X, p.Y},
			},
			Properties: map[string]any{
				"label":  p.Label,
				"order":  p.Order,
				"region": p.Region.String(),
			},
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportGeoJSON writes a run snapshot to a GeoJSON file at path.
// This is a convenience wrapper around [WriteGeoJSON] for file-based output.
func ExportGeoJSON(points []sample.SamplePoint, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGeoJSON(points, f)
}
