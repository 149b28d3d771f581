package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plotsample/plotsample/pkg/sample"
)

func snapshot() []sample.SamplePoint {
	return []sample.SamplePoint{
		{X: 12.5, Y: 47.25, Region: 1, Order: 1, Label: "S1"},
		{X: 80, Y: 3, Region: 2, Order: 2, Label: "S2"},
		{X: 150, Y: 60, Region: sample.Outside, Order: 3, Label: "S3"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(snapshot(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"label", "order", "region", "x", "y"}, records[0])
	assert.Equal(t, []string{"S1", "1", "1", "12.5", "47.25"}, records[1])
	assert.Equal(t, []string{"S3", "3", "outside", "150", "60"}, records[3])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(nil, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1) // header only
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(snapshot(), &buf))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Type     string `json:"type"`
			Geometry struct {
				Type        string     `json:"type"`
				Coordinates [2]float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, "Feature", fc.Features[0].Type)
	assert.Equal(t, "Point", fc.Features[0].Geometry.Type)
	assert.Equal(t, [2]float64{12.5, 47.25}, fc.Features[0].Geometry.Coordinates)
	assert.Equal(t, "S1", fc.Features[0].Properties["label"])
	assert.Equal(t, "outside", fc.Features[2].Properties["region"])
}

func TestExportFiles(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "points.csv")
	require.NoError(t, ExportCSV(snapshot(), csvPath))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "S2")

	jsonPath := filepath.Join(dir, "points.geojson")
	require.NoError(t, ExportGeoJSON(snapshot(), jsonPath))
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FeatureCollection")
}
