package extract

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/microbridge/microbridge/internal/format"
	"github.com/microbridge/microbridge/internal/model"
)

// Column positions (0-based) of the centroid coordinates in CSV exports
const (
	csvColumnX = 5
	csvColumnY = 6
)

// CSVReader reads centroid exports: one header row, then one region per row
type CSVReader struct{}

// NewCSVReader creates a new CSV reader
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Format returns format.CSV
func (c *CSVReader) Format() format.Format {
	return format.CSV
}

// Read parses every data row into a single-point region. Rows with missing or
// non-numeric coordinates become (0, 0) and are noted in the trail.
func (c *CSVReader) Read(r io.Reader) (*Result, error) {
	body, _ := decodeBOM(r)

	cr := csv.NewReader(body)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	result := &Result{}
	header := true

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if header {
			header = false
			continue
		}

		line, _ := cr.FieldPos(0)
		coord, ok := rowCoord(row)
		if !ok {
			result.Trail.Warnf("Row %d: missing or non-numeric X/Y columns, using (0, 0)", line)
		}

		result.Regions = append(result.Regions, model.Region{
			Index:  len(result.Regions),
			Kind:   model.KindFreehand,
			Label:  fmt.Sprintf("row %d", line),
			Points: []model.Coord{coord},
		})
	}

	if len(result.Regions) > 3 {
		result.Trail.Warnf("CSV contains centroids only; creating single-point shapes (use NDPA for full polygons)")
	}

	return result, nil
}

// rowCoord reads the X/Y columns. A row that cannot supply both numbers
// resolves to a valid, defaulted (0, 0).
func rowCoord(row []string) (model.Coord, bool) {
	defaulted := model.Coord{Valid: true, Defaulted: true}
	if len(row) <= csvColumnY {
		return defaulted, false
	}
	x, okX := parseNumber(&row[csvColumnX])
	y, okY := parseNumber(&row[csvColumnY])
	if !okX || !okY {
		return defaulted, false
	}
	return model.Pt(x, y), true
}

var _ Reader = (*CSVReader)(nil)
