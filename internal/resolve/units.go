// Package resolve partitions classified regions and turns them into
// output-unit calibration points.
package resolve

import (
	"math"

	"github.com/microbridge/microbridge/internal/format"
	"github.com/microbridge/microbridge/internal/model"
)

// Scale converts input-native coordinate values to integer micrometres.
// Values are divided once and rounded half to even.
type Scale struct {
	Divisor float64
}

// ScaleFor returns the fixed scale of an input format
func ScaleFor(f format.Format) Scale {
	return Scale{Divisor: f.Divisor()}
}

func (s Scale) divisor() float64 {
	if s.Divisor == 0 {
		return 1
	}
	return s.Divisor
}

// Apply transforms one value. Callers check Fits first; out-of-range values
// do not convert meaningfully.
func (s Scale) Apply(v float64) int {
	return int(math.RoundToEven(v / s.divisor()))
}

// Fits reports whether c is valid and both values stay within
// model.MaxCoordinate once scaled
func (s Scale) Fits(c model.Coord) bool {
	if !c.Valid {
		return false
	}
	d := s.divisor()
	return math.Abs(c.X/d) <= model.MaxCoordinate && math.Abs(c.Y/d) <= model.MaxCoordinate
}

// Vertex transforms one coordinate pair
func (s Scale) Vertex(c model.Coord) model.Vertex {
	return model.Vertex{X: s.Apply(c.X), Y: s.Apply(c.Y)}
}

// Vertices transforms the coordinates of a list that Fit, skipping the rest
func (s Scale) Vertices(coords []model.Coord) []model.Vertex {
	out := make([]model.Vertex, 0, len(coords))
	for _, c := range coords {
		if s.Fits(c) {
			out = append(out, s.Vertex(c))
		}
	}
	return out
}
