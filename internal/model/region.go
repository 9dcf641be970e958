package model

// Region represents one annotated area in source document order
type Region struct {
	Index  int     `json:"index"`            // Ordinal in the source document (0-based, never reused)
	Kind   Kind    `json:"kind"`             // Classification tag, set once by the classifier
	Label  string  `json:"label,omitempty"`  // Annotation title (diagnostics only)
	Circle *Coord  `json:"circle,omitempty"` // Circle centre, when the record carries circle geometry
	Points []Coord `json:"points,omitempty"` // Ordered vertex list in input-native units
}

// Kind is the closed set of region classifications
type Kind int

const (
	KindFreehand Kind = iota // Capture shape (or unrecognized record with empty geometry)
	KindCircle               // Circle calibration marker
	KindRuler                // Linear measurement, ignored everywhere downstream
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle-calibration"
	case KindRuler:
		return "ruler"
	default:
		return "freehand-shape"
	}
}

// MarshalText lets Kind appear by name in JSON reports
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MaxCoordinate bounds the magnitude of any coordinate value, before and after
// scaling. Larger values are treated as missing.
const MaxCoordinate = 1 << 53

// Coord is a coordinate pair as read from the input.
// Valid is false when either value was missing or not a number.
// Defaulted marks a (0, 0) substituted for an unreadable row; it is Valid as a
// vertex but never counts as a resolved calibration point.
type Coord struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Valid     bool    `json:"valid"`
	Defaulted bool    `json:"defaulted,omitempty"`
}

// Pt builds a valid Coord
func Pt(x, y float64) Coord {
	return Coord{X: x, Y: y, Valid: true}
}

// DisplayLabel returns the label, or "Unnamed" when the record had none
func (r Region) DisplayLabel() string {
	if r.Label != "" {
		return r.Label
	}
	return "Unnamed"
}

// ValidPoints returns the vertices that carry numeric coordinates
func (r Region) ValidPoints() []Coord {
	out := make([]Coord, 0, len(r.Points))
	for _, p := range r.Points {
		if p.Valid {
			out = append(out, p)
		}
	}
	return out
}
