package model

// CalibrationSlots is the fixed cardinality of calibration fields in the output
const CalibrationSlots = 3

// Method records how a calibration point was obtained
type Method string

const (
	MethodCircle      Method = "circle"      // Circle annotation centre
	MethodPointList   Method = "pointlist"   // First vertex of a point list
	MethodPlaceholder Method = "placeholder" // Nothing usable; written as (0, 0)
)

// Describe returns the phrase used in the diagnostic trail
func (m Method) Describe() string {
	switch m {
	case MethodCircle:
		return "from circle annotation"
	case MethodPointList:
		return "from pointlist"
	default:
		return "placeholder"
	}
}

// CalibrationPoint is one resolved reference coordinate, in output units
type CalibrationPoint struct {
	Slot        int    `json:"slot"` // 1..3
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Method      Method `json:"method"`
	Label       string `json:"label,omitempty"`
	SourceIndex int    `json:"source_index"`        // Region.Index the point came from
	Defaulted   bool   `json:"defaulted,omitempty"` // Placeholder from a row whose coordinates were unreadable
}

// CalibrationSet holds exactly three calibration points, slot order
type CalibrationSet [CalibrationSlots]CalibrationPoint

// UsesPlaceholder reports whether any slot fell through to the placeholder
func (c CalibrationSet) UsesPlaceholder() bool {
	return len(c.PlaceholderSlots()) > 0
}

// PlaceholderSlots lists the 1-based slots that hold placeholder coordinates
func (c CalibrationSet) PlaceholderSlots() []int {
	var slots []int
	for _, p := range c {
		if p.Method == MethodPlaceholder {
			slots = append(slots, p.Slot)
		}
	}
	return slots
}

// MissingSlots lists the placeholder slots that were not defaulted from an
// unreadable row
func (c CalibrationSet) MissingSlots() []int {
	var slots []int
	for _, p := range c {
		if p.Method == MethodPlaceholder && !p.Defaulted {
			slots = append(slots, p.Slot)
		}
	}
	return slots
}

// Vertex is an output-unit coordinate
type Vertex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shape is a capture shape ready for output. Vertices is never empty.
type Shape struct {
	Number      int      `json:"number"` // 1..N in surviving order
	Label       string   `json:"label,omitempty"`
	SourceIndex int      `json:"source_index"` // Region.Index the shape came from
	Vertices    []Vertex `json:"vertices"`
}

// ShapeSet is the ordered list of shapes that will be written
type ShapeSet []Shape
