package extract

import (
	"strings"

	"github.com/microbridge/microbridge/internal/model"
)

// Record is one raw annotation record as found in the native document,
// before any numeric parsing
type Record struct {
	Index         int
	Title         string
	HasAnnotation bool
	Type          string     // annotation type attribute
	DisplayName   string     // annotation displayname attribute
	CircleX       *string    // direct <x> child of the annotation
	CircleY       *string    // direct <y> child of the annotation
	RulerEnds     bool       // carries <x1>/<y1>/<x2>/<y2> endpoints
	Points        []RawPoint // pointlist vertices
}

// RawPoint is one pointlist vertex as text
type RawPoint struct {
	X *string
	Y *string
}

// Annotation types and display names that mark linear measurements
var rulerMarkers = map[string]bool{
	"linearmeasure": true,
	"annotateruler": true,
	"ruler":         true,
}

// Classify tags a record using only its own structure and attributes.
// Records that match nothing are freehand shapes with whatever geometry they
// carry, which may be none.
func Classify(rec Record) model.Kind {
	if rulerMarkers[strings.ToLower(strings.TrimSpace(rec.Type))] ||
		rulerMarkers[strings.ToLower(strings.TrimSpace(rec.DisplayName))] {
		return model.KindRuler
	}

	if rec.CircleX != nil && rec.CircleY != nil {
		return model.KindCircle
	}

	// Endpoint pairs with no other geometry are measurements even when the
	// type attribute is missing
	if rec.RulerEnds && len(rec.Points) == 0 {
		return model.KindRuler
	}

	return model.KindFreehand
}

// ToRegion classifies rec and parses its geometry
func ToRegion(rec Record) model.Region {
	region := model.Region{
		Index: rec.Index,
		Kind:  Classify(rec),
		Label: strings.TrimSpace(rec.Title),
	}

	if region.Kind == model.KindRuler {
		return region
	}

	if region.Kind == model.KindCircle {
		x, okX := parseNumber(rec.CircleX)
		y, okY := parseNumber(rec.CircleY)
		region.Circle = &model.Coord{X: x, Y: y, Valid: okX && okY}
	}

	if len(rec.Points) > 0 {
		region.Points = make([]model.Coord, len(rec.Points))
		for i, p := range rec.Points {
			x, okX := parseNumber(p.X)
			y, okY := parseNumber(p.Y)
			region.Points[i] = model.Coord{X: x, Y: y, Valid: okX && okY}
		}
	}

	return region
}
