// Package render assembles and writes LMD ImageData documents.
package render

import (
	"context"

	"github.com/microbridge/microbridge/internal/model"
	"github.com/microbridge/microbridge/internal/resolve"
)

// DefaultHardStopThreshold is the shape count above which assembly checks
// for a hard stop between shapes
const DefaultHardStopThreshold = 200

// Document is a fully resolved LMD document. Shapes holds only non-empty
// shapes, numbered 1..N, so the declared count is len(Shapes) by construction.
type Document struct {
	Calibration model.CalibrationSet
	Shapes      model.ShapeSet
}

// ShapeCount is the value written to <ShapeCount>
func (d *Document) ShapeCount() int {
	return len(d.Shapes)
}

// Assembler performs the counting pass over shape candidates
type Assembler struct {
	scale resolve.Scale

	// Progress, when set, is called after each candidate
	Progress func(done, total int)

	// HardStopThreshold is the candidate count at which ctx is checked
	// between shapes; smaller documents only check once at the end
	HardStopThreshold int
}

// NewAssembler creates an assembler for one input format's scale
func NewAssembler(scale resolve.Scale) *Assembler {
	return &Assembler{
		scale:             scale,
		HardStopThreshold: DefaultHardStopThreshold,
	}
}

// Assemble transforms every candidate, drops those left with no vertices and
// numbers the survivors in order. It returns the document and the number of
// dropped candidates.
func (a *Assembler) Assemble(ctx context.Context, cal model.CalibrationSet, candidates []model.Region, trail *model.Trail) (*Document, int, error) {
	doc := &Document{
		Calibration: cal,
		Shapes:      make(model.ShapeSet, 0, len(candidates)),
	}
	dropped := 0
	checkEach := a.HardStopThreshold > 0 && len(candidates) >= a.HardStopThreshold

	for i, region := range candidates {
		if checkEach {
			if err := ctx.Err(); err != nil {
				return nil, dropped, err
			}
		}

		vertices := a.scale.Vertices(region.Points)
		if skipped := len(region.Points) - len(vertices); skipped > 0 && len(vertices) > 0 {
			trail.Warnf("Shape '%s' (region %d): skipped %d vertex(es) with non-numeric coordinates",
				region.DisplayLabel(), region.Index+1, skipped)
		}

		if len(vertices) == 0 {
			dropped++
			trail.Warnf("Dropping region %d ('%s'): no valid points", region.Index+1, region.DisplayLabel())
		} else {
			doc.Shapes = append(doc.Shapes, model.Shape{
				Number:      len(doc.Shapes) + 1,
				Label:       region.Label,
				SourceIndex: region.Index,
				Vertices:    vertices,
			})
		}

		if a.Progress != nil {
			a.Progress(i+1, len(candidates))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, dropped, err
	}

	for _, s := range doc.Shapes {
		trail.Infof("Shape %d ('%s'): %d vertices", s.Number, shapeLabel(s), len(s.Vertices))
	}

	return doc, dropped, nil
}

func shapeLabel(s model.Shape) string {
	if s.Label != "" {
		return s.Label
	}
	return "Unnamed"
}
