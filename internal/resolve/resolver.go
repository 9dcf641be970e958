package resolve

import (
	"fmt"
	"strings"

	"github.com/microbridge/microbridge/internal/model"
)

// Strategy is one tier of the calibration fallback chain
type Strategy interface {
	// Method names the tier for the diagnostic trail
	Method() model.Method

	// Resolve returns a usable input-unit coordinate, or false
	Resolve(region model.Region) (model.Coord, bool)
}

// CircleStrategy uses the centre of a circle annotation
type CircleStrategy struct{}

// Method returns model.MethodCircle
func (CircleStrategy) Method() model.Method { return model.MethodCircle }

// Resolve succeeds for circle regions whose centre parsed as numbers
func (CircleStrategy) Resolve(region model.Region) (model.Coord, bool) {
	if region.Kind != model.KindCircle || region.Circle == nil || !region.Circle.Valid {
		return model.Coord{}, false
	}
	return *region.Circle, true
}

// PointListStrategy uses the first vertex of the point list
type PointListStrategy struct{}

// Method returns model.MethodPointList
func (PointListStrategy) Method() model.Method { return model.MethodPointList }

// Resolve succeeds when the first vertex is numeric and was read, not defaulted
func (PointListStrategy) Resolve(region model.Region) (model.Coord, bool) {
	if len(region.Points) == 0 || !region.Points[0].Valid || region.Points[0].Defaulted {
		return model.Coord{}, false
	}
	return region.Points[0], true
}

// DefaultStrategies is the chain used when none is given: circle, then pointlist
func DefaultStrategies() []Strategy {
	return []Strategy{CircleStrategy{}, PointListStrategy{}}
}

// Resolver resolves calibration candidates through an ordered chain of
// strategies, falling back to a (0, 0) placeholder
type Resolver struct {
	strategies []Strategy
	scale      Scale
}

// NewResolver creates a resolver. With no strategies the default chain is used.
func NewResolver(scale Scale, strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Resolver{
		strategies: strategies,
		scale:      scale,
	}
}

// Calibrate resolves all three slots. Every slot is filled; slots nothing
// could resolve carry MethodPlaceholder.
func (r *Resolver) Calibrate(candidates [model.CalibrationSlots]model.Region, trail *model.Trail) model.CalibrationSet {
	var set model.CalibrationSet

	for i, region := range candidates {
		point := r.resolveOne(region)
		point.Slot = i + 1
		set[i] = point

		if point.Method == model.MethodPlaceholder {
			if point.Defaulted {
				trail.Warnf("Calibration region %d ('%s') had unreadable coordinates, defaulted to (0, 0)", point.Slot, region.DisplayLabel())
			} else {
				trail.Warnf("Calibration region %d ('%s') has no valid coordinates", point.Slot, region.DisplayLabel())
			}
			trail.Warnf("Calibration Point %d ('%s'): X=0 µm, Y=0 µm (placeholder) - LMD system may malfunction", point.Slot, region.DisplayLabel())
			continue
		}

		trail.Infof("Calibration Point %d ('%s'): X=%d µm, Y=%d µm (%s)",
			point.Slot, region.DisplayLabel(), point.X, point.Y, point.Method.Describe())
	}

	return set
}

func (r *Resolver) resolveOne(region model.Region) model.CalibrationPoint {
	point := model.CalibrationPoint{
		Label:       region.Label,
		SourceIndex: region.Index,
		Method:      model.MethodPlaceholder,
	}

	for _, s := range r.strategies {
		coord, ok := s.Resolve(region)
		if !ok || !r.scale.Fits(coord) {
			continue
		}
		v := r.scale.Vertex(coord)
		point.X, point.Y = v.X, v.Y
		point.Method = s.Method()
		return point
	}

	point.Defaulted = len(region.Points) > 0 && region.Points[0].Defaulted
	return point
}

// CheckCalibration fails with ErrMissingCalibrationData when any slot is
// missing and force is off. Slots defaulted from unreadable rows are flagged
// in the trail but do not fail.
func CheckCalibration(set model.CalibrationSet, force bool) error {
	slots := set.MissingSlots()
	if len(slots) == 0 || force {
		return nil
	}

	names := make([]string, len(slots))
	for i, s := range slots {
		label := set[s-1].Label
		if label == "" {
			label = "Unnamed"
		}
		names[i] = fmt.Sprintf("point %d ('%s')", s, label)
	}

	return model.Errorf(model.ErrMissingCalibrationData, "",
		"calibration %s missing valid coordinate data", strings.Join(names, ", "))
}
