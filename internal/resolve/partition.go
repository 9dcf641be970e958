package resolve

import (
	"github.com/microbridge/microbridge/internal/model"
)

// Partition is a document's regions split by role
type Partition struct {
	Calibration [model.CalibrationSlots]model.Region // First three non-ruler regions
	Shapes      []model.Region                       // Every later non-ruler region, any kind
	Rulers      []model.Region                       // Excluded from all numbering
}

// Split walks regions in document order. Rulers are set aside; the first
// three remaining regions are calibration candidates and the rest are shape
// candidates regardless of how they were classified.
func Split(regions []model.Region, trail *model.Trail) (*Partition, error) {
	p := &Partition{}
	slot := 0

	for _, region := range regions {
		if region.Kind == model.KindRuler {
			p.Rulers = append(p.Rulers, region)
			trail.Infof("Skipping ruler annotation '%s' (region %d)", region.DisplayLabel(), region.Index+1)
			continue
		}

		if slot < model.CalibrationSlots {
			p.Calibration[slot] = region
			slot++
			continue
		}

		if region.Kind == model.KindCircle {
			trail.Infof("Region %d ('%s') is a circle after the calibration slots; treating it as a capture shape", region.Index+1, region.DisplayLabel())
		}
		p.Shapes = append(p.Shapes, region)
	}

	if slot < model.CalibrationSlots {
		return nil, model.Errorf(model.ErrInsufficientRegions, "",
			"found %d non-ruler region(s), need at least %d for calibration points", slot, model.CalibrationSlots)
	}

	if len(p.Shapes) == 0 {
		trail.Warnf("No capture shapes after the 3 calibration regions")
	}

	return p, nil
}
