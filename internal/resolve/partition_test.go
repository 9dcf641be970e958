package resolve

import (
	"testing"

	"github.com/microbridge/microbridge/internal/model"
)

func circle(index int, label string, x, y float64) model.Region {
	c := model.Pt(x, y)
	return model.Region{Index: index, Kind: model.KindCircle, Label: label, Circle: &c}
}

func freehand(index int, label string, pts ...model.Coord) model.Region {
	return model.Region{Index: index, Kind: model.KindFreehand, Label: label, Points: pts}
}

func ruler(index int) model.Region {
	return model.Region{Index: index, Kind: model.KindRuler, Label: "Ruler"}
}

func TestSplit_Basic(t *testing.T) {
	regions := []model.Region{
		circle(0, "Cal_1", 1, 1),
		circle(1, "Cal_2", 2, 2),
		circle(2, "Cal_3", 3, 3),
		freehand(3, "Shape_1", model.Pt(4, 4)),
		freehand(4, "Shape_2", model.Pt(5, 5)),
	}

	var trail model.Trail
	p, err := Split(regions, &trail)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for i := 0; i < 3; i++ {
		if p.Calibration[i].Index != i {
			t.Errorf("slot %d: expected region %d, got %d", i, i, p.Calibration[i].Index)
		}
	}
	if len(p.Shapes) != 2 {
		t.Errorf("Expected 2 shape candidates, got %d", len(p.Shapes))
	}
}

func TestSplit_RulersInvisible(t *testing.T) {
	withRulers := []model.Region{
		ruler(0),
		circle(1, "Cal_1", 1, 1),
		ruler(2),
		circle(3, "Cal_2", 2, 2),
		circle(4, "Cal_3", 3, 3),
		ruler(5),
		freehand(6, "Shape_1", model.Pt(4, 4)),
		ruler(7),
		ruler(8),
		freehand(9, "Shape_2", model.Pt(5, 5)),
		ruler(10),
	}

	var withoutRulers []model.Region
	for _, r := range withRulers {
		if r.Kind != model.KindRuler {
			withoutRulers = append(withoutRulers, r)
		}
	}

	var trail model.Trail
	a, err := Split(withRulers, &trail)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	b, err := Split(withoutRulers, &model.Trail{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(a.Rulers) != 6 {
		t.Errorf("Expected 6 rulers set aside, got %d", len(a.Rulers))
	}
	for i := range a.Calibration {
		if a.Calibration[i].Index != b.Calibration[i].Index {
			t.Errorf("slot %d differs: %d vs %d", i, a.Calibration[i].Index, b.Calibration[i].Index)
		}
	}
	if len(a.Shapes) != len(b.Shapes) {
		t.Fatalf("shape count differs: %d vs %d", len(a.Shapes), len(b.Shapes))
	}
	for i := range a.Shapes {
		if a.Shapes[i].Index != b.Shapes[i].Index {
			t.Errorf("shape %d differs: %d vs %d", i, a.Shapes[i].Index, b.Shapes[i].Index)
		}
	}

	if len(trail) < 6 {
		t.Errorf("Expected each ruler logged, got %d trail entries", len(trail))
	}
}

func TestSplit_LateCircleIsShape(t *testing.T) {
	regions := []model.Region{
		circle(0, "Cal_1", 1, 1),
		freehand(1, "Cal_2", model.Pt(2, 2)),
		circle(2, "Cal_3", 3, 3),
		circle(3, "Extra", 4, 4),
	}

	p, err := Split(regions, &model.Trail{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(p.Shapes) != 1 || p.Shapes[0].Index != 3 {
		t.Errorf("Expected the late circle as a shape candidate, got %+v", p.Shapes)
	}
}

func TestSplit_Insufficient(t *testing.T) {
	tests := []struct {
		desc    string
		regions []model.Region
	}{
		{"none", nil},
		{"two", []model.Region{circle(0, "a", 1, 1), circle(1, "b", 2, 2)}},
		{"two plus rulers", []model.Region{circle(0, "a", 1, 1), ruler(1), ruler(2), circle(3, "b", 2, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := Split(tt.regions, &model.Trail{})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if kind := model.KindOf(err); kind != model.ErrInsufficientRegions {
				t.Errorf("Expected %s, got %s", model.ErrInsufficientRegions, kind)
			}
		})
	}
}
