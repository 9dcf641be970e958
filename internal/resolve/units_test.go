package resolve

import (
	"testing"

	"github.com/microbridge/microbridge/internal/format"
	"github.com/microbridge/microbridge/internal/model"
)

func TestScale_Apply(t *testing.T) {
	native := ScaleFor(format.NDPA)
	csv := ScaleFor(format.CSV)

	tests := []struct {
		desc  string
		scale Scale
		in    float64
		want  int
	}{
		{"native calibration x", native, 12345000, 12345},
		{"native calibration y", native, 67890000, 67890},
		{"native rounds down", native, 1499, 1},
		{"native rounds up", native, 1501, 2},
		{"native half to even (down)", native, 2500, 2},
		{"native half to even (up)", native, 3500, 4},
		{"native negative", native, -2500, -2},
		{"csv rounds only", csv, 100.6, 101},
		{"csv half to even", csv, 150.5, 150},
		{"csv half to even odd", csv, 250.5, 250},
		{"csv integer unchanged", csv, 200, 200},
		{"zero divisor acts as one", Scale{}, 7.4, 7},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := tt.scale.Apply(tt.in); got != tt.want {
				t.Errorf("Apply(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestScale_Vertices_SkipsInvalid(t *testing.T) {
	coords := []model.Coord{
		model.Pt(1000, 2000),
		{X: 5, Y: 5, Valid: false},
		model.Pt(3000, 4000),
	}

	got := ScaleFor(format.NDPA).Vertices(coords)
	want := []model.Vertex{{X: 1, Y: 2}, {X: 3, Y: 4}}

	if len(got) != len(want) {
		t.Fatalf("Expected %d vertices, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertex %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestScale_Fits(t *testing.T) {
	native := ScaleFor(format.NDPA)
	csv := ScaleFor(format.CSV)

	tests := []struct {
		desc  string
		scale Scale
		in    model.Coord
		want  bool
	}{
		{"ordinary", native, model.Pt(12345000, 67890000), true},
		{"invalid", native, model.Coord{X: 1, Y: 1}, false},
		{"huge x", native, model.Pt(1e30, 0), false},
		{"huge negative y", csv, model.Pt(0, -1e30), false},
		{"bound", csv, model.Pt(model.MaxCoordinate, 0), true},
		{"above bound", csv, model.Pt(2*model.MaxCoordinate, 0), false},
		{"divisor brings it in range", native, model.Pt(2*model.MaxCoordinate, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := tt.scale.Fits(tt.in); got != tt.want {
				t.Errorf("Fits(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScale_Vertices_SkipsOutOfRange(t *testing.T) {
	got := ScaleFor(format.NDPA).Vertices([]model.Coord{model.Pt(1e30, 1000), model.Pt(2000, 3000)})
	if len(got) != 1 || got[0] != (model.Vertex{X: 2, Y: 3}) {
		t.Errorf("Expected only (2, 3), got %+v", got)
	}
}
