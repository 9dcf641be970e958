package extract

import (
	"testing"

	"github.com/microbridge/microbridge/internal/model"
)

func str(s string) *string { return &s }

func TestClassify(t *testing.T) {
	tests := []struct {
		desc string
		rec  Record
		want model.Kind
	}{
		{
			desc: "linearmeasure type is a ruler",
			rec:  Record{Type: "linearmeasure", RulerEnds: true},
			want: model.KindRuler,
		},
		{
			desc: "ruler display name wins over circle geometry",
			rec:  Record{DisplayName: "AnnotateRuler", CircleX: str("1"), CircleY: str("2")},
			want: model.KindRuler,
		},
		{
			desc: "untyped endpoint pairs are a ruler",
			rec:  Record{RulerEnds: true},
			want: model.KindRuler,
		},
		{
			desc: "circle geometry without a type attribute",
			rec:  Record{CircleX: str("1"), CircleY: str("2")},
			want: model.KindCircle,
		},
		{
			desc: "circle geometry with non-numeric text is still a circle",
			rec:  Record{Type: "circle", CircleX: str("abc"), CircleY: str("")},
			want: model.KindCircle,
		},
		{
			desc: "half a circle is not a circle",
			rec:  Record{Type: "circle", CircleX: str("1")},
			want: model.KindFreehand,
		},
		{
			desc: "point list is freehand",
			rec:  Record{Type: "freehand", Points: []RawPoint{{X: str("1"), Y: str("2")}}},
			want: model.KindFreehand,
		},
		{
			desc: "endpoints plus points is freehand",
			rec:  Record{RulerEnds: true, Points: []RawPoint{{X: str("1"), Y: str("2")}}},
			want: model.KindFreehand,
		},
		{
			desc: "empty record is freehand",
			rec:  Record{},
			want: model.KindFreehand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := Classify(tt.rec); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestClassify_IgnoresPosition(t *testing.T) {
	rec := Record{Type: "circle", CircleX: str("1"), CircleY: str("2")}
	for i := 0; i < 10; i++ {
		rec.Index = i
		if got := Classify(rec); got != model.KindCircle {
			t.Errorf("index %d: expected circle, got %v", i, got)
		}
	}
}

func TestToRegion_ParsesGeometry(t *testing.T) {
	rec := Record{
		Index:   4,
		Title:   "  Cal 1 ",
		CircleX: str("12345000"),
		CircleY: str(" 67890000 "),
		Points: []RawPoint{
			{X: str("1000"), Y: str("2000")},
			{X: str("oops"), Y: str("2000")},
			{X: nil, Y: str("2000")},
		},
	}

	region := ToRegion(rec)

	if region.Index != 4 {
		t.Errorf("Expected index 4, got %d", region.Index)
	}
	if region.Label != "Cal 1" {
		t.Errorf("Expected trimmed label, got %q", region.Label)
	}
	if region.Circle == nil || !region.Circle.Valid {
		t.Fatalf("Expected valid circle, got %+v", region.Circle)
	}
	if region.Circle.X != 12345000 || region.Circle.Y != 67890000 {
		t.Errorf("Unexpected circle %+v", region.Circle)
	}
	if len(region.Points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(region.Points))
	}
	if !region.Points[0].Valid || region.Points[1].Valid || region.Points[2].Valid {
		t.Errorf("Unexpected validity: %+v", region.Points)
	}
	if got := len(region.ValidPoints()); got != 1 {
		t.Errorf("Expected 1 valid point, got %d", got)
	}
}

func TestToRegion_RulerHasNoGeometry(t *testing.T) {
	rec := Record{
		Type:    "linearmeasure",
		CircleX: str("1"),
		CircleY: str("2"),
		Points:  []RawPoint{{X: str("1"), Y: str("2")}},
	}

	region := ToRegion(rec)
	if region.Kind != model.KindRuler {
		t.Fatalf("Expected ruler, got %v", region.Kind)
	}
	if region.Circle != nil || len(region.Points) != 0 {
		t.Errorf("Expected ruler without geometry, got %+v", region)
	}
}

func TestToRegion_NonFiniteIsMissing(t *testing.T) {
	region := ToRegion(Record{CircleX: str("NaN"), CircleY: str("Inf")})
	if region.Circle == nil || region.Circle.Valid {
		t.Errorf("Expected invalid circle for non-finite text, got %+v", region.Circle)
	}
}

func TestToRegion_OutOfRangeIsMissing(t *testing.T) {
	region := ToRegion(Record{CircleX: str("1e30"), CircleY: str("2000")})
	if region.Circle == nil || region.Circle.Valid {
		t.Errorf("Expected invalid circle for out-of-range text, got %+v", region.Circle)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12345000", 12345000, true},
		{" -2.5 ", -2.5, true},
		{"9007199254740992", 9007199254740992, true},
		{"9007199254740994", 0, false},
		{"1e30", 0, false},
		{"-1e30", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			in := tt.in
			got, ok := parseNumber(&in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseNumber(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
