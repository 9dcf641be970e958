package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/microbridge/microbridge/internal/model"
)

func TestVerify_EncodedDocuments(t *testing.T) {
	docs := []*Document{
		{Calibration: testCalibration()},
		{Calibration: testCalibration(), Shapes: model.ShapeSet{
			{Number: 1, Vertices: []model.Vertex{{X: 1, Y: 1}}},
			{Number: 2, Vertices: []model.Vertex{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}},
			{Number: 3, Vertices: []model.Vertex{{X: 1, Y: 1}}},
		}},
	}

	for i, doc := range docs {
		var buf bytes.Buffer
		if err := doc.Encode(&buf); err != nil {
			t.Fatalf("doc %d: encode: %v", i, err)
		}

		summary, err := Verify(&buf)
		if err != nil {
			t.Errorf("doc %d: expected consistent document, got %v", i, err)
			continue
		}
		if summary.DeclaredShapes != doc.ShapeCount() || summary.ShapeBlocks != doc.ShapeCount() {
			t.Errorf("doc %d: expected %d shapes, got %+v", i, doc.ShapeCount(), summary)
		}
	}
}

func TestVerify_DetectsInconsistency(t *testing.T) {
	header := `<ImageData><GlobalCoordinates>1</GlobalCoordinates>
<X_CalibrationPoint_1>1</X_CalibrationPoint_1><Y_CalibrationPoint_1>1</Y_CalibrationPoint_1>
<X_CalibrationPoint_2>1</X_CalibrationPoint_2><Y_CalibrationPoint_2>1</Y_CalibrationPoint_2>
<X_CalibrationPoint_3>1</X_CalibrationPoint_3><Y_CalibrationPoint_3>1</Y_CalibrationPoint_3>`

	tests := []struct {
		desc string
		doc  string
		want string
	}{
		{
			desc: "count larger than blocks",
			doc:  header + `<ShapeCount>2</ShapeCount><Shape_1><PointCount>1</PointCount><X_1>1</X_1><Y_1>1</Y_1></Shape_1></ImageData>`,
			want: "ShapeCount is 2 but 1 shape blocks",
		},
		{
			desc: "gap in numbering",
			doc:  header + `<ShapeCount>1</ShapeCount><Shape_2><PointCount>1</PointCount><X_1>1</X_1><Y_1>1</Y_1></Shape_2></ImageData>`,
			want: "found Shape_2 where Shape_1 was expected",
		},
		{
			desc: "point count mismatch",
			doc:  header + `<ShapeCount>1</ShapeCount><Shape_1><PointCount>2</PointCount><X_1>1</X_1><Y_1>1</Y_1></Shape_1></ImageData>`,
			want: "X_2 appears 0 times",
		},
		{
			desc: "missing calibration",
			doc:  `<ImageData><GlobalCoordinates>1</GlobalCoordinates><ShapeCount>0</ShapeCount></ImageData>`,
			want: "X_CalibrationPoint_1 appears 0 times",
		},
		{
			desc: "wrong root",
			doc:  `<Other/>`,
			want: "want ImageData",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := Verify(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}
