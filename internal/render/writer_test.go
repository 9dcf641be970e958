package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/microbridge/microbridge/internal/model"
)

func TestDocument_Encode(t *testing.T) {
	doc := &Document{
		Calibration: testCalibration(),
		Shapes: model.ShapeSet{
			{Number: 1, Vertices: []model.Vertex{{X: 300000, Y: 400000}, {X: 301000, Y: 401000}}},
			{Number: 2, Vertices: []model.Vertex{{X: 5, Y: 6}}},
		},
	}

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := `<?xml version="1.0" encoding="utf-8"?>
<ImageData>
  <GlobalCoordinates>1</GlobalCoordinates>
  <X_CalibrationPoint_1>100000</X_CalibrationPoint_1>
  <Y_CalibrationPoint_1>200000</Y_CalibrationPoint_1>
  <X_CalibrationPoint_2>150000</X_CalibrationPoint_2>
  <Y_CalibrationPoint_2>250000</Y_CalibrationPoint_2>
  <X_CalibrationPoint_3>200000</X_CalibrationPoint_3>
  <Y_CalibrationPoint_3>300000</Y_CalibrationPoint_3>
  <ShapeCount>2</ShapeCount>
  <Shape_1>
    <PointCount>2</PointCount>
    <X_1>300000</X_1>
    <Y_1>400000</Y_1>
    <X_2>301000</X_2>
    <Y_2>401000</Y_2>
  </Shape_1>
  <Shape_2>
    <PointCount>1</PointCount>
    <X_1>5</X_1>
    <Y_1>6</Y_1>
  </Shape_2>
</ImageData>
`
	if got := buf.String(); got != want {
		t.Errorf("Unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestDocument_Encode_NoShapes(t *testing.T) {
	doc := &Document{Calibration: testCalibration()}

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<ShapeCount>0</ShapeCount>") {
		t.Errorf("Expected ShapeCount 0, got:\n%s", out)
	}
	if strings.Contains(out, "<Shape_") {
		t.Errorf("Expected no shape blocks, got:\n%s", out)
	}
}

func TestDocument_Encode_CalibrationNamedByPosition(t *testing.T) {
	doc := &Document{Calibration: model.CalibrationSet{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}}

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<X_CalibrationPoint_1>1</X_CalibrationPoint_1>",
		"<Y_CalibrationPoint_2>4</Y_CalibrationPoint_2>",
		"<X_CalibrationPoint_3>5</X_CalibrationPoint_3>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %s in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "CalibrationPoint_0") {
		t.Errorf("Expected no slot 0 element, got:\n%s", out)
	}

	if _, err := Verify(strings.NewReader(out)); err != nil {
		t.Errorf("Expected document to verify, got %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slide_LMD.xml")

	if err := WriteFile(&Document{Calibration: testCalibration()}, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if _, err := Verify(f); err != nil {
		t.Errorf("Expected a consistent document, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected only the output file, found %d entries", len(entries))
	}
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "slide_LMD.xml")

	if err := WriteFile(&Document{Calibration: testCalibration()}, path); err == nil {
		t.Fatal("Expected error, got nil")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected no output file, stat returned %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, outDir, want string
	}{
		{filepath.Join("data", "slide.ndpa"), "", filepath.Join("data", "slide_LMD.xml")},
		{filepath.Join("data", "cells.csv"), "out", filepath.Join("out", "cells_LMD.xml")},
		{filepath.Join("data", "slide.v2.ndpa"), "", filepath.Join("data", "slide.v2_LMD.xml")},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.input, tt.outDir); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.input, tt.outDir, got, tt.want)
		}
	}
}
