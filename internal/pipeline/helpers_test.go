package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/microbridge/microbridge/internal/model"
)

func circleXML(title, x, y string) string {
	return fmt.Sprintf(`  <ndpviewstate>
    <title>%s</title>
    <annotation type="circle" displayname="AnnotateCircle"><x>%s</x><y>%s</y><radius>500</radius></annotation>
  </ndpviewstate>
`, title, x, y)
}

func freehandXML(title string, pts ...[2]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  <ndpviewstate>\n    <title>%s</title>\n    <annotation type=\"freehand\" displayname=\"AnnotateFreehand\"><pointlist>", title)
	for _, p := range pts {
		fmt.Fprintf(&b, "<point><x>%s</x><y>%s</y></point>", p[0], p[1])
	}
	b.WriteString("</pointlist></annotation>\n  </ndpviewstate>\n")
	return b.String()
}

func rulerXML(title string) string {
	return fmt.Sprintf(`  <ndpviewstate>
    <title>%s</title>
    <annotation type="linearmeasure" displayname="AnnotateRuler"><x1>1</x1><y1>2</y1><x2>3</x2><y2>4</y2></annotation>
  </ndpviewstate>
`, title)
}

func emptyXML(title string) string {
	return fmt.Sprintf("  <ndpviewstate>\n    <title>%s</title>\n  </ndpviewstate>\n", title)
}

func ndpaDoc(regions ...string) string {
	return `<?xml version="1.0" encoding="utf-8"?>` + "\n<annotations>\n" + strings.Join(regions, "") + "</annotations>\n"
}

func calibrationXML() []string {
	return []string{
		circleXML("Cal_1", "100000000", "200000000"),
		circleXML("Cal_2", "150000000", "250000000"),
		circleXML("Cal_3", "200000000", "300000000"),
	}
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return string(data)
}

func asConversionError(err error, target **model.ConversionError) bool {
	return errors.As(err, target)
}
