package render

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Summary describes an LMD document read back from disk
type Summary struct {
	DeclaredShapes int   // <ShapeCount>
	ShapeBlocks    int   // Shape_k elements present
	PointCounts    []int // Declared <PointCount> per shape, in order
}

type node struct {
	XMLName  xml.Name
	Content  string `xml:",chardata"`
	Children []node `xml:",any"`
}

func (n *node) child(name string) (*node, int) {
	var found *node
	count := 0
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			if found == nil {
				found = &n.Children[i]
			}
			count++
		}
	}
	return found, count
}

func (n *node) intValue() (int, error) {
	return strconv.Atoi(strings.TrimSpace(n.Content))
}

// Verify reads an LMD document and checks its internal consistency: the
// calibration fields are present once each, ShapeCount equals the number of
// Shape_k blocks, blocks are numbered 1..N without gaps, and every block's
// PointCount matches its X_i/Y_i pairs.
func Verify(r io.Reader) (*Summary, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if root.XMLName.Local != "ImageData" {
		return nil, fmt.Errorf("root element is %q, want ImageData", root.XMLName.Local)
	}

	var problems []error
	fail := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	required := []string{"GlobalCoordinates"}
	for slot := 1; slot <= 3; slot++ {
		required = append(required, fmt.Sprintf("X_CalibrationPoint_%d", slot), fmt.Sprintf("Y_CalibrationPoint_%d", slot))
	}
	for _, name := range required {
		el, count := root.child(name)
		if count != 1 {
			fail("%s appears %d times, want 1", name, count)
			continue
		}
		if _, err := el.intValue(); err != nil {
			fail("%s is not an integer: %q", name, el.Content)
		}
	}

	summary := &Summary{}

	countEl, count := root.child("ShapeCount")
	if count != 1 {
		fail("ShapeCount appears %d times, want 1", count)
	} else if n, err := countEl.intValue(); err != nil {
		fail("ShapeCount is not an integer: %q", countEl.Content)
	} else {
		summary.DeclaredShapes = n
	}

	for i := range root.Children {
		name := root.Children[i].XMLName.Local
		if !strings.HasPrefix(name, "Shape_") {
			continue
		}
		summary.ShapeBlocks++

		want := fmt.Sprintf("Shape_%d", summary.ShapeBlocks)
		if name != want {
			fail("found %s where %s was expected", name, want)
		}

		points, err := verifyShape(&root.Children[i])
		if err != nil {
			fail("%s: %w", name, err)
		}
		summary.PointCounts = append(summary.PointCounts, points)
	}

	if summary.DeclaredShapes != summary.ShapeBlocks {
		fail("ShapeCount is %d but %d shape blocks are present", summary.DeclaredShapes, summary.ShapeBlocks)
	}

	return summary, errors.Join(problems...)
}

func verifyShape(shape *node) (int, error) {
	pc, count := shape.child("PointCount")
	if count != 1 {
		return 0, fmt.Errorf("PointCount appears %d times, want 1", count)
	}
	declared, err := pc.intValue()
	if err != nil {
		return 0, fmt.Errorf("PointCount is not an integer: %q", pc.Content)
	}
	if declared < 1 {
		return declared, fmt.Errorf("PointCount is %d, shapes must have at least one point", declared)
	}

	for i := 1; i <= declared; i++ {
		for _, axis := range []string{"X", "Y"} {
			name := fmt.Sprintf("%s_%d", axis, i)
			if _, c := shape.child(name); c != 1 {
				return declared, fmt.Errorf("%s appears %d times, want 1", name, c)
			}
		}
	}

	if extra := len(shape.Children) - 1 - 2*declared; extra != 0 {
		return declared, fmt.Errorf("PointCount is %d but the block holds %d coordinate elements", declared, len(shape.Children)-1)
	}

	return declared, nil
}
