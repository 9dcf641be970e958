// Checks LMD ImageData files for internal consistency: ShapeCount must equal
// the number of Shape_k blocks and every block's PointCount must match its
// coordinate pairs
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/microbridge/microbridge/internal/render"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file_LMD.xml>...\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	failed := 0
	for _, path := range os.Args[1:] {
		summary, err := verifyFile(path)
		if err != nil {
			failed++
			fmt.Printf("✗ %s\n", path)
			fmt.Printf("    %v\n", err)
			continue
		}

		points := 0
		for _, n := range summary.PointCounts {
			points += n
		}
		fmt.Printf("✓ %s (%d shape(s), %d point(s))\n", path, summary.DeclaredShapes, points)
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d file(s) inconsistent\n", failed, len(os.Args)-1)
		os.Exit(1)
	}
}

func verifyFile(path string) (*render.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return render.Verify(f)
}
