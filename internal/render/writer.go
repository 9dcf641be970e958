package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

const xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Encode writes the document: global flag, 3 calibration slots, the shape
// count, then exactly that many shape blocks
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xmlDeclaration); err != nil {
		return fmt.Errorf("write declaration: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := start("ImageData")
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("open root: %w", err)
	}

	leaf := func(name string, v int) error {
		return enc.EncodeElement(v, start(name))
	}

	if err := leaf("GlobalCoordinates", 1); err != nil {
		return err
	}

	for i, p := range d.Calibration {
		n := strconv.Itoa(i + 1)
		if err := leaf("X_CalibrationPoint_"+n, p.X); err != nil {
			return err
		}
		if err := leaf("Y_CalibrationPoint_"+n, p.Y); err != nil {
			return err
		}
	}

	if err := leaf("ShapeCount", d.ShapeCount()); err != nil {
		return err
	}

	for i, s := range d.Shapes {
		block := start("Shape_" + strconv.Itoa(i+1))
		if err := enc.EncodeToken(block); err != nil {
			return fmt.Errorf("open shape %d: %w", i+1, err)
		}
		if err := leaf("PointCount", len(s.Vertices)); err != nil {
			return err
		}
		for j, v := range s.Vertices {
			n := strconv.Itoa(j + 1)
			if err := leaf("X_"+n, v.X); err != nil {
				return err
			}
			if err := leaf("Y_"+n, v.Y); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(block.End()); err != nil {
			return fmt.Errorf("close shape %d: %w", i+1, err)
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("close root: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}

func start(name string) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}}
}

// WriteFile writes the document to path atomically: the content goes to a
// temporary file in the same directory which is synced and renamed into
// place. On failure nothing is left at path.
func WriteFile(doc *Document, path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = doc.Encode(bw); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

// OutputPath returns <basename>_LMD.xml in outDir, or next to input when
// outDir is empty
func OutputPath(input, outDir string) string {
	base := filepath.Base(input)
	base = base[:len(base)-len(filepath.Ext(base))]
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, base+"_LMD.xml")
}
