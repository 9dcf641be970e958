package extract

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/microbridge/microbridge/internal/format"
	"golang.org/x/net/html/charset"
)

// NDPAReader reads NDP.view2 annotation documents
type NDPAReader struct{}

// NewNDPAReader creates a new NDPA reader
func NewNDPAReader() *NDPAReader {
	return &NDPAReader{}
}

// Format returns format.NDPA
func (n *NDPAReader) Format() format.Format {
	return format.NDPA
}

type xmlViewState struct {
	Title       string          `xml:"title"`
	Annotations []xmlAnnotation `xml:"annotation"`
}

type xmlAnnotation struct {
	Type        string     `xml:"type,attr"`
	DisplayName string     `xml:"displayname,attr"`
	X           *string    `xml:"x"`
	Y           *string    `xml:"y"`
	X1          *string    `xml:"x1"`
	Y1          *string    `xml:"y1"`
	X2          *string    `xml:"x2"`
	Y2          *string    `xml:"y2"`
	Points      []xmlPoint `xml:"pointlist>point"`
}

type xmlPoint struct {
	X *string `xml:"x"`
	Y *string `xml:"y"`
}

// Read streams the document and decodes every ndpviewstate element, at any
// depth, as one region
func (n *NDPAReader) Read(r io.Reader) (*Result, error) {
	body, transcoded := decodeBOM(r)

	dec := xml.NewDecoder(body)
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if transcoded {
			return input, nil
		}
		return charset.NewReaderLabel(label, input)
	}

	result := &Result{}
	sawRoot := false
	index := 0

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true

		if start.Name.Local != "ndpviewstate" {
			continue
		}

		var vs xmlViewState
		if err := dec.DecodeElement(&vs, &start); err != nil {
			return nil, fmt.Errorf("parse region %d: %w", index+1, err)
		}

		result.Regions = append(result.Regions, ToRegion(vs.record(index)))
		index++
	}

	if !sawRoot {
		return nil, fmt.Errorf("parse xml: no root element")
	}

	return result, nil
}

// record flattens the decoded element into the classifier's view. Only the
// first annotation of a region carries geometry.
func (vs *xmlViewState) record(index int) Record {
	rec := Record{
		Index: index,
		Title: strings.TrimSpace(vs.Title),
	}

	if len(vs.Annotations) == 0 {
		return rec
	}

	a := vs.Annotations[0]
	rec.HasAnnotation = true
	rec.Type = a.Type
	rec.DisplayName = a.DisplayName
	rec.CircleX = a.X
	rec.CircleY = a.Y
	rec.RulerEnds = a.X1 != nil && a.Y1 != nil && a.X2 != nil && a.Y2 != nil

	if len(a.Points) > 0 {
		rec.Points = make([]RawPoint, len(a.Points))
		for i, p := range a.Points {
			rec.Points[i] = RawPoint{X: p.X, Y: p.Y}
		}
	}

	return rec
}

var _ Reader = (*NDPAReader)(nil)
