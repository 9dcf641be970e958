package extract

import (
	"io"

	"github.com/microbridge/microbridge/internal/format"
	"github.com/microbridge/microbridge/internal/model"
)

// Reader turns one input document into classified regions
type Reader interface {
	// Format returns the input format this reader handles
	Format() format.Format

	// Read parses the document. Regions come back in document order with
	// Kind already set; notes about recovered input go to the trail.
	Read(r io.Reader) (*Result, error)
}

// Result is the front-end output for one document
type Result struct {
	Regions []model.Region
	Trail   model.Trail
}

// Registry maps formats to readers
type Registry struct {
	readers map[format.Format]Reader
}

// NewRegistry creates a registry with the built-in readers
func NewRegistry() *Registry {
	registry := &Registry{
		readers: make(map[format.Format]Reader),
	}

	registry.Register(NewNDPAReader())
	registry.Register(NewCSVReader())

	return registry
}

// Register adds or replaces the reader for its format
func (r *Registry) Register(reader Reader) {
	r.readers[reader.Format()] = reader
}

// Lookup returns the reader for f
func (r *Registry) Lookup(f format.Format) (Reader, bool) {
	reader, ok := r.readers[f]
	return reader, ok
}
