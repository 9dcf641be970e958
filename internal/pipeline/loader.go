package pipeline

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/microbridge/microbridge/internal/format"
	"github.com/microbridge/microbridge/internal/model"
)

// sniffSize is how much of a file format detection looks at
const sniffSize = 512

type input struct {
	Path   string
	Data   []byte
	Format format.Format
}

// load reads path and settles its format. Failures carry InputNotFound,
// InputUnreadable or MalformedDocument.
func load(path string, forced format.Format) (*input, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, statError(path, err)
	}
	if info.IsDir() {
		return nil, model.Errorf(model.ErrInputUnreadable, path, "path is a directory, not an annotation file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewError(model.ErrInputUnreadable, path, "could not read file", err)
	}

	head := data
	if len(head) > sniffSize {
		head = head[:sniffSize]
	}

	if forced == format.Unknown {
		if msg := format.Mismatch(path, head); msg != "" {
			return nil, model.Errorf(model.ErrMalformedDocument, path, "file extension does not match its content: %s", msg)
		}
	}

	f := format.Resolve(forced, path, head)
	if f == format.Unknown {
		return nil, model.Errorf(model.ErrMalformedDocument, path, "unrecognised file type, expected .ndpa or .csv")
	}

	return &input{Path: path, Data: data, Format: f}, nil
}

func statError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewError(model.ErrInputNotFound, path, "file does not exist", err)
	}
	return model.NewError(model.ErrInputUnreadable, path, "could not access file", err)
}

// readHead returns up to sniffSize leading bytes of path
func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, sniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}
