// Package format identifies annotation input formats and their unit scale.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported annotation input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// NDPA indicates an NDP.view2 annotation XML file.
	NDPA
	// CSV indicates a tabular export with centroid columns.
	CSV
)

// nanometresPerMicrometre is the native-document scale divisor.
const nanometresPerMicrometre = 1000

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case NDPA:
		return "ndpa"
	case CSV:
		return "csv"
	default:
		return "unknown"
	}
}

// Extensions returns the file extensions enumerated for the format.
func (f Format) Extensions() []string {
	switch f {
	case NDPA:
		return []string{".ndpa"}
	case CSV:
		return []string{".csv"}
	default:
		return nil
	}
}

// Divisor returns how many input units make one output unit (micrometre).
// NDPA coordinates are nanometres; CSV exports are already micrometres.
func (f Format) Divisor() float64 {
	if f == NDPA {
		return nanometresPerMicrometre
	}
	return 1
}

// Parse converts a user-supplied format name. "auto" and "" map to Unknown,
// meaning the format is detected per file.
func Parse(name string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Unknown, true
	case "ndpa", "ndp", "xml":
		return NDPA, true
	case "csv":
		return CSV, true
	default:
		return Unknown, false
	}
}

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ndpa", ".xml":
		return NDPA
	case ".csv":
		return CSV
	default:
		return Unknown
	}
}

// Sniff inspects leading bytes. It only recognises XML; anything else is
// reported as Unknown because CSV has no magic.
func Sniff(data []byte) Format {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(data, []byte("<?xml")) || bytes.HasPrefix(data, []byte("<annotations")) {
		return NDPA
	}
	return Unknown
}

// Mismatch reports a content/extension disagreement that makes a file
// unusable, or "" when the content is plausible for the extension.
func Mismatch(filename string, head []byte) string {
	switch Detect(filename) {
	case NDPA:
		if Sniff(head) != NDPA && !looksLikeUTF16(head) {
			return "not XML"
		}
	case CSV:
		if Sniff(head) == NDPA {
			return "appears to be XML, not CSV"
		}
	}
	return ""
}

func looksLikeUTF16(head []byte) bool {
	return bytes.HasPrefix(head, []byte{0xff, 0xfe}) || bytes.HasPrefix(head, []byte{0xfe, 0xff})
}

// Resolve picks the format for a file: a forced format wins, then the
// extension, then content sniffing.
func Resolve(forced Format, filename string, head []byte) Format {
	if forced != Unknown {
		return forced
	}
	if f := Detect(filename); f != Unknown {
		return f
	}
	return Sniff(head)
}
