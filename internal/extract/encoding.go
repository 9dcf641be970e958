package extract

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/microbridge/microbridge/internal/model"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeBOM strips a UTF-8 byte order mark and transcodes BOM-marked UTF-16
// to UTF-8. The flag reports whether a UTF-16 transcode happened, in which
// case any encoding named by an XML declaration no longer applies.
func decodeBOM(r io.Reader) (io.Reader, bool) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(2)
	utf16 := len(head) == 2 &&
		((head[0] == 0xff && head[1] == 0xfe) || (head[0] == 0xfe && head[1] == 0xff))

	return transform.NewReader(br, unicode.BOMOverride(transform.Nop)), utf16
}

// parseNumber parses coordinate text. Missing, blank, non-numeric, non-finite
// and out-of-range values all report false.
func parseNumber(s *string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > model.MaxCoordinate {
		return 0, false
	}
	return v, true
}
