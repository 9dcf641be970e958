package worker

import "github.com/microbridge/microbridge/internal/model"

// Summary totals a run
type Summary struct {
	Total     int
	Converted int // Written, or assembled on a dry run
	Skipped   int // Unchanged since the last incremental run
	Failed    int
	Cancelled int // Abandoned by a hard stop or never started
	Stopped   bool

	Results []*model.FileResult
}

// Add counts one file result
func (s *Summary) Add(res *model.FileResult) {
	s.Total++
	s.Results = append(s.Results, res)

	switch {
	case res.Status == model.StatusConverted || res.Status == model.StatusDryRun:
		s.Converted++
	case res.Status == model.StatusSkipped:
		s.Skipped++
	case res.ErrorKind == model.ErrCancelled:
		s.Cancelled++
	default:
		s.Failed++
	}
}

// OK reports whether no file failed outright
func (s *Summary) OK() bool {
	return s.Failed == 0
}

// Summarize totals a finished batch
func Summarize(results []*model.FileResult) *Summary {
	s := &Summary{}
	for _, res := range results {
		s.Add(res)
	}
	s.Stopped = s.Cancelled > 0
	return s
}
