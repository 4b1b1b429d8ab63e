package mock

import "context"

// Summarizer returns a canned summary. Raw stands in for the oracle's
// unprocessed answer and falls back to Summary when unset.
type Summarizer struct {
	Summary string
	Raw     string
	Err     error

	Called bool
}

func (s *Summarizer) Summarize(_ context.Context, _, _, _ string) (string, string, error) {
	s.Called = true
	raw := s.Raw
	if raw == "" {
		raw = s.Summary
	}
	return s.Summary, raw, s.Err
}
