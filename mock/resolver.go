package mock

import (
	"context"

	"github.com/rohancyriac029/reviewcord/models"
	"github.com/rohancyriac029/reviewcord/oracle"
)

// Resolver returns a canned verdict and records what it was asked to
// compare.
type Resolver struct {
	Verdict models.Verdict

	Called    bool
	Candidate oracle.Comparison
	Existing  []oracle.Comparison
}

func (r *Resolver) Resolve(_ context.Context, candidate oracle.Comparison, existing []oracle.Comparison) models.Verdict {
	r.Called = true
	r.Candidate = candidate
	r.Existing = existing
	return r.Verdict
}
