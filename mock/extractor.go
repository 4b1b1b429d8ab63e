package mock

import (
	"context"

	"github.com/rohancyriac029/reviewcord/models"
)

// Extractor returns canned metadata and records the urls it was asked
// about.
type Extractor struct {
	Metadata models.Metadata
	Err      error

	URLs []string
}

func (e *Extractor) Extract(_ context.Context, url string) (models.Metadata, error) {
	e.URLs = append(e.URLs, url)
	return e.Metadata, e.Err
}
