package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rohancyriac029/reviewcord/errors"
	"github.com/rohancyriac029/reviewcord/log"
	"github.com/rohancyriac029/reviewcord/models"
	"github.com/rohancyriac029/reviewcord/oracle"
)

func errPaperNotFound(id int) error {
	return errors.New(fmt.Sprintf("paper %d not found", id), errors.NotFound())
}

// PaperRepository is the document store behind the service.
type PaperRepository interface {
	Get(id int) (*models.Paper, error)
	List() ([]models.Paper, error)
	Insert(*models.Paper) error
	Update(id int, update models.PaperUpdate) (*models.Paper, error)
	Delete(id int) (bool, error)
}

// PaperIndex is the search index kept alongside the store, best effort.
type PaperIndex interface {
	Index(*models.Paper) error
	Delete(id int) error
	Search(q string, status models.Status) ([]int, error)
}

type Extractor interface {
	Extract(ctx context.Context, url string) (models.Metadata, error)
}

type Resolver interface {
	Resolve(ctx context.Context, candidate oracle.Comparison, existing []oracle.Comparison) models.Verdict
}

type Summarizer interface {
	Summarize(ctx context.Context, title, link, abstract string) (summary, raw string, err error)
}

// DuplicateError rejects a submission that already exists in the
// collection. It carries the matched paper so the client can show it.
type DuplicateError struct {
	Matched models.Paper
	Reason  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf(
		"duplicate detected: this paper appears to be %q (added by %s). %s",
		e.Matched.Title, e.Matched.AddedBy, e.Reason,
	)
}

func (e *DuplicateError) Code() int       { return 409 }
func (e *DuplicateError) Message() string { return e.Error() }
func (e *DuplicateError) Cause() error    { return nil }

// PaperService sequences the ingestion pipeline and fronts the store for
// everything else.
type PaperService struct {
	repository PaperRepository
	index      PaperIndex

	extractor  Extractor
	resolver   Resolver
	summarizer Summarizer

	logger log.Logger
}

func NewPaperService(
	repo PaperRepository,
	index PaperIndex,
	extractor Extractor,
	resolver Resolver,
	summarizer Summarizer,
	logger log.Logger,
) *PaperService {
	return &PaperService{
		repository: repo,
		index:      index,

		extractor:  extractor,
		resolver:   resolver,
		summarizer: summarizer,

		logger: logger,
	}
}

// Create runs the full ingestion pipeline: extract, resolve duplicates,
// summarize, persist. Extraction and summarization failures degrade;
// only a missing submitter, a missing title and a positive duplicate
// verdict abort the submission. The returned flag reports whether an
// abstract was recovered from the page.
func (s *PaperService) Create(ctx context.Context, input models.PaperInput) (models.Paper, bool, error) {
	if strings.TrimSpace(input.AddedBy) == "" {
		return models.Paper{}, false, errors.New("your name is required", errors.BadRequest())
	}

	paper := models.Paper{
		Title:   input.Title,
		Authors: input.Authors,
		Year:    input.Year,
		Link:    input.Link,
		Notes:   input.Notes,
	}

	extracted := false
	if strings.TrimSpace(input.Link) != "" {
		md, err := s.extractor.Extract(ctx, input.Link)
		if err != nil {
			// Non-fatal: carry on with whatever the user typed in.
			s.logger.Errorf("extraction failed for %s: %v", input.Link, err)
		} else {
			if paper.Title == "" {
				paper.Title = md.Title
			}
			if paper.Authors == "" {
				paper.Authors = md.Authors
			}
			if paper.Year == "" {
				paper.Year = md.Year
			}
			paper.Abstract = md.Abstract
			paper.DOI = md.DOI
			extracted = md.Abstract != ""
		}
	}

	paper.Title = strings.TrimSpace(paper.Title)
	if paper.Title == "" {
		return models.Paper{}, false, errors.New(
			"paper title is required: either provide a title or a valid paper url",
			errors.BadRequest(),
		)
	}

	existing, err := s.repository.List()
	if err != nil {
		return models.Paper{}, false, errors.New("could not load papers", errors.WithCause(err))
	}

	if len(existing) > 0 {
		verdict := s.resolver.Resolve(ctx, oracle.Comparison{
			Title:    paper.Title,
			Authors:  paper.Authors,
			Year:     paper.Year,
			Link:     paper.Link,
			DOI:      paper.DOI,
			Abstract: paper.Abstract,
		}, comparisons(existing))

		if verdict.IsDuplicate {
			matched := existing[0]
			if verdict.MatchedPaperIndex != nil &&
				*verdict.MatchedPaperIndex >= 0 && *verdict.MatchedPaperIndex < len(existing) {
				matched = existing[*verdict.MatchedPaperIndex]
			}
			return models.Paper{}, false, &DuplicateError{Matched: matched, Reason: verdict.Reason}
		}
	}

	if paper.Abstract != "" || paper.Title != "" {
		summary, _, err := s.summarizer.Summarize(ctx, paper.Title, paper.Link, paper.Abstract)
		if err != nil {
			// Summarization never blocks persistence.
			s.logger.Errorf("summary generation failed: %v", err)
		} else {
			paper.Summary = summary
		}
	}

	paper.Status = models.StatusNotReviewed
	paper.AddedBy = input.AddedBy
	paper.Tags = input.Tags
	if paper.Tags == nil {
		paper.Tags = []string{}
	}

	if err := s.repository.Insert(&paper); err != nil {
		return models.Paper{}, false, errors.New("could not save paper", errors.WithCause(err))
	}

	if err := s.index.Index(&paper); err != nil {
		s.logger.Errorf("could not index paper %d: %v", paper.ID, err)
	}

	return paper, extracted, nil
}

// comparisons reduces stored papers for the duplicate prompt. The stored
// summary stands in for the abstract, which is what the collection
// retains long term.
func comparisons(papers []models.Paper) []oracle.Comparison {
	cs := make([]oracle.Comparison, len(papers))
	for i, p := range papers {
		cs[i] = oracle.Comparison{
			Title:    p.Title,
			Authors:  p.Authors,
			Year:     p.Year,
			Link:     p.Link,
			DOI:      p.DOI,
			Abstract: p.Summary,
		}
	}
	return cs
}

func (s *PaperService) List() ([]models.Paper, error) {
	papers, err := s.repository.List()
	if err != nil {
		return nil, errors.New("could not list papers", errors.WithCause(err))
	}
	return papers, nil
}

func (s *PaperService) Get(id int) (models.Paper, error) {
	paper, err := s.repository.Get(id)
	if err != nil {
		return models.Paper{}, errors.New("could not get paper", errors.WithCause(err))
	} else if paper == nil {
		return models.Paper{}, errPaperNotFound(id)
	}

	return *paper, nil
}

// Update applies a partial update. The store stamps reviewedAt when the
// update both sets the status to reviewed and names a reviewer.
func (s *PaperService) Update(id int, update models.PaperUpdate) (models.Paper, error) {
	if update.Status != nil && !update.Status.Valid() {
		return models.Paper{}, errors.New(
			fmt.Sprintf("invalid status %q", *update.Status), errors.BadRequest(),
		)
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return models.Paper{}, errors.New("title cannot be empty", errors.BadRequest())
	}

	paper, err := s.repository.Update(id, update)
	if err != nil {
		return models.Paper{}, errors.New("could not update paper", errors.WithCause(err))
	} else if paper == nil {
		return models.Paper{}, errPaperNotFound(id)
	}

	if err := s.index.Index(paper); err != nil {
		s.logger.Errorf("could not reindex paper %d: %v", paper.ID, err)
	}

	return *paper, nil
}

func (s *PaperService) Delete(id int) error {
	found, err := s.repository.Delete(id)
	if err != nil {
		return errors.New("could not delete paper", errors.WithCause(err))
	} else if !found {
		return errPaperNotFound(id)
	}

	if err := s.index.Delete(id); err != nil {
		s.logger.Errorf("could not remove paper %d from index: %v", id, err)
	}

	return nil
}

// Search queries the index and reads the matching records back from the
// store. Records deleted since indexing are skipped.
func (s *PaperService) Search(q string, status models.Status) ([]models.Paper, error) {
	if status != "" && !status.Valid() {
		return nil, errors.New(fmt.Sprintf("invalid status %q", status), errors.BadRequest())
	}

	ids, err := s.index.Search(q, status)
	if err != nil {
		return nil, errors.New("search failed", errors.WithCause(err))
	}

	papers := make([]models.Paper, 0, len(ids))
	for _, id := range ids {
		paper, err := s.repository.Get(id)
		if err != nil {
			return nil, errors.New("could not get paper", errors.WithCause(err))
		}
		if paper != nil {
			papers = append(papers, *paper)
		}
	}

	return papers, nil
}
