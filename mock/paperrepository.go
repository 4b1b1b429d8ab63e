package mock

import (
	"sort"
	"time"

	"github.com/rohancyriac029/reviewcord/models"
)

// PaperRepository is an in-memory stand-in for the bolt repository, used
// in handler and service tests.
type PaperRepository struct {
	db    map[int]models.Paper
	maxID int

	// FailWith makes every call return this error.
	FailWith error
}

func (r *PaperRepository) init() {
	if r.db == nil {
		r.db = make(map[int]models.Paper)
	}
}

func (r *PaperRepository) Get(id int) (*models.Paper, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.init()

	paper, ok := r.db[id]
	if !ok {
		return nil, nil
	}
	return &paper, nil
}

func (r *PaperRepository) List() ([]models.Paper, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.init()

	papers := make([]models.Paper, 0, len(r.db))
	for _, p := range r.db {
		papers = append(papers, p)
	}
	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].AddedAt.After(papers[j].AddedAt)
	})
	return papers, nil
}

func (r *PaperRepository) Insert(paper *models.Paper) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.init()

	r.maxID++
	paper.ID = r.maxID
	if paper.AddedAt.IsZero() {
		paper.AddedAt = time.Now()
	}

	r.db[paper.ID] = *paper
	return nil
}

func (r *PaperRepository) Update(id int, update models.PaperUpdate) (*models.Paper, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.init()

	paper, ok := r.db[id]
	if !ok {
		return nil, nil
	}

	if update.Title != nil {
		paper.Title = *update.Title
	}
	if update.Authors != nil {
		paper.Authors = *update.Authors
	}
	if update.Year != nil {
		paper.Year = *update.Year
	}
	if update.Link != nil {
		paper.Link = *update.Link
	}
	if update.DOI != nil {
		paper.DOI = *update.DOI
	}
	if update.Abstract != nil {
		paper.Abstract = *update.Abstract
	}
	if update.Summary != nil {
		paper.Summary = *update.Summary
	}
	if update.Status != nil {
		paper.Status = *update.Status
	}
	if update.ReviewedBy != nil {
		paper.ReviewedBy = *update.ReviewedBy
	}
	if update.Notes != nil {
		paper.Notes = *update.Notes
	}
	if update.Tags != nil {
		paper.Tags = *update.Tags
	}

	if update.Status != nil && *update.Status == models.StatusReviewed &&
		update.ReviewedBy != nil && *update.ReviewedBy != "" {
		now := time.Now()
		paper.ReviewedAt = &now
	}

	r.db[id] = paper
	return &paper, nil
}

func (r *PaperRepository) Delete(id int) (bool, error) {
	if r.FailWith != nil {
		return false, r.FailWith
	}
	r.init()

	if _, ok := r.db[id]; !ok {
		return false, nil
	}
	delete(r.db, id)
	return true, nil
}
