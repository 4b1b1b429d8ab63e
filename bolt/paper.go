package bolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/boltdb/bolt"

	"github.com/rohancyriac029/reviewcord/models"
)

var paperBucket = []byte("papers")

// PaperRepository stores papers as JSON documents in a bolt bucket, one
// document per paper, keyed by the id the bucket sequence assigns.
type PaperRepository struct {
	Driver *Driver
}

// Get retrieves the paper with the given id. It returns nil when no paper
// exists for that id.
func (r *PaperRepository) Get(id int) (*models.Paper, error) {
	var paper *models.Paper
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(paperBucket).Get(itob(id))
		if data == nil {
			return nil
		}

		var p models.Paper
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		paper = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paper, nil
}

// List returns all papers ordered by AddedAt descending, most recent
// first.
func (r *PaperRepository) List() ([]models.Paper, error) {
	papers := []models.Paper{}

	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(paperBucket).Cursor()
		for k, data := c.First(); k != nil; k, data = c.Next() {
			var p models.Paper
			if err := json.Unmarshal(data, &p); err != nil {
				return err
			}
			papers = append(papers, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].AddedAt.After(papers[j].AddedAt)
	})

	return papers, nil
}

// Insert saves a new paper. The id is assigned from the bucket sequence
// and AddedAt is stamped when the caller left it zero.
func (r *PaperRepository) Insert(paper *models.Paper) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(paperBucket)

		id, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("error incrementing id: %v", err)
		}
		paper.ID = int(id)

		if paper.AddedAt.IsZero() {
			paper.AddedAt = time.Now()
		}

		data, err := json.Marshal(paper)
		if err != nil {
			return err
		}

		return bucket.Put(itob(paper.ID), data)
	})
}

// Update merges the non-nil fields of update into the stored paper. When
// the update sets the status to reviewed and carries a reviewer name,
// ReviewedAt is stamped in the same write. It returns nil when no paper
// exists for that id.
func (r *PaperRepository) Update(id int, update models.PaperUpdate) (*models.Paper, error) {
	var paper *models.Paper
	err := r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(paperBucket)

		data := bucket.Get(itob(id))
		if data == nil {
			return nil
		}

		var p models.Paper
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}

		merge(&p, update)

		if update.Status != nil && *update.Status == models.StatusReviewed &&
			update.ReviewedBy != nil && *update.ReviewedBy != "" {
			now := time.Now()
			p.ReviewedAt = &now
		}

		data, err := json.Marshal(&p)
		if err != nil {
			return err
		}
		if err := bucket.Put(itob(id), data); err != nil {
			return err
		}

		paper = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paper, nil
}

// Delete removes the paper with the given id. It reports whether a paper
// was actually deleted.
func (r *PaperRepository) Delete(id int) (bool, error) {
	found := false
	err := r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(paperBucket)
		if bucket.Get(itob(id)) == nil {
			return nil
		}

		found = true
		return bucket.Delete(itob(id))
	})
	if err != nil {
		return false, err
	}

	return found, nil
}

func merge(p *models.Paper, u models.PaperUpdate) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Authors != nil {
		p.Authors = *u.Authors
	}
	if u.Year != nil {
		p.Year = *u.Year
	}
	if u.Link != nil {
		p.Link = *u.Link
	}
	if u.DOI != nil {
		p.DOI = *u.DOI
	}
	if u.Abstract != nil {
		p.Abstract = *u.Abstract
	}
	if u.Summary != nil {
		p.Summary = *u.Summary
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.ReviewedBy != nil {
		p.ReviewedBy = *u.ReviewedBy
	}
	if u.Notes != nil {
		p.Notes = *u.Notes
	}
	if u.Tags != nil {
		p.Tags = *u.Tags
	}
}

// itob returns an 8-byte big endian representation of v.
func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
