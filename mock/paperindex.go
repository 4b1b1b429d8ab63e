package mock

import (
	"sort"
	"strings"

	"github.com/rohancyriac029/reviewcord/models"
)

// PaperIndex fakes the bleve index with naive substring matching, enough
// for wiring tests.
type PaperIndex struct {
	docs map[int]models.Paper

	// FailWith makes every call return this error.
	FailWith error
}

func (i *PaperIndex) init() {
	if i.docs == nil {
		i.docs = make(map[int]models.Paper)
	}
}

func (i *PaperIndex) Index(paper *models.Paper) error {
	if i.FailWith != nil {
		return i.FailWith
	}
	i.init()
	i.docs[paper.ID] = *paper
	return nil
}

func (i *PaperIndex) Delete(id int) error {
	if i.FailWith != nil {
		return i.FailWith
	}
	i.init()
	delete(i.docs, id)
	return nil
}

func (i *PaperIndex) Search(q string, status models.Status) ([]int, error) {
	if i.FailWith != nil {
		return nil, i.FailWith
	}
	i.init()

	q = strings.ToLower(q)
	var ids []int
	for id, p := range i.docs {
		if status != "" && p.Status != status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) {
			continue
		}
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids, nil
}
