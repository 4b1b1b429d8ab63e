package bleve

import (
	"strconv"
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"

	"github.com/rohancyriac029/reviewcord/models"
)

// PaperIndex indexes papers for the search endpoint. The index only holds
// the searchable fields, the repository stays the source of truth.
type PaperIndex struct {
	index bleve.Index
}

// Open opens the index at path, creating it with the paper mapping when it
// does not exist yet.
func (s *PaperIndex) Open(path string) error {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, paperMapping())
	}
	if err != nil {
		return err
	}

	s.index = index
	return nil
}

func (s *PaperIndex) Close() error {
	if s.index == nil {
		return nil
	}

	return s.index.Close()
}

func paperMapping() *mapping.IndexMappingImpl {
	text := bleve.NewTextFieldMapping()
	text.Analyzer = en.AnalyzerName

	// Status values are matched verbatim, they must not be tokenized.
	kw := bleve.NewTextFieldMapping()
	kw.Analyzer = keyword.Name

	dm := bleve.NewDocumentMapping()
	dm.AddFieldMappingsAt("title", text)
	dm.AddFieldMappingsAt("authors", text)
	dm.AddFieldMappingsAt("tags", text)
	dm.AddFieldMappingsAt("status", kw)

	mapping := bleve.NewIndexMapping()
	mapping.DefaultMapping = dm
	return mapping
}

// Index adds or replaces the searchable view of a paper.
func (s *PaperIndex) Index(paper *models.Paper) error {
	data := map[string]interface{}{
		"title":   paper.Title,
		"authors": paper.Authors,
		"tags":    strings.Join(paper.Tags, " "),
		"status":  string(paper.Status),
	}

	return s.index.Index(strconv.Itoa(paper.ID), data)
}

// Delete removes a paper from the index.
func (s *PaperIndex) Delete(id int) error {
	return s.index.Delete(strconv.Itoa(id))
}

// Search returns the ids of the papers matching q, optionally restricted
// to one status. An empty q matches everything.
func (s *PaperIndex) Search(q string, status models.Status) ([]int, error) {
	conjuncts := make([]query.Query, 0, 2)

	if strings.TrimSpace(q) != "" {
		m := bleve.NewMatchQuery(q)
		conjuncts = append(conjuncts, m)
	}
	if status != "" {
		t := bleve.NewTermQuery(string(status))
		t.SetField("status")
		conjuncts = append(conjuncts, t)
	}

	var full query.Query
	switch len(conjuncts) {
	case 0:
		full = bleve.NewMatchAllQuery()
	case 1:
		full = conjuncts[0]
	default:
		full = bleve.NewConjunctionQuery(conjuncts...)
	}

	req := bleve.NewSearchRequest(full)
	req.Size = 200

	res, err := s.index.Search(req)
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(res.Hits))
	for i, hit := range res.Hits {
		ids[i], err = strconv.Atoi(hit.ID)
		if err != nil {
			return nil, err
		}
	}

	return ids, nil
}
