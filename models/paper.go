package models

import (
	"strings"
	"time"
)

// Status is the review state of a paper. Exactly three values are valid.
type Status string

const (
	StatusNotReviewed Status = "not-reviewed"
	StatusInProgress  Status = "in-progress"
	StatusReviewed    Status = "reviewed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotReviewed, StatusInProgress, StatusReviewed:
		return true
	}
	return false
}

// Paper is the sole persistent entity. The id is assigned by the store on
// insertion and never changes afterwards.
type Paper struct {
	ID int `json:"id"`

	Title    string `json:"title"`
	Authors  string `json:"authors,omitempty"`
	Year     string `json:"year,omitempty"`
	Link     string `json:"link,omitempty"`
	DOI      string `json:"doi,omitempty"`
	Abstract string `json:"abstract,omitempty"`
	Summary  string `json:"summary,omitempty"`

	Status     Status     `json:"status"`
	AddedBy    string     `json:"addedBy"`
	AddedAt    time.Time  `json:"addedAt"`
	ReviewedBy string     `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`

	Notes string   `json:"notes,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// PaperInput is the submission payload. Everything except AddedBy is
// optional: a link alone is enough as long as extraction recovers a title.
type PaperInput struct {
	Title   string   `json:"title"`
	Authors string   `json:"authors"`
	Year    string   `json:"year"`
	Link    string   `json:"link"`
	AddedBy string   `json:"addedBy"`
	Notes   string   `json:"notes"`
	Tags    []string `json:"tags"`
}

// PaperUpdate is a partial update. Nil fields are left untouched. The id is
// never part of an update payload.
type PaperUpdate struct {
	Title      *string   `json:"title"`
	Authors    *string   `json:"authors"`
	Year       *string   `json:"year"`
	Link       *string   `json:"link"`
	DOI        *string   `json:"doi"`
	Abstract   *string   `json:"abstract"`
	Summary    *string   `json:"summary"`
	Status     *Status   `json:"status"`
	ReviewedBy *string   `json:"reviewedBy"`
	Notes      *string   `json:"notes"`
	Tags       *[]string `json:"tags"`
}

// Metadata is what the extractor recovers from a paper's web page.
type Metadata struct {
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Year     string `json:"year"`
	Abstract string `json:"abstract"`
	DOI      string `json:"doi"`
	Source   string `json:"source"`
}

// Empty reports whether the extraction recovered nothing usable. Title and
// abstract are the two fields that make a record worth keeping.
func (m Metadata) Empty() bool {
	return strings.TrimSpace(m.Title) == "" && strings.TrimSpace(m.Abstract) == ""
}

// Verdict is the duplicate resolver's structured answer.
type Verdict struct {
	IsDuplicate       bool   `json:"isDuplicate"`
	MatchedPaperIndex *int   `json:"matchedPaperIndex"`
	MatchedPaperTitle string `json:"matchedPaperTitle,omitempty"`
	Confidence        string `json:"confidence,omitempty"`
	Reason            string `json:"reason,omitempty"`
}
