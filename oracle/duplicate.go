package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"text/template"

	"github.com/rohancyriac029/reviewcord/log"
	"github.com/rohancyriac029/reviewcord/models"
)

// Comparison is the reduced view of a paper fed to the duplicate prompt.
type Comparison struct {
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Year     string `json:"year"`
	Link     string `json:"link"`
	DOI      string `json:"doi"`
	Abstract string `json:"abstract"`
}

var promptFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"orNA": func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	},
	// head caps the abstract so the prompt stays small.
	"head": func(s string) string {
		if runes := []rune(s); len(runes) > 300 {
			return string(runes[:300])
		}
		return s
	},
}

// duplicatePromptTmpl encodes the decision precedence: DOI match beats
// everything, then embedded identifiers, then title+author semantics.
var duplicatePromptTmpl = template.Must(template.New("duplicate").Funcs(promptFuncs).Parse(`You are a research paper duplicate detector. Compare the NEW paper with the EXISTING papers to determine if it's a duplicate.

NEW PAPER:
{{template "paper" .New}}

EXISTING PAPERS IN DATABASE:
{{range $i, $p := .Existing}}Paper {{inc $i}}:
{{template "paper" $p}}

{{end}}
Analyze if the NEW paper is the same as any EXISTING paper based on:
1. **DOI Match**: If DOIs are present and identical, they are 100% the same paper
2. **Title similarity**: Even with slight variations in formatting, punctuation, or word order
3. **Author names**: Even if ordered differently, with/without initials, or different formats
4. **Abstract content**: If abstracts are semantically very similar
5. **Publication year**: Must match if other criteria match
6. **URL/Link**: ArXiv IDs, DOIs, or paper IDs that point to the same paper

Consider these the SAME paper if:
- DOIs match (highest priority)
- ArXiv IDs or paper IDs match in URLs
- Titles are semantically identical AND authors match
- Titles are very similar AND abstract content is essentially the same
- Same authors, year, and highly similar titles

Do NOT consider duplicates if:
- Only titles are vaguely similar but authors differ
- Same topic but clearly different papers
- Different years with similar titles

Respond ONLY with valid JSON in this exact format:
{
  "isDuplicate": true/false,
  "matchedPaperIndex": number or null (0-based index if duplicate found),
  "matchedPaperTitle": "title" or null,
  "confidence": "high/medium/low",
  "reason": "brief explanation"
}`))

var paperTmpl = template.Must(duplicatePromptTmpl.New("paper").Parse(`Title: {{orNA .Title}}
Authors: {{orNA .Authors}}
Year: {{orNA .Year}}
Link: {{orNA .Link}}
DOI: {{orNA .DOI}}
Abstract: {{orNA (head .Abstract)}}`))

// Resolver judges whether a candidate paper already exists in the
// collection. Its own failures are absorbed: an oracle or parse error
// reports "not a duplicate" rather than blocking the submission.
type Resolver struct {
	oracle Oracle
	logger log.Logger
}

func NewResolver(o Oracle, logger log.Logger) *Resolver {
	return &Resolver{oracle: o, logger: logger}
}

// Resolve compares candidate against existing. An empty existing list
// short-circuits: there is nothing to be a duplicate of.
func (r *Resolver) Resolve(ctx context.Context, candidate Comparison, existing []Comparison) models.Verdict {
	if len(existing) == 0 {
		return models.Verdict{IsDuplicate: false}
	}

	prompt, err := renderDuplicatePrompt(candidate, existing)
	if err != nil {
		r.logger.Errorf("could not render duplicate prompt: %v", err)
		return models.Verdict{IsDuplicate: false}
	}

	text, err := r.oracle.Complete(ctx, prompt)
	if err != nil {
		r.logger.Errorf("duplicate check failed, assuming not a duplicate: %v", err)
		return models.Verdict{IsDuplicate: false}
	}

	var verdict models.Verdict
	if err := json.Unmarshal([]byte(stripFences(text)), &verdict); err != nil {
		r.logger.Errorf("could not parse duplicate verdict %q: %v", text, err)
		return models.Verdict{IsDuplicate: false}
	}

	return verdict
}

func renderDuplicatePrompt(candidate Comparison, existing []Comparison) (string, error) {
	var buf bytes.Buffer
	err := duplicatePromptTmpl.Execute(&buf, struct {
		New      Comparison
		Existing []Comparison
	}{New: candidate, Existing: existing})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
