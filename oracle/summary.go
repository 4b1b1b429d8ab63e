package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/rohancyriac029/reviewcord/log"
)

// abstractPromptTmpl is used when an abstract is available; it asks for
// the full structured breakdown.
var abstractPromptTmpl = template.Must(template.New("abstract").Funcs(promptFuncs).Parse(`Given this research paper:

Title: {{if .Title}}{{.Title}}{{else}}Not provided{{end}}
Link: {{if .Link}}{{.Link}}{{else}}Not provided{{end}}

Abstract:
{{.Abstract}}

Please provide a comprehensive summary including:
1. A brief summary (2-3 sentences)
2. Main findings or contributions
3. Key methodology (if mentioned)
4. Potential applications or significance

Format the response as JSON with keys: summary, findings, methodology, significance`))

// titlePromptTmpl is the shorter fallback when only title or link are
// known.
var titlePromptTmpl = template.Must(template.New("title").Parse(`Given this research paper {{if .Title}}titled "{{.Title}}"{{end}} {{if .Link}}with link: {{.Link}}{{end}}, provide:
1. A brief summary (2-3 sentences)
2. Main findings or contributions
3. Key methodology (if applicable)

Format the response as JSON with keys: summary, findings, methodology`))

type structuredSummary struct {
	Summary      string `json:"summary"`
	Findings     string `json:"findings"`
	Methodology  string `json:"methodology"`
	Significance string `json:"significance"`
}

// Summarizer asks the oracle for a structured summary and flattens it to
// a single display string.
type Summarizer struct {
	oracle Oracle
	logger log.Logger
}

func NewSummarizer(o Oracle, logger log.Logger) *Summarizer {
	return &Summarizer{oracle: o, logger: logger}
}

// Summarize returns the flattened summary and the oracle's raw answer.
// An unparsable answer degrades to the raw text verbatim; only a failed
// oracle call is an error, and callers are expected to absorb it.
func (s *Summarizer) Summarize(ctx context.Context, title, link, abstract string) (string, string, error) {
	tmpl := titlePromptTmpl
	if strings.TrimSpace(abstract) != "" {
		tmpl = abstractPromptTmpl
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Title, Link, Abstract string
	}{Title: title, Link: link, Abstract: abstract})
	if err != nil {
		return "", "", err
	}

	text, err := s.oracle.Complete(ctx, buf.String())
	if err != nil {
		return "", "", err
	}

	var parsed structuredSummary
	if err := json.Unmarshal([]byte(stripFences(text)), &parsed); err != nil {
		s.logger.Printf("summary not structured, using raw text")
		return text, text, nil
	}

	return flatten(parsed), text, nil
}

// flatten concatenates the present sections with their bold labels, in
// document order.
func flatten(s structuredSummary) string {
	var b strings.Builder
	if s.Summary != "" {
		b.WriteString(s.Summary)
		b.WriteString("\n\n")
	}
	if s.Findings != "" {
		b.WriteString("**Key Findings:** ")
		b.WriteString(s.Findings)
		b.WriteString("\n\n")
	}
	if s.Methodology != "" {
		b.WriteString("**Methodology:** ")
		b.WriteString(s.Methodology)
		b.WriteString("\n\n")
	}
	if s.Significance != "" {
		b.WriteString("**Significance:** ")
		b.WriteString(s.Significance)
	}

	return strings.TrimSpace(b.String())
}
