package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rohancyriac029/reviewcord/models"
)

// A site pairs a URL predicate with the field-extraction strategy for one
// publisher. The registry is walked in order, first match wins, and the
// last entry matches everything.
type site struct {
	name string

	// match receives both the normalized URL (used for dispatch) and the
	// raw URL the user submitted (used for the PDF check).
	match func(normalized, raw string) bool

	scrape func(ctx context.Context, x *Extractor, doc *goquery.Document, normalized, raw string) models.Metadata
}

func contains(substrings ...string) func(string, string) bool {
	return func(normalized, _ string) bool {
		for _, sub := range substrings {
			if strings.Contains(normalized, sub) {
				return true
			}
		}
		return false
	}
}

var sites = []site{
	{name: "arxiv", match: contains("arxiv.org"), scrape: scrapeArxiv},
	{name: "doi", match: contains("doi.org", "dx.doi.org"), scrape: scrapeDOI},
	{name: "scholar", match: contains("scholar.google"), scrape: scrapeScholar},
	{name: "ieee", match: contains("ieee.org"), scrape: scrapeIEEE},
	{name: "acm", match: contains("acm.org"), scrape: scrapeACM},
	{name: "springer", match: contains("springer.com", "link.springer.com"), scrape: scrapeSpringer},
	{name: "sciencedirect", match: contains("sciencedirect.com"), scrape: scrapeScienceDirect},
	{name: "ceur", match: contains("ceur-ws.org"), scrape: scrapeCEUR},
	{name: "pdf", match: func(_, raw string) bool { return isPDF(raw) }, scrape: scrapePDF},
	{name: "generic", match: func(_, _ string) bool { return true }, scrape: scrapeGeneric},
}

func scrapeArxiv(_ context.Context, _ *Extractor, doc *goquery.Document, normalized, _ string) models.Metadata {
	md := models.Metadata{
		Title: firstOf(doc,
			text("h1.title", RemovePrefix("Title:"), OneLine),
		),
		Authors: firstOf(doc,
			textEach(".authors a"),
			text(".authors", RemovePrefix("Authors:")),
		),
		Abstract: firstOf(doc,
			text("blockquote.abstract", RemovePrefix("Abstract:")),
			text(".abstract", RemovePrefix("Abstract:")),
			metaProp("og:description"),
		),
		Year: firstOf(doc,
			year(text(".dateline")),
			year(text(".submission-history")),
		),
	}

	if id := arxivID(normalized); id != "" {
		md.DOI = fmt.Sprintf("arXiv:%s", id)
	}

	return md
}

func scrapeDOI(_ context.Context, _ *Extractor, doc *goquery.Document, normalized, _ string) models.Metadata {
	md := models.Metadata{
		Title: firstOf(doc,
			text("h1"),
			text("title"),
		),
		Authors: firstOf(doc, metaAll("citation_author")),
		Abstract: firstOf(doc,
			meta("citation_abstract"),
			text("abstract"),
		),
		Year: firstOf(doc, year(meta("citation_publication_date"))),
	}

	if i := strings.Index(normalized, "doi.org/"); i >= 0 {
		md.DOI = normalized[i+len("doi.org/"):]
	}

	return md
}

func scrapeScholar(_ context.Context, _ *Extractor, doc *goquery.Document, _, _ string) models.Metadata {
	authors := firstOf(doc, text(".gs_a"))
	if i := strings.Index(authors, "-"); i >= 0 {
		authors = strings.TrimSpace(authors[:i])
	}

	return models.Metadata{
		Title: firstOf(doc,
			text("#gsc_oci_title"),
			text(".gs_rt"),
		),
		Authors:  authors,
		Abstract: firstOf(doc, text("#gsc_oci_descr")),
		Year:     firstOf(doc, year(text(".gs_a"))),
	}
}

func scrapeIEEE(_ context.Context, _ *Extractor, doc *goquery.Document, _, _ string) models.Metadata {
	return models.Metadata{
		Title: firstOf(doc,
			text("h1.document-title"),
			metaProp("og:title"),
		),
		Authors: firstOf(doc, metaAll("citation_author")),
		Abstract: firstOf(doc,
			meta("citation_abstract"),
			text(".abstract-text"),
		),
		Year: firstOf(doc, year(meta("citation_publication_date"))),
		DOI:  firstOf(doc, meta("citation_doi")),
	}
}

func scrapeACM(_ context.Context, _ *Extractor, doc *goquery.Document, _, _ string) models.Metadata {
	return models.Metadata{
		Title: firstOf(doc,
			text("h1.citation__title"),
			text("h1"),
			metaProp("og:title"),
			meta("citation_title"),
		),
		Authors: firstOf(doc,
			textEach(`span[property="author"] span[property="name"]`),
			metaAll("citation_author"),
			textEach(".author-name"),
			textEach(".loa__item .author-name"),
		),
		Abstract: firstOf(doc,
			text(".abstractSection"),
			text(".abstractInFull"),
			meta("description"),
			metaProp("og:description"),
			text("div.abstract"),
		),
		Year: firstOf(doc,
			year(text(".CitationCoverDate")),
			year(meta("citation_publication_date")),
			meta("citation_year"),
			year(text(".epub-section__date")),
		),
		DOI: firstOf(doc,
			meta("dc.Identifier"),
			meta("citation_doi"),
			text(".issue-item__doi", RemovePrefix("https://doi.org/")),
		),
	}
}

func scrapeSpringer(_ context.Context, _ *Extractor, doc *goquery.Document, _, _ string) models.Metadata {
	return models.Metadata{
		Title: firstOf(doc,
			text("h1.c-article-title"),
			meta("citation_title"),
		),
		Authors: firstOf(doc, metaAll("citation_author")),
		Abstract: firstOf(doc,
			text("section.Abstract p"),
			meta("description"),
		),
		Year: firstOf(doc, year(meta("citation_publication_date"))),
		DOI:  firstOf(doc, meta("citation_doi")),
	}
}

func scrapeScienceDirect(_ context.Context, _ *Extractor, doc *goquery.Document, _, _ string) models.Metadata {
	return models.Metadata{
		Title: firstOf(doc,
			text("h1.title-text"),
			meta("citation_title"),
		),
		Authors: firstOf(doc, metaAll("citation_author")),
		Abstract: firstOf(doc,
			text("#abstracts .abstract"),
			meta("description"),
		),
		Year: firstOf(doc, year(meta("citation_publication_date"))),
		DOI:  firstOf(doc, meta("citation_doi")),
	}
}

var (
	ceurVolumePattern = regexp.MustCompile(`Vol-(\d+)`)
	ceurPaperPattern  = regexp.MustCompile(`paper(\d+)\.pdf`)

	// ceurBaseURL is a package-level var so tests can point the volume
	// sub-fetch at a local server.
	ceurBaseURL = "https://ceur-ws.org"
)

// scrapeCEUR handles CEUR workshop proceedings, where the submitted URL
// is usually a direct PDF download. The paper's entry is recovered from
// the volume's listing page instead; failure of that sub-fetch degrades
// to an empty result rather than aborting the extraction.
func scrapeCEUR(ctx context.Context, x *Extractor, doc *goquery.Document, normalized, raw string) models.Metadata {
	var md models.Metadata

	if isPDF(raw) {
		if vol := ceurVolumePattern.FindStringSubmatch(normalized); vol != nil {
			volumeURL := fmt.Sprintf("%s/Vol-%s/", ceurBaseURL, vol[1])

			paperFile := ""
			if m := ceurPaperPattern.FindStringSubmatch(normalized); m != nil {
				paperFile = fmt.Sprintf("paper%s.pdf", m[1])
			}

			volumeDoc, err := x.fetch(ctx, volumeURL)
			if err != nil {
				x.logger.Errorf("could not fetch ceur volume page %s: %v", volumeURL, err)
			} else {
				md = scanCEURVolume(volumeDoc, paperFile)
			}
		}
	}

	if md.Title == "" {
		md.Title = firstOf(doc,
			meta("citation_title"),
			text("title", RemoveSuffix(".pdf")),
		)
		md.Authors = firstOf(doc, metaAll("citation_author"))
		md.Year = firstOf(doc, meta("citation_year"))
	}

	return md
}

// scanCEURVolume walks the volume's table of contents looking for the
// entry that links the given file name.
func scanCEURVolume(doc *goquery.Document, paperFile string) models.Metadata {
	var md models.Metadata

	doc.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		html, err := li.Html()
		if err != nil || paperFile == "" || !strings.Contains(html, paperFile) {
			return true
		}

		md.Title = strings.TrimSpace(li.Find("a").First().Text())

		var authors []string
		for _, line := range strings.Split(li.Text(), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.Contains(line, ".pdf") || line == md.Title {
				continue
			}
			authors = append(authors, line)
		}
		md.Authors = strings.Join(authors, ", ")
		return false
	})

	md.Year = FirstYear(doc.Find("title").First().Text())
	return md
}

func scrapePDF(_ context.Context, _ *Extractor, doc *goquery.Document, _, _ string) models.Metadata {
	return models.Metadata{
		Title: firstOf(doc,
			meta("citation_title"),
			meta("DC.title"),
			metaProp("og:title"),
			text("title", RemoveSuffix(".pdf"), OneLine),
		),
		Authors: firstOf(doc,
			metaAll("citation_author"),
			metaAll("DC.creator"),
			meta("author"),
		),
		Abstract: firstOf(doc,
			meta("citation_abstract"),
			meta("DC.description"),
			meta("description"),
		),
		Year: firstOf(doc,
			year(meta("citation_publication_date")),
			meta("citation_year"),
			year(meta("DC.date")),
		),
		DOI: firstOf(doc,
			meta("citation_doi"),
			meta("DC.identifier"),
		),
	}
}

func scrapeGeneric(_ context.Context, _ *Extractor, doc *goquery.Document, _, _ string) models.Metadata {
	return models.Metadata{
		Title: firstOf(doc,
			meta("citation_title"),
			metaProp("og:title"),
			text("h1"),
			text("title"),
		),
		Authors: firstOf(doc,
			metaAll("citation_author"),
			meta("author"),
		),
		Abstract: firstOf(doc,
			meta("citation_abstract"),
			meta("description"),
			text("abstract"),
		),
		Year: firstOf(doc,
			year(meta("citation_publication_date")),
			meta("citation_year"),
		),
		DOI: firstOf(doc, meta("citation_doi")),
	}
}
