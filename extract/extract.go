package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rohancyriac029/reviewcord/errors"
	"github.com/rohancyriac029/reviewcord/log"
	"github.com/rohancyriac029/reviewcord/models"
)

const abstractLimit = 2000

// browserHeaders mimics a desktop browser. Some publishers reject plain
// library user agents outright.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Cache-Control":             "max-age=0",
}

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Extractor scrapes bibliographic metadata from a paper's web page using
// per-site selector chains.
type Extractor struct {
	client HTTPClient
	logger log.Logger
}

func New(client HTTPClient, logger log.Logger) *Extractor {
	return &Extractor{
		client: client,
		logger: logger,
	}
}

// Extract fetches url (after normalization) and recovers title, authors,
// year, abstract and doi for the paper it points to. It fails when the
// page cannot be fetched or when neither a title nor an abstract could be
// recovered.
func (x *Extractor) Extract(ctx context.Context, url string) (models.Metadata, error) {
	normalized := NormalizeURL(url)
	if normalized != url {
		x.logger.Printf("normalized url %s -> %s", url, normalized)
	}

	doc, err := x.fetch(ctx, normalized)
	if err != nil {
		return models.Metadata{}, err
	}

	var md models.Metadata
	for _, site := range sites {
		if !site.match(normalized, url) {
			continue
		}

		x.logger.Printf("extracting with %s rules", site.name)
		md = site.scrape(ctx, x, doc, normalized, url)
		break
	}

	md.Title = strings.TrimSpace(md.Title)
	md.Authors = strings.TrimSpace(md.Authors)
	md.Year = strings.TrimSpace(md.Year)
	md.DOI = strings.TrimSpace(md.DOI)
	md.Abstract = strings.TrimSpace(md.Abstract)
	if abstract := []rune(md.Abstract); len(abstract) > abstractLimit {
		md.Abstract = string(abstract[:abstractLimit])
	}
	md.Source = normalized

	if md.Empty() {
		return models.Metadata{}, errors.New(
			"could not extract paper information from url, please enter details manually",
			errors.BadRequest(),
		)
	}

	return md, nil
}

func (x *Extractor) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.New("invalid url", errors.BadRequest(), errors.WithCause(err))
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	res, err := x.client.Do(req)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("could not fetch %s", url), errors.WithCause(err))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, errors.New(fmt.Sprintf("failed to fetch url: %s", res.Status))
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, errors.New("could not parse page", errors.WithCause(err))
	}

	return doc, nil
}

// ------------------------------------------------------------------------------------------------
// Field lookups
// ------------------------------------------------------------------------------------------------

// A lookup is one attempt at recovering a field from the document. Per
// field, an ordered chain of lookups is tried and the first non-empty
// result wins.
type lookup func(doc *goquery.Document) string

func firstOf(doc *goquery.Document, chain ...lookup) string {
	for _, l := range chain {
		if v := strings.TrimSpace(l(doc)); v != "" {
			return v
		}
	}
	return ""
}

// meta reads the content attribute of a meta tag by name.
func meta(name string) lookup {
	return func(doc *goquery.Document) string {
		content, _ := doc.Find(fmt.Sprintf(`meta[name=%q]`, name)).First().Attr("content")
		return content
	}
}

// metaProp reads the content attribute of a meta tag by property.
func metaProp(prop string) lookup {
	return func(doc *goquery.Document) string {
		content, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, prop)).First().Attr("content")
		return content
	}
}

// metaAll joins the content attributes of every matching meta tag. Used
// for citation_author, which repeats per author.
func metaAll(name string) lookup {
	return func(doc *goquery.Document) string {
		var values []string
		doc.Find(fmt.Sprintf(`meta[name=%q]`, name)).Each(func(_ int, s *goquery.Selection) {
			if content, ok := s.Attr("content"); ok && strings.TrimSpace(content) != "" {
				values = append(values, strings.TrimSpace(content))
			}
		})
		return strings.Join(values, ", ")
	}
}

// text returns the text of the first node matching the selector.
func text(selector string, cleaners ...CleanFunc) lookup {
	return func(doc *goquery.Document) string {
		return CleanString(strings.TrimSpace(doc.Find(selector).First().Text()), cleaners...)
	}
}

// textEach joins the text of every node matching the selector.
func textEach(selector string) lookup {
	return func(doc *goquery.Document) string {
		var values []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if v := strings.TrimSpace(s.Text()); v != "" {
				values = append(values, v)
			}
		})
		return strings.Join(values, ", ")
	}
}

// year post-processes a lookup down to its first 4-digit run.
func year(l lookup) lookup {
	return func(doc *goquery.Document) string {
		return FirstYear(l(doc))
	}
}

// clean post-processes a lookup with the given cleaners.
func clean(l lookup, cleaners ...CleanFunc) lookup {
	return func(doc *goquery.Document) string {
		return CleanString(l(doc), cleaners...)
	}
}
