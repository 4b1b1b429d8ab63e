package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// arxivIDPattern matches an arXiv identifier, with an optional version
// suffix, anywhere in a URL: 2506.07285, 1706.03762v5, ...
var arxivIDPattern = regexp.MustCompile(`(\d{4}\.\d{4,5}(?:v\d+)?)`)

// NormalizeURL rewrites arXiv links to the abstract page for the embedded
// identifier, so that PDF, HTML and versioned links all scrape the same
// way. Every other URL is returned untouched.
func NormalizeURL(url string) string {
	if !strings.Contains(url, "arxiv.org") {
		return url
	}

	id := arxivIDPattern.FindString(url)
	if id == "" {
		return url
	}

	return fmt.Sprintf("https://arxiv.org/abs/%s", id)
}

var arxivBareIDPattern = regexp.MustCompile(`(\d{4}\.\d{4,5})`)

// arxivID returns the identifier embedded in an arXiv URL without its
// version suffix, or "".
func arxivID(url string) string {
	return arxivBareIDPattern.FindString(url)
}

// isPDF reports whether the URL points at a file download rather than an
// article page.
func isPDF(url string) bool {
	return strings.HasSuffix(strings.ToLower(url), ".pdf")
}
