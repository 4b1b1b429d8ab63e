package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohancyriac029/reviewcord/log"
)

func newExtractor() *Extractor {
	return New(&http.Client{}, log.Nop())
}

func TestExtract_Generic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
<meta name="citation_title" content="A Generic Paper" />
<meta name="citation_author" content="Dana" />
<meta name="description" content="  about things  " />
</head><body></body></html>`)
	}))
	defer srv.Close()

	md, err := newExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "A Generic Paper", md.Title)
	assert.Equal(t, "Dana", md.Authors)
	assert.Equal(t, "about things", md.Abstract, "fields are trimmed")
	assert.Equal(t, srv.URL, md.Source)
}

func TestExtract_AbstractTruncated(t *testing.T) {
	long := strings.Repeat("a", 3000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head>
<meta name="citation_title" content="Long" />
<meta name="description" content="%s" />
</head><body></body></html>`, long)
	}))
	defer srv.Close()

	md, err := newExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, md.Abstract, 2000)
}

func TestExtract_AbstractTruncatedOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 3000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head>
<meta name="citation_title" content="Long" />
<meta name="description" content="%s" />
</head><body></body></html>`, long)
	}))
	defer srv.Close()

	md, err := newExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 2000, utf8.RuneCountInString(md.Abstract))
	assert.True(t, utf8.ValidString(md.Abstract), "the cut must not split a rune")
}

func TestExtract_NothingRecovered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head></head><body><p>nothing here</p></body></html>`)
	}))
	defer srv.Close()

	_, err := newExtractor().Extract(context.Background(), srv.URL)
	require.Error(t, err)
	assertCode(t, err, 400)
}

func TestExtract_FetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newExtractor().Extract(context.Background(), srv.URL)
	require.Error(t, err)
	assertCode(t, err, 500)
}

func TestExtract_BrowserHeaders(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		fmt.Fprint(w, `<html><head><title>ok</title></head></html>`)
	}))
	defer srv.Close()

	_, err := newExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, ua, "Mozilla/5.0")
}

func TestScrapeCEUR_VolumeListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Vol-3219/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><head><title>Proceedings of the Workshop 2022</title></head><body>
<ul>
<li><a href="paper1.pdf">Another Entry</a><br>Someone Else</li>
<li><a href="paper2.pdf">Knowledge Graphs in Practice</a><br>
Eve Torres
Frank Mills</li>
</ul></body></html>`)
	}))
	defer srv.Close()

	old := ceurBaseURL
	ceurBaseURL = srv.URL
	defer func() { ceurBaseURL = old }()

	doc := parseDoc(t, `<html><head></head><body></body></html>`)
	url := "https://ceur-ws.org/Vol-3219/paper2.pdf"

	md := scrapeCEUR(context.Background(), newExtractor(), doc, url, url)
	assert.Equal(t, "Knowledge Graphs in Practice", md.Title)
	assert.Contains(t, md.Authors, "Eve Torres")
	assert.Contains(t, md.Authors, "Frank Mills")
	assert.Equal(t, "2022", md.Year)
}

func TestScrapeCEUR_VolumeFetchDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	old := ceurBaseURL
	ceurBaseURL = srv.URL
	defer func() { ceurBaseURL = old }()

	// The wrapper page still has citation tags, so the fallback kicks in.
	doc := parseDoc(t, `<html><head>
<meta name="citation_title" content="Fallback From Wrapper" />
</head><body></body></html>`)
	url := "https://ceur-ws.org/Vol-3219/paper2.pdf"

	md := scrapeCEUR(context.Background(), newExtractor(), doc, url, url)
	assert.Equal(t, "Fallback From Wrapper", md.Title)
}

func assertCode(t *testing.T, err error, code int) {
	t.Helper()

	type coder interface{ Code() int }
	cerr, ok := err.(coder)
	if !ok {
		t.Fatalf("error %v does not carry a code", err)
	}
	assert.Equal(t, code, cerr.Code())
}
