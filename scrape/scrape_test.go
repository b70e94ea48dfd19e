package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const testPage = `<!DOCTYPE html>
<html>
<head>
<title> Les infos du département </title>
<meta name="description" content="L'actualité des communes du Pas-de-Calais.">
<meta name="keywords" content="actualité, Pas-de-Calais , communes,">
</head>
<body>
<nav><p>Menu</p></nav>
<div id="content">
<p>62 du 07/05</p>
<p>À savoir également dans votre département</p>
<p>Le  conseil municipal a   voté le budget.</p>
<p><em>Par ailleurs,</em> la médiathèque rouvre lundi.</p>
<p>Transitions</p>
<ul><li>Par ailleurs,</li></ul>
<p></p>
</div>
</body>
</html>`

func TestScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testPage))
	}))
	defer srv.Close()

	summary, md, paragraphs, err := Scrape(context.Background(), srv.Client(), srv.URL, "#content")
	require.NoError(t, err)

	require.Equal(t, "Les infos du département", summary.Title)
	require.Equal(t, "L'actualité des communes du Pas-de-Calais.", summary.Description)
	require.Equal(t, []string{"actualité", "Pas-de-Calais", "communes"}, summary.Keywords)
	require.NotEmpty(t, md)

	require.Equal(t, []string{
		"62 du 07/05",
		"À savoir également dans votre département",
		"Le conseil municipal a voté le budget.",
		"Par ailleurs, la médiathèque rouvre lundi.",
		"Transitions",
		"Par ailleurs,",
	}, paragraphs)
}

func TestScrapeSelectorNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testPage))
	}))
	defer srv.Close()

	_, _, _, err := Scrape(context.Background(), srv.Client(), srv.URL, "#missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing")
}

func TestScrapeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, _, err := Scrape(context.Background(), srv.Client(), srv.URL, "body")
	require.Error(t, err)
}

func TestScrapeRetriesTransientFailures(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(testPage))
	}))
	defer srv.Close()

	_, _, _, err := Scrape(context.Background(), srv.Client(), srv.URL, "body")
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestExtractNodeBySelector(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<div class="wrap outer"><article id="main"><p>hello</p></article></div>`))
	require.NoError(t, err)

	byID, err := extractNodeBySelector(doc, "#main")
	require.NoError(t, err)
	require.Equal(t, "article", byID.Data)

	byClass, err := extractNodeBySelector(doc, ".wrap")
	require.NoError(t, err)
	require.Equal(t, "div", byClass.Data)

	byTag, err := extractNodeBySelector(doc, "p")
	require.NoError(t, err)
	require.Equal(t, "p", byTag.Data)

	_, err = extractNodeBySelector(doc, "#nope")
	require.Error(t, err)
}

func TestParagraphsNestedBlocks(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<div><p>first</p><table><tr><td><p>nested</p></td><td>plain</td></tr></table></div>`))
	require.NoError(t, err)
	require.Equal(t, []string{"first", "nested", "plain"}, Paragraphs(doc))
}
