package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/avast/retry-go/v4"
	"golang.org/x/net/html"

	"github.com/foomo/transitions-mcp/service/vo"
)

const fetchAttempts = 3

// Scrape downloads a page, selects the content node and returns the page
// summary, a markdown rendering of the selected node and the ordered sequence
// of trimmed paragraph texts found in it. The paragraph sequence is what the
// extraction pipeline consumes.
func Scrape(ctx context.Context, client *http.Client, url, selector string) (*vo.DocumentSummary, vo.Markdown, []string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	body, err := fetch(ctx, client, url)
	if err != nil {
		return nil, "", nil, err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	selectedNode, err := extractNodeBySelector(doc, selector)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to extract node with selector '%s': %w", selector, err)
	}

	markdownBytes, err := htmltomarkdown.ConvertNode(selectedNode)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	summary := &vo.DocumentSummary{
		URL: url,
		ContentSummary: vo.ContentSummary{
			Title:       extractTitle(doc),
			Description: extractMetaDescription(doc),
			Keywords:    extractMetaKeywords(doc),
		},
	}

	return summary, vo.Markdown(string(markdownBytes)), Paragraphs(selectedNode), nil
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
			if err != nil {
				return err
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("HTTP request failed with status: %d", resp.StatusCode)
			}
			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(fetchAttempts),
		retry.Delay(500*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to download HTML: %w", err)
	}
	return body, nil
}
