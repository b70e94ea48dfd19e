package service

import (
	"context"
	"net/http"
	"strings"

	contentserverclient "github.com/foomo/contentserver/client"
	"github.com/foomo/contentserver/content"
	"github.com/foomo/contentserver/requests"

	"github.com/foomo/transitions-mcp/extract"
	"github.com/foomo/transitions-mcp/scrape"
	"github.com/foomo/transitions-mcp/service/vo"
)

type Service interface {
	ExtractDocument(w http.ResponseWriter, r *http.Request, path string) (*vo.Document, error)
}

type service struct {
	contentServerClient *contentserverclient.Client
	httpClient          *http.Client
	siteSettings        SiteSettings
}

type SiteSettings struct {
	Env              *requests.Env
	ContentSelector  string
	BaseURL          string
	ContentServerURL string
}

func NewService(
	siteSettings SiteSettings,
	httpClient *http.Client,
) Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	contentServerClient := contentserverclient.New(
		contentserverclient.NewHTTPTransport(
			siteSettings.ContentServerURL,
			contentserverclient.HTTPTransportWithHTTPClient(httpClient),
		))

	return &service{
		siteSettings:        siteSettings,
		httpClient:          httpClient,
		contentServerClient: contentServerClient,
	}
}

// isValidURI checks if a URI is valid for processing
func isValidURI(uri string) bool {
	return uri != "" && strings.HasPrefix(uri, "/")
}

// ExtractDocument resolves path through the content server, scrapes the
// resolved page and runs the transition-extraction pipeline over its
// paragraphs. A page without any marker block yields a document with an
// empty result, not an error.
func (s *service) ExtractDocument(w http.ResponseWriter, r *http.Request, path string) (*vo.Document, error) {
	var ctx context.Context
	if r != nil {
		ctx = r.Context()
	} else {
		ctx = context.Background()
	}
	siteContent, err := s.contentServerClient.GetContent(ctx, &requests.Content{
		URI:   path,
		Env:   s.siteSettings.Env,
		Nodes: map[string]*requests.Node{},
	})
	if err != nil {
		return nil, err
	}

	breadcrump := make([]vo.DocumentSummary, len(siteContent.Path))
	for i, item := range siteContent.Path {
		if !isValidURI(item.URI) {
			continue
		}
		summary, _, _, err := scrape.Scrape(ctx, s.httpClient, s.siteSettings.BaseURL+item.URI, s.siteSettings.ContentSelector)
		if err != nil {
			return nil, err
		}
		breadcrump[len(siteContent.Path)-i-1] = *summary
	}

	summary, markdown, paragraphs, err := scrape.Scrape(ctx, s.httpClient, s.siteSettings.BaseURL+path, s.siteSettings.ContentSelector)
	if err != nil {
		return nil, err
	}
	s.loadItemData(summary, siteContent.Item)

	articles, result := extract.Run(paragraphs)

	return &vo.Document{
		DocumentSummary: *summary,
		Markdown:        markdown,
		Breadcrump:      breadcrump,
		Paragraphs:      paragraphs,
		Articles:        articles,
		Result:          &result,
		Records:         extract.TrainingRecords(result.Examples),
	}, nil
}

func (s *service) loadItemData(d *vo.DocumentSummary, item *content.Item) {
	if item == nil {
		return
	}
	d.MimeType = vo.MimeType(item.MimeType)
	d.ID = item.ID
	d.URL = s.siteSettings.BaseURL + item.URI
}
