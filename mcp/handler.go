package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/foomo/transitions-mcp/extract"
	"github.com/foomo/transitions-mcp/scrape"
	"github.com/foomo/transitions-mcp/service"
	"github.com/foomo/transitions-mcp/service/vo"
)

const Version = "0.0.1"

type ExtractRequest struct {
	URL      string `json:"url"`      // The URL of the document page
	Selector string `json:"selector"` // CSS selector for the content node
}

type ExtractResponse struct {
	Summary *vo.DocumentSummary  `json:"summary"` // Page summary of the scraped document
	Result  *vo.ExtractionResult `json:"result"`  // Examples and transition frequency tables
	Records []vo.TrainingRecord  `json:"records"` // Chat-style fine-tuning rows, one per example
}

type ExtractDocumentRequest struct {
	Path string `json:"path"` // The content server path of the document
}

type ExtractDocumentResponse struct {
	Document *vo.Document `json:"document"` // The document with paragraphs, articles and extraction result
}

// NewServer creates a new MCP server with the extract and extractDocument tools
func NewServer(client *http.Client, serviceInstance service.Service) *server.MCPServer {
	if client == nil {
		client = http.DefaultClient
	}
	s := server.NewMCPServer(
		"Transition Extractor MCP",
		Version,
		server.WithToolCapabilities(false),
	)

	extractTool := mcp.NewTool("extract",
		mcp.WithDescription("Extract transition fine-tuning examples from a news document page"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the document page to process"),
		),
		mcp.WithString("selector",
			mcp.Required(),
			mcp.Description("CSS selector of the content node (e.g., '#content', '.article', 'article')"),
		),
	)
	s.AddTool(extractTool, mcp.NewTypedToolHandler(getExtractHandler(client)))

	// Add extractDocument tool only if a content server backed service is provided
	if serviceInstance != nil {
		extractDocumentTool := mcp.NewTool("extractDocument",
			mcp.WithDescription("Resolve a content server path and extract transition fine-tuning examples from it"),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("The content server path of the document"),
			),
		)
		s.AddTool(extractDocumentTool, mcp.NewTypedToolHandler(getExtractDocumentHandler(serviceInstance)))
	}

	return s
}

// getExtractHandler returns the typed handler for the extract tool
func getExtractHandler(client *http.Client) func(ctx context.Context, request mcp.CallToolRequest, args ExtractRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ExtractRequest) (*mcp.CallToolResult, error) {
		if args.URL == "" {
			return mcp.NewToolResultError("url is required"), nil
		}
		if args.Selector == "" {
			return mcp.NewToolResultError("selector is required"), nil
		}

		summary, _, paragraphs, err := scrape.Scrape(ctx, client, args.URL, args.Selector)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to scrape document: %v", err)), nil
		}

		_, result := extract.Run(paragraphs)

		response := ExtractResponse{
			Summary: summary,
			Result:  &result,
			Records: extract.TrainingRecords(result.Examples),
		}

		responseBytes, err := json.Marshal(response)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(responseBytes)), nil
	}
}

// getExtractDocumentHandler returns the typed handler for the extractDocument tool
func getExtractDocumentHandler(serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args ExtractDocumentRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ExtractDocumentRequest) (*mcp.CallToolResult, error) {
		if args.Path == "" {
			return mcp.NewToolResultError("path is required"), nil
		}

		req, err := http.NewRequestWithContext(ctx, "GET", "/", nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}

		document, err := serviceInstance.ExtractDocument(nil, req, args.Path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to extract document: %v", err)), nil
		}

		response := ExtractDocumentResponse{
			Document: document,
		}

		responseBytes, err := json.Marshal(response)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(responseBytes)), nil
	}
}
