package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/mark3labs/mcp-go/mcp"
)

const testDocumentPage = `<!DOCTYPE html>
<html>
<head><title>Les infos du département</title></head>
<body>
<div id="content">
<p>62 du 07/05</p>
<p>À savoir également dans votre département</p>
<p>Le conseil municipal a voté le budget. Par ailleurs, la médiathèque rouvre lundi.</p>
<p>Transitions</p>
<p>Par ailleurs,</p>
<p>62 du 08/05</p>
</div>
</body>
</html>`

func TestNewServer(t *testing.T) {
	// Test that we can create a server
	server := NewServer(http.DefaultClient, nil)
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
}

func TestExtractHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testDocumentPage))
	}))
	defer srv.Close()

	args := ExtractRequest{
		URL:      srv.URL,
		Selector: "#content",
	}

	request := mcp.CallToolRequest{
		Request: mcp.Request{
			Method: "tools/call",
		},
		Params: mcp.CallToolParams{
			Name:      "extract",
			Arguments: args,
		},
	}

	ctx := context.Background()
	extractHandler := getExtractHandler(srv.Client())
	result, err := extractHandler(ctx, request, args)
	if err != nil {
		t.Fatalf("extractHandler returned error: %v", err)
	}
	if result == nil {
		t.Fatal("extractHandler returned nil result")
	}
	if result.IsError {
		t.Fatalf("extractHandler returned error result: %v", result.Content)
	}
	if len(result.Content) == 0 {
		t.Fatal("extractHandler returned no content")
	}

	textContent, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}

	var response ExtractResponse
	if err := json.Unmarshal([]byte(textContent.Text), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	t.Log(spew.Sdump(response.Result))

	if response.Result == nil {
		t.Fatal("expected a result")
	}
	if len(response.Result.Examples) != 1 {
		t.Fatalf("expected 1 example, got %d", len(response.Result.Examples))
	}
	if response.Result.Examples[0].Transition != "Par ailleurs," {
		t.Fatalf("unexpected transition: %q", response.Result.Examples[0].Transition)
	}
	if len(response.Records) != 1 {
		t.Fatalf("expected 1 training record, got %d", len(response.Records))
	}
	if !strings.Contains(response.Records[0].Messages[1].Content, "Paragraph A:") {
		t.Fatalf("unexpected user message: %q", response.Records[0].Messages[1].Content)
	}
}

func TestExtractHandlerNoMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="content"><p>Rien ici.</p></div></body></html>`))
	}))
	defer srv.Close()

	args := ExtractRequest{URL: srv.URL, Selector: "#content"}
	request := mcp.CallToolRequest{
		Request: mcp.Request{Method: "tools/call"},
		Params:  mcp.CallToolParams{Name: "extract", Arguments: args},
	}

	result, err := getExtractHandler(srv.Client())(context.Background(), request, args)
	if err != nil {
		t.Fatalf("extractHandler returned error: %v", err)
	}
	// A document without marker blocks is not an error, just an empty result.
	if result.IsError {
		t.Fatalf("expected success result, got error: %v", result.Content)
	}

	textContent, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	var response ExtractResponse
	if err := json.Unmarshal([]byte(textContent.Text), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(response.Result.Examples) != 0 {
		t.Fatalf("expected no examples, got %d", len(response.Result.Examples))
	}
}

func TestExtractHandlerValidation(t *testing.T) {
	extractHandler := getExtractHandler(http.DefaultClient)

	for _, args := range []ExtractRequest{
		{URL: "", Selector: "#content"},
		{URL: "https://example.com", Selector: ""},
	} {
		request := mcp.CallToolRequest{
			Request: mcp.Request{Method: "tools/call"},
			Params:  mcp.CallToolParams{Name: "extract", Arguments: args},
		}

		result, err := extractHandler(context.Background(), request, args)
		if err != nil {
			t.Fatalf("extractHandler returned error: %v", err)
		}
		if result == nil {
			t.Fatal("extractHandler returned nil result")
		}
		if !result.IsError {
			t.Fatalf("expected error result for args %+v", args)
		}
	}
}

func TestExtractDocumentHandlerValidation(t *testing.T) {
	handler := getExtractDocumentHandler(nil)

	args := ExtractDocumentRequest{Path: ""}
	request := mcp.CallToolRequest{
		Request: mcp.Request{Method: "tools/call"},
		Params:  mcp.CallToolParams{Name: "extractDocument", Arguments: args},
	}

	result, err := handler(context.Background(), request, args)
	if err != nil {
		t.Fatalf("extractDocumentHandler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for missing path")
	}
}

func TestExtractRequestMarshal(t *testing.T) {
	req := ExtractRequest{
		URL:      "https://example.com/62-du-07-05",
		Selector: "#content",
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to marshal ExtractRequest: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshaled data is empty")
	}
}
