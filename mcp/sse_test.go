package mcp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestHandleExtractSSE(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testDocumentPage))
	}))
	defer srv.Close()

	sseServer := NewMCPSSEServer(zap.NewNop(), NewServer(srv.Client(), nil), nil, srv.Client(), nil)

	body := strings.NewReader(`{"url":"` + srv.URL + `","selector":"#content"}`)
	req := httptest.NewRequest("POST", "/mcp/sse/extract", body)
	rec := httptest.NewRecorder()

	sseServer.HandleExtractSSE(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type: %q", ct)
	}

	output := rec.Body.String()
	events := []string{"extract_start", "extract_segmented", "extract_article", "extract_result", "extract_complete"}
	last := -1
	for _, event := range events {
		idx := strings.Index(output, "event: "+event)
		if idx < 0 {
			t.Fatalf("missing event %q in stream:\n%s", event, output)
		}
		if idx < last {
			t.Fatalf("event %q out of order", event)
		}
		last = idx
	}
}

func TestHandleExtractSSEValidation(t *testing.T) {
	sseServer := NewMCPSSEServer(zap.NewNop(), NewServer(http.DefaultClient, nil), nil, http.DefaultClient, nil)

	req := httptest.NewRequest("POST", "/mcp/sse/extract", strings.NewReader(`{"url":"","selector":""}`))
	rec := httptest.NewRecorder()

	sseServer.HandleExtractSSE(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleExtractDocumentSSEWithoutService(t *testing.T) {
	sseServer := NewMCPSSEServer(zap.NewNop(), NewServer(http.DefaultClient, nil), nil, http.DefaultClient, nil)

	req := httptest.NewRequest("POST", "/mcp/sse/document", strings.NewReader(`{"path":"/x"}`))
	rec := httptest.NewRecorder()

	sseServer.HandleExtractDocumentSSE(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
