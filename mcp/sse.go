package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/foomo/transitions-mcp/extract"
	"github.com/foomo/transitions-mcp/scrape"
	"github.com/foomo/transitions-mcp/service"
)

// SSEEvent represents an SSE event structure
type SSEEvent struct {
	ID        string      `json:"id"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// SSEClient represents a connected SSE client
type SSEClient struct {
	ID       string
	Writer   http.ResponseWriter
	Flusher  http.Flusher
	Done     chan struct{}
	LastSeen time.Time
}

// MCPSSEServer wraps the MCP server with SSE capabilities
type MCPSSEServer struct {
	logger       *zap.Logger
	mcpServer    *server.MCPServer
	service      service.Service
	httpClient   *http.Client
	clients      map[string]*SSEClient
	clientsMutex sync.RWMutex
	broadcast    chan SSEEvent
}

// SSEServerConfig holds configuration for the SSE server
type SSEServerConfig struct {
	KeepaliveInterval time.Duration
	BufferSize        int
	ClientTimeout     time.Duration
}

// DefaultSSEServerConfig returns the default configuration for SSE server
func DefaultSSEServerConfig() *SSEServerConfig {
	return &SSEServerConfig{
		KeepaliveInterval: 30 * time.Second,
		BufferSize:        100,
		ClientTimeout:     60 * time.Second,
	}
}

// NewMCPSSEServer creates a new MCP SSE server
func NewMCPSSEServer(logger *zap.Logger, mcpServer *server.MCPServer, serviceInstance service.Service, httpClient *http.Client, config *SSEServerConfig) *MCPSSEServer {
	if config == nil {
		config = DefaultSSEServerConfig()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	sseServer := &MCPSSEServer{
		logger:     logger,
		mcpServer:  mcpServer,
		service:    serviceInstance,
		httpClient: httpClient,
		clients:    make(map[string]*SSEClient),
		broadcast:  make(chan SSEEvent, config.BufferSize),
	}

	go sseServer.broadcastLoop()

	return sseServer
}

func newEvent(event string, data interface{}) SSEEvent {
	return SSEEvent{
		ID:        uuid.NewString(),
		Event:     event,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// broadcastLoop handles broadcasting events to all connected clients
func (s *MCPSSEServer) broadcastLoop() {
	for event := range s.broadcast {
		s.clientsMutex.RLock()
		for clientID, client := range s.clients {
			select {
			case <-client.Done:
				s.clientsMutex.RUnlock()
				s.removeClient(clientID)
				s.clientsMutex.RLock()
				continue
			default:
				if err := s.sendEventToClient(client, event); err != nil {
					s.logger.Error("failed to send event to client", zap.String("clientID", clientID), zap.Error(err))
					s.clientsMutex.RUnlock()
					s.removeClient(clientID)
					s.clientsMutex.RLock()
				}
			}
		}
		s.clientsMutex.RUnlock()
	}
}

// sendEventToClient sends an SSE event to a specific client
func (s *MCPSSEServer) sendEventToClient(client *SSEClient, event SSEEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	fmt.Fprintf(client.Writer, "id: %s\n", event.ID)
	fmt.Fprintf(client.Writer, "event: %s\n", event.Event)
	fmt.Fprintf(client.Writer, "data: %s\n\n", string(eventJSON))

	client.Flusher.Flush()
	client.LastSeen = time.Now()

	return nil
}

// addClient adds a new SSE client
func (s *MCPSSEServer) addClient(w http.ResponseWriter, r *http.Request) *SSEClient {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return nil
	}

	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	client := &SSEClient{
		ID:       uuid.NewString(),
		Writer:   w,
		Flusher:  flusher,
		Done:     make(chan struct{}),
		LastSeen: time.Now(),
	}

	s.clients[client.ID] = client

	connectEvent := newEvent("connected", map[string]string{
		"clientID": client.ID,
		"message":  "Connected to MCP SSE server",
	})
	if err := s.sendEventToClient(client, connectEvent); err != nil {
		s.logger.Error("failed to send connection event", zap.String("clientID", client.ID), zap.Error(err))
		delete(s.clients, client.ID)
		return nil
	}

	s.logger.Info("SSE client connected", zap.String("clientID", client.ID))
	return client
}

// removeClient removes a client from the server
func (s *MCPSSEServer) removeClient(clientID string) {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	if client, exists := s.clients[clientID]; exists {
		close(client.Done)
		delete(s.clients, clientID)
		s.logger.Info("SSE client disconnected", zap.String("clientID", clientID))
	}
}

// broadcastEvent sends an event to all connected clients
func (s *MCPSSEServer) broadcastEvent(event SSEEvent) {
	select {
	case s.broadcast <- event:
	default:
		s.logger.Warn("broadcast channel full, dropping event", zap.String("eventID", event.ID))
	}
}

// HandleSSE handles SSE client connections
func (s *MCPSSEServer) HandleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Cache-Control")

	client := s.addClient(w, r)
	if client == nil {
		return
	}

	// Keep connection alive and handle client disconnect
	ctx := r.Context()
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.removeClient(client.ID)
				return
			case <-client.Done:
				return
			case <-ticker.C:
				keepaliveEvent := newEvent("keepalive", map[string]interface{}{"timestamp": time.Now()})
				if err := s.sendEventToClient(client, keepaliveEvent); err != nil {
					s.removeClient(client.ID)
					return
				}
			}
		}
	}()

	<-client.Done
}

func writeSSEEvent(w http.ResponseWriter, flusher http.Flusher, event SSEEvent) {
	eventJSON, _ := json.Marshal(event)
	fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Event, string(eventJSON))
	flusher.Flush()
}

// HandleExtractSSE handles extract requests via SSE, streaming per-article
// progress while the pipeline runs.
func (s *MCPSSEServer) HandleExtractSSE(w http.ResponseWriter, r *http.Request) {
	var request struct {
		URL      string `json:"url"`
		Selector string `json:"selector"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if request.URL == "" || request.Selector == "" {
		http.Error(w, "url and selector are required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	writeSSEEvent(w, flusher, newEvent("extract_start", map[string]string{
		"url":      request.URL,
		"selector": request.Selector,
	}))

	ctx := r.Context()

	summary, _, paragraphs, err := scrape.Scrape(ctx, s.httpClient, request.URL, request.Selector)
	if err != nil {
		writeSSEEvent(w, flusher, newEvent("extract_error", map[string]string{"error": err.Error()}))
		return
	}

	articles := extract.Segment(paragraphs)
	writeSSEEvent(w, flusher, newEvent("extract_segmented", map[string]interface{}{
		"paragraphs": len(paragraphs),
		"articles":   len(articles),
	}))

	for i, article := range articles {
		writeSSEEvent(w, flusher, newEvent("extract_article", map[string]interface{}{
			"index":       i,
			"transitions": len(article.Transitions),
		}))
	}

	result := extract.Aggregate(articles)
	writeSSEEvent(w, flusher, newEvent("extract_result", map[string]interface{}{
		"summary": summary,
		"result":  result,
		"records": extract.TrainingRecords(result.Examples),
	}))

	writeSSEEvent(w, flusher, newEvent("extract_complete", map[string]string{"status": "completed"}))
}

// HandleExtractDocumentSSE handles extractDocument requests via SSE
func (s *MCPSSEServer) HandleExtractDocumentSSE(w http.ResponseWriter, r *http.Request) {
	if s.service == nil {
		http.Error(w, "Document service not available", http.StatusServiceUnavailable)
		return
	}

	var request struct {
		Path string `json:"path"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if request.Path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	writeSSEEvent(w, flusher, newEvent("document_start", map[string]string{"path": request.Path}))

	req, err := http.NewRequestWithContext(r.Context(), "GET", "/", nil)
	if err != nil {
		writeSSEEvent(w, flusher, newEvent("document_error", map[string]string{
			"error": fmt.Sprintf("failed to create request: %v", err),
		}))
		return
	}

	document, err := s.service.ExtractDocument(nil, req, request.Path)
	if err != nil {
		writeSSEEvent(w, flusher, newEvent("document_error", map[string]string{"error": err.Error()}))
		return
	}

	writeSSEEvent(w, flusher, newEvent("document_result", map[string]interface{}{"document": document}))
	writeSSEEvent(w, flusher, newEvent("document_complete", map[string]string{"status": "completed"}))
}

// GetConnectedClients returns information about connected clients
func (s *MCPSSEServer) GetConnectedClients() []map[string]interface{} {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	clients := make([]map[string]interface{}, 0, len(s.clients))
	for _, client := range s.clients {
		clients = append(clients, map[string]interface{}{
			"id":        client.ID,
			"lastSeen":  client.LastSeen,
			"connected": time.Since(client.LastSeen) < 60*time.Second,
		})
	}
	return clients
}

// GetStats returns server statistics
func (s *MCPSSEServer) GetStats() map[string]interface{} {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	return map[string]interface{}{
		"connectedClients": len(s.clients),
		"bufferSize":       len(s.broadcast),
		"serverVersion":    Version,
	}
}
