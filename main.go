package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/foomo/contentserver/requests"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/foomo/transitions-mcp/mcp"
	"github.com/foomo/transitions-mcp/service"
)

func main() {
	// Define command line flags
	stdioMode := flag.Bool("stdio", true, "Run in stdio mode")
	httpAddr := flag.String("http", "", "HTTP server address (e.g., ':8080')")
	contentServerURL := flag.String("contentserver-url", "", "foomo content server URL; enables the extractDocument tool")
	baseURL := flag.String("base-url", "", "Base URL of the site serving the documents")
	selector := flag.String("selector", "#content", "CSS selector of the document content node")
	flag.Parse()

	// The contentserver backed service is optional; without it only the
	// direct extract tool is registered.
	var serviceInstance service.Service
	if *contentServerURL != "" {
		serviceInstance = service.NewService(service.SiteSettings{
			Env:              &requests.Env{},
			ContentSelector:  *selector,
			BaseURL:          *baseURL,
			ContentServerURL: *contentServerURL,
		}, http.DefaultClient)
	}

	s := mcp.NewServer(http.DefaultClient, serviceInstance)

	if *httpAddr != "" {
		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatal(err)
		}
		defer func() { _ = logger.Sync() }()

		log.Printf("Starting MCP server on HTTP address: %s", *httpAddr)
		httpServer := mcp.NewMcpHTTPSSEServer(logger, s, serviceInstance, http.DefaultClient, "/mcp", nil)
		if err := http.ListenAndServe(*httpAddr, httpServer); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}

	// Start the stdio server
	if *stdioMode {
		log.Println("Starting MCP server in stdio mode...")
	} else {
		log.Println("Starting MCP server in stdio mode (default)...")
	}
	if err := server.ServeStdio(s); err != nil {
		log.Fatal(err)
	}
}
