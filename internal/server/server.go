// Package server provides the HTTP REST API for the website redesigner.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/goscha01/SiteForge/internal/browser"
	"github.com/goscha01/SiteForge/internal/llm"
)

const shutdownTimeout = 10 * time.Second

// Config holds server configuration.
type Config struct {
	Port            int
	APIKey          string
	DatabaseURL     string
	ChromePath      string
	QAMaxIterations int
	Verbose         bool
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	cfg        Config
	client     llm.Client
	browser    *browser.Browser
	validate   *validator.Validate
}

// New creates a new server instance. The browser starts lazily on first use;
// the LLM client is created eagerly so a bad API key fails fast.
func New(ctx context.Context, cfg Config) (*Server, error) {
	client, err := llm.NewGeminiClient(ctx, nil, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		client:   client,
		browser:  browser.New(browser.Options{ChromePath: cfg.ChromePath, Verbose: cfg.Verbose}),
		validate: validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /redesign", s.handleRedesign)
	mux.HandleFunc("POST /redesign/stream", s.handleRedesignStream)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: withLogging(withCORS(mux)),
	}

	return s, nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] Listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		log.Printf("[SERVER] Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.browser.Close()
	if err := s.client.Close(); err != nil {
		log.Printf("[SERVER] Failed to close model client: %v", err)
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
