package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goscha01/SiteForge/internal/config"
	"github.com/goscha01/SiteForge/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes redesign endpoints, including NDJSON progress streaming.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT env or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	srv, err := server.New(context.Background(), server.Config{
		Port:            cfg.Port,
		APIKey:          cfg.GeminiAPIKey,
		DatabaseURL:     cfg.DatabaseURL,
		ChromePath:      cfg.ChromePath,
		QAMaxIterations: cfg.QAMaxIterations,
		Verbose:         cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
