package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goscha01/SiteForge/internal/browser"
	"github.com/goscha01/SiteForge/internal/catalog"
	"github.com/goscha01/SiteForge/internal/config"
	"github.com/goscha01/SiteForge/internal/llm"
	"github.com/goscha01/SiteForge/internal/observability"
	"github.com/goscha01/SiteForge/internal/pipeline"
)

var (
	redesignURL       string
	redesignStyle     string
	redesignBlueprint string
	redesignSignature string
	redesignOut       string
	redesignQA        bool
	redesignCompare   bool
	redesignVerbose   bool
	redesignPrimary   string
	redesignAccent    string
	redesignDensity   string
)

var redesignCmd = &cobra.Command{
	Use:   "redesign",
	Short: "Redesign a website into a single-page site",
	Long:  `Fetch a website, generate a redesigned single-page version, score it, optionally run the visual QA loop, and write the result to an HTML file.`,
	RunE:  runRedesign,
}

func init() {
	redesignCmd.Flags().StringVar(&redesignURL, "url", "", "Source website URL (required)")
	redesignCmd.Flags().StringVar(&redesignStyle, "style", "", "Style preset: "+strings.Join(catalog.PresetIDs(), ", "))
	redesignCmd.Flags().StringVar(&redesignBlueprint, "blueprint", "", "Structural blueprint: "+strings.Join(catalog.BlueprintNames(), ", "))
	redesignCmd.Flags().StringVar(&redesignSignature, "signature", "", "Signature style overlay")
	redesignCmd.Flags().StringVar(&redesignOut, "out", "redesign.html", "Output HTML path")
	redesignCmd.Flags().BoolVar(&redesignQA, "qa", false, "Run the visual QA loop even when the score is acceptable")
	redesignCmd.Flags().BoolVar(&redesignCompare, "compare-styles", false, "Generate one candidate per style preset and keep the best-scoring one")
	redesignCmd.Flags().BoolVar(&redesignVerbose, "verbose", false, "Print score breakdown, manifest, and patch diff")
	redesignCmd.Flags().StringVar(&redesignPrimary, "primary", "", "Primary color override (#rrggbb)")
	redesignCmd.Flags().StringVar(&redesignAccent, "accent", "", "Accent color override (#rrggbb)")
	redesignCmd.Flags().StringVar(&redesignDensity, "density", "", "Spacing density: tight, normal, loose")

	_ = redesignCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(redesignCmd)
}

func runRedesign(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := llm.NewGeminiClient(ctx, nil, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer client.Close()

	shared := browser.New(browser.Options{ChromePath: cfg.ChromePath, Verbose: redesignVerbose})
	defer shared.Close()

	result, err := pipeline.Run(ctx, pipeline.Options{
		URL:           redesignURL,
		StylePreset:   redesignStyle,
		Blueprint:     redesignBlueprint,
		Signature:     catalog.Signature(redesignSignature),
		Tweaks: catalog.TokenTweaks{
			Primary: redesignPrimary,
			Accent:  redesignAccent,
			Density: catalog.Density(redesignDensity),
		},
		RunQA:           redesignQA,
		CompareStyles:   redesignCompare,
		QAMaxIterations: cfg.QAMaxIterations,
		Verbose:         redesignVerbose,
		DatabaseURL:     cfg.DatabaseURL,
		Client:          client,
		Browser:         shared,
		OnProgress: func(event pipeline.ProgressEvent) {
			if event.Status == pipeline.StatusRunning {
				fmt.Printf("→ %s...\n", event.Step)
			} else if event.Status == pipeline.StatusError {
				fmt.Printf("✗ %s: %s\n", event.Step, event.Error)
			} else if event.Step != pipeline.StepComplete {
				fmt.Printf("✓ %s (%dms)\n", event.Step, event.Ms)
			}
		},
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(redesignOut, []byte(result.HTML), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("\nWrote %s (style %s, score %.0f/100)\n", redesignOut, result.StylePreset, result.Score.Total)
	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}

	if redesignVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintScore(result.Score)
		printer.PrintManifest(result.Manifest)
		if result.QA != nil {
			printer.PrintDiff(result.QA.Diff)
		}
	}
	return nil
}
