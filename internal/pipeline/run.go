// Package pipeline provides the high-level orchestration for the website
// redesign process.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goscha01/SiteForge/internal/browser"
	"github.com/goscha01/SiteForge/internal/catalog"
	"github.com/goscha01/SiteForge/internal/extract"
	"github.com/goscha01/SiteForge/internal/generate"
	"github.com/goscha01/SiteForge/internal/llm"
	"github.com/goscha01/SiteForge/internal/qa"
	"github.com/goscha01/SiteForge/internal/render"
	"github.com/goscha01/SiteForge/internal/score"
	"github.com/goscha01/SiteForge/internal/store"
)

// Pipeline step names used in progress events and artifact records.
const (
	StepCapture  = "capture"
	StepExtract  = "extract"
	StepGenerate = "generate"
	StepScore    = "score"
	StepRender   = "render"
	StepQA       = "qa"
	StepComplete = "complete"
)

// Progress event statuses.
const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusError   = "error"
)

const (
	defaultStylePreset = "modern-trust"
	fetchTimeout       = 30 * time.Second
	maxFetchBytes      = 4 << 20
)

// ProgressEvent represents a step lifecycle update during pipeline execution.
type ProgressEvent struct {
	Step    string `json:"step"`
	Status  string `json:"status"`
	Ms      int64  `json:"ms"`
	RunID   string `json:"runId,omitempty"`
	Error   string `json:"error,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called for every progress event. Calls are serialized.
type ProgressCallback func(event ProgressEvent)

// TerminalPayload rides on the single terminal event of a run.
type TerminalPayload struct {
	RunID       string          `json:"runId"`
	Score       float64         `json:"score"`
	MustImprove bool            `json:"mustImprove"`
	QAOutcome   string          `json:"qaOutcome,omitempty"`
	HTML        string          `json:"html"`
	Manifest    render.Manifest `json:"manifest"`
}

// Options holds configuration for a pipeline run.
type Options struct {
	URL             string
	StylePreset     string
	Blueprint       string
	Signature       catalog.Signature
	Tweaks          catalog.TokenTweaks
	RunQA           bool
	CompareStyles   bool
	QAMaxIterations int
	Verbose         bool
	DatabaseURL     string
	Client          llm.Client
	Browser         *browser.Browser
	OnProgress      ProgressCallback
	Now             func() time.Time
}

// Result is the full outcome of a pipeline run.
type Result struct {
	RunID       string
	StylePreset string
	Content     *extract.SiteContent
	Schema      *catalog.PageSchema
	Tokens      catalog.ResolvedTokens
	HTML        string
	Manifest    render.Manifest
	Score       score.Result
	Warnings    []string
	QA          *qa.Result
}

// emitter serializes progress callback invocations; steps running under an
// errgroup report completion concurrently.
type emitter struct {
	mu    sync.Mutex
	runID string
	cb    ProgressCallback
}

func (e *emitter) emit(event ProgressEvent) {
	if e.cb == nil {
		return
	}
	event.RunID = e.runID
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cb(event)
}

// step runs fn under a named step, emitting running/done/error events with
// elapsed milliseconds.
func (e *emitter) step(name string, fn func() error) error {
	e.emit(ProgressEvent{Step: name, Status: StatusRunning})
	start := time.Now()
	err := fn()
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		e.emit(ProgressEvent{Step: name, Status: StatusError, Ms: elapsed, Error: err.Error()})
		return err
	}
	e.emit(ProgressEvent{Step: name, Status: StatusDone, Ms: elapsed})
	return nil
}

// Run executes the full redesign pipeline: ingest the source site, generate
// and validate a page schema, score it, render the initial page, and run the
// visual QA loop when requested or when the score demands it. Exactly one
// terminal event is emitted: step "complete" with status done or error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("source URL is required")
	}
	if opts.StylePreset == "" {
		opts.StylePreset = defaultStylePreset
	}

	var dna *catalog.DNA
	if opts.Blueprint != "" {
		blueprint, ok := catalog.Blueprint(opts.Blueprint)
		if !ok {
			return nil, fmt.Errorf("unknown blueprint: %s", opts.Blueprint)
		}
		dna = &blueprint
	}

	runID := uuid.New()
	em := &emitter{runID: runID.String(), cb: opts.OnProgress}
	result := &Result{RunID: runID.String(), StylePreset: opts.StylePreset}
	totalStart := time.Now()

	fail := func(err error) (*Result, error) {
		em.emit(ProgressEvent{
			Step:   StepComplete,
			Status: StatusError,
			Ms:     time.Since(totalStart).Milliseconds(),
			Error:  err.Error(),
		})
		return nil, err
	}

	// Database persistence is optional: a failed connection downgrades to a
	// run without artifacts.
	var db *store.Store
	if opts.DatabaseURL != "" {
		var err error
		db, err = store.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			log.Printf("Warning: failed to connect to database: %v", err)
			log.Printf("Continuing without persistence")
			db = nil
		} else {
			defer db.Close()
			if _, err := db.CreateRunWithID(ctx, runID, opts.URL, opts.StylePreset); err != nil {
				log.Printf("Warning: failed to create database run: %v", err)
				db = nil
			}
		}
	}

	// Ingest: screenshots and content extraction run concurrently. Capture is
	// best-effort context; extraction failure is fatal.
	var shots *browser.Screenshots
	var content *extract.SiteContent
	var sourceHTML string

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return em.step(StepCapture, func() error {
			if opts.Browser == nil {
				return nil
			}
			captured, err := opts.Browser.Capture(groupCtx, opts.URL)
			if err != nil {
				log.Printf("Warning: source screenshot capture failed: %v", err)
				return nil
			}
			shots = captured
			return nil
		})
	})
	group.Go(func() error {
		return em.step(StepExtract, func() error {
			html, err := fetchHTML(groupCtx, opts.Browser, opts.URL)
			if err != nil {
				return err
			}
			sourceHTML = html
			content, err = extract.Extract(opts.URL, html)
			return err
		})
	})
	if err := group.Wait(); err != nil {
		return fail(err)
	}
	result.Content = content
	saveText(ctx, db, runID, store.StepSourceHTML, sourceHTML)
	saveArtifact(ctx, db, runID, store.StepContent, content)
	if shots != nil {
		saveArtifact(ctx, db, runID, store.StepScreenshots, map[string]int{
			"desktopBytes": len(shots.Desktop),
			"mobileBytes":  len(shots.Mobile),
		})
	}

	// Generate and validate the page schema.
	generator := generate.New(opts.Client)
	err := em.step(StepGenerate, func() error {
		if opts.CompareStyles {
			preset, schema, warnings := bestPreview(ctx, generator, content, dna, opts)
			result.StylePreset = preset
			result.Schema = schema
			result.Warnings = warnings
			return nil
		}
		schema, warnings, err := generator.GenerateSchema(ctx, content, dna)
		if err != nil {
			return err
		}
		result.Schema = schema
		result.Warnings = warnings
		return nil
	})
	if err != nil {
		return fail(err)
	}
	saveArtifact(ctx, db, runID, store.StepSchemaInitial, result.Schema)

	brand := result.Schema.Tokens.Brand
	if brand == "" {
		brand = content.BrandName
	}
	tokens, err := catalog.ResolveTokens(result.StylePreset, brand, opts.Tweaks)
	if err != nil {
		return fail(err)
	}
	result.Tokens = tokens

	err = em.step(StepScore, func() error {
		result.Score = score.Compute(result.Schema, tokens, opts.Signature, dna)
		return nil
	})
	if err != nil {
		return fail(err)
	}
	saveArtifact(ctx, db, runID, store.StepScore, result.Score)

	err = em.step(StepRender, func() error {
		result.HTML, result.Manifest = render.Page(result.Schema, tokens, render.Options{
			Signature: opts.Signature,
			Density:   tokens.Density,
			Version:   render.VersionInitial,
			Now:       opts.Now,
		})
		return nil
	})
	if err != nil {
		return fail(err)
	}
	saveText(ctx, db, runID, store.StepHTMLInitial, result.HTML)
	saveArtifact(ctx, db, runID, store.StepManifest, result.Manifest)

	// The QA loop runs when requested or when the score says the page must
	// improve. Collaborator failures inside the loop are not pipeline-fatal.
	if opts.RunQA || result.Score.MustImprove {
		err = em.step(StepQA, func() error {
			var critic qa.Critic
			if opts.Client != nil && opts.Browser != nil {
				critic = &visionCritic{client: opts.Client}
			}
			qaResult := qa.RunLoop(ctx, result.Schema, result.HTML, result.Manifest, opts.Browser, critic, qa.Options{
				MaxIterations: opts.QAMaxIterations,
				Tokens:        tokens,
				Signature:     opts.Signature,
				Density:       tokens.Density,
				Now:           opts.Now,
			})
			result.QA = qaResult
			result.Schema = qaResult.Schema
			result.HTML = qaResult.HTML
			result.Manifest = qaResult.Manifest
			if qaResult.Iterated {
				result.Score = score.Compute(result.Schema, tokens, opts.Signature, dna)
			}
			return nil
		})
		if err != nil {
			return fail(err)
		}
		if result.QA.Iterated {
			saveArtifact(ctx, db, runID, store.StepSchemaPatched, result.Schema)
			saveText(ctx, db, runID, store.StepHTMLFinal, result.HTML)
		}
		if result.QA.Critique != "" {
			saveText(ctx, db, runID, store.StepCritique, result.QA.Critique)
		}
		if len(result.QA.Diff) > 0 {
			saveArtifact(ctx, db, runID, store.StepPatchDiff, result.QA.Diff)
		}
	}

	if db != nil {
		if err := db.CompleteRun(ctx, runID, store.StatusCompleted, int(result.Score.Total)); err != nil {
			log.Printf("Warning: failed to complete database run: %v", err)
		}
	}

	payload := TerminalPayload{
		RunID:       result.RunID,
		Score:       result.Score.Total,
		MustImprove: result.Score.MustImprove,
		HTML:        result.HTML,
		Manifest:    result.Manifest,
	}
	if result.QA != nil {
		payload.QAOutcome = string(result.QA.Outcome)
	}
	em.emit(ProgressEvent{
		Step:    StepComplete,
		Status:  StatusDone,
		Ms:      time.Since(totalStart).Milliseconds(),
		Content: payload,
	})

	return result, nil
}

// bestPreview generates one candidate per style preset concurrently and
// returns the highest-scoring one. Per-preview failures already degraded to
// the deterministic fallback inside GeneratePreviews.
func bestPreview(ctx context.Context, generator *generate.Generator, content *extract.SiteContent, dna *catalog.DNA, opts Options) (string, *catalog.PageSchema, []string) {
	previews := generator.GeneratePreviews(ctx, content, dna, catalog.PresetIDs())

	best := previews[0]
	bestTotal := -1.0
	for _, preview := range previews {
		tokens, err := catalog.ResolveTokens(preview.PresetID, content.BrandName, opts.Tweaks)
		if err != nil {
			continue
		}
		total := score.Compute(preview.Schema, tokens, opts.Signature, dna).Total
		if preview.Fallback {
			// A fallback schema only wins when every preset failed.
			total -= 1000
		}
		if total > bestTotal {
			bestTotal = total
			best = preview
		}
	}
	return best.PresetID, best.Schema, best.Warnings
}

// fetchHTML prefers the shared browser so JavaScript-rendered sites produce
// real content, with a plain HTTP fallback when no browser is available.
func fetchHTML(ctx context.Context, b *browser.Browser, url string) (string, error) {
	if b != nil {
		return b.FetchHTML(ctx, url)
	}

	reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("invalid source URL: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch source page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("source page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read source page: %w", err)
	}
	return string(body), nil
}

func saveArtifact(ctx context.Context, db *store.Store, runID uuid.UUID, step string, content any) {
	if db == nil {
		return
	}
	if err := db.SaveArtifact(ctx, runID, step, content); err != nil {
		log.Printf("Warning: failed to save artifact %s: %v", step, err)
	}
}

func saveText(ctx context.Context, db *store.Store, runID uuid.UUID, step, text string) {
	if db == nil {
		return
	}
	if err := db.SaveTextArtifact(ctx, runID, step, text); err != nil {
		log.Printf("Warning: failed to save artifact %s: %v", step, err)
	}
}
