package qa

import (
	"context"
	"log"
	"time"

	"github.com/goscha01/SiteForge/internal/catalog"
	"github.com/goscha01/SiteForge/internal/render"
)

// Shooter renders an HTML document to an image for critique.
type Shooter interface {
	RenderShot(ctx context.Context, html string) ([]byte, error)
}

// Critic submits a rendered screenshot to a vision-capable model and returns
// its raw critique response for parsing.
type Critic interface {
	Critique(ctx context.Context, image []byte) (string, error)
}

// Outcome names the terminal state of a QA run.
type Outcome string

// Terminal states.
const (
	OutcomePatched         Outcome = "patched"
	OutcomeUnpatched       Outcome = "unpatched"
	OutcomeForcedDiversity Outcome = "forced-diversity"
	OutcomeFailed          Outcome = "failed"
)

// Options bounds and parameterizes a QA run.
type Options struct {
	MaxIterations int
	Tokens        catalog.ResolvedTokens
	Signature     catalog.Signature
	Density       catalog.Density
	Now           func() time.Time
}

// Result is what a QA run hands back. Schema and HTML are always usable:
// on failure they are the pre-iteration snapshots.
type Result struct {
	Schema       *catalog.PageSchema
	HTML         string
	Manifest     render.Manifest
	Outcome      Outcome
	Iterated     bool
	Critique     string
	Patches      []Patch
	AppliedCount int
	Diff         []string
}

// RunLoop executes the bounded critique/patch cycle. A nil critic means the
// critique model is not configured: the loop is a documented no-op that
// returns the input unchanged with an explanatory critique string, which
// callers must treat the same as "QA ran and found nothing to fix".
// Collaborator failures mid-iteration recover locally: the loop stops, keeps
// the page it had going into the iteration, and reports the error message as
// the critique text.
func RunLoop(ctx context.Context, schema *catalog.PageSchema, html string, manifest render.Manifest, shooter Shooter, critic Critic, opts Options) *Result {
	result := &Result{
		Schema:   schema,
		HTML:     html,
		Manifest: manifest,
		Outcome:  OutcomeUnpatched,
	}

	if critic == nil {
		result.Critique = "visual QA skipped: critique model not configured"
		return result
	}

	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 1
	}

	for iteration := 0; iteration < maxIterations; iteration++ {
		shot, err := shooter.RenderShot(ctx, result.HTML)
		if err != nil {
			log.Printf("[QA] screenshot failed on iteration %d: %v", iteration+1, err)
			result.Outcome = OutcomeFailed
			result.Critique = err.Error()
			return result
		}

		raw, err := critic.Critique(ctx, shot)
		if err != nil {
			log.Printf("[QA] critique failed on iteration %d: %v", iteration+1, err)
			result.Outcome = OutcomeFailed
			result.Critique = err.Error()
			return result
		}

		patches, summary, err := ParsePatches(raw)
		if err != nil {
			log.Printf("[QA] unusable critique on iteration %d: %v", iteration+1, err)
			result.Outcome = OutcomeFailed
			result.Critique = err.Error()
			return result
		}
		if summary != "" {
			result.Critique = summary
		}
		result.Patches = append(result.Patches, patches...)

		applied := ApplyPatches(result.Schema, patches)
		result.AppliedCount += applied.AppliedCount
		result.Diff = append(result.Diff, applied.Diff...)

		if applied.AppliedCount == 0 {
			// Nothing the model proposed was applicable. Force a single
			// diversification so a requested QA run never returns a
			// completely unmodified page, then stop.
			diversified, line := ForceDiversify(result.Schema)
			result.Schema = diversified
			result.Diff = append(result.Diff, line)
			result.HTML, result.Manifest = render.Page(result.Schema, opts.Tokens, render.Options{
				Signature: opts.Signature,
				Density:   opts.Density,
				Version:   render.VersionPatched,
				Now:       opts.Now,
			})
			result.Outcome = OutcomeForcedDiversity
			result.Iterated = true
			return result
		}

		result.Schema = applied.Schema
		result.HTML, result.Manifest = render.Page(result.Schema, opts.Tokens, render.Options{
			Signature: opts.Signature,
			Density:   opts.Density,
			Version:   render.VersionPatched,
			Now:       opts.Now,
		})
		result.Outcome = OutcomePatched
		result.Iterated = true
	}

	return result
}
