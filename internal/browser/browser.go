// Package browser manages a shared headless Chrome process for page
// fetching and screenshot capture.
package browser

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// Fixed capture viewports. Heights are clamped so a very tall page cannot
// produce an unbounded image.
const (
	desktopWidth  = 1440
	desktopHeight = 900
	mobileWidth   = 390
	mobileHeight  = 844

	maxCaptureHeight = 4000

	defaultTimeout = 45 * time.Second
	settleDelay    = 2 * time.Second
	probeTimeout   = 3 * time.Second
)

// Screenshots holds desktop and mobile PNG captures of one page.
type Screenshots struct {
	Desktop []byte
	Mobile  []byte
}

// Options configures the shared browser.
type Options struct {
	ChromePath string
	Timeout    time.Duration
	Verbose    bool
}

// Browser owns a single long-lived headless Chrome process. The process is
// started lazily on first use, health-checked before reuse, and restarted if
// it has died. Each operation runs in its own tab context so one slow or
// crashed page cannot poison the next.
type Browser struct {
	opts Options

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// New creates an unstarted Browser. Chrome launches on first use.
func New(opts Options) *Browser {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Browser{opts: opts}
}

// Close shuts down the Chrome process if one is running.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

func (b *Browser) stopLocked() {
	if b.browserCancel != nil {
		b.browserCancel()
		b.browserCancel = nil
	}
	if b.allocCancel != nil {
		b.allocCancel()
		b.allocCancel = nil
	}
	b.browserCtx = nil
}

// ensure returns a healthy shared browser context, starting or restarting
// Chrome as needed.
func (b *Browser) ensure() (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browserCtx != nil {
		if b.healthyLocked() {
			return b.browserCtx, nil
		}
		log.Printf("[BROWSER] Browser unresponsive, restarting")
		b.stopLocked()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(b.opts.ChromePath))
	}

	// The allocator is parented to the background context, not the caller's:
	// the browser outlives individual requests.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Force the browser process to start now so failures surface here rather
	// than on the first real navigation.
	startCtx, cancel := context.WithTimeout(browserCtx, b.opts.Timeout)
	defer cancel()
	if err := chromedp.Run(startCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	if b.opts.Verbose {
		log.Printf("[BROWSER] Started headless browser")
	}

	b.allocCancel = allocCancel
	b.browserCtx = browserCtx
	b.browserCancel = browserCancel
	return b.browserCtx, nil
}

// healthyLocked probes the shared browser with a trivial evaluation.
func (b *Browser) healthyLocked() bool {
	if b.browserCtx.Err() != nil {
		return false
	}
	probeCtx, cancel := context.WithTimeout(b.browserCtx, probeTimeout)
	defer cancel()
	var one int
	return chromedp.Run(probeCtx, chromedp.Evaluate("1", &one)) == nil
}

// run executes actions in a fresh tab with a bounded deadline. The tab is
// always released, on every exit path.
func (b *Browser) run(ctx context.Context, operation string, actions ...chromedp.Action) error {
	shared, err := b.ensure()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tabCtx, cancelTab := chromedp.NewContext(shared)
	defer cancelTab()

	runCtx, cancel := context.WithTimeout(tabCtx, b.opts.Timeout)
	defer cancel()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &TimeoutError{Operation: operation, Timeout: b.opts.Timeout, Cause: err}
		}
		return fmt.Errorf("browser %s failed: %w", operation, err)
	}
	return nil
}

// FetchHTML navigates to a URL and returns the rendered DOM, including
// content produced by client-side JavaScript.
func (b *Browser) FetchHTML(ctx context.Context, url string) (string, error) {
	var html string
	err := b.run(ctx, "fetch",
		chromedp.EmulateViewport(desktopWidth, desktopHeight),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}
	if b.opts.Verbose {
		log.Printf("[BROWSER] Fetched %s: %d bytes", url, len(html))
	}
	return html, nil
}

// Capture takes desktop and mobile screenshots of a URL.
func (b *Browser) Capture(ctx context.Context, url string) (*Screenshots, error) {
	desktop, err := b.screenshot(ctx, chromedp.Navigate(url), desktopWidth, desktopHeight)
	if err != nil {
		return nil, err
	}
	mobile, err := b.screenshot(ctx, chromedp.Navigate(url), mobileWidth, mobileHeight)
	if err != nil {
		return nil, err
	}
	return &Screenshots{Desktop: desktop, Mobile: mobile}, nil
}

// RenderShot screenshots an in-memory HTML document at the desktop viewport.
// Used by the visual QA loop to photograph generated pages.
func (b *Browser) RenderShot(ctx context.Context, html string) ([]byte, error) {
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
	return b.screenshot(ctx, chromedp.Navigate(dataURL), desktopWidth, desktopHeight)
}

// screenshot navigates and captures a height-clamped full-page PNG.
func (b *Browser) screenshot(ctx context.Context, navigate chromedp.Action, width, height int) ([]byte, error) {
	var buf []byte
	err := b.run(ctx, "screenshot",
		chromedp.EmulateViewport(int64(width), int64(height)),
		navigate,
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var pageHeight int
			if err := chromedp.Evaluate("document.documentElement.scrollHeight", &pageHeight).Do(ctx); err != nil {
				return err
			}
			if pageHeight < height {
				pageHeight = height
			}
			if pageHeight > maxCaptureHeight {
				pageHeight = maxCaptureHeight
			}
			return chromedp.EmulateViewport(int64(width), int64(pageHeight)).Do(ctx)
		}),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}
