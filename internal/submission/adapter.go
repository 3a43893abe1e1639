package submission

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/jonathan/ats-probe/internal/types"
)

// Options configures browser behavior shared by all targets.
type Options struct {
	// Headless runs the browser without a display (default in NewSession
	// when constructed through DefaultOptions).
	Headless bool
	// NavigationTimeout bounds Navigate.
	NavigationTimeout time.Duration
	// ActionTimeout bounds Upload and each extraction snapshot.
	ActionTimeout time.Duration
	// PollInterval is the confirmation-selector polling cadence.
	PollInterval time.Duration
}

// DefaultOptions returns the browser options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Headless:          true,
		NavigationTimeout: 30 * time.Second,
		ActionTimeout:     30 * time.Second,
		PollInterval:      500 * time.Millisecond,
	}
}

// Session is the uniform submission adapter for one target. Every target is
// driven by the same four operations; differences live entirely in the
// descriptor's configuration data.
type Session struct {
	target  *types.TargetDescriptor
	opts    Options
	ctx     context.Context
	cancels []context.CancelFunc
}

// NewSession starts a headless browser session for one target.
// The caller must Close the session. Requires Chrome/Chromium installed.
func NewSession(ctx context.Context, target *types.TargetDescriptor, opts Options) (*Session, error) {
	if opts.NavigationTimeout == 0 {
		opts = DefaultOptions()
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	return &Session{
		target:  target,
		opts:    opts,
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
	}, nil
}

// Close tears down the browser session.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// Navigate opens the target entry point and waits for the page body.
func (s *Session) Navigate(ctx context.Context) error {
	tctx, cancel := s.bounded(ctx, s.opts.NavigationTimeout)
	defer cancel()

	err := chromedp.Run(tctx,
		chromedp.Navigate(s.target.EntryURL),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		return &NavigationError{
			Target:  s.target.Name,
			Message: fmt.Sprintf("failed to open %s", s.target.EntryURL),
			Cause:   err,
		}
	}
	return nil
}

// Upload delivers the compiled PDF to the target's upload control. The
// document is staged as a temp file for the file chooser and removed
// before returning, success or failure.
func (s *Session) Upload(ctx context.Context, pdf []byte) error {
	if len(pdf) == 0 {
		return &UploadError{Target: s.target.Name, Message: "document is empty"}
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("ats-probe-%s.pdf", uuid.NewString()))
	if err := os.WriteFile(path, pdf, 0600); err != nil {
		return &UploadError{Target: s.target.Name, Message: "failed to stage document", Cause: err}
	}
	defer func() { _ = os.Remove(path) }()

	uploadSel := s.target.Selectors[types.SelectorUpload]

	tctx, cancel := s.bounded(ctx, s.opts.ActionTimeout)
	defer cancel()

	err := chromedp.Run(tctx,
		chromedp.WaitVisible(uploadSel, chromedp.ByQuery),
		chromedp.SetUploadFiles(uploadSel, []string{path}, chromedp.ByQuery),
	)
	if err != nil {
		return &UploadError{
			Target:  s.target.Name,
			Message: fmt.Sprintf("upload element %q not usable", uploadSel),
			Cause:   err,
		}
	}
	return nil
}

// AwaitProcessing waits for the target to finish parsing the document.
// There is no deterministic completion signal from ATS vendors, so this is
// an explicit heuristic: poll the descriptor's confirmation selector until
// the configured wait expires, or sleep the full wait when no selector is
// configured. The return value reports whether processing was confirmed;
// false is inconclusive, never an error; the caller proceeds to
// extraction and scores whatever is present.
func (s *Session) AwaitProcessing(ctx context.Context) (confirmed bool, err error) {
	wait := s.target.ProcessingWait()

	if s.target.ConfirmationSelector == "" {
		select {
		case <-time.After(wait):
			return true, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		tctx, cancel := s.bounded(ctx, s.opts.PollInterval*2)
		pollErr := chromedp.Run(tctx, chromedp.WaitVisible(s.target.ConfirmationSelector, chromedp.ByQuery))
		cancel()
		if pollErr == nil {
			return true, nil
		}
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		select {
		case <-time.After(s.opts.PollInterval):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	return false, nil
}

// bounded nests the unit context into the browser context with a timeout,
// so both unit cancellation and per-call limits apply.
func (s *Session) bounded(unit context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	tctx, cancelTimeout := context.WithTimeout(s.ctx, timeout)
	stop := context.AfterFunc(unit, cancelTimeout)
	return tctx, func() {
		stop()
		cancelTimeout()
	}
}
