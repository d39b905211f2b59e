// Package browser wraps headless Chrome behind the small page surface the
// crawlers need: navigate, snapshot, select an option.
package browser

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/riftdata/champstats-crawler/internal/crawler"
)

// Config controls browser startup.
type Config struct {
	UserAgent string
	Headless  bool
}

// Session owns the Chrome process for one crawl run. All pages share the
// browser; each page is its own tab so concurrent navigations never
// interleave on the same rendering surface.
type Session struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	userAgent     string
	recorder      *TraceRecorder
	logger        *zap.Logger
}

// NewSession launches the browser and warms it up. The recorder may be nil.
func NewSession(cfg Config, recorder *TraceRecorder, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("chromedp warmup: %w", err)
	}

	return &Session{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		userAgent:     cfg.UserAgent,
		recorder:      recorder,
		logger:        logger,
	}, nil
}

// Close tears down the browser and allocator contexts.
func (s *Session) Close() {
	s.browserCancel()
	s.allocCancel()
}

// NewPage opens a fresh tab.
func (s *Session) NewPage(_ context.Context) (crawler.Page, error) {
	tabCtx, cancel := chromedp.NewContext(s.browserCtx)
	return &Page{
		id:        uuid.NewString(),
		tabCtx:    tabCtx,
		cancel:    cancel,
		userAgent: s.userAgent,
		recorder:  s.recorder,
		logger:    s.logger,
	}, nil
}

// Page is one tab of the shared browser.
type Page struct {
	id        string
	tabCtx    context.Context
	cancel    context.CancelFunc
	userAgent string
	recorder  *TraceRecorder
	logger    *zap.Logger
}

// Navigate loads the URL and waits for the document body to be ready. The
// caller context's deadline bounds the whole load.
func (p *Page) Navigate(ctx context.Context, url string) error {
	start := time.Now()
	actions := []chromedp.Action{network.Enable()}
	if p.userAgent != "" {
		actions = append(actions, emulation.SetUserAgentOverride(p.userAgent))
	}
	actions = append(actions,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)

	err := p.run(ctx, actions...)
	p.record("navigate", url, err, start)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// OuterHTML serializes the first element matching the XPath expression.
func (p *Page) OuterHTML(ctx context.Context, xpath string) (string, error) {
	start := time.Now()
	var markup string
	err := p.run(ctx, chromedp.OuterHTML(xpath, &markup, chromedp.BySearch))
	p.record("outer_html", xpath, err, start)
	if err != nil {
		return "", fmt.Errorf("outer html %s: %w", xpath, err)
	}
	return markup, nil
}

const selectOptionScript = `(function(xpath, value) {
	const el = document.evaluate(xpath, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	if (!el) {
		return false;
	}
	el.value = value;
	el.dispatchEvent(new Event('change', { bubbles: true }));
	return true;
})(%s, %s)`

// SelectOption sets the value of the first <select> matching the XPath
// expression and dispatches its change event, so widgets listening for the
// selection re-render.
func (p *Page) SelectOption(ctx context.Context, xpath, value string) error {
	start := time.Now()
	script := fmt.Sprintf(selectOptionScript, strconv.Quote(xpath), strconv.Quote(value))

	var found bool
	err := p.run(ctx, chromedp.Evaluate(script, &found))
	if err == nil && !found {
		err = fmt.Errorf("no select element matches %s", xpath)
	}
	p.record("select_option", xpath+"="+value, err, start)
	if err != nil {
		return fmt.Errorf("select option %q: %w", value, err)
	}
	return nil
}

// Close releases the tab.
func (p *Page) Close() {
	p.record("close", "", nil, time.Now())
	p.cancel()
}

// run executes chromedp actions on the tab context while honoring the caller
// context's deadline and cancellation. chromedp actions must run on a context
// descended from the tab, so the caller context is forwarded rather than
// used directly.
func (p *Page) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, runCancel := context.WithCancel(p.tabCtx)
	defer runCancel()

	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(runCtx, deadline)
		defer cancel()
	}

	stop := forwardCancel(ctx, runCancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

func (p *Page) record(action, target string, err error, start time.Time) {
	if p.recorder == nil {
		return
	}
	event := TraceEvent{
		Time:       start,
		Page:       p.id,
		Action:     action,
		Target:     target,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	p.recorder.Record(event)
}

func forwardCancel(parent context.Context, cancel context.CancelFunc) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-parent.Done():
			cancel()
		case <-done:
		}
	}()
	return func() { close(done) }
}
