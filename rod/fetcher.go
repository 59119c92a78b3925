// Package rod fetches chat pages with a headless Chrome browser so that
// client-rendered conversations are present in the returned HTML.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/tablewatch"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page fetch, including the wait for
// the conversation to render.
const DefaultFetchTimeout = 30 * time.Second

var _ tablewatch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using a recycled headless browser.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager  *BrowserManager
	timeout  time.Duration
	selector func(url string) string
	settle   time.Duration
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithWaitSelector makes Fetch wait until an element matching the selector
// returned for the URL exists before reading the HTML. An empty selector
// skips the wait. Typically the scope selector of the URL's platform.
func WithWaitSelector(fn func(url string) string) Option {
	return func(f *Fetcher) {
		f.selector = fn
	}
}

// WithSettle waits an extra duration after load so streamed responses
// can finish rendering.
func WithSettle(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithMaxPages sets the number of fetched pages after which the browser
// is recycled.
func WithMaxPages(n int64) Option {
	return WithManager(WithManagerMaxPages(n))
}

// WithManager applies browser manager options such as WithBrowserBin and
// WithWindowSize.
func WithManager(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		for _, opt := range opts {
			opt(f.manager)
		}
	}
}

// NewFetcher launches a headless browser and returns a Fetcher using it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		manager: newManager(),
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.manager.start(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", tablewatch.Errorf(tablewatch.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", contextErr(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", contextErr(ctx, err)
	}
	if f.selector != nil {
		if sel := f.selector(url); sel != "" {
			if _, err := page.Element(sel); err != nil {
				return "", contextErr(ctx, err)
			}
		}
	}
	if f.settle > 0 {
		select {
		case <-time.After(f.settle):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", contextErr(ctx, err)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// contextErr prefers the context's error so callers can match
// context.Canceled and context.DeadlineExceeded.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
