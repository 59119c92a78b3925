package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Browser manager defaults.
const (
	DefaultMaxPages     = 50
	DefaultWindowWidth  = 1440
	DefaultWindowHeight = 900
)

// BrowserManager owns a headless browser and swaps it for a fresh one after
// MaxPages chat pages. Long conversations keep Chrome's memory growing.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher

	maxPages int64
	bin      string
	width    int
	height   int

	pages    atomic.Int64
	recycles atomic.Int64
	closed   atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithManagerMaxPages sets the number of pages rendered before the browser
// is replaced. Zero disables recycling.
func WithManagerMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithBrowserBin launches the Chrome binary at path instead of the one
// located or downloaded by the launcher.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// WithWindowSize sets the viewport. Chat front ends switch to a mobile
// layout that hides wide tables below roughly 1024px.
func WithWindowSize(width, height int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.width, bm.height = width, height
	}
}

func newManager(opts ...ManagerOption) *BrowserManager {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		width:    DefaultWindowWidth,
		height:   DefaultWindowHeight,
	}
	for _, opt := range opts {
		opt(bm)
	}
	return bm
}

// NewBrowserManager launches a browser. Close must be called when the
// manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := newManager(opts...)
	if err := bm.start(); err != nil {
		return nil, err
	}
	return bm, nil
}

// Browser returns the current browser. When MaxPages pages were rendered on
// it, it is replaced first; if the replacement fails to launch the old
// browser keeps serving.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.maxPages <= 0 || bm.pages.Load() < bm.maxPages {
		return bm.browser
	}
	browser, l, err := bm.launch()
	if err != nil {
		return bm.browser
	}
	bm.stop()
	bm.browser, bm.launcher = browser, l
	bm.pages.Store(0)
	bm.recycles.Add(1)
	return bm.browser
}

// IncrementPageCount records a rendered page.
func (bm *BrowserManager) IncrementPageCount() {
	bm.pages.Add(1)
}

// Recycles returns how many times the browser has been replaced.
func (bm *BrowserManager) Recycles() int64 {
	return bm.recycles.Load()
}

// Close shuts the browser down. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}
	bm.mu.Lock()
	defer bm.mu.Unlock()

	return bm.stop()
}

// LauncherPID returns the process ID of the browser launcher, or 0.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

func (bm *BrowserManager) start() error {
	browser, l, err := bm.launch()
	if err != nil {
		return err
	}
	bm.browser, bm.launcher = browser, l
	return nil
}

func (bm *BrowserManager) launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("window-size", fmt.Sprintf("%d,%d", bm.width, bm.height)).
		Leakless(true).
		Headless(true)
	if bm.bin != "" {
		l = l.Bin(bm.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}

// stop must be called with mu held.
func (bm *BrowserManager) stop() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}
