package detect

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/tablewatch"
	"github.com/fwojciec/tablewatch/bloom"
	"golang.org/x/time/rate"
)

// Scheduler defaults.
const (
	DefaultDebounce      = 300 * time.Millisecond
	DefaultMinInterval   = time.Second
	DefaultFullScanDelta = 3
)

// State is the scheduler's position in its idle → pending → scanning cycle.
type State int32

const (
	StateIdle State = iota
	StatePending
	StateScanning
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateScanning:
		return "scanning"
	}
	return "idle"
}

// ScanMode tells whether a scan re-validated the whole registry.
type ScanMode string

const (
	ScanFull        ScanMode = "full"
	ScanIncremental ScanMode = "incremental"
)

// ScanReport summarizes one scheduled scan.
type ScanReport struct {
	Mode     ScanMode
	PassID   string
	Added    int // entries registered by the scan
	Removed  int // entries dropped as stale
	New      int // tables never reported before in this session
	Total    int // registry size after the scan
	Duration time.Duration
	Err      error
}

// Scheduler rescans a document when relevant mutations settle. All tree
// mutations submitted through it are applied on the goroutine running Run,
// and scans are strictly serialized on that goroutine.
type Scheduler struct {
	// Mutator applies records passed to Submit. Usually the document itself.
	Mutator tablewatch.Mutator

	// Strategy is used for every scan.
	Strategy tablewatch.Strategy

	// Debounce is the quiet period after the last relevant mutation.
	Debounce time.Duration

	// MinInterval is the minimum time between two scans.
	MinInterval time.Duration

	// FullScanDelta is the change in the number of table-bearing elements
	// from which a full scan replaces an incremental one.
	FullScanDelta int

	// Logger receives scan and mutation logs. Defaults to discarding.
	Logger *slog.Logger

	// OnScan, if set, is called on the loop goroutine after every scan.
	OnScan func(ScanReport)

	doc      tablewatch.Document
	detector tablewatch.Detector
	registry *Registry

	events    chan event
	closing   chan struct{}
	closeOnce sync.Once
	state     atomic.Int32

	// Owned by the loop goroutine.
	timer       *time.Timer
	timerC      <-chan time.Time
	limiter     *rate.Limiter
	reservation *rate.Reservation
	forceFull   bool
	scans       int
	lastCount   int
	seen        *bloom.Filter
}

type event struct {
	records []tablewatch.MutationRecord
	muts    []*tablewatch.Mutation
	rescan  bool
}

// NewScheduler creates a Scheduler keeping registry in sync with doc.
func NewScheduler(doc tablewatch.Document, detector tablewatch.Detector, registry *Registry) *Scheduler {
	s := &Scheduler{
		Strategy:      tablewatch.StrategyStandard,
		Debounce:      DefaultDebounce,
		MinInterval:   DefaultMinInterval,
		FullScanDelta: DefaultFullScanDelta,
		doc:           doc,
		detector:      detector,
		registry:      registry,
		events:        make(chan event, 64),
		closing:       make(chan struct{}),
	}
	if m, ok := doc.(tablewatch.Mutator); ok {
		s.Mutator = m
	}
	return s
}

// State returns the current scheduler state.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Submit queues mutation records to be applied on the loop goroutine.
func (s *Scheduler) Submit(records ...tablewatch.MutationRecord) {
	s.send(event{records: records})
}

// Notify queues mutations that were already applied to the document.
func (s *Scheduler) Notify(muts ...*tablewatch.Mutation) {
	s.send(event{muts: muts})
}

// Rescan requests a full scan, subject to the minimum interval.
func (s *Scheduler) Rescan() {
	s.send(event{rescan: true})
}

// Close stops the loop. A pending scan is run before Run returns.
func (s *Scheduler) Close() error {
	s.closeOnce.Do(func() { close(s.closing) })
	return nil
}

func (s *Scheduler) send(ev event) {
	select {
	case s.events <- ev:
	case <-s.closing:
	}
}

// Run performs the initial full scan and then processes mutations until
// ctx is canceled or Close is called.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	limit := rate.Inf
	if s.MinInterval > 0 {
		limit = rate.Every(s.MinInterval)
	}
	s.limiter = rate.NewLimiter(limit, 1)
	s.seen = bloom.NewFilter(bloom.DefaultCapacity, bloom.DefaultFalsePositiveRate)
	defer s.stopTimer()

	s.limiter.Allow()
	s.scan(ctx, true)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.closing:
			s.drain()
			if s.State() == StatePending {
				s.cancelReservation()
				s.scan(ctx, s.forceFull)
			}
			return nil
		case ev := <-s.events:
			s.handle(ev)
		case <-s.timerC:
			s.fire(ctx)
		}
	}
}

// drain handles events queued before Close.
func (s *Scheduler) drain() {
	for {
		select {
		case ev := <-s.events:
			s.handle(ev)
		default:
			return
		}
	}
}

func (s *Scheduler) handle(ev event) {
	relevant := ev.rescan
	if ev.rescan {
		s.forceFull = true
	}
	for _, rec := range ev.records {
		if s.Mutator == nil {
			s.Logger.Error("mutation", "op", rec.Op, "err", "no mutator configured")
			continue
		}
		m, err := s.Mutator.Apply(rec)
		if err != nil {
			s.Logger.Warn("mutation", "op", rec.Op, "xpath", rec.XPath, "err", err)
			continue
		}
		relevant = s.consider(m) || relevant
	}
	for _, m := range ev.muts {
		relevant = s.consider(m) || relevant
	}
	if relevant {
		s.arm()
	}
}

func (s *Scheduler) consider(m *tablewatch.Mutation) bool {
	if !IsRelevant(m) {
		return false
	}
	if m.Op == tablewatch.OpDocReset {
		s.forceFull = true
	}
	return true
}

// arm (re)starts the debounce window.
func (s *Scheduler) arm() {
	s.cancelReservation()
	s.setTimer(s.Debounce)
	s.state.Store(int32(StatePending))
}

// fire runs when the debounce window or the rate limit delay expires.
func (s *Scheduler) fire(ctx context.Context) {
	s.timerC = nil
	if s.reservation == nil {
		r := s.limiter.Reserve()
		if d := r.Delay(); d > 0 {
			s.reservation = r
			s.setTimer(d)
			return
		}
	}
	s.reservation = nil
	s.scan(ctx, s.forceFull)
}

func (s *Scheduler) scan(ctx context.Context, force bool) {
	s.state.Store(int32(StateScanning))
	defer s.state.Store(int32(StateIdle))
	s.forceFull = false

	count := len(s.doc.Find(tableBearing))
	delta := count - s.lastCount
	if delta < 0 {
		delta = -delta
	}
	mode := ScanIncremental
	if force || s.scans == 0 || delta >= s.FullScanDelta {
		mode = ScanFull
	}

	begin := time.Now()
	rep := ScanReport{Mode: mode}
	defer func() {
		rep.Duration = time.Since(begin)
		s.Logger.Info("scan", "mode", rep.Mode, "added", rep.Added, "removed", rep.Removed, "new", rep.New, "total", rep.Total, "duration", rep.Duration, "err", rep.Err)
		if s.OnScan != nil {
			s.OnScan(rep)
		}
	}()

	opts := tablewatch.DetectOptions{Strategy: s.Strategy}
	if mode == ScanIncremental {
		rep.Removed = s.registry.Cleanup()
		opts.Known = s.registry.Anchors()
	}
	report, err := s.detector.Detect(ctx, s.doc, opts)
	if err != nil {
		rep.Err = err
		return
	}
	rep.PassID = report.PassID
	rep.Err = report.Err

	switch {
	case report.Err != nil:
		// Keep entries a failed pass could not re-validate.
		if mode == ScanFull {
			rep.Removed = s.registry.Cleanup()
		}
	case mode == ScanFull:
		rep.Added, rep.Removed = s.registry.Reconcile(report.Results)
	default:
		rep.Added = s.registry.Add(report.Results...)
	}
	for _, r := range report.Results {
		if !s.seen.TestAndAdd(Fingerprint(r.Table.Headers, r.Table.Rows)) {
			rep.New++
		}
	}
	rep.Total = s.registry.Len()
	s.scans++
	s.lastCount = count
}

func (s *Scheduler) setTimer(d time.Duration) {
	if s.timer == nil {
		s.timer = time.NewTimer(d)
	} else {
		s.timer.Reset(d)
	}
	s.timerC = s.timer.C
}

func (s *Scheduler) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerC = nil
}

func (s *Scheduler) cancelReservation() {
	if s.reservation != nil {
		s.reservation.Cancel()
		s.reservation = nil
	}
}
