package detect_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/tablewatch"
	"github.com/fwojciec/tablewatch/detect"
	"github.com/fwojciec/tablewatch/goquery"
	"github.com/fwojciec/tablewatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schedulerHTML = `<html><body>
<table><tr><th>Plan</th><th>Price</th></tr><tr><td>Free</td><td>0</td></tr></table>
<p>Some prose.</p>
</body></html>`

type harness struct {
	doc      *goquery.Document
	registry *detect.Registry
	sched    *detect.Scheduler
	scans    chan detect.ScanReport
	done     chan error
}

func startScheduler(t *testing.T, html string, configure func(*detect.Scheduler)) *harness {
	t.Helper()
	return startSchedulerWith(t, html, newDetector(), configure)
}

func startSchedulerWith(t *testing.T, html string, detector tablewatch.Detector, configure func(*detect.Scheduler)) *harness {
	t.Helper()

	h := &harness{
		doc:      newDoc(t, html),
		registry: detect.NewRegistry(),
		scans:    make(chan detect.ScanReport, 16),
		done:     make(chan error, 1),
	}
	h.sched = detect.NewScheduler(h.doc, detector, h.registry)
	h.sched.Debounce = 10 * time.Millisecond
	h.sched.MinInterval = 0
	h.sched.OnScan = func(r detect.ScanReport) { h.scans <- r }
	if configure != nil {
		configure(h.sched)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() { h.done <- h.sched.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-h.done
	})
	return h
}

func (h *harness) next(t *testing.T) detect.ScanReport {
	t.Helper()
	select {
	case r := <-h.scans:
		return r
	case <-time.After(5 * time.Second):
		require.FailNow(t, "timed out waiting for a scan")
		return detect.ScanReport{}
	}
}

func tableHTML(header, value string) string {
	return "<table><tr><th>" + header + "</th><th>Value</th></tr><tr><td>x</td><td>" + value + "</td></tr></table>"
}

func TestScheduler(t *testing.T) {
	t.Parallel()

	t.Run("runs a full scan on start", func(t *testing.T) {
		t.Parallel()

		h := startScheduler(t, schedulerHTML, nil)

		r := h.next(t)

		assert.Equal(t, detect.ScanFull, r.Mode)
		assert.NotEmpty(t, r.PassID)
		assert.Equal(t, 1, r.Added)
		assert.Equal(t, 1, r.New)
		assert.Equal(t, 1, r.Total)
		assert.NoError(t, r.Err)
	})

	t.Run("scans incrementally after an inserted table", func(t *testing.T) {
		t.Parallel()

		h := startScheduler(t, schedulerHTML, nil)
		h.next(t)

		h.sched.Submit(tablewatch.MutationRecord{Op: tablewatch.OpInsert, XPath: "//body", HTML: tableHTML("Region", "1")})
		r := h.next(t)

		assert.Equal(t, detect.ScanIncremental, r.Mode)
		assert.Equal(t, 1, r.Added)
		assert.Equal(t, 1, r.New)
		assert.Equal(t, 2, r.Total)
		assert.Len(t, h.registry.GetAll(), 2)
	})

	t.Run("coalesces mutations within the debounce window", func(t *testing.T) {
		t.Parallel()

		h := startScheduler(t, schedulerHTML, func(s *detect.Scheduler) {
			s.Debounce = 200 * time.Millisecond
		})
		h.next(t)

		h.sched.Submit(tablewatch.MutationRecord{Op: tablewatch.OpInsert, XPath: "//body", HTML: tableHTML("A", "1")})
		h.sched.Submit(tablewatch.MutationRecord{Op: tablewatch.OpInsert, XPath: "//body", HTML: tableHTML("B", "2")})
		r := h.next(t)

		assert.Equal(t, 2, r.Added)
		assert.Equal(t, 3, r.Total)
		assert.Never(t, func() bool { return len(h.scans) > 0 }, 300*time.Millisecond, 20*time.Millisecond)
	})

	t.Run("switches to a full scan on large changes", func(t *testing.T) {
		t.Parallel()

		h := startScheduler(t, schedulerHTML, nil)
		h.next(t)

		h.sched.Submit(
			tablewatch.MutationRecord{Op: tablewatch.OpInsert, XPath: "//body", HTML: tableHTML("A", "1")},
			tablewatch.MutationRecord{Op: tablewatch.OpInsert, XPath: "//body", HTML: tableHTML("B", "2")},
			tablewatch.MutationRecord{Op: tablewatch.OpInsert, XPath: "//body", HTML: tableHTML("C", "3")},
		)
		r := h.next(t)

		assert.Equal(t, detect.ScanFull, r.Mode)
		assert.Equal(t, 3, r.Added)
		assert.Equal(t, 4, r.Total)
	})

	t.Run("ignores irrelevant mutations", func(t *testing.T) {
		t.Parallel()

		h := startScheduler(t, schedulerHTML, nil)
		h.next(t)

		h.sched.Submit(tablewatch.MutationRecord{Op: tablewatch.OpText, XPath: "//p", Value: "Other prose."})

		assert.Never(t, func() bool { return len(h.scans) > 0 }, 200*time.Millisecond, 20*time.Millisecond)
		assert.Equal(t, detect.StateIdle, h.sched.State())
	})

	t.Run("drops tables removed from the page", func(t *testing.T) {
		t.Parallel()

		h := startScheduler(t, schedulerHTML, nil)
		h.next(t)

		h.sched.Submit(tablewatch.MutationRecord{Op: tablewatch.OpRemove, XPath: "//table"})
		r := h.next(t)

		assert.Equal(t, 1, r.Removed)
		assert.Zero(t, r.Total)
	})

	t.Run("keeps ids across a document reset", func(t *testing.T) {
		t.Parallel()

		h := startScheduler(t, schedulerHTML, nil)
		h.next(t)
		before := h.registry.GetAll()
		require.Len(t, before, 1)

		h.sched.Submit(tablewatch.MutationRecord{Op: tablewatch.OpDocReset, HTML: schedulerHTML})
		r := h.next(t)

		assert.Equal(t, detect.ScanFull, r.Mode)
		assert.Zero(t, r.Added)
		assert.Zero(t, r.Removed)
		assert.Zero(t, r.New)
		after := h.registry.GetAll()
		require.Len(t, after, 1)
		assert.Equal(t, before[0].Table.ID, after[0].Table.ID)
		assert.True(t, after[0].Anchor.Attached())
	})

	t.Run("keeps live tables when a full scan fails", func(t *testing.T) {
		t.Parallel()

		inner := newDetector()
		var calls atomic.Int32
		failing := &mock.Detector{
			DetectFn: func(ctx context.Context, doc tablewatch.Document, opts tablewatch.DetectOptions) (*tablewatch.DetectReport, error) {
				if calls.Add(1) == 1 {
					return inner.Detect(ctx, doc, opts)
				}
				return &tablewatch.DetectReport{
					PassID: "failed",
					Err:    tablewatch.Errorf(tablewatch.EINTERNAL, "platform scan failed"),
				}, nil
			},
		}
		h := startSchedulerWith(t, schedulerHTML, failing, nil)
		require.Equal(t, 1, h.next(t).Total)

		h.sched.Rescan()
		r := h.next(t)

		assert.Equal(t, detect.ScanFull, r.Mode)
		assert.Equal(t, tablewatch.EINTERNAL, tablewatch.ErrorCode(r.Err))
		assert.Zero(t, r.Removed)
		assert.Equal(t, 1, r.Total)
		assert.Equal(t, 1, h.registry.Len())
	})

	t.Run("drops only detached tables when a full scan fails", func(t *testing.T) {
		t.Parallel()

		inner := newDetector()
		var calls atomic.Int32
		failing := &mock.Detector{
			DetectFn: func(ctx context.Context, doc tablewatch.Document, opts tablewatch.DetectOptions) (*tablewatch.DetectReport, error) {
				if calls.Add(1) == 1 {
					return inner.Detect(ctx, doc, opts)
				}
				return &tablewatch.DetectReport{Err: tablewatch.Errorf(tablewatch.EINTERNAL, "platform scan failed")}, nil
			},
		}
		h := startSchedulerWith(t, schedulerHTML, failing, nil)
		require.Equal(t, 1, h.next(t).Total)

		h.sched.Submit(tablewatch.MutationRecord{Op: tablewatch.OpRemove, XPath: "/html/body/table"})
		h.sched.Rescan()
		r := h.next(t)

		assert.Equal(t, detect.ScanFull, r.Mode)
		assert.Equal(t, 1, r.Removed)
		assert.Zero(t, r.Total)
	})

	t.Run("runs a full scan on request", func(t *testing.T) {
		t.Parallel()

		h := startScheduler(t, schedulerHTML, nil)
		h.next(t)

		h.sched.Rescan()
		r := h.next(t)

		assert.Equal(t, detect.ScanFull, r.Mode)
		assert.Equal(t, 1, r.Total)
	})

	t.Run("logs failed mutations and keeps running", func(t *testing.T) {
		t.Parallel()

		h := startScheduler(t, schedulerHTML, nil)
		h.next(t)

		h.sched.Submit(
			tablewatch.MutationRecord{Op: tablewatch.OpRemove, XPath: "//section"},
			tablewatch.MutationRecord{Op: tablewatch.OpInsert, XPath: "//body", HTML: tableHTML("A", "1")},
		)
		r := h.next(t)

		assert.Equal(t, 2, r.Total)
	})

	t.Run("flushes a pending scan on close", func(t *testing.T) {
		t.Parallel()

		h := startScheduler(t, schedulerHTML, func(s *detect.Scheduler) {
			s.Debounce = time.Hour
		})
		h.next(t)

		h.sched.Submit(tablewatch.MutationRecord{Op: tablewatch.OpInsert, XPath: "//body", HTML: tableHTML("A", "1")})
		require.Eventually(t, func() bool { return h.sched.State() == detect.StatePending }, 5*time.Second, 5*time.Millisecond)

		require.NoError(t, h.sched.Close())
		r := h.next(t)

		assert.Equal(t, 1, r.Added)
		assert.NoError(t, <-h.done)
		h.done <- nil
	})

	t.Run("returns the context error on cancellation", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, schedulerHTML)
		s := detect.NewScheduler(doc, newDetector(), detect.NewRegistry())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := s.Run(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("delays scans to respect the minimum interval", func(t *testing.T) {
		t.Parallel()

		h := startScheduler(t, schedulerHTML, func(s *detect.Scheduler) {
			s.MinInterval = 300 * time.Millisecond
		})
		h.next(t)
		begin := time.Now()

		h.sched.Submit(tablewatch.MutationRecord{Op: tablewatch.OpInsert, XPath: "//body", HTML: tableHTML("A", "1")})
		h.next(t)

		assert.GreaterOrEqual(t, time.Since(begin), 250*time.Millisecond)
	})
}
