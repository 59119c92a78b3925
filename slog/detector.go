package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tablewatch"
)

// Ensure LoggingDetector implements tablewatch.Detector.
var _ tablewatch.Detector = (*LoggingDetector)(nil)

// LoggingDetector wraps a Detector with per-pass logging. Rejected
// candidates are logged at debug level with their reason.
type LoggingDetector struct {
	next   tablewatch.Detector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next tablewatch.Detector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the pass outcome.
func (d *LoggingDetector) Detect(ctx context.Context, doc tablewatch.Document, opts tablewatch.DetectOptions) (report *tablewatch.DetectReport, err error) {
	defer func(begin time.Time) {
		if report == nil {
			d.logger.Info("detect",
				"url", doc.URL(),
				"strategy", opts.Strategy,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		rejected := 0
		for _, c := range report.Candidates {
			if c.Accepted {
				continue
			}
			rejected++
			d.logger.Debug("candidate rejected",
				"pass", report.PassID,
				"path", c.Node.Path(),
				"confidence", c.Confidence,
				"reason", c.Reason,
			)
		}
		d.logger.Info("detect",
			"pass", report.PassID,
			"url", doc.URL(),
			"platform", report.Platform,
			"strategy", report.Strategy,
			"known", len(opts.Known),
			"accepted", len(report.Results),
			"rejected", rejected,
			"duration", time.Since(begin),
			"err", report.Err,
		)
	}(time.Now())
	return d.next.Detect(ctx, doc, opts)
}
