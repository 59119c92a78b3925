package tablewatch

import (
	"context"
	"time"
)

// Strategy selects the detection algorithm for a single pass.
type Strategy string

// Detection strategies.
const (
	// StrategyStandard runs every format parser with wrapper filtering.
	StrategyStandard Strategy = "standard"

	// StrategyLegacy only looks at markup tables and pipe tables in code
	// blocks, deduplicating by containment alone.
	StrategyLegacy Strategy = "legacy"

	// StrategyCombined runs both strategies concurrently and merges their
	// results, preferring standard results on overlap.
	StrategyCombined Strategy = "combined"
)

// ParseStrategy converts a name to a Strategy. An empty name selects
// StrategyStandard.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyStandard:
		return StrategyStandard, nil
	case StrategyLegacy:
		return StrategyLegacy, nil
	case StrategyCombined:
		return StrategyCombined, nil
	}
	return "", Errorf(EINVALID, "unknown strategy %q", name)
}

// DetectOptions configures a detection pass.
type DetectOptions struct {
	Strategy Strategy

	// Known holds anchors of tables that are already registered. Candidates
	// at or inside a known anchor are skipped, and candidates containing
	// one are treated as wrappers.
	Known []Node
}

// DetectReport is the outcome of one detection pass.
type DetectReport struct {
	PassID   string
	Platform Platform
	Strategy Strategy
	Title    string
	Duration time.Duration

	// Results are the accepted tables in discovery order.
	Results []*TableDetectionResult

	// Candidates holds every candidate examined, accepted or not.
	Candidates []*Candidate

	// Err is set when the platform scan failed and the pass degraded to an
	// empty result set.
	Err error
}

// Detector runs the detection pipeline over a document.
type Detector interface {
	// Detect runs one pass. Only cancellation and invalid options are
	// returned as errors; a failing platform scan yields an empty report.
	Detect(ctx context.Context, doc Document, opts DetectOptions) (*DetectReport, error)
}
