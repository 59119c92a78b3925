package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/tablewatch"
	"github.com/fwojciec/tablewatch/mock"
	twslog "github.com/fwojciec/tablewatch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc() *mock.Document {
	return &mock.Document{URLFn: func() string { return "https://chatgpt.com/c/1" }}
}

func TestLoggingDetector_Detect(t *testing.T) {
	t.Parallel()

	t.Run("logs pass summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := &tablewatch.DetectReport{
			PassID:   "pass-1",
			Platform: tablewatch.PlatformChatGPT,
			Strategy: tablewatch.StrategyStandard,
			Results:  []*tablewatch.TableDetectionResult{{Table: &tablewatch.TableData{ID: "tbl-1"}}},
			Candidates: []*tablewatch.Candidate{
				{Accepted: true, Node: &mock.Node{}},
				{Reason: "wraps 1 table(s)", Node: &mock.Node{}},
			},
		}
		inner := &mock.Detector{
			DetectFn: func(ctx context.Context, doc tablewatch.Document, opts tablewatch.DetectOptions) (*tablewatch.DetectReport, error) {
				return want, nil
			},
		}

		d := twslog.NewLoggingDetector(inner, logger)
		got, err := d.Detect(context.Background(), testDoc(), tablewatch.DetectOptions{})

		require.NoError(t, err)
		assert.Same(t, want, got)
		output := buf.String()
		assert.Contains(t, output, "msg=detect")
		assert.Contains(t, output, "pass=pass-1")
		assert.Contains(t, output, "platform=chatgpt")
		assert.Contains(t, output, "accepted=1")
		assert.Contains(t, output, "rejected=1")
		assert.NotContains(t, output, "candidate rejected")
	})

	t.Run("logs rejection reasons at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Detector{
			DetectFn: func(ctx context.Context, doc tablewatch.Document, opts tablewatch.DetectOptions) (*tablewatch.DetectReport, error) {
				return &tablewatch.DetectReport{
					Candidates: []*tablewatch.Candidate{{
						Node:   &mock.Node{PathFn: func() string { return "/html/body/div" }},
						Reason: "wraps 1 table(s)",
					}},
				}, nil
			},
		}

		d := twslog.NewLoggingDetector(inner, logger)
		_, err := d.Detect(context.Background(), testDoc(), tablewatch.DetectOptions{})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "candidate rejected")
		assert.Contains(t, output, "path=/html/body/div")
		assert.Contains(t, output, "reason=\"wraps 1 table(s)\"")
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Detector{
			DetectFn: func(ctx context.Context, doc tablewatch.Document, opts tablewatch.DetectOptions) (*tablewatch.DetectReport, error) {
				return nil, context.Canceled
			},
		}

		d := twslog.NewLoggingDetector(inner, logger)
		_, err := d.Detect(context.Background(), testDoc(), tablewatch.DetectOptions{Strategy: tablewatch.StrategyLegacy})

		require.ErrorIs(t, err, context.Canceled)
		output := buf.String()
		assert.Contains(t, output, "strategy=legacy")
		assert.Contains(t, output, "err=\"context canceled\"")
	})
}
