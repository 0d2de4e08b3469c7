// Package pipeline drives one calculation: a generate call followed by a
// synthesize call, correlated by a trace id and short-circuiting on the
// first failure.
//
// The stages are sequential on purpose: synthesis input is the
// explanation text that only exists once generation completes.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hollowaydev/talkulator/internal/remote"
)

// Outcome is the terminal success result of one calculation.
// DisplayText is whatever the generation service said, verbatim.
// AudioDataURL is the opaque playable reference from synthesis.
type Outcome struct {
	TraceID      string
	DisplayText  string
	AudioDataURL string
	AudioLength  float64
}

// NewTraceID mints the correlation id for one user-initiated evaluation.
func NewTraceID() string {
	return uuid.NewString()
}

// Evaluate runs both stages for the given expression snapshot. Any stage
// failure returns a single terminal error wrapping one of the remote
// sentinel errors; no partial outcome is ever returned.
func Evaluate(ctx context.Context, client *remote.Client, expression, traceID string) (*Outcome, error) {
	start := time.Now()

	gen, err := client.Generate(ctx, expression, traceID)
	if err != nil {
		slog.Debug("generate stage failed", "trace_id", traceID, "err", err)
		return nil, err
	}

	syn, err := client.Synthesize(ctx, gen.Explanation, traceID)
	if err != nil {
		slog.Debug("synthesize stage failed", "trace_id", traceID, "err", err)
		return nil, err
	}

	slog.Debug("calculation complete",
		"trace_id", traceID,
		"display", gen.Display,
		"audio_len", syn.Length,
		"took", time.Since(start))

	return &Outcome{
		TraceID:      traceID,
		DisplayText:  gen.Display,
		AudioDataURL: syn.DataURL,
		AudioLength:  syn.Length,
	}, nil
}
