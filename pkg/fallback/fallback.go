// Package fallback supervises encode attempts against an ordered list of
// backend/codec configurations, degrading compatibility settings until
// one attempt finalizes or the ladder is exhausted.
package fallback

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/user/framecast/pkg/pipeline"
	"github.com/user/framecast/pkg/ports"
	"github.com/user/framecast/pkg/vformat"
)

// Attempt is one rung of the fallback ladder: a backend paired with a
// codec configuration. The ladder is data, so adding a tier is a config
// change rather than new control flow.
type Attempt struct {
	Name    string
	Backend ports.EncoderBackend
	Format  vformat.Resolved

	// DropAlpha flattens the input's alpha channel for this attempt,
	// allowing degradation to formats that cannot carry alpha.
	DropAlpha bool
}

// StageFactory builds an encode stage bound to one backend. Injected so
// the supervisor can be tested without real encoder processes.
type StageFactory func(backend ports.EncoderBackend) pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]

// Encoder drives attempts in order.
type Encoder struct {
	newStage StageFactory
	logger   ports.Logger
}

// New creates a fallback encoder.
func New(newStage StageFactory, logger ports.Logger) *Encoder {
	return &Encoder{
		newStage: newStage,
		logger:   logger.WithComponent("fallback"),
	}
}

// Result is a successful encode plus the record of how it was reached.
type Result struct {
	pipeline.EncodeResult

	// AttemptIndex is the ladder index of the configuration that
	// succeeded; 0 means the primary path.
	AttemptIndex int
	// FallbackUsed reports a degraded (non-primary) encode.
	FallbackUsed bool
	// Format is the configuration that actually produced the file.
	Format vformat.Resolved
	// Failures lists the outcomes of every attempt before the
	// successful one, in order.
	Failures []Outcome
}

// Encode tries each attempt in order until one finalizes. Per-attempt
// failures are absorbed and recorded; only caller cancellation or ladder
// exhaustion surface as errors.
func (e *Encoder) Encode(ctx context.Context, attempts []Attempt, base pipeline.EncodeInput) (Result, error) {
	if len(attempts) == 0 {
		return Result{}, errors.New("fallback: no attempts configured")
	}

	var failures []Outcome
	for i, att := range attempts {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		if err := att.Backend.Probe(); err != nil {
			// The backend cannot be started at all; skip without
			// invoking the pipeline.
			e.logger.Warn("Attempt %d (%s) skipped: backend unavailable", i, att.Name)
			failures = append(failures, newOutcome(att.Name, KindUnavailable, err))
			continue
		}

		input := base
		input.Format = att.Format
		// The namer allocated the path once for the primary container;
		// a rung that degrades to a different container keeps the
		// collision-resistant stem and swaps the extension.
		input.OutputPath = swapExtension(base.OutputPath, att.Format.Extension())
		if att.DropAlpha {
			input.Frames = base.Frames.FlattenAlpha()
		}

		res, err := e.newStage(att.Backend).Execute(ctx, input)
		if err == nil {
			if i > 0 {
				e.logger.Warn("Encoded with fallback configuration %d (%s) after %d failed attempts",
					i, att.Name, len(failures))
			}
			return Result{
				EncodeResult: res,
				AttemptIndex: i,
				FallbackUsed: i > 0,
				Format:       att.Format,
				Failures:     failures,
			}, nil
		}

		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			// Caller abort, not an attempt failure.
			return Result{}, err
		}

		e.logger.Warn("Attempt %d (%s) failed: %s", i, att.Name, err)
		failures = append(failures, classify(att.Name, err))
	}

	return Result{}, &AggregateError{Failures: failures}
}

// swapExtension replaces the final extension of path with ext.
func swapExtension(path, ext string) string {
	if old := filepath.Ext(path); old != "" {
		path = strings.TrimSuffix(path, old)
	}
	return path + "." + ext
}
