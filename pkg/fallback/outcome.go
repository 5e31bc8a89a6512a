package fallback

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an attempt failure.
type Kind string

const (
	// KindUnavailable means the backend could not be located or started.
	KindUnavailable Kind = "backend unavailable"
	// KindTimeout means the attempt exceeded its time budget and the
	// backend task was terminated.
	KindTimeout Kind = "timeout"
	// KindEncodeFailure means the backend started but reported an error.
	KindEncodeFailure Kind = "encode failure"
)

// Outcome records one failed attempt.
type Outcome struct {
	Attempt string
	Kind    Kind
	Err     error
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s: %s: %s", o.Attempt, o.Kind, o.Err)
}

func newOutcome(attempt string, kind Kind, err error) Outcome {
	return Outcome{Attempt: attempt, Kind: kind, Err: err}
}

// classify maps a pipeline error to an outcome kind.
func classify(attempt string, err error) Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return newOutcome(attempt, KindTimeout, err)
	}
	return newOutcome(attempt, KindEncodeFailure, err)
}

// AggregateError reports that every configured attempt failed. It lists
// each attempt's failure reason in order.
type AggregateError struct {
	Failures []Outcome
}

func (e *AggregateError) Error() string {
	reasons := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		reasons[i] = f.String()
	}
	return fmt.Sprintf("all %d encode attempts failed: [%s]",
		len(e.Failures), strings.Join(reasons, "; "))
}
