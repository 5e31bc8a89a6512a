// Package encode implements the encode pipeline stage: it drives one
// encoder backend through a linear state machine, feeding frames, muxing
// audio and finalizing the container.
package encode

import (
	"context"
	"fmt"
	"time"

	"github.com/user/framecast/pkg/media"
	"github.com/user/framecast/pkg/pipeline"
	"github.com/user/framecast/pkg/ports"
)

// State identifies the pipeline's position in one encode attempt.
type State int

const (
	StateInit State = iota
	StateEncoding
	StateMuxing
	StateFinalized
	StateFailed
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateEncoding:
		return "encoding"
	case StateMuxing:
		return "muxing"
	case StateFinalized:
		return "finalized"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stage runs one encode attempt against a backend. A per-attempt timeout
// bounds the whole encoding+muxing span; exceeding it terminates the
// backend task and fails the attempt with context.DeadlineExceeded in its
// error chain.
type Stage struct {
	backend ports.EncoderBackend
	fs      ports.FileSystem
	logger  ports.Logger
	timeout time.Duration
}

// NewStage creates an encode stage for the given backend.
func NewStage(backend ports.EncoderBackend, fs ports.FileSystem, logger ports.Logger, timeout time.Duration) *Stage {
	return &Stage{
		backend: backend,
		fs:      fs,
		logger:  logger.WithComponent("encode"),
		timeout: timeout,
	}
}

// Execute runs INIT -> ENCODING -> MUXING -> FINALIZED. Any failure path
// removes partial output before returning, so no artifacts are left
// behind for the next fallback attempt to trip over.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{}

	// INIT: validate the resolved format against the reconciled frames.
	if err := s.validate(input); err != nil {
		return result, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	state := StateEncoding
	s.logger.Debug("State %s: %d frames to %s", state, input.Frames.Count(), input.OutputPath)

	session, err := s.backend.Begin(ctx, input.Spec())
	if err != nil {
		return result, s.fail(ctx, StateEncoding, input, fmt.Errorf("begin encode: %w", err))
	}
	defer session.Close()

	for i := 0; i < input.Frames.Count(); i++ {
		select {
		case <-ctx.Done():
			return result, s.fail(ctx, state, input, ctx.Err())
		default:
		}
		if err := session.WriteFrame(input.Frames.FrameBytes(i)); err != nil {
			return result, s.fail(ctx, state, input, fmt.Errorf("write frame %d: %w", i, err))
		}
	}

	if err := session.FinishVideo(); err != nil {
		return result, s.fail(ctx, state, input, fmt.Errorf("finish video: %w", err))
	}

	state = StateMuxing
	s.logger.Debug("State %s: audio codec %s", state, input.Format.AudioCodec)

	if err := session.MuxAudio(ctx, input.Audio); err != nil {
		return result, s.fail(ctx, state, input, fmt.Errorf("mux audio: %w", err))
	}

	state = StateFinalized
	s.logger.Debug("State %s: %s", state, input.OutputPath)

	result.Path = input.OutputPath
	result.FrameCount = input.Frames.Count()
	result.Duration = input.Frames.Duration(input.FrameRate)
	if size, err := s.fs.Size(input.OutputPath); err == nil {
		result.FileSize = size
	}
	return result, nil
}

// validate is the INIT state: even dimensions and a legal codec/pix_fmt
// pairing, checked before the backend process is started.
func (s *Stage) validate(input pipeline.EncodeInput) error {
	if input.Frames == nil || input.Frames.Count() == 0 {
		return &media.ValidationError{Reason: "no frames to encode"}
	}
	w, h := input.Frames.Width(), input.Frames.Height()
	if w%2 != 0 || h%2 != 0 {
		return &media.ValidationError{Reason: fmt.Sprintf(
			"frame dimensions %dx%d must be even", w, h)}
	}
	if err := input.Format.Validate(); err != nil {
		return err
	}
	if input.Frames.HasAlpha() && !input.Format.Alpha() {
		return &media.ValidationError{Reason: fmt.Sprintf(
			"input has an alpha channel but pix_fmt %s does not carry one", input.Format.PixelFormat)}
	}
	return nil
}

// fail transitions to FAILED: the partial output file is deleted and a
// timeout is surfaced as such rather than as a generic write error.
func (s *Stage) fail(ctx context.Context, from State, input pipeline.EncodeInput, err error) error {
	s.logger.Debug("State %s -> %s: %s", from, StateFailed, err)

	if rmErr := s.fs.Remove(input.OutputPath); rmErr != nil {
		s.logger.Warn("Could not remove partial output %s: %s", input.OutputPath, rmErr)
	}

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("attempt timed out in state %s: %w", from, context.DeadlineExceeded)
	}
	return err
}

// Ensure Stage satisfies the pipeline contract.
var _ pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] = (*Stage)(nil)
