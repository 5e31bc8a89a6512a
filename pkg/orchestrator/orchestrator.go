// Package orchestrator coordinates one synthesis request: format
// resolution, timing reconciliation, output naming, fallback-supervised
// encoding and metadata stamping.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/user/framecast/pkg/fallback"
	"github.com/user/framecast/pkg/media"
	"github.com/user/framecast/pkg/naming"
	"github.com/user/framecast/pkg/pipeline"
	"github.com/user/framecast/pkg/ports"
	"github.com/user/framecast/pkg/vformat"
)

// LadderFunc builds the attempt ladder for a resolved primary format.
type LadderFunc func(primary vformat.Resolved, hasAlpha bool) []fallback.Attempt

// Synthesizer is the synthesis engine. One call to Synthesize processes
// one request; independent requests may run concurrently, sharing only
// the namer's per-prefix counters.
type Synthesizer struct {
	reconcile pipeline.Stage[pipeline.ReconcileInput, pipeline.ReconcileResult]
	encoder   *fallback.Encoder
	ladder    LadderFunc
	namer     *naming.Namer
	stamper   ports.MetadataStamper
	logger    ports.Logger

	now func() time.Time
}

// New creates a Synthesizer.
func New(
	reconcile pipeline.Stage[pipeline.ReconcileInput, pipeline.ReconcileResult],
	encoder *fallback.Encoder,
	ladder LadderFunc,
	namer *naming.Namer,
	stamper ports.MetadataStamper,
	logger ports.Logger,
) *Synthesizer {
	return &Synthesizer{
		reconcile: reconcile,
		encoder:   encoder,
		ladder:    ladder,
		namer:     namer,
		stamper:   stamper,
		logger:    logger,
		now:       time.Now,
	}
}

// Synthesize runs the full pipeline and returns the encode result, or a
// ValidationError for a malformed request, or an AggregateError when
// every fallback attempt failed. All other per-attempt failures are
// absorbed internally.
func (s *Synthesizer) Synthesize(ctx context.Context, req EncodeRequest, frames *media.FrameSequence, audio *media.AudioTrack) (EncodeResult, error) {
	result := EncodeResult{}

	if err := validateRequest(req, frames); err != nil {
		return result, err
	}

	resolved, err := vformat.Resolve(req.Format, req.PixFmt, frames.HasAlpha())
	if err != nil {
		return result, err
	}
	s.logger.Info("Resolved format: %s container, %s, %s",
		resolved.Container, resolved.VideoCodec, resolved.PixelFormat)

	adjusted := frames.AdjustEven()
	if adjusted != frames {
		s.logger.Info("Adjusted frame dimensions from %dx%d to %dx%d",
			frames.Width(), frames.Height(), adjusted.Width(), adjusted.Height())
	}

	rec, err := s.reconcile.Execute(ctx, pipeline.ReconcileInput{
		Frames:      adjusted,
		Audio:       audio,
		FrameRate:   req.FrameRate,
		TrimToAudio: req.TrimToAudio,
		Pingpong:    req.Pingpong,
	})
	if err != nil {
		return result, fmt.Errorf("reconcile: %w", err)
	}
	s.logger.Info("Reconciled %d frames, duration %.3fs",
		rec.Frames.Count(), rec.Duration.Seconds())

	path, err := s.namer.Next(req.FilenamePrefix, req.SaveOutput, resolved.Extension())
	if err != nil {
		return result, fmt.Errorf("allocate output path: %w", err)
	}

	createdAt := s.now()
	base := pipeline.EncodeInput{
		Frames:     rec.Frames,
		Audio:      rec.Audio,
		FrameRate:  req.FrameRate,
		Format:     resolved,
		CRF:        req.CRF,
		OutputPath: path,
	}
	if req.SaveMetadata {
		base.CreationTime = createdAt
		base.Metadata = map[string]string{
			"encoder": "framecast",
			"comment": fmt.Sprintf("frames=%d duration=%.3fs", rec.Frames.Count(), rec.Duration.Seconds()),
		}
	}

	fres, err := s.encoder.Encode(ctx, s.ladder(resolved, frames.HasAlpha()), base)
	if err != nil {
		return result, err
	}

	result = EncodeResult{
		Path:            fres.Path,
		Container:       fres.Format.Container,
		VideoCodec:      fres.Format.VideoCodec,
		AudioCodec:      fres.Format.AudioCodec,
		PixelFormat:     fres.Format.PixelFormat,
		Duration:        fres.Duration,
		FrameCount:      fres.FrameCount,
		FileSize:        fres.FileSize,
		AttemptIndex:    fres.AttemptIndex,
		FallbackUsed:    fres.FallbackUsed,
		Attempts:        fres.AttemptIndex + 1,
		Failures:        fres.Failures,
		MetadataWritten: req.SaveMetadata,
		Handle:          VideoHandle{Path: fres.Path, Container: fres.Format.Container},
	}

	if req.SaveMetadata && s.stamper != nil && s.stamper.Supports(fres.Format.Container) {
		meta := ports.VideoMetadata{
			CreatedAt:  createdAt,
			FrameCount: fres.FrameCount,
			Duration:   fres.Duration,
			VideoCodec: fres.Format.VideoCodec,
			AudioCodec: fres.Format.AudioCodec,
		}
		if err := s.stamper.Stamp(fres.Path, meta); err != nil {
			// A metadata failure downgrades to a warning; the encode
			// itself stands.
			s.logger.Warn("Metadata write failed: %s", err)
			result.MetadataWritten = false
			result.Warnings = append(result.Warnings, fmt.Sprintf("metadata write failed: %s", err))
		}
	}

	s.logger.Info("Output saved to %s", result.Path)
	return result, nil
}

// validateRequest fails fast before any encoder backend is involved.
func validateRequest(req EncodeRequest, frames *media.FrameSequence) error {
	if frames == nil || frames.Count() == 0 {
		return &media.ValidationError{Reason: "frame sequence is empty, nothing to encode"}
	}
	if req.FrameRate <= 0 {
		return &media.ValidationError{Reason: fmt.Sprintf(
			"frame rate must be positive, got %g", req.FrameRate)}
	}
	if req.CRF < 0 || req.CRF > 51 {
		return &media.ValidationError{Reason: fmt.Sprintf(
			"crf must be between 0 and 51, got %d", req.CRF)}
	}
	return nil
}
