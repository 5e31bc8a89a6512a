// Package reconcile implements the timing reconciliation stage: it
// produces the final frame sequence and audio buffer from the raw streams
// and the duration policy.
package reconcile

import (
	"context"
	"fmt"
	"math"

	"github.com/user/framecast/pkg/media"
	"github.com/user/framecast/pkg/pipeline"
	"github.com/user/framecast/pkg/ports"
)

// Stage reconciles video and audio durations.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new reconcile stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{logger: logger.WithComponent("reconcile")}
}

// Execute applies pingpong extension first, then the duration policy:
//
//   - no audio: the video duration governs and audio stays absent
//   - trim_to_audio: both streams are cropped to the shorter duration
//   - otherwise: the video duration governs; audio is zero-padded or
//     truncated to match, never the other way around
func (s *Stage) Execute(ctx context.Context, input pipeline.ReconcileInput) (pipeline.ReconcileResult, error) {
	result := pipeline.ReconcileResult{}

	if input.Frames == nil || input.Frames.Count() == 0 {
		return result, &media.ValidationError{Reason: "frame sequence is empty, nothing to encode"}
	}
	if input.FrameRate <= 0 {
		return result, &media.ValidationError{Reason: fmt.Sprintf(
			"frame rate must be positive, got %g", input.FrameRate)}
	}

	frames := input.Frames
	if input.Pingpong {
		frames = frames.Pingpong()
		s.logger.Debug("Extended %d frames to %d via pingpong", input.Frames.Count(), frames.Count())
	}

	audio := input.Audio
	if audio != nil && len(audio.Samples) == 0 {
		// Zero-length audio is treated as absent.
		audio = nil
	}

	videoDur := frames.Duration(input.FrameRate)

	if audio == nil {
		result.Frames = frames
		result.Duration = videoDur
		return result, nil
	}

	if input.TrimToAudio {
		audioDur := audio.Duration()
		if audioDur < videoDur {
			keep := int(math.Floor(audioDur.Seconds() * input.FrameRate))
			if keep < 1 {
				keep = 1
			}
			frames = frames.Truncate(keep)
			videoDur = frames.Duration(input.FrameRate)
			s.logger.Debug("Trimmed video to %d frames to match audio", keep)
		}
		// Match the audio buffer to the (possibly cropped) video exactly.
		audio = audio.WithDuration(videoDur)
		result.Frames = frames
		result.Audio = audio
		result.Duration = videoDur
		return result, nil
	}

	// Video governs: pad shorter audio with silence, truncate longer audio.
	if audio.Duration() != videoDur {
		audio = audio.WithDuration(videoDur)
	}
	result.Frames = frames
	result.Audio = audio
	result.Duration = videoDur
	return result, nil
}

// Ensure Stage satisfies the pipeline contract.
var _ pipeline.Stage[pipeline.ReconcileInput, pipeline.ReconcileResult] = (*Stage)(nil)
