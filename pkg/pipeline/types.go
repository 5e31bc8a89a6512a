package pipeline

import (
	"time"

	"github.com/user/framecast/pkg/media"
	"github.com/user/framecast/pkg/ports"
	"github.com/user/framecast/pkg/vformat"
)

// =============================================================================
// Reconcile Stage Types
// =============================================================================

// ReconcileInput contains the raw streams and the duration policy.
type ReconcileInput struct {
	Frames      *media.FrameSequence
	Audio       *media.AudioTrack // nil for silent video
	FrameRate   float64
	TrimToAudio bool // crop both streams to the shorter duration
	Pingpong    bool // extend frames forward-then-backward before comparing
}

// ReconcileResult contains the final streams handed to the encoder.
type ReconcileResult struct {
	Frames   *media.FrameSequence
	Audio    *media.AudioTrack // nil when absent
	Duration time.Duration
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains one encode attempt's reconciled streams and codec
// parameters.
type EncodeInput struct {
	Frames     *media.FrameSequence
	Audio      *media.AudioTrack
	FrameRate  float64
	Format     vformat.Resolved
	CRF        int
	OutputPath string

	// CreationTime, when non-zero, is embedded as container metadata
	// during the mux pass.
	CreationTime time.Time
	Metadata     map[string]string
}

// Spec converts the input into the backend-facing session spec.
func (in EncodeInput) Spec() ports.EncodeSpec {
	return ports.EncodeSpec{
		Width:        in.Frames.Width(),
		Height:       in.Frames.Height(),
		FrameRate:    in.FrameRate,
		HasAlpha:     in.Frames.HasAlpha(),
		Format:       in.Format,
		CRF:          in.CRF,
		OutputPath:   in.OutputPath,
		CreationTime: in.CreationTime,
		Metadata:     in.Metadata,
	}
}

// EncodeResult describes a finalized container file.
type EncodeResult struct {
	Path       string
	Duration   time.Duration
	FrameCount int
	FileSize   int64
}
