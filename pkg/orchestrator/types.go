package orchestrator

import (
	"time"

	"github.com/user/framecast/pkg/fallback"
	"github.com/user/framecast/pkg/media"
	"github.com/user/framecast/pkg/vformat"
)

// EncodeRequest is the configuration for one synthesis call. All fields
// arrive from the host as an in-memory value; there is no network or CLI
// surface in the engine itself.
type EncodeRequest struct {
	FrameRate      float64
	Format         vformat.Format
	PixFmt         vformat.PixelFormat
	CRF            int
	FilenamePrefix string
	SaveMetadata   bool
	TrimToAudio    bool
	Pingpong       bool
	// SaveOutput selects the persistent output root over the scratch
	// root.
	SaveOutput bool
}

// DefaultRequest returns an EncodeRequest with default values.
func DefaultRequest() EncodeRequest {
	return EncodeRequest{
		FrameRate:      24.0,
		Format:         vformat.FormatAuto,
		PixFmt:         vformat.PixFmtAuto,
		CRF:            19,
		FilenamePrefix: "framecast",
		SaveMetadata:   true,
		SaveOutput:     true,
	}
}

// VideoHandle tags the produced artifact for downstream consumers that
// expect a "video" typed value.
type VideoHandle struct {
	Path      string
	Container string
}

// EncodeResult describes the synthesized artifact. The engine holds no
// reference to it after returning.
type EncodeResult struct {
	Path        string
	Container   string
	VideoCodec  string
	AudioCodec  string
	PixelFormat vformat.PixelFormat
	Duration    time.Duration
	FrameCount  int
	FileSize    int64

	// AttemptIndex is the fallback ladder index that produced the file;
	// 0 is the clean primary path.
	AttemptIndex int
	// FallbackUsed reports a degraded encode.
	FallbackUsed bool
	// Attempts is the number of configurations consumed, including the
	// successful one.
	Attempts int
	// Failures lists the failed attempts that preceded success.
	Failures []fallback.Outcome

	// MetadataWritten reports whether creation-time metadata was
	// embedded; a stamping failure clears it and adds a warning.
	MetadataWritten bool
	Warnings        []string

	Handle VideoHandle
}

// Error types crossing the engine boundary. Per-attempt failures stay
// internal to the fallback supervisor.
type (
	// ValidationError reports a malformed or incompatible request.
	ValidationError = media.ValidationError
	// AggregateError reports that every fallback attempt failed.
	AggregateError = fallback.AggregateError
)
