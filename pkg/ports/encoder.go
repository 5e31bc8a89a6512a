package ports

import (
	"context"
	"time"

	"github.com/user/framecast/pkg/media"
	"github.com/user/framecast/pkg/vformat"
)

// EncodeSpec configures one encode session.
type EncodeSpec struct {
	Width     int
	Height    int
	FrameRate float64
	HasAlpha  bool // input pipe layout: rgba when true, rgb24 otherwise
	Format    vformat.Resolved
	CRF       int // quality factor, lower is higher quality

	// OutputPath is the final artifact path. The session owns any
	// intermediate files and removes them on Close.
	OutputPath string

	// CreationTime, when non-zero, is embedded as container-level
	// metadata during finalization.
	CreationTime time.Time
	// Metadata holds additional key/value tags embedded alongside the
	// creation time.
	Metadata map[string]string
}

// EncoderBackend abstracts one out-of-process video encoder.
type EncoderBackend interface {
	// Name identifies the backend in attempt logs.
	Name() string

	// Probe reports whether the backend can be located and started at
	// all, without encoding anything.
	Probe() error

	// Begin starts an encode session. The context bounds the whole
	// session; cancellation terminates the underlying process.
	Begin(ctx context.Context, spec EncodeSpec) (EncodeSession, error)
}

// EncodeSession is one in-flight encode. Frames are streamed in strict
// sequence order, then the video stream is finished, then audio is muxed.
// Close releases the session's temporary files and is safe to call on
// every exit path, including after a failure.
type EncodeSession interface {
	// WriteFrame streams one frame's raw pixel bytes to the encoder.
	WriteFrame(frame []byte) error

	// FinishVideo closes the frame stream and waits for the encoder to
	// complete the video stream.
	FinishVideo() error

	// MuxAudio attaches the audio track and finalizes the container at
	// the configured output path. A nil track finalizes a silent video.
	MuxAudio(ctx context.Context, track *media.AudioTrack) error

	// Close removes intermediate files. After a failure it also removes
	// any partial output so no artifacts are left behind.
	Close() error
}
