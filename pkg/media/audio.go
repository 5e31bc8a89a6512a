package media

import (
	"encoding/binary"
	"math"
	"time"
)

// AudioTrack is an interleaved waveform buffer plus its sample rate.
// Samples are float32 in [-1, 1], interleaved by channel. A nil track is
// the valid "silent video" state.
type AudioTrack struct {
	Samples    []float32
	Channels   int
	SampleRate int
}

// NewAudioTrack validates and wraps a waveform buffer. A zero-length
// buffer returns nil: empty audio is treated as absent.
func NewAudioTrack(samples []float32, channels, sampleRate int) (*AudioTrack, error) {
	if len(samples) == 0 {
		return nil, nil
	}
	if channels < 1 {
		return nil, &ValidationError{Reason: "audio channel count must be positive"}
	}
	if sampleRate <= 0 {
		return nil, &ValidationError{Reason: "audio sample rate must be positive"}
	}
	return &AudioTrack{Samples: samples, Channels: channels, SampleRate: sampleRate}, nil
}

// FrameCount returns the number of sample frames (one sample per channel).
func (t *AudioTrack) FrameCount() int {
	return len(t.Samples) / t.Channels
}

// Duration returns the playback duration of the buffer.
func (t *AudioTrack) Duration() time.Duration {
	return time.Duration(float64(t.FrameCount()) / float64(t.SampleRate) * float64(time.Second))
}

// WithDuration returns a track trimmed or zero-padded to exactly d.
// Padding appends zero-amplitude samples; trimming drops trailing samples.
// The sample buffer is copied only when a change is required.
func (t *AudioTrack) WithDuration(d time.Duration) *AudioTrack {
	want := int(math.Round(d.Seconds() * float64(t.SampleRate)))
	have := t.FrameCount()
	if want == have {
		return t
	}

	samples := make([]float32, want*t.Channels)
	copy(samples, t.Samples)
	return &AudioTrack{Samples: samples, Channels: t.Channels, SampleRate: t.SampleRate}
}

// PCMBytes returns the waveform as little-endian f32le bytes, the layout
// the mux pass reads from its input pipe.
func (t *AudioTrack) PCMBytes() []byte {
	out := make([]byte, len(t.Samples)*4)
	for i, s := range t.Samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}
