package media

import (
	"encoding/binary"
	"math"
	"testing"
	"time"
)

func TestNewAudioTrackEmptyIsNil(t *testing.T) {
	track, err := NewAudioTrack(nil, 2, 44100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if track != nil {
		t.Error("empty sample buffer should yield a nil track")
	}
}

func TestNewAudioTrackValidation(t *testing.T) {
	if _, err := NewAudioTrack([]float32{0}, 0, 44100); err == nil {
		t.Error("expected error for zero channels")
	}
	if _, err := NewAudioTrack([]float32{0}, 1, 0); err == nil {
		t.Error("expected error for zero sample rate")
	}
}

func TestAudioTrackDuration(t *testing.T) {
	track, err := NewAudioTrack(make([]float32, 44100*2), 2, 44100)
	if err != nil {
		t.Fatalf("NewAudioTrack failed: %v", err)
	}

	if track.FrameCount() != 44100 {
		t.Errorf("expected 44100 sample frames, got %d", track.FrameCount())
	}
	if track.Duration() != time.Second {
		t.Errorf("expected 1s, got %v", track.Duration())
	}
}

func TestWithDurationPadsWithSilence(t *testing.T) {
	track, err := NewAudioTrack([]float32{0.5, -0.5}, 1, 1000)
	if err != nil {
		t.Fatalf("NewAudioTrack failed: %v", err)
	}

	padded := track.WithDuration(10 * time.Millisecond)
	if padded.FrameCount() != 10 {
		t.Fatalf("expected 10 frames, got %d", padded.FrameCount())
	}
	if padded.Samples[0] != 0.5 || padded.Samples[1] != -0.5 {
		t.Error("original samples should be preserved")
	}
	for i := 2; i < len(padded.Samples); i++ {
		if padded.Samples[i] != 0 {
			t.Fatalf("padding sample %d is %v, want 0", i, padded.Samples[i])
		}
	}
}

func TestWithDurationTrims(t *testing.T) {
	track, err := NewAudioTrack(make([]float32, 2000), 2, 1000)
	if err != nil {
		t.Fatalf("NewAudioTrack failed: %v", err)
	}

	trimmed := track.WithDuration(250 * time.Millisecond)
	if trimmed.FrameCount() != 250 {
		t.Errorf("expected 250 frames, got %d", trimmed.FrameCount())
	}
}

func TestWithDurationExactIsNoop(t *testing.T) {
	track, err := NewAudioTrack(make([]float32, 1000), 1, 1000)
	if err != nil {
		t.Fatalf("NewAudioTrack failed: %v", err)
	}
	if track.WithDuration(time.Second) != track {
		t.Error("matching duration should return the receiver")
	}
}

func TestPCMBytesLittleEndianF32(t *testing.T) {
	track, err := NewAudioTrack([]float32{1.0, -0.25}, 1, 8000)
	if err != nil {
		t.Fatalf("NewAudioTrack failed: %v", err)
	}

	buf := track.PCMBytes()
	if len(buf) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(buf))
	}

	first := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4]))
	second := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8]))
	if first != 1.0 || second != -0.25 {
		t.Errorf("round-trip mismatch: %v, %v", first, second)
	}
}
