package media

import (
	"image"
	"image/color"
	"testing"
)

// solidFrame creates a frame filled with a single color.
func solidFrame(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func sequence(t *testing.T, count, width, height int, hasAlpha bool) *FrameSequence {
	t.Helper()
	frames := make([]*image.NRGBA, count)
	for i := range frames {
		frames[i] = solidFrame(width, height, color.NRGBA{R: uint8(i), G: 0x80, B: 0x40, A: 0xFF})
	}
	seq, err := NewFrameSequence(frames, hasAlpha)
	if err != nil {
		t.Fatalf("NewFrameSequence failed: %v", err)
	}
	return seq
}

func TestNewFrameSequenceEmpty(t *testing.T) {
	_, err := NewFrameSequence(nil, false)
	if err == nil {
		t.Fatal("expected error for empty sequence")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestNewFrameSequenceMismatchedDimensions(t *testing.T) {
	frames := []*image.NRGBA{
		solidFrame(64, 48, color.NRGBA{A: 0xFF}),
		solidFrame(64, 50, color.NRGBA{A: 0xFF}),
	}
	_, err := NewFrameSequence(frames, false)
	if err == nil {
		t.Fatal("expected error for mismatched frame dimensions")
	}
}

func TestAdjustEvenNoChangeForEvenDimensions(t *testing.T) {
	seq := sequence(t, 3, 64, 48, false)
	if adjusted := seq.AdjustEven(); adjusted != seq {
		t.Error("even dimensions should return the receiver unchanged")
	}
}

func TestAdjustEvenResizesOddDimensions(t *testing.T) {
	seq := sequence(t, 2, 65, 49, false)
	adjusted := seq.AdjustEven()

	if adjusted.Width() != 64 || adjusted.Height() != 48 {
		t.Errorf("expected 64x48, got %dx%d", adjusted.Width(), adjusted.Height())
	}
	if adjusted.Count() != seq.Count() {
		t.Errorf("frame count changed: %d -> %d", seq.Count(), adjusted.Count())
	}
}

func TestPingpong(t *testing.T) {
	seq := sequence(t, 4, 8, 8, false)
	extended := seq.Pingpong()

	if extended.Count() != 7 {
		t.Fatalf("expected 2*4-1=7 frames, got %d", extended.Count())
	}

	// The loop returns to its starting frame.
	if extended.Frame(0) != extended.Frame(extended.Count()-1) {
		t.Error("last frame should be the first frame")
	}

	// Palindrome: frame i and frame len-1-i are the same image.
	for i := 0; i < extended.Count(); i++ {
		j := extended.Count() - 1 - i
		if extended.Frame(i) != extended.Frame(j) {
			t.Errorf("frames %d and %d should be shared", i, j)
		}
	}

	// Endpoints are not doubled.
	if extended.Frame(3) == extended.Frame(4) {
		t.Error("final forward frame should not repeat")
	}
}

func TestPingpongSingleFrame(t *testing.T) {
	seq := sequence(t, 1, 8, 8, false)
	if seq.Pingpong().Count() != 1 {
		t.Error("single frame sequence should be unchanged by pingpong")
	}
}

func TestTruncate(t *testing.T) {
	seq := sequence(t, 10, 8, 8, false)

	if got := seq.Truncate(4).Count(); got != 4 {
		t.Errorf("expected 4 frames, got %d", got)
	}
	if seq.Truncate(20) != seq {
		t.Error("truncate beyond length should return the receiver")
	}
}

func TestFlattenAlpha(t *testing.T) {
	seq := sequence(t, 2, 8, 8, true)
	flat := seq.FlattenAlpha()

	if flat.HasAlpha() {
		t.Error("flattened sequence should not report alpha")
	}
	if flat.Frame(0) != seq.Frame(0) {
		t.Error("flatten should share frame data")
	}
	if flat.FlattenAlpha() != flat {
		t.Error("flattening twice should be a no-op")
	}
}

func TestFrameBytesRGBA(t *testing.T) {
	seq := sequence(t, 1, 4, 2, true)
	buf := seq.FrameBytes(0)

	if len(buf) != 4*2*4 {
		t.Fatalf("expected %d bytes, got %d", 4*2*4, len(buf))
	}
	if len(buf) != seq.BytesPerFrame() {
		t.Errorf("FrameBytes length %d disagrees with BytesPerFrame %d", len(buf), seq.BytesPerFrame())
	}
	// First pixel: R=0 (frame index), G=0x80, B=0x40, A=0xFF.
	if buf[1] != 0x80 || buf[2] != 0x40 || buf[3] != 0xFF {
		t.Errorf("unexpected first pixel: % x", buf[:4])
	}
}

func TestFrameBytesRGB24DropsAlpha(t *testing.T) {
	seq := sequence(t, 1, 4, 2, false)
	buf := seq.FrameBytes(0)

	if len(buf) != 4*2*3 {
		t.Fatalf("expected %d bytes, got %d", 4*2*3, len(buf))
	}
	if len(buf) != seq.BytesPerFrame() {
		t.Errorf("FrameBytes length %d disagrees with BytesPerFrame %d", len(buf), seq.BytesPerFrame())
	}
	if buf[0] != 0x00 || buf[1] != 0x80 || buf[2] != 0x40 {
		t.Errorf("unexpected first pixel: % x", buf[:3])
	}
	// Second pixel starts right after, no alpha byte in between.
	if buf[3] != 0x00 || buf[4] != 0x80 || buf[5] != 0x40 {
		t.Errorf("unexpected second pixel: % x", buf[3:6])
	}
}

func TestDuration(t *testing.T) {
	seq := sequence(t, 48, 8, 8, false)
	if got := seq.Duration(24.0).Seconds(); got != 2.0 {
		t.Errorf("expected 2s, got %v", got)
	}
}
