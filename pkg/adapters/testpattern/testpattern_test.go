package testpattern

import (
	"bytes"
	"testing"
)

func TestRender(t *testing.T) {
	seq, err := Render(12, 64, 48, false)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if seq.Count() != 12 {
		t.Errorf("expected 12 frames, got %d", seq.Count())
	}
	if seq.Width() != 64 || seq.Height() != 48 {
		t.Errorf("expected 64x48, got %dx%d", seq.Width(), seq.Height())
	}
	if seq.HasAlpha() {
		t.Error("opaque pattern should not report alpha")
	}

	// The dot moves, so consecutive frames must differ.
	if bytes.Equal(seq.FrameBytes(0), seq.FrameBytes(11)) {
		t.Error("first and last frames should differ")
	}
}

func TestRenderAlpha(t *testing.T) {
	seq, err := Render(2, 32, 32, true)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !seq.HasAlpha() {
		t.Error("alpha pattern should report alpha")
	}

	// Transparent background: at least one pixel must have zero alpha.
	buf := seq.FrameBytes(0)
	transparent := false
	for i := 3; i < len(buf); i += 4 {
		if buf[i] == 0 {
			transparent = true
			break
		}
	}
	if !transparent {
		t.Error("expected transparent background pixels")
	}
}

func TestRenderValidation(t *testing.T) {
	if _, err := Render(0, 64, 48, false); err == nil {
		t.Error("expected error for zero frames")
	}
	if _, err := Render(4, 0, 48, false); err == nil {
		t.Error("expected error for zero width")
	}
}
