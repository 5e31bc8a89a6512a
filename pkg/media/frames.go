// Package media defines the in-memory video and audio values exchanged
// between the synthesis stages.
package media

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/image/draw"
)

// FrameSequence is an ordered sequence of fixed-shape frames. All frames
// share the same width, height and channel count. The alpha fact is
// resolved once at ingestion and carried as a single boolean instead of
// being re-inspected per frame.
type FrameSequence struct {
	frames   []*image.NRGBA
	width    int
	height   int
	hasAlpha bool
}

// NewFrameSequence builds a sequence from pre-decoded frames. Every frame
// must have the same dimensions; hasAlpha records whether the source data
// carries a meaningful alpha channel.
func NewFrameSequence(frames []*image.NRGBA, hasAlpha bool) (*FrameSequence, error) {
	if len(frames) == 0 {
		return nil, &ValidationError{Reason: "frame sequence is empty"}
	}

	b := frames[0].Bounds()
	w, h := b.Dx(), b.Dy()
	for i, f := range frames {
		fb := f.Bounds()
		if fb.Dx() != w || fb.Dy() != h {
			return nil, &ValidationError{Reason: fmt.Sprintf(
				"frame %d has dimensions %dx%d, expected %dx%d", i, fb.Dx(), fb.Dy(), w, h)}
		}
	}

	return &FrameSequence{frames: frames, width: w, height: h, hasAlpha: hasAlpha}, nil
}

// Count returns the number of frames.
func (s *FrameSequence) Count() int { return len(s.frames) }

// Width returns the frame width in pixels.
func (s *FrameSequence) Width() int { return s.width }

// Height returns the frame height in pixels.
func (s *FrameSequence) Height() int { return s.height }

// HasAlpha reports whether the sequence carries an alpha channel.
func (s *FrameSequence) HasAlpha() bool { return s.hasAlpha }

// Frame returns the i-th frame.
func (s *FrameSequence) Frame(i int) *image.NRGBA { return s.frames[i] }

// Duration returns the playback duration at the given frame rate.
func (s *FrameSequence) Duration(frameRate float64) time.Duration {
	return time.Duration(float64(len(s.frames)) / frameRate * float64(time.Second))
}

// AdjustEven returns a sequence whose dimensions are both even, resizing
// with a high-quality scaler when an adjustment is required. Encoders
// reject odd dimensions for subsampled pixel formats, so this runs before
// any encode attempt. The receiver is returned unchanged when no
// adjustment is needed.
func (s *FrameSequence) AdjustEven() *FrameSequence {
	w := s.width - s.width%2
	h := s.height - s.height%2
	if w == s.width && h == s.height {
		return s
	}

	resized := make([]*image.NRGBA, len(s.frames))
	rect := image.Rect(0, 0, w, h)
	for i, f := range s.frames {
		dst := image.NewNRGBA(rect)
		draw.CatmullRom.Scale(dst, rect, f, f.Bounds(), draw.Src, nil)
		resized[i] = dst
	}

	return &FrameSequence{frames: resized, width: w, height: h, hasAlpha: s.hasAlpha}
}

// Pingpong returns the sequence extended by its own reverse, so N input
// frames become a palindromic 2N-1 output frames. The turnaround frame
// appears once and the output ends on the input's first frame. Frames
// are shared with the receiver, not copied.
func (s *FrameSequence) Pingpong() *FrameSequence {
	n := len(s.frames)
	if n < 2 {
		return s
	}

	extended := make([]*image.NRGBA, 0, 2*n-1)
	extended = append(extended, s.frames...)
	for i := n - 2; i >= 0; i-- {
		extended = append(extended, s.frames[i])
	}

	return &FrameSequence{frames: extended, width: s.width, height: s.height, hasAlpha: s.hasAlpha}
}

// FlattenAlpha returns a view of the sequence without its alpha channel.
// The pixel data is shared; only the raw byte layout handed to the
// encoder changes. Fallback configurations use this to degrade an
// alpha-carrying request to a universally supported format.
func (s *FrameSequence) FlattenAlpha() *FrameSequence {
	if !s.hasAlpha {
		return s
	}
	return &FrameSequence{frames: s.frames, width: s.width, height: s.height, hasAlpha: false}
}

// Truncate returns a sequence holding only the first n frames. Frames are
// shared with the receiver.
func (s *FrameSequence) Truncate(n int) *FrameSequence {
	if n >= len(s.frames) {
		return s
	}
	return &FrameSequence{frames: s.frames[:n], width: s.width, height: s.height, hasAlpha: s.hasAlpha}
}

// FrameBytes returns the raw pixel bytes of frame i in the layout the
// encoder expects on its input pipe: rgba when the sequence has alpha,
// rgb24 otherwise.
func (s *FrameSequence) FrameBytes(i int) []byte {
	f := s.frames[i]
	if s.hasAlpha && f.Stride == s.width*4 {
		return f.Pix
	}

	if s.hasAlpha {
		// Non-contiguous rows, repack.
		out := make([]byte, s.width*s.height*4)
		for y := 0; y < s.height; y++ {
			copy(out[y*s.width*4:(y+1)*s.width*4], f.Pix[y*f.Stride:y*f.Stride+s.width*4])
		}
		return out
	}

	out := make([]byte, s.width*s.height*3)
	di := 0
	for y := 0; y < s.height; y++ {
		row := f.Pix[y*f.Stride : y*f.Stride+s.width*4]
		for x := 0; x < s.width; x++ {
			out[di] = row[x*4]
			out[di+1] = row[x*4+1]
			out[di+2] = row[x*4+2]
			di += 3
		}
	}
	return out
}

// BytesPerFrame returns the raw frame size in bytes on the encoder pipe.
func (s *FrameSequence) BytesPerFrame() int {
	if s.hasAlpha {
		return s.width * s.height * 4
	}
	return s.width * s.height * 3
}
