// Package testpattern renders synthetic frame sequences for demos and
// backend smoke tests: a shape sweeping across the canvas with a frame
// counter, so dropped or reordered frames are visible in the output.
package testpattern

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/user/framecast/pkg/media"
)

// Render produces count frames of the moving-dot pattern. With alpha
// enabled the background is transparent instead of dark blue.
func Render(count, width, height int, alpha bool) (*media.FrameSequence, error) {
	if count <= 0 {
		return nil, fmt.Errorf("frame count must be positive, got %d", count)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}

	frames := make([]*image.NRGBA, count)
	for i := 0; i < count; i++ {
		frames[i] = renderFrame(i, count, width, height, alpha)
	}
	return media.NewFrameSequence(frames, alpha)
}

func renderFrame(i, count, width, height int, alpha bool) *image.NRGBA {
	dc := gg.NewContext(width, height)

	if alpha {
		dc.SetRGBA(0, 0, 0, 0)
	} else {
		dc.SetRGB(0.10, 0.10, 0.18)
	}
	dc.Clear()

	// Dot sweeps left to right over the whole sequence, bobbing on a
	// sine wave so vertical motion is visible too.
	progress := 0.0
	if count > 1 {
		progress = float64(i) / float64(count-1)
	}
	radius := math.Min(float64(width), float64(height)) / 8
	x := radius + progress*(float64(width)-2*radius)
	y := float64(height)/2 + math.Sin(progress*4*math.Pi)*float64(height)/4

	dc.SetRGB(0.29, 0.87, 0.50)
	dc.DrawCircle(x, y, radius)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	if alpha {
		dc.SetRGBA(1, 1, 1, 1)
	} else {
		dc.SetRGB(1, 1, 1)
	}
	dc.DrawStringAnchored(fmt.Sprintf("frame %04d", i), float64(width)/2, float64(height)-16, 0.5, 0.5)

	// gg renders to premultiplied RGBA; repack as NRGBA for the
	// sequence container.
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return dst
}
