package main

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-audio/wav"

	"github.com/user/framecast/pkg/media"
)

// loadFrames reads an ordered frame sequence from a directory or glob
// pattern. Frames are ordered by filename; a directory input expands to
// its PNG and JPEG entries.
func loadFrames(pattern string) (*media.FrameSequence, error) {
	paths, err := expandFramePaths(pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, &media.ValidationError{Reason: fmt.Sprintf("no frames matched %q", pattern)}
	}
	sort.Strings(paths)

	frames := make([]*image.NRGBA, 0, len(paths))
	hasAlpha := false
	for _, path := range paths {
		img, err := decodeImageFile(path)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		if !hasAlpha && !opaque(img) {
			hasAlpha = true
		}
		frames = append(frames, img)
	}

	return media.NewFrameSequence(frames, hasAlpha)
}

func expandFramePaths(pattern string) ([]string, error) {
	info, err := os.Stat(pattern)
	if err == nil && info.IsDir() {
		var paths []string
		for _, glob := range []string{"*.png", "*.jpg", "*.jpeg"} {
			matched, err := filepath.Glob(filepath.Join(pattern, glob))
			if err != nil {
				return nil, err
			}
			paths = append(paths, matched...)
		}
		return paths, nil
	}
	matched, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	paths := matched[:0]
	for _, p := range matched {
		if isImagePath(p) {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func decodeImageFile(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba, nil
	}
	dst := image.NewNRGBA(img.Bounds().Sub(img.Bounds().Min))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst, nil
}

func opaque(img *image.NRGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride : (y-b.Min.Y)*img.Stride+b.Dx()*4]
		for i := 3; i < len(row); i += 4 {
			if row[i] != 0xFF {
				return false
			}
		}
	}
	return true
}

// loadWAV decodes a WAV file into a float32 interleaved audio track.
func loadWAV(path string) (*media.AudioTrack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, &media.ValidationError{Reason: fmt.Sprintf("%s is not a valid WAV file", filepath.Base(path))}
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	fbuf := buf.AsFloat32Buffer()
	return media.NewAudioTrack(fbuf.Data, buf.Format.NumChannels, buf.Format.SampleRate)
}

func isImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
