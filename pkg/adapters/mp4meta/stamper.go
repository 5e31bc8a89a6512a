// Package mp4meta stamps creation-time metadata into finalized ISO BMFF
// containers (mp4, mov) by rewriting their movie-level boxes. WebM files
// receive their metadata during the mux pass instead; this stamper
// reports them as unsupported.
package mp4meta

import (
	"fmt"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framecast/pkg/ports"
	"github.com/user/framecast/pkg/vformat"
)

// mp4Epoch is the ISO BMFF time origin.
var mp4Epoch = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)

// Stamper implements the metadata port for mp4 and mov containers.
type Stamper struct{}

// New creates a Stamper.
func New() *Stamper { return &Stamper{} }

// Supports reports whether the container uses an ISO BMFF layout.
func (s *Stamper) Supports(container string) bool {
	return container == vformat.ContainerMP4 || container == vformat.ContainerMOV
}

// Stamp sets the creation and modification times on the movie header and
// every track header, then rewrites the file in place via a temporary
// sidecar. The encoded stream content is untouched.
func (s *Stamper) Stamp(path string, meta ports.VideoMetadata) error {
	f, err := mp4.ReadMP4File(path)
	if err != nil {
		return fmt.Errorf("parse container: %w", err)
	}
	if f.Moov == nil || f.Moov.Mvhd == nil {
		return fmt.Errorf("container %s has no movie header", path)
	}

	stamp := toMP4Time(meta.CreatedAt)
	f.Moov.Mvhd.CreationTime = stamp
	f.Moov.Mvhd.ModificationTime = stamp
	for _, trak := range f.Moov.Traks {
		if trak.Tkhd != nil {
			trak.Tkhd.CreationTime = stamp
			trak.Tkhd.ModificationTime = stamp
		}
		if trak.Mdia != nil && trak.Mdia.Mdhd != nil {
			trak.Mdia.Mdhd.CreationTime = stamp
			trak.Mdia.Mdhd.ModificationTime = stamp
		}
	}

	tmpPath := path + ".meta.tmp"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	if err := f.Encode(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("rewrite container: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// Info summarizes a finalized container.
type Info struct {
	Duration   time.Duration
	Timescale  uint32
	TrackCount int
	CreatedAt  time.Time
	VideoCodec string
}

// Probe reads the movie header of a finalized file. It is a diagnostic
// helper for inspecting encoder output; the engine itself does not call
// it.
func Probe(path string) (Info, error) {
	f, err := mp4.ReadMP4File(path)
	if err != nil {
		return Info{}, fmt.Errorf("parse container: %w", err)
	}
	if f.Moov == nil || f.Moov.Mvhd == nil {
		return Info{}, fmt.Errorf("container %s has no movie header", path)
	}

	mvhd := f.Moov.Mvhd
	info := Info{
		Timescale:  mvhd.Timescale,
		TrackCount: len(f.Moov.Traks),
		CreatedAt:  fromMP4Time(mvhd.CreationTime),
		VideoCodec: detectCodec(f),
	}
	if mvhd.Timescale > 0 {
		info.Duration = time.Duration(float64(mvhd.Duration) / float64(mvhd.Timescale) * float64(time.Second))
	}
	return info, nil
}

func toMP4Time(t time.Time) uint64 {
	if t.Before(mp4Epoch) {
		return 0
	}
	return uint64(t.Sub(mp4Epoch) / time.Second)
}

func fromMP4Time(v uint64) time.Time {
	return mp4Epoch.Add(time.Duration(v) * time.Second)
}

// Ensure the adapter satisfies the metadata port.
var _ ports.MetadataStamper = (*Stamper)(nil)
