package mp4meta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framecast/pkg/ports"
)

// writeEmptyMP4 writes a minimal valid container with one video track.
func writeEmptyMP4(t *testing.T, path string) {
	t.Helper()

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(24000, "video", "und")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if err := init.Encode(f); err != nil {
		t.Fatalf("encode init segment: %v", err)
	}
}

func TestSupports(t *testing.T) {
	s := New()

	if !s.Supports("mp4") || !s.Supports("mov") {
		t.Error("mp4 and mov should be supported")
	}
	if s.Supports("webm") {
		t.Error("webm metadata is written at mux time, not stamped")
	}
}

func TestStampSetsCreationTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	writeEmptyMP4(t, path)

	created := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	s := New()
	err := s.Stamp(path, ports.VideoMetadata{
		CreatedAt:  created,
		FrameCount: 24,
		Duration:   time.Second,
		VideoCodec: "libx264",
	})
	if err != nil {
		t.Fatalf("Stamp failed: %v", err)
	}

	info, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if !info.CreatedAt.Equal(created) {
		t.Errorf("expected %v, got %v", created, info.CreatedAt)
	}
	if info.TrackCount != 1 {
		t.Errorf("expected 1 track, got %d", info.TrackCount)
	}
}

func TestStampLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	writeEmptyMP4(t, path)

	s := New()
	err := s.Stamp(path, ports.VideoMetadata{CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("Stamp failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "clip.mp4" {
		t.Errorf("expected only clip.mp4, got %v", entries)
	}
}

func TestStampMissingFile(t *testing.T) {
	s := New()
	err := s.Stamp(filepath.Join(t.TempDir(), "absent.mp4"), ports.VideoMetadata{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMP4TimeRoundTrip(t *testing.T) {
	ts := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	if got := fromMP4Time(toMP4Time(ts)); !got.Equal(ts) {
		t.Errorf("round trip %v -> %v", ts, got)
	}
}

func TestMP4TimeBeforeEpochClampsToZero(t *testing.T) {
	if got := toMP4Time(time.Date(1890, 1, 1, 0, 0, 0, 0, time.UTC)); got != 0 {
		t.Errorf("expected 0 for pre-epoch time, got %d", got)
	}
}

func TestProbeMissingFile(t *testing.T) {
	if _, err := Probe(filepath.Join(t.TempDir(), "absent.mp4")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
