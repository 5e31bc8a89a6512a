package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/framecast/pkg/mocks"
	"github.com/user/framecast/pkg/vformat"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.FPS != 24.0 {
		t.Errorf("expected fps 24, got %g", cfg.FPS)
	}
	if cfg.CRF != 19 {
		t.Errorf("expected crf 19, got %d", cfg.CRF)
	}
	if cfg.Format != "auto" || cfg.PixFmt != "auto" {
		t.Errorf("expected auto format/pix_fmt, got %s/%s", cfg.Format, cfg.PixFmt)
	}
	if !cfg.SaveMetadata || !cfg.SaveOutput {
		t.Error("metadata and save should default on")
	}
	if cfg.AttemptTimeoutSec != 300 {
		t.Errorf("expected 300s timeout, got %d", cfg.AttemptTimeoutSec)
	}
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
fps: 30
format: vp9-webm
crf: 28
filename_prefix: render
trim_to_audio: true
attempt_timeout_sec: 60
ladder:
  - name: primary vp9
    format: vp9-webm
  - format: h264-mp4
    drop_alpha: true
`
	path := filepath.Join(t.TempDir(), "framecast.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.FPS != 30 || cfg.Format != "vp9-webm" || cfg.CRF != 28 {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if cfg.FilenamePrefix != "render" || !cfg.TrimToAudio {
		t.Errorf("unexpected values: %+v", cfg)
	}
	// Unset keys keep their defaults.
	if !cfg.SaveMetadata {
		t.Error("save_metadata should keep its default")
	}
	if len(cfg.Ladder) != 2 {
		t.Fatalf("expected 2 ladder entries, got %d", len(cfg.Ladder))
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAttemptTimeout(t *testing.T) {
	cfg := Defaults()
	if cfg.AttemptTimeout() != 300*time.Second {
		t.Errorf("expected 300s, got %v", cfg.AttemptTimeout())
	}

	cfg.AttemptTimeoutSec = 0
	if cfg.AttemptTimeout() != 0 {
		t.Errorf("zero should disable the timeout, got %v", cfg.AttemptTimeout())
	}
}

func TestToRequest(t *testing.T) {
	cfg := Defaults()
	cfg.Format = "prores-mov"
	cfg.Pingpong = true

	req := cfg.ToRequest()
	if req.Format != vformat.FormatProResMOV {
		t.Errorf("expected prores-mov, got %s", req.Format)
	}
	if !req.Pingpong {
		t.Error("pingpong should carry over")
	}
	if req.CRF != 19 || req.FrameRate != 24 {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestAttemptsEmptyLadderIsNil(t *testing.T) {
	attempts, err := Defaults().Attempts(&mocks.EncoderBackend{})
	if err != nil {
		t.Fatalf("Attempts failed: %v", err)
	}
	if attempts != nil {
		t.Error("empty ladder should return nil and defer to the built-in order")
	}
}

func TestAttemptsMaterializesLadder(t *testing.T) {
	cfg := Defaults()
	cfg.Ladder = []LadderEntry{
		{Name: "alpha webm", Format: "vp9-webm", PixFmt: "yuva420p"},
		{Format: "h264-mp4", DropAlpha: true},
	}

	backend := &mocks.EncoderBackend{}
	attempts, err := cfg.Attempts(backend)
	if err != nil {
		t.Fatalf("Attempts failed: %v", err)
	}

	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
	if attempts[0].Name != "alpha webm" {
		t.Errorf("explicit name should be kept, got %s", attempts[0].Name)
	}
	if !attempts[0].Format.Alpha() {
		t.Error("first rung should resolve to an alpha pix_fmt")
	}
	if attempts[1].Name == "" {
		t.Error("unnamed entries should get a generated name")
	}
	if !attempts[1].DropAlpha {
		t.Error("drop_alpha should carry over")
	}
	if attempts[1].Backend != backend {
		t.Error("backend should be attached to every rung")
	}
}

func TestAttemptsRejectsBadFormat(t *testing.T) {
	cfg := Defaults()
	cfg.Ladder = []LadderEntry{{Format: "realvideo"}}

	if _, err := cfg.Attempts(&mocks.EncoderBackend{}); err == nil {
		t.Fatal("expected error for unknown ladder format")
	}
}
