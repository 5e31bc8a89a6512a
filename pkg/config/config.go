// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/user/framecast/pkg/fallback"
	"github.com/user/framecast/pkg/orchestrator"
	"github.com/user/framecast/pkg/ports"
	"github.com/user/framecast/pkg/vformat"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for framecast.
type Config struct {
	// Input/Output
	OutputDir  string `yaml:"output_dir"`
	ScratchDir string `yaml:"scratch_dir"`

	// Encoding
	FPS            float64 `yaml:"fps"`
	Format         string  `yaml:"format"`
	PixFmt         string  `yaml:"pix_fmt"`
	CRF            int     `yaml:"crf"`
	FilenamePrefix string  `yaml:"filename_prefix"`
	SaveMetadata   bool    `yaml:"save_metadata"`
	TrimToAudio    bool    `yaml:"trim_to_audio"`
	Pingpong       bool    `yaml:"pingpong"`
	SaveOutput     bool    `yaml:"save_output"`

	// Backend
	FFmpegPath        string        `yaml:"ffmpeg_path"`
	AttemptTimeoutSec int           `yaml:"attempt_timeout_sec"`
	Ladder            []LadderEntry `yaml:"ladder"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// LadderEntry describes one fallback rung. An empty ladder selects the
// built-in degradation order for the resolved primary format.
type LadderEntry struct {
	Name      string `yaml:"name"`
	Format    string `yaml:"format"`
	PixFmt    string `yaml:"pix_fmt"`
	DropAlpha bool   `yaml:"drop_alpha"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputDir:  "./output",
		ScratchDir: os.TempDir(),

		FPS:            24.0,
		Format:         string(vformat.FormatAuto),
		PixFmt:         string(vformat.PixFmtAuto),
		CRF:            19,
		FilenamePrefix: "framecast",
		SaveMetadata:   true,
		SaveOutput:     true,

		AttemptTimeoutSec: 300,

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// AttemptTimeout returns the per-attempt deadline, zero meaning none.
func (c Config) AttemptTimeout() time.Duration {
	if c.AttemptTimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.AttemptTimeoutSec) * time.Second
}

// ToRequest converts Config to an orchestrator.EncodeRequest.
func (c Config) ToRequest() orchestrator.EncodeRequest {
	return orchestrator.EncodeRequest{
		FrameRate:      c.FPS,
		Format:         vformat.Format(c.Format),
		PixFmt:         vformat.PixelFormat(c.PixFmt),
		CRF:            c.CRF,
		FilenamePrefix: c.FilenamePrefix,
		SaveMetadata:   c.SaveMetadata,
		TrimToAudio:    c.TrimToAudio,
		Pingpong:       c.Pingpong,
		SaveOutput:     c.SaveOutput,
	}
}

// Attempts materializes the configured ladder for a backend. A nil
// return tells the caller to fall back to the built-in ladder.
func (c Config) Attempts(backend ports.EncoderBackend) ([]fallback.Attempt, error) {
	if len(c.Ladder) == 0 {
		return nil, nil
	}

	attempts := make([]fallback.Attempt, 0, len(c.Ladder))
	for i, entry := range c.Ladder {
		pixFmt := vformat.PixelFormat(entry.PixFmt)
		resolved, err := vformat.Resolve(vformat.Format(entry.Format), pixFmt, pixFmt.HasAlpha())
		if err != nil {
			return nil, fmt.Errorf("ladder entry %d (%s): %w", i, entry.Format, err)
		}

		name := entry.Name
		if name == "" {
			name = fmt.Sprintf("ladder[%d] %s", i, resolved.VideoCodec)
		}

		attempts = append(attempts, fallback.Attempt{
			Name:      name,
			Backend:   backend,
			Format:    resolved,
			DropAlpha: entry.DropAlpha,
		})
	}
	return attempts, nil
}
