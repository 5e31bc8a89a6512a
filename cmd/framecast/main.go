// Package main provides the CLI entry point for framecast.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/framecast/pkg/adapters/ffmpegenc"
	"github.com/user/framecast/pkg/adapters/logger"
	"github.com/user/framecast/pkg/adapters/mp4meta"
	"github.com/user/framecast/pkg/adapters/osfilesystem"
	"github.com/user/framecast/pkg/adapters/testpattern"
	"github.com/user/framecast/pkg/config"
	"github.com/user/framecast/pkg/fallback"
	"github.com/user/framecast/pkg/media"
	"github.com/user/framecast/pkg/naming"
	"github.com/user/framecast/pkg/orchestrator"
	"github.com/user/framecast/pkg/pipeline"
	"github.com/user/framecast/pkg/ports"
	"github.com/user/framecast/pkg/stages/encode"
	"github.com/user/framecast/pkg/stages/reconcile"
	"github.com/user/framecast/pkg/vformat"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Synth   SynthCmd   `cmd:"" help:"Synthesize a video from image frames and optional audio."`
	Demo    DemoCmd    `cmd:"" help:"Synthesize a generated test pattern video."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// SynthCmd defines the synth subcommand.
type SynthCmd struct {
	// Required arguments
	Frames string `arg:"" help:"Directory or glob of image frames (PNG/JPEG), ordered by name."`

	// Input options
	Audio string `short:"a" help:"Optional WAV audio file to mux."`

	// Output options
	OutputDir  string `short:"o" help:"Directory for saved output (default: ./output)."`
	ScratchDir string `help:"Directory for unsaved output (default: system temp)."`
	Prefix     string `help:"Output filename prefix (default: framecast)."`
	NoSave     bool   `help:"Write to the scratch directory instead of the output directory."`

	// Encoding options
	FPS    *float64 `help:"Frame rate (default: 24)."`
	Format string   `short:"f" default:"auto" enum:"auto,h264-mp4,vp9-webm,prores-mov" help:"Output format."`
	PixFmt string   `default:"auto" enum:"auto,yuv420p,yuva420p,yuva444p10le" help:"Pixel format override."`
	CRF    *int     `short:"q" help:"Quality factor (0-51, lower is better, default: 19)."`

	// Timing options
	TrimToAudio bool `help:"Trim video to the audio duration when audio is shorter."`
	Pingpong    bool `help:"Append a reversed pass of the frames (forward then backward)."`

	// Metadata options
	NoMetadata bool `help:"Skip creation-time metadata stamping."`

	// Backend options
	FFmpegPath string `help:"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then system lookup)."`
	TimeoutSec *int   `help:"Per-attempt timeout in seconds (default: 300, 0 disables)."`

	// Config file
	Config string `short:"c" help:"YAML configuration file."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// DemoCmd defines the demo subcommand.
type DemoCmd struct {
	Count  int  `default:"72" help:"Number of generated frames."`
	Width  int  `default:"640" help:"Frame width."`
	Height int  `default:"360" help:"Frame height."`
	Alpha  bool `help:"Generate frames with a transparent background."`

	OutputDir string   `short:"o" help:"Directory for saved output (default: ./output)."`
	Format    string   `short:"f" default:"auto" enum:"auto,h264-mp4,vp9-webm,prores-mov" help:"Output format."`
	FPS       *float64 `help:"Frame rate (default: 24)."`
	Pingpong  bool     `help:"Append a reversed pass of the frames."`

	FFmpegPath string `help:"Path to ffmpeg executable."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("framecast"),
		kong.Description("Synthesize encoded videos from image frame sequences."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the synth command.
func (cmd *SynthCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	frames, err := loadFrames(cmd.Frames)
	if err != nil {
		return err
	}
	log.Info(l10n.F("Loaded %d frames (%dx%d)", frames.Count(), frames.Width(), frames.Height()))

	var audio *media.AudioTrack
	if cmd.Audio != "" {
		audio, err = loadWAV(cmd.Audio)
		if err != nil {
			return fmt.Errorf("load audio: %w", err)
		}
	}

	req := cfg.ToRequest()
	return synthesize(cfg, req, frames, audio, log)
}

// Run executes the demo command.
func (cmd *DemoCmd) Run() error {
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	cfg := config.Defaults()
	cfg.Format = cmd.Format
	cfg.FFmpegPath = cmd.FFmpegPath
	cfg.Pingpong = cmd.Pingpong
	if cmd.OutputDir != "" {
		cfg.OutputDir = cmd.OutputDir
	}
	if cmd.FPS != nil {
		cfg.FPS = *cmd.FPS
	}
	cfg.FilenamePrefix = "demo"

	frames, err := testpattern.Render(cmd.Count, cmd.Width, cmd.Height, cmd.Alpha)
	if err != nil {
		return err
	}
	log.Info(l10n.F("Generated %d test pattern frames (%dx%d)", frames.Count(), frames.Width(), frames.Height()))

	return synthesize(cfg, cfg.ToRequest(), frames, nil, log)
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("framecast version %s", version))
	return nil
}

// synthesize wires the adapters and runs one request to completion.
func synthesize(cfg config.Config, req orchestrator.EncodeRequest, frames *media.FrameSequence, audio *media.AudioTrack, log ports.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	fs := osfilesystem.New()
	backend := ffmpegenc.New(cfg.FFmpegPath)

	timeout := cfg.AttemptTimeout()
	stageFactory := func(b ports.EncoderBackend) pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] {
		return encode.NewStage(b, fs, log, timeout)
	}
	encoder := fallback.New(stageFactory, log)

	configured, err := cfg.Attempts(backend)
	if err != nil {
		return fmt.Errorf("build ladder: %w", err)
	}
	ladder := func(primary vformat.Resolved, hasAlpha bool) []fallback.Attempt {
		if configured != nil {
			return configured
		}
		return fallback.Ladder(backend, primary, hasAlpha)
	}

	orch := orchestrator.New(
		reconcile.NewStage(log),
		encoder,
		ladder,
		naming.New(fs, cfg.OutputDir, cfg.ScratchDir),
		mp4meta.New(),
		log,
	)

	result, err := orch.Synthesize(ctx, req, frames, audio)
	if err != nil {
		return err
	}

	if result.FallbackUsed {
		log.Warn(l10n.F("Primary format unavailable, used %s/%s", result.Container, result.VideoCodec))
	}
	log.Info(l10n.F("Done: %s (%d frames, %.3fs, %d bytes)",
		result.Path, result.FrameCount, result.Duration.Seconds(), result.FileSize))
	return nil
}

// buildConfig loads the optional config file and applies CLI overrides.
func (cmd *SynthCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.OutputDir != "" {
		cfg.OutputDir = cmd.OutputDir
	}
	if cmd.ScratchDir != "" {
		cfg.ScratchDir = cmd.ScratchDir
	}
	if cmd.Prefix != "" {
		cfg.FilenamePrefix = cmd.Prefix
	}
	if cmd.NoSave {
		cfg.SaveOutput = false
	}
	if cmd.FPS != nil {
		cfg.FPS = *cmd.FPS
	}
	if cmd.Format != "" {
		cfg.Format = cmd.Format
	}
	if cmd.PixFmt != "" {
		cfg.PixFmt = cmd.PixFmt
	}
	if cmd.CRF != nil {
		cfg.CRF = *cmd.CRF
	}
	if cmd.TrimToAudio {
		cfg.TrimToAudio = true
	}
	if cmd.Pingpong {
		cfg.Pingpong = true
	}
	if cmd.NoMetadata {
		cfg.SaveMetadata = false
	}
	if cmd.FFmpegPath != "" {
		cfg.FFmpegPath = cmd.FFmpegPath
	}
	if cmd.TimeoutSec != nil {
		cfg.AttemptTimeoutSec = *cmd.TimeoutSec
	}
	if cmd.LogLevel != "" {
		cfg.LogLevel = cmd.LogLevel
	}

	return cfg, nil
}
