// Package ffmpegenc implements the encoder backend port by driving
// ffmpeg as an external process. Encoding runs in two passes, matching
// the pipeline's state machine: raw frames are piped to a first ffmpeg
// process producing a video-only file, then a second process copies the
// video stream and muxes the audio track into the final container.
package ffmpegenc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/framecast/pkg/media"
	"github.com/user/framecast/pkg/ports"
)

// Backend locates and runs ffmpeg.
type Backend struct {
	// PathOverride pins the ffmpeg executable instead of searching for it.
	PathOverride string

	name string
}

// New creates an ffmpeg backend. pathOverride may be empty.
func New(pathOverride string) *Backend {
	return &Backend{PathOverride: pathOverride, name: "ffmpeg"}
}

// Name identifies the backend in attempt logs.
func (b *Backend) Name() string { return b.name }

// Probe reports whether an ffmpeg executable can be located.
func (b *Backend) Probe() error {
	_, err := Find(b.PathOverride)
	return err
}

// Begin starts the first encode pass. The returned session owns the
// intermediate video-only file and removes it on Close.
func (b *Backend) Begin(ctx context.Context, spec ports.EncodeSpec) (ports.EncodeSession, error) {
	ffmpegPath, err := Find(b.PathOverride)
	if err != nil {
		return nil, err
	}

	videoPath := intermediatePath(spec.OutputPath, spec.Format.Extension())
	args := encodeArgs(spec, videoPath)

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	return &session{
		ffmpegPath: ffmpegPath,
		spec:       spec,
		videoPath:  videoPath,
		cmd:        cmd,
		stdin:      stdin,
		stderr:     &stderr,
	}, nil
}

// session is one two-pass encode run.
type session struct {
	ffmpegPath string
	spec       ports.EncodeSpec
	videoPath  string

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *bytes.Buffer

	videoDone bool
	finalized bool
	closed    bool
}

// WriteFrame streams one frame's raw bytes to the encoder's stdin.
func (s *session) WriteFrame(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.stdin == nil {
		return ErrSessionClosed
	}
	if _, err := s.stdin.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w (%s)", err, stderrTail(s.stderr))
	}
	return nil
}

// FinishVideo closes the frame stream and waits for the first pass to
// complete.
func (s *session) FinishVideo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.stdin == nil {
		return ErrSessionClosed
	}
	s.stdin.Close()
	s.stdin = nil

	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg encode failed: %w (%s)", err, stderrTail(s.stderr))
	}
	s.videoDone = true
	return nil
}

// MuxAudio runs the second pass. With no audio the intermediate file is
// promoted to the final path directly.
func (s *session) MuxAudio(ctx context.Context, track *media.AudioTrack) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.videoDone {
		return ErrSessionClosed
	}

	if track == nil {
		if err := os.Rename(s.videoPath, s.spec.OutputPath); err != nil {
			return fmt.Errorf("finalize video: %w", err)
		}
		s.finalized = true
		return nil
	}

	args := muxArgs(s.spec, s.videoPath, track, s.spec.OutputPath)
	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	cmd.Stdin = bytes.NewReader(track.PCMBytes())
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg mux failed: %w (%s)", err, stderrTail(&stderr))
	}
	s.finalized = true
	return nil
}

// Close terminates a still-running first pass and removes the
// intermediate file. It runs on every exit path.
func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.stdin != nil {
		s.stdin.Close()
		s.stdin = nil
		// Drain the process so it does not outlive the attempt.
		_ = s.cmd.Wait()
	}
	if err := os.Remove(s.videoPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// intermediatePath derives the first-pass output path. The container
// extension stays last so ffmpeg infers the right muxer.
func intermediatePath(finalPath, ext string) string {
	base := strings.TrimSuffix(finalPath, "."+ext)
	return base + ".video." + ext
}

// stderrTail returns the last few lines of captured stderr for error
// messages.
func stderrTail(buf *bytes.Buffer) string {
	out := strings.TrimSpace(buf.String())
	if out == "" {
		return "no stderr output"
	}
	lines := strings.Split(out, "\n")
	if len(lines) > 4 {
		lines = lines[len(lines)-4:]
	}
	return strings.Join(lines, "; ")
}

// Ensure the adapter satisfies the backend port.
var (
	_ ports.EncoderBackend = (*Backend)(nil)
	_ ports.EncodeSession  = (*session)(nil)
)
