package ffmpegenc

import "errors"

var (
	// ErrFFmpegNotFound is returned when no ffmpeg executable could be
	// located. The fallback supervisor records it as "backend
	// unavailable" instead of starting an attempt.
	ErrFFmpegNotFound = errors.New("ffmpeg executable not found")

	// ErrSessionClosed is returned when a session is used after
	// FinishVideo or Close.
	ErrSessionClosed = errors.New("encode session closed")
)
