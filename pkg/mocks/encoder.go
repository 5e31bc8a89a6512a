package mocks

import (
	"context"

	"github.com/user/framecast/pkg/media"
	"github.com/user/framecast/pkg/ports"
)

// EncoderBackend is a mock implementation of ports.EncoderBackend.
type EncoderBackend struct {
	NameValue string
	ProbeFunc func() error
	BeginFunc func(ctx context.Context, spec ports.EncodeSpec) (ports.EncodeSession, error)

	// Recorded calls for verification
	ProbeCalled bool
	BeginCalls  []ports.EncodeSpec
	Sessions    []*EncodeSession
}

func (m *EncoderBackend) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

func (m *EncoderBackend) Probe() error {
	m.ProbeCalled = true
	if m.ProbeFunc != nil {
		return m.ProbeFunc()
	}
	return nil
}

func (m *EncoderBackend) Begin(ctx context.Context, spec ports.EncodeSpec) (ports.EncodeSession, error) {
	m.BeginCalls = append(m.BeginCalls, spec)
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, spec)
	}
	session := &EncodeSession{Spec: spec}
	m.Sessions = append(m.Sessions, session)
	return session, nil
}

var _ ports.EncoderBackend = (*EncoderBackend)(nil)

// EncodeSession is a mock implementation of ports.EncodeSession. It
// records every written frame so tests can verify order and content.
type EncodeSession struct {
	Spec ports.EncodeSpec

	WriteFrameFunc  func(frame []byte) error
	FinishVideoFunc func() error
	MuxAudioFunc    func(ctx context.Context, track *media.AudioTrack) error
	CloseFunc       func() error

	// Recorded calls for verification
	Frames            [][]byte
	FinishVideoCalled bool
	MuxedAudio        *media.AudioTrack
	MuxAudioCalled    bool
	CloseCalled       bool
}

func (m *EncodeSession) WriteFrame(frame []byte) error {
	buf := make([]byte, len(frame))
	copy(buf, frame)
	m.Frames = append(m.Frames, buf)
	if m.WriteFrameFunc != nil {
		return m.WriteFrameFunc(frame)
	}
	return nil
}

func (m *EncodeSession) FinishVideo() error {
	m.FinishVideoCalled = true
	if m.FinishVideoFunc != nil {
		return m.FinishVideoFunc()
	}
	return nil
}

func (m *EncodeSession) MuxAudio(ctx context.Context, track *media.AudioTrack) error {
	m.MuxAudioCalled = true
	m.MuxedAudio = track
	if m.MuxAudioFunc != nil {
		return m.MuxAudioFunc(ctx, track)
	}
	return nil
}

func (m *EncodeSession) Close() error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ ports.EncodeSession = (*EncodeSession)(nil)
