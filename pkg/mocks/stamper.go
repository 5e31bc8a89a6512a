package mocks

import (
	"github.com/user/framecast/pkg/ports"
)

// MetadataStamper is a mock implementation of ports.MetadataStamper.
type MetadataStamper struct {
	SupportsFunc func(container string) bool
	StampFunc    func(path string, meta ports.VideoMetadata) error

	// Recorded calls for verification
	StampCalls []StampCall
}

// StampCall records a call to Stamp.
type StampCall struct {
	Path string
	Meta ports.VideoMetadata
}

func (m *MetadataStamper) Supports(container string) bool {
	if m.SupportsFunc != nil {
		return m.SupportsFunc(container)
	}
	return true
}

func (m *MetadataStamper) Stamp(path string, meta ports.VideoMetadata) error {
	m.StampCalls = append(m.StampCalls, StampCall{Path: path, Meta: meta})
	if m.StampFunc != nil {
		return m.StampFunc(path, meta)
	}
	return nil
}

var _ ports.MetadataStamper = (*MetadataStamper)(nil)
