package ports

import "time"

// VideoMetadata is the creation-time metadata stamped onto a finalized
// container file.
type VideoMetadata struct {
	CreatedAt  time.Time
	FrameCount int
	Duration   time.Duration
	VideoCodec string
	AudioCodec string
}

// MetadataStamper embeds metadata into a finalized container file without
// altering the encoded stream content. Stamping failures never invalidate
// an otherwise successful encode; callers downgrade them to warnings.
type MetadataStamper interface {
	// Supports reports whether the stamper can handle the container.
	Supports(container string) bool

	// Stamp rewrites the file at path with the metadata embedded.
	Stamp(path string, meta VideoMetadata) error
}
