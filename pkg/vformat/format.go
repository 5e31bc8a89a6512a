// Package vformat resolves a requested container format and alpha fact
// into concrete codec parameters, validating the combination against the
// compatibility matrix.
package vformat

import (
	"fmt"

	"github.com/user/framecast/pkg/media"
)

// Format identifies a requested container/codec pairing.
type Format string

const (
	FormatAuto      Format = "auto"
	FormatH264MP4   Format = "h264-mp4"
	FormatVP9WebM   Format = "vp9-webm"
	FormatProResMOV Format = "prores-mov"
)

// Formats lists the accepted format values.
func Formats() []Format {
	return []Format{FormatAuto, FormatH264MP4, FormatVP9WebM, FormatProResMOV}
}

// PixelFormat identifies the encoder-side pixel layout.
type PixelFormat string

const (
	PixFmtAuto         PixelFormat = "auto"
	PixFmtYUV420P      PixelFormat = "yuv420p"
	PixFmtYUVA420P     PixelFormat = "yuva420p"
	PixFmtYUVA444P10LE PixelFormat = "yuva444p10le"
)

// HasAlpha reports whether the pixel format carries an alpha plane.
func (p PixelFormat) HasAlpha() bool {
	return p == PixFmtYUVA420P || p == PixFmtYUVA444P10LE
}

// Codec and container identifiers as the encoder backend knows them.
const (
	CodecH264   = "libx264"
	CodecVP9    = "libvpx-vp9"
	CodecProRes = "prores_ks"

	AudioAAC  = "aac"
	AudioOpus = "libopus"

	ContainerMP4  = "mp4"
	ContainerWebM = "webm"
	ContainerMOV  = "mov"
)

// Resolved is the immutable outcome of format selection. It is derived
// once per request and never mutated.
type Resolved struct {
	Container   string
	VideoCodec  string
	PixelFormat PixelFormat
	AudioCodec  string
	// CodecProfile is a codec-specific profile selector; empty when the
	// codec default applies. ProRes uses it to pick the alpha profile.
	CodecProfile string
}

// Extension returns the file extension for the resolved container.
func (r Resolved) Extension() string { return r.Container }

// Validate checks that the resolved format, possibly assembled by a
// fallback ladder entry rather than Resolve, names a legal codec and
// pixel format pairing.
func (r Resolved) Validate() error {
	if !supports(r.VideoCodec, r.PixelFormat) {
		return &media.ValidationError{Reason: fmt.Sprintf(
			"pix_fmt %s is not supported by codec %s", r.PixelFormat, r.VideoCodec)}
	}
	return nil
}

// Alpha reports whether the resolved format preserves an alpha channel.
func (r Resolved) Alpha() bool { return r.PixelFormat.HasAlpha() }

// Resolve maps (format, pix_fmt, hasAlpha) to concrete codec parameters.
// An explicit pix_fmt override is honored only when compatible with the
// chosen codec. Alpha input with a container that cannot carry alpha is
// a validation error rather than silent flattening.
func Resolve(format Format, pixFmt PixelFormat, hasAlpha bool) (Resolved, error) {
	if format == FormatAuto {
		if hasAlpha {
			format = FormatVP9WebM
		} else {
			format = FormatH264MP4
		}
	}

	var r Resolved
	switch format {
	case FormatH264MP4:
		if hasAlpha {
			return Resolved{}, &media.ValidationError{
				Reason: "format h264-mp4 does not support an alpha channel; use vp9-webm or prores-mov"}
		}
		r = Resolved{
			Container:   ContainerMP4,
			VideoCodec:  CodecH264,
			PixelFormat: PixFmtYUV420P,
			AudioCodec:  AudioAAC,
		}

	case FormatVP9WebM:
		r = Resolved{
			Container:   ContainerWebM,
			VideoCodec:  CodecVP9,
			PixelFormat: PixFmtYUV420P,
			AudioCodec:  AudioOpus,
		}
		if hasAlpha {
			r.PixelFormat = PixFmtYUVA420P
		}

	case FormatProResMOV:
		r = Resolved{
			Container:   ContainerMOV,
			VideoCodec:  CodecProRes,
			PixelFormat: PixFmtYUV420P,
			AudioCodec:  AudioAAC,
		}
		if hasAlpha {
			r.PixelFormat = PixFmtYUVA444P10LE
			r.CodecProfile = "4444"
		}

	default:
		return Resolved{}, &media.ValidationError{Reason: fmt.Sprintf("unsupported format %q", format)}
	}

	if pixFmt != "" && pixFmt != PixFmtAuto && pixFmt != r.PixelFormat {
		// Alpha input with an explicit non-alpha pix_fmt upgrades to the
		// codec's alpha layout instead of silently flattening.
		if hasAlpha && !pixFmt.HasAlpha() {
			return r, nil
		}
		if !supports(r.VideoCodec, pixFmt) {
			return Resolved{}, &media.ValidationError{Reason: fmt.Sprintf(
				"pix_fmt %s is not supported by codec %s", pixFmt, r.VideoCodec)}
		}
		r.PixelFormat = pixFmt
		if r.VideoCodec == CodecProRes && pixFmt.HasAlpha() {
			r.CodecProfile = "4444"
		}
	}

	return r, nil
}

// supports reports whether the codec accepts the pixel format.
func supports(codec string, pixFmt PixelFormat) bool {
	compatible := map[string][]PixelFormat{
		CodecH264:   {PixFmtYUV420P},
		CodecVP9:    {PixFmtYUV420P, PixFmtYUVA420P},
		CodecProRes: {PixFmtYUV420P, PixFmtYUVA444P10LE},
	}
	for _, p := range compatible[codec] {
		if p == pixFmt {
			return true
		}
	}
	return false
}
