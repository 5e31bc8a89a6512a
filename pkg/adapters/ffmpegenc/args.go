package ffmpegenc

import (
	"fmt"
	"sort"
	"time"

	"github.com/user/framecast/pkg/media"
	"github.com/user/framecast/pkg/ports"
	"github.com/user/framecast/pkg/vformat"
)

// encodeArgs builds the first-pass command line: raw frames are read from
// stdin and encoded into a video-only container at videoPath.
func encodeArgs(spec ports.EncodeSpec, videoPath string) []string {
	inPixFmt := "rgb24"
	if spec.HasAlpha {
		inPixFmt = "rgba"
	}

	args := []string{
		"-y", "-v", "error",
		"-f", "rawvideo",
		"-pix_fmt", inPixFmt,
		"-s", fmt.Sprintf("%dx%d", spec.Width, spec.Height),
		"-r", formatRate(spec.FrameRate),
		"-i", "pipe:0",
		"-c:v", spec.Format.VideoCodec,
		"-pix_fmt", string(spec.Format.PixelFormat),
	}

	switch spec.Format.VideoCodec {
	case vformat.CodecVP9:
		// Constant-quality mode requires a zero target bitrate.
		args = append(args, "-crf", fmt.Sprintf("%d", spec.CRF), "-b:v", "0")
	case vformat.CodecProRes:
		if spec.Format.CodecProfile != "" {
			args = append(args, "-profile:v", spec.Format.CodecProfile)
		}
	default:
		args = append(args, "-crf", fmt.Sprintf("%d", spec.CRF))
	}

	args = append(args, metadataArgs(spec)...)
	args = append(args, videoPath)
	return args
}

// muxArgs builds the second-pass command line: the encoded video stream is
// copied and interleaved f32le samples are read from stdin, producing the
// final container.
func muxArgs(spec ports.EncodeSpec, videoPath string, track *media.AudioTrack, finalPath string) []string {
	args := []string{
		"-y", "-v", "error",
		"-i", videoPath,
		"-ar", fmt.Sprintf("%d", track.SampleRate),
		"-ac", fmt.Sprintf("%d", track.Channels),
		"-f", "f32le",
		"-i", "pipe:0",
		"-c:v", "copy",
		"-c:a", spec.Format.AudioCodec,
		"-shortest",
	}
	args = append(args, metadataArgs(spec)...)
	args = append(args, finalPath)
	return args
}

// metadataArgs emits container-level metadata tags for the pass that
// writes the output file.
func metadataArgs(spec ports.EncodeSpec) []string {
	var args []string
	if !spec.CreationTime.IsZero() {
		args = append(args, "-metadata",
			"creation_time="+spec.CreationTime.UTC().Format(time.RFC3339))
	}
	keys := make([]string, 0, len(spec.Metadata))
	for k := range spec.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-metadata", k+"="+spec.Metadata[k])
	}
	if len(args) > 0 && spec.Format.Container != vformat.ContainerWebM {
		args = append(args, "-movflags", "use_metadata_tags")
	}
	return args
}

// formatRate prints a frame rate without trailing zeros beyond ffmpeg's
// tolerance.
func formatRate(fps float64) string {
	if fps == float64(int(fps)) {
		return fmt.Sprintf("%d", int(fps))
	}
	return fmt.Sprintf("%.3f", fps)
}
