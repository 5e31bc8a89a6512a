package fallback

import (
	"github.com/user/framecast/pkg/ports"
	"github.com/user/framecast/pkg/vformat"
)

// Ladder builds the default attempt list for a resolved primary format:
// the exact primary configuration first, then successively more
// conservative ones. Alpha-carrying requests degrade through the other
// alpha-capable format before flattening to h264-mp4 as the last resort.
func Ladder(backend ports.EncoderBackend, primary vformat.Resolved, hasAlpha bool) []Attempt {
	attempts := []Attempt{{
		Name:    "primary " + primary.VideoCodec,
		Backend: backend,
		Format:  primary,
	}}

	if hasAlpha {
		if primary.Container != vformat.ContainerWebM {
			f, _ := vformat.Resolve(vformat.FormatVP9WebM, vformat.PixFmtAuto, true)
			attempts = append(attempts, Attempt{
				Name: "vp9-webm alpha", Backend: backend, Format: f,
			})
		}
		if primary.Container != vformat.ContainerMOV {
			f, _ := vformat.Resolve(vformat.FormatProResMOV, vformat.PixFmtAuto, true)
			attempts = append(attempts, Attempt{
				Name: "prores-mov alpha", Backend: backend, Format: f,
			})
		}
		f, _ := vformat.Resolve(vformat.FormatH264MP4, vformat.PixFmtAuto, false)
		attempts = append(attempts, Attempt{
			Name: "h264-mp4 flattened", Backend: backend, Format: f, DropAlpha: true,
		})
		return attempts
	}

	if primary.Container != vformat.ContainerMP4 {
		f, _ := vformat.Resolve(vformat.FormatH264MP4, vformat.PixFmtAuto, false)
		attempts = append(attempts, Attempt{
			Name: "h264-mp4 conservative", Backend: backend, Format: f,
		})
	}
	return attempts
}
