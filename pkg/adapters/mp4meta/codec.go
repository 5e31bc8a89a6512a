package mp4meta

import (
	"github.com/Eyevinn/mp4ff/mp4"
)

// detectCodec inspects the sample descriptors of the first video track
// and names the codec, or returns "" when no video track is recognized.
func detectCodec(f *mp4.File) string {
	if f.Moov == nil {
		return ""
	}
	for _, trak := range f.Moov.Traks {
		if codec := codecFromTrack(trak); codec != "" {
			return codec
		}
	}
	return ""
}

func codecFromTrack(trak *mp4.TrakBox) string {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
		return ""
	}
	if trak.Mdia.Hdlr.HandlerType != "vide" {
		return ""
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ""
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			return "h264"
		case "apcn", "apch", "ap4h", "ap4x":
			return "prores"
		case "hvc1", "hev1":
			return "hevc"
		case "av01":
			return "av1"
		}
	}
	return ""
}
