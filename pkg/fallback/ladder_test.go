package fallback

import (
	"testing"

	"github.com/user/framecast/pkg/vformat"
)

func TestLadderOpaquePrimaryWebM(t *testing.T) {
	backend := &probeBackend{name: "ffmpeg"}
	primary := resolve(t, vformat.FormatVP9WebM, false)

	attempts := Ladder(backend, primary, false)
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
	if attempts[0].Format != primary {
		t.Error("first rung must be the primary configuration")
	}
	if attempts[1].Format.Container != vformat.ContainerMP4 {
		t.Errorf("conservative rung should be mp4, got %s", attempts[1].Format.Container)
	}
}

func TestLadderOpaquePrimaryMP4HasNoExtraRungs(t *testing.T) {
	backend := &probeBackend{name: "ffmpeg"}
	primary := resolve(t, vformat.FormatH264MP4, false)

	attempts := Ladder(backend, primary, false)
	if len(attempts) != 1 {
		t.Fatalf("expected only the primary attempt, got %d", len(attempts))
	}
}

func TestLadderAlphaDegradesThroughAlphaFormatsFirst(t *testing.T) {
	backend := &probeBackend{name: "ffmpeg"}
	primary := resolve(t, vformat.FormatVP9WebM, true)

	attempts := Ladder(backend, primary, true)
	if len(attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(attempts))
	}

	if attempts[0].DropAlpha {
		t.Error("primary rung must not flatten alpha")
	}
	if attempts[1].Format.Container != vformat.ContainerMOV || !attempts[1].Format.Alpha() {
		t.Errorf("second rung should be alpha prores-mov, got %+v", attempts[1].Format)
	}

	last := attempts[len(attempts)-1]
	if !last.DropAlpha {
		t.Error("last rung must flatten alpha")
	}
	if last.Format.Container != vformat.ContainerMP4 {
		t.Errorf("last rung should be mp4, got %s", last.Format.Container)
	}
}
