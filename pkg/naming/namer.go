// Package naming allocates collision-resistant output file paths.
//
// Paths follow the pattern
//
//	{prefix}_{counter:05d}_{YYYYMMDD}_{HHMMSS}_{microseconds}.{ext}
//
// where the counter is process-wide state scoped per prefix, incremented
// atomically on each allocation and never reused within a process
// lifetime. Combined with microsecond timestamp resolution this makes
// collisions practically impossible even under rapid sequential calls.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/user/framecast/pkg/ports"
)

// Namer allocates output paths under a persistent root or a scratch root.
type Namer struct {
	fs          ports.FileSystem
	outputRoot  string
	scratchRoot string

	mu       sync.Mutex
	counters map[string]uint64

	now func() time.Time // injectable for tests
}

// New creates a Namer with fresh per-prefix counters.
func New(fs ports.FileSystem, outputRoot, scratchRoot string) *Namer {
	return &Namer{
		fs:          fs,
		outputRoot:  outputRoot,
		scratchRoot: scratchRoot,
		counters:    make(map[string]uint64),
		now:         time.Now,
	}
}

// Next allocates a path for one output file. saveOutput selects the
// persistent root over the scratch root. The selected root is created if
// missing; no deeper directories are created, so path separators in the
// prefix are flattened into the file name.
func (n *Namer) Next(prefix string, saveOutput bool, ext string) (string, error) {
	root := n.scratchRoot
	if saveOutput {
		root = n.outputRoot
	}
	if err := n.fs.EnsureDir(root); err != nil {
		return "", fmt.Errorf("ensure output root: %w", err)
	}

	prefix = sanitize(prefix)

	n.mu.Lock()
	defer n.mu.Unlock()
	for {
		n.counters[prefix]++
		t := n.now()
		name := fmt.Sprintf("%s_%05d_%s_%s_%06d.%s",
			prefix,
			n.counters[prefix],
			t.Format("20060102"),
			t.Format("150405"),
			t.Nanosecond()/1000,
			ext,
		)
		path := filepath.Join(root, name)

		// A leftover file from a previous process may already hold this
		// name; advancing the counter resolves the collision.
		exists, err := n.fs.Exists(path)
		if err != nil {
			return "", fmt.Errorf("check output path: %w", err)
		}
		if !exists {
			return path, nil
		}
	}
}

// sanitize flattens path separators and strips characters that would
// escape the selected root.
func sanitize(prefix string) string {
	prefix = strings.ReplaceAll(prefix, "\\", "_")
	prefix = strings.ReplaceAll(prefix, "/", "_")
	prefix = strings.Trim(prefix, ". ")
	if prefix == "" {
		prefix = "framecast"
	}
	return prefix
}
