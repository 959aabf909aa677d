//go:build !tinygo

package hal

import (
	"os"
	"strings"
	"sync"
)

type hostDisplay struct {
	mu   sync.Mutex
	w, h int
	last *Frame
	dump bool
}

func newHostDisplay(w, h int, dump bool) *hostDisplay {
	return &hostDisplay{w: w, h: h, dump: dump}
}

func (d *hostDisplay) Size() (int, int) { return d.w, d.h }

func (d *hostDisplay) Commit(f *Frame) error {
	if f == nil || f.W != d.w || f.H != d.h {
		return ErrBadFrame
	}
	d.mu.Lock()
	d.last = f.Clone()
	d.mu.Unlock()
	if d.dump {
		os.Stdout.WriteString(asciiFrame(f))
	}
	return nil
}

// Snapshot returns a copy of the most recently committed frame, or nil before
// the first commit. Used by the host window viewer.
func (d *hostDisplay) Snapshot() *Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last == nil {
		return nil
	}
	return d.last.Clone()
}

func asciiFrame(f *Frame) string {
	var b strings.Builder
	b.Grow((f.W + 1) * (f.H/2 + 2))
	b.WriteString(strings.Repeat("-", f.W))
	b.WriteByte('\n')
	// Two pixel rows per text row keeps the dump roughly square in a terminal.
	for y := 0; y < f.H; y += 2 {
		for x := 0; x < f.W; x++ {
			top := f.At(x, y)
			bot := f.At(x, y+1)
			switch {
			case top && bot:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bot:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat("-", f.W))
	b.WriteByte('\n')
	return b.String()
}
