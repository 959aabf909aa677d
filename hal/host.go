//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

// HostConfig tunes the simulated hardware.
type HostConfig struct {
	Width  int
	Height int
	Radio  RadioScript
	// DumpFrames prints every committed frame to stdout as ASCII art.
	DumpFrames bool
	// QuietLED suppresses LED state log lines.
	QuietLED bool
}

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	radio  *hostRadio
	disp   *hostDisplay
}

// New returns a host HAL with default geometry and a well-behaved radio.
func New() HAL {
	return NewHost(HostConfig{})
}

// NewHost returns a host HAL implementation backed by simulated devices.
func NewHost(cfg HostConfig) HAL {
	if cfg.Width <= 0 {
		cfg.Width = 128
	}
	if cfg.Height <= 0 {
		cfg.Height = 64
	}
	logger := &hostLogger{w: os.Stdout}
	return &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger, quiet: cfg.QuietLED},
		radio:  newHostRadio(cfg.Radio),
		disp:   newHostDisplay(cfg.Width, cfg.Height, cfg.DumpFrames),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) Radio() Radio     { return h.radio }
func (h *hostHAL) Display() Display { return h.disp }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	quiet  bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.on && !l.quiet {
		l.logger.WriteLineString("led: HIGH")
	}
	l.on = true
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.on && !l.quiet {
		l.logger.WriteLineString("led: LOW")
	}
	l.on = false
}
