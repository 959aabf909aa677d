package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrBadFrame means a committed frame does not match the display geometry.
	ErrBadFrame = errors.New("frame geometry mismatch")
)

// Radio association errors. Platform radios normalize their driver errors to
// these sentinels so the link layer can classify without knowing the hardware.
var (
	// ErrAuthRejected means the access point refused the credentials.
	// Retrying with the same credentials cannot succeed.
	ErrAuthRejected = errors.New("radio: auth rejected")

	// ErrAssocTimeout means association did not complete within the deadline.
	ErrAssocTimeout = errors.New("radio: association timeout")

	// ErrRadioFault covers transient hardware or firmware failures.
	ErrRadioFault = errors.New("radio: fault")
)

// Radio owns the wireless association lifecycle.
//
// Connect blocks until the station is associated and has an address, or until
// timeout elapses. Connected is a non-blocking health probe.
type Radio interface {
	Connect(ssid, passphrase string, timeout time.Duration) error
	Disconnect()
	Connected() bool
}

// Display accepts full monochrome frames and performs the physical refresh.
//
// Commit is synchronous and atomic from the application's viewpoint: the whole
// frame is transferred in one call, never row by row.
type Display interface {
	Size() (w, h int)
	Commit(f *Frame) error
}

// HAL provides the only contact point between the firmware and the hardware.
type HAL interface {
	Logger() Logger
	LED() LED
	Radio() Radio
	Display() Display
}
