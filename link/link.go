// Package link owns the wireless association lifecycle. It is the only
// writer of the connection state; the refresh loop and the renderer read it.
package link

import (
	"errors"
	"time"

	"solpanel/hal"
	"solpanel/model"
)

// Link drives a hal.Radio and tracks the resulting connection state.
// It is not safe for concurrent use; the refresh loop is single-threaded.
type Link struct {
	radio      hal.Radio
	ssid       string
	passphrase string
	timeout    time.Duration
	state      model.ConnectionState
}

func New(radio hal.Radio, ssid, passphrase string, timeout time.Duration) *Link {
	return &Link{
		radio:      radio,
		ssid:       ssid,
		passphrase: passphrase,
		timeout:    timeout,
		state:      model.Disconnected,
	}
}

// State returns a non-blocking snapshot of the connection state.
func (l *Link) State() model.ConnectionState { return l.state }

// Connect initiates association and blocks until it completes or the bounded
// timeout elapses.
func (l *Link) Connect() *model.LinkError {
	l.state = model.Connecting
	if err := l.radio.Connect(l.ssid, l.passphrase, l.timeout); err != nil {
		l.state = model.Disconnected
		return classify(err)
	}
	l.state = model.Connected
	return nil
}

// EnsureConnected is idempotent: it returns immediately when the link is
// already up, probes for silent drops, and reconnects when needed.
func (l *Link) EnsureConnected() *model.LinkError {
	switch l.state {
	case model.Connected, model.Degraded:
		if l.radio.Connected() {
			return nil
		}
		// The association dropped behind our back.
		l.state = model.Disconnected
	case model.Connecting:
		// A previous attempt was interrupted; the radio may have finished on
		// its own.
		if l.radio.Connected() {
			l.state = model.Connected
			return nil
		}
	}
	return l.Connect()
}

// MarkDegraded records that the link is up but the last fetch failed.
// Only meaningful while connected.
func (l *Link) MarkDegraded() {
	if l.state == model.Connected {
		l.state = model.Degraded
	}
}

// MarkHealthy clears a degraded marker after a successful fetch.
func (l *Link) MarkHealthy() {
	if l.state == model.Degraded {
		l.state = model.Connected
	}
}

func classify(err error) *model.LinkError {
	switch {
	case errors.Is(err, hal.ErrAuthRejected):
		return &model.LinkError{Kind: model.AuthRejected, Err: err}
	case errors.Is(err, hal.ErrAssocTimeout):
		return &model.LinkError{Kind: model.LinkTimeout, Err: err}
	default:
		return &model.LinkError{Kind: model.RadioFault, Err: err}
	}
}
