//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// RadioScript injects faults into the simulated radio so the refresh loop can
// be exercised against link-layer failure modes without real hardware.
type RadioScript struct {
	// FailConnects makes the first N Connect calls fail with ErrRadioFault.
	FailConnects int
	// TimeoutConnects makes the first N Connect calls fail with ErrAssocTimeout.
	// Applied after FailConnects is exhausted.
	TimeoutConnects int
	// AuthReject makes every Connect fail with ErrAuthRejected.
	AuthReject bool
	// ConnectDelay is added to every Connect call.
	ConnectDelay time.Duration
	// DropAfter reports the link as down after N successful health probes.
	// Zero means the link never drops.
	DropAfter int
}

type hostRadio struct {
	mu        sync.Mutex
	script    RadioScript
	connected bool
	connects  int
	probes    int
}

func newHostRadio(script RadioScript) *hostRadio {
	return &hostRadio{script: script}
}

func (r *hostRadio) Connect(ssid, passphrase string, timeout time.Duration) error {
	// script is immutable after construction, so the delay needs no lock.
	if delay := r.script.ConnectDelay; delay > 0 {
		if delay > timeout {
			delay = timeout
		}
		time.Sleep(delay)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.script.AuthReject {
		return ErrAuthRejected
	}
	r.connects++
	if r.connects <= r.script.FailConnects {
		return ErrRadioFault
	}
	if r.connects <= r.script.FailConnects+r.script.TimeoutConnects {
		return ErrAssocTimeout
	}

	r.connected = true
	r.probes = 0
	return nil
}

func (r *hostRadio) Disconnect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connected = false
}

func (r *hostRadio) Connected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.connected {
		return false
	}
	r.probes++
	if r.script.DropAfter > 0 && r.probes > r.script.DropAfter {
		r.connected = false
		return false
	}
	return true
}
