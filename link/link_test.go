package link

import (
	"testing"
	"time"

	"solpanel/hal"
	"solpanel/model"
)

// fakeRadio scripts association results per Connect call.
type fakeRadio struct {
	errs      []error
	calls     int
	connected bool
	probeDown bool
}

func (r *fakeRadio) Connect(ssid, passphrase string, timeout time.Duration) error {
	var err error
	if r.calls < len(r.errs) {
		err = r.errs[r.calls]
	}
	r.calls++
	if err != nil {
		r.connected = false
		return err
	}
	r.connected = true
	return nil
}

func (r *fakeRadio) Disconnect() { r.connected = false }

func (r *fakeRadio) Connected() bool {
	if r.probeDown {
		return false
	}
	return r.connected
}

func TestConnectSuccess(t *testing.T) {
	l := New(&fakeRadio{}, "ap", "secret99", time.Second)
	if got := l.State(); got != model.Disconnected {
		t.Fatalf("initial state = %v", got)
	}
	if err := l.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if got := l.State(); got != model.Connected {
		t.Fatalf("state after connect = %v", got)
	}
}

func TestConnectClassification(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		kind  model.LinkErrorKind
		fatal bool
	}{
		{"auth", hal.ErrAuthRejected, model.AuthRejected, true},
		{"timeout", hal.ErrAssocTimeout, model.LinkTimeout, false},
		{"fault", hal.ErrRadioFault, model.RadioFault, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := New(&fakeRadio{errs: []error{tc.err}}, "ap", "secret99", time.Second)
			lerr := l.Connect()
			if lerr == nil {
				t.Fatal("expected error")
			}
			if lerr.Kind != tc.kind {
				t.Fatalf("kind = %v, want %v", lerr.Kind, tc.kind)
			}
			if lerr.Fatal() != tc.fatal {
				t.Fatalf("Fatal() = %v, want %v", lerr.Fatal(), tc.fatal)
			}
			if l.State() != model.Disconnected {
				t.Fatalf("state after failure = %v", l.State())
			}
		})
	}
}

func TestEnsureConnectedIdempotent(t *testing.T) {
	r := &fakeRadio{}
	l := New(r, "ap", "secret99", time.Second)
	if err := l.EnsureConnected(); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := l.EnsureConnected(); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if r.calls != 1 {
		t.Fatalf("radio.Connect called %d times, want 1", r.calls)
	}
}

func TestEnsureConnectedReconnectsAfterDrop(t *testing.T) {
	r := &fakeRadio{}
	l := New(r, "ap", "secret99", time.Second)
	if err := l.EnsureConnected(); err != nil {
		t.Fatal(err)
	}

	// Silent drop: the radio stops reporting the association.
	r.probeDown = true
	r.connected = false
	if err := l.EnsureConnected(); err != nil {
		// Reconnect succeeds in the fake, so no error expected.
		t.Fatalf("reconnect: %v", err)
	}
	if r.calls != 2 {
		t.Fatalf("radio.Connect called %d times, want 2", r.calls)
	}
}

func TestDegradedTransitions(t *testing.T) {
	l := New(&fakeRadio{}, "ap", "secret99", time.Second)
	if err := l.Connect(); err != nil {
		t.Fatal(err)
	}

	l.MarkDegraded()
	if l.State() != model.Degraded {
		t.Fatalf("state = %v, want degraded", l.State())
	}
	// Degraded still counts as associated: no reconnect.
	if err := l.EnsureConnected(); err != nil {
		t.Fatal(err)
	}
	if l.State() != model.Degraded {
		t.Fatalf("ensure cleared degraded marker: %v", l.State())
	}

	l.MarkHealthy()
	if l.State() != model.Connected {
		t.Fatalf("state = %v, want connected", l.State())
	}

	// Markers are no-ops while disconnected.
	l2 := New(&fakeRadio{errs: []error{hal.ErrRadioFault}}, "ap", "secret99", time.Second)
	l2.Connect()
	l2.MarkDegraded()
	if l2.State() != model.Disconnected {
		t.Fatalf("MarkDegraded while down moved state to %v", l2.State())
	}
}
