//go:build tinygo

package hal

import (
	"machine"
	"strings"
	"sync/atomic"
	"time"

	"tinygo.org/x/drivers/netdev"
	"tinygo.org/x/drivers/netlink"
	"tinygo.org/x/drivers/wifinina"
)

// ninaRadio holds the NINA device behind the interfaces it satisfies; the
// concrete wifinina type is unexported by the driver.
type ninaRadio struct {
	link netlink.Netlinker
	up   atomic.Bool
}

func newNinaRadio() *ninaRadio {
	cfg := wifinina.Config{
		Spi:    machine.NINA_SPI,
		Cs:     machine.NINA_CS,
		Ack:    machine.NINA_ACK,
		Gpio0:  machine.NINA_GPIO0,
		Resetn: machine.NINA_RESETN,
	}
	dev := wifinina.New(&cfg)
	// Route the stdlib net stack through the co-processor.
	netdev.UseNetdev(dev)

	r := &ninaRadio{link: dev}
	// The notify callback runs on the driver's goroutine; up is atomic so
	// the cycle loop reads a consistent value.
	dev.NetNotify(func(e netlink.Event) {
		switch e {
		case netlink.EventNetUp:
			r.up.Store(true)
		case netlink.EventNetDown:
			r.up.Store(false)
		}
	})
	return r
}

func (r *ninaRadio) Connect(ssid, passphrase string, timeout time.Duration) error {
	err := r.link.NetConnect(&netlink.ConnectParams{
		Ssid:           ssid,
		Passphrase:     passphrase,
		ConnectTimeout: timeout,
	})
	if err != nil {
		r.up.Store(false)
		return classifyNinaError(err)
	}
	r.up.Store(true)
	return nil
}

func (r *ninaRadio) Disconnect() {
	r.link.NetDisconnect()
	r.up.Store(false)
}

func (r *ninaRadio) Connected() bool { return r.up.Load() }

// classifyNinaError folds driver errors onto the HAL sentinels. The NINA
// firmware does not report a distinct auth-failure reason code, so credential
// problems surface as timeouts after the retry budget; only missing
// credentials can be flagged as non-retryable here.
func classifyNinaError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "SSID"):
		return ErrAuthRejected
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return ErrAssocTimeout
	default:
		return ErrRadioFault
	}
}
