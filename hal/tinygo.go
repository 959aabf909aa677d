//go:build tinygo

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *serialLogger
	led    *pinLED
	radio  *ninaRadio
	disp   *oledDisplay
}

// New returns the Arduino Nano RP2040 Connect HAL implementation.
//
// Logging goes to the USB CDC serial. The SSD1306 sits on I2C0 at 0x3C and the
// NINA-W102 WiFi co-processor is wired to the board's dedicated SPI pins.
func New() HAL {
	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	return &tinyGoHAL{
		logger: &serialLogger{},
		led:    &pinLED{pin: ledPin},
		radio:  newNinaRadio(),
		disp:   newOLEDDisplay(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) Radio() Radio     { return h.radio }
func (h *tinyGoHAL) Display() Display { return h.disp }

type serialLogger struct{}

func (l *serialLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		machine.Serial.WriteByte(s[i])
	}
	machine.Serial.WriteByte('\r')
	machine.Serial.WriteByte('\n')
}

func (l *serialLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		machine.Serial.WriteByte(b[i])
	}
	machine.Serial.WriteByte('\r')
	machine.Serial.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }
