//go:build tinygo

package hal

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"
)

const (
	oledAddress = 0x3C
	oledWidth   = 128
	oledHeight  = 64
)

type oledDisplay struct {
	dev *ssd1306.Device
}

func newOLEDDisplay() *oledDisplay {
	machine.I2C0.Configure(machine.I2CConfig{Frequency: 400000})
	time.Sleep(10 * time.Millisecond)

	dev := ssd1306.NewI2C(machine.I2C0)
	dev.Configure(ssd1306.Config{
		Address: oledAddress,
		Width:   oledWidth,
		Height:  oledHeight,
	})
	dev.ClearDisplay()
	return &oledDisplay{dev: dev}
}

func (d *oledDisplay) Size() (int, int) { return oledWidth, oledHeight }

func (d *oledDisplay) Commit(f *Frame) error {
	if f == nil || f.W != oledWidth || f.H != oledHeight {
		return ErrBadFrame
	}
	on := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	d.dev.ClearBuffer()
	stride := f.Stride()
	for y := 0; y < f.H; y++ {
		row := y * stride
		for xb := 0; xb < stride; xb++ {
			b := f.Bits[row+xb]
			if b == 0 {
				continue
			}
			base := xb * 8
			for bit := 0; bit < 8; bit++ {
				if b&(0x80>>uint(bit)) != 0 {
					d.dev.SetPixel(int16(base+bit), int16(y), on)
				}
			}
		}
	}
	return d.dev.Display()
}
