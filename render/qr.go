package render

import (
	"solpanel/hal"

	qrcode "github.com/skip2/go-qrcode"
)

// maxQRModules is the largest code edge that fits the reserved display
// region. A 44-character base58 address encodes as version 3 (29x29).
const maxQRModules = 33

// drawQR renders the payload as a QR code anchored to the bottom-right
// corner. A failure to generate, or a code too large for the region, omits
// the code rather than failing the frame.
func drawQR(f *hal.Frame, payload string) {
	if payload == "" {
		return
	}
	q, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return
	}
	q.DisableBorder = true
	bm := q.Bitmap()
	n := len(bm)
	if n == 0 || n > maxQRModules {
		return
	}

	x0 := f.W - n - 2
	y0 := f.H - n - 2
	if x0 < 0 || y0 < 0 {
		return
	}
	for y, row := range bm {
		for x, on := range row {
			if on {
				f.Set(x0+x, y0+y, true)
			}
		}
	}
}
