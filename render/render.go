// Package render composes full display frames from the current snapshot and
// connection state. Rendering is pure: the same inputs always produce the
// same frame, so layout is testable without hardware.
package render

import (
	"strconv"
	"time"

	"solpanel/hal"
	"solpanel/model"

	"tinygo.org/x/tinyfont"
)

const (
	labelX = 4
	valueX = 30

	row1Y   = 14
	rowStep = 12

	footerY = 60
)

var (
	labelFont = &tinyfont.Picopixel
	valueFont = &tinyfont.TomThumb
)

// Renderer builds frames for a fixed display geometry.
type Renderer struct {
	w, h   int
	showQR bool
}

func New(w, h int, showQR bool) *Renderer {
	return &Renderer{w: w, h: h, showQR: showQR}
}

// Render composes the status view for one cycle. current may be nil before
// the first successful fetch; age is the time since current was fetched.
func (r *Renderer) Render(current *model.Snapshot, conn model.ConnectionState, age time.Duration) *hal.Frame {
	f := hal.NewFrame(r.w, r.h)
	rect(f, 0, 0, r.w-1, r.h-1)
	drawStatusGlyph(f, conn)

	if current == nil {
		centered(f, valueFont, int16(r.h/2-4), "WAITING FOR DATA")
		centered(f, labelFont, int16(r.h/2+8), connCaption(conn))
		return f
	}

	rows := []struct {
		label string
		value string
	}{
		{"USD", "$" + strconv.FormatFloat(current.PriceUSD, 'f', 2, 64)},
		{"BAL", strconv.FormatFloat(current.BalanceSOL, 'f', 2, 64)},
		{"SLOT", strconv.FormatUint(current.Slot, 10)},
		{"TPS", strconv.FormatUint(current.TPS, 10)},
	}
	y := int16(row1Y)
	for _, row := range rows {
		text(f, labelFont, labelX, y, row.label)
		text(f, valueFont, valueX, y, row.value)
		y += rowStep
	}

	if conn == model.Connected {
		text(f, labelFont, labelX, footerY, "UP "+fmtAge(age))
	} else {
		// Stale data stays on screen but is always marked as such.
		text(f, labelFont, labelX, footerY, "STALE "+fmtAge(age))
	}

	if r.showQR {
		drawQR(f, current.Address)
	}
	return f
}

// Banner renders a full-screen centered message, used for the boot sequence.
func (r *Renderer) Banner(lines ...string) *hal.Frame {
	f := hal.NewFrame(r.w, r.h)
	rect(f, 0, 0, r.w-1, r.h-1)
	y := int16(r.h/2 - (len(lines)-1)*6)
	for _, line := range lines {
		centered(f, valueFont, y, line)
		y += rowStep
	}
	return f
}

// Fatal renders the terminal error screen shown when the link reports a
// non-retryable failure.
func (r *Renderer) Fatal(title, detail string) *hal.Frame {
	f := hal.NewFrame(r.w, r.h)
	rect(f, 0, 0, r.w-1, r.h-1)
	rect(f, 2, 2, r.w-3, r.h-3)
	centered(f, valueFont, int16(r.h/2-8), title)
	centered(f, labelFont, int16(r.h/2+6), detail)
	drawStatusGlyph(f, model.Disconnected)
	return f
}

func connCaption(conn model.ConnectionState) string {
	switch conn {
	case model.Connecting:
		return "CONNECTING WIFI"
	case model.Connected, model.Degraded:
		return "LINK UP"
	default:
		return "LINK DOWN"
	}
}

// drawStatusGlyph puts a 7x7 link indicator in the top-right corner:
// filled square = connected, hollow = degraded, cross = down, dot = connecting.
func drawStatusGlyph(f *hal.Frame, conn model.ConnectionState) {
	x0 := f.W - 10
	y0 := 3
	switch conn {
	case model.Connected:
		fillRect(f, x0, y0, x0+6, y0+6)
	case model.Degraded:
		rect(f, x0, y0, x0+6, y0+6)
	case model.Connecting:
		fillRect(f, x0+2, y0+2, x0+4, y0+4)
	default:
		for i := 0; i <= 6; i++ {
			f.Set(x0+i, y0+i, true)
			f.Set(x0+6-i, y0+i, true)
		}
	}
}

func fmtAge(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d / time.Second)
	if s < 100 {
		return strconv.Itoa(s) + "s"
	}
	m := s / 60
	if m < 100 {
		return strconv.Itoa(m) + "m"
	}
	return strconv.Itoa(m/60) + "h"
}
