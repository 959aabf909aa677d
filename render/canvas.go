package render

import (
	"image/color"

	"solpanel/hal"

	"tinygo.org/x/tinyfont"
)

var pixelOn = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// canvas adapts hal.Frame to the Displayer contract tinyfont draws on.
// Display is a no-op: committing the finished frame is the orchestrator's job.
type canvas struct {
	f *hal.Frame
}

func (c *canvas) Size() (int16, int16) { return int16(c.f.W), int16(c.f.H) }

func (c *canvas) SetPixel(x, y int16, col color.RGBA) {
	c.f.Set(int(x), int(y), col.R != 0 || col.G != 0 || col.B != 0)
}

func (c *canvas) Display() error { return nil }

func text(f *hal.Frame, font tinyfont.Fonter, x, y int16, s string) {
	tinyfont.WriteLine(&canvas{f: f}, font, x, y, s, pixelOn)
}

func textWidth(font tinyfont.Fonter, s string) int {
	w, _ := tinyfont.LineWidth(font, s)
	return int(w)
}

func centered(f *hal.Frame, font tinyfont.Fonter, y int16, s string) {
	x := (f.W - textWidth(font, s)) / 2
	if x < 0 {
		x = 0
	}
	text(f, font, int16(x), y, s)
}

func hline(f *hal.Frame, x0, x1, y int) {
	for x := x0; x <= x1; x++ {
		f.Set(x, y, true)
	}
}

func vline(f *hal.Frame, x, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		f.Set(x, y, true)
	}
}

func rect(f *hal.Frame, x0, y0, x1, y1 int) {
	hline(f, x0, x1, y0)
	hline(f, x0, x1, y1)
	vline(f, x0, y0, y1)
	vline(f, x1, y0, y1)
}

func fillRect(f *hal.Frame, x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		hline(f, x0, x1, y)
	}
}
