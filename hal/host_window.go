//go:build !tinygo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

const windowScale = 4

// RunWindow opens a desktop window mirroring the simulated display and blocks
// until the window closes. The HAL must come from NewHost.
func RunWindow(h HAL, title string) error {
	hh, ok := h.(*hostHAL)
	if !ok {
		return ErrNotImplemented
	}
	g := &hostGame{disp: hh.disp}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(hh.disp.w*windowScale, hh.disp.h*windowScale)
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

type hostGame struct {
	disp  *hostDisplay
	img   *image.RGBA
	fbImg *ebiten.Image
}

func (g *hostGame) Update() error { return nil }

func (g *hostGame) Draw(screen *ebiten.Image) {
	w, h := g.disp.Size()
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.fbImg = ebiten.NewImage(w, h)
	}

	f := g.disp.Snapshot()
	pix := g.img.Pix
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var v byte
			if f != nil && f.At(x, y) {
				v = 0xFF
			}
			j := (y*w + x) * 4
			pix[j+0] = v
			pix[j+1] = v
			pix[j+2] = v
			pix[j+3] = 0xFF
		}
	}

	g.fbImg.ReplacePixels(pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.disp.w, g.disp.h
}
