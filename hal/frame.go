package hal

// Frame is a 1-bit-per-pixel buffer: row-major, MSB first, one full display
// worth of pixels. Frames are built from scratch each refresh cycle and handed
// to Display.Commit whole.
type Frame struct {
	W, H int
	Bits []byte
}

// NewFrame returns a cleared frame of the given dimensions.
func NewFrame(w, h int) *Frame {
	f := &Frame{W: w, H: h}
	f.Bits = make([]byte, f.Stride()*h)
	return f
}

// Stride returns the number of bytes per pixel row.
func (f *Frame) Stride() int { return (f.W + 7) / 8 }

// Set turns the pixel at (x, y) on or off. Out-of-bounds writes are dropped.
func (f *Frame) Set(x, y int, on bool) {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return
	}
	i := y*f.Stride() + x/8
	mask := byte(0x80) >> (x % 8)
	if on {
		f.Bits[i] |= mask
	} else {
		f.Bits[i] &^= mask
	}
}

// At reports whether the pixel at (x, y) is on. Out of bounds reads as off.
func (f *Frame) At(x, y int) bool {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return false
	}
	return f.Bits[y*f.Stride()+x/8]&(byte(0x80)>>(x%8)) != 0
}

// Clear turns every pixel off.
func (f *Frame) Clear() {
	for i := range f.Bits {
		f.Bits[i] = 0
	}
}

// Clone returns an independent copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{W: f.W, H: f.H, Bits: make([]byte, len(f.Bits))}
	copy(c.Bits, f.Bits)
	return c
}
