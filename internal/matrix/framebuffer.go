package matrix

// Display dimensions in pixels.
const (
	Width  = 88
	Height = 88
)

// Pixel holds linear 16-bit PWM intensities, one per color channel.
type Pixel struct {
	R, G, B uint16
}

// FrameBuffer is the fixed-size pixel grid the refresh cycle reads from.
// The grid never resizes after construction and out-of-range writes are
// silent no-ops, so every operation is total.
type FrameBuffer struct {
	w, h int
	pix  []Pixel
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{w: w, h: h, pix: make([]Pixel, w*h)}
}

// Size returns the grid dimensions.
func (fb *FrameBuffer) Size() (w, h int) { return fb.w, fb.h }

// Clear turns every pixel off.
func (fb *FrameBuffer) Clear() {
	for i := range fb.pix {
		fb.pix[i] = Pixel{}
	}
}

// Set writes one pixel. Coordinates outside the grid are ignored.
func (fb *FrameBuffer) Set(x, y int, r, g, b uint16) {
	if x < 0 || x >= fb.w || y < 0 || y >= fb.h {
		return
	}
	fb.pix[y*fb.w+x] = Pixel{R: r, G: g, B: b}
}

// At returns the pixel at (x, y), or an off pixel outside the grid.
func (fb *FrameBuffer) At(x, y int) Pixel {
	if x < 0 || x >= fb.w || y < 0 || y >= fb.h {
		return Pixel{}
	}
	return fb.pix[y*fb.w+x]
}

// FillRect fills the inclusive rectangle (x1,y1)-(x2,y2), clamped to the
// grid.
func (fb *FrameBuffer) FillRect(x1, y1, x2, y2 int, r, g, b uint16) {
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 >= fb.w {
		x2 = fb.w - 1
	}
	if y2 >= fb.h {
		y2 = fb.h - 1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			fb.pix[y*fb.w+x] = Pixel{R: r, G: g, B: b}
		}
	}
}
