package matrix

import "sync"

// textMargin is the fixed left margin for rendered text, in pixels.
const textMargin = 4

// DisplayText rasterizes a single line of text into the frame buffer: white
// at full intensity, vertically centered, starting at the left margin.
// Characters that would cross the usable right edge are dropped, never
// wrapped, so truncation happens at the same index on every call.
func (d *Driver) DisplayText(text string) {
	d.fb.Clear()
	if text == "" {
		return
	}

	startY := (Height - fontHeight) / 2
	x := textMargin

	for _, ch := range text {
		if x+fontWidth > Width-fontWidth {
			break
		}
		if g, ok := glyph(ch); ok {
			d.drawGlyph(g, x, startY)
		}
		x += fontWidth + charSpacing
	}
}

func (d *Driver) drawGlyph(g [fontWidth]byte, x, y int) {
	for col := 0; col < fontWidth; col++ {
		for row := 0; row < fontHeight; row++ {
			if g[col]&(1<<uint(row)) != 0 {
				d.fb.Set(x+col, y+row, 0xFFFF, 0xFFFF, 0xFFFF)
			}
		}
	}
}

// Clear blanks the display on the next refresh.
func (d *Driver) Clear() {
	d.fb.Clear()
}

// MaxChars reports how many characters DisplayText renders before
// truncating. The text-input boundary bounds submissions to this.
func MaxChars() int {
	n := 0
	for x := textMargin; x+fontWidth <= Width-fontWidth; x += fontWidth + charSpacing {
		n++
	}
	return n
}

// TextStore is the display text shared between the network handlers and the
// refresh goroutine. The lock is held only for the copy, never while pulses
// are being emitted.
type TextStore struct {
	mu   sync.Mutex
	text string
	max  int
}

// NewTextStore bounds stored text to max characters; 0 means unbounded.
func NewTextStore(max int) *TextStore {
	return &TextStore{max: max}
}

// Set replaces the stored text, truncating to the bound.
func (s *TextStore) Set(text string) {
	if s.max > 0 {
		if r := []rune(text); len(r) > s.max {
			text = string(r[:s.max])
		}
	}
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Get snapshots the latest text.
func (s *TextStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}
