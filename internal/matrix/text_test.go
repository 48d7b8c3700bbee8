package matrix

import (
	"strings"
	"testing"
)

// textDriver builds a driver with just enough state for rendering tests; no
// GPIO is touched by DisplayText.
func textDriver() *Driver {
	return &Driver{fb: NewFrameBuffer(Width, Height)}
}

func buffersEqual(a, b *FrameBuffer) bool {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if a.At(x, y) != b.At(x, y) {
				return false
			}
		}
	}
	return true
}

func TestDisplayTextEmpty(t *testing.T) {
	d := textDriver()
	d.Buffer().FillRect(0, 0, Width-1, Height-1, 1, 2, 3)

	d.DisplayText("")

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if d.Buffer().At(x, y) != (Pixel{}) {
				t.Fatalf("pixel (%d,%d) lit after empty text", x, y)
			}
		}
	}
}

func TestDisplayTextPlacesGlyphs(t *testing.T) {
	d := textDriver()
	d.DisplayText("HI")

	startY := (Height - fontHeight) / 2
	want := make(map[[2]int]bool)
	for i, ch := range "HI" {
		g, ok := glyph(ch)
		if !ok {
			t.Fatalf("no glyph for %q", ch)
		}
		gx := textMargin + i*(fontWidth+charSpacing)
		for col := 0; col < fontWidth; col++ {
			for row := 0; row < fontHeight; row++ {
				if g[col]&(1<<uint(row)) != 0 {
					want[[2]int{gx + col, startY + row}] = true
				}
			}
		}
	}

	white := Pixel{R: 0xFFFF, G: 0xFFFF, B: 0xFFFF}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			got := d.Buffer().At(x, y)
			if want[[2]int{x, y}] {
				if got != white {
					t.Fatalf("pixel (%d,%d) = %+v, want full white", x, y, got)
				}
			} else if got != (Pixel{}) {
				t.Fatalf("pixel (%d,%d) lit unexpectedly", x, y)
			}
		}
	}
}

func TestDisplayTextTruncates(t *testing.T) {
	d := textDriver()
	long := strings.Repeat("A", 3*MaxChars())
	d.DisplayText(long)

	// The last rendered character starts at the final in-bounds cursor
	// position; nothing may appear past its right edge.
	lastX := textMargin + (MaxChars()-1)*(fontWidth+charSpacing)
	limit := lastX + fontWidth
	for y := 0; y < Height; y++ {
		for x := limit; x < Width; x++ {
			if d.Buffer().At(x, y) != (Pixel{}) {
				t.Fatalf("pixel (%d,%d) lit past truncation point", x, y)
			}
		}
	}
	// The final kept character did render.
	if d.Buffer().At(lastX, (Height-fontHeight)/2+1) == (Pixel{}) {
		t.Error("final kept character missing")
	}

	// Truncation is deterministic: same input, same buffer.
	d2 := textDriver()
	d2.DisplayText(long)
	if !buffersEqual(d.Buffer(), d2.Buffer()) {
		t.Error("repeated render of the same text differs")
	}
}

func TestDisplayTextUnknownRuneAdvancesCursor(t *testing.T) {
	d1 := textDriver()
	d1.DisplayText("A~A") // '~' has no glyph

	d2 := textDriver()
	d2.DisplayText("A A") // space glyph is blank

	if !buffersEqual(d1.Buffer(), d2.Buffer()) {
		t.Error("glyph miss should leave a blank cell and advance the cursor")
	}
}

func TestDisplayTextFoldsLowercase(t *testing.T) {
	d1 := textDriver()
	d1.DisplayText("hi")
	d2 := textDriver()
	d2.DisplayText("HI")

	if !buffersEqual(d1.Buffer(), d2.Buffer()) {
		t.Error("lowercase should render with the uppercase glyphs")
	}
}

func TestMaxChars(t *testing.T) {
	if got := MaxChars(); got != 13 {
		t.Errorf("MaxChars() = %d, want 13 for the 5x7 face on an 88px row", got)
	}
}

func TestTextStoreBounds(t *testing.T) {
	s := NewTextStore(5)
	s.Set("HELLO WORLD")
	if got := s.Get(); got != "HELLO" {
		t.Errorf("Get() = %q, want %q", got, "HELLO")
	}

	s.Set("HI")
	if got := s.Get(); got != "HI" {
		t.Errorf("Get() = %q, want %q", got, "HI")
	}

	unbounded := NewTextStore(0)
	unbounded.Set("HELLO WORLD")
	if got := unbounded.Get(); got != "HELLO WORLD" {
		t.Errorf("unbounded Get() = %q, want full text", got)
	}
}
