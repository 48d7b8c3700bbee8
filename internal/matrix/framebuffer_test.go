package matrix

import "testing"

func TestFrameBufferSetAt(t *testing.T) {
	fb := NewFrameBuffer(Width, Height)

	coords := []struct{ x, y int }{
		{0, 0}, {Width - 1, 0}, {0, Height - 1}, {Width - 1, Height - 1}, {17, 63},
	}
	for _, c := range coords {
		fb.Set(c.x, c.y, 0x1234, 0x5678, 0x9ABC)
		got := fb.At(c.x, c.y)
		if got.R != 0x1234 || got.G != 0x5678 || got.B != 0x9ABC {
			t.Errorf("At(%d,%d) = %+v after Set, want {1234 5678 9abc}", c.x, c.y, got)
		}
	}
}

func TestFrameBufferOutOfBoundsIsNoop(t *testing.T) {
	fb := NewFrameBuffer(Width, Height)

	oob := []struct{ x, y int }{
		{-1, 0}, {0, -1}, {Width, 0}, {0, Height}, {Width, Height}, {-5, -5}, {1000, 1000},
	}
	for _, c := range oob {
		fb.Set(c.x, c.y, 0xFFFF, 0xFFFF, 0xFFFF)
	}

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if fb.At(x, y) != (Pixel{}) {
				t.Fatalf("pixel (%d,%d) changed by out-of-bounds writes", x, y)
			}
		}
	}

	// Reads outside the grid return an off pixel.
	if fb.At(-1, 4) != (Pixel{}) || fb.At(4, Height) != (Pixel{}) {
		t.Error("out-of-bounds At should return zero pixel")
	}
}

func TestFrameBufferClear(t *testing.T) {
	fb := NewFrameBuffer(Width, Height)
	fb.FillRect(0, 0, Width-1, Height-1, 0xAAAA, 0xBBBB, 0xCCCC)

	fb.Clear()

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if fb.At(x, y) != (Pixel{}) {
				t.Fatalf("pixel (%d,%d) not cleared", x, y)
			}
		}
	}
}

func TestFrameBufferFillRectClamps(t *testing.T) {
	fb := NewFrameBuffer(Width, Height)

	// Rectangle sticking out on all sides fills exactly the intersection.
	fb.FillRect(-10, 80, 10, 200, 0x0101, 0x0202, 0x0303)

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			want := Pixel{}
			if x <= 10 && y >= 80 {
				want = Pixel{R: 0x0101, G: 0x0202, B: 0x0303}
			}
			if fb.At(x, y) != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, fb.At(x, y), want)
			}
		}
	}
}

func TestFrameBufferFillRectInclusive(t *testing.T) {
	fb := NewFrameBuffer(Width, Height)
	fb.FillRect(2, 3, 4, 5, 1, 1, 1)

	if fb.At(4, 5) == (Pixel{}) {
		t.Error("fill should include the (x2,y2) corner")
	}
	if fb.At(5, 5) != (Pixel{}) || fb.At(4, 6) != (Pixel{}) {
		t.Error("fill leaked past the (x2,y2) corner")
	}
}
