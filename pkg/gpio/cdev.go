package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevLine drives one GPIO line through the Linux GPIO character device.
type CdevLine struct {
	line *gpiocdev.Line
}

// RequestOutput claims a line on the given chip (e.g. "gpiochip0") as an
// output, initially low.
func RequestOutput(chip string, offset int) (*CdevLine, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request %s line %d: %w", chip, offset, err)
	}
	return &CdevLine{line: line}, nil
}

func (l *CdevLine) SetHigh() error { return l.line.SetValue(1) }

func (l *CdevLine) SetLow() error { return l.line.SetValue(0) }

// Close releases the line back to the kernel.
func (l *CdevLine) Close() error { return l.line.Close() }
