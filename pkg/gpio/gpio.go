// Package gpio provides the digital output lines the matrix driver
// bit-bangs through: a Linux character-device implementation for real
// hardware and a recording simulator for tests and dry runs.
package gpio

// Line is a single write-only digital output.
type Line interface {
	SetHigh() error
	SetLow() error
}

// NopLine discards all writes. Used by -sim runs without hardware attached.
type NopLine struct{}

func (NopLine) SetHigh() error { return nil }
func (NopLine) SetLow() error  { return nil }
