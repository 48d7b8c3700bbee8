// Package matrix drives an 88x88 RGB LED wall built from two chains of 22
// shift-register ICs with 11:1 scanline multiplexing and 16-bit PWM per
// channel. Commands are encoded as DCLK pulse counts under LE; pixel data is
// shifted per scanline, MSB plane first, and made visible atomically by the
// VSYNC buffer swap.
package matrix

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hacklab-fi/ledwall/pkg/gpio"
)

// Panel geometry. 11 scanlines x 8 multiplexed rows = 88 rows; each chain of
// 22 ICs drives 16 LEDs per IC.
const (
	scanlines    = 11
	icsPerChain  = 22
	ledsPerIC    = 16
	pwmBits      = 16
	gclkPerScan  = 256
	chain2Offset = 44
)

// Pins names the thirteen output lines the panel is wired through.
type Pins struct {
	GCLK gpio.Line // multiplex clock
	DCLK gpio.Line // data shift clock
	LE   gpio.Line // latch enable / command strobe

	A0, A1, A2, A3 gpio.Line // scanline address, LSB on A0

	DR1, DG1, DB1 gpio.Line // data chain 1, rows 0-43
	DR2, DG2, DB2 gpio.Line // data chain 2, rows 44-87
}

func (p *Pins) all() []gpio.Line {
	return []gpio.Line{
		p.GCLK, p.DCLK, p.LE,
		p.A0, p.A1, p.A2, p.A3,
		p.DR1, p.DG1, p.DB1, p.DR2, p.DG2, p.DB2,
	}
}

// Timing holds the pulse-width knobs. Too-short DCLK pulses risk a panel
// that stays dark; they are never a memory-safety concern.
type Timing struct {
	DCLKPulse time.Duration // hold on each DCLK edge
	GCLKPulse time.Duration // hold on each GCLK edge
	Deadtime  time.Duration // settle hold bracketing the 257th GCLK pulse
}

// DefaultTiming is conservative; tighten it only against real hardware.
func DefaultTiming() Timing {
	return Timing{
		DCLKPulse: time.Microsecond,
		GCLKPulse: 0,
		Deadtime:  time.Millisecond,
	}
}

type Options struct {
	Timing Timing
	Logger zerolog.Logger

	// Delay replaces the hold used between pulse edges. Tests substitute a
	// no-op so pulse counts and ordering can be asserted without wall-clock
	// cost. Defaults to time.Sleep.
	Delay func(time.Duration)
}

// Driver owns the frame buffer and the GPIO lines. It is not goroutine-safe:
// a single refresh goroutine must own it, and nothing else may drive the
// lines while it lives.
type Driver struct {
	pins   Pins
	fb     *FrameBuffer
	timing Timing
	delay  func(time.Duration)
	log    zerolog.Logger

	initialized bool

	// Write failures accumulated since the last flushErr. Keeping this out
	// of the per-pulse path means the hot loop never branches on errors.
	writeErrs int
	firstErr  error
}

// New initializes the panel: lines low, power settle, Reset, PreActive, then
// the configuration register write. Any GPIO failure during this sequence is
// fatal and aborts construction.
func New(pins Pins, opts Options) (*Driver, error) {
	if opts.Delay == nil {
		opts.Delay = time.Sleep
	}
	if opts.Timing == (Timing{}) {
		opts.Timing = DefaultTiming()
	}
	d := &Driver{
		pins:   pins,
		fb:     NewFrameBuffer(Width, Height),
		timing: opts.Timing,
		delay:  opts.Delay,
		log:    opts.Logger,
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Driver) init() error {
	if err := d.allLow(); err != nil {
		return fmt.Errorf("drive lines low: %w", err)
	}
	d.delay(100 * time.Millisecond) // power stabilization

	d.sendCommand(CmdReset)
	if _, err := d.flushErr(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	d.delay(10 * time.Millisecond)

	d.sendCommand(CmdPreActive)
	if _, err := d.flushErr(); err != nil {
		return fmt.Errorf("pre-active: %w", err)
	}
	d.delay(time.Millisecond)

	d.sendConfig(DefaultConfig)
	if _, err := d.flushErr(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	d.initialized = true
	d.log.Debug().Msg("matrix initialized")
	return nil
}

// Buffer exposes the frame buffer for direct pixel access.
func (d *Driver) Buffer() *FrameBuffer { return d.fb }

// set drives one line, recording rather than propagating failures so the
// timing-critical paths stay branch-free.
func (d *Driver) set(l gpio.Line, high bool) {
	var err error
	if high {
		err = l.SetHigh()
	} else {
		err = l.SetLow()
	}
	if err != nil {
		d.writeErrs++
		if d.firstErr == nil {
			d.firstErr = err
		}
	}
}

// flushErr reports and clears the write failures accumulated since the last
// call.
func (d *Driver) flushErr() (int, error) {
	n, err := d.writeErrs, d.firstErr
	d.writeErrs, d.firstErr = 0, nil
	return n, err
}

func (d *Driver) hold(t time.Duration) {
	if t > 0 {
		d.delay(t)
	}
}

func (d *Driver) pulseDCLK() {
	d.set(d.pins.DCLK, true)
	d.hold(d.timing.DCLKPulse)
	d.set(d.pins.DCLK, false)
	d.hold(d.timing.DCLKPulse)
}

func (d *Driver) pulseGCLK(n int) {
	for i := 0; i < n; i++ {
		d.set(d.pins.GCLK, true)
		d.hold(d.timing.GCLKPulse)
		d.set(d.pins.GCLK, false)
		d.hold(d.timing.GCLKPulse)
	}
}

// sendCommand emits cmd as its DCLK pulse count with LE held high.
func (d *Driver) sendCommand(cmd Command) {
	d.set(d.pins.LE, true)
	for i := 0; i < int(cmd); i++ {
		d.pulseDCLK()
	}
	d.set(d.pins.LE, false)
}

// sendConfig shifts a 16-bit configuration value MSB-first on DR1 and
// latches it.
func (d *Driver) sendConfig(value uint16) {
	d.sendCommand(CmdWriteConfig)
	for bit := pwmBits - 1; bit >= 0; bit-- {
		d.set(d.pins.DR1, value&(1<<uint(bit)) != 0)
		d.pulseDCLK()
	}
	d.sendCommand(CmdDataLatch)
}

// setScanline drives the 4-bit scanline address, LSB on A0.
func (d *Driver) setScanline(addr int) {
	d.set(d.pins.A0, addr&0x01 != 0)
	d.set(d.pins.A1, addr&0x02 != 0)
	d.set(d.pins.A2, addr&0x04 != 0)
	d.set(d.pins.A3, addr&0x08 != 0)
}

// sendScanlineData shifts one scanline's pixel data into both chains, MSB
// plane first. Chain 1 carries row scanline*8, chain 2 the row 44 below it;
// columns past the panel edge shift zeros so the pulse count stays fixed at
// 22*16*16 = 5632. LE is raised for the final pulse only, committing the
// whole scanline atomically.
func (d *Driver) sendScanlineData(scanline int) {
	row1 := scanline * 8
	row2 := scanline*8 + chain2Offset

	for ic := 0; ic < icsPerChain; ic++ {
		for bit := pwmBits - 1; bit >= 0; bit-- {
			mask := uint16(1) << uint(bit)
			for led := 0; led < ledsPerIC; led++ {
				col := ic*ledsPerIC + led

				var p1, p2 Pixel
				if col < Width {
					p1 = d.fb.At(col, row1)
					if row2 < Height {
						p2 = d.fb.At(col, row2)
					}
				}

				d.set(d.pins.DR1, p1.R&mask != 0)
				d.set(d.pins.DG1, p1.G&mask != 0)
				d.set(d.pins.DB1, p1.B&mask != 0)
				d.set(d.pins.DR2, p2.R&mask != 0)
				d.set(d.pins.DG2, p2.G&mask != 0)
				d.set(d.pins.DB2, p2.B&mask != 0)

				last := ic == icsPerChain-1 && bit == 0 && led == ledsPerIC-1
				if last {
					d.set(d.pins.LE, true)
				}
				d.pulseDCLK()
				if last {
					d.set(d.pins.LE, false)
				}
			}
		}
	}
}

// Refresh pushes one complete frame and must be called continuously. All
// scanline data is shifted first, then the multiplexed scan runs with VSYNC
// issued on the last scanline, so a frame becomes visible only when fully
// loaded. Steady-state GPIO failures are logged once per frame and never
// abort the frame.
func (d *Driver) Refresh() {
	if !d.initialized {
		return
	}

	for s := 0; s < scanlines; s++ {
		d.sendScanlineData(s)
	}

	for s := 0; s < scanlines; s++ {
		d.setScanline(s)
		d.pulseGCLK(gclkPerScan)

		if s == scanlines-1 {
			d.sendCommand(CmdVsync)
		}

		// 257th dead-time pulse lets the row settle before the next address.
		d.hold(d.timing.Deadtime)
		d.set(d.pins.GCLK, true)
		d.hold(d.timing.Deadtime)
		d.set(d.pins.GCLK, false)
	}

	if n, err := d.flushErr(); n > 0 {
		d.log.Warn().Int("failed_writes", n).Err(err).Msg("GPIO writes failed during refresh")
	}
}

// Close blanks the panel state and drives every line low. The driver is
// unusable afterwards; build a new one to reinitialize.
func (d *Driver) Close() error {
	d.initialized = false
	d.fb.Clear()
	return d.allLow()
}

func (d *Driver) allLow() error {
	for _, l := range d.pins.all() {
		d.set(l, false)
	}
	_, err := d.flushErr()
	return err
}
