// ledwall drives an 88x88 shift-register LED wall and serves the web
// interface that sets its display text.
package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hacklab-fi/ledwall/internal/config"
	"github.com/hacklab-fi/ledwall/internal/matrix"
	"github.com/hacklab-fi/ledwall/internal/server"
	"github.com/hacklab-fi/ledwall/pkg/gpio"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		addr       = flag.String("addr", "", "HTTP listen address (overrides config)")
		chip       = flag.String("chip", "", "GPIO chip (overrides config)")
		simulate   = flag.Bool("sim", false, "run without hardware; GPIO writes are discarded")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
	} else {
		cfg = c
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *chip != "" {
		cfg.Chip = *chip
	}

	pins, closeLines, err := requestPins(cfg, *simulate)
	if err != nil {
		log.Fatal().Err(err).Str("chip", cfg.Chip).Msg("GPIO setup failed")
	}
	defer closeLines()

	drv, err := matrix.New(pins, matrix.Options{
		Timing: matrix.Timing{
			DCLKPulse: time.Duration(cfg.Timing.DCLKPulseNs) * time.Nanosecond,
			GCLKPulse: time.Duration(cfg.Timing.GCLKPulseNs) * time.Nanosecond,
			Deadtime:  time.Duration(cfg.Timing.DeadtimeUs) * time.Microsecond,
		},
		Logger: log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("matrix init failed")
	}
	defer drv.Close()

	store := matrix.NewTextStore(matrix.MaxChars())

	// The refresh goroutine alone touches the GPIO lines. It snapshots the
	// shared text once per frame; the store lock is never held while pulses
	// are emitted.
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		pause := time.Duration(cfg.Timing.FramePauseMs) * time.Millisecond
		rendered := false
		last := ""
		for {
			select {
			case <-stop:
				return
			default:
			}
			if text := store.Get(); !rendered || text != last {
				drv.DisplayText(text)
				last, rendered = text, true
			}
			drv.Refresh()
			if pause > 0 {
				time.Sleep(pause)
			}
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.New(store, log.Logger).Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.Addr).Bool("sim", *simulate).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	_ = srv.Close()
	close(stop)
	<-done
}

// requestPins claims the thirteen output lines, or returns NopLines in -sim
// mode. The cleanup func releases whatever was claimed.
func requestPins(cfg *config.Config, simulate bool) (matrix.Pins, func(), error) {
	if simulate {
		n := gpio.NopLine{}
		return matrix.Pins{
			GCLK: n, DCLK: n, LE: n,
			A0: n, A1: n, A2: n, A3: n,
			DR1: n, DG1: n, DB1: n, DR2: n, DG2: n, DB2: n,
		}, func() {}, nil
	}

	var lines []*gpio.CdevLine
	closeAll := func() {
		for _, l := range lines {
			_ = l.Close()
		}
	}

	var firstErr error
	request := func(offset int) gpio.Line {
		if firstErr != nil {
			return gpio.NopLine{}
		}
		l, err := gpio.RequestOutput(cfg.Chip, offset)
		if err != nil {
			firstErr = err
			return gpio.NopLine{}
		}
		lines = append(lines, l)
		return l
	}

	p := cfg.Pins
	pins := matrix.Pins{
		GCLK: request(p.GCLK), DCLK: request(p.DCLK), LE: request(p.LE),
		A0: request(p.A0), A1: request(p.A1), A2: request(p.A2), A3: request(p.A3),
		DR1: request(p.DR1), DG1: request(p.DG1), DB1: request(p.DB1),
		DR2: request(p.DR2), DG2: request(p.DG2), DB2: request(p.DB2),
	}
	if firstErr != nil {
		closeAll()
		return matrix.Pins{}, nil, firstErr
	}
	return pins, closeAll, nil
}
