// pintest toggles each configured panel line in turn so the wiring can be
// probed with a scope or a bare LED.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/hacklab-fi/ledwall/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	interval := flag.Duration("interval", 500*time.Millisecond, "toggle interval per line")
	cycles := flag.Int("cycles", 4, "high/low cycles per line")
	flag.Parse()

	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Printf("config load failed (%v), using defaults", err)
	} else {
		cfg = c
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := cfg.Pins
	named := []struct {
		name   string
		offset int
	}{
		{"GCLK", p.GCLK}, {"DCLK", p.DCLK}, {"LE", p.LE},
		{"A0", p.A0}, {"A1", p.A1}, {"A2", p.A2}, {"A3", p.A3},
		{"DR1", p.DR1}, {"DG1", p.DG1}, {"DB1", p.DB1},
		{"DR2", p.DR2}, {"DG2", p.DG2}, {"DB2", p.DB2},
	}

	for _, n := range named {
		select {
		case <-sigChan:
			log.Println("interrupted")
			return
		default:
		}

		log.Printf("toggling %s (offset %d) on %s", n.name, n.offset, cfg.Chip)
		line, err := gpiocdev.RequestLine(cfg.Chip, n.offset, gpiocdev.AsOutput(0))
		if err != nil {
			log.Printf("  failed to request line: %v", err)
			continue
		}

		for i := 0; i < *cycles; i++ {
			if err := line.SetValue(1); err != nil {
				log.Printf("  set high failed: %v", err)
				break
			}
			time.Sleep(*interval)
			if err := line.SetValue(0); err != nil {
				log.Printf("  set low failed: %v", err)
				break
			}
			time.Sleep(*interval)
		}
		line.Close()
	}

	log.Println("pin test complete")
}
