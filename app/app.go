// Package app wires the HAL, config, and pipeline stages into the running
// firmware.
package app

import (
	"context"
	"time"

	"solpanel/config"
	"solpanel/fetch"
	"solpanel/hal"
	"solpanel/internal/buildinfo"
	"solpanel/link"
	"solpanel/refresh"
	"solpanel/render"
)

const splashDuration = 2 * time.Second

// Run executes the boot sequence and then the refresh loop. cycles limits the
// number of loop iterations; zero means run until ctx is canceled.
func Run(ctx context.Context, h hal.HAL, cfg config.Config, cycles uint64) error {
	w, hgt := h.Display().Size()
	renderer := render.New(w, hgt, cfg.Display.ShowQR)
	log := h.Logger()

	log.WriteLineString("solpanel " + buildinfo.Short())
	commit(h, log, renderer.Banner("SOLPANEL", buildinfo.Short()))
	if err := sleep(ctx, splashDuration); err != nil {
		return err
	}
	commit(h, log, renderer.Banner("CONNECTING WIFI", cfg.WiFi.SSID))

	lnk := link.New(h.Radio(), cfg.WiFi.SSID, cfg.WiFi.Passphrase, cfg.ConnectTimeout())
	fetcher := fetch.New(cfg.Solana.RPCEndpoint, cfg.Price.Endpoint, cfg.Solana.Wallet, cfg.RequestTimeout())
	orch := refresh.New(lnk, fetcher, renderer, h.Display(), h.LED(), log, refresh.Options{
		Interval: cfg.Interval(),
	})

	if cycles == 0 {
		return orch.Run(ctx)
	}
	for i := uint64(0); i < cycles; i++ {
		delay := orch.RunCycle(ctx)
		if i == cycles-1 {
			break
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
	return nil
}

// FailConfig is the fail-fast path for an invalid configuration: report it on
// every surface the device has and hold there.
func FailConfig(h hal.HAL, err error) {
	w, hgt := h.Display().Size()
	renderer := render.New(w, hgt, false)
	log := h.Logger()
	log.WriteLineString("config: " + err.Error())
	commit(h, log, renderer.Fatal("CONFIG ERROR", "SEE SERIAL LOG"))
	for {
		h.LED().High()
		time.Sleep(250 * time.Millisecond)
		h.LED().Low()
		time.Sleep(250 * time.Millisecond)
	}
}

func commit(h hal.HAL, log hal.Logger, f *hal.Frame) {
	if err := h.Display().Commit(f); err != nil {
		log.WriteLineString("display: " + err.Error())
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	select {
	case <-ctx.Done():
		t.Stop()
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
