//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"solpanel/app"
	"solpanel/config"
	"solpanel/hal"
	"solpanel/internal/buildinfo"
)

func main() {
	var (
		cfgPath  = flag.String("config", "config.yaml", "Path to the YAML config file.")
		headless = flag.Bool("headless", false, "Run without a window, dumping frames to stdout.")
		cycles   = flag.Uint64("cycles", 0, "Stop after N refresh cycles (0 = run forever).")
		quiet    = flag.Bool("quiet", false, "Suppress LED state log lines.")

		radioFail    = flag.Int("radio-fail", 0, "Fail the first N connect attempts with a radio fault.")
		radioTimeout = flag.Int("radio-timeout", 0, "Time out the next N connect attempts after -radio-fail.")
		radioAuth    = flag.Bool("radio-auth-reject", false, "Reject all connect attempts as bad credentials.")
		radioDrop    = flag.Int("radio-drop-after", 0, "Drop the link after N health probes (0 = never).")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	h := hal.NewHost(hal.HostConfig{
		DumpFrames: *headless,
		QuietLED:   *quiet,
		Radio: hal.RadioScript{
			FailConnects:    *radioFail,
			TimeoutConnects: *radioTimeout,
			AuthReject:      *radioAuth,
			DropAfter:       *radioDrop,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *headless {
		if err := app.Run(ctx, h, cfg, *cycles); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	go func() {
		if err := app.Run(ctx, h, cfg, *cycles); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
	}()
	if err := hal.RunWindow(h, "solpanel ("+buildinfo.Short()+")"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
