//go:build tinygo

package main

import (
	"context"

	"solpanel/app"
	"solpanel/config"
	"solpanel/hal"
)

func main() {
	h := hal.New()
	cfg, err := config.Compiled()
	if err != nil {
		app.FailConfig(h, err)
	}
	app.Run(context.Background(), h, cfg, 0)
}
