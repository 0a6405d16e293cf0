// Command pulsefield-web runs the field on ebiten, as a desktop window or,
// built for js/wasm, in a browser canvas. It carries no audio so the wasm
// build stays free of cgo.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/golang/glog"
	"github.com/san-kum/pulsefield/internal/config"
	"github.com/san-kum/pulsefield/internal/webview"
)

func main() {
	configFile := flag.String("config", "", "config file path (yaml or toml)")
	preset := flag.String("preset", "", "start from a named preset")
	width := flag.Int("width", 0, "window width")
	height := flag.Int("height", 0, "window height")
	flag.Parse()
	defer glog.Flush()

	cfg := config.DefaultConfig()
	if *preset != "" {
		if cfg = config.GetPreset(*preset); cfg == nil {
			glog.Exitf("unknown preset: %s (available: %v)", *preset, config.ListPresets())
		}
	}
	if *configFile != "" {
		if err := config.LoadInto(*configFile, cfg); err != nil {
			glog.Exitf("failed to load config: %v", err)
		}
	}

	field, err := cfg.NewField()
	if err != nil {
		glog.Exit(err)
	}

	opt := webview.Options{Width: *width, Height: *height, FPS: cfg.Render.FPS}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := webview.Run(ctx, field, opt); err != nil {
		glog.Errorf("webview: %v", err)
		os.Exit(1)
	}
}
