package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/golang/glog"
	"github.com/san-kum/pulsefield/internal/audio"
	"github.com/san-kum/pulsefield/internal/config"
	"github.com/san-kum/pulsefield/internal/gui"
	"github.com/san-kum/pulsefield/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	// live hosts
	width     int
	height    int
	withAudio bool
	theme     string
)

func main() {
	defer glog.Flush()

	rootCmd := &cobra.Command{
		Use:   "pulsefield",
		Short: "heartbeat wave field with click ripples",
		RunE:  runDefault,
	}
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a named preset")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	rootCmd.Flags().IntVar(&width, "width", 0, "window width")
	rootCmd.Flags().IntVar(&height, "height", 0, "window height")
	rootCmd.Flags().BoolVar(&withAudio, "audio", false, "play the heartbeat tone")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the desktop window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&width, "width", 0, "window width")
	guiCmd.Flags().IntVar(&height, "height", 0, "window height")
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "play the heartbeat tone")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the field in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "", "color theme")
	tuiCmd.Flags().BoolVar(&withAudio, "audio", false, "play the heartbeat tone")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %-10s %s\n", p, config.PresetInfo[p])
			}
			fmt.Println("\nthemes:")
			for _, t := range viz.ThemeNames() {
				fmt.Printf("  %s\n", t)
			}
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, presetsCmd)
	rootCmd.AddCommand(runCommands()...)
	rootCmd.AddCommand(renderCommands()...)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig applies, in order: defaults, --preset, --config, --seed, --data.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	glog.V(1).Infof("config: preset=%q file=%q seed=%d data=%s", preset, configFile, cfg.Seed, cfg.DataDir)
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// startAudio returns nil when audio is off or the device cannot be opened.
func startAudio(cfg *config.Config) *audio.Processor {
	if !withAudio && !cfg.Audio.Enabled {
		return nil
	}
	p := audio.NewProcessor(audio.NewSynth(cfg.Audio.Tone, cfg.Audio.Volume))
	if err := p.Start(); err != nil {
		glog.Warningf("audio disabled: %v", err)
		return nil
	}
	return p
}

// runDefault opens the host named by the config's render backend.
func runDefault(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	host, err := cfg.Host()
	if err != nil {
		return err
	}
	switch host {
	case config.BackendTUI:
		return runTUI(cmd, args)
	case config.BackendEbiten:
		return fmt.Errorf("the ebiten host is a separate binary: run pulsefield-web")
	default:
		return runGUI(cmd, args)
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	field, err := cfg.NewField()
	if err != nil {
		return err
	}

	proc := startAudio(cfg)
	if proc != nil {
		defer proc.Stop()
	}
	gui.Run(field, gui.Options{
		Width:  int32(width),
		Height: int32(height),
		FPS:    cfg.Render.FPS,
		Steps:  cfg.Render.Steps,
		Audio:  proc,
	})
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opt := viz.Options{
		FPS:    cfg.Render.FPS,
		Theme:  cfg.Render.Theme,
		GIFDir: cfg.DataDir,
	}
	if theme != "" {
		opt.Theme = theme
	}
	if proc := startAudio(cfg); proc != nil {
		defer proc.Stop()
		opt.Observers = append(opt.Observers, proc)
	}

	// with nothing chosen up front, let the user pick a preset
	if preset == "" && configFile == "" {
		return viz.RunInteractive(cfg, opt)
	}
	field, err := cfg.NewField()
	if err != nil {
		return err
	}
	return viz.Run(field, opt)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
