package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/pulsefield/internal/wavefield"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS     = 60
	DefaultBackend = BackendRaylib
	DefaultDataDir = ".pulsefield"
	DefaultTheme   = "ember"
	DefaultSteps   = 8
	DefaultVolume  = 0.2
	DefaultTone    = 110.0
)

// Hosts the pulsefield binary can open. The ebiten host ships as its own
// binary, pulsefield-web.
const (
	BackendRaylib = "raylib"
	BackendTUI    = "tui"
	BackendEbiten = "ebiten"
)

var ErrUnknownBackend = errors.New("config: unknown backend")

type Config struct {
	Field   FieldConfig  `yaml:"field" toml:"field"`
	Style   StyleConfig  `yaml:"style" toml:"style"`
	Render  RenderConfig `yaml:"render" toml:"render"`
	Audio   AudioConfig  `yaml:"audio" toml:"audio"`
	DataDir string       `yaml:"data_dir" toml:"data_dir"`
	Seed    int64        `yaml:"seed" toml:"seed"`
}

type FieldConfig struct {
	Count                int     `yaml:"count" toml:"count"`
	Width                float64 `yaml:"width" toml:"width"`
	Height               float64 `yaml:"height" toml:"height"`
	PhaseSpeedMin        float64 `yaml:"phase_speed_min" toml:"phase_speed_min"`
	PhaseSpeedMax        float64 `yaml:"phase_speed_max" toml:"phase_speed_max"`
	AmplitudeMin         float64 `yaml:"amplitude_min" toml:"amplitude_min"`
	AmplitudeMax         float64 `yaml:"amplitude_max" toml:"amplitude_max"`
	PulseThreshold       float64 `yaml:"pulse_threshold" toml:"pulse_threshold"`
	PulseGate            float64 `yaml:"pulse_gate" toml:"pulse_gate"`
	PulseRate            float64 `yaml:"pulse_rate" toml:"pulse_rate"`
	PulseGain            float64 `yaml:"pulse_gain" toml:"pulse_gain"`
	RippleRate           float64 `yaml:"ripple_rate" toml:"ripple_rate"`
	RippleStrength       float64 `yaml:"ripple_strength" toml:"ripple_strength"`
	RippleGrowth         float64 `yaml:"ripple_growth" toml:"ripple_growth"`
	RippleDecay          float64 `yaml:"ripple_decay" toml:"ripple_decay"`
	MaxRippleAge         int     `yaml:"max_ripple_age" toml:"max_ripple_age"`
	MaxRipples           int     `yaml:"max_ripples" toml:"max_ripples"`
	ClearRipplesOnResize bool    `yaml:"clear_ripples_on_resize" toml:"clear_ripples_on_resize"`
}

type StyleConfig struct {
	Fade         string  `yaml:"fade" toml:"fade"`
	FadeAlpha    float64 `yaml:"fade_alpha" toml:"fade_alpha"`
	Stroke       string  `yaml:"stroke" toml:"stroke"`
	StrokeWidth  float64 `yaml:"stroke_width" toml:"stroke_width"`
	StrokeGlow   float64 `yaml:"stroke_glow" toml:"stroke_glow"`
	Marker       string  `yaml:"marker" toml:"marker"`
	MarkerRadius float64 `yaml:"marker_radius" toml:"marker_radius"`
	MarkerGlow   float64 `yaml:"marker_glow" toml:"marker_glow"`
	MarkerStride int     `yaml:"marker_stride" toml:"marker_stride"`
}

type RenderConfig struct {
	FPS     int    `yaml:"fps" toml:"fps"`
	Backend string `yaml:"backend" toml:"backend"`
	Theme   string `yaml:"theme" toml:"theme"`
	// Steps is how many line segments approximate each curve segment on
	// surfaces without native curves.
	Steps int `yaml:"steps" toml:"steps"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Volume  float64 `yaml:"volume" toml:"volume"`
	Tone    float64 `yaml:"tone" toml:"tone"`
}

func DefaultConfig() *Config {
	p := wavefield.DefaultParams()
	return &Config{
		Field: FieldConfig{
			Count:          p.Count,
			Width:          p.Width,
			Height:         p.Height,
			PhaseSpeedMin:  p.PhaseSpeedMin,
			PhaseSpeedMax:  p.PhaseSpeedMax,
			AmplitudeMin:   p.AmplitudeMin,
			AmplitudeMax:   p.AmplitudeMax,
			PulseThreshold: p.PulseThreshold,
			PulseGate:      p.PulseGate,
			PulseRate:      p.PulseRate,
			PulseGain:      p.PulseGain,
			RippleRate:     p.RippleRate,
			RippleStrength: p.RippleStrength,
			RippleGrowth:   p.RippleGrowth,
			RippleDecay:    p.RippleDecay,
			MaxRippleAge:   p.MaxRippleAge,
		},
		Style: StyleConfig{
			Fade:         "#050505",
			FadeAlpha:    0.08,
			Stroke:       "#FF4D00",
			StrokeWidth:  3,
			StrokeGlow:   20,
			Marker:       "#FF4D00",
			MarkerRadius: 4,
			MarkerGlow:   15,
			MarkerStride: 4,
		},
		Render: RenderConfig{
			FPS:     DefaultFPS,
			Backend: DefaultBackend,
			Theme:   DefaultTheme,
			Steps:   DefaultSteps,
		},
		Audio: AudioConfig{
			Volume: DefaultVolume,
			Tone:   DefaultTone,
		},
		DataDir: DefaultDataDir,
	}
}

// Load reads a yaml or toml file, chosen by extension, over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the file at path onto cfg; keys missing from the file
// keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %q: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %q: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

// Host returns the normalized Render.Backend, the host opened when
// pulsefield runs without a subcommand.
func (c *Config) Host() (string, error) {
	switch b := strings.ToLower(strings.TrimSpace(c.Render.Backend)); b {
	case "", BackendRaylib, "gui":
		return BackendRaylib, nil
	case BackendTUI, "terminal":
		return BackendTUI, nil
	case BackendEbiten, "web":
		return BackendEbiten, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, c.Render.Backend)
	}
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(cfg)
		data = []byte(sb.String())
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) FieldParams() wavefield.Params {
	f := c.Field
	return wavefield.Params{
		Count:                f.Count,
		Width:                f.Width,
		Height:               f.Height,
		PhaseSpeedMin:        f.PhaseSpeedMin,
		PhaseSpeedMax:        f.PhaseSpeedMax,
		AmplitudeMin:         f.AmplitudeMin,
		AmplitudeMax:         f.AmplitudeMax,
		PulseThreshold:       f.PulseThreshold,
		PulseGate:            f.PulseGate,
		PulseRate:            f.PulseRate,
		PulseGain:            f.PulseGain,
		RippleRate:           f.RippleRate,
		RippleStrength:       f.RippleStrength,
		RippleGrowth:         f.RippleGrowth,
		RippleDecay:          f.RippleDecay,
		MaxRippleAge:         f.MaxRippleAge,
		MaxRipples:           f.MaxRipples,
		ClearRipplesOnResize: f.ClearRipplesOnResize,
		Seed:                 c.Seed,
	}
}

func (c *Config) WaveStyle() (wavefield.Style, error) {
	s := c.Style
	fade, err := ParseHex(s.Fade)
	if err != nil {
		return wavefield.Style{}, fmt.Errorf("style.fade: %w", err)
	}
	fade.A = uint8(clamp01(s.FadeAlpha)*255 + 0.5)
	stroke, err := ParseHex(s.Stroke)
	if err != nil {
		return wavefield.Style{}, fmt.Errorf("style.stroke: %w", err)
	}
	marker, err := ParseHex(s.Marker)
	if err != nil {
		return wavefield.Style{}, fmt.Errorf("style.marker: %w", err)
	}
	return wavefield.Style{
		Fade:         fade,
		Stroke:       stroke,
		StrokeWidth:  s.StrokeWidth,
		StrokeGlow:   s.StrokeGlow,
		Marker:       marker,
		MarkerRadius: s.MarkerRadius,
		MarkerGlow:   s.MarkerGlow,
		MarkerStride: s.MarkerStride,
	}, nil
}

// NewField builds a field with this config's parameters and style.
func (c *Config) NewField() (*wavefield.Field, error) {
	style, err := c.WaveStyle()
	if err != nil {
		return nil, err
	}
	f, err := wavefield.New(c.FieldParams())
	if err != nil {
		return nil, err
	}
	f.SetStyle(style)
	return f, nil
}

// ParseHex parses "#rrggbb" or "#rgb" into an opaque color.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
