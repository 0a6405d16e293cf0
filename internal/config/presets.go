package config

import "sort"

var Presets = map[string]func(*Config){
	// the page the effect was lifted from
	"original": func(c *Config) {
		c.Field.AmplitudeMin, c.Field.AmplitudeMax = 30, 70
	},
	"calm": func(c *Config) {
		c.Field.AmplitudeMin, c.Field.AmplitudeMax = 10, 25
		c.Field.PulseGain = 12
		c.Field.RippleStrength = 30
		c.Field.RippleDecay = 1
		c.Style.FadeAlpha = 0.05
	},
	"storm": func(c *Config) {
		c.Field.Count = 90
		c.Field.AmplitudeMin, c.Field.AmplitudeMax = 40, 90
		c.Field.PulseGain = 50
		c.Field.PhaseSpeedMin, c.Field.PhaseSpeedMax = 0.04, 0.08
		c.Field.MaxRipples = 32
		c.Field.ClearRipplesOnResize = true
		c.Style.FadeAlpha = 0.15
	},
}

var PresetInfo = map[string]string{
	"original": "the reference look, wide swings",
	"calm":     "low swells, long soft ripples",
	"storm":    "dense fast field, capped ripples",
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
