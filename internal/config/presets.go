package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"small": {
		Rows: 12, Cols: 12, Background: "black", Stroke: "white", IntervalMs: 100,
		Wave: WaveConfig{Offset: 10000, RDiv: 2000, GDiv: 4000, BDiv: 6000},
	},
	"wide": {
		Rows: 20, Cols: 60, Background: "#0a0a0a", Stroke: "#333333", IntervalMs: 100,
		Wave: WaveConfig{Offset: 10000, RDiv: 2000, GDiv: 4000, BDiv: 6000},
	},
	"slow": {
		Rows: 38, Cols: 38, Background: "black", Stroke: "gray", IntervalMs: 250,
		Wave: WaveConfig{Offset: 10000, RDiv: 8000, GDiv: 16000, BDiv: 24000},
	},
	"ripple": {
		Rows: 32, Cols: 32, Background: "navy", Stroke: "black", IntervalMs: 50,
		Wave: WaveConfig{Offset: 100, RDiv: 500, GDiv: 1000, BDiv: 1500},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
