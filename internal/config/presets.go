package config

import "sort"

// Presets override truncation and sampling; the model source is kept.
var Presets = map[string]*Config{
	"point":  {Degree: 1, Order: -1, LatStep: 10, LonStep: 10, Samples: 64},
	"j2":     {Degree: 2, Order: 0, LatStep: 10, LonStep: 10, Samples: 64},
	"zonal":  {Degree: -1, Order: 0, LatStep: 10, LonStep: 10, Samples: 64},
	"low":    {Degree: 4, Order: -1, LatStep: 10, LonStep: 10, Samples: 64},
	"full":   {Degree: -1, Order: -1, LatStep: 10, LonStep: 10, Samples: 64},
	"coarse": {Degree: -1, Order: -1, LatStep: 30, LonStep: 30, Samples: 32},
	"fine":   {Degree: -1, Order: -1, LatStep: 2, LonStep: 2, Samples: 256},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

// Apply copies the preset's truncation and sampling onto cfg.
func Apply(cfg *Config, name string) bool {
	p := GetPreset(name)
	if p == nil {
		return false
	}
	cfg.Degree, cfg.Order = p.Degree, p.Order
	cfg.LatStep, cfg.LonStep = p.LatStep, p.LonStep
	cfg.Samples = p.Samples
	return true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
