package config

import "github.com/ziadkadry99/cipherlab/internal/tour"

// speedPresets maps each preset to the factor applied to cipher tick
// intervals. Larger is slower.
var speedPresets = map[SpeedPreset]float64{
	SpeedSlow:   2.0,
	SpeedNormal: 1.0,
	SpeedFast:   0.5,
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:          8080,
		DataDir:       ".cipherlab",
		DefaultCipher: "caesar",
		Speed:         1.0,
		Repository:    "ziadkadry99/cipherlab",
		StarsEnabled:  true,
		Tour: TourConfig{
			AutoStart:   true,
			StorageKey:  tour.CipherPageKey,
			ClosePollMS: 200,
		},
	}
}

// GetSpeed returns the factor for the given preset.
// Returns the normal factor if the preset is not known.
func GetSpeed(preset SpeedPreset) float64 {
	if f, ok := speedPresets[preset]; ok {
		return f
	}
	return speedPresets[SpeedNormal]
}
