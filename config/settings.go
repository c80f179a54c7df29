package config

// SettingsConfig contains where and how player settings are stored.
type SettingsConfig struct {
	AppName         string
	ItemKey         string
	OrbitSpeedSteps []float64
	TransitionSteps []float64
}

// Settings is the global settings storage configuration
var Settings SettingsConfig

func init() {
	Settings = SettingsConfig{
		AppName:         "thirdperson",
		ItemKey:         "settings",
		OrbitSpeedSteps: []float64{0.025, 0.05, 0.075, 0.1},
		TransitionSteps: []float64{0, 0.5, 1.0, 2.0},
	}
}
