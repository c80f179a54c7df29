package systems

import (
	"encoding/json"
	"fmt"

	cfg "github.com/automoto/thirdperson/config"
	"github.com/quasilyte/gdata"
	"go.uber.org/zap"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	OrbitSpeed     float64 `json:"orbitSpeed"`
	InvertOrbitY   bool    `json:"invertOrbitY"`
	TransitionTime float64 `json:"transitionTime"`
}

var gdataManager *gdata.Manager

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: cfg.Settings.AppName,
	})
	if err != nil {
		zap.L().Warn("could not initialize persistence", zap.Error(err))
		return fmt.Errorf("open settings storage: %w", err)
	}
	gdataManager = m
	return nil
}

// LoadSettings loads settings from disk. It returns nil when nothing was saved
// or storage is unavailable.
func LoadSettings() (*SavedSettings, error) {
	if gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(cfg.Settings.ItemKey)
	if err != nil {
		zap.L().Warn("could not load settings", zap.Error(err))
		return nil, nil
	}
	if len(data) == 0 {
		// No saved settings yet, use defaults
		return nil, nil
	}
	return DecodeSettings(data)
}

// DecodeSettings parses stored settings, replacing out-of-range values with the
// current configuration.
func DecodeSettings(data []byte) (*SavedSettings, error) {
	settings := CurrentSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		zap.L().Warn("could not parse saved settings", zap.Error(err))
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if settings.OrbitSpeed <= 0 {
		settings.OrbitSpeed = cfg.Camera.OrbitSpeed
	}
	if settings.TransitionTime < 0 {
		settings.TransitionTime = cfg.Camera.TransitionTime
	}
	return settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		zap.L().Warn("could not serialize settings", zap.Error(err))
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := gdataManager.SaveItem(cfg.Settings.ItemKey, data); err != nil {
		zap.L().Warn("could not save settings", zap.Error(err))
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// CurrentSettings captures the tunable camera configuration.
func CurrentSettings() *SavedSettings {
	return &SavedSettings{
		OrbitSpeed:     cfg.Camera.OrbitSpeed,
		InvertOrbitY:   cfg.Camera.InvertOrbitY,
		TransitionTime: cfg.Camera.TransitionTime,
	}
}

// ApplySavedSettings applies loaded settings to the camera configuration. The rig
// reads it every frame, so changes take effect immediately.
func ApplySavedSettings(saved *SavedSettings) {
	if saved == nil {
		return
	}
	cfg.Camera.OrbitSpeed = saved.OrbitSpeed
	cfg.Camera.InvertOrbitY = saved.InvertOrbitY
	cfg.Camera.TransitionTime = saved.TransitionTime
}

// nextStep returns the first step above current, wrapping to the first step.
func nextStep(steps []float64, current float64) float64 {
	for _, s := range steps {
		if s > current+1e-9 {
			return s
		}
	}
	return steps[0]
}

// CycleOrbitSpeed moves the orbit sensitivity to the next configured step and
// returns the new value.
func CycleOrbitSpeed() float64 {
	if len(cfg.Settings.OrbitSpeedSteps) > 0 {
		cfg.Camera.OrbitSpeed = nextStep(cfg.Settings.OrbitSpeedSteps, cfg.Camera.OrbitSpeed)
	}
	return cfg.Camera.OrbitSpeed
}

// CycleTransitionTime moves the default camera transition duration to the next
// configured step and returns the new value.
func CycleTransitionTime() float64 {
	if len(cfg.Settings.TransitionSteps) > 0 {
		cfg.Camera.TransitionTime = nextStep(cfg.Settings.TransitionSteps, cfg.Camera.TransitionTime)
	}
	return cfg.Camera.TransitionTime
}
