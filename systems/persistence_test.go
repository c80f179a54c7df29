package systems

import (
	"testing"

	cfg "github.com/automoto/thirdperson/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keepCameraConfig(t *testing.T) {
	t.Helper()
	saved := *CurrentSettings()
	t.Cleanup(func() { ApplySavedSettings(&saved) })
}

func TestDecodeSettings(t *testing.T) {
	keepCameraConfig(t)

	s, err := DecodeSettings([]byte(`{"orbitSpeed":0.1,"invertOrbitY":true,"transitionTime":2}`))
	require.NoError(t, err)
	assert.Equal(t, SavedSettings{OrbitSpeed: 0.1, InvertOrbitY: true, TransitionTime: 2}, *s)

	// missing and invalid fields fall back to the live configuration
	s, err = DecodeSettings([]byte(`{"orbitSpeed":-1,"transitionTime":-3}`))
	require.NoError(t, err)
	assert.Equal(t, cfg.Camera.OrbitSpeed, s.OrbitSpeed)
	assert.Equal(t, cfg.Camera.TransitionTime, s.TransitionTime)
	assert.Equal(t, cfg.Camera.InvertOrbitY, s.InvertOrbitY)

	_, err = DecodeSettings([]byte(`{`))
	assert.Error(t, err)
}

func TestApplySavedSettings(t *testing.T) {
	keepCameraConfig(t)

	ApplySavedSettings(&SavedSettings{OrbitSpeed: 0.075, InvertOrbitY: true, TransitionTime: 0.5})
	assert.Equal(t, 0.075, cfg.Camera.OrbitSpeed)
	assert.True(t, cfg.Camera.InvertOrbitY)
	assert.Equal(t, 0.5, cfg.Camera.TransitionTime)

	ApplySavedSettings(nil)
	assert.Equal(t, 0.075, cfg.Camera.OrbitSpeed)
}

func TestCycleSettingsWrap(t *testing.T) {
	keepCameraConfig(t)

	steps := cfg.Settings.OrbitSpeedSteps
	require.NotEmpty(t, steps)
	cfg.Camera.OrbitSpeed = steps[0]
	for _, want := range steps[1:] {
		assert.Equal(t, want, CycleOrbitSpeed())
	}
	assert.Equal(t, steps[0], CycleOrbitSpeed())

	cfg.Camera.TransitionTime = 100
	assert.Equal(t, cfg.Settings.TransitionSteps[0], CycleTransitionTime())
}

func TestPersistenceWithoutStorageIsNoop(t *testing.T) {
	prev := gdataManager
	gdataManager = nil
	t.Cleanup(func() { gdataManager = prev })

	s, err := LoadSettings()
	assert.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, SaveSettings(CurrentSettings()))
}
