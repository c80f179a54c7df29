package components

import (
	cfg "github.com/automoto/thirdperson/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// DeviceState tracks one connected controller.
type DeviceState struct {
	Profile cfg.DeviceProfile
	Sticks  map[cfg.Stick]mgl64.Vec2
}

// InputData holds the latest intent reported by input collaborators.
type InputData struct {
	Devices    map[int]*DeviceState
	Locomotion mgl64.Vec2
	Orbit      mgl64.Vec2
}

var Input = donburi.NewComponentType[InputData]()
