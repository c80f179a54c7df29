package systems

import (
	"slices"

	"github.com/automoto/thirdperson/archetypes"
	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/mathutil"
	"github.com/automoto/thirdperson/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// UpdateInput hands the latest locomotion and orbit intent to the actor and the
// camera rig. Must run BEFORE UpdateLocomotion in the system order.
func UpdateInput(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)

	if actor, ok := tags.Actor.First(ecs.World); ok {
		components.Actor.Get(actor).Direction = input.Locomotion
	}
	if camEntry, ok := components.Camera.First(ecs.World); ok {
		components.Camera.Get(camEntry).Rig.SetOrbitInput(input.Orbit)
	}
}

func getOrCreateInput(ecs *ecs.ECS) *components.InputData {
	if entry, ok := components.Input.First(ecs.World); ok {
		return components.Input.Get(entry)
	}
	entry := archetypes.Input.Spawn(ecs)
	components.Input.SetValue(entry, components.InputData{
		Devices: make(map[int]*components.DeviceState),
	})
	return components.Input.Get(entry)
}

// SetLocomotionInput stores the movement intent, clamped to unit length.
func SetLocomotionInput(ecs *ecs.ECS, v mgl64.Vec2) {
	getOrCreateInput(ecs).Locomotion = mathutil.ClampLength2(v, 1)
}

// SetOrbitInput stores the camera orbit intent, clamped to unit length. It stays
// in effect until replaced.
func SetOrbitInput(ecs *ecs.ECS, v mgl64.Vec2) {
	getOrCreateInput(ecs).Orbit = mathutil.ClampLength2(v, 1)
}

// OnDeviceConnected registers a controller. Reconnecting an id replaces its profile.
func OnDeviceConnected(ecs *ecs.ECS, id int, profile cfg.DeviceProfile) {
	input := getOrCreateInput(ecs)
	input.Devices[id] = &components.DeviceState{
		Profile: profile,
		Sticks:  make(map[cfg.Stick]mgl64.Vec2),
	}
	zap.L().Info("controller connected", zap.Int("device", id), zap.Int("profile", int(profile)))
}

// OnDeviceDisconnected forgets a controller. Intent it was holding is released.
func OnDeviceDisconnected(ecs *ecs.ECS, id int) {
	input := getOrCreateInput(ecs)
	dev, ok := input.Devices[id]
	if !ok {
		return
	}
	for stick, v := range dev.Sticks {
		if mathutil.IsZero2(v) {
			continue
		}
		if stick == cfg.StickRight {
			input.Orbit = mgl64.Vec2{}
		} else {
			input.Locomotion = mgl64.Vec2{}
		}
	}
	delete(input.Devices, id)
	zap.L().Info("controller disconnected", zap.Int("device", id))
}

// HandleButton dispatches a button press from device id through the binding
// table. Releases, unknown devices and inputs missing from the device's profile
// are ignored. It reports whether an action started.
func HandleButton(ecs *ecs.ECS, id int, button cfg.Button, pressed bool) bool {
	if !pressed {
		return false
	}
	dev, ok := getOrCreateInput(ecs).Devices[id]
	if !ok {
		return false
	}
	layout := cfg.Input.Profiles[dev.Profile]
	if !slices.Contains(layout.Buttons, button) {
		return false
	}
	if mapped, ok := layout.Remap[button]; ok {
		button = mapped
	}
	kind, ok := cfg.Input.Bindings[button]
	if !ok {
		return false
	}
	return RequestAction(ecs, kind)
}

// HandleStick records a directional input from device id. The d-pad and left
// stick drive locomotion, the right stick drives the camera orbit.
func HandleStick(ecs *ecs.ECS, id int, stick cfg.Stick, v mgl64.Vec2) {
	input := getOrCreateInput(ecs)
	dev, ok := input.Devices[id]
	if !ok || !slices.Contains(cfg.Input.Profiles[dev.Profile].Sticks, stick) {
		return
	}

	if v.Len() < cfg.Input.AnalogDeadzone {
		v = mgl64.Vec2{}
	}
	v = mathutil.ClampLength2(v, 1)
	dev.Sticks[stick] = v

	switch stick {
	case cfg.StickDPad, cfg.StickLeft:
		if cfg.Input.InvertStickY {
			v[1] = -v[1]
		}
		input.Locomotion = v
	case cfg.StickRight:
		input.Orbit = v
	}
}
