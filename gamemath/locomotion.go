package gamemath

import (
	"github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/mathutil"
	"github.com/go-gl/mathgl/mgl64"
)

// CharacterDirection maps controller input (x right, y toward the camera) to a
// horizontal world direction as seen from a point of view with rotation pov.
// The result's length grows from MinControllerSpeed to 1 with the input length.
func CharacterDirection(input mgl64.Vec2, pov mgl64.Quat) mgl64.Vec3 {
	if mathutil.IsZero2(input) {
		return mgl64.Vec3{}
	}
	world := mathutil.Horizontal(pov.Rotate(mgl64.Vec3{input.X(), 0, input.Y()}))
	l := world.Len()
	if l < 1e-9 {
		return mgl64.Vec3{}
	}
	minSpeed := config.Locomotion.MinControllerSpeed
	speed := minSpeed + mathutil.ClampFloat(input.Len(), 0, 1)*(1-minSpeed)
	return world.Mul(speed / l)
}

// WalkVelocity is the displacement for one tick of dt seconds.
func WalkVelocity(direction mgl64.Vec3, dt, boost float64) mgl64.Vec3 {
	return direction.Mul(dt * config.Locomotion.SpeedFactor * boost)
}

// Heading returns the yaw that faces v, atan2(x, z).
func Heading(v mgl64.Vec3) float64 {
	return mathutil.Heading(v)
}

// FacingRotation turns the model's +Z toward heading.
func FacingRotation(heading float64) mgl64.Quat {
	return mgl64.QuatRotate(heading, mgl64.Vec3{0, 1, 0})
}
