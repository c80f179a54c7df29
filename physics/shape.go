package physics

import (
	"math"

	"github.com/automoto/thirdperson/config"
	"github.com/go-gl/mathgl/mgl64"
)

// Capsule is an upright capsule. Height includes both caps. Margin inflates the
// radius for contact queries, so resting shapes keep that much clearance.
type Capsule struct {
	Radius float64
	Height float64
	Margin float64
}

// CapsuleFromBounds derives the actor capsule from a model bounding box.
func CapsuleFromBounds(min, max mgl64.Vec3, margin float64) Capsule {
	size := max.Sub(min)
	return Capsule{
		Radius: config.Actor.RadiusFactor * size.X(),
		Height: size.Y(),
		Margin: margin,
	}
}

// Offset is the capsule center relative to the model origin at its feet.
func (c Capsule) Offset() mgl64.Vec3 {
	return mgl64.Vec3{0, config.Actor.ShapeOffsetY * c.Height, 0}
}

// reach is the contact distance from the capsule's core segment.
func (c Capsule) reach() float64 {
	return c.Radius + c.Margin
}

// halfSegment is half the length of the core segment between cap centers.
func (c Capsule) halfSegment() float64 {
	return math.Max(0, c.Height/2-c.Radius)
}

// Box is an axis-aligned box.
type Box struct {
	Min, Max mgl64.Vec3
}

// BoxAt returns a box of the given size centered on center.
func BoxAt(center, size mgl64.Vec3) Box {
	half := size.Mul(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Box) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Box) Translate(d mgl64.Vec3) Box {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Contact is the nearest blocking hit of a sweep. Normal points from the blocking
// surface toward the swept shape and Fraction is the time of impact in [0, 1].
type Contact struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Fraction float64
}

// SweepTester finds the closest contact when moving shape in a straight line from
// one center position to another.
type SweepTester interface {
	SweepTest(shape Capsule, from, to mgl64.Vec3, mask config.Bitmask) (Contact, bool)
}
