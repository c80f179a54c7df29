package gamemath

import (
	"math"

	"github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/mathutil"
	"github.com/automoto/thirdperson/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// SlideResult is the outcome of one collide-and-slide resolution.
type SlideResult struct {
	Position   mgl64.Vec3
	Iterations int // sweeps performed, never more than MaxSlideIterations
	Contacts   []physics.Contact
}

// SlideInWorld moves shape from start by velocity, sliding along whatever it hits.
// The result is the shape's final center; it never ends inside geometry matching
// mask by more than the shape's margin.
func SlideInWorld(sweeper physics.SweepTester, shape physics.Capsule, mask config.Bitmask, start, velocity mgl64.Vec3) SlideResult {
	maxIter := config.Locomotion.MaxSlideIterations
	absorb := config.Locomotion.AbsorbEpsilon

	res := SlideResult{Position: start}
	pos, vel := start, velocity
	for {
		res.Iterations++
		c, hit := sweeper.SweepTest(shape, pos, pos.Add(vel), mask)
		if !hit {
			res.Position = pos.Add(vel)
			return res
		}
		res.Contacts = append(res.Contacts, c)
		vel, pos = SlideAtContact(c, pos, vel)
		if vel.LenSqr() <= absorb*absorb || res.Iterations >= maxIter {
			res.Position = pos
			return res
		}
	}
}

// SlideAtContact advances to the contact and returns the velocity left for the
// next sweep. The remaining motion is projected onto the plane through the contact
// point, scaled by friction and the unused fraction of the sweep, and keeps the
// original speed otherwise.
func SlideAtContact(c physics.Contact, start, velocity mgl64.Vec3) (newVelocity, atContact mgl64.Vec3) {
	atContact = start.Add(velocity.Mul(c.Fraction))
	speed := velocity.Len()
	if speed < 1e-12 {
		return mgl64.Vec3{}, atContact
	}

	n := c.Normal
	dest := c.Point.Add(velocity)
	t, ok := mathutil.PlaneIntersect(n, n.Dot(c.Point), dest, n)
	if !ok {
		t = 0
	}

	friction := config.Locomotion.GrazingFriction
	if math.Abs(n.Dot(velocity.Mul(1/speed))) < config.Locomotion.SteepThreshold {
		t += config.Locomotion.SteepPushOff
		friction = config.Locomotion.SteepFriction
	}

	// destination relative to the shape's center at contact
	slide := velocity.Add(n.Mul(t))
	l := slide.Len()
	if l < 1e-9 {
		return mgl64.Vec3{}, atContact
	}
	remaining := 1 - mathutil.ClampFloat(c.Fraction, 0, 1)
	return slide.Mul(friction * remaining * speed / l), atContact
}
