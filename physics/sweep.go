package physics

import (
	"math"

	"github.com/automoto/thirdperson/mathutil"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// contactTolerance is the gap at which conservative advancement reports a hit.
	contactTolerance = 1e-5
	maxAdvanceSteps  = 64
)

// closestPoints returns the closest points between the capsule's core segment,
// centered on center, and the box. dist is negative when the segment is inside the
// box, with normal along the axis of least penetration.
func closestPoints(center mgl64.Vec3, half float64, b Box) (onSeg, onBox, normal mgl64.Vec3, dist float64) {
	bx := mathutil.ClampFloat(center.X(), b.Min.X(), b.Max.X())
	bz := mathutil.ClampFloat(center.Z(), b.Min.Z(), b.Max.Z())
	y0, y1 := center.Y()-half, center.Y()+half

	var segY, boxY float64
	switch {
	case y1 < b.Min.Y():
		segY, boxY = y1, b.Min.Y()
	case y0 > b.Max.Y():
		segY, boxY = y0, b.Max.Y()
	default:
		lo := math.Max(y0, b.Min.Y())
		hi := math.Min(y1, b.Max.Y())
		segY = (lo + hi) / 2
		boxY = segY
	}

	onSeg = mgl64.Vec3{center.X(), segY, center.Z()}
	onBox = mgl64.Vec3{bx, boxY, bz}
	d := onSeg.Sub(onBox)
	if l := d.Len(); l > 1e-12 {
		return onSeg, onBox, d.Mul(1 / l), l
	}

	// Segment inside the box: push out along the shallowest axis.
	pens := [6]struct {
		depth  float64
		normal mgl64.Vec3
		face   mgl64.Vec3
	}{
		{center.X() - b.Min.X(), mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{b.Min.X(), segY, center.Z()}},
		{b.Max.X() - center.X(), mgl64.Vec3{1, 0, 0}, mgl64.Vec3{b.Max.X(), segY, center.Z()}},
		{y1 - b.Min.Y(), mgl64.Vec3{0, -1, 0}, mgl64.Vec3{center.X(), b.Min.Y(), center.Z()}},
		{b.Max.Y() - y0, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{center.X(), b.Max.Y(), center.Z()}},
		{center.Z() - b.Min.Z(), mgl64.Vec3{0, 0, -1}, mgl64.Vec3{center.X(), segY, b.Min.Z()}},
		{b.Max.Z() - center.Z(), mgl64.Vec3{0, 0, 1}, mgl64.Vec3{center.X(), segY, b.Max.Z()}},
	}
	best := 0
	for i := 1; i < len(pens); i++ {
		if pens[i].depth < pens[best].depth {
			best = i
		}
	}
	return onSeg, pens[best].face, pens[best].normal, -pens[best].depth
}

// sweepCapsuleBox moves the capsule from `from` toward `to` until its inflated
// radius touches the box. The distance to a convex box never shrinks faster than
// the sweep speed, so stepping by the current gap cannot tunnel.
func sweepCapsuleBox(shape Capsule, from, to mgl64.Vec3, b Box) (Contact, bool) {
	v := to.Sub(from)
	speed := v.Len()
	reach := shape.reach()
	half := shape.halfSegment()

	t := 0.0
	for range maxAdvanceSteps {
		_, onBox, n, d := closestPoints(from.Add(v.Mul(t)), half, b)
		gap := d - reach
		if gap <= contactTolerance {
			if v.Dot(n) >= 0 {
				// touching but moving away
				return Contact{}, false
			}
			return Contact{Point: onBox, Normal: n, Fraction: t}, true
		}
		if speed < 1e-12 {
			return Contact{}, false
		}
		t += gap / speed
		if t > 1 {
			return Contact{}, false
		}
	}

	_, onBox, n, _ := closestPoints(from.Add(v.Mul(t)), half, b)
	if v.Dot(n) >= 0 {
		return Contact{}, false
	}
	return Contact{Point: onBox, Normal: n, Fraction: t}, true
}

// SweepBoxCapsule returns the time of impact of box b moving by delta against a
// static capsule centered on center. The normal points from the capsule toward
// the box.
func SweepBoxCapsule(b Box, delta mgl64.Vec3, shape Capsule, center mgl64.Vec3) (Contact, bool) {
	// move the capsule the other way instead
	c, ok := sweepCapsuleBox(shape, center, center.Sub(delta), b)
	if !ok {
		return Contact{}, false
	}
	return Contact{
		Point:    c.Point.Add(delta.Mul(c.Fraction)),
		Normal:   c.Normal.Mul(-1),
		Fraction: c.Fraction,
	}, true
}

// sweepBoxBox returns the time of impact of box a moving by delta against the
// static box b, using the slab test on their Minkowski difference.
func sweepBoxBox(a Box, delta mgl64.Vec3, b Box) (Contact, bool) {
	tEnter, tExit := math.Inf(-1), math.Inf(1)
	var normal mgl64.Vec3
	for axis := range 3 {
		lo := b.Min[axis] - a.Max[axis]
		hi := b.Max[axis] - a.Min[axis]
		if math.Abs(delta[axis]) < 1e-12 {
			if lo >= 0 || hi <= 0 {
				return Contact{}, false
			}
			continue
		}
		t0, t1 := lo/delta[axis], hi/delta[axis]
		var n mgl64.Vec3
		n[axis] = -1
		if t0 > t1 {
			t0, t1 = t1, t0
			n[axis] = 1
		}
		if t0 > tEnter {
			tEnter = t0
			normal = n
		}
		tExit = math.Min(tExit, t1)
	}
	if tEnter > tExit || tEnter > 1 || tEnter < 0 {
		return Contact{}, false
	}
	moved := a.Translate(delta.Mul(tEnter))
	point := moved.Center()
	for axis := range 3 {
		if normal[axis] != 0 {
			if normal[axis] > 0 {
				point[axis] = b.Max[axis]
			} else {
				point[axis] = b.Min[axis]
			}
		}
	}
	return Contact{Point: point, Normal: normal, Fraction: tEnter}, true
}
