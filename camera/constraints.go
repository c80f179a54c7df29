package camera

import (
	"math"

	"github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/mathutil"
	"github.com/automoto/thirdperson/scene"
	"github.com/go-gl/mathgl/mgl64"
)

var worldUp = mgl64.Vec3{0, 1, 0}

// DistanceConstraint keeps a node at a fixed distance from the rig's look-at
// target, along the node's current direction from the target.
type DistanceConstraint struct {
	rig      *Rig
	Distance float64
}

func (c *DistanceConstraint) Apply(_ *scene.Node, w scene.Transform, _ float64) scene.Transform {
	target := c.rig.Target()
	back := w.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
	dir := mathutil.NormalizeOr(w.Position.Sub(target), back, 1e-9)
	w.Position = target.Add(dir.Mul(c.Distance))
	return w
}

// AltitudeConstraint pins a node's world height to the subject's base altitude
// plus a fixed offset.
type AltitudeConstraint struct {
	rig      *Rig
	Altitude float64
}

func (c *AltitudeConstraint) Apply(_ *scene.Node, w scene.Transform, _ float64) scene.Transform {
	w.Position[1] = c.rig.subject.BaseAltitude() + c.Altitude
	return w
}

// AccelerationConstraint limits how fast a node's world position may change.
// Influence blends between the unconstrained position (0) and the bounded one (1).
type AccelerationConstraint struct {
	MaxVelocity float64
	MaxAccel    float64
	Damping     float64
	Influence   float64

	pos    mgl64.Vec3
	vel    mgl64.Vec3
	primed bool
}

func NewAccelerationConstraint() *AccelerationConstraint {
	return &AccelerationConstraint{
		MaxVelocity: config.Camera.MaxVelocity,
		MaxAccel:    config.Camera.MaxAccel,
		Damping:     config.Camera.Damping,
		Influence:   1,
	}
}

// Reset forgets the tracked motion; the next Apply passes through.
func (c *AccelerationConstraint) Reset() {
	c.pos, c.vel, c.primed = mgl64.Vec3{}, mgl64.Vec3{}, false
}

func (c *AccelerationConstraint) Apply(_ *scene.Node, w scene.Transform, dt float64) scene.Transform {
	if dt <= 0 {
		return w
	}
	desired := w.Position
	if !c.primed || c.Influence <= 0 {
		c.pos, c.vel, c.primed = desired, mgl64.Vec3{}, true
		return w
	}

	want := desired.Sub(c.pos).Mul(1 / dt)
	dv := mathutil.ClampLength3(want.Sub(c.vel), c.MaxAccel*dt)
	c.vel = mathutil.ClampLength3(c.vel.Add(dv).Mul(1-c.Damping), c.MaxVelocity)

	next := c.pos.Add(c.vel.Mul(dt))
	w.Position = mathutil.Lerp3(desired, next, mathutil.ClampFloat(c.Influence, 0, 1))
	c.pos = w.Position
	return w
}

// OrbitConstraint rotates the active anchor around the look-at target from the
// rig's orbit input. While input is held the acceleration constraint is switched
// off; afterwards its influence grows back a step per frame.
type OrbitConstraint struct {
	rig   *Rig
	accel *AccelerationConstraint
}

func (c *OrbitConstraint) Apply(node *scene.Node, w scene.Transform, _ float64) scene.Transform {
	if node != c.rig.active {
		return w
	}
	c.accel.Influence = math.Min(1, c.accel.Influence+config.Camera.InfluenceStep)

	in := c.rig.orbit
	if mathutil.IsZero2(in) {
		return w
	}
	c.accel.Influence = 0

	sens := config.Camera.OrbitSpeed
	vertical := in.Y()
	if config.Camera.InvertOrbitY {
		vertical = -vertical
	}
	q := mgl64.QuatRotate(sens*in.X(), c.rig.subject.WorldUp()).
		Mul(mgl64.QuatRotate(sens*vertical, w.Right()))
	return w.RotateAround(q.Normalize(), c.rig.Target())
}

// LookAtConstraint eases a node's orientation toward facing the look-at target.
type LookAtConstraint struct {
	rig        *Rig
	Influence  float64
	GimbalLock bool
}

func (c *LookAtConstraint) Apply(_ *scene.Node, w scene.Transform, _ float64) scene.Transform {
	up := worldUp
	if !c.GimbalLock {
		up = w.Up()
	}
	q, ok := LookRotation(c.rig.Target().Sub(w.Position), up)
	if !ok {
		return w
	}
	w.Rotation = mgl64.QuatSlerp(w.Rotation, q, mathutil.ClampFloat(c.Influence, 0, 1))
	return w
}

// LookRotation returns the rotation whose front (-Z) points along forward with
// its up as close to up as possible. ok is false when forward is degenerate or
// parallel to up.
func LookRotation(forward, up mgl64.Vec3) (mgl64.Quat, bool) {
	if forward.Len() < 1e-9 {
		return mgl64.QuatIdent(), false
	}
	f := forward.Normalize()
	r := f.Cross(up)
	if r.Len() < 1e-9 {
		return mgl64.QuatIdent(), false
	}
	r = r.Normalize()
	u := r.Cross(f)
	m := mgl64.Mat3FromCols(r, u, f.Mul(-1))
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize(), true
}
