package scene

import (
	"github.com/automoto/thirdperson/mathutil"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// Transform is a rigid transform: a rotation followed by a translation.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// At returns an unrotated transform placed at p.
func At(p mgl64.Vec3) Transform {
	return Transform{Position: p, Rotation: mgl64.QuatIdent()}
}

// Mul composes t with child, so that the result maps child-space points through
// child first and then t.
func (t Transform) Mul(child Transform) Transform {
	return Transform{
		Position: t.Position.Add(t.Rotation.Rotate(child.Position)),
		Rotation: t.Rotation.Mul(child.Rotation).Normalize(),
	}
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	inv := t.Rotation.Inverse()
	return Transform{
		Position: inv.Rotate(t.Position).Mul(-1),
		Rotation: inv,
	}
}

// Apply maps a point through t.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Position.Add(t.Rotation.Rotate(p))
}

// Front is the direction the transform looks at (-Z).
func (t Transform) Front() mgl64.Vec3 {
	return t.Rotation.Rotate(axisZ.Mul(-1))
}

// Right is the local +X axis in parent space.
func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(axisX)
}

// Up is the local +Y axis in parent space.
func (t Transform) Up() mgl64.Vec3 {
	return t.Rotation.Rotate(axisY)
}

// Mat4 returns the homogeneous matrix of t.
func (t Transform) Mat4() mgl64.Mat4 {
	return mgl64.Translate3D(t.Position[0], t.Position[1], t.Position[2]).Mul4(t.Rotation.Mat4())
}

// RotateAround applies q to t as if pivoting around the world point pivot.
func (t Transform) RotateAround(q mgl64.Quat, pivot mgl64.Vec3) Transform {
	return Transform{
		Position: pivot.Add(q.Rotate(t.Position.Sub(pivot))),
		Rotation: q.Mul(t.Rotation).Normalize(),
	}
}

// ApproxEqual compares positions by distance and rotations by orientation.
func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	return mathutil.ApproxEqual3(t.Position, o.Position, eps) &&
		t.Rotation.OrientationEqualThreshold(o.Rotation, eps)
}

// Interpolate blends a toward b: positions linearly, rotations along the shortest arc.
func Interpolate(a, b Transform, f float64) Transform {
	switch {
	case f <= 0:
		return a
	case f >= 1:
		return b
	}
	return Transform{
		Position: a.Position.Add(b.Position.Sub(a.Position).Mul(f)),
		Rotation: mgl64.QuatSlerp(a.Rotation, b.Rotation, f),
	}
}

// YawRotation rotates around +Y by angle radians.
func YawRotation(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, axisY)
}
