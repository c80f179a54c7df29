package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ClampFloat clamps v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeOr returns v scaled to unit length, or fallback when v is shorter than eps.
func NormalizeOr(v, fallback mgl64.Vec3, eps float64) mgl64.Vec3 {
	l := v.Len()
	if l < eps {
		return fallback
	}
	return v.Mul(1 / l)
}

// ClampLength2 scales v down to maxLen when it is longer, keeping its direction.
func ClampLength2(v mgl64.Vec2, maxLen float64) mgl64.Vec2 {
	l := v.Len()
	if l > maxLen && l > 0 {
		return v.Mul(maxLen / l)
	}
	return v
}

// ClampLength3 scales v down to maxLen when it is longer, keeping its direction.
func ClampLength3(v mgl64.Vec3, maxLen float64) mgl64.Vec3 {
	l := v.Len()
	if l > maxLen && l > 0 {
		return v.Mul(maxLen / l)
	}
	return v
}

// IsZero2 reports whether both components are exactly zero.
func IsZero2(v mgl64.Vec2) bool {
	return v[0] == 0 && v[1] == 0
}

// PlaneIntersect returns the distance along rayDirection from rayOrigin to the plane
// {p : dot(planeNormal, p) = planeDist}. ok is false when the ray is parallel to the plane.
func PlaneIntersect(planeNormal mgl64.Vec3, planeDist float64, rayOrigin, rayDirection mgl64.Vec3) (t float64, ok bool) {
	denom := planeNormal.Dot(rayDirection)
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	return (planeDist - planeNormal.Dot(rayOrigin)) / denom, true
}

// Heading is the yaw around +Y that turns +Z toward v, atan2(x, z).
func Heading(v mgl64.Vec3) float64 {
	return math.Atan2(v.X(), v.Z())
}

// Horizontal drops the Y component.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// Lerp3 interpolates a toward b by f.
func Lerp3(a, b mgl64.Vec3, f float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(f))
}

// ApproxEqual3 reports whether a and b are within eps of each other. Unlike
// mgl64's ApproxEqualThreshold it stays absolute when a component is zero.
func ApproxEqual3(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}
