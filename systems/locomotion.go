package systems

import (
	"math"

	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/gamemath"
	"github.com/automoto/thirdperson/mathutil"
	"github.com/automoto/thirdperson/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// UpdateLocomotion turns the actor's input into a collision-free move for this
// tick. Input is read relative to the main camera. Nothing moves on the first
// tick since there is no elapsed time yet.
func UpdateLocomotion(ecs *ecs.ECS) {
	actor, ok := tags.Actor.First(ecs.World)
	if !ok {
		return
	}
	a := components.Actor.Get(actor)
	node := components.Object.Get(actor).Node
	dt := clock(ecs).Delta

	a.Velocity = mgl64.Vec3{}
	a.Walking = false
	if dt > 0 && !mathutil.IsZero2(a.Direction) {
		pov := mgl64.QuatIdent()
		if camEntry, ok := components.Camera.First(ecs.World); ok {
			pov = components.Camera.Get(camEntry).Rig.CameraTransform().Rotation
		}
		dir := gamemath.CharacterDirection(a.Direction, pov)
		if dir.LenSqr() > 0 {
			a.Velocity = gamemath.WalkVelocity(dir, dt, a.WalkBoost)
			a.Walking = true
			turn(ecs, a, gamemath.Heading(a.Velocity))
		}
	}

	eps := cfg.Locomotion.MoveEpsilon
	if a.Velocity.LenSqr() > eps*eps {
		space := components.Space.Get(components.Space.MustFirst(ecs.World))
		offset := a.Shape.Offset()
		start := node.WorldPosition().Add(offset)
		a.LastSlide = gamemath.SlideInWorld(space, a.Shape, cfg.Collision.ActorMask, start, a.Velocity)
		node.SetWorldPosition(a.LastSlide.Position.Sub(offset))
	}

	a.BaseAltitude = node.WorldPosition().Y() - a.Spawn.Y()
}

// turn eases the orientation node toward heading. An unchanged heading leaves a
// running turn alone.
func turn(ecs *ecs.ECS, a *components.ActorData, heading float64) {
	if math.Abs(heading-a.Heading) < 1e-9 {
		return
	}
	a.Heading = heading
	level := components.Level.Get(components.Level.MustFirst(ecs.World))
	to := a.Orientation.Transform()
	to.Rotation = gamemath.FacingRotation(heading)
	level.Animator.Animate(a.Orientation, to, cfg.Locomotion.TurnDuration, ease.Linear, nil)
}
