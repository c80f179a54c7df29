package systems

import (
	"math"

	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/physics"
	"github.com/automoto/thirdperson/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateObstacles drops falling obstacles under gravity. A box that lands is
// registered with the collision world and stops moving. A box that reaches the
// actor rests on it, without landing, until the actor moves away.
func UpdateObstacles(ecs *ecs.ECS) {
	dt := clock(ecs).Delta
	if dt <= 0 {
		return
	}
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)
	actor, hasActor := actorCapsule(ecs)

	var lost []donburi.Entity
	tags.Obstacle.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		if body.Landed {
			return
		}
		node := components.Object.Get(e).Node

		body.VelocityY = math.Max(body.VelocityY-cfg.Obstacles.Gravity*dt, -cfg.Obstacles.MaxFallSpeed)
		pos := node.WorldPosition()
		delta := mgl64.Vec3{0, body.VelocityY * dt, 0}

		box := physics.BoxAt(pos, body.Size)
		c, hit := space.SweepBox(box, delta, cfg.Collision.ObstacleMask)
		if hasActor {
			ac, blocked := physics.SweepBoxCapsule(box, delta, actor.shape, actor.center)
			if blocked && (!hit || ac.Fraction < c.Fraction) {
				node.SetWorldPosition(pos.Add(delta.Mul(ac.Fraction)))
				body.VelocityY = 0
				return
			}
		}
		if hit {
			delta = delta.Mul(c.Fraction)
		}
		pos = pos.Add(delta)
		node.SetWorldPosition(pos)

		if hit {
			body.Landed = true
			body.VelocityY = 0
			body.Collider = space.AddBox(physics.BoxAt(pos, body.Size), cfg.BitmaskCollision, e.Entity())
			return
		}
		if pos.Y() < cfg.World.Min.Y() {
			lost = append(lost, e.Entity())
		}
	})

	for _, entity := range lost {
		removeObstacle(ecs, space, entity)
	}
}

type placedCapsule struct {
	shape  physics.Capsule
	center mgl64.Vec3
}

func actorCapsule(ecs *ecs.ECS) (placedCapsule, bool) {
	e, ok := tags.Actor.First(ecs.World)
	if !ok {
		return placedCapsule{}, false
	}
	a := components.Actor.Get(e)
	return placedCapsule{
		shape:  a.Shape,
		center: components.Object.Get(e).WorldPosition().Add(a.Shape.Offset()),
	}, true
}

// RemoveObstacles deletes every spawned obstacle and its collider.
func RemoveObstacles(ecs *ecs.ECS) {
	var space *physics.World
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		space = components.Space.Get(spaceEntry)
	}

	var all []donburi.Entity
	tags.Obstacle.Each(ecs.World, func(e *donburi.Entry) {
		all = append(all, e.Entity())
	})
	for _, entity := range all {
		removeObstacle(ecs, space, entity)
	}
}

func removeObstacle(ecs *ecs.ECS, space *physics.World, entity donburi.Entity) {
	e := ecs.World.Entry(entity)
	components.Object.Get(e).RemoveFromParent()
	if body := components.Body.Get(e); body.Collider != nil && space != nil {
		space.Remove(body.Collider)
	}
	ecs.World.Remove(entity)
}
