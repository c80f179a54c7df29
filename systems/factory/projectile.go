package factory

import (
	"github.com/automoto/thirdperson/archetypes"
	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateProjectile launches a fireball from the actor's orientation node. It flies
// straight along the actor's facing and is removed when the flight ends.
func CreateProjectile(ecs *ecs.ECS, actor *donburi.Entry, big bool, now float64) *donburi.Entry {
	level := components.Level.Get(components.Level.MustFirst(ecs.World))
	a := components.Actor.Get(actor)

	scale, offset := cfg.Actions.SmallShotScale, cfg.Actions.SmallShotOffset
	if big {
		scale, offset = cfg.Actions.BigShotScale, cfg.Actions.BigShotOffset
	}

	facing := a.Orientation.WorldTransform()
	start := scene.Transform{Position: facing.Apply(offset), Rotation: facing.Rotation}
	end := start
	end.Position = start.Position.Add(facing.Rotation.Rotate(mgl64.Vec3{0, 0, 1}).Mul(cfg.Actions.ProjectileTravel))

	node := scene.NewNode(cfg.Actions.ProjectileName)
	node.Scale = scale
	node.SetTransform(start)
	level.Graph.Root().AddChild(node)

	projectile := archetypes.Projectile.Spawn(ecs)
	components.Object.SetValue(projectile, components.ObjectData{Node: node})
	components.Projectile.SetValue(projectile, components.ProjectileData{Launched: now, Big: big})

	world, entity := ecs.World, projectile.Entity()
	level.Animator.Animate(node, end, cfg.Actions.ProjectileTime, ease.Linear, func() {
		node.RemoveFromParent()
		if world.Valid(entity) {
			world.Remove(entity)
		}
	})
	return projectile
}
