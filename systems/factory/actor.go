package factory

import (
	"github.com/automoto/thirdperson/archetypes"
	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/gamemath"
	"github.com/automoto/thirdperson/physics"
	"github.com/automoto/thirdperson/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateActor adds the controlled character at spawn. The hierarchy is
// character -> orientation -> model; facing turns the orientation node and hiding
// fades the model.
func CreateActor(ecs *ecs.ECS, parent *scene.Node, spawn mgl64.Vec3) *donburi.Entry {
	actor := archetypes.Actor.Spawn(ecs)

	node := scene.NewNode(cfg.Actor.Name)
	node.SetPosition(spawn)
	orientation := scene.NewNode(cfg.Actor.OrientationName)
	node.AddChild(orientation)
	model := scene.NewNode(cfg.Actor.ModelName)
	// keep the visual model level with the inflated collision shape
	model.SetPosition(mgl64.Vec3{0, -cfg.Actor.Margin, 0})
	orientation.AddChild(model)
	parent.AddChild(node)

	components.Object.SetValue(actor, components.ObjectData{Node: node})
	components.Actor.SetValue(actor, components.ActorData{
		Orientation: orientation,
		Model:       model,
		Shape:       physics.CapsuleFromBounds(cfg.Actor.BoundsMin, cfg.Actor.BoundsMax, cfg.Actor.Margin),
		Spawn:       spawn,
		WalkBoost:   1,
	})
	components.Actions.SetValue(actor, components.ActionsData{})

	return actor
}

// ResetActor puts the actor back on its spawn point facing +Z.
func ResetActor(actor *donburi.Entry, animator *scene.Animator) {
	a := components.Actor.Get(actor)
	node := components.Object.Get(actor).Node

	animator.Stop(a.Orientation)
	node.SetWorldPosition(a.Spawn)
	a.Orientation.SetRotation(mgl64.QuatIdent())
	a.Heading = 0
	a.Velocity = mgl64.Vec3{}
	a.BaseAltitude = 0
	a.LastSlide = gamemath.SlideResult{}
}
