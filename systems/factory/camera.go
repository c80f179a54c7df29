package factory

import (
	"github.com/automoto/thirdperson/archetypes"
	"github.com/automoto/thirdperson/camera"
	"github.com/automoto/thirdperson/components"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// actorSubject lets the rig follow the actor entity without holding component
// pointers across ticks.
type actorSubject struct {
	world  donburi.World
	entity donburi.Entity
}

func (s actorSubject) entry() *donburi.Entry {
	return s.world.Entry(s.entity)
}

func (s actorSubject) WorldPosition() mgl64.Vec3 {
	return components.Object.Get(s.entry()).WorldPosition()
}

func (s actorSubject) WorldUp() mgl64.Vec3 {
	return components.Object.Get(s.entry()).WorldTransform().Up()
}

func (s actorSubject) BaseAltitude() float64 {
	return components.Actor.Get(s.entry()).BaseAltitude
}

// CreateCamera builds the camera rig around actor and activates the game anchor.
// The level and the actor must exist.
func CreateCamera(ecs *ecs.ECS, actor *donburi.Entry) *donburi.Entry {
	level := components.Level.Get(components.Level.MustFirst(ecs.World))

	entry := archetypes.Camera.Spawn(ecs)
	rig := camera.NewRig(level.Graph, level.Animator, actorSubject{world: ecs.World, entity: actor.Entity()})
	rig.Setup()
	components.Camera.SetValue(entry, components.CameraData{Rig: rig})
	return entry
}
