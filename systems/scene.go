package systems

import (
	"github.com/automoto/thirdperson/components"
	"github.com/yohamta/donburi/ecs"
)

// UpdateAnimations advances every running transform animation: camera
// transitions, facing turns and projectile flights.
func UpdateAnimations(ecs *ecs.ECS) {
	entry, ok := components.Level.First(ecs.World)
	if !ok {
		return
	}
	components.Level.Get(entry).Animator.Update(clock(ecs).Delta)
}

// UpdateCamera evaluates the scene's constraints, which places the camera rig's
// anchors around the actor's resolved position. Must run AFTER UpdateLocomotion.
func UpdateCamera(ecs *ecs.ECS) {
	entry, ok := components.Level.First(ecs.World)
	if !ok {
		return
	}
	components.Level.Get(entry).Graph.Evaluate(clock(ecs).Delta)
}
