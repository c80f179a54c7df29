package factory

import (
	"github.com/automoto/thirdperson/archetypes"
	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/physics"
	"github.com/automoto/thirdperson/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateWall adds a static box of the given size centered at center. The node is
// placed under parent and the box is registered as level collision.
func CreateWall(ecs *ecs.ECS, parent *scene.Node, name string, center, size mgl64.Vec3) *donburi.Entry {
	wall := archetypes.Static.Spawn(ecs)

	node := scene.NewNode(name)
	node.SetPosition(center)
	parent.AddChild(node)
	components.Object.SetValue(wall, components.ObjectData{Node: node})

	body := components.BodyData{Size: size, Landed: true}
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		box := physics.BoxAt(node.WorldPosition(), size)
		body.Collider = components.Space.Get(spaceEntry).AddBox(box, cfg.BitmaskCollision, wall.Entity())
	}
	components.Body.SetValue(wall, body)

	return wall
}
