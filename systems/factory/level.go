package factory

import (
	"math"
	"math/rand/v2"

	"github.com/automoto/thirdperson/archetypes"
	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// wallSpec is one authored static box of the sample level.
type wallSpec struct {
	name         string
	center, size mgl64.Vec3
}

var sampleWalls = []wallSpec{
	{"floor", mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{48, 1, 48}},
	{"wallNorth", mgl64.Vec3{0, 1.5, -20.5}, mgl64.Vec3{42, 3, 1}},
	{"wallSouth", mgl64.Vec3{0, 1.5, 20.5}, mgl64.Vec3{42, 3, 1}},
	{"wallWest", mgl64.Vec3{-20.5, 1.5, 0}, mgl64.Vec3{1, 3, 40}},
	{"wallEast", mgl64.Vec3{20.5, 1.5, 0}, mgl64.Vec3{1, 3, 40}},
	{"pillar", mgl64.Vec3{4, 1, -4}, mgl64.Vec3{1.5, 2, 1.5}},
	// two boxes meeting at a concave corner
	{"cornerLong", mgl64.Vec3{-6, 1, -8}, mgl64.Vec3{6, 2, 1}},
	{"cornerShort", mgl64.Vec3{-8.5, 1, -5.5}, mgl64.Vec3{1, 2, 4}},
}

type anchorSpec struct {
	name     string
	position mgl64.Vec3
	pitch    float64
}

// OverviewAnchor is a fixed high camera that does not follow the actor.
const OverviewAnchor = "overview"

var sampleAnchors = []anchorSpec{
	{cfg.Camera.GameAnchor, mgl64.Vec3{0, 3, 6}, -0.3},
	{cfg.Camera.ResetAnchor, mgl64.Vec3{0, 5, 9}, -0.4},
	{OverviewAnchor, mgl64.Vec3{0, 14, 14}, -math.Pi / 4},
}

// CreateLevel builds the sample level: floor, boundary walls, a pillar, a corner,
// the camera anchors, the hidden obstacle template and the container for
// obstacles spawned at runtime. seed drives obstacle placement.
func CreateLevel(ecs *ecs.ECS, seed uint64) *donburi.Entry {
	level := archetypes.Level.Spawn(ecs)

	graph := scene.NewGraph()
	root := graph.Root()

	for _, w := range sampleWalls {
		CreateWall(ecs, root, w.name, w.center, w.size)
	}

	for _, a := range sampleAnchors {
		anchor := scene.NewNode(a.name)
		anchor.SetTransform(scene.Transform{
			Position: a.position,
			Rotation: mgl64.QuatRotate(a.pitch, mgl64.Vec3{1, 0, 0}),
		})
		root.AddChild(anchor)
	}

	template := scene.NewNode(cfg.Obstacles.TemplateName)
	template.Hidden = true
	root.AddChild(template)

	spawned := scene.NewNode(cfg.Obstacles.ContainerName)
	root.AddChild(spawned)

	components.Level.SetValue(level, components.LevelData{
		Graph:    graph,
		Animator: scene.NewAnimator(),
		Spawned:  spawned,
		Rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	})
	components.Clock.SetValue(level, components.ClockData{})

	return level
}
