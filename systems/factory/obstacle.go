package factory

import (
	"github.com/automoto/thirdperson/archetypes"
	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// CreateObstacle clones the level's obstacle template at position. The copy
// starts falling on the next tick. It returns nil when the template is missing.
func CreateObstacle(ecs *ecs.ECS, position mgl64.Vec3) *donburi.Entry {
	level := components.Level.Get(components.Level.MustFirst(ecs.World))
	template := level.Graph.Find(cfg.Obstacles.TemplateName)
	if template == nil {
		zap.L().Debug("obstacle template not found", zap.String("template", cfg.Obstacles.TemplateName))
		return nil
	}

	node := template.Clone()
	node.Hidden = false
	level.Spawned.AddChild(node)
	node.SetWorldPosition(position)

	obstacle := archetypes.Obstacle.Spawn(ecs)
	components.Object.SetValue(obstacle, components.ObjectData{Node: node})
	components.Body.SetValue(obstacle, components.BodyData{
		Size: cfg.Obstacles.Size.Mul(node.Scale),
	})
	return obstacle
}

// RandomObstaclePosition picks a spawn point above the level, x uniform in
// [SpawnMinX, SpawnMaxX).
func RandomObstaclePosition(ecs *ecs.ECS) mgl64.Vec3 {
	level := components.Level.Get(components.Level.MustFirst(ecs.World))
	x := cfg.Obstacles.SpawnMinX + level.Rand.Float64()*(cfg.Obstacles.SpawnMaxX-cfg.Obstacles.SpawnMinX)
	return mgl64.Vec3{x, cfg.Obstacles.SpawnY, cfg.Obstacles.SpawnZ}
}
