package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
)

type AttackFired struct {
	Position mgl64.Vec3
	Big      bool
}

type HideStarted struct{}

type HideEnded struct{}

type ObstacleSpawned struct {
	Position mgl64.Vec3
}

type SceneReset struct{}

// Action events are published while a tick runs and delivered at its end.
var (
	AttackFiredEvent     = events.NewEventType[AttackFired]()
	HideStartedEvent     = events.NewEventType[HideStarted]()
	HideEndedEvent       = events.NewEventType[HideEnded]()
	ObstacleSpawnedEvent = events.NewEventType[ObstacleSpawned]()
	SceneResetEvent      = events.NewEventType[SceneReset]()
)

func ProcessEvents(ecs *ecs.ECS) {
	events.ProcessAllEvents(ecs.World)
}
