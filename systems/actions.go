package systems

import (
	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/systems/factory"
	"github.com/automoto/thirdperson/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

func actionCooldown(kind cfg.ActionKind) float64 {
	switch kind {
	case cfg.ActionAttack:
		return cfg.Actions.AttackCooldown
	case cfg.ActionHide:
		return cfg.Actions.HideDuration
	case cfg.ActionSpawnObstacle:
		return cfg.Actions.SpawnCooldown
	case cfg.ActionResetScene:
		return cfg.Actions.ResetCooldown
	}
	return 0
}

// RequestAction starts an action for the actor unless one of the same kind is
// still pending. It reports whether the action started.
func RequestAction(ecs *ecs.ECS, kind cfg.ActionKind) bool {
	if kind <= cfg.ActionNone || kind >= cfg.ActionCount {
		return false
	}
	actor, ok := tags.Actor.First(ecs.World)
	if !ok {
		return false
	}
	actions := components.Actions.Get(actor)
	if actions.Guards[kind] {
		return false
	}

	now := clock(ecs).Now
	actions.Guards[kind] = true
	actions.Timers = append(actions.Timers, components.ActionTimer{
		Expiry: now + actionCooldown(kind),
		Kind:   kind,
	})
	zap.L().Debug("action started", zap.Stringer("action", kind), zap.Float64("at", now))

	switch kind {
	case cfg.ActionAttack:
		attack(ecs, actor, now)
	case cfg.ActionHide:
		hide(ecs, actor)
	case cfg.ActionSpawnObstacle:
		spawnObstacle(ecs)
	case cfg.ActionResetScene:
		resetScene(ecs, actor)
	}
	return true
}

// attack fires a fireball. The first big shot follows BigShotEvery small ones;
// after that every BigShotEvery-th shot is big.
func attack(ecs *ecs.ECS, actor *donburi.Entry, now float64) {
	actions := components.Actions.Get(actor)
	big := actions.ShotCount >= cfg.Actions.BigShotEvery
	if big {
		actions.ShotCount = 0
	}
	actions.ShotCount++

	projectile := factory.CreateProjectile(ecs, actor, big, now)
	AttackFiredEvent.Publish(ecs.World, AttackFired{
		Position: components.Object.Get(projectile).WorldPosition(),
		Big:      big,
	})
}

func hide(ecs *ecs.ECS, actor *donburi.Entry) {
	a := components.Actor.Get(actor)
	a.Model.Opacity = 0
	a.WalkBoost = cfg.Locomotion.HideBoost
	components.Actions.Get(actor).Hidden = true
	HideStartedEvent.Publish(ecs.World, HideStarted{})
}

func spawnObstacle(ecs *ecs.ECS) {
	pos := factory.RandomObstaclePosition(ecs)
	if factory.CreateObstacle(ecs, pos) == nil {
		return
	}
	ObstacleSpawnedEvent.Publish(ecs.World, ObstacleSpawned{Position: pos})
}

// resetScene cuts to the reset camera, returns the actor to its spawn point,
// rebuilds the game anchor from the reset anchor and eases back into it. Spawned
// obstacles are cleared.
func resetScene(ecs *ecs.ECS, actor *donburi.Entry) {
	level := components.Level.Get(components.Level.MustFirst(ecs.World))
	rig := components.Camera.Get(components.Camera.MustFirst(ecs.World)).Rig

	rig.Transition(cfg.Camera.ResetAnchor, 0)
	factory.ResetActor(actor, level.Animator)
	if rig.ReplaceAnchor(cfg.Camera.GameAnchor, cfg.Camera.ResetAnchor) != nil {
		rig.Transition(cfg.Camera.GameAnchor, cfg.Camera.TransitionTime)
	}
	RemoveObstacles(ecs)
	SceneResetEvent.Publish(ecs.World, SceneReset{})
}
