package scenes

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/mathutil"
	"github.com/automoto/thirdperson/physics"
	"github.com/automoto/thirdperson/systems"
	"github.com/automoto/thirdperson/systems/factory"
	"github.com/automoto/thirdperson/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

const tick = 1.0 / 60

// harness drives a GameScene at a fixed tick rate.
type harness struct {
	*GameScene
	now float64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{GameScene: NewGameScene(1)}
	h.Update(0)
	return h
}

func (h *harness) run(ticks int) {
	for range ticks {
		h.now += tick
		h.Update(h.now)
	}
}

func (h *harness) runFor(seconds float64) {
	h.run(int(math.Ceil(seconds/tick)) + 1)
}

func TestFirstTickDoesNotMove(t *testing.T) {
	gs := NewGameScene(1)
	gs.SetLocomotionInput(mgl64.Vec2{1, 0})
	gs.Update(5)

	assert.Equal(t, cfg.Actor.SpawnPoint, gs.ActorPose().Position)
	assert.Equal(t, cfg.Camera.GameAnchor, gs.ActiveAnchor())
}

func TestSingleTickMovesAlongX(t *testing.T) {
	h := newHarness(t)
	h.SetLocomotionInput(mgl64.Vec2{1, 0})
	h.now = 0.016
	h.Update(h.now)

	pos := h.ActorPose().Position
	assert.InDelta(t, cfg.Locomotion.SpeedFactor*0.016, pos.X(), 1e-9)
	assert.InDelta(t, 0.0, pos.Y(), 1e-12)
	assert.InDelta(t, 0.0, pos.Z(), 1e-9)
	assert.InDelta(t, math.Pi/2, h.ActorHeading(), 1e-6)
}

func TestActorTurnsToFaceMovement(t *testing.T) {
	h := newHarness(t)
	// a fixed camera keeps the heading constant while walking
	require.True(t, h.RequestCameraTransition(factory.OverviewAnchor, 0))
	h.SetLocomotionInput(mgl64.Vec2{1, 0})
	h.runFor(cfg.Locomotion.TurnDuration)

	facing := h.ActorPose().Rotation.Rotate(mgl64.Vec3{0, 0, 1})
	assert.Greater(t, facing.X(), 0.99)
}

func TestActorNeverPenetratesWalls(t *testing.T) {
	h := newHarness(t)
	rng := rand.New(rand.NewPCG(3, 5))

	reach := cfg.Actor.RadiusFactor*(cfg.Actor.BoundsMax.X()-cfg.Actor.BoundsMin.X()) + cfg.Actor.Margin
	var walls []physics.Box
	tags.Static.Each(h.ECS().World, func(e *donburi.Entry) {
		if components.Object.Get(e).Name != "floor" {
			walls = append(walls, components.Body.Get(e).Collider.Box)
		}
	})
	require.NotEmpty(t, walls)

	for range 40 {
		angle := rng.Float64() * 2 * math.Pi
		h.SetLocomotionInput(mgl64.Vec2{math.Cos(angle), math.Sin(angle)})
		for range 60 {
			h.run(1)
			pos := h.ActorPose().Position
			for _, b := range walls {
				cx := math.Max(b.Min.X(), math.Min(pos.X(), b.Max.X()))
				cz := math.Max(b.Min.Z(), math.Min(pos.Z(), b.Max.Z()))
				require.GreaterOrEqual(t, math.Hypot(pos.X()-cx, pos.Z()-cz), reach-1e-4,
					"actor at %v inside %v", pos, b)
			}
		}
	}
}

func TestEastWallStopsActor(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.RequestCameraTransition(factory.OverviewAnchor, 0))
	h.SetLocomotionInput(mgl64.Vec2{1, 0})
	h.run(60 * 15)

	reach := cfg.Actor.RadiusFactor*(cfg.Actor.BoundsMax.X()-cfg.Actor.BoundsMin.X()) + cfg.Actor.Margin
	pos := h.ActorPose().Position
	assert.LessOrEqual(t, pos.X(), 20-reach+1e-4)
	assert.Greater(t, pos.X(), 19.0)
	assert.InDelta(t, 0.0, pos.Z(), 1e-6)
}

func TestGuardedAttackFiresOnce(t *testing.T) {
	h := newHarness(t)
	var fired []systems.AttackFired
	Subscribe(h.GameScene, systems.AttackFiredEvent, func(e systems.AttackFired) {
		fired = append(fired, e)
	})

	assert.True(t, h.RequestAction(cfg.ActionAttack))
	assert.False(t, h.RequestAction(cfg.ActionAttack))
	h.run(1)

	assert.Len(t, fired, 1)
	assert.Equal(t, 1, h.Projectiles())

	h.runFor(cfg.Actions.AttackCooldown)
	assert.True(t, h.RequestAction(cfg.ActionAttack))
	h.run(1)
	assert.Len(t, fired, 2)
}

func TestBigShotCadence(t *testing.T) {
	h := newHarness(t)
	var big []int
	shot := 0
	Subscribe(h.GameScene, systems.AttackFiredEvent, func(e systems.AttackFired) {
		shot++
		if e.Big {
			big = append(big, shot)
		}
	})

	for range 10 {
		require.True(t, h.RequestAction(cfg.ActionAttack))
		h.runFor(cfg.Actions.AttackCooldown)
	}
	assert.Equal(t, 10, shot)
	assert.Equal(t, []int{4, 7, 10}, big)
}

func TestProjectileIsRemovedAfterFlight(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.RequestAction(cfg.ActionAttack))
	h.run(1)
	require.NotNil(t, h.Graph().Find(cfg.Actions.ProjectileName))

	h.runFor(cfg.Actions.ProjectileTime)
	assert.Equal(t, 0, h.Projectiles())
	assert.Nil(t, h.Graph().Find(cfg.Actions.ProjectileName))
}

func TestHideBoostsWalkUntilExpiry(t *testing.T) {
	h := newHarness(t)
	ended := 0
	Subscribe(h.GameScene, systems.HideEndedEvent, func(systems.HideEnded) { ended++ })

	require.True(t, h.RequestAction(cfg.ActionHide))
	assert.True(t, h.Hidden())
	assert.False(t, h.RequestAction(cfg.ActionHide))

	model := h.Graph().Find(cfg.Actor.ModelName)
	require.NotNil(t, model)
	assert.Equal(t, 0.0, model.Opacity)

	h.SetLocomotionInput(mgl64.Vec2{1, 0})
	h.run(1)
	fast := h.ActorPose().Position.X()
	assert.InDelta(t, cfg.Locomotion.SpeedFactor*cfg.Locomotion.HideBoost*tick, fast, 1e-6)

	h.SetLocomotionInput(mgl64.Vec2{})
	h.runFor(cfg.Actions.HideDuration)
	assert.False(t, h.Hidden())
	assert.Equal(t, 1.0, model.Opacity)
	assert.Equal(t, 1, ended)
}

func TestSpawnedObstacleLandsAndBlocks(t *testing.T) {
	h := newHarness(t)
	var spawned []systems.ObstacleSpawned
	Subscribe(h.GameScene, systems.ObstacleSpawnedEvent, func(e systems.ObstacleSpawned) {
		spawned = append(spawned, e)
	})

	require.True(t, h.RequestAction(cfg.ActionSpawnObstacle))
	assert.False(t, h.RequestAction(cfg.ActionSpawnObstacle))
	assert.Equal(t, 1, h.Obstacles())
	h.runFor(2)

	require.Len(t, spawned, 1)
	pos := spawned[0].Position
	assert.GreaterOrEqual(t, pos.X(), cfg.Obstacles.SpawnMinX)
	assert.Less(t, pos.X(), cfg.Obstacles.SpawnMaxX)
	assert.Equal(t, cfg.Obstacles.SpawnZ, pos.Z())

	entry := tags.Obstacle.MustFirst(h.ECS().World)
	body := components.Body.Get(entry)
	require.True(t, body.Landed)
	require.NotNil(t, body.Collider)
	assert.InDelta(t, cfg.Obstacles.Size.Y()/2, components.Object.Get(entry).WorldPosition().Y(), 1e-6)
}

func TestObstacleRestsOnActorUntilItMoves(t *testing.T) {
	h := newHarness(t)
	spawn := cfg.Actor.SpawnPoint
	entry := factory.CreateObstacle(h.ECS(), spawn.Add(mgl64.Vec3{0, cfg.Obstacles.SpawnY, 0}))
	require.NotNil(t, entry)
	h.runFor(2)

	body := components.Body.Get(entry)
	shape := components.Actor.Get(tags.Actor.MustFirst(h.ECS().World)).Shape
	top := spawn.Y() + shape.Offset().Y() + shape.Height/2 + shape.Margin
	bottom := components.Object.Get(entry).WorldPosition().Y() - cfg.Obstacles.Size.Y()/2
	assert.False(t, body.Landed)
	assert.InDelta(t, top, bottom, 1e-3)

	h.SetLocomotionInput(mgl64.Vec2{1, 0})
	h.runFor(1.5)
	h.SetLocomotionInput(mgl64.Vec2{})
	h.runFor(2)

	require.True(t, body.Landed)
	assert.InDelta(t, cfg.Obstacles.Size.Y()/2, components.Object.Get(entry).WorldPosition().Y(), 1e-6)
}

func TestProjectileFadesAfterFadeStart(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.RequestAction(cfg.ActionAttack))
	fireball := h.Graph().Find(cfg.Actions.ProjectileName)
	require.NotNil(t, fireball)

	h.runFor(cfg.Actions.ProjectileFadeStart - 0.1)
	assert.Equal(t, 1.0, fireball.Opacity)

	h.run(6)
	assert.Less(t, fireball.Opacity, 1.0)
	assert.Greater(t, fireball.Opacity, 0.0)
}

func TestResetSceneRestoresActorAndCamera(t *testing.T) {
	h := newHarness(t)
	resets := 0
	Subscribe(h.GameScene, systems.SceneResetEvent, func(systems.SceneReset) { resets++ })

	oldAnchor := h.Graph().Find(cfg.Camera.GameAnchor)
	h.SetLocomotionInput(mgl64.Vec2{0.5, -1})
	h.run(90)
	h.SetLocomotionInput(mgl64.Vec2{})
	require.True(t, h.RequestAction(cfg.ActionSpawnObstacle))
	require.NotEqual(t, cfg.Actor.SpawnPoint, h.ActorPose().Position)

	require.True(t, h.RequestAction(cfg.ActionResetScene))
	assert.False(t, h.RequestAction(cfg.ActionResetScene))
	assert.Equal(t, cfg.Actor.SpawnPoint, h.ActorPose().Position)
	assert.Equal(t, 0, h.Obstacles())
	assert.Equal(t, cfg.Camera.GameAnchor, h.ActiveAnchor())

	anchor := h.Graph().Find(cfg.Camera.GameAnchor)
	require.NotNil(t, anchor)
	assert.NotSame(t, oldAnchor, anchor)
	assert.Len(t, anchor.Constraints(), 5)
	assert.NotNil(t, h.Graph().Find(cfg.Camera.ResetAnchor))

	h.runFor(cfg.Camera.TransitionTime)
	assert.Equal(t, 1, resets)
	assert.True(t, h.CameraTransform().ApproxEqual(anchor.WorldTransform(), 1e-9))

	h.runFor(cfg.Actions.ResetCooldown)
	assert.True(t, h.RequestAction(cfg.ActionResetScene))
}

func TestCameraTransitionToOverview(t *testing.T) {
	h := newHarness(t)

	assert.False(t, h.RequestCameraTransition(cfg.Camera.GameAnchor, 1))
	assert.False(t, h.RequestCameraTransition("missing", 1))
	require.True(t, h.RequestCameraTransition(factory.OverviewAnchor, 0.5))
	assert.Equal(t, factory.OverviewAnchor, h.ActiveAnchor())

	h.runFor(0.5)
	overview := h.Graph().Find(factory.OverviewAnchor)
	assert.True(t, h.CameraTransform().ApproxEqual(overview.WorldTransform(), 1e-9))
	assert.True(t, mathutil.ApproxEqual3(h.CameraTransform().Position, mgl64.Vec3{0, 14, 14}, 1e-9))
}

func TestOrbitInputMovesFollowCamera(t *testing.T) {
	h := newHarness(t)
	h.run(10)
	before := h.CameraTransform().Position

	h.SetOrbitInput(mgl64.Vec2{1, 0})
	h.run(10)
	after := h.CameraTransform().Position
	assert.Greater(t, math.Abs(after.X()-before.X()), 0.1)
	assert.InDelta(t, before.Y(), after.Y(), 1e-6, "altitude is locked")

	h.SetOrbitInput(mgl64.Vec2{})
	h.run(1)
	still := h.CameraTransform().Position
	h.run(1)
	assert.InDelta(t, 0.0, h.CameraTransform().Position.Sub(still).Len(), 0.05)
}

func TestDeviceProfilesGateButtons(t *testing.T) {
	h := newHarness(t)

	assert.False(t, h.HandleButton(7, cfg.ButtonA, true), "unknown device")

	h.OnDeviceConnected(7, cfg.ProfileMicro)
	assert.False(t, h.HandleButton(7, cfg.ButtonY, true), "micro has no Y")
	assert.False(t, h.HandleButton(7, cfg.ButtonX, false), "releases do not dispatch")
	assert.True(t, h.HandleButton(7, cfg.ButtonX, true), "X is reported as B")
	assert.True(t, h.Hidden())

	h.OnDeviceConnected(8, cfg.ProfileExtended)
	assert.True(t, h.HandleButton(8, cfg.ButtonRightTrigger, true))
	assert.False(t, h.HandleButton(8, cfg.ButtonLeftTrigger, true), "attack is guarded")
	assert.True(t, h.HandleButton(8, cfg.ButtonOptions, true))
}

func TestSticksDriveLocomotion(t *testing.T) {
	h := newHarness(t)
	h.OnDeviceConnected(2, cfg.ProfileMicro)

	// micro has no analog sticks
	h.HandleStick(2, cfg.StickLeft, mgl64.Vec2{1, 0})
	h.run(5)
	assert.Equal(t, cfg.Actor.SpawnPoint, h.ActorPose().Position)

	// pushing up walks away from the camera
	h.HandleStick(2, cfg.StickDPad, mgl64.Vec2{0, 1})
	h.run(5)
	assert.Less(t, h.ActorPose().Position.Z(), -0.05)

	h.OnDeviceDisconnected(2)
	stopped := h.ActorPose().Position
	h.run(5)
	assert.Equal(t, stopped, h.ActorPose().Position)
}

func TestSmallStickMotionIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.OnDeviceConnected(3, cfg.ProfileExtended)
	h.HandleStick(3, cfg.StickLeft, mgl64.Vec2{cfg.Input.AnalogDeadzone / 2, 0})
	h.run(5)
	assert.Equal(t, cfg.Actor.SpawnPoint, h.ActorPose().Position)
}
