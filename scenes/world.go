package scenes

import (
	"github.com/automoto/thirdperson/camera"
	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/scene"
	"github.com/automoto/thirdperson/systems"
	"github.com/automoto/thirdperson/systems/factory"
	"github.com/automoto/thirdperson/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// GameScene is the locomotion and camera sandbox: one actor in the sample level
// followed by the camera rig. Drivers feed it time and input.
type GameScene struct {
	ecs *ecs.ECS
}

// NewGameScene builds the level, the actor and the camera rig. seed drives
// obstacle placement.
func NewGameScene(seed uint64) *GameScene {
	gs := &GameScene{}
	gs.configure(seed)
	return gs
}

func (gs *GameScene) configure(seed uint64) {
	ecs := ecs.NewECS(donburi.NewWorld())

	// Guards first so an action can restart on the tick its guard lapses
	ecs.AddSystem(systems.UpdateTimers)
	ecs.AddSystem(systems.UpdateInput) // Must run before UpdateLocomotion
	ecs.AddSystem(systems.UpdateLocomotion)
	ecs.AddSystem(systems.UpdateObstacles)
	ecs.AddSystem(systems.UpdateProjectiles)
	ecs.AddSystem(systems.UpdateAnimations)
	// The rig reads the actor's resolved position, so constraints run last
	ecs.AddSystem(systems.UpdateCamera)
	ecs.AddSystem(systems.ProcessEvents)

	gs.ecs = ecs

	// Collision space first: the level registers its walls with it.
	factory.CreateSpace(ecs)
	level := factory.CreateLevel(ecs, seed)
	root := components.Level.Get(level).Graph.Root()

	actor := factory.CreateActor(ecs, root, cfg.Actor.SpawnPoint)
	factory.CreateCamera(ecs, actor)
	systems.OnDeviceConnected(ecs, KeyboardDevice, cfg.ProfileExtended)
}

// KeyboardDevice is the id of the always connected keyboard.
const KeyboardDevice = -1

// Update runs one simulation tick at time now, in seconds. The first call only
// establishes the time base.
func (gs *GameScene) Update(now float64) {
	systems.AdvanceClock(gs.ecs, now)
	gs.ecs.Update()
}

func (gs *GameScene) SetLocomotionInput(v mgl64.Vec2) {
	systems.SetLocomotionInput(gs.ecs, v)
}

func (gs *GameScene) SetOrbitInput(v mgl64.Vec2) {
	systems.SetOrbitInput(gs.ecs, v)
}

// RequestAction starts an action unless one of the same kind is pending.
func (gs *GameScene) RequestAction(kind cfg.ActionKind) bool {
	return systems.RequestAction(gs.ecs, kind)
}

// RequestCameraTransition eases the camera to the named anchor over duration
// seconds. A negative duration uses the configured default.
func (gs *GameScene) RequestCameraTransition(anchor string, duration float64) bool {
	if duration < 0 {
		duration = cfg.Camera.TransitionTime
	}
	return gs.rig().Transition(anchor, duration)
}

func (gs *GameScene) OnDeviceConnected(id int, profile cfg.DeviceProfile) {
	systems.OnDeviceConnected(gs.ecs, id, profile)
}

func (gs *GameScene) OnDeviceDisconnected(id int) {
	systems.OnDeviceDisconnected(gs.ecs, id)
}

func (gs *GameScene) HandleButton(id int, button cfg.Button, pressed bool) bool {
	return systems.HandleButton(gs.ecs, id, button, pressed)
}

func (gs *GameScene) HandleStick(id int, stick cfg.Stick, v mgl64.Vec2) {
	systems.HandleStick(gs.ecs, id, stick, v)
}

// ActorPose is the actor's world position with its facing as rotation.
func (gs *GameScene) ActorPose() scene.Transform {
	a := components.Actor.Get(gs.actor())
	pose := components.Object.Get(gs.actor()).WorldTransform()
	pose.Rotation = a.Orientation.WorldTransform().Rotation
	return pose
}

// ActorHeading is the yaw the actor is turning toward, atan2(x, z).
func (gs *GameScene) ActorHeading() float64 {
	return components.Actor.Get(gs.actor()).Heading
}

func (gs *GameScene) CameraTransform() scene.Transform {
	return gs.rig().CameraTransform()
}

func (gs *GameScene) ActiveAnchor() string {
	return gs.rig().ActiveName()
}

func (gs *GameScene) Hidden() bool {
	return components.Actions.Get(gs.actor()).Hidden
}

// Obstacles counts spawned obstacles, landed or not.
func (gs *GameScene) Obstacles() int {
	return donburi.NewQuery(filter.Contains(tags.Obstacle)).Count(gs.ecs.World)
}

// Projectiles counts fireballs in flight.
func (gs *GameScene) Projectiles() int {
	return donburi.NewQuery(filter.Contains(tags.Projectile)).Count(gs.ecs.World)
}

// Graph exposes the scene graph for drivers that draw or inspect it.
func (gs *GameScene) Graph() *scene.Graph {
	return components.Level.Get(components.Level.MustFirst(gs.ecs.World)).Graph
}

func (gs *GameScene) ECS() *ecs.ECS {
	return gs.ecs
}

func (gs *GameScene) actor() *donburi.Entry {
	return tags.Actor.MustFirst(gs.ecs.World)
}

func (gs *GameScene) rig() *camera.Rig {
	return components.Camera.Get(components.Camera.MustFirst(gs.ecs.World)).Rig
}

// Subscribe registers fn for events of type t published by the scene's systems.
// Events are delivered at the end of the tick that produced them.
func Subscribe[T any](gs *GameScene, t *events.EventType[T], fn func(T)) {
	t.Subscribe(gs.ecs.World, func(_ donburi.World, e T) {
		fn(e)
	})
}
