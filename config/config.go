package config

import "github.com/go-gl/mathgl/mgl64"

// LocomotionConfig contains the actor movement and slide solver tuning.
type LocomotionConfig struct {
	SpeedFactor        float64 // world units per second at full input
	MinControllerSpeed float64 // speed fraction applied to the smallest non-zero input
	HideBoost          float64 // walk speed multiplier while hidden
	TurnDuration       float64 // seconds to turn toward a new heading

	// Slide solver
	MaxSlideIterations int
	MoveEpsilon        float64 // velocities shorter than this are not swept
	AbsorbEpsilon      float64 // slide velocities shorter than this are fully absorbed
	GrazingFriction    float64
	SteepFriction      float64
	SteepThreshold     float64 // |dot(dir, normal)| below this counts as steep
	SteepPushOff       float64 // distance pushed off the slide plane on steep hits
}

// ActorConfig describes the controlled actor's model and spawn point.
type ActorConfig struct {
	Name            string
	OrientationName string
	ModelName       string
	BoundsMin       mgl64.Vec3
	BoundsMax       mgl64.Vec3
	Margin          float64
	SpawnPoint      mgl64.Vec3
	ShapeOffsetY    float64 // capsule center height as a fraction of the model height
	RadiusFactor    float64 // capsule radius as a fraction of the model width
}

// CameraConfig contains the camera rig tuning and the authored anchor names.
type CameraConfig struct {
	MainCamera     string
	FollowPrefix   string // anchors with this name prefix get the follow constraints
	GameAnchor     string
	ResetAnchor    string
	LookAtTarget   string
	LookAtHeight   float64 // look-at target height above the actor's base altitude
	LookAtFactor   float64
	GimbalLock     bool
	OrbitSpeed     float64 // radians per frame at full orbit input
	InvertOrbitY   bool
	MaxVelocity    float64
	MaxAccel       float64
	Damping        float64
	InfluenceStep  float64 // per-frame increase of the acceleration influence
	TransitionTime float64 // default transition duration in seconds
}

// ActionsConfig holds the guard durations and effect parameters of actor actions.
type ActionsConfig struct {
	AttackCooldown      float64
	HideDuration        float64
	SpawnCooldown       float64
	ResetCooldown       float64
	BigShotEvery        int
	ProjectileName      string
	ProjectileTravel    float64 // distance along the actor's facing
	ProjectileTime      float64
	ProjectileFadeStart float64 // seconds after launch when the projectile starts fading
	SmallShotScale      float64
	SmallShotOffset     mgl64.Vec3
	BigShotScale        float64
	BigShotOffset       mgl64.Vec3
}

// ObstacleConfig controls obstacles spawned at runtime.
type ObstacleConfig struct {
	TemplateName  string
	ContainerName string
	SpawnMinX     float64
	SpawnMaxX     float64
	SpawnY        float64
	SpawnZ        float64
	Size          mgl64.Vec3
	Gravity       float64
	MaxFallSpeed  float64
}

// WorldConfig bounds the collision world's broadphase.
type WorldConfig struct {
	Min         mgl64.Vec3
	Max         mgl64.Vec3
	CellSize    float64 // broadphase cell edge in world units
	UnitsScale  float64 // broadphase integer units per world unit
	TickRate    int
	FloorHeight float64
}

// Config holds the window driver settings.
type Config struct {
	Width    int
	Height   int
	Title    string
	MapScale float64 // screen pixels per world unit in the top-down debug view
	LogLevel string
}

var (
	C          Config
	Locomotion LocomotionConfig
	Actor      ActorConfig
	Camera     CameraConfig
	Actions    ActionsConfig
	Obstacles  ObstacleConfig
	World      WorldConfig
)

func init() {
	C = Config{
		Width:    960,
		Height:   540,
		Title:    "thirdperson",
		MapScale: 12,
		LogLevel: "info",
	}

	Locomotion = LocomotionConfig{
		SpeedFactor:        2.0,
		MinControllerSpeed: 0.2,
		HideBoost:          4.0,
		TurnDuration:       0.1,

		MaxSlideIterations: 4,
		MoveEpsilon:        1e-4,
		AbsorbEpsilon:      1e-3,
		GrazingFriction:    0.3,
		SteepFriction:      1.0,
		SteepThreshold:     0.9,
		SteepPushOff:       0.01,
	}

	Actor = ActorConfig{
		Name:            "character",
		OrientationName: "orientation",
		ModelName:       "model",
		BoundsMin:       mgl64.Vec3{-0.5, 0, -0.35},
		BoundsMax:       mgl64.Vec3{0.5, 1.6, 0.35},
		Margin:          0.04,
		SpawnPoint:      mgl64.Vec3{0, 0, 0},
		ShapeOffsetY:    0.51,
		RadiusFactor:    0.4,
	}

	Camera = CameraConfig{
		MainCamera:     "mainCamera",
		FollowPrefix:   "camLookAt",
		GameAnchor:     "camLookAt_cameraGame",
		ResetAnchor:    "reset Camera",
		LookAtTarget:   "lookAtTarget",
		LookAtHeight:   0.5,
		LookAtFactor:   0.07,
		GimbalLock:     true,
		OrbitSpeed:     0.05,
		MaxVelocity:    1500,
		MaxAccel:       50,
		Damping:        0.05,
		InfluenceStep:  0.01,
		TransitionTime: 1.0,
	}

	Actions = ActionsConfig{
		AttackCooldown:      0.2,
		HideDuration:        1.0,
		SpawnCooldown:       0.5,
		ResetCooldown:       0.5,
		BigShotEvery:        3,
		ProjectileName:      "fireball",
		ProjectileTravel:    6,
		ProjectileTime:      2,
		ProjectileFadeStart: 1.8,
		SmallShotScale:      3,
		SmallShotOffset:     mgl64.Vec3{0, 0.4, 0.6},
		BigShotScale:        10,
		BigShotOffset:       mgl64.Vec3{0, 0.6, 1.6},
	}

	Obstacles = ObstacleConfig{
		TemplateName:  "Box",
		ContainerName: "spawned",
		SpawnMinX:     -8,
		SpawnMaxX:     6,
		SpawnY:        4,
		SpawnZ:        6,
		Size:          mgl64.Vec3{1, 1, 1},
		Gravity:       9.8,
		MaxFallSpeed:  20,
	}

	World = WorldConfig{
		Min:         mgl64.Vec3{-32, -8, -32},
		Max:         mgl64.Vec3{32, 24, 32},
		CellSize:    2,
		UnitsScale:  100,
		TickRate:    60,
		FloorHeight: 0,
	}
}
