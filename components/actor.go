package components

import (
	"github.com/automoto/thirdperson/gamemath"
	"github.com/automoto/thirdperson/physics"
	"github.com/automoto/thirdperson/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// ActorData is the controlled character. The entity's Object node carries the
// world position; Orientation and Model are children used for facing and
// visibility.
type ActorData struct {
	Orientation *scene.Node
	Model       *scene.Node
	Shape       physics.Capsule
	Spawn       mgl64.Vec3

	Direction mgl64.Vec2 // controller input, length <= 1
	Velocity  mgl64.Vec3 // displacement requested on the last tick
	Heading   float64
	WalkBoost float64
	Walking   bool

	BaseAltitude float64
	LastSlide    gamemath.SlideResult
}

var Actor = donburi.NewComponentType[ActorData]()
