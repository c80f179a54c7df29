package components

import (
	"github.com/automoto/thirdperson/physics"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

var Space = donburi.NewComponentType[physics.World]()

type BodyData struct {
	Collider  *physics.Collider // nil until the body comes to rest
	Size      mgl64.Vec3
	VelocityY float64
	Landed    bool
}

var Body = donburi.NewComponentType[BodyData]()
