package components

import (
	"github.com/automoto/thirdperson/camera"
	"github.com/yohamta/donburi"
)

type CameraData struct {
	Rig *camera.Rig
}

var Camera = donburi.NewComponentType[CameraData]()
