package components

import (
	"github.com/automoto/thirdperson/scene"
	"github.com/yohamta/donburi"
)

// ObjectData links an entity to its node in the scene graph.
type ObjectData struct {
	*scene.Node
}

var Object = donburi.NewComponentType[ObjectData]()
