package components

import (
	"math/rand/v2"

	"github.com/automoto/thirdperson/scene"
	"github.com/yohamta/donburi"
)

// LevelData owns the scene graph and the runtime containers of the level.
type LevelData struct {
	Graph    *scene.Graph
	Animator *scene.Animator
	Spawned  *scene.Node // parent of obstacles created at runtime
	Rand     *rand.Rand
}

var Level = donburi.NewComponentType[LevelData]()
