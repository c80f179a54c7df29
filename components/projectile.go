package components

import "github.com/yohamta/donburi"

type ProjectileData struct {
	Launched float64
	Big      bool
	Fading   bool
}

var Projectile = donburi.NewComponentType[ProjectileData]()
