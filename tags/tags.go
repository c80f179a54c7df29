package tags

import "github.com/yohamta/donburi"

var (
	Actor      = donburi.NewTag().SetName("Actor")
	Obstacle   = donburi.NewTag().SetName("Obstacle")
	Projectile = donburi.NewTag().SetName("Projectile")
	Static     = donburi.NewTag().SetName("Static")
)
