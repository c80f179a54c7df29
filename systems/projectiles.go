package systems

import (
	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/mathutil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateProjectiles fades fireballs out over the end of their flight. Removal
// happens when the flight animation completes.
func UpdateProjectiles(ecs *ecs.ECS) {
	now := clock(ecs).Now
	fadeTime := cfg.Actions.ProjectileTime - cfg.Actions.ProjectileFadeStart

	components.Projectile.Each(ecs.World, func(e *donburi.Entry) {
		p := components.Projectile.Get(e)
		age := now - p.Launched
		if age < cfg.Actions.ProjectileFadeStart {
			return
		}
		p.Fading = true
		opacity := 0.0
		if fadeTime > 0 {
			opacity = 1 - mathutil.ClampFloat((age-cfg.Actions.ProjectileFadeStart)/fadeTime, 0, 1)
		}
		components.Object.Get(e).Opacity = opacity
	})
}
