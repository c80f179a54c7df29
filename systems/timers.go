package systems

import (
	"github.com/automoto/thirdperson/components"
	cfg "github.com/automoto/thirdperson/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// AdvanceClock sets simulation time for the coming tick. It must be called
// before ecs.Update.
func AdvanceClock(ecs *ecs.ECS, now float64) {
	if entry, ok := components.Clock.First(ecs.World); ok {
		components.Clock.Get(entry).Advance(now)
	}
}

func clock(ecs *ecs.ECS) *components.ClockData {
	entry, ok := components.Clock.First(ecs.World)
	if !ok {
		return &components.ClockData{}
	}
	return components.Clock.Get(entry)
}

// UpdateTimers clears the guards of actions whose timers have expired. It runs
// first in the tick so that an action may be requested again on the tick its
// guard lapses.
func UpdateTimers(ecs *ecs.ECS) {
	now := clock(ecs).Now

	type expiredTimer struct {
		entity donburi.Entity
		kind   cfg.ActionKind
	}
	var expired []expiredTimer
	components.Actions.Each(ecs.World, func(e *donburi.Entry) {
		actions := components.Actions.Get(e)
		kept := actions.Timers[:0]
		for _, t := range actions.Timers {
			if now >= t.Expiry {
				expired = append(expired, expiredTimer{e.Entity(), t.Kind})
				continue
			}
			kept = append(kept, t)
		}
		actions.Timers = kept
	})

	for _, x := range expired {
		expireAction(ecs, ecs.World.Entry(x.entity), x.kind)
	}
}

func expireAction(ecs *ecs.ECS, actor *donburi.Entry, kind cfg.ActionKind) {
	actions := components.Actions.Get(actor)
	actions.Guards[kind] = false

	if kind == cfg.ActionHide {
		a := components.Actor.Get(actor)
		a.Model.Opacity = 1
		a.WalkBoost = 1
		actions.Hidden = false
		HideEndedEvent.Publish(ecs.World, HideEnded{})
	}
}
