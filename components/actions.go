package components

import (
	cfg "github.com/automoto/thirdperson/config"
	"github.com/yohamta/donburi"
)

// ActionTimer clears the guard of Kind once the clock reaches Expiry.
type ActionTimer struct {
	Expiry float64
	Kind   cfg.ActionKind
}

type ActionsData struct {
	Guards    [cfg.ActionCount]bool
	Timers    []ActionTimer
	ShotCount int
	Hidden    bool
}

var Actions = donburi.NewComponentType[ActionsData]()
