package components

import "github.com/yohamta/donburi"

// ClockData is simulation time in seconds. Delta is zero on the first tick.
type ClockData struct {
	Now     float64
	Delta   float64
	Frame   int
	started bool
}

// Advance moves the clock to now.
func (c *ClockData) Advance(now float64) {
	if !c.started {
		c.started = true
		c.Now = now
		c.Delta = 0
	} else {
		c.Delta = max(0, now-c.Now)
		c.Now = now
	}
	c.Frame++
}

var Clock = donburi.NewComponentType[ClockData]()
