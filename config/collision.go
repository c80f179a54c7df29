package config

import "strings"

// Bitmask identifies collision categories. A collider belongs to one or more
// categories and sweep tests only consider colliders matching the query mask.
type Bitmask uint32

const (
	BitmaskCharacter   Bitmask = 1 << 0 // the controlled actor
	BitmaskCollision   Bitmask = 1 << 1 // ground and walls
	BitmaskEnemy       Bitmask = 1 << 2
	BitmaskTrigger     Bitmask = 1 << 3 // volumes that trigger camera changes
	BitmaskCollectable Bitmask = 1 << 4
)

var bitmaskNames = []struct {
	bit  Bitmask
	name string
}{
	{BitmaskCharacter, "character"},
	{BitmaskCollision, "collision"},
	{BitmaskEnemy, "enemy"},
	{BitmaskTrigger, "trigger"},
	{BitmaskCollectable, "collectable"},
}

// Has reports whether m shares at least one category with other.
func (m Bitmask) Has(other Bitmask) bool {
	return m&other != 0
}

// Names lists the category names set in m, lowest bit first.
func (m Bitmask) Names() []string {
	var names []string
	for _, b := range bitmaskNames {
		if m&b.bit != 0 {
			names = append(names, b.name)
		}
	}
	return names
}

func (m Bitmask) String() string {
	if m == 0 {
		return "none"
	}
	return strings.Join(m.Names(), "|")
}

// CollisionConfig names the masks the simulation queries with.
type CollisionConfig struct {
	ActorMask    Bitmask // what the actor's slide solver collides with
	ObstacleMask Bitmask // what falling obstacles land on
}

var Collision CollisionConfig

func init() {
	Collision = CollisionConfig{
		ActorMask:    BitmaskCollision,
		ObstacleMask: BitmaskCollision,
	}
}
