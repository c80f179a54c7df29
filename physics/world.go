package physics

import (
	"math"
	"slices"

	"github.com/automoto/thirdperson/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

// Collider is a static or kinematic box registered in a World.
type Collider struct {
	Box      Box
	Category config.Bitmask
	Data     any

	obj      *resolv.Object
	overflow bool
}

// World is the collision world. Colliders are indexed by their XZ footprint in a
// resolv spatial hash; colliders reaching outside the hashed area are kept in an
// overflow list that every query scans.
type World struct {
	space     *resolv.Space
	origin    mgl64.Vec3
	extent    mgl64.Vec3
	scale     float64
	cell      float64
	colliders []*Collider
	overflow  []*Collider
}

// NewWorld creates a world whose broadphase covers the XZ range of [min, max].
// cellSize is in world units; scale converts world units to broadphase units.
func NewWorld(min, max mgl64.Vec3, cellSize, scale float64) *World {
	w := int(math.Ceil((max.X() - min.X()) * scale))
	h := int(math.Ceil((max.Z() - min.Z()) * scale))
	cell := int(math.Max(1, math.Round(cellSize*scale)))
	return &World{
		space:  resolv.NewSpace(w, h, cell, cell),
		origin: min,
		extent: max,
		scale:  scale,
		cell:   cellSize,
	}
}

// NewDefaultWorld creates a world from config.World.
func NewDefaultWorld() *World {
	return NewWorld(config.World.Min, config.World.Max, config.World.CellSize, config.World.UnitsScale)
}

func (w *World) inBounds(b Box) bool {
	return b.Min.X() >= w.origin.X() && b.Max.X() <= w.extent.X() &&
		b.Min.Z() >= w.origin.Z() && b.Max.Z() <= w.extent.Z()
}

// footprint maps a box's XZ extent to broadphase coordinates.
func (w *World) footprint(b Box) (x, y, width, height float64) {
	x = (b.Min.X() - w.origin.X()) * w.scale
	y = (b.Min.Z() - w.origin.Z()) * w.scale
	width = math.Max(1, b.Size().X()*w.scale)
	height = math.Max(1, b.Size().Z()*w.scale)
	return x, y, width, height
}

// AddBox registers a box collider.
func (w *World) AddBox(b Box, category config.Bitmask, data any) *Collider {
	c := &Collider{Box: b, Category: category, Data: data}
	w.colliders = append(w.colliders, c)
	w.index(c)
	return c
}

func (w *World) index(c *Collider) {
	if !w.inBounds(c.Box) {
		c.overflow = true
		w.overflow = append(w.overflow, c)
		return
	}
	x, y, width, height := w.footprint(c.Box)
	c.obj = resolv.NewObject(x, y, width, height, c.Category.Names()...)
	c.obj.Data = c
	w.space.Add(c.obj)
}

func (w *World) unindex(c *Collider) {
	if c.overflow {
		w.overflow = slices.DeleteFunc(w.overflow, func(o *Collider) bool { return o == c })
		c.overflow = false
		return
	}
	if c.obj != nil {
		w.space.Remove(c.obj)
		c.obj = nil
	}
}

// Remove unregisters c. Removing a collider twice is harmless.
func (w *World) Remove(c *Collider) {
	i := slices.Index(w.colliders, c)
	if i < 0 {
		return
	}
	w.unindex(c)
	w.colliders = slices.Delete(w.colliders, i, i+1)
}

// Move relocates c to b.
func (w *World) Move(c *Collider, b Box) {
	if !slices.Contains(w.colliders, c) {
		return
	}
	c.Box = b
	if c.obj != nil && w.inBounds(b) {
		c.obj.X, c.obj.Y, c.obj.W, c.obj.H = w.footprint(b)
		c.obj.Update()
		return
	}
	w.unindex(c)
	w.index(c)
}

// Colliders returns a snapshot of all registered colliders.
func (w *World) Colliders() []*Collider {
	return slices.Clone(w.colliders)
}

// candidates collects colliders matching mask whose footprint may touch the XZ
// region of b.
func (w *World) candidates(b Box, mask config.Bitmask) []*Collider {
	var out []*Collider
	for _, c := range w.overflow {
		if c.Category.Has(mask) {
			out = append(out, c)
		}
	}

	// Pad by a cell so boundary rounding in the hash never drops a neighbor.
	pad := mgl64.Vec3{w.cell, 0, w.cell}
	region := Box{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
	region.Min[0] = math.Max(region.Min.X(), w.origin.X())
	region.Min[2] = math.Max(region.Min.Z(), w.origin.Z())
	region.Max[0] = math.Min(region.Max.X(), w.extent.X())
	region.Max[2] = math.Min(region.Max.Z(), w.extent.Z())
	if region.Min.X() >= region.Max.X() || region.Min.Z() >= region.Max.Z() {
		return out
	}

	x, y, width, height := w.footprint(region)
	query := resolv.NewObject(x, y, width, height)
	w.space.Add(query)
	defer w.space.Remove(query)

	check := query.Check(0, 0, mask.Names()...)
	if check == nil {
		return out
	}
	for _, o := range check.Objects {
		c, ok := o.Data.(*Collider)
		if !ok || !c.Category.Has(mask) || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SweepTest returns the closest contact of shape moving from `from` to `to`
// against colliders in mask.
func (w *World) SweepTest(shape Capsule, from, to mgl64.Vec3, mask config.Bitmask) (Contact, bool) {
	reach := mgl64.Vec3{shape.reach(), shape.Height/2 + shape.Margin, shape.reach()}
	swept := Box{
		Min: minVec(from, to).Sub(reach),
		Max: maxVec(from, to).Add(reach),
	}

	var best Contact
	found := false
	for _, c := range w.candidates(swept, mask) {
		ct, ok := sweepCapsuleBox(shape, from, to, c.Box)
		if ok && (!found || ct.Fraction < best.Fraction) {
			best, found = ct, true
		}
	}
	return best, found
}

// SweepBox returns the closest contact of box b moving by delta against colliders
// in mask. b is not expected to be registered.
func (w *World) SweepBox(b Box, delta mgl64.Vec3, mask config.Bitmask) (Contact, bool) {
	moved := b.Translate(delta)
	swept := Box{Min: minVec(b.Min, moved.Min), Max: maxVec(b.Max, moved.Max)}

	var best Contact
	found := false
	for _, other := range w.candidates(swept, mask) {
		ct, ok := sweepBoxBox(b, delta, other.Box)
		if ok && (!found || ct.Fraction < best.Fraction) {
			best, found = ct, true
		}
	}
	return best, found
}

func minVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

func maxVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}
