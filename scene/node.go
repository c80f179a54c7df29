package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is a named element of the scene hierarchy. Its transform is stored relative
// to its parent; world transforms are derived on demand.
type Node struct {
	Name    string
	Hidden  bool
	Opacity float64
	Scale   float64

	local       Transform
	parent      *Node
	children    []*Node
	constraints []Constraint
}

func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Opacity: 1,
		Scale:   1,
		local:   Identity(),
	}
}

func (n *Node) Transform() Transform     { return n.local }
func (n *Node) SetTransform(t Transform) { n.local = t }
func (n *Node) Position() mgl64.Vec3     { return n.local.Position }
func (n *Node) Rotation() mgl64.Quat     { return n.local.Rotation }
func (n *Node) Parent() *Node            { return n.parent }

func (n *Node) SetPosition(p mgl64.Vec3) { n.local.Position = p }
func (n *Node) SetRotation(q mgl64.Quat) { n.local.Rotation = q }

// Children returns a snapshot of the node's children.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// WorldTransform composes the transforms from the root down to n.
func (n *Node) WorldTransform() Transform {
	if n.parent == nil {
		return n.local
	}
	return n.parent.WorldTransform().Mul(n.local)
}

func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.WorldTransform().Position
}

// SetWorldTransform rewrites the local transform so that the node ends up at w.
func (n *Node) SetWorldTransform(w Transform) {
	if n.parent == nil {
		n.local = w
		return
	}
	n.local = n.parent.WorldTransform().Inverse().Mul(w)
}

func (n *Node) SetWorldPosition(p mgl64.Vec3) {
	w := n.WorldTransform()
	w.Position = p
	n.SetWorldTransform(w)
}

// AddChild moves child under n keeping its local transform, so its world transform
// generally changes. Adding an ancestor of n is ignored.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n || child.isAncestorOf(n) {
		return
	}
	child.RemoveFromParent()
	child.parent = n
	n.children = append(n.children, child)
}

// AddChildKeepingWorld moves child under n without changing its world transform.
func (n *Node) AddChildKeepingWorld(child *Node) {
	if child == nil || child == n || child.isAncestorOf(n) {
		return
	}
	world := child.WorldTransform()
	n.AddChild(child)
	child.SetWorldTransform(world)
}

func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := slices.Index(p.children, n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

// RemoveAllChildren detaches every child of n.
func (n *Node) RemoveAllChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Find returns the first descendant named name in depth-first order.
func (n *Node) Find(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits n and its descendants parent-first. Returning false from fn skips
// the visited node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range slices.Clone(n.children) {
		c.Walk(fn)
	}
}

// Clone copies the subtree rooted at n. The copy is detached and shares constraint
// instances with the original.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:        n.Name,
		Hidden:      n.Hidden,
		Opacity:     n.Opacity,
		Scale:       n.Scale,
		local:       n.local,
		constraints: slices.Clone(n.constraints),
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

func (n *Node) Constraints() []Constraint {
	return slices.Clone(n.constraints)
}

func (n *Node) SetConstraints(cs []Constraint) {
	n.constraints = slices.Clone(cs)
}

func (n *Node) isAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}
