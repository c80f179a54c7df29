package scene

// Constraint adjusts a node's world transform during Graph.Evaluate. Constraints run
// in the order they were attached and each sees the previous one's output.
type Constraint interface {
	Apply(node *Node, world Transform, dt float64) Transform
}

// ConstraintFunc adapts a plain function to Constraint.
type ConstraintFunc func(node *Node, world Transform, dt float64) Transform

func (f ConstraintFunc) Apply(node *Node, world Transform, dt float64) Transform {
	return f(node, world, dt)
}

// Graph owns the root of a node hierarchy.
type Graph struct {
	root *Node
}

func NewGraph() *Graph {
	return &Graph{root: NewNode("root")}
}

func (g *Graph) Root() *Node {
	return g.root
}

// Find looks up a node anywhere below the root.
func (g *Graph) Find(name string) *Node {
	return g.root.Find(name)
}

// Evaluate runs every node's constraints, parents before children, and stores the
// constrained result as the node's new local transform.
func (g *Graph) Evaluate(dt float64) {
	g.root.Walk(func(n *Node) bool {
		if len(n.constraints) == 0 {
			return true
		}
		world := n.WorldTransform()
		for _, c := range n.constraints {
			world = c.Apply(n, world, dt)
		}
		n.SetWorldTransform(world)
		return true
	})
}
