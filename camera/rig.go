package camera

import (
	"math"
	"strings"

	"github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/mathutil"
	"github.com/automoto/thirdperson/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Subject is the actor the rig follows. The rig only reads from it.
type Subject interface {
	WorldPosition() mgl64.Vec3
	WorldUp() mgl64.Vec3
	BaseAltitude() float64
}

// Rig drives the main camera: it parents the camera under the active anchor and
// constrains follow anchors around the subject.
type Rig struct {
	graph    *scene.Graph
	animator *scene.Animator
	subject  Subject

	camera *scene.Node
	lookAt *scene.Node

	active        *scene.Node
	previous      *scene.Node
	previousFront mgl64.Vec3

	orbit mgl64.Vec2
}

// NewRig adds the main camera and the look-at target to graph's root.
func NewRig(graph *scene.Graph, animator *scene.Animator, subject Subject) *Rig {
	r := &Rig{
		graph:    graph,
		animator: animator,
		subject:  subject,
		camera:   scene.NewNode(config.Camera.MainCamera),
		lookAt:   scene.NewNode(config.Camera.LookAtTarget),
	}
	r.lookAt.SetConstraints([]scene.Constraint{
		scene.ConstraintFunc(func(_ *scene.Node, w scene.Transform, _ float64) scene.Transform {
			w.Position = r.Target()
			return w
		}),
	})
	graph.Root().AddChild(r.lookAt)
	graph.Root().AddChild(r.camera)
	return r
}

// Setup gives every anchor named with the follow prefix its constraint stack and
// cuts to the game anchor.
func (r *Rig) Setup() {
	r.graph.Root().Walk(func(n *scene.Node) bool {
		if strings.HasPrefix(n.Name, config.Camera.FollowPrefix) {
			r.SetupFollowCamera(n)
		}
		return true
	})
	r.Transition(config.Camera.GameAnchor, 0)
}

// SetupFollowCamera attaches distance, altitude, acceleration, orbit and look-at
// constraints to anchor, in that order. Distance and altitude are captured from
// the anchor's authored placement.
func (r *Rig) SetupFollowCamera(anchor *scene.Node) []scene.Constraint {
	pos := anchor.WorldPosition()
	accel := NewAccelerationConstraint()
	stack := []scene.Constraint{
		&DistanceConstraint{rig: r, Distance: pos.Sub(r.Target()).Len()},
		&AltitudeConstraint{rig: r, Altitude: math.Abs(pos.Y())},
		accel,
		&OrbitConstraint{rig: r, accel: accel},
		&LookAtConstraint{rig: r, Influence: config.Camera.LookAtFactor, GimbalLock: config.Camera.GimbalLock},
	}
	anchor.SetConstraints(stack)
	return stack
}

// Target is the point the camera looks at: above the subject, at a fixed height
// over its base altitude.
func (r *Rig) Target() mgl64.Vec3 {
	p := r.subject.WorldPosition()
	p[1] = r.subject.BaseAltitude() + config.Camera.LookAtHeight
	return p
}

// Transition makes the named anchor active. The camera is reparented without
// moving and then eased into the anchor's framing over duration seconds; zero
// cuts immediately. Unknown or already active anchors are ignored.
func (r *Rig) Transition(name string, duration float64) bool {
	anchor := r.graph.Find(name)
	if anchor == nil {
		zap.L().Debug("camera anchor not found", zap.String("anchor", name))
		return false
	}
	if anchor == r.active {
		return false
	}

	r.previous = r.active
	if r.active != nil {
		r.previousFront = r.active.WorldTransform().Front()
	}
	r.active = anchor

	anchor.AddChildKeepingWorld(r.camera)
	r.animator.Animate(r.camera, scene.Identity(), duration, ease.InOutCubic, nil)
	return true
}

// ReplaceAnchor swaps the anchor called name for a copy of template that takes
// over the old anchor's constraints. It returns the new anchor, or nil when
// template is missing.
func (r *Rig) ReplaceAnchor(name, template string) *scene.Node {
	src := r.graph.Find(template)
	if src == nil {
		zap.L().Debug("camera template not found", zap.String("template", template))
		return nil
	}

	var stack []scene.Constraint
	if old := r.graph.Find(name); old != nil {
		stack = old.Constraints()
		if old.Find(r.camera.Name) == r.camera {
			// keep the camera where it is while its parent goes away
			r.graph.Root().AddChildKeepingWorld(r.camera)
		}
		old.RemoveFromParent()
		if old == r.active {
			r.active = nil
		}
	}

	clone := src.Clone()
	clone.Name = name
	if stray := clone.Find(r.camera.Name); stray != nil {
		stray.RemoveFromParent()
	}
	if len(stack) == 0 && strings.HasPrefix(name, config.Camera.FollowPrefix) {
		r.graph.Root().AddChild(clone)
		r.SetupFollowCamera(clone)
		return clone
	}
	for _, c := range stack {
		if rc, ok := c.(interface{ Reset() }); ok {
			rc.Reset()
		}
	}
	clone.SetConstraints(stack)
	r.graph.Root().AddChild(clone)
	return clone
}

// SetOrbitInput stores the orbit intent, clamped to unit length. It stays in
// effect until replaced.
func (r *Rig) SetOrbitInput(v mgl64.Vec2) {
	r.orbit = mathutil.ClampLength2(v, 1)
}

func (r *Rig) OrbitInput() mgl64.Vec2    { return r.orbit }
func (r *Rig) Camera() *scene.Node       { return r.camera }
func (r *Rig) LookAtNode() *scene.Node   { return r.lookAt }
func (r *Rig) Active() *scene.Node       { return r.active }
func (r *Rig) Previous() *scene.Node     { return r.previous }
func (r *Rig) PreviousFront() mgl64.Vec3 { return r.previousFront }
func (r *Rig) Transitioning() bool       { return r.animator.Running(r.camera) }

func (r *Rig) CameraTransform() scene.Transform {
	return r.camera.WorldTransform()
}

// ActiveName returns the active anchor's name, or "" before the first transition.
func (r *Rig) ActiveName() string {
	if r.active == nil {
		return ""
	}
	return r.active.Name
}
