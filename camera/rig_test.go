package camera

import (
	"math"
	"testing"

	"github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/mathutil"
	"github.com/automoto/thirdperson/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

type fakeSubject struct {
	pos  mgl64.Vec3
	base float64
}

func (s *fakeSubject) WorldPosition() mgl64.Vec3 { return s.pos }
func (s *fakeSubject) WorldUp() mgl64.Vec3       { return mgl64.Vec3{0, 1, 0} }
func (s *fakeSubject) BaseAltitude() float64     { return s.base }

type testRig struct {
	rig      *Rig
	graph    *scene.Graph
	animator *scene.Animator
	subject  *fakeSubject
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	g := scene.NewGraph()
	a := scene.NewAnimator()
	s := &fakeSubject{}

	game := scene.NewNode(config.Camera.GameAnchor)
	game.SetPosition(mgl64.Vec3{0, 3, 6})
	g.Root().AddChild(game)

	reset := scene.NewNode(config.Camera.ResetAnchor)
	reset.SetPosition(mgl64.Vec3{0, 5, 9})
	g.Root().AddChild(reset)

	side := scene.NewNode("side")
	side.SetTransform(scene.Transform{Position: mgl64.Vec3{8, 2, 0}, Rotation: scene.YawRotation(math.Pi / 2)})
	g.Root().AddChild(side)

	top := scene.NewNode("top")
	top.SetTransform(scene.Transform{Position: mgl64.Vec3{-3, 10, 2}, Rotation: scene.YawRotation(-0.5)})
	g.Root().AddChild(top)

	return &testRig{rig: NewRig(g, a, s), graph: g, animator: a, subject: s}
}

func (tr *testRig) step(n int) {
	for range n {
		tr.animator.Update(frame)
		tr.graph.Evaluate(frame)
	}
}

func TestSetupActivatesGameAnchor(t *testing.T) {
	tr := newTestRig(t)
	tr.rig.Setup()

	require.Equal(t, config.Camera.GameAnchor, tr.rig.ActiveName())
	game := tr.graph.Find(config.Camera.GameAnchor)
	assert.Len(t, game.Constraints(), 5)
	assert.Empty(t, tr.graph.Find(config.Camera.ResetAnchor).Constraints())

	tr.step(1)
	assert.True(t, mathutil.ApproxEqual3(game.WorldPosition(), mgl64.Vec3{0, 3, 6}, 1e-9))
	assert.True(t, tr.rig.CameraTransform().ApproxEqual(game.WorldTransform(), 1e-9))
}

func TestFollowKeepsDistanceAndAltitude(t *testing.T) {
	tr := newTestRig(t)
	tr.rig.Setup()
	tr.step(1)
	game := tr.graph.Find(config.Camera.GameAnchor)
	dist := game.WorldPosition().Sub(tr.rig.Target()).Len()

	tr.subject.pos = mgl64.Vec3{2, 0, -1}
	tr.subject.base = 1
	tr.step(600)

	pos := game.WorldPosition()
	assert.InDelta(t, 1+3, pos.Y(), 1e-6)
	// the altitude lock runs after the distance clamp, so only the horizontal part
	// of the offset shrinks or grows
	assert.InDelta(t, dist, pos.Sub(tr.rig.Target()).Len(), 0.5)

	front := game.WorldTransform().Front()
	toTarget := tr.rig.Target().Sub(pos).Normalize()
	assert.Greater(t, front.Dot(toTarget), 0.999, "looking at the target")
	assert.InDelta(t, 0.0, game.WorldTransform().Right().Y(), 1e-9, "no roll")
}

func TestOrbitZeroInputIsPassThrough(t *testing.T) {
	tr := newTestRig(t)
	tr.rig.Setup()
	game := tr.graph.Find(config.Camera.GameAnchor)

	var orbit *OrbitConstraint
	var accel *AccelerationConstraint
	for _, c := range game.Constraints() {
		switch c := c.(type) {
		case *OrbitConstraint:
			orbit = c
		case *AccelerationConstraint:
			accel = c
		}
	}
	require.NotNil(t, orbit)
	require.NotNil(t, accel)

	in := scene.Transform{Position: mgl64.Vec3{1, 2, 3}, Rotation: scene.YawRotation(0.4)}
	accel.Influence = 0.5
	assert.Equal(t, in, orbit.Apply(game, in, frame))
	assert.InDelta(t, 0.51, accel.Influence, 1e-12)

	tr.rig.SetOrbitInput(mgl64.Vec2{1, 0})
	out := orbit.Apply(game, in, frame)
	assert.NotEqual(t, in, out)
	assert.Equal(t, 0.0, accel.Influence)

	// other anchors are never orbited
	side := tr.graph.Find("side")
	assert.Equal(t, in, orbit.Apply(side, in, frame))
}

func TestOrbitRotatesAroundTarget(t *testing.T) {
	tr := newTestRig(t)
	tr.rig.Setup()
	tr.step(1)
	game := tr.graph.Find(config.Camera.GameAnchor)
	before := game.WorldPosition().Sub(tr.rig.Target())

	tr.rig.SetOrbitInput(mgl64.Vec2{1, 0})
	tr.step(1)
	after := game.WorldPosition().Sub(tr.rig.Target())

	angle := math.Atan2(after.X(), after.Z()) - math.Atan2(before.X(), before.Z())
	assert.InDelta(t, config.Camera.OrbitSpeed, angle, 1e-9)
	assert.InDelta(t, before.Len(), after.Len(), 1e-9)

	// input persists until cleared
	tr.step(1)
	again := game.WorldPosition().Sub(tr.rig.Target())
	assert.InDelta(t, 2*config.Camera.OrbitSpeed, math.Atan2(again.X(), again.Z())-math.Atan2(before.X(), before.Z()), 1e-9)

	tr.rig.SetOrbitInput(mgl64.Vec2{})
	tr.step(1)
	still := game.WorldPosition().Sub(tr.rig.Target())
	assert.True(t, mathutil.ApproxEqual3(still, again, 1e-9))
}

func TestSetOrbitInputClampsLength(t *testing.T) {
	tr := newTestRig(t)
	tr.rig.SetOrbitInput(mgl64.Vec2{3, 4})
	assert.InDelta(t, 1.0, tr.rig.OrbitInput().Len(), 1e-12)
}

func TestAccelerationBoundsMotion(t *testing.T) {
	c := NewAccelerationConstraint()
	w := scene.At(mgl64.Vec3{})
	c.Apply(nil, w, frame)

	jump := scene.At(mgl64.Vec3{10, 0, 0})
	out := c.Apply(nil, jump, frame)
	maxStep := c.MaxAccel * frame * frame
	assert.LessOrEqual(t, out.Position.X(), maxStep+1e-12)
	assert.Greater(t, out.Position.X(), 0.0)

	c.Influence = 0
	out = c.Apply(nil, jump, frame)
	assert.Equal(t, jump.Position, out.Position)
}

func TestLookRotationFacesForward(t *testing.T) {
	q, ok := LookRotation(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	require.True(t, ok)
	front := scene.Transform{Rotation: q}.Front()
	assert.True(t, mathutil.ApproxEqual3(front, mgl64.Vec3{1, 0, 0}, 1e-9))

	_, ok = LookRotation(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 1, 0})
	assert.False(t, ok)
	_, ok = LookRotation(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	assert.False(t, ok)
}

func TestTransitionToActiveIsNoop(t *testing.T) {
	tr := newTestRig(t)
	tr.rig.Setup()
	tr.step(10)
	before := tr.rig.CameraTransform()

	assert.False(t, tr.rig.Transition(config.Camera.GameAnchor, 1))
	assert.Equal(t, config.Camera.GameAnchor, tr.rig.ActiveName())
	assert.Equal(t, before, tr.rig.CameraTransform())
	assert.False(t, tr.rig.Transitioning())
}

func TestTransitionToMissingAnchorIsIgnored(t *testing.T) {
	tr := newTestRig(t)
	tr.rig.Setup()
	before := tr.rig.CameraTransform()

	assert.False(t, tr.rig.Transition("nowhere", 1))
	assert.Equal(t, config.Camera.GameAnchor, tr.rig.ActiveName())
	assert.Equal(t, before, tr.rig.CameraTransform())
}

func TestTransitionReparentsWithoutJump(t *testing.T) {
	tr := newTestRig(t)
	tr.rig.Setup()
	tr.step(5)
	before := tr.rig.CameraTransform()

	require.True(t, tr.rig.Transition("side", 1))
	side := tr.graph.Find("side")
	assert.Same(t, side, tr.rig.Camera().Parent())
	assert.True(t, tr.rig.CameraTransform().ApproxEqual(before, 1e-9))
	assert.Equal(t, config.Camera.GameAnchor, tr.rig.Previous().Name)
	assert.True(t, tr.rig.Transitioning())
}

func TestTransitionChainSettlesOnLastAnchor(t *testing.T) {
	tr := newTestRig(t)
	tr.rig.Setup()
	tr.step(3)

	require.True(t, tr.rig.Transition("side", 0.5))
	tr.step(1)
	require.True(t, tr.rig.Transition("top", 0.5))
	tr.step(31)

	top := tr.graph.Find("top")
	assert.False(t, tr.rig.Transitioning())
	assert.True(t, tr.rig.CameraTransform().ApproxEqual(top.WorldTransform(), 1e-9))
	assert.Equal(t, "top", tr.rig.ActiveName())
	assert.Equal(t, "side", tr.rig.Previous().Name)
}

func TestZeroDurationTransitionCuts(t *testing.T) {
	tr := newTestRig(t)
	tr.rig.Setup()
	tr.step(2)

	require.True(t, tr.rig.Transition("top", 0))
	assert.True(t, tr.rig.CameraTransform().ApproxEqual(tr.graph.Find("top").WorldTransform(), 1e-9))
}

func TestReplaceAnchorReusesConstraints(t *testing.T) {
	tr := newTestRig(t)
	tr.rig.Setup()
	old := tr.graph.Find(config.Camera.GameAnchor)
	stack := old.Constraints()

	require.True(t, tr.rig.Transition(config.Camera.ResetAnchor, 0))
	clone := tr.rig.ReplaceAnchor(config.Camera.GameAnchor, config.Camera.ResetAnchor)
	require.NotNil(t, clone)

	assert.Nil(t, old.Parent())
	assert.Same(t, clone, tr.graph.Find(config.Camera.GameAnchor))
	assert.Equal(t, stack, clone.Constraints())
	assert.NotNil(t, tr.graph.Find(config.Camera.ResetAnchor))

	require.True(t, tr.rig.Transition(config.Camera.GameAnchor, 1))
	tr.step(61)
	assert.True(t, tr.rig.CameraTransform().ApproxEqual(clone.WorldTransform(), 1e-9))
}
