package scene

import (
	"slices"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type animation struct {
	node       *Node
	from, to   Transform
	tween      *gween.Tween
	onComplete func()
}

// Animator drives local-transform animations. A node has at most one running
// animation; starting another replaces it from the node's live transform.
type Animator struct {
	anims []*animation
}

func NewAnimator() *Animator {
	return &Animator{}
}

// Animate moves node's local transform to `to` over duration seconds. A non-positive
// duration applies the target immediately and runs onComplete before returning.
func (a *Animator) Animate(node *Node, to Transform, duration float64, easing ease.TweenFunc, onComplete func()) {
	a.Stop(node)
	if duration <= 0 {
		node.SetTransform(to)
		if onComplete != nil {
			onComplete()
		}
		return
	}
	if easing == nil {
		easing = ease.Linear
	}
	a.anims = append(a.anims, &animation{
		node:       node,
		from:       node.Transform(),
		to:         to,
		tween:      gween.New(0, 1, float32(duration), easing),
		onComplete: onComplete,
	})
}

// Stop drops node's running animation, leaving the transform where it is.
func (a *Animator) Stop(node *Node) {
	a.anims = slices.DeleteFunc(a.anims, func(an *animation) bool {
		return an.node == node
	})
}

func (a *Animator) Running(node *Node) bool {
	return slices.ContainsFunc(a.anims, func(an *animation) bool {
		return an.node == node
	})
}

func (a *Animator) Len() int {
	return len(a.anims)
}

// Update advances all animations by dt seconds. Completion callbacks run after
// finished animations are removed, so they may start new ones.
func (a *Animator) Update(dt float64) {
	var finished []*animation
	for _, an := range a.anims {
		progress, done := an.tween.Update(float32(dt))
		if done {
			an.node.SetTransform(an.to)
			finished = append(finished, an)
			continue
		}
		an.node.SetTransform(Interpolate(an.from, an.to, float64(progress)))
	}
	if len(finished) == 0 {
		return
	}
	a.anims = slices.DeleteFunc(a.anims, func(an *animation) bool {
		return slices.Contains(finished, an)
	})
	for _, an := range finished {
		if an.onComplete != nil {
			an.onComplete()
		}
	}
}
