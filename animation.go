package nodetree

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenProperty selects which local transform parameter a Tween drives.
type TweenProperty int

const (
	TweenPosition TweenProperty = iota
	TweenScale
	TweenRotation
	TweenSpin
)

// Tween eases one local transform parameter of a Node from a start value to an end value. It writes through the
// Node's setters, so every step marks the Node dirty; the world transform changes on the Node's next Update.
type Tween struct {
	Node     *Node
	Property TweenProperty
	Loop     bool   // If the Tween should start over instead of finishing.
	OnFinish func() // Called once when a non-looping Tween finishes.

	progress *gween.Tween

	fromVec, toVec   mgl32.Vec3
	fromQuat, toQuat mgl32.Quat
	axis             mgl32.Vec3
	angle            float32

	finished bool
}

// Finished returns true once a non-looping Tween has reached its end value.
func (tw *Tween) Finished() bool {
	return tw.finished
}

func (tw *Tween) apply(t float32) {
	switch tw.Property {
	case TweenPosition:
		tw.Node.SetLocalPositionVec(lerpVec3(tw.fromVec, tw.toVec, t))
	case TweenScale:
		tw.Node.SetLocalScaleVec(lerpVec3(tw.fromVec, tw.toVec, t))
	case TweenRotation:
		tw.Node.SetLocalRotationQuat(mgl32.QuatSlerp(tw.fromQuat, tw.toQuat, t))
	case TweenSpin:
		tw.Node.SetLocalRotationQuat(tw.fromQuat.Mul(mgl32.QuatRotate(tw.angle*t, tw.axis)))
	}
}

func (tw *Tween) update(dt float32) {
	if tw.finished {
		return
	}
	t, done := tw.progress.Update(dt)
	tw.apply(t)
	if done {
		if tw.Loop {
			tw.progress.Reset()
			return
		}
		tw.finished = true
		if tw.OnFinish != nil {
			tw.OnFinish()
		}
	}
}

func lerpVec3(from, to mgl32.Vec3, t float32) mgl32.Vec3 {
	return from.Add(to.Sub(from).Mul(t))
}

// Animator runs Tweens on Nodes. Call Update once per frame, before updating the tree.
type Animator struct {
	tweens []*Tween
	stops  int
}

// NewAnimator returns a new, idle Animator.
func NewAnimator() *Animator {
	return &Animator{}
}

func (anim *Animator) add(tw *Tween, duration float32, easing ease.TweenFunc) *Tween {
	if easing == nil {
		easing = ease.Linear
	}
	tw.progress = gween.New(0, 1, duration, easing)
	anim.tweens = append(anim.tweens, tw)
	return tw
}

// TweenPosition eases node's local position from its current value to the one given over duration seconds.
// A nil easing function means linear.
func (anim *Animator) TweenPosition(node *Node, to mgl32.Vec3, duration float32, easing ease.TweenFunc) *Tween {
	return anim.add(&Tween{Node: node, Property: TweenPosition, fromVec: node.LocalPosition(), toVec: to}, duration, easing)
}

// TweenScale eases node's local scale from its current value to the one given over duration seconds.
func (anim *Animator) TweenScale(node *Node, to mgl32.Vec3, duration float32, easing ease.TweenFunc) *Tween {
	return anim.add(&Tween{Node: node, Property: TweenScale, fromVec: node.LocalScale(), toVec: to}, duration, easing)
}

// TweenRotation eases node's local rotation from its current orientation to the one given over duration seconds,
// taking the shortest path.
func (anim *Animator) TweenRotation(node *Node, to mgl32.Quat, duration float32, easing ease.TweenFunc) *Tween {
	return anim.add(&Tween{Node: node, Property: TweenRotation, fromQuat: node.LocalRotation(), toQuat: to}, duration, easing)
}

// TweenSpin turns node about the local axis given by angle radians over duration seconds, starting from its current
// orientation. Unlike TweenRotation, angles beyond a half turn are honored, so a looping spin of 2*Pi rotates forever.
func (anim *Animator) TweenSpin(node *Node, axis mgl32.Vec3, angle, duration float32, easing ease.TweenFunc) *Tween {
	if axis.Len() == 0 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return anim.add(&Tween{Node: node, Property: TweenSpin, fromQuat: node.LocalRotation(), axis: axis.Normalize(), angle: angle}, duration, easing)
}

// Update advances every Tween by dt seconds, dropping the ones that finished. It returns true while any Tween is
// still running. Tweens started from an OnFinish callback are kept, and first advance on the next Update.
func (anim *Animator) Update(dt float32) bool {

	current := anim.tweens
	anim.tweens = nil
	stops := anim.stops

	active := make([]*Tween, 0, len(current))
	for _, tw := range current {
		tw.update(dt)
		if !tw.finished {
			active = append(active, tw)
		}
	}

	// A callback called Stop, so only what it started afterwards survives.
	if anim.stops != stops {
		active = active[:0]
	}

	anim.tweens = append(active, anim.tweens...)
	return len(anim.tweens) > 0

}

// Running returns the number of Tweens still running.
func (anim *Animator) Running() int {
	return len(anim.tweens)
}

// Stop drops every Tween without finishing it. Nodes keep whatever values the Tweens last wrote.
func (anim *Animator) Stop() {
	anim.tweens = nil
	anim.stops++
}
