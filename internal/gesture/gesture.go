// Package gesture turns continuous pointer drags into discrete actions.
// The recognizers are pure state machines over (dx, dy) samples; the
// platform's pointer-event plumbing stays outside.
package gesture

import "math"

// Thresholds, in pixels, shared by both recognizers.
const (
	// BackArmDistance arms the screen-level back swipe.
	BackArmDistance = 20
	// BackCommitDistance commits back navigation on release.
	BackCommitDistance = 100
	// BackExitDistance is the slide-out target and the progress divisor.
	BackExitDistance = 400

	// CardArmDistance arms the card swipe.
	CardArmDistance = 15
	// CardCaptureDistance is the stricter threshold that wins capture
	// against ancestor scroll views, together with |dx| > 2|dy|.
	CardCaptureDistance = 20
	// CardActionDistance triggers a card action on release.
	CardActionDistance = 80
	// CardColorDistance is the divisor for background interpolation.
	CardColorDistance = 120
)

// Action is the discrete outcome of a gesture.
type Action int

const (
	// ActionNone: the gesture never armed; nothing to do.
	ActionNone Action = iota
	// ActionSpringBack: animate the element back to origin.
	ActionSpringBack
	// ActionNavigateBack: commit the screen-level back navigation.
	ActionNavigateBack
	// ActionToggleParticipation: right card swipe past the threshold.
	ActionToggleParticipation
	// ActionConfirmDelete: left card swipe past the threshold with
	// deletion permitted; the caller shows a confirmation prompt.
	ActionConfirmDelete
)

type phase int

const (
	phaseIdle phase = iota
	phaseDragging
)

// ResolveBack is the pure release rule for the back swipe.
func ResolveBack(dx float64) Action {
	if dx > BackCommitDistance {
		return ActionNavigateBack
	}
	return ActionSpringBack
}

// ResolveCard is the pure release rule for the card swipe.
func ResolveCard(dx float64, canDelete bool) Action {
	if dx > CardActionDistance {
		return ActionToggleParticipation
	}
	if dx < -CardActionDistance && canDelete {
		return ActionConfirmDelete
	}
	return ActionSpringBack
}

// BackSwipe recognizes the single-direction screen-level back gesture:
// a rightward horizontal drag arms it, release past the commit distance
// navigates back, anything else springs back.
type BackSwipe struct {
	phase phase
	dx    float64
}

// NewBackSwipe returns an idle recognizer.
func NewBackSwipe() *BackSwipe {
	return &BackSwipe{}
}

// shouldStart mirrors the responder claim: rightward past the arm
// distance and more horizontal than vertical.
func (g *BackSwipe) shouldStart(dx, dy float64) bool {
	return dx > BackArmDistance && math.Abs(dx) > math.Abs(dy)
}

// Move feeds one pointer sample. Leftward translation is ignored; the
// gesture only tracks positive dx.
func (g *BackSwipe) Move(dx, dy float64) {
	if g.phase == phaseIdle {
		if !g.shouldStart(dx, dy) {
			return
		}
		g.phase = phaseDragging
	}
	if dx > 0 {
		g.dx = dx
	}
}

// Dragging reports whether the gesture is armed.
func (g *BackSwipe) Dragging() bool { return g.phase == phaseDragging }

// Progress is the cross-fade progress for the underlying screen,
// clamped to [0, 1].
func (g *BackSwipe) Progress() float64 {
	if g.phase != phaseDragging {
		return 0
	}
	return clamp(g.dx/BackExitDistance, 0, 1)
}

// Release resolves the gesture and resets to idle. An unarmed release is
// ActionNone.
func (g *BackSwipe) Release() Action {
	if g.phase != phaseDragging {
		return ActionNone
	}
	dx := g.dx
	g.reset()
	return ResolveBack(dx)
}

// Terminate handles the system interrupting the gesture: always spring
// back, never fire an action.
func (g *BackSwipe) Terminate() Action {
	if g.phase != phaseDragging {
		return ActionNone
	}
	g.reset()
	return ActionSpringBack
}

func (g *BackSwipe) reset() {
	g.phase = phaseIdle
	g.dx = 0
}

// CardSwipe recognizes the bidirectional list-item gesture: right swipe
// toggles participation, left swipe asks for delete confirmation when
// permitted.
type CardSwipe struct {
	phase     phase
	dx        float64
	canDelete bool
}

// NewCardSwipe returns an idle recognizer. canDelete gates the delete
// direction for this item.
func NewCardSwipe(canDelete bool) *CardSwipe {
	return &CardSwipe{canDelete: canDelete}
}

// shouldStart mirrors the responder claim: horizontal and past the arm
// distance.
func (g *CardSwipe) shouldStart(dx, dy float64) bool {
	return math.Abs(dx) > CardArmDistance && math.Abs(dx) > math.Abs(dy)
}

// ShouldCapture is the stricter test that steals the gesture from an
// ancestor scroll view.
func (g *CardSwipe) ShouldCapture(dx, dy float64) bool {
	return math.Abs(dx) > CardCaptureDistance && math.Abs(dx) > 2*math.Abs(dy)
}

// Move feeds one pointer sample. Samples that are more vertical than
// horizontal do not update the translation.
func (g *CardSwipe) Move(dx, dy float64) {
	if g.phase == phaseIdle {
		if !g.shouldStart(dx, dy) {
			return
		}
		g.phase = phaseDragging
	}
	if math.Abs(dx) > math.Abs(dy) {
		g.dx = dx
	}
}

// Dragging reports whether the gesture is armed.
func (g *CardSwipe) Dragging() bool { return g.phase == phaseDragging }

// ColorProgress is the background interpolation value in [-1, 1]:
// positive toward the participation color, negative toward the delete
// color. The delete direction is suppressed to 0 when deletion is not
// permitted for this item.
func (g *CardSwipe) ColorProgress() float64 {
	if g.phase != phaseDragging {
		return 0
	}
	progress := g.dx / CardColorDistance
	if !g.canDelete && progress < 0 {
		progress = 0
	}
	return clamp(progress, -1, 1)
}

// Release resolves the gesture and resets to idle. An unarmed release is
// ActionNone.
func (g *CardSwipe) Release() Action {
	if g.phase != phaseDragging {
		return ActionNone
	}
	dx := g.dx
	g.reset()
	return ResolveCard(dx, g.canDelete)
}

// Terminate handles the system interrupting the gesture: always spring
// back, never fire an action.
func (g *CardSwipe) Terminate() Action {
	if g.phase != phaseDragging {
		return ActionNone
	}
	g.reset()
	return ActionSpringBack
}

func (g *CardSwipe) reset() {
	g.phase = phaseIdle
	g.dx = 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
