package screen

import (
	"pomodoro/internal/ui/animation"
	"pomodoro/resources"
)

// DefaultVisuals returns the embedded sprite set. It panics if an asset is missing.
func DefaultVisuals() animation.VisualSpec {
	sprites, err := resources.LoadSprites()
	if err != nil {
		panic(err)
	}
	return animation.VisualSpec{
		Work:       animation.SceneSpec{Open: sprites.WorkOpen, Closed: sprites.WorkClosed},
		Break:      animation.SceneSpec{Open: sprites.BreakOpen, Closed: sprites.BreakClosed},
		Transition: sprites.Transition,
	}
}
