package animation

import "fyne.io/fyne/v2"

// Scene selects which sprite set is on screen.
type Scene int

const (
	SceneWork Scene = iota
	SceneBreak
)

func (scene Scene) String() string {
	if scene == SceneBreak {
		return "break"
	}
	return "work"
}

// SceneSpec defines the blinking sprite pair for one scene.
type SceneSpec struct {
	Open   fyne.Resource
	Closed fyne.Resource
}

// VisualSpec is the complete sprite set of the countdown screen.
type VisualSpec struct {
	Work       SceneSpec
	Break      SceneSpec
	Transition fyne.Resource
}

// For returns the sprites of a scene.
func (spec VisualSpec) For(scene Scene) SceneSpec {
	if scene == SceneBreak {
		return spec.Break
	}
	return spec.Work
}
