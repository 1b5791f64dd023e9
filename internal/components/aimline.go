package components

import (
	"vrgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AimLine holds the two endpoints of a controller's aim ray for drawing.
// Nothing in the simulation reads it back.
type AimLine struct {
	engine.BaseComponent
	From rl.Vector3
	To   rl.Vector3
	Hit  bool
}

func (a *AimLine) Set(from, to rl.Vector3, hit bool) {
	a.From = from
	a.To = to
	a.Hit = hit
}

// Collapsed reports whether both endpoints coincide (controller is holding something).
func (a *AimLine) Collapsed() bool {
	return a.From == a.To
}
