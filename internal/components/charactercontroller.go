package components

import (
	"vrgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CharacterController moves the player rig with box push-out against static
// geometry. Similar to Unity's CharacterController without stepping or gravity.
type CharacterController struct {
	engine.BaseComponent

	Height float32 // Total height of the box
	Radius float32 // Half-width of the box
}

func NewCharacterController() *CharacterController {
	return &CharacterController{
		Height: 1.8,
		Radius: 0.4,
	}
}

// Move moves the character by motion, resolving overlaps with static box
// colliders. Returns the displacement actually applied.
func (c *CharacterController) Move(motion rl.Vector3) rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}

	originalPos := g.Transform.Position
	g.Transform.Position = rl.Vector3Add(g.Transform.Position, motion)

	if g.Scene == nil {
		return motion
	}

	for _, other := range g.Scene.GameObjects {
		if other == g || other.Parent == g {
			continue
		}
		// Dynamic and kinematic bodies don't block the rig
		if engine.GetComponent[*Rigidbody](other) != nil {
			continue
		}
		box := engine.GetComponent[*BoxCollider](other)
		if box == nil || box.IsTrigger {
			continue
		}

		min, max := box.Bounds()
		push := c.Bounds().Resolve(engine.AABB{Min: min, Max: max})
		g.Transform.Position = rl.Vector3Add(g.Transform.Position, push)
	}

	return rl.Vector3Subtract(g.Transform.Position, originalPos)
}

// Bounds is the character's box at its current position.
func (c *CharacterController) Bounds() engine.AABB {
	size := rl.Vector3{X: 2 * c.Radius, Y: c.Height, Z: 2 * c.Radius}
	return engine.NewAABBFromCenter(c.GetGameObject().Transform.Position, size)
}
