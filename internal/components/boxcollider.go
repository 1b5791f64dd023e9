package components

import (
	"vrgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoxCollider is an axis-aligned box. Rotation is ignored for overlap tests.
type BoxCollider struct {
	engine.BaseComponent
	Size      rl.Vector3
	Offset    rl.Vector3
	IsTrigger bool
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	return rl.Vector3Add(g.WorldPosition(), b.Offset)
}

// GetWorldSize returns the absolute box size after world scale.
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	sc := b.GetGameObject().WorldScale()
	return rl.Vector3{
		X: abs32(b.Size.X * sc.X),
		Y: abs32(b.Size.Y * sc.Y),
		Z: abs32(b.Size.Z * sc.Z),
	}
}

// Bounds returns the world-space min and max corners.
func (b *BoxCollider) Bounds() (rl.Vector3, rl.Vector3) {
	center := b.GetCenter()
	half := rl.Vector3Scale(b.GetWorldSize(), 0.5)
	return rl.Vector3Subtract(center, half), rl.Vector3Add(center, half)
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
