package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Layer      int
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:       nextUID.Add(1),
		Name:      name,
		Active:    true,
		Layer:     LayerDefault,
		Transform: Transform{Scale: rl.Vector3{X: 1, Y: 1, Z: 1}},
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	c, _ := FindComponent[T](g)
	return c
}

// FindComponent is the capability query form of GetComponent.
func FindComponent[T Component](g *GameObject) (T, bool) {
	var zero T
	if g == nil {
		return zero, false
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed, true
		}
	}
	return zero, false
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

// FixedUpdate forwards the physics tick to components that implement FixedUpdater.
func (g *GameObject) FixedUpdate(fixedDelta float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		if f, ok := c.(FixedUpdater); ok {
			f.FixedUpdate(fixedDelta)
		}
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddChild reparents child under g. Cycles are refused: child must not be g
// or one of its ancestors.
func (g *GameObject) AddChild(child *GameObject) bool {
	for a := g; a != nil; a = a.Parent {
		if a == child {
			return false
		}
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
	return true
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Detach removes g from its parent, keeping its world pose.
func (g *GameObject) Detach() {
	if g.Parent == nil {
		return
	}
	pos, rot := g.WorldPosition(), g.WorldRotation()
	g.Parent.RemoveChild(g)
	g.Transform.Position = pos
	g.Transform.Rotation = rot
}

// WorldQuaternion composes the rotations from the root down to g.
func (g *GameObject) WorldQuaternion() rl.Quaternion {
	q := g.Transform.GetQuaternion()
	if g.Parent == nil {
		return q
	}
	return rl.QuaternionMultiply(g.Parent.WorldQuaternion(), q)
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	local := vecMul(g.Transform.Position, g.Parent.WorldScale())
	rotated := rl.Vector3RotateByQuaternion(local, g.Parent.WorldQuaternion())
	return rl.Vector3Add(g.Parent.WorldPosition(), rotated)
}

// WorldRotation is the world rotation in Euler degrees. Under an unrotated
// parent the local angles are returned as is.
func (g *GameObject) WorldRotation() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	if g.Parent.WorldRotation() == (rl.Vector3{}) {
		return g.Transform.Rotation
	}
	return rl.Vector3Scale(rl.QuaternionToEuler(g.WorldQuaternion()), rl.Rad2deg)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	return vecMul(g.Parent.WorldScale(), g.Transform.Scale)
}

func vecMul(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}
