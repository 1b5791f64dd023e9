package physics

import (
	"vrgrab/internal/components"
	"vrgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// shape is the collider attached to an object. Spheres take precedence.
type shape struct {
	sphere *components.SphereCollider
	box    *components.BoxCollider
}

func shapeOf(obj *engine.GameObject) (shape, bool) {
	if s := engine.GetComponent[*components.SphereCollider](obj); s != nil {
		return shape{sphere: s}, true
	}
	if b := engine.GetComponent[*components.BoxCollider](obj); b != nil {
		return shape{box: b}, true
	}
	return shape{}, false
}

func (s shape) isTrigger() bool {
	if s.sphere != nil {
		return s.sphere.IsTrigger
	}
	return s.box.IsTrigger
}

func (s shape) bounds() engine.AABB {
	if s.sphere != nil {
		r := s.sphere.GetWorldRadius()
		return engine.NewAABBFromCenter(s.sphere.GetCenter(), rl.Vector3{X: 2 * r, Y: 2 * r, Z: 2 * r})
	}
	min, max := s.box.Bounds()
	return engine.AABB{Min: min, Max: max}
}

func (s shape) touchesSphere(center rl.Vector3, radius float32) bool {
	if s.sphere != nil {
		r := s.sphere.GetWorldRadius() + radius
		d := rl.Vector3Subtract(s.sphere.GetCenter(), center)
		return rl.Vector3DotProduct(d, d) <= r*r
	}
	return s.bounds().IntersectsSphere(center, radius)
}

func overlaps(a, b shape) bool {
	if a.sphere != nil {
		return b.touchesSphere(a.sphere.GetCenter(), a.sphere.GetWorldRadius())
	}
	if b.sphere != nil {
		return a.touchesSphere(b.sphere.GetCenter(), b.sphere.GetWorldRadius())
	}
	return a.bounds().Intersects(b.bounds())
}

// penetration returns the direction to push a out of b and the depth.
func penetration(a, b shape) (rl.Vector3, float32, bool) {
	switch {
	case a.sphere != nil && b.sphere != nil:
		d := rl.Vector3Subtract(a.sphere.GetCenter(), b.sphere.GetCenter())
		dist := rl.Vector3Length(d)
		depth := a.sphere.GetWorldRadius() + b.sphere.GetWorldRadius() - dist
		if depth <= 0 {
			return rl.Vector3{}, 0, false
		}
		if dist < 1e-6 {
			return rl.Vector3{Y: 1}, depth, true
		}
		return rl.Vector3Scale(d, 1/dist), depth, true

	case a.sphere != nil:
		return sphereVsBox(a.sphere.GetCenter(), a.sphere.GetWorldRadius(), b.bounds())

	case b.sphere != nil:
		n, depth, ok := sphereVsBox(b.sphere.GetCenter(), b.sphere.GetWorldRadius(), a.bounds())
		return rl.Vector3Negate(n), depth, ok

	default:
		mtv := a.bounds().Resolve(b.bounds())
		depth := rl.Vector3Length(mtv)
		if depth <= 0 {
			return rl.Vector3{}, 0, false
		}
		return rl.Vector3Scale(mtv, 1/depth), depth, true
	}
}

func sphereVsBox(center rl.Vector3, radius float32, box engine.AABB) (rl.Vector3, float32, bool) {
	closest := box.ClosestPoint(center)
	d := rl.Vector3Subtract(center, closest)
	dist := rl.Vector3Length(d)
	if dist > radius {
		return rl.Vector3{}, 0, false
	}
	if dist < 1e-6 {
		// Center inside the box: push out along the shallowest face
		sphereBox := engine.NewAABBFromCenter(center, rl.Vector3{X: 2 * radius, Y: 2 * radius, Z: 2 * radius})
		mtv := sphereBox.Resolve(box)
		depth := rl.Vector3Length(mtv)
		if depth <= 0 {
			return rl.Vector3{Y: 1}, radius, true
		}
		return rl.Vector3Scale(mtv, 1/depth), depth, true
	}
	return rl.Vector3Scale(d, 1/dist), radius - dist, true
}

// resolveContact pushes the dynamic body obj out of other and reflects its
// velocity. otherRb is nil for statics; a dynamic otherRb shares the push.
func (p *PhysicsWorld) resolveContact(obj *engine.GameObject, rb *components.Rigidbody, other *engine.GameObject, otherRb *components.Rigidbody) {
	if obj == other {
		return
	}
	a, ok := shapeOf(obj)
	if !ok || a.isTrigger() {
		return
	}
	b, ok := shapeOf(other)
	if !ok || b.isTrigger() {
		return
	}
	normal, depth, hit := penetration(a, b)
	if !hit {
		return
	}

	otherDynamic := otherRb != nil && !otherRb.IsKinematic
	var otherVel rl.Vector3
	if otherRb != nil {
		otherVel = otherRb.Velocity
	}

	if otherDynamic {
		half := rl.Vector3Scale(normal, depth/2)
		obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, half)
		other.Transform.Position = rl.Vector3Subtract(other.Transform.Position, half)
	} else {
		obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(normal, depth))
	}

	rel := rl.Vector3Subtract(rb.Velocity, otherVel)
	vn := rl.Vector3DotProduct(rel, normal)
	if vn < 0 {
		bounce := rb.Bounciness
		if otherDynamic {
			// Equal-and-opposite impulse weighted by mass
			total := rb.Mass + otherRb.Mass
			j := -(1 + bounce) * vn / total
			rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(normal, j*otherRb.Mass))
			otherRb.Velocity = rl.Vector3Subtract(otherRb.Velocity, rl.Vector3Scale(normal, j*rb.Mass))
		} else {
			rb.Velocity = rl.Vector3Subtract(rb.Velocity, rl.Vector3Scale(normal, (1+bounce)*vn))
		}
		applyFriction(rb, normal)
	}

	p.recordCollision(obj, other)
}

func applyFriction(rb *components.Rigidbody, normal rl.Vector3) {
	vn := rl.Vector3Scale(normal, rl.Vector3DotProduct(rb.Velocity, normal))
	tangent := rl.Vector3Subtract(rb.Velocity, vn)
	rb.Velocity = rl.Vector3Add(vn, rl.Vector3Scale(tangent, 1-rl.Clamp(rb.Friction, 0, 1)))
}

// resolveFloor keeps bodies above the infinite ground plane.
func (p *PhysicsWorld) resolveFloor(obj *engine.GameObject, rb *components.Rigidbody) {
	if !p.UseFloor {
		return
	}
	s, ok := shapeOf(obj)
	if !ok || s.isTrigger() {
		return
	}
	bottom := s.bounds().Min.Y
	if bottom >= p.FloorHeight {
		return
	}
	obj.Transform.Position.Y += p.FloorHeight - bottom
	if rb.Velocity.Y < 0 {
		rb.Velocity.Y = -rb.Velocity.Y * rb.Bounciness
		applyFriction(rb, rl.Vector3{Y: 1})
	}
}

// detectTriggers collects bodies overlapping trigger colliders.
func (p *PhysicsWorld) detectTriggers() {
	for _, trigger := range p.allObjects() {
		ts, ok := shapeOf(trigger)
		if !ok || !ts.isTrigger() {
			continue
		}
		for _, obj := range p.Bodies {
			if obj == trigger {
				continue
			}
			os, ok := shapeOf(obj)
			if !ok || os.isTrigger() {
				continue
			}
			if overlaps(ts, os) {
				p.currentTriggers[TriggerPair{Trigger: trigger, Other: obj}] = true
			}
		}
	}
}

func (p *PhysicsWorld) allObjects() []*engine.GameObject {
	all := make([]*engine.GameObject, 0, len(p.Bodies)+len(p.Statics))
	all = append(all, p.Bodies...)
	return append(all, p.Statics...)
}
