package physics

import (
	"math"

	"vrgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit = engine.RaycastResult

// Raycast returns the closest non-trigger collider on a layer selected by mask.
func (p *PhysicsWorld) Raycast(origin, direction rl.Vector3, maxDistance float32, mask engine.LayerMask) (RaycastHit, bool) {
	if rl.Vector3Length(direction) < 1e-6 || maxDistance <= 0 {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)

	best := RaycastHit{Distance: maxDistance}
	found := false
	for _, obj := range p.allObjects() {
		if !obj.Active || !mask.Contains(obj.Layer) {
			continue
		}
		s, ok := shapeOf(obj)
		if !ok || s.isTrigger() {
			continue
		}
		if hit, ok := s.ray(origin, direction, best.Distance); ok {
			hit.GameObject = obj
			best = hit
			found = true
		}
	}
	return best, found
}

// OverlapSphere returns up to maxResults objects on mask whose colliders touch
// the sphere. maxResults <= 0 means no limit. Triggers are included. Order
// follows registration and callers must not rely on it.
func (p *PhysicsWorld) OverlapSphere(center rl.Vector3, radius float32, mask engine.LayerMask, maxResults int) []*engine.GameObject {
	var result []*engine.GameObject
	for _, obj := range p.allObjects() {
		if maxResults > 0 && len(result) >= maxResults {
			break
		}
		if !obj.Active || !mask.Contains(obj.Layer) {
			continue
		}
		if s, ok := shapeOf(obj); ok && s.touchesSphere(center, radius) {
			result = append(result, obj)
		}
	}
	return result
}

// ray tests a normalized ray against the shape, accepting hits up to maxDistance.
func (s shape) ray(origin, dir rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	if s.box != nil {
		t, normal, ok := s.bounds().Ray(origin, dir, maxDistance)
		if !ok {
			return RaycastHit{}, false
		}
		return RaycastHit{Point: pointAlong(origin, dir, t), Normal: normal, Distance: t}, true
	}

	// |origin + t*dir - center|^2 = r^2 with |dir| = 1
	center := s.sphere.GetCenter()
	radius := s.sphere.GetWorldRadius()
	oc := rl.Vector3Subtract(origin, center)
	b := rl.Vector3DotProduct(oc, dir)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return RaycastHit{}, false
	}
	root := float32(math.Sqrt(float64(disc)))
	t := -b - root
	if t < 0 {
		t = -b + root
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}
	point := pointAlong(origin, dir, t)
	return RaycastHit{
		Point:    point,
		Normal:   rl.Vector3Normalize(rl.Vector3Subtract(point, center)),
		Distance: t,
	}, true
}

func pointAlong(origin, dir rl.Vector3, t float32) rl.Vector3 {
	return rl.Vector3Add(origin, rl.Vector3Scale(dir, t))
}
