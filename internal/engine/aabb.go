package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// AABB is an axis-aligned box. Colliders are never rotated for contacts or queries.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3Scale(size, 0.5)
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func axisOf(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

func unitAxis(axis int, sign float32) rl.Vector3 {
	switch axis {
	case 0:
		return rl.Vector3{X: sign}
	case 1:
		return rl.Vector3{Y: sign}
	}
	return rl.Vector3{Z: sign}
}

func (a AABB) Intersects(b AABB) bool {
	for i := 0; i < 3; i++ {
		if axisOf(a.Min, i) > axisOf(b.Max, i) || axisOf(a.Max, i) < axisOf(b.Min, i) {
			return false
		}
	}
	return true
}

// ClosestPoint clamps p onto the box.
func (a AABB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: clamp(p.X, a.Min.X, a.Max.X),
		Y: clamp(p.Y, a.Min.Y, a.Max.Y),
		Z: clamp(p.Z, a.Min.Z, a.Max.Z),
	}
}

func (a AABB) IntersectsSphere(center rl.Vector3, radius float32) bool {
	d := rl.Vector3Subtract(center, a.ClosestPoint(center))
	return rl.Vector3DotProduct(d, d) <= radius*radius
}

// Resolve returns the smallest axis push that moves a out of b, or zero
// when they do not overlap.
func (a AABB) Resolve(b AABB) rl.Vector3 {
	if !a.Intersects(b) {
		return rl.Vector3{}
	}
	best := float32(-1)
	var push rl.Vector3
	for i := 0; i < 3; i++ {
		up := axisOf(b.Max, i) - axisOf(a.Min, i)
		down := axisOf(a.Max, i) - axisOf(b.Min, i)
		if best < 0 || up < best {
			best, push = up, unitAxis(i, up)
		}
		if down < best {
			best, push = down, unitAxis(i, -down)
		}
	}
	return push
}

// Ray intersects a ray with the box using slabs. dir must be normalized.
// A ray starting inside reports the exit point. normal faces away from the
// box on the face that was crossed.
func (a AABB) Ray(origin, dir rl.Vector3, maxDistance float32) (float32, rl.Vector3, bool) {
	tmin, tmax := float32(-1e30), float32(1e30)
	enterAxis, exitAxis := 0, 0
	for i := 0; i < 3; i++ {
		o, d := axisOf(origin, i), axisOf(dir, i)
		lo, hi := axisOf(a.Min, i), axisOf(a.Max, i)
		if d == 0 {
			if o < lo || o > hi {
				return 0, rl.Vector3{}, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin, enterAxis = t1, i
		}
		if t2 < tmax {
			tmax, exitAxis = t2, i
		}
		if tmin > tmax {
			return 0, rl.Vector3{}, false
		}
	}
	if tmax < 0 {
		return 0, rl.Vector3{}, false
	}

	if tmin >= 0 {
		if tmin > maxDistance {
			return 0, rl.Vector3{}, false
		}
		return tmin, unitAxis(enterAxis, -sign(axisOf(dir, enterAxis))), true
	}
	if tmax > maxDistance {
		return 0, rl.Vector3{}, false
	}
	return tmax, unitAxis(exitAxis, sign(axisOf(dir, exitAxis))), true
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
