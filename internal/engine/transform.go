package engine

import rl "github.com/gen2brain/raylib-go/raylib"

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

// GetQuaternion converts the Euler rotation to a quaternion.
func (t Transform) GetQuaternion() rl.Quaternion {
	return rl.QuaternionFromEuler(
		t.Rotation.X*rl.Deg2rad,
		t.Rotation.Y*rl.Deg2rad,
		t.Rotation.Z*rl.Deg2rad,
	)
}

// SetQuaternion stores q as Euler degrees.
func (t *Transform) SetQuaternion(q rl.Quaternion) {
	e := rl.QuaternionToEuler(q)
	t.Rotation = rl.Vector3Scale(e, rl.Rad2deg)
}

// Forward is the local +Z axis in world space.
func (t Transform) Forward() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, t.GetQuaternion())
}

// Right is the local +X axis in world space.
func (t Transform) Right() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, t.GetQuaternion())
}
