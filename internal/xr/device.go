// Package xr defines the tracking-source contract the interaction components
// read from. Every read is fail-soft: a device that is not tracking, or that
// does not expose a feature, reports ok == false and callers fall back to a
// neutral value.
package xr

import rl "github.com/gen2brain/raylib-go/raylib"

// Node identifies a tracked physical source.
type Node int

const (
	LeftHand Node = iota
	RightHand
	Head
)

func (n Node) String() string {
	switch n {
	case LeftHand:
		return "left"
	case RightHand:
		return "right"
	case Head:
		return "head"
	}
	return "unknown"
}

// ParseNode maps a config name to a Node.
func ParseNode(s string) (Node, bool) {
	switch s {
	case "left", "LeftHand":
		return LeftHand, true
	case "right", "RightHand":
		return RightHand, true
	case "head", "Head":
		return Head, true
	}
	return 0, false
}

// Feature is a named input usage on a device.
type Feature string

const (
	TriggerButton         Feature = "triggerButton"
	GripButton            Feature = "gripButton"
	Primary2DAxis         Feature = "primary2DAxis"
	DevicePosition        Feature = "devicePosition"
	DeviceRotation        Feature = "deviceRotation"
	DeviceVelocity        Feature = "deviceVelocity"
	DeviceAngularVelocity Feature = "deviceAngularVelocity"
)

// Device is a tracked input source.
type Device interface {
	TryGetBool(f Feature) (bool, bool)
	TryGetAxis2D(f Feature) (rl.Vector2, bool)
	TryGetVector3(f Feature) (rl.Vector3, bool)
	TryGetQuaternion(f Feature) (rl.Quaternion, bool)
}

// ReadBool returns false when the device is nil or the read fails.
func ReadBool(d Device, f Feature) bool {
	if d == nil {
		return false
	}
	v, ok := d.TryGetBool(f)
	return ok && v
}

// ReadAxis2D returns the zero vector when the read fails.
func ReadAxis2D(d Device, f Feature) rl.Vector2 {
	if d == nil {
		return rl.Vector2{}
	}
	if v, ok := d.TryGetAxis2D(f); ok {
		return v
	}
	return rl.Vector2{}
}

// ReadVector3 returns the zero vector when the read fails.
func ReadVector3(d Device, f Feature) rl.Vector3 {
	if d == nil {
		return rl.Vector3{}
	}
	if v, ok := d.TryGetVector3(f); ok {
		return v
	}
	return rl.Vector3{}
}
