package game

import (
	"vrgrab/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	mouseSensitivity = 0.15 // degrees per pixel
	maxPitch         = 85.0
	minReach         = 0.15
	maxReach         = 0.9
	reachStep        = 0.05
)

// headOffset is the head position in rig space; the rig origin sits at hip height.
var headOffset = rl.Vector3{Y: 0.7}

// DesktopInput emulates a headset and two hand controllers with mouse and
// keyboard. The mouse steers the head; the right hand floats in front of
// the view at Reach and follows it, so flicking the mouse swings the hand.
//
//	mouse        look / swing right hand
//	wheel        push the right hand out or pull it in
//	LMB / RMB    right trigger / grip
//	WASD         left thumbstick (move)
//	E / Q        left trigger / grip
type DesktopInput struct {
	Left  *xr.ScriptedDevice
	Right *xr.ScriptedDevice

	Yaw   float32 // degrees
	Pitch float32 // degrees
	Reach float32

	lastRight  rl.Vector3
	lastYaw    float32
	lastPitch  float32
	hasLastPos bool
}

func NewDesktopInput() *DesktopInput {
	return &DesktopInput{
		Left:  xr.NewScriptedDevice(),
		Right: xr.NewScriptedDevice(),
		Reach: 0.45,
	}
}

// Devices returns the tracking sources keyed by node.
func (d *DesktopInput) Devices() map[xr.Node]xr.Device {
	return map[xr.Node]xr.Device{
		xr.LeftHand:  d.Left,
		xr.RightHand: d.Right,
	}
}

// HeadRotation is the view rotation in Euler degrees.
func (d *DesktopInput) HeadRotation() rl.Vector3 {
	return rl.Vector3{X: d.Pitch, Y: d.Yaw}
}

// Poll reads the window's input for one frame.
func (d *DesktopInput) Poll(dt float32) {
	mouse := rl.GetMouseDelta()
	d.Look(-mouse.X*mouseSensitivity, mouse.Y*mouseSensitivity)
	d.Extend(rl.GetMouseWheelMove() * reachStep)

	d.Right.SetBool(xr.TriggerButton, rl.IsMouseButtonDown(rl.MouseLeftButton))
	d.Right.SetBool(xr.GripButton, rl.IsMouseButtonDown(rl.MouseRightButton))
	d.Left.SetBool(xr.TriggerButton, rl.IsKeyDown(rl.KeyE))
	d.Left.SetBool(xr.GripButton, rl.IsKeyDown(rl.KeyQ))
	d.Left.SetAxis2D(xr.Primary2DAxis, stickAxis(
		rl.IsKeyDown(rl.KeyW), rl.IsKeyDown(rl.KeyS),
		rl.IsKeyDown(rl.KeyA), rl.IsKeyDown(rl.KeyD)))

	d.Track(dt)
}

// Look turns the head by the given yaw and pitch deltas in degrees.
func (d *DesktopInput) Look(dYaw, dPitch float32) {
	d.Yaw += dYaw
	d.Pitch += dPitch
	if d.Pitch > maxPitch {
		d.Pitch = maxPitch
	}
	if d.Pitch < -maxPitch {
		d.Pitch = -maxPitch
	}
}

// Extend moves the right hand along the view direction, within reach limits.
func (d *DesktopInput) Extend(delta float32) {
	d.Reach += delta
	if d.Reach < minReach {
		d.Reach = minReach
	}
	if d.Reach > maxReach {
		d.Reach = maxReach
	}
}

// Track writes both hands' poses and the right hand's velocities for a frame
// of length dt. Velocities come from the pose change since the last frame.
func (d *DesktopInput) Track(dt float32) {
	rot := rl.QuaternionFromEuler(d.Pitch*rl.Deg2rad, d.Yaw*rl.Deg2rad, 0)
	right := RightHandPosition(d.Yaw, d.Pitch, d.Reach)
	left := LeftHandPosition(d.Yaw)

	d.Right.SetVector3(xr.DevicePosition, right)
	d.Right.SetQuaternion(xr.DeviceRotation, rot)
	d.Left.SetVector3(xr.DevicePosition, left)
	d.Left.SetQuaternion(xr.DeviceRotation, rl.QuaternionFromEuler(0, d.Yaw*rl.Deg2rad, 0))

	var v, w rl.Vector3
	if d.hasLastPos && dt > 0 {
		v = rl.Vector3Scale(rl.Vector3Subtract(right, d.lastRight), 1/dt)
		w = rl.Vector3{
			X: (d.Pitch - d.lastPitch) * rl.Deg2rad / dt,
			Y: (d.Yaw - d.lastYaw) * rl.Deg2rad / dt,
		}
	}
	d.Right.SetVector3(xr.DeviceVelocity, v)
	d.Right.SetVector3(xr.DeviceAngularVelocity, w)
	d.Left.SetVector3(xr.DeviceVelocity, rl.Vector3{})
	d.Left.SetVector3(xr.DeviceAngularVelocity, rl.Vector3{})

	d.lastRight = right
	d.lastYaw = d.Yaw
	d.lastPitch = d.Pitch
	d.hasLastPos = true
}

// RightHandPosition places the right hand in rig space: reach along the view
// direction, a little right of and below the eyes.
func RightHandPosition(yaw, pitch, reach float32) rl.Vector3 {
	rot := rl.QuaternionFromEuler(pitch*rl.Deg2rad, yaw*rl.Deg2rad, 0)
	forward := rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, rot)
	side := rl.Vector3RotateByQuaternion(rl.Vector3{X: -0.15, Y: -0.2}, rot)
	return rl.Vector3Add(headOffset, rl.Vector3Add(side, rl.Vector3Scale(forward, reach)))
}

// LeftHandPosition keeps the left hand at the hip, turned with the body.
func LeftHandPosition(yaw float32) rl.Vector3 {
	rot := rl.QuaternionFromEuler(0, yaw*rl.Deg2rad, 0)
	return rl.Vector3RotateByQuaternion(rl.Vector3{X: 0.25, Y: 0.1, Z: 0.3}, rot)
}

// stickAxis maps four direction keys to a normalized thumbstick axis.
// The view is right-handed: looking down +Z, screen right is -X.
func stickAxis(up, down, left, right bool) rl.Vector2 {
	var axis rl.Vector2
	if up {
		axis.Y++
	}
	if down {
		axis.Y--
	}
	if right {
		axis.X--
	}
	if left {
		axis.X++
	}
	if axis.X != 0 && axis.Y != 0 {
		axis = rl.Vector2Normalize(axis)
	}
	return axis
}
