package game

import (
	"testing"

	"vrgrab/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRightHandInFrontOfView(t *testing.T) {
	near := RightHandPosition(0, 0, 0.3)
	far := RightHandPosition(0, 0, 0.6)
	assert.InDelta(t, 0.3, far.Z-near.Z, 1e-5)
	assert.InDelta(t, 0.5, near.Y, 1e-5)

	// Turning 90 degrees swings the hand from +Z to +X
	turned := RightHandPosition(90, 0, 0.6)
	assert.Greater(t, turned.X, float32(0.4))
	assert.InDelta(t, 0, turned.Z, 0.2)
}

func TestLookClampsPitch(t *testing.T) {
	d := NewDesktopInput()
	d.Look(10, 200)
	assert.Equal(t, float32(10), d.Yaw)
	assert.Equal(t, float32(maxPitch), d.Pitch)
	d.Look(0, -500)
	assert.Equal(t, float32(-maxPitch), d.Pitch)
}

func TestExtendClampsReach(t *testing.T) {
	d := NewDesktopInput()
	d.Extend(10)
	assert.Equal(t, float32(maxReach), d.Reach)
	d.Extend(-10)
	assert.Equal(t, float32(minReach), d.Reach)
}

func TestTrackDerivesVelocityFromPoseChange(t *testing.T) {
	d := NewDesktopInput()
	d.Track(0.02)

	v, ok := d.Right.TryGetVector3(xr.DeviceVelocity)
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{}, v, "first frame has no previous pose")

	d.Extend(0.1)
	d.Track(0.02)

	v, _ = d.Right.TryGetVector3(xr.DeviceVelocity)
	assert.InDelta(t, 5, v.Z, 1e-3)

	d.Look(2, 0)
	d.Track(0.02)
	w, _ := d.Right.TryGetVector3(xr.DeviceAngularVelocity)
	assert.InDelta(t, 2*rl.Deg2rad/0.02, w.Y, 1e-3)

	pos, ok := d.Right.TryGetVector3(xr.DevicePosition)
	require.True(t, ok)
	assert.Equal(t, RightHandPosition(d.Yaw, d.Pitch, d.Reach), pos)
	_, ok = d.Left.TryGetVector3(xr.DevicePosition)
	assert.True(t, ok)
}

func TestStickAxis(t *testing.T) {
	assert.Equal(t, rl.Vector2{}, stickAxis(false, false, false, false))
	assert.Equal(t, rl.Vector2{Y: 1}, stickAxis(true, false, false, false))
	assert.Equal(t, rl.Vector2{X: -1}, stickAxis(false, false, false, true))
	assert.Equal(t, rl.Vector2{}, stickAxis(true, true, true, true))

	diag := stickAxis(true, false, true, false)
	assert.InDelta(t, 1, rl.Vector2Length(diag), 1e-6)
}

func TestDevicesKeyedByNode(t *testing.T) {
	d := NewDesktopInput()
	devices := d.Devices()
	assert.Same(t, d.Left, devices[xr.LeftHand])
	assert.Same(t, d.Right, devices[xr.RightHand])
}

func TestFrustumCulling(t *testing.T) {
	camera := rl.Camera3D{
		Position:   rl.Vector3{},
		Target:     rl.Vector3{Z: 1},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
	f := ExtractFrustum(camera, 1)

	assert.True(t, f.ContainsPoint(rl.Vector3{Z: 10}))
	assert.False(t, f.ContainsPoint(rl.Vector3{Z: -10}))
	assert.False(t, f.ContainsPoint(rl.Vector3{X: 100, Z: 10}))
	assert.False(t, f.ContainsPoint(rl.Vector3{Z: farPlane + 10}))
	// A sphere straddling the edge still counts
	assert.True(t, f.ContainsSphere(rl.Vector3{X: 8, Z: 10}, 5))
}
