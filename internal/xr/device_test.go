package xr

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestReadHelpersFailSoft(t *testing.T) {
	d := NewScriptedDevice()

	assert.False(t, ReadBool(d, TriggerButton), "unset feature reads as not pressed")
	assert.Equal(t, rl.Vector2{}, ReadAxis2D(d, Primary2DAxis))
	assert.Equal(t, rl.Vector3{}, ReadVector3(d, DeviceVelocity))

	assert.False(t, ReadBool(nil, TriggerButton))
	assert.Equal(t, rl.Vector3{}, ReadVector3(nil, DeviceVelocity))
}

func TestScriptedDeviceValues(t *testing.T) {
	d := NewScriptedDevice()
	d.SetBool(GripButton, true)
	d.SetVector3(DeviceVelocity, rl.Vector3{X: 1, Y: 2, Z: 3})
	d.SetAxis2D(Primary2DAxis, rl.Vector2{X: 0.5})

	assert.True(t, ReadBool(d, GripButton))
	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 3}, ReadVector3(d, DeviceVelocity))
	assert.Equal(t, rl.Vector2{X: 0.5}, ReadAxis2D(d, Primary2DAxis))

	d.Unset(GripButton)
	_, ok := d.TryGetBool(GripButton)
	assert.False(t, ok)
}

func TestScriptedDeviceUntracked(t *testing.T) {
	d := NewScriptedDevice()
	d.SetBool(TriggerButton, true)
	d.SetQuaternion(DeviceRotation, rl.QuaternionIdentity())
	d.Untracked = true

	_, ok := d.TryGetBool(TriggerButton)
	assert.False(t, ok)
	_, ok = d.TryGetQuaternion(DeviceRotation)
	assert.False(t, ok)
	assert.False(t, ReadBool(d, TriggerButton))
}

func TestParseNode(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Node
		ok   bool
	}{
		{"left", LeftHand, true},
		{"RightHand", RightHand, true},
		{"head", Head, true},
		{"tail", 0, false},
	} {
		got, ok := ParseNode(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if ok {
			assert.Equal(t, tc.want, got, tc.in)
			assert.NotEqual(t, "unknown", got.String())
		}
	}
}
