package xr

import rl "github.com/gen2brain/raylib-go/raylib"

// ScriptedDevice is a Device whose feature values are set directly.
// It backs the headless simulation and tests. Features that were never set
// read as unsupported; Untracked makes every read fail.
type ScriptedDevice struct {
	Untracked bool

	bools    map[Feature]bool
	axes     map[Feature]rl.Vector2
	vectors  map[Feature]rl.Vector3
	rotation map[Feature]rl.Quaternion
}

var _ Device = (*ScriptedDevice)(nil)

func NewScriptedDevice() *ScriptedDevice {
	return &ScriptedDevice{
		bools:    make(map[Feature]bool),
		axes:     make(map[Feature]rl.Vector2),
		vectors:  make(map[Feature]rl.Vector3),
		rotation: make(map[Feature]rl.Quaternion),
	}
}

func (d *ScriptedDevice) SetBool(f Feature, v bool)                { d.bools[f] = v }
func (d *ScriptedDevice) SetAxis2D(f Feature, v rl.Vector2)        { d.axes[f] = v }
func (d *ScriptedDevice) SetVector3(f Feature, v rl.Vector3)       { d.vectors[f] = v }
func (d *ScriptedDevice) SetQuaternion(f Feature, q rl.Quaternion) { d.rotation[f] = q }

// Unset makes f read as unsupported again.
func (d *ScriptedDevice) Unset(f Feature) {
	delete(d.bools, f)
	delete(d.axes, f)
	delete(d.vectors, f)
	delete(d.rotation, f)
}

func (d *ScriptedDevice) TryGetBool(f Feature) (bool, bool) {
	if d.Untracked {
		return false, false
	}
	v, ok := d.bools[f]
	return v, ok
}

func (d *ScriptedDevice) TryGetAxis2D(f Feature) (rl.Vector2, bool) {
	if d.Untracked {
		return rl.Vector2{}, false
	}
	v, ok := d.axes[f]
	return v, ok
}

func (d *ScriptedDevice) TryGetVector3(f Feature) (rl.Vector3, bool) {
	if d.Untracked {
		return rl.Vector3{}, false
	}
	v, ok := d.vectors[f]
	return v, ok
}

func (d *ScriptedDevice) TryGetQuaternion(f Feature) (rl.Quaternion, bool) {
	if d.Untracked {
		return rl.Quaternion{}, false
	}
	v, ok := d.rotation[f]
	return v, ok
}
