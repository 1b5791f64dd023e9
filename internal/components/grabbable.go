package components

import (
	"fmt"

	"vrgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// GrabState is the Grabbable lifecycle.
type GrabState int

const (
	GrabFree GrabState = iota
	GrabHeld
	// GrabPendingRelease waits for the next fixed step to hand the body back
	// to the simulation with its throw velocity.
	GrabPendingRelease
)

func (s GrabState) String() string {
	switch s {
	case GrabFree:
		return "free"
	case GrabHeld:
		return "held"
	case GrabPendingRelease:
		return "pending-release"
	}
	return fmt.Sprintf("GrabState(%d)", int(s))
}

// VelocitySource selects where the throw velocity comes from on release.
type VelocitySource int

const (
	// VelocityDirect reads the device's instantaneous velocity at release.
	VelocityDirect VelocitySource = iota
	// VelocityAverage is the mean of the controller's velocity history.
	VelocityAverage
	// VelocityPeak is the mean of the fastest samples in the history.
	VelocityPeak
)

func (s VelocitySource) String() string {
	switch s {
	case VelocityDirect:
		return "direct"
	case VelocityAverage:
		return "average"
	case VelocityPeak:
		return "peak"
	}
	return fmt.Sprintf("VelocitySource(%d)", int(s))
}

func ParseVelocitySource(s string) (VelocitySource, error) {
	switch s {
	case "direct":
		return VelocityDirect, nil
	case "average":
		return VelocityAverage, nil
	case "peak", "":
		return VelocityPeak, nil
	}
	return 0, fmt.Errorf("unknown velocity source %q", s)
}

const DefaultThrowPower = 1.5

// Grabbable lets an XRController carry and throw this object's Rigidbody.
// While held the body is kinematic and follows the controller through
// kinematic moves every fixed step; on release it becomes dynamic again with
// the throw velocity.
type Grabbable struct {
	engine.BaseComponent

	ThrowPower     float32
	VelocitySource VelocitySource
	DeferRelease   bool

	OnPickup  engine.EventWithArg[*XRController]
	OnRelease engine.EventWithArg[rl.Vector3] // thrown linear velocity

	Logger *zap.Logger

	state           GrabState
	holder          *XRController
	pendingVelocity rl.Vector3
	pendingAngular  rl.Vector3
}

func NewGrabbable() *Grabbable {
	return &Grabbable{
		ThrowPower:     DefaultThrowPower,
		VelocitySource: VelocityPeak,
		DeferRelease:   true,
	}
}

// AsGrabbable is the capability query used by selection: it reports whether
// obj can be picked up and returns its handle.
func AsGrabbable(obj *engine.GameObject) (*Grabbable, bool) {
	return engine.FindComponent[*Grabbable](obj)
}

func (g *Grabbable) SetLogger(l *zap.Logger) { g.Logger = l }

func (g *Grabbable) log() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

func (g *Grabbable) body() *Rigidbody {
	return engine.GetComponent[*Rigidbody](g.GetGameObject())
}

func (g *Grabbable) name() string {
	if obj := g.GetGameObject(); obj != nil {
		return obj.Name
	}
	return ""
}

// Pickup attaches the object to c. It never refuses: a second controller
// picking up an object that is already held displaces the first holder
// without a release.
func (g *Grabbable) Pickup(c *XRController) {
	if c == nil {
		return
	}
	if g.holder != nil && g.holder != c {
		g.log().Warn("grabbable taken over by another controller",
			zap.String("object", g.name()),
			zap.Stringer("previous", g.holder.Node),
			zap.Stringer("next", c.Node))
	}

	g.holder = c
	g.state = GrabHeld
	g.pendingVelocity = rl.Vector3{}
	g.pendingAngular = rl.Vector3{}

	if obj := g.GetGameObject(); obj != nil {
		obj.Detach()
		obj.Transform.Position = c.Position()
		obj.Transform.Rotation = c.Rotation()
	}
	if rb := g.body(); rb != nil {
		rb.Velocity = rl.Vector3{}
		rb.AngularVelocity = rl.Vector3{}
		rb.SetKinematic(true)
	}

	g.log().Debug("picked up", zap.String("object", g.name()), zap.Stringer("hand", c.Node))
	g.OnPickup.Invoke(c)
}

// Release hands the object back to the simulation. Calls from anything but
// the current holder are ignored, as are repeated releases.
func (g *Grabbable) Release(c *XRController) {
	if c == nil || c != g.holder || g.state != GrabHeld {
		return
	}

	velocity, angular := g.throwVelocity(c)
	if g.DeferRelease {
		g.pendingVelocity = velocity
		g.pendingAngular = angular
		g.state = GrabPendingRelease
		return
	}
	g.applyRelease(velocity, angular)
}

// throwVelocity returns the scaled linear velocity and the angular velocity
// in degrees per second. Devices report angular velocity in radians.
func (g *Grabbable) throwVelocity(c *XRController) (rl.Vector3, rl.Vector3) {
	var v, w rl.Vector3
	switch g.VelocitySource {
	case VelocityDirect:
		v, w = c.InstantVelocity(), c.InstantAngularVelocity()
	case VelocityAverage:
		v, w = c.AverageVelocity(), c.AverageAngularVelocity()
	default:
		v, w = c.PeakAverageVelocity(), c.PeakAverageAngularVelocity()
	}
	power := g.ThrowPower
	if power < 0 {
		power = 0
	}
	return rl.Vector3Scale(v, power), rl.Vector3Scale(w, rl.Rad2deg)
}

// applyRelease clears kinematic before writing velocity; a kinematic body drops velocity writes.
func (g *Grabbable) applyRelease(velocity, angular rl.Vector3) {
	if rb := g.body(); rb != nil {
		rb.SetKinematic(false)
		rb.SetVelocity(velocity)
		rb.SetAngularVelocity(angular)
	}
	if obj := g.GetGameObject(); obj != nil {
		obj.Detach()
	}

	hand := g.holder.Node
	g.holder = nil
	g.state = GrabFree
	g.pendingVelocity = rl.Vector3{}
	g.pendingAngular = rl.Vector3{}

	g.log().Debug("released",
		zap.String("object", g.name()),
		zap.Stringer("hand", hand),
		zap.Float32("speed", rl.Vector3Length(velocity)))
	g.OnRelease.Invoke(velocity)
}

// FixedUpdate pins a held body to the controller pose, or completes a deferred release.
// It runs before the physics world integrates the step.
func (g *Grabbable) FixedUpdate(fixedDelta float32) {
	switch g.state {
	case GrabHeld:
		if rb := g.body(); rb != nil {
			rb.MovePosition(g.holder.Position())
			rb.MoveRotation(g.holder.Rotation())
		}
	case GrabPendingRelease:
		g.applyRelease(g.pendingVelocity, g.pendingAngular)
	}
}

// IsHeld reports whether any controller owns the object, including a release
// that has not reached the physics step yet.
func (g *Grabbable) IsHeld() bool {
	return g.state != GrabFree
}

func (g *Grabbable) State() GrabState {
	return g.state
}

// Holder returns the controller that issued the last accepted Pickup, or nil when free.
func (g *Grabbable) Holder() *XRController {
	return g.holder
}
