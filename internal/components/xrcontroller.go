package components

import (
	"vrgrab/internal/engine"
	"vrgrab/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// XRController samples one tracked hand once per frame, keeps a short
// velocity history for throws, aims a selection ray and drives
// pickup/release on Grabbables from the trigger and grip buttons.
type XRController struct {
	engine.BaseComponent

	Node   xr.Node
	Device xr.Device

	MaxDistance            float32
	InteractableLayers     engine.LayerMask
	GrabRadius             float32 // 0 disables proximity grab
	GrabScanLimit          int
	VelocityBufferDuration float64 // seconds
	PickVelocityCount      int

	// Locomotion, left hand only. Both refs are injected; there is no global camera lookup.
	MovementSpeed float32
	Camera        engine.GameObjectRef
	Character     engine.GameObjectRef

	Logger *zap.Logger

	history *VelocityHistory
	held    *Grabbable
	aim     *AimLine
	now     float64
}

func NewXRController(node xr.Node, device xr.Device) *XRController {
	return &XRController{
		Node:                   node,
		Device:                 device,
		MaxDistance:            10,
		InteractableLayers:     engine.LayerEverything,
		GrabScanLimit:          10,
		VelocityBufferDuration: 0.25,
		PickVelocityCount:      10,
		MovementSpeed:          5,
	}
}

func (c *XRController) SetLogger(l *zap.Logger) { c.Logger = l }

func (c *XRController) log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *XRController) Start() {
	c.ensureHistory()
	if c.aim == nil {
		g := c.GetGameObject()
		if aim := engine.GetComponent[*AimLine](g); aim != nil {
			c.aim = aim
		} else {
			c.aim = &AimLine{}
			g.AddComponent(c.aim)
		}
	}
}

func (c *XRController) ensureHistory() {
	if c.history == nil {
		c.history = NewVelocityHistory(c.VelocityBufferDuration)
	}
}

func (c *XRController) Update(deltaTime float32) {
	if c.GetGameObject() == nil {
		return
	}
	c.now += float64(deltaTime)

	c.trackPose()
	c.SampleVelocity(c.now)
	c.updateLocomotion(deltaTime)

	hit, ok := c.aimRaycast()
	c.tryPickupAndRelease(hit, ok)
	c.tryGrabAndRelease()
}

// trackPose copies the device pose onto the controller's local transform.
// Untracked frames keep the last pose.
func (c *XRController) trackPose() {
	if c.Device == nil {
		return
	}
	g := c.GetGameObject()
	if pos, ok := c.Device.TryGetVector3(xr.DevicePosition); ok {
		g.Transform.Position = pos
	}
	if rot, ok := c.Device.TryGetQuaternion(xr.DeviceRotation); ok {
		g.Transform.SetQuaternion(rot)
	}
}

// SampleVelocity records the device's linear and angular velocity at now.
// Nothing is recorded when either read fails.
func (c *XRController) SampleVelocity(now float64) {
	c.ensureHistory()
	if c.Device == nil {
		return
	}
	v, okV := c.Device.TryGetVector3(xr.DeviceVelocity)
	w, okW := c.Device.TryGetVector3(xr.DeviceAngularVelocity)
	if !okV || !okW {
		return
	}
	c.history.Add(v, w, now)
}

// aimRaycast updates the aim line and returns what the ray hit.
// While holding, the line collapses onto the controller and no hit test runs.
func (c *XRController) aimRaycast() (engine.RaycastResult, bool) {
	origin := c.Position()
	if c.held != nil {
		c.setAim(origin, origin, false)
		return engine.RaycastResult{}, false
	}

	direction := c.Forward()
	end := rl.Vector3Add(origin, rl.Vector3Scale(direction, c.MaxDistance))

	world := c.world()
	if world == nil {
		c.setAim(origin, end, false)
		return engine.RaycastResult{}, false
	}
	hit, ok := world.Raycast(origin, direction, c.MaxDistance, c.InteractableLayers)
	if ok {
		end = hit.Point
	}
	c.setAim(origin, end, ok)
	return hit, ok
}

func (c *XRController) setAim(start, end rl.Vector3, hit bool) {
	if c.aim != nil {
		c.aim.Set(start, end, hit)
	}
}

func (c *XRController) tryPickupAndRelease(hit engine.RaycastResult, hasHit bool) {
	if c.held == nil && hasHit && c.TriggerPressed() {
		if grabbable, ok := AsGrabbable(hit.GameObject); ok {
			c.pickup(grabbable)
		}
	} else if c.held != nil && !c.TriggerPressed() && !c.GripPressed() {
		c.releaseHeld()
	}
}

func (c *XRController) tryGrabAndRelease() {
	if c.held == nil && c.GrabRadius > 0 && c.GripPressed() {
		world := c.world()
		if world == nil {
			return
		}
		// Candidate order is whatever the overlap query returns
		candidates := world.OverlapSphere(c.Position(), c.GrabRadius, c.InteractableLayers, c.GrabScanLimit)
		for _, obj := range candidates {
			if grabbable, ok := AsGrabbable(obj); ok {
				c.pickup(grabbable)
				break
			}
		}
	} else if c.held != nil && !c.TriggerPressed() && !c.GripPressed() {
		c.releaseHeld()
	}
}

func (c *XRController) pickup(g *Grabbable) {
	g.Pickup(c)
	c.held = g
}

func (c *XRController) releaseHeld() {
	c.held.Release(c)
	c.held = nil
}

func (c *XRController) updateLocomotion(deltaTime float32) {
	if c.Node != xr.LeftHand {
		return
	}
	g := c.GetGameObject()
	camObj := c.Camera.Get(g.Scene)
	charObj := c.Character.Get(g.Scene)
	if camObj == nil || charObj == nil {
		return
	}
	character := engine.GetComponent[*CharacterController](charObj)
	if character == nil {
		return
	}

	input := xr.ReadAxis2D(c.Device, xr.Primary2DAxis)
	if input.X == 0 && input.Y == 0 {
		return
	}

	view := engine.Transform{Rotation: camObj.WorldRotation()}
	dir := MoveDirection(view.Forward(), view.Right(), input)
	character.Move(rl.Vector3Scale(dir, c.MovementSpeed*deltaTime))
}

// MoveDirection turns a thumbstick axis into a horizontal movement direction
// relative to the camera: forward and right are flattened onto the ground
// plane and normalized before being weighted by the axis.
func MoveDirection(cameraForward, cameraRight rl.Vector3, axis rl.Vector2) rl.Vector3 {
	cameraForward.Y = 0
	cameraRight.Y = 0
	cameraForward = normalizeOrZero(cameraForward)
	cameraRight = normalizeOrZero(cameraRight)
	return rl.Vector3Add(
		rl.Vector3Scale(cameraForward, axis.Y),
		rl.Vector3Scale(cameraRight, axis.X),
	)
}

func normalizeOrZero(v rl.Vector3) rl.Vector3 {
	if rl.Vector3Length(v) < 1e-6 {
		return rl.Vector3{}
	}
	return rl.Vector3Normalize(v)
}

func (c *XRController) world() engine.WorldAccess {
	g := c.GetGameObject()
	if g == nil || g.Scene == nil {
		return nil
	}
	return g.Scene.World
}

func (c *XRController) TriggerPressed() bool {
	return xr.ReadBool(c.Device, xr.TriggerButton)
}

func (c *XRController) GripPressed() bool {
	return xr.ReadBool(c.Device, xr.GripButton)
}

// Held returns the Grabbable this controller believes it holds, or nil.
func (c *XRController) Held() *Grabbable {
	return c.held
}

// Position is the controller's world position.
func (c *XRController) Position() rl.Vector3 {
	return c.GetGameObject().WorldPosition()
}

// Rotation is the controller's world rotation in Euler degrees.
func (c *XRController) Rotation() rl.Vector3 {
	return c.GetGameObject().WorldRotation()
}

func (c *XRController) Forward() rl.Vector3 {
	return engine.Transform{Rotation: c.Rotation()}.Forward()
}

// History exposes the velocity buffer for inspection.
func (c *XRController) History() *VelocityHistory {
	c.ensureHistory()
	return c.history
}

// Now is the controller's clock: the sum of frame deltas it has seen.
func (c *XRController) Now() float64 {
	return c.now
}

func (c *XRController) InstantVelocity() rl.Vector3 {
	return xr.ReadVector3(c.Device, xr.DeviceVelocity)
}

func (c *XRController) InstantAngularVelocity() rl.Vector3 {
	return xr.ReadVector3(c.Device, xr.DeviceAngularVelocity)
}

func (c *XRController) AverageVelocity() rl.Vector3 {
	return c.History().Average()
}

func (c *XRController) AverageAngularVelocity() rl.Vector3 {
	return c.History().AverageAngular()
}

func (c *XRController) PeakAverageVelocity() rl.Vector3 {
	return c.History().PeakAverage(c.PickVelocityCount)
}

func (c *XRController) PeakAverageAngularVelocity() rl.Vector3 {
	return c.History().PeakAverageAngular(c.PickVelocityCount)
}
