package components

import (
	"vrgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.3 // units/sec - below this, object might sleep
	SleepAngularThreshold  = 1.0 // deg/sec - below this, object might sleep
	SleepTimeThreshold     = 0.3 // seconds of low velocity before sleeping
)

type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second on each axis
	Mass            float32
	Bounciness      float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32 // 0 = ice, 1 = stops immediately
	AngularDamping  float32 // how fast rotation slows down
	UseGravity      bool
	IsKinematic     bool // pose driven externally; the integrator leaves it alone

	IsSleeping bool
	sleepTimer float32
	CanSleep   bool

	// Kinematic move targets, consumed by the next physics step
	targetPosition rl.Vector3
	targetRotation rl.Vector3
	hasTargetPos   bool
	hasTargetRot   bool
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass:           1.0,
		Bounciness:     0.5,
		Friction:       0.1,
		AngularDamping: 0.98,
		UseGravity:     true,
		CanSleep:       true,
	}
}

// SetKinematic switches between externally driven and simulated motion.
// Turning kinematic off drops any queued move so a stale target can't snap the body back.
func (r *Rigidbody) SetKinematic(kinematic bool) {
	r.IsKinematic = kinematic
	if !kinematic {
		r.hasTargetPos = false
		r.hasTargetRot = false
	}
	r.Wake()
}

// MovePosition queues a kinematic move to pos. The physics step applies it and
// derives the body's velocity from the displacement, so contacts and triggers
// still see a moving body. Ignored on dynamic bodies.
func (r *Rigidbody) MovePosition(pos rl.Vector3) {
	if !r.IsKinematic {
		return
	}
	r.targetPosition = pos
	r.hasTargetPos = true
}

// MoveRotation queues a kinematic rotation (Euler degrees).
func (r *Rigidbody) MoveRotation(rot rl.Vector3) {
	if !r.IsKinematic {
		return
	}
	r.targetRotation = rot
	r.hasTargetRot = true
}

// PendingMove returns the queued kinematic targets and clears them.
func (r *Rigidbody) PendingMove() (pos rl.Vector3, hasPos bool, rot rl.Vector3, hasRot bool) {
	pos, hasPos = r.targetPosition, r.hasTargetPos
	rot, hasRot = r.targetRotation, r.hasTargetRot
	r.hasTargetPos = false
	r.hasTargetRot = false
	return
}

// SetVelocity assigns linear velocity. Kinematic bodies ignore it.
func (r *Rigidbody) SetVelocity(v rl.Vector3) {
	if r.IsKinematic {
		return
	}
	r.Velocity = v
	r.Wake()
}

// SetAngularVelocity assigns angular velocity in degrees per second. Kinematic bodies ignore it.
func (r *Rigidbody) SetAngularVelocity(w rl.Vector3) {
	if r.IsKinematic {
		return
	}
	r.AngularVelocity = w
	r.Wake()
}

// Pose returns the body's current position and rotation.
func (r *Rigidbody) Pose() (rl.Vector3, rl.Vector3) {
	g := r.GetGameObject()
	if g == nil {
		return rl.Vector3{}, rl.Vector3{}
	}
	return g.Transform.Position, g.Transform.Rotation
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// TrySleep checks if the rigidbody should go to sleep based on velocity
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping || r.IsKinematic {
		return
	}

	speed := rl.Vector3Length(r.Velocity)
	angSpeed := rl.Vector3Length(r.AngularVelocity)

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		r.sleepTimer += deltaTime

		// Extra damping near rest reduces jitter
		dampFactor := float32(0.9)
		r.Velocity = rl.Vector3Scale(r.Velocity, dampFactor)
		r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, dampFactor)

		if r.sleepTimer >= SleepTimeThreshold {
			r.IsSleeping = true
			r.Velocity = rl.Vector3{}
			r.AngularVelocity = rl.Vector3{}
		}
	} else {
		r.sleepTimer = 0
	}
}
