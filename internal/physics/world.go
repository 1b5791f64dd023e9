package physics

import (
	"unsafe"

	"vrgrab/internal/components"
	"vrgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// CollisionPair represents two objects that are colliding
type CollisionPair struct {
	A, B *engine.GameObject
}

// makePair creates a consistent collision pair (smaller pointer first)
func makePair(a, b *engine.GameObject) CollisionPair {
	ptrA, ptrB := uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(b))
	if ptrA > ptrB {
		return CollisionPair{A: b, B: a}
	}
	return CollisionPair{A: a, B: b}
}

// TriggerPair is an object overlapping a trigger volume.
type TriggerPair struct {
	Trigger, Other *engine.GameObject
}

// PhysicsWorld steps rigidbodies at a fixed rate. Bodies switch between
// kinematic and dynamic at runtime, so the split is decided every step rather
// than at registration.
type PhysicsWorld struct {
	Gravity     rl.Vector3
	UseFloor    bool
	FloorHeight float32

	Bodies  []*engine.GameObject // anything with a Rigidbody
	Statics []*engine.GameObject // colliders without a Rigidbody (walls, score zones)

	Logger *zap.Logger

	activeCollisions  map[CollisionPair]bool
	currentCollisions map[CollisionPair]bool
	activeTriggers    map[TriggerPair]bool
	currentTriggers   map[TriggerPair]bool
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		Gravity:           rl.Vector3{X: 0, Y: -9.81, Z: 0},
		UseFloor:          true,
		Bodies:            make([]*engine.GameObject, 0),
		Statics:           make([]*engine.GameObject, 0),
		activeCollisions:  make(map[CollisionPair]bool),
		currentCollisions: make(map[CollisionPair]bool),
		activeTriggers:    make(map[TriggerPair]bool),
		currentTriggers:   make(map[TriggerPair]bool),
	}
}

func (p *PhysicsWorld) log() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	if _, ok := shapeOf(g); !ok && engine.GetComponent[*components.Rigidbody](g) == nil {
		p.log().Debug("physics object without collider or rigidbody ignored", zap.String("object", g.Name))
		return
	}
	if engine.GetComponent[*components.Rigidbody](g) == nil {
		p.Statics = append(p.Statics, g)
	} else {
		p.Bodies = append(p.Bodies, g)
	}
}

func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	p.Bodies = removeObject(p.Bodies, g)
	p.Statics = removeObject(p.Statics, g)
	for pair := range p.activeCollisions {
		if pair.A == g || pair.B == g {
			delete(p.activeCollisions, pair)
		}
	}
	for pair := range p.activeTriggers {
		if pair.Trigger == g || pair.Other == g {
			delete(p.activeTriggers, pair)
		}
	}
}

func removeObject(list []*engine.GameObject, g *engine.GameObject) []*engine.GameObject {
	for i, obj := range list {
		if obj == g {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// DynamicObjectCount returns the number of bodies currently simulated.
func (p *PhysicsWorld) DynamicObjectCount() int {
	n := 0
	for _, obj := range p.Bodies {
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil && !rb.IsKinematic {
			n++
		}
	}
	return n
}

// Update advances the simulation by one fixed step. Kinematic moves queued
// since the last step are applied first so contacts and triggers see the
// carried object where the controller put it.
func (p *PhysicsWorld) Update(deltaTime float32) {
	if deltaTime <= 0 {
		return
	}
	p.currentCollisions = make(map[CollisionPair]bool)
	p.currentTriggers = make(map[TriggerPair]bool)

	// 1. Kinematic moves
	for _, obj := range p.Bodies {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || !rb.IsKinematic {
			continue
		}
		pos, hasPos, rot, hasRot := rb.PendingMove()
		if hasPos {
			// Velocity from displacement lets contacts push dynamic bodies realistically
			rb.Velocity = rl.Vector3Scale(rl.Vector3Subtract(pos, obj.Transform.Position), 1/deltaTime)
			obj.Transform.Position = pos
		} else {
			rb.Velocity = rl.Vector3{}
		}
		if hasRot {
			obj.Transform.Rotation = rot
		}
	}

	// 2. Integrate dynamic bodies
	for _, obj := range p.Bodies {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || rb.IsKinematic || rb.IsSleeping {
			continue
		}

		if rb.UseGravity {
			rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(p.Gravity, deltaTime))
		}

		obj.Transform.Position = rl.Vector3Add(
			obj.Transform.Position,
			rl.Vector3Scale(rb.Velocity, deltaTime),
		)
		obj.Transform.Rotation = rl.Vector3Add(
			obj.Transform.Rotation,
			rl.Vector3Scale(rb.AngularVelocity, deltaTime),
		)

		// Time-based so it's framerate independent
		damping := float32(1.0) - (1.0-rb.AngularDamping)*deltaTime*60
		if damping < 0 {
			damping = 0
		}
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, damping)
	}

	// 3. Contacts: dynamic vs static, kinematic and other dynamic bodies
	for i, obj := range p.Bodies {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || rb.IsKinematic {
			continue
		}
		for _, static := range p.Statics {
			p.resolveContact(obj, rb, static, nil)
		}
		for _, other := range p.Bodies[i+1:] {
			otherRb := engine.GetComponent[*components.Rigidbody](other)
			p.resolveContact(obj, rb, other, otherRb)
		}
		for _, other := range p.Bodies[:i] {
			// Earlier dynamic bodies already handled this pair
			if otherRb := engine.GetComponent[*components.Rigidbody](other); otherRb != nil && otherRb.IsKinematic {
				p.resolveContact(obj, rb, other, otherRb)
			}
		}
		p.resolveFloor(obj, rb)
		rb.TrySleep(deltaTime)
	}

	// 4. Trigger overlaps
	p.detectTriggers()

	// 5. Callbacks
	p.dispatchCollisionCallbacks()
	p.dispatchTriggerCallbacks()
}

// recordCollision marks a collision pair as active this frame and wakes sleeping objects
func (p *PhysicsWorld) recordCollision(a, b *engine.GameObject) {
	p.currentCollisions[makePair(a, b)] = true

	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}
	relSpeed := rl.Vector3Length(rl.Vector3Subtract(rbA.Velocity, rbB.Velocity))
	// Only significant hits wake a settled body
	if relSpeed > components.SleepVelocityThreshold*2 {
		rbA.Wake()
		rbB.Wake()
	}
}

// dispatchCollisionCallbacks sends OnCollisionEnter/Exit to handlers
func (p *PhysicsWorld) dispatchCollisionCallbacks() {
	for pair := range p.currentCollisions {
		if !p.activeCollisions[pair] {
			notifyCollisionEnter(pair.A, pair.B)
			notifyCollisionEnter(pair.B, pair.A)
		}
	}
	for pair := range p.activeCollisions {
		if !p.currentCollisions[pair] {
			notifyCollisionExit(pair.A, pair.B)
			notifyCollisionExit(pair.B, pair.A)
		}
	}
	p.activeCollisions = p.currentCollisions
}

func (p *PhysicsWorld) dispatchTriggerCallbacks() {
	for pair := range p.currentTriggers {
		if !p.activeTriggers[pair] {
			notifyTriggerEnter(pair.Trigger, pair.Other)
			notifyTriggerEnter(pair.Other, pair.Trigger)
		}
	}
	for pair := range p.activeTriggers {
		if !p.currentTriggers[pair] {
			notifyTriggerExit(pair.Trigger, pair.Other)
			notifyTriggerExit(pair.Other, pair.Trigger)
		}
	}
	p.activeTriggers = p.currentTriggers
}

func notifyCollisionEnter(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionEnter(other)
		}
	}
}

func notifyCollisionExit(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionExit(other)
		}
	}
}

func notifyTriggerEnter(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.TriggerHandler); ok {
			handler.OnTriggerEnter(other)
		}
	}
}

func notifyTriggerExit(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.TriggerHandler); ok {
			handler.OnTriggerExit(other)
		}
	}
}
