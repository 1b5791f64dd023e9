package physics

import (
	"testing"

	"vrgrab/internal/components"
	"vrgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBall(name string, pos rl.Vector3) (*engine.GameObject, *components.Rigidbody) {
	obj := engine.NewGameObject(name)
	obj.Transform.Position = pos
	obj.AddComponent(components.NewSphereCollider(0.5))
	rb := components.NewRigidbody()
	rb.CanSleep = false
	obj.AddComponent(rb)
	return obj, rb
}

func newWall(name string, pos, size rl.Vector3) *engine.GameObject {
	obj := engine.NewGameObject(name)
	obj.Transform.Position = pos
	obj.AddComponent(components.NewBoxCollider(size))
	return obj
}

type triggerRecorder struct {
	engine.BaseComponent
	entered, exited []*engine.GameObject
}

func (r *triggerRecorder) OnTriggerEnter(other *engine.GameObject) {
	r.entered = append(r.entered, other)
}
func (r *triggerRecorder) OnTriggerExit(other *engine.GameObject) { r.exited = append(r.exited, other) }

func TestAddObjectClassifies(t *testing.T) {
	p := NewPhysicsWorld()
	ball, _ := newBall("Ball", rl.Vector3{})
	wall := newWall("Wall", rl.Vector3{X: 5}, rl.Vector3{X: 1, Y: 1, Z: 1})
	empty := engine.NewGameObject("Empty")

	p.AddObject(ball)
	p.AddObject(wall)
	p.AddObject(empty)

	assert.Equal(t, []*engine.GameObject{ball}, p.Bodies)
	assert.Equal(t, []*engine.GameObject{wall}, p.Statics)

	p.RemoveObject(ball)
	assert.Empty(t, p.Bodies)
}

func TestGravityIntegratesDynamicBodies(t *testing.T) {
	p := NewPhysicsWorld()
	p.UseFloor = false
	ball, rb := newBall("Ball", rl.Vector3{Y: 10})
	p.AddObject(ball)

	p.Update(0.1)

	assert.InDelta(t, -0.981, rb.Velocity.Y, 1e-4)
	assert.Less(t, ball.Transform.Position.Y, float32(10))
	assert.Equal(t, 1, p.DynamicObjectCount())
}

func TestKinematicMoveAppliedAndVelocityDerived(t *testing.T) {
	p := NewPhysicsWorld()
	ball, rb := newBall("Ball", rl.Vector3{Y: 1})
	rb.SetKinematic(true)
	p.AddObject(ball)

	rb.MovePosition(rl.Vector3{X: 1, Y: 1})
	rb.MoveRotation(rl.Vector3{Y: 45})
	p.Update(0.5)

	assert.Equal(t, rl.Vector3{X: 1, Y: 1}, ball.Transform.Position, "kinematic body goes exactly to the target")
	assert.Equal(t, rl.Vector3{Y: 45}, ball.Transform.Rotation)
	assert.InDelta(t, 2.0, rb.Velocity.X, 1e-5)
	assert.Equal(t, 0, p.DynamicObjectCount())

	// No queued move: stays put, no gravity
	p.Update(0.5)
	assert.Equal(t, rl.Vector3{X: 1, Y: 1}, ball.Transform.Position)
	assert.Equal(t, rl.Vector3{}, rb.Velocity)
}

func TestVelocityWrittenAfterKinematicClearSurvivesStep(t *testing.T) {
	p := NewPhysicsWorld()
	p.UseFloor = false
	p.Gravity = rl.Vector3{}
	ball, rb := newBall("Ball", rl.Vector3{})
	p.AddObject(ball)

	rb.SetKinematic(true)
	rb.SetVelocity(rl.Vector3{X: 9})
	assert.Equal(t, rl.Vector3{}, rb.Velocity, "kinematic bodies ignore velocity writes")

	rb.SetKinematic(false)
	rb.SetVelocity(rl.Vector3{X: 3})
	p.Update(1)

	assert.InDelta(t, 3.0, ball.Transform.Position.X, 1e-5)
	assert.InDelta(t, 3.0, rb.Velocity.X, 1e-5)
}

func TestFloorStopsFallingBall(t *testing.T) {
	p := NewPhysicsWorld()
	ball, rb := newBall("Ball", rl.Vector3{Y: 0.6})
	rb.Bounciness = 0
	p.AddObject(ball)

	for i := 0; i < 50; i++ {
		p.Update(0.02)
	}
	assert.GreaterOrEqual(t, ball.Transform.Position.Y, float32(0.5)-1e-4)
}

func TestBallBouncesOffWall(t *testing.T) {
	p := NewPhysicsWorld()
	p.UseFloor = false
	p.Gravity = rl.Vector3{}
	ball, rb := newBall("Ball", rl.Vector3{X: 0})
	rb.Bounciness = 1
	rb.Friction = 0
	rb.Velocity = rl.Vector3{X: 10}
	wall := newWall("Wall", rl.Vector3{X: 1.2}, rl.Vector3{X: 0.5, Y: 4, Z: 4})
	p.AddObject(ball)
	p.AddObject(wall)

	p.Update(0.05)

	assert.Less(t, rb.Velocity.X, float32(0), "ball should be moving away from the wall")
}

func TestRaycastNearestWithMask(t *testing.T) {
	p := NewPhysicsWorld()
	near := newWall("Near", rl.Vector3{Z: 3}, rl.Vector3{X: 1, Y: 1, Z: 1})
	far := newWall("Far", rl.Vector3{Z: 6}, rl.Vector3{X: 1, Y: 1, Z: 1})
	near.Layer = 2
	p.AddObject(far)
	p.AddObject(near)

	hit, ok := p.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 10, engine.LayerEverything)
	require.True(t, ok)
	assert.Same(t, near, hit.GameObject)
	assert.InDelta(t, 2.5, hit.Distance, 1e-4)
	assert.Equal(t, rl.Vector3{Z: -1}, hit.Normal)

	hit, ok = p.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 10, engine.MaskOf(engine.LayerDefault))
	require.True(t, ok)
	assert.Same(t, far, hit.GameObject, "filtered layer is skipped")

	_, ok = p.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 2, engine.LayerEverything)
	assert.False(t, ok, "hits beyond max distance are ignored")
}

func TestRaycastSphereAndTriggerSkip(t *testing.T) {
	p := NewPhysicsWorld()
	ball, _ := newBall("Ball", rl.Vector3{Z: 5})
	zone := newWall("Zone", rl.Vector3{Z: 2}, rl.Vector3{X: 2, Y: 2, Z: 1})
	engine.GetComponent[*components.BoxCollider](zone).IsTrigger = true
	p.AddObject(ball)
	p.AddObject(zone)

	hit, ok := p.Raycast(rl.Vector3{}, rl.Vector3{Z: 2}, 10, engine.LayerEverything)
	require.True(t, ok)
	assert.Same(t, ball, hit.GameObject)
	assert.InDelta(t, 4.5, hit.Distance, 1e-4)
}

func TestOverlapSphereRespectsLimitAndMask(t *testing.T) {
	p := NewPhysicsWorld()
	for i := 0; i < 5; i++ {
		b, _ := newBall("Ball", rl.Vector3{X: float32(i) * 0.1})
		p.AddObject(b)
	}
	hidden, _ := newBall("Hidden", rl.Vector3{})
	hidden.Layer = 7
	p.AddObject(hidden)
	farBall, _ := newBall("Far", rl.Vector3{X: 20})
	p.AddObject(farBall)

	all := p.OverlapSphere(rl.Vector3{}, 0.2, engine.MaskOf(engine.LayerDefault), 0)
	assert.Len(t, all, 5)
	assert.NotContains(t, all, hidden)
	assert.NotContains(t, all, farBall)

	limited := p.OverlapSphere(rl.Vector3{}, 0.2, engine.LayerEverything, 3)
	assert.Len(t, limited, 3)
}

func TestTriggerEnterAndExit(t *testing.T) {
	p := NewPhysicsWorld()
	p.UseFloor = false
	p.Gravity = rl.Vector3{}

	hoop := newWall("Hoop", rl.Vector3{X: 2}, rl.Vector3{X: 1, Y: 1, Z: 1})
	engine.GetComponent[*components.BoxCollider](hoop).IsTrigger = true
	rec := &triggerRecorder{}
	hoop.AddComponent(rec)

	ball, rb := newBall("Ball", rl.Vector3{})
	rb.Velocity = rl.Vector3{X: 10}
	p.AddObject(hoop)
	p.AddObject(ball)

	p.Update(0.1) // x = 1.0, touching the hoop face at 1.5 with radius 0.5
	p.Update(0.1) // x = 2.0, inside
	assert.Equal(t, []*engine.GameObject{ball}, rec.entered, "enter fires once")

	p.Update(0.2) // x = 4.0, gone
	assert.Equal(t, []*engine.GameObject{ball}, rec.exited)
	assert.Len(t, rec.entered, 1)
}
