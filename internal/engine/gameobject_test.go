package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}
	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}
	if obj.Layer != LayerDefault {
		t.Errorf("Expected default layer, got %d", obj.Layer)
	}
	if obj.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected unit scale, got %v", obj.Transform.Scale)
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First")
	obj2 := NewGameObject("Second")
	obj3 := NewGameObject("Third")

	if obj1.UID == obj2.UID || obj2.UID == obj3.UID || obj1.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"ball", "grabbable"}

	if !obj.HasTag("ball") {
		t.Error("HasTag should return true for existing tag")
	}
	if obj.HasTag("player") {
		t.Error("HasTag should return false for non-existent tag")
	}
	if NewGameObject("Test2").HasTag("anything") {
		t.Error("HasTag should return false when Tags is nil/empty")
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("Child.Parent should be set")
	}
	if len(parent.Children) != 1 || parent.Children[0] != child {
		t.Error("Child not added to parent's Children slice")
	}
}

func TestGameObjectReparent(t *testing.T) {
	a := NewGameObject("A")
	b := NewGameObject("B")
	child := NewGameObject("Child")

	a.AddChild(child)
	b.AddChild(child)

	if len(a.Children) != 0 {
		t.Errorf("Old parent still lists the child: %d children", len(a.Children))
	}
	if child.Parent != b {
		t.Error("Child should now belong to B")
	}
}

func TestGameObjectRemoveChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child1 := NewGameObject("Child1")
	child2 := NewGameObject("Child2")

	parent.AddChild(child1)
	parent.AddChild(child2)
	parent.RemoveChild(child1)

	if len(parent.Children) != 1 {
		t.Errorf("Expected 1 child after removal, got %d", len(parent.Children))
	}
	if parent.Children[0] != child2 {
		t.Error("Wrong child removed")
	}
	if child1.Parent != nil {
		t.Error("Removed child should have nil parent")
	}
}

func TestGameObjectDetachKeepsWorldPosition(t *testing.T) {
	parent := NewGameObject("Hand")
	parent.Transform.Position = rl.Vector3{X: 1, Y: 2, Z: 3}
	child := NewGameObject("Ball")
	child.Transform.Position = rl.Vector3{X: 0, Y: 1, Z: 0}
	parent.AddChild(child)

	child.Detach()

	if child.Parent != nil {
		t.Fatal("Detach should clear the parent")
	}
	want := rl.Vector3{X: 1, Y: 3, Z: 3}
	if rl.Vector3Distance(child.Transform.Position, want) > 1e-4 {
		t.Errorf("Expected world position %v after detach, got %v", want, child.Transform.Position)
	}
}

func TestWorldPoseUnderRotatedParent(t *testing.T) {
	rig := NewGameObject("Rig")
	rig.Transform.Position = rl.Vector3{Y: 1}
	rig.Transform.Rotation = rl.Vector3{Y: 90}
	hand := NewGameObject("Hand")
	hand.Transform.Position = rl.Vector3{Z: 0.5}
	rig.AddChild(hand)

	// Rig yawed to face +X carries the hand's local +Z offset onto +X
	want := rl.Vector3{X: 0.5, Y: 1}
	if rl.Vector3Distance(hand.WorldPosition(), want) > 1e-4 {
		t.Errorf("Expected %v, got %v", want, hand.WorldPosition())
	}

	fwd := Transform{Rotation: hand.WorldRotation()}.Forward()
	if rl.Vector3Distance(fwd, rl.Vector3{X: 1}) > 1e-4 {
		t.Errorf("Hand should face +X with its rig, got %v", fwd)
	}
}

func TestAddChildRefusesCycles(t *testing.T) {
	a := NewGameObject("A")
	b := NewGameObject("B")
	if !a.AddChild(b) {
		t.Fatal("AddChild should accept a fresh child")
	}
	if b.AddChild(a) {
		t.Error("Parenting an ancestor should be refused")
	}
	if a.AddChild(a) {
		t.Error("Parenting self should be refused")
	}
	if a.Parent != nil || len(a.Children) != 1 {
		t.Error("Refused AddChild must not change the hierarchy")
	}
}

func TestGameObjectAddComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	if len(obj.components) != 1 {
		t.Errorf("Expected 1 component, got %d", len(obj.components))
	}
	if comp.gameObject != obj {
		t.Error("Component.gameObject should be set")
	}
}

func TestGameObjectGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}
	obj.AddComponent(comp)

	if GetComponent[*BaseComponent](obj) != comp {
		t.Error("GetComponent failed to find component")
	}
}

type fixedCounter struct {
	BaseComponent
	steps int
}

func (f *fixedCounter) FixedUpdate(float32) { f.steps++ }

func TestFindComponentCapabilityQuery(t *testing.T) {
	obj := NewGameObject("Test")

	if _, ok := FindComponent[*fixedCounter](obj); ok {
		t.Error("FindComponent should report absence")
	}
	if _, ok := FindComponent[*fixedCounter](nil); ok {
		t.Error("FindComponent on nil GameObject should report absence")
	}

	fc := &fixedCounter{}
	obj.AddComponent(fc)
	got, ok := FindComponent[*fixedCounter](obj)
	if !ok || got != fc {
		t.Error("FindComponent failed to find component")
	}
}

func TestGameObjectFixedUpdate(t *testing.T) {
	obj := NewGameObject("Test")
	fc := &fixedCounter{}
	obj.AddComponent(&BaseComponent{})
	obj.AddComponent(fc)

	obj.FixedUpdate(0.02)
	obj.FixedUpdate(0.02)
	if fc.steps != 2 {
		t.Errorf("Expected 2 fixed steps, got %d", fc.steps)
	}

	obj.Active = false
	obj.FixedUpdate(0.02)
	if fc.steps != 2 {
		t.Error("Inactive GameObject should not receive fixed steps")
	}
}

func TestGameObjectStartCalledOnce(t *testing.T) {
	obj := NewGameObject("Test")

	obj.Start()
	if !obj.started {
		t.Error("started flag should be true after Start()")
	}
	obj.Start()
}

func TestTransformForward(t *testing.T) {
	var tr Transform
	fwd := tr.Forward()
	if rl.Vector3Distance(fwd, rl.Vector3{Z: 1}) > 1e-5 {
		t.Errorf("Identity forward should be +Z, got %v", fwd)
	}

	tr.Rotation = rl.Vector3{Y: 90}
	fwd = tr.Forward()
	if math.Abs(float64(fwd.X-1)) > 1e-4 || math.Abs(float64(fwd.Z)) > 1e-4 {
		t.Errorf("Yaw 90 should face +X, got %v", fwd)
	}
}

func TestTransformQuaternionRoundTrip(t *testing.T) {
	var tr Transform
	tr.Rotation = rl.Vector3{X: 10, Y: 35, Z: -20}
	q := tr.GetQuaternion()

	var back Transform
	back.SetQuaternion(q)
	if rl.Vector3Distance(back.Forward(), tr.Forward()) > 1e-4 {
		t.Errorf("Forward changed across quaternion round trip: %v vs %v", back.Forward(), tr.Forward())
	}
}

func TestLayerMask(t *testing.T) {
	m := MaskOf(0, 3, 40, -1)
	if !m.Contains(0) || !m.Contains(3) {
		t.Error("Mask should contain layers 0 and 3")
	}
	if m.Contains(1) || m.Contains(40) || m.Contains(-1) {
		t.Error("Mask should not contain unselected or out of range layers")
	}
	if !LayerEverything.Contains(31) || LayerNothing.Contains(0) {
		t.Error("Everything/Nothing masks misbehave")
	}
}

func TestEventInvoke(t *testing.T) {
	var scores EventWithArg[int]
	last, calls := 0, 0
	first := scores.AddListener(func(v int) { last = v })
	scores.AddListener(func(int) { calls++ })
	if id := scores.AddListener(nil); id != 0 {
		t.Errorf("nil listener should not be registered, got id %d", id)
	}
	scores.Invoke(3)
	if last != 3 || calls != 1 || scores.Len() != 2 {
		t.Errorf("Expected arg 3, one call and two listeners, got %d/%d/%d", last, calls, scores.Len())
	}

	if !scores.RemoveListener(first) || scores.RemoveListener(first) {
		t.Error("RemoveListener should succeed exactly once")
	}
	scores.Invoke(5)
	if last != 3 || calls != 2 {
		t.Errorf("Removed listener still called: last=%d calls=%d", last, calls)
	}

	scores.RemoveAllListeners()
	scores.Invoke(9)
	if calls != 2 {
		t.Error("Cleared listeners still called")
	}
}
