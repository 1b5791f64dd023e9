package engine

import "testing"

func rangeScene() (*Scene, map[string]*GameObject) {
	scene := NewScene("Range")
	objs := map[string]*GameObject{}
	for _, name := range []string{"Rig", "LeftHand", "RightHand", "Ball", "Block"} {
		objs[name] = NewGameObject(name)
		scene.AddGameObject(objs[name])
	}
	objs["Rig"].AddChild(objs["LeftHand"])
	objs["Rig"].AddChild(objs["RightHand"])
	objs["Ball"].Tags = []string{"throwable", "round"}
	objs["Block"].Tags = []string{"throwable"}
	return scene, objs
}

func TestSceneLookups(t *testing.T) {
	scene, objs := rangeScene()

	for name, obj := range objs {
		if obj.Scene != scene {
			t.Errorf("%s: Scene not set", name)
		}
		if scene.FindByUID(obj.UID) != obj {
			t.Errorf("%s: FindByUID mismatch", name)
		}
		if scene.FindByName(name) != obj {
			t.Errorf("%s: FindByName mismatch", name)
		}
	}
	if scene.FindByUID(1<<62) != nil || scene.FindByName("Hoop") != nil {
		t.Error("Lookups for unknown objects should return nil")
	}

	if n := len(scene.FindByTag("throwable")); n != 2 {
		t.Errorf("Expected 2 throwables, got %d", n)
	}
	if n := len(scene.FindByTag("round")); n != 1 {
		t.Errorf("Expected 1 round object, got %d", n)
	}
	if n := len(scene.FindByTag("missing")); n != 0 {
		t.Errorf("Expected no match, got %d", n)
	}
}

func TestSceneRemoveTakesDescendants(t *testing.T) {
	scene, objs := rangeScene()

	scene.RemoveGameObject(objs["Rig"])

	if len(scene.GameObjects) != 2 {
		t.Fatalf("Expected Ball and Block to remain, got %d objects", len(scene.GameObjects))
	}
	for _, name := range []string{"Rig", "LeftHand", "RightHand"} {
		if scene.FindByUID(objs[name].UID) != nil || objs[name].Scene != nil {
			t.Errorf("%s still registered after removal", name)
		}
	}
	if scene.FindByName("Ball") != objs["Ball"] {
		t.Error("Unrelated object removed")
	}
}

func TestSceneRemoveChildDetaches(t *testing.T) {
	scene, objs := rangeScene()

	scene.RemoveGameObject(objs["LeftHand"])

	rig := objs["Rig"]
	if len(rig.Children) != 1 || rig.Children[0] != objs["RightHand"] {
		t.Errorf("Rig should keep only RightHand, got %d children", len(rig.Children))
	}
	if objs["LeftHand"].Parent != nil {
		t.Error("Removed child should have no parent")
	}
	if len(scene.GameObjects) != 4 {
		t.Errorf("Expected 4 objects, got %d", len(scene.GameObjects))
	}
}

func TestSceneAddWithoutUIDMap(t *testing.T) {
	scene := &Scene{Name: "Bare"}
	obj := NewGameObject("Ball")
	scene.AddGameObject(obj)
	if scene.FindByUID(obj.UID) != obj {
		t.Error("AddGameObject should create the UID map on demand")
	}
}

func TestSceneFixedUpdateReachesAllObjects(t *testing.T) {
	scene := NewScene("Test")
	a, b := NewGameObject("A"), NewGameObject("B")
	fa, fb := &fixedCounter{}, &fixedCounter{}
	a.AddComponent(fa)
	b.AddComponent(fb)
	scene.AddGameObject(a)
	scene.AddGameObject(b)

	scene.FixedUpdate(0.02)

	if fa.steps != 1 || fb.steps != 1 {
		t.Errorf("Expected one fixed step each, got %d and %d", fa.steps, fb.steps)
	}
}
