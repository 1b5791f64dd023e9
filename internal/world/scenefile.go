package world

import (
	_ "embed"
	"fmt"
	"os"

	"vrgrab/internal/components"
	"vrgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultScene is the built-in throwing range.
//
//go:embed scenes/range.yaml
var DefaultScene []byte

// --- YAML types ---

type SceneFile struct {
	Name    string      `yaml:"name"`
	Objects []ObjectDef `yaml:"objects"`
}

type ObjectDef struct {
	Name       string      `yaml:"name"`
	Parent     string      `yaml:"parent,omitempty"`
	Tags       []string    `yaml:"tags,omitempty"`
	Layer      int         `yaml:"layer,omitempty"`
	Position   [3]float32  `yaml:"position"`
	Rotation   [3]float32  `yaml:"rotation"`
	Scale      [3]float32  `yaml:"scale"`
	Components []yaml.Node `yaml:"components"`
}

type componentHeader struct {
	Type string `yaml:"type"`
}

type boxColliderDef struct {
	Size      [3]float32 `yaml:"size"`
	Offset    [3]float32 `yaml:"offset"`
	IsTrigger bool       `yaml:"isTrigger"`
}

type sphereColliderDef struct {
	Radius    float32    `yaml:"radius"`
	Offset    [3]float32 `yaml:"offset"`
	IsTrigger bool       `yaml:"isTrigger"`
}

type rigidbodyDef struct {
	Mass        float32  `yaml:"mass"`
	Bounciness  *float32 `yaml:"bounciness"`
	Friction    *float32 `yaml:"friction"`
	UseGravity  *bool    `yaml:"useGravity"`
	IsKinematic bool     `yaml:"isKinematic"`
	CanSleep    *bool    `yaml:"canSleep"`
}

type characterControllerDef struct {
	Height float32 `yaml:"height"`
	Radius float32 `yaml:"radius"`
}

type scriptDef struct {
	Name  string         `yaml:"name"`
	Props map[string]any `yaml:"props"`
}

// controllerRefs are the names an XRController's injected collaborators are
// resolved from once every object exists.
type controllerRefs struct {
	controller *components.XRController
	camera     string
	character  string
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// --- Loading ---

func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	if err := w.LoadSceneData(data); err != nil {
		return fmt.Errorf("load scene %s: %w", path, err)
	}
	return nil
}

// LoadSceneData builds objects from a YAML scene and adds them to the world.
// Parents, camera and character references are resolved by object name after
// every object has been created.
func (w *World) LoadSceneData(data []byte) error {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}
	if sf.Name != "" {
		w.Scene.Name = sf.Name
	}

	byName := make(map[string]*engine.GameObject, len(sf.Objects))
	var refs []controllerRefs
	objects := make([]*engine.GameObject, 0, len(sf.Objects))

	for _, objDef := range sf.Objects {
		if objDef.Name == "" {
			return fmt.Errorf("object without a name")
		}
		if _, dup := byName[objDef.Name]; dup {
			return fmt.Errorf("duplicate object %q", objDef.Name)
		}

		g := engine.NewGameObject(objDef.Name)
		g.Tags = objDef.Tags
		g.Layer = objDef.Layer
		g.Transform.Position = vec3(objDef.Position)
		g.Transform.Rotation = vec3(objDef.Rotation)

		// Default scale to 1 if zero
		if objDef.Scale == [3]float32{} {
			g.Transform.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
		} else {
			g.Transform.Scale = vec3(objDef.Scale)
		}

		for i := range objDef.Components {
			ref, err := w.loadComponent(g, &objDef.Components[i])
			if err != nil {
				return fmt.Errorf("object %q: %w", objDef.Name, err)
			}
			if ref != nil {
				refs = append(refs, *ref)
			}
		}

		byName[objDef.Name] = g
		objects = append(objects, g)
	}

	for i, objDef := range sf.Objects {
		if objDef.Parent == "" {
			continue
		}
		parent, ok := byName[objDef.Parent]
		if !ok {
			return fmt.Errorf("object %q: unknown parent %q", objDef.Name, objDef.Parent)
		}
		if !parent.AddChild(objects[i]) {
			return fmt.Errorf("object %q: parent %q would form a cycle", objDef.Name, objDef.Parent)
		}
	}

	for _, ref := range refs {
		if err := resolveRef(&ref.controller.Camera, byName, ref.camera); err != nil {
			return fmt.Errorf("camera: %w", err)
		}
		if err := resolveRef(&ref.controller.Character, byName, ref.character); err != nil {
			return fmt.Errorf("character: %w", err)
		}
	}

	for _, g := range objects {
		w.injectLogger(g)
		w.SpawnObject(g)
	}

	w.Logger.Info("scene loaded",
		zap.String("scene", w.Scene.Name),
		zap.Int("objects", len(objects)),
		zap.Int("bodies", len(w.Physics.Bodies)),
		zap.Int("controllers", len(refs)))
	return nil
}

func resolveRef(ref *engine.GameObjectRef, byName map[string]*engine.GameObject, name string) error {
	if name == "" {
		return nil
	}
	g, ok := byName[name]
	if !ok {
		return fmt.Errorf("unknown object %q", name)
	}
	ref.Set(g)
	return nil
}

type loggerSetter interface {
	SetLogger(l *zap.Logger)
}

func (w *World) injectLogger(g *engine.GameObject) {
	for _, c := range g.Components() {
		if s, ok := c.(loggerSetter); ok {
			s.SetLogger(w.Logger.With(zap.String("object", g.Name)))
		}
	}
}

func (w *World) loadComponent(g *engine.GameObject, node *yaml.Node) (*controllerRefs, error) {
	var header componentHeader
	if err := node.Decode(&header); err != nil {
		return nil, err
	}

	switch header.Type {
	case "BoxCollider":
		var def boxColliderDef
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("BoxCollider: %w", err)
		}
		col := components.NewBoxCollider(vec3(def.Size))
		col.Offset = vec3(def.Offset)
		col.IsTrigger = def.IsTrigger
		g.AddComponent(col)

	case "SphereCollider":
		var def sphereColliderDef
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("SphereCollider: %w", err)
		}
		col := components.NewSphereCollider(def.Radius)
		col.Offset = vec3(def.Offset)
		col.IsTrigger = def.IsTrigger
		g.AddComponent(col)

	case "Rigidbody":
		var def rigidbodyDef
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("Rigidbody: %w", err)
		}
		g.AddComponent(newRigidbody(def))

	case "CharacterController":
		var def characterControllerDef
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("CharacterController: %w", err)
		}
		cc := components.NewCharacterController()
		if def.Height > 0 {
			cc.Height = def.Height
		}
		if def.Radius > 0 {
			cc.Radius = def.Radius
		}
		g.AddComponent(cc)

	case "Script":
		var def scriptDef
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("Script: %w", err)
		}
		return w.loadScript(g, def)

	default:
		return nil, fmt.Errorf("unknown component type %q", header.Type)
	}
	return nil, nil
}

func newRigidbody(def rigidbodyDef) *components.Rigidbody {
	rb := components.NewRigidbody()
	if def.Mass > 0 {
		rb.Mass = def.Mass
	}
	if def.Bounciness != nil {
		rb.Bounciness = *def.Bounciness
	}
	if def.Friction != nil {
		rb.Friction = *def.Friction
	}
	if def.UseGravity != nil {
		rb.UseGravity = *def.UseGravity
	}
	if def.CanSleep != nil {
		rb.CanSleep = *def.CanSleep
	}
	rb.IsKinematic = def.IsKinematic
	return rb
}

func (w *World) loadScript(g *engine.GameObject, def scriptDef) (*controllerRefs, error) {
	props := w.scriptProps(def.Name, def.Props)
	comp := engine.CreateScript(def.Name, props)
	if comp == nil {
		return nil, fmt.Errorf("unknown script %q", def.Name)
	}
	g.AddComponent(comp)

	c, ok := comp.(*components.XRController)
	if !ok {
		return nil, nil
	}
	return &controllerRefs{
		controller: c,
		camera:     engine.PropString(props, "camera", ""),
		character:  engine.PropString(props, "character", ""),
	}, nil
}

// scriptProps layers the scene's props over the configured defaults.
func (w *World) scriptProps(name string, props map[string]any) map[string]any {
	key := name
	if name == "XRController" {
		key = name + "/" + engine.PropString(props, "node", "right")
	}
	defaults := w.ScriptDefaults[key]
	merged := make(map[string]any, len(defaults)+len(props))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}
	return merged
}
