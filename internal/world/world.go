package world

import (
	"vrgrab/internal/components"
	"vrgrab/internal/config"
	"vrgrab/internal/engine"
	"vrgrab/internal/physics"
	"vrgrab/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const (
	DefaultFixedDt       = float32(config.DefaultFixedDt)
	DefaultMaxFixedSteps = config.DefaultMaxFixedSteps
)

// World owns the scene and its physics and steps them at two rates:
// component Update once per frame, FixedUpdate and physics once per fixed step.
type World struct {
	Scene   *engine.Scene
	Physics *physics.PhysicsWorld

	FixedDt       float32
	MaxFixedSteps int

	// ScriptDefaults supplies props for scene scripts; scene props win.
	// Controllers are keyed "XRController/<node>".
	ScriptDefaults map[string]map[string]any

	Logger *zap.Logger

	accumulator float64
	time        float64
	fixedSteps  uint64
	started     bool
	destroyed   []*engine.GameObject
}

var _ engine.WorldAccess = (*World)(nil)

func New(logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &World{
		Scene:         engine.NewScene("Main"),
		Physics:       physics.NewPhysicsWorld(),
		FixedDt:       DefaultFixedDt,
		MaxFixedSteps: DefaultMaxFixedSteps,
		Logger:        logger,
	}
	w.Physics.Logger = logger.Named("physics")
	w.Scene.World = w
	return w
}

// Configure applies the physics section and script defaults of cfg.
func (w *World) Configure(cfg *config.Config) {
	p := cfg.Physics
	w.FixedDt = float32(p.FixedDt)
	w.MaxFixedSteps = p.MaxFixedSteps
	w.Physics.Gravity = rl.Vector3{X: float32(p.Gravity[0]), Y: float32(p.Gravity[1]), Z: float32(p.Gravity[2])}
	w.Physics.UseFloor = p.UseFloor
	w.Physics.FloorHeight = float32(p.FloorHeight)
	w.ScriptDefaults = cfg.ScriptDefaults()
}

// Start starts every object in the scene. Objects spawned afterwards start on spawn.
func (w *World) Start() {
	w.Scene.Start()
	w.started = true
}

// Step advances one rendered frame and returns how many fixed steps ran.
//
// Frame work (input sampling, selection, release requests) runs first. Each
// fixed step then runs FixedUpdate on every component before the physics
// world integrates, so a deferred release clears kinematic and writes its
// velocity ahead of the integration that uses it.
func (w *World) Step(frameDt float32) int {
	if frameDt < 0 {
		frameDt = 0
	}
	w.time += float64(frameDt)
	w.Scene.Update(frameDt)

	w.accumulator += float64(frameDt)
	fixed := float64(w.FixedDt)
	steps := 0
	for w.accumulator >= fixed && steps < w.MaxFixedSteps {
		w.Scene.FixedUpdate(w.FixedDt)
		w.Physics.Update(w.FixedDt)
		w.accumulator -= fixed
		w.fixedSteps++
		steps++
	}
	if w.accumulator >= fixed {
		w.Logger.Debug("dropping simulation time",
			zap.Float64("behind", w.accumulator),
			zap.Int("maxFixedSteps", w.MaxFixedSteps))
		w.accumulator = 0
	}

	w.flushDestroyed()
	return steps
}

// Time is the total frame time stepped so far, in seconds.
func (w *World) Time() float64 {
	return w.time
}

// FixedSteps is the number of fixed steps run so far.
func (w *World) FixedSteps() uint64 {
	return w.fixedSteps
}

// Alpha is how far the simulation is into the next fixed step, for interpolation.
func (w *World) Alpha() float32 {
	if w.FixedDt <= 0 {
		return 0
	}
	return float32(w.accumulator / float64(w.FixedDt))
}

// SpawnObject adds g to the scene and the physics world.
func (w *World) SpawnObject(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	w.Physics.AddObject(g)
	if w.started {
		g.Start()
	}
}

// Destroy removes g and its children at the end of the current step.
func (w *World) Destroy(g *engine.GameObject) {
	if g == nil {
		return
	}
	w.destroyed = append(w.destroyed, g)
}

func (w *World) flushDestroyed() {
	for _, g := range w.destroyed {
		w.removeFromPhysics(g)
		w.Scene.RemoveGameObject(g)
	}
	w.destroyed = w.destroyed[:0]
}

func (w *World) removeFromPhysics(g *engine.GameObject) {
	for _, child := range g.Children {
		w.removeFromPhysics(child)
	}
	w.Physics.RemoveObject(g)
}

func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, mask engine.LayerMask) (engine.RaycastResult, bool) {
	return w.Physics.Raycast(origin, direction, maxDistance, mask)
}

func (w *World) OverlapSphere(center rl.Vector3, radius float32, mask engine.LayerMask, maxResults int) []*engine.GameObject {
	return w.Physics.OverlapSphere(center, radius, mask, maxResults)
}

// Controllers returns every XRController in the scene.
func (w *World) Controllers() []*components.XRController {
	var out []*components.XRController
	for _, g := range w.Scene.GameObjects {
		if c := engine.GetComponent[*components.XRController](g); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Controller returns the first controller bound to node, or nil.
func (w *World) Controller(node xr.Node) *components.XRController {
	for _, c := range w.Controllers() {
		if c.Node == node {
			return c
		}
	}
	return nil
}

// BindDevices attaches a tracking source to each controller by node.
// Controllers whose node has no device keep reading as untracked.
func (w *World) BindDevices(devices map[xr.Node]xr.Device) {
	for _, c := range w.Controllers() {
		if d, ok := devices[c.Node]; ok {
			c.Device = d
		}
	}
}
