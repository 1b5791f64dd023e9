package game

import (
	"fmt"
	"time"

	scripts "vrgrab/assets/scripts"
	"vrgrab/internal/components"
	"vrgrab/internal/engine"
	"vrgrab/internal/world"
	"vrgrab/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Game is the desktop harness: a window, mouse and keyboard standing in
// for the headset, and debug drawing of the world.
type Game struct {
	World     *world.World
	Input     *DesktopInput
	Head      *engine.GameObject
	DebugMode bool
	Logger    *zap.Logger

	score *scripts.ScoreManager

	// Debug timing (ms)
	updateMs   float64
	drawMs     float64
	fixedSteps int
	drawn      int
}

// New wires a harness around a loaded world. headName names the camera object.
func New(w *world.World, headName string, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	head := w.Scene.FindByName(headName)
	if head == nil {
		return nil, fmt.Errorf("camera object %q not found", headName)
	}

	g := &Game{
		World:  w,
		Input:  NewDesktopInput(),
		Head:   head,
		Logger: logger,
	}
	w.BindDevices(g.Input.Devices())

	for _, obj := range w.Scene.GameObjects {
		if s := engine.GetComponent[*scripts.ScoreManager](obj); s != nil {
			g.score = s
			break
		}
	}
	return g, nil
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "vrgrab")
	defer rl.CloseWindow()

	rl.SetTargetFPS(90)
	rl.DisableCursor()

	g.World.Start()
	g.Logger.Info("harness started", zap.Int("objects", len(g.World.Scene.GameObjects)))

	for !rl.WindowShouldClose() {
		g.Update(rl.GetFrameTime())
		g.Draw()
	}
}

func (g *Game) Update(deltaTime float32) {
	updateStart := time.Now()

	g.Input.Poll(deltaTime)
	g.Head.Transform.Position = headOffset
	g.Head.Transform.Rotation = g.Input.HeadRotation()
	g.fixedSteps = g.World.Step(deltaTime)

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyR) && g.score != nil {
		g.score.Reset()
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// Camera is the raylib camera at the head's world pose.
func (g *Game) Camera() rl.Camera3D {
	pos := g.Head.WorldPosition()
	forward := engine.Transform{Rotation: g.Head.WorldRotation()}.Forward()
	return rl.Camera3D{
		Position:   pos,
		Target:     rl.Vector3Add(pos, forward),
		Up:         rl.Vector3{Y: 1},
		Fovy:       70,
		Projection: rl.CameraPerspective,
	}
}

func (g *Game) Draw() {
	camera := g.Camera()
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	frustum := ExtractFrustum(camera, aspect)

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	rl.DrawGrid(40, 0.5)
	g.drawn = 0
	for _, obj := range g.World.Scene.GameObjects {
		if drawObject(obj, &frustum) {
			g.drawn++
		}
	}
	for _, c := range g.World.Controllers() {
		drawController(c)
	}
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	rl.DrawText("Mouse to look and swing, wheel for reach, LMB aim-grab, RMB grip-grab, WASD move", 10, 10, 18, rl.LightGray)
	rl.DrawText("F1 debug view, R reset score", 10, 32, 18, rl.LightGray)
	rl.DrawFPS(10, 56)

	if g.score != nil {
		rl.DrawText(g.score.UIText, int32(rl.GetScreenWidth())-160, 10, 24, rl.Gold)
	}

	if !g.DebugMode {
		return
	}
	y := int32(84)
	line := func(color rl.Color, format string, args ...any) {
		rl.DrawText(fmt.Sprintf(format, args...), 10, y, 16, color)
		y += 20
	}
	line(rl.Green, "Update: %.2f ms  Draw: %.2f ms", g.updateMs, g.drawMs)
	line(rl.Green, "Fixed steps this frame: %d  Drawn: %d", g.fixedSteps, g.drawn)
	for _, node := range []xr.Node{xr.LeftHand, xr.RightHand} {
		c := g.World.Controller(node)
		if c == nil {
			continue
		}
		held := "-"
		if h := c.Held(); h != nil {
			held = fmt.Sprintf("%s (%s)", h.GetGameObject().Name, h.State())
		}
		peak := c.PeakAverageVelocity()
		line(rl.Yellow, "%s: held %s  samples %d  peak %.2f m/s",
			node, held, c.History().Len(), rl.Vector3Length(peak))
	}
	for _, obj := range g.World.Scene.GameObjects {
		grab, ok := components.AsGrabbable(obj)
		if !ok {
			continue
		}
		p := obj.Transform.Position
		line(rl.SkyBlue, "%s: %s  pos (%.2f, %.2f, %.2f)", obj.Name, grab.State(), p.X, p.Y, p.Z)
	}
}
