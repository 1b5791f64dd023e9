package main

import (
	"fmt"
	"math"

	scripts "vrgrab/assets/scripts"
	"vrgrab/internal/components"
	"vrgrab/internal/engine"
	"vrgrab/internal/world"
	"vrgrab/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

type throwOptions struct {
	Object       string  // grabbable to throw
	FPS          float64 // frame rate the hand is sampled at
	PeakSpeed    float32 // hand speed at release, m/s
	Elevation    float32 // degrees above horizontal
	SwingFrames  int
	FlightFrames int
}

func defaultThrowOptions() throwOptions {
	return throwOptions{
		Object:       "Ball",
		FPS:          90,
		PeakSpeed:    4,
		Elevation:    35,
		SwingFrames:  20,
		FlightFrames: 270,
	}
}

type throwResult struct {
	ReleaseVelocity rl.Vector3
	HandSpeeds      []float64
	Heights         []float64
	Landing         rl.Vector3
	Score           int
}

// runThrow drives the right hand through a scripted grab, swing and release
// of opts.Object in an already loaded world, then lets the object fly.
func runThrow(w *world.World, opts throwOptions, logger *zap.Logger) (throwResult, error) {
	var res throwResult
	if opts.FPS <= 0 || opts.SwingFrames < 1 {
		return res, fmt.Errorf("fps and swing frames must be positive")
	}

	obj := w.Scene.FindByName(opts.Object)
	grab, ok := components.AsGrabbable(obj)
	if !ok {
		return res, fmt.Errorf("%q is not a grabbable object", opts.Object)
	}
	hand := w.Controller(xr.RightHand)
	if hand == nil {
		return res, fmt.Errorf("scene has no right hand controller")
	}

	device := xr.NewScriptedDevice()
	w.BindDevices(map[xr.Node]xr.Device{xr.RightHand: device})
	w.Start()

	score := findScore(w.Scene)
	grab.OnRelease.AddListener(func(v rl.Vector3) { res.ReleaseVelocity = v })

	dt := float32(1 / opts.FPS)
	for i := 0; i < 10; i++ {
		w.Step(dt)
	}

	// Tracking space is the hand's parent (the rig)
	origin := rl.Vector3{}
	if parent := hand.GetGameObject().Parent; parent != nil {
		origin = parent.WorldPosition()
	}
	handPos := rl.Vector3Subtract(obj.WorldPosition(), origin)

	device.SetVector3(xr.DevicePosition, handPos)
	device.SetVector3(xr.DeviceVelocity, rl.Vector3{})
	device.SetVector3(xr.DeviceAngularVelocity, rl.Vector3{})
	device.SetBool(xr.GripButton, true)
	device.SetBool(xr.TriggerButton, false)
	w.Step(dt)
	if hand.Held() != grab {
		return res, fmt.Errorf("right hand could not reach %q", opts.Object)
	}

	dir := throwDirection(obj.WorldPosition(), w.Scene.FindByName("Hoop"), opts.Elevation)
	logger.Debug("swing", zap.Float32("peak", opts.PeakSpeed), zap.Any("direction", dir))

	// Accelerate linearly to the peak and let go on the fastest frame
	for i := 1; i <= opts.SwingFrames; i++ {
		speed := opts.PeakSpeed * float32(i) / float32(opts.SwingFrames)
		v := rl.Vector3Scale(dir, speed)
		handPos = rl.Vector3Add(handPos, rl.Vector3Scale(v, dt))
		device.SetVector3(xr.DevicePosition, handPos)
		device.SetVector3(xr.DeviceVelocity, v)
		device.SetVector3(xr.DeviceAngularVelocity, rl.Vector3{X: -2 * float32(i) / float32(opts.SwingFrames)})
		if i == opts.SwingFrames {
			device.SetBool(xr.GripButton, false)
		}
		w.Step(dt)
		res.HandSpeeds = append(res.HandSpeeds, float64(speed))
		res.Heights = append(res.Heights, float64(obj.Transform.Position.Y))
	}

	// Deferred release lands on the next fixed step; keep the hand still
	device.SetVector3(xr.DeviceVelocity, rl.Vector3{})
	for i := 0; i < opts.FlightFrames; i++ {
		w.Step(dt)
		res.HandSpeeds = append(res.HandSpeeds, 0)
		res.Heights = append(res.Heights, float64(obj.Transform.Position.Y))
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil && rb.IsSleeping {
			break
		}
	}

	if grab.IsHeld() {
		return res, fmt.Errorf("%q was never released", opts.Object)
	}
	res.Landing = obj.Transform.Position
	if score != nil {
		res.Score = score.Score
	}
	return res, nil
}

// throwDirection aims from start toward the hoop's heading, tilted up by
// elevation degrees. Without a hoop the throw goes down +Z.
func throwDirection(start rl.Vector3, hoop *engine.GameObject, elevation float32) rl.Vector3 {
	heading := rl.Vector3{Z: 1}
	if hoop != nil {
		h := rl.Vector3Subtract(hoop.WorldPosition(), start)
		h.Y = 0
		if rl.Vector3Length(h) > 1e-4 {
			heading = rl.Vector3Normalize(h)
		}
	}
	rad := float64(elevation) * math.Pi / 180
	horizontal := rl.Vector3Scale(heading, float32(math.Cos(rad)))
	return rl.Vector3Add(horizontal, rl.Vector3{Y: float32(math.Sin(rad))})
}

func findScore(scene *engine.Scene) *scripts.ScoreManager {
	for _, obj := range scene.GameObjects {
		if s := engine.GetComponent[*scripts.ScoreManager](obj); s != nil {
			return s
		}
	}
	return nil
}
