package main

import (
	"testing"

	"vrgrab/internal/components"
	"vrgrab/internal/config"
	"vrgrab/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func loadedRange(t *testing.T) *world.World {
	t.Helper()
	w := world.New(zap.NewNop())
	w.Configure(config.DefaultConfig())
	require.NoError(t, w.LoadSceneData(world.DefaultScene))
	return w
}

func TestRunThrowReleasesForward(t *testing.T) {
	w := loadedRange(t)
	opts := defaultThrowOptions()

	res, err := runThrow(w, opts, zap.NewNop())
	require.NoError(t, err)

	speed := rl.Vector3Length(res.ReleaseVelocity)
	assert.Greater(t, speed, float32(0))
	// Peak average never exceeds the fastest sample
	assert.LessOrEqual(t, speed, opts.PeakSpeed*components.DefaultThrowPower+1e-3)
	assert.Greater(t, res.ReleaseVelocity.Y, float32(0))
	assert.Greater(t, res.Landing.Z, float32(1.0))

	require.NotEmpty(t, res.HandSpeeds)
	assert.Len(t, res.Heights, len(res.HandSpeeds))
	assert.InDelta(t, float64(opts.PeakSpeed), res.HandSpeeds[opts.SwingFrames-1], 1e-6)
}

func TestRunThrowPowerScalesRelease(t *testing.T) {
	opts := defaultThrowOptions()
	opts.FlightFrames = 5

	soft := loadedRange(t)
	grab, _ := components.AsGrabbable(soft.Scene.FindByName("Ball"))
	grab.ThrowPower = 1
	softRes, err := runThrow(soft, opts, zap.NewNop())
	require.NoError(t, err)

	hard := loadedRange(t)
	grab, _ = components.AsGrabbable(hard.Scene.FindByName("Ball"))
	grab.ThrowPower = 2
	hardRes, err := runThrow(hard, opts, zap.NewNop())
	require.NoError(t, err)

	assert.InDelta(t, 2*rl.Vector3Length(softRes.ReleaseVelocity), rl.Vector3Length(hardRes.ReleaseVelocity), 1e-3)
}

func TestRunThrowRejectsBadInput(t *testing.T) {
	opts := defaultThrowOptions()
	opts.Object = "Table"
	_, err := runThrow(loadedRange(t), opts, zap.NewNop())
	assert.ErrorContains(t, err, "not a grabbable")

	opts = defaultThrowOptions()
	opts.FPS = 0
	_, err = runThrow(loadedRange(t), opts, zap.NewNop())
	assert.Error(t, err)
}

func TestThrowDirectionElevation(t *testing.T) {
	flat := throwDirection(rl.Vector3{}, nil, 0)
	assert.InDelta(t, 1, flat.Z, 1e-6)
	assert.InDelta(t, 0, flat.Y, 1e-6)

	steep := throwDirection(rl.Vector3{}, nil, 90)
	assert.InDelta(t, 1, steep.Y, 1e-6)
	assert.InDelta(t, 1, rl.Vector3Length(throwDirection(rl.Vector3{}, nil, 35)), 1e-5)
}
