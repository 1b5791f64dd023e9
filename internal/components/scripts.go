package components

import (
	"vrgrab/internal/engine"
	"vrgrab/internal/xr"
)

func init() {
	engine.RegisterScript("XRController", xrControllerFactory)
	engine.RegisterScript("Grabbable", grabbableFactory)
}

// xrControllerFactory builds a controller without a device; the world binds
// devices by node after the scene is loaded.
func xrControllerFactory(props map[string]any) engine.Component {
	node, ok := xr.ParseNode(engine.PropString(props, "node", "right"))
	if !ok {
		node = xr.RightHand
	}
	c := NewXRController(node, nil)
	c.MaxDistance = engine.PropFloat(props, "maxDistance", c.MaxDistance)
	c.GrabRadius = engine.PropFloat(props, "grabRadius", c.GrabRadius)
	c.GrabScanLimit = engine.PropInt(props, "grabScanLimit", c.GrabScanLimit)
	c.VelocityBufferDuration = float64(engine.PropFloat(props, "velocityBufferDuration", float32(c.VelocityBufferDuration)))
	c.PickVelocityCount = engine.PropInt(props, "pickVelocityCount", c.PickVelocityCount)
	c.MovementSpeed = engine.PropFloat(props, "movementSpeed", c.MovementSpeed)
	if layers, ok := props["interactableLayers"].([]any); ok {
		var ids []int
		for _, l := range layers {
			ids = append(ids, engine.PropInt(map[string]any{"l": l}, "l", -1))
		}
		c.InteractableLayers = engine.MaskOf(ids...)
	}
	return c
}

func grabbableFactory(props map[string]any) engine.Component {
	g := NewGrabbable()
	g.ThrowPower = engine.PropFloat(props, "throwPower", g.ThrowPower)
	g.DeferRelease = engine.PropBool(props, "deferRelease", g.DeferRelease)
	if src, err := ParseVelocitySource(engine.PropString(props, "velocitySource", "peak")); err == nil {
		g.VelocitySource = src
	}
	return g
}
