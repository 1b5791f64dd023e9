package game

import (
	"vrgrab/internal/components"
	"vrgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorStatic  = rl.NewColor(90, 90, 110, 255)
	colorTrigger = rl.NewColor(80, 200, 120, 120)
	colorBody    = rl.Orange
	colorHeld    = rl.Gold
	colorHand    = rl.SkyBlue
	colorAimHit  = rl.Lime
	colorAimMiss = rl.NewColor(200, 200, 200, 160)
)

// drawObject draws g's collider as a primitive. Returns false when culled.
func drawObject(g *engine.GameObject, frustum *Frustum) bool {
	if !g.Active {
		return false
	}

	color := colorStatic
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
		color = colorBody
	}
	if grab, ok := components.AsGrabbable(g); ok && grab.IsHeld() {
		color = colorHeld
	}

	if box := engine.GetComponent[*components.BoxCollider](g); box != nil {
		size := box.GetWorldSize()
		center := box.GetCenter()
		if !frustum.ContainsSphere(center, rl.Vector3Length(size)/2) {
			return false
		}
		if box.IsTrigger {
			rl.DrawCubeWiresV(center, size, colorTrigger)
		} else {
			rl.DrawCubeV(center, size, color)
			rl.DrawCubeWiresV(center, size, rl.Fade(rl.Black, 0.4))
		}
		return true
	}

	if sphere := engine.GetComponent[*components.SphereCollider](g); sphere != nil {
		center := sphere.GetCenter()
		radius := sphere.GetWorldRadius()
		if !frustum.ContainsSphere(center, radius) {
			return false
		}
		if sphere.IsTrigger {
			rl.DrawSphereWires(center, radius, 8, 8, colorTrigger)
		} else {
			rl.DrawSphere(center, radius, color)
		}
		return true
	}
	return false
}

func drawController(c *components.XRController) {
	pos := c.Position()
	rl.DrawSphere(pos, 0.035, colorHand)

	aim := engine.GetComponent[*components.AimLine](c.GetGameObject())
	if aim == nil || aim.Collapsed() {
		return
	}
	color := colorAimMiss
	if aim.Hit {
		color = colorAimHit
		rl.DrawSphere(aim.To, 0.02, colorAimHit)
	}
	rl.DrawLine3D(aim.From, aim.To, color)
}
