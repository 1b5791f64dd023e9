package scripts

import (
	"vrgrab/internal/components"
	"vrgrab/internal/engine"
)

func init() {
	engine.RegisterScript("Target", func(props map[string]any) engine.Component {
		return &Target{
			Points:         engine.PropInt(props, "points", 3),
			ScoreBoardName: engine.PropString(props, "scoreBoard", ""),
		}
	})
}

// Target is knocked out by a thrown object: it awards its points to the
// ScoreManager on ScoreBoard and removes itself from the world.
type Target struct {
	engine.BaseComponent

	Points         int
	ScoreBoard     engine.GameObjectRef
	ScoreBoardName string // resolved into ScoreBoard on Start

	knocked bool
}

func (t *Target) Start() {
	g := t.GetGameObject()
	if g == nil || g.Scene == nil || t.ScoreBoard.IsValid() || t.ScoreBoardName == "" {
		return
	}
	t.ScoreBoard.Set(g.Scene.FindByName(t.ScoreBoardName))
}

func (t *Target) OnCollisionEnter(other *engine.GameObject) {
	if t.knocked {
		return
	}
	grabbable, ok := components.AsGrabbable(other)
	if !ok || grabbable.IsHeld() {
		return
	}
	t.knocked = true

	g := t.GetGameObject()
	if board := engine.GetComponent[*ScoreManager](t.ScoreBoard.Get(g.Scene)); board != nil {
		board.AddScore(t.Points, other.Name)
	}
	if g.Scene != nil && g.Scene.World != nil {
		g.Scene.World.Destroy(g)
	}
}

func (t *Target) OnCollisionExit(other *engine.GameObject) {}

// Knocked reports whether the target has been hit.
func (t *Target) Knocked() bool {
	return t.knocked
}
