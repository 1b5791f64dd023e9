package scripts

import (
	"fmt"

	"vrgrab/internal/components"
	"vrgrab/internal/engine"

	"go.uber.org/zap"
)

func init() {
	engine.RegisterScript("ScoreManager", func(props map[string]any) engine.Component {
		return &ScoreManager{Points: engine.PropInt(props, "points", 1)}
	})
}

// ScoreManager counts thrown objects passing through its trigger volume.
// Put it on a GameObject with a trigger collider (a hoop, a bin).
type ScoreManager struct {
	engine.BaseComponent

	Score  int
	Points int // awarded per basket

	// UIText mirrors the score for the HUD.
	UIText string

	OnScoreChanged engine.EventWithArg[int]

	Logger *zap.Logger
}

func (s *ScoreManager) SetLogger(l *zap.Logger) { s.Logger = l }

func (s *ScoreManager) Start() {
	if s.Points == 0 {
		s.Points = 1
	}
	s.UpdateScoreDisplay()
}

// OnTriggerEnter scores a grabbable that enters free. Objects still in a
// hand, including ones whose release hasn't reached physics yet, don't count.
func (s *ScoreManager) OnTriggerEnter(other *engine.GameObject) {
	grabbable, ok := components.AsGrabbable(other)
	if !ok || grabbable.IsHeld() {
		return
	}
	s.AddScore(s.Points, other.Name)
}

func (s *ScoreManager) OnTriggerExit(other *engine.GameObject) {}

func (s *ScoreManager) AddScore(points int, source string) {
	s.Score += points
	s.UpdateScoreDisplay()
	if s.Logger != nil {
		s.Logger.Info("score", zap.Int("score", s.Score), zap.Int("points", points), zap.String("by", source))
	}
	s.OnScoreChanged.Invoke(s.Score)
}

func (s *ScoreManager) Reset() {
	s.Score = 0
	s.UpdateScoreDisplay()
	s.OnScoreChanged.Invoke(s.Score)
}

func (s *ScoreManager) UpdateScoreDisplay() {
	s.UIText = fmt.Sprintf("Score: %d", s.Score)
}
