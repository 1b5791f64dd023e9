package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFixedDt                = 1.0 / 50.0
	DefaultMaxFixedSteps          = 5
	DefaultGravity                = -9.81
	DefaultMaxDistance            = 10.0
	DefaultGrabRadius             = 0.15
	DefaultGrabScanLimit          = 10
	DefaultVelocityBufferDuration = 0.25
	DefaultPickVelocityCount      = 10
	DefaultMovementSpeed          = 5.0
	DefaultThrowPower             = 1.5
	DefaultVelocitySource         = "peak"
	DefaultLogLevel               = "info"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Log         LogConfig          `yaml:"log"`
	Physics     PhysicsConfig      `yaml:"physics"`
	Controllers []ControllerConfig `yaml:"controllers"`
	Grabbable   GrabbableConfig    `yaml:"grabbable"`
	Scene       string             `yaml:"scene"` // empty = built-in range
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
	// File adds a rotating JSON log next to the console output.
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

type PhysicsConfig struct {
	FixedDt       float64    `yaml:"fixed_dt"`
	MaxFixedSteps int        `yaml:"max_fixed_steps"`
	Gravity       [3]float64 `yaml:"gravity"`
	UseFloor      bool       `yaml:"use_floor"`
	FloorHeight   float64    `yaml:"floor_height"`
}

type ControllerConfig struct {
	Node                   string  `yaml:"node"`
	MaxDistance            float64 `yaml:"max_distance"`
	InteractableLayers     []int   `yaml:"interactable_layers,omitempty"` // empty = all
	GrabRadius             float64 `yaml:"grab_radius"`
	GrabScanLimit          int     `yaml:"grab_scan_limit"`
	VelocityBufferDuration float64 `yaml:"velocity_buffer_duration"`
	PickVelocityCount      int     `yaml:"pick_velocity_count"`
	MovementSpeed          float64 `yaml:"movement_speed"`
}

type GrabbableConfig struct {
	ThrowPower     float64 `yaml:"throw_power"`
	VelocitySource string  `yaml:"velocity_source"`
	DeferRelease   bool    `yaml:"defer_release"`
}

func DefaultController(node string) ControllerConfig {
	return ControllerConfig{
		Node:                   node,
		MaxDistance:            DefaultMaxDistance,
		GrabRadius:             DefaultGrabRadius,
		GrabScanLimit:          DefaultGrabScanLimit,
		VelocityBufferDuration: DefaultVelocityBufferDuration,
		PickVelocityCount:      DefaultPickVelocityCount,
		MovementSpeed:          DefaultMovementSpeed,
	}
}

// UnmarshalYAML fills fields missing from a controllers entry with the defaults.
func (c *ControllerConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain ControllerConfig
	p := plain(DefaultController(""))
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = ControllerConfig(p)
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: DefaultLogLevel},
		Physics: PhysicsConfig{
			FixedDt:       DefaultFixedDt,
			MaxFixedSteps: DefaultMaxFixedSteps,
			Gravity:       [3]float64{0, DefaultGravity, 0},
			UseFloor:      true,
		},
		Controllers: []ControllerConfig{
			DefaultController("left"),
			DefaultController("right"),
		},
		Grabbable: GrabbableConfig{
			ThrowPower:     DefaultThrowPower,
			VelocitySource: DefaultVelocitySource,
			DeferRelease:   true,
		},
	}
}

// Load reads a YAML config on top of the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		invalid("log.level %q", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		invalid("log rotation limits must not be negative")
	}

	if c.Physics.FixedDt <= 0 {
		invalid("physics.fixed_dt must be positive, got %v", c.Physics.FixedDt)
	}
	if c.Physics.MaxFixedSteps < 1 {
		invalid("physics.max_fixed_steps must be at least 1, got %d", c.Physics.MaxFixedSteps)
	}

	seen := make(map[string]bool)
	for i, ctrl := range c.Controllers {
		switch ctrl.Node {
		case "left", "right":
		default:
			invalid("controllers[%d].node %q", i, ctrl.Node)
		}
		if seen[ctrl.Node] {
			invalid("controllers[%d]: duplicate node %q", i, ctrl.Node)
		}
		seen[ctrl.Node] = true

		if ctrl.MaxDistance <= 0 {
			invalid("controllers[%d].max_distance must be positive", i)
		}
		if ctrl.GrabRadius < 0 {
			invalid("controllers[%d].grab_radius must not be negative", i)
		}
		if ctrl.GrabScanLimit < 1 {
			invalid("controllers[%d].grab_scan_limit must be at least 1", i)
		}
		if ctrl.VelocityBufferDuration <= 0 {
			invalid("controllers[%d].velocity_buffer_duration must be positive", i)
		}
		if ctrl.PickVelocityCount < 1 {
			invalid("controllers[%d].pick_velocity_count must be at least 1", i)
		}
		for _, l := range ctrl.InteractableLayers {
			if l < 0 || l >= 32 {
				invalid("controllers[%d]: layer %d out of range", i, l)
			}
		}
	}

	if c.Grabbable.ThrowPower < 0 {
		invalid("grabbable.throw_power must not be negative")
	}
	switch c.Grabbable.VelocitySource {
	case "direct", "average", "peak":
	default:
		invalid("grabbable.velocity_source %q", c.Grabbable.VelocitySource)
	}

	return errors.Join(errs...)
}

// Controller returns the settings for node, falling back to the defaults.
func (c *Config) Controller(node string) ControllerConfig {
	for _, ctrl := range c.Controllers {
		if ctrl.Node == node {
			return ctrl
		}
	}
	return DefaultController(node)
}

// Props converts the controller settings to script props.
func (c ControllerConfig) Props() map[string]any {
	props := map[string]any{
		"node":                   c.Node,
		"maxDistance":            c.MaxDistance,
		"grabRadius":             c.GrabRadius,
		"grabScanLimit":          c.GrabScanLimit,
		"velocityBufferDuration": c.VelocityBufferDuration,
		"pickVelocityCount":      c.PickVelocityCount,
		"movementSpeed":          c.MovementSpeed,
	}
	if len(c.InteractableLayers) > 0 {
		layers := make([]any, len(c.InteractableLayers))
		for i, l := range c.InteractableLayers {
			layers[i] = l
		}
		props["interactableLayers"] = layers
	}
	return props
}

func (g GrabbableConfig) Props() map[string]any {
	return map[string]any{
		"throwPower":     g.ThrowPower,
		"velocitySource": g.VelocitySource,
		"deferRelease":   g.DeferRelease,
	}
}

// ScriptDefaults returns per-script default props for the scene loader.
// Controllers are keyed "XRController/<node>".
func (c *Config) ScriptDefaults() map[string]map[string]any {
	defaults := map[string]map[string]any{
		"Grabbable": c.Grabbable.Props(),
	}
	for _, ctrl := range c.Controllers {
		defaults["XRController/"+ctrl.Node] = ctrl.Props()
	}
	return defaults
}
