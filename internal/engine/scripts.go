package engine

import (
	"fmt"
	"sort"
)

// ScriptFactory creates a Component from scene-file props.
// Numbers arrive as float64, matching both the JSON and YAML decoders.
type ScriptFactory func(props map[string]any) Component

var scriptRegistry = map[string]ScriptFactory{}

// RegisterScript registers a named script factory. Registering a name twice panics.
func RegisterScript(name string, factory ScriptFactory) {
	if _, exists := scriptRegistry[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	scriptRegistry[name] = factory
}

// CreateScript looks up a registered script by name and creates it with the given props.
func CreateScript(name string, props map[string]any) Component {
	factory, ok := scriptRegistry[name]
	if !ok {
		return nil
	}
	return factory(props)
}

// RegisteredScripts returns the sorted names of all registered scripts.
func RegisteredScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PropFloat reads a numeric prop, accepting the integer forms YAML produces.
func PropFloat(props map[string]any, key string, fallback float32) float32 {
	switch v := props[key].(type) {
	case float64:
		return float32(v)
	case float32:
		return v
	case int:
		return float32(v)
	case int64:
		return float32(v)
	}
	return fallback
}

func PropInt(props map[string]any, key string, fallback int) int {
	switch v := props[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

func PropBool(props map[string]any, key string, fallback bool) bool {
	if v, ok := props[key].(bool); ok {
		return v
	}
	return fallback
}

func PropString(props map[string]any, key string, fallback string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return fallback
}
