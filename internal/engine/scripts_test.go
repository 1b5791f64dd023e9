package engine

import "testing"

// Mock script for testing
type MockScript struct {
	BaseComponent
	Speed  float32
	Health int
	Armed  bool
	Label  string
}

func mockFactory(props map[string]any) Component {
	return &MockScript{
		Speed:  PropFloat(props, "speed", 1),
		Health: PropInt(props, "health", 10),
		Armed:  PropBool(props, "armed", false),
		Label:  PropString(props, "label", "none"),
	}
}

func TestRegisterScript(t *testing.T) {
	scriptRegistry = map[string]ScriptFactory{}

	RegisterScript("MockScript", mockFactory)

	if _, exists := scriptRegistry["MockScript"]; !exists {
		t.Error("Script not registered")
	}
}

func TestRegisterScriptDuplicate(t *testing.T) {
	scriptRegistry = map[string]ScriptFactory{}

	RegisterScript("Duplicate", mockFactory)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()

	RegisterScript("Duplicate", mockFactory)
}

func TestCreateScript(t *testing.T) {
	scriptRegistry = map[string]ScriptFactory{}
	RegisterScript("MockScript", mockFactory)

	props := map[string]any{
		"speed":  float64(10.5),
		"health": 100, // YAML decodes whole numbers as int
		"armed":  true,
		"label":  "ball",
	}

	component := CreateScript("MockScript", props)
	script, ok := component.(*MockScript)
	if !ok {
		t.Fatalf("CreateScript didn't return MockScript, got %T", component)
	}

	if script.Speed != 10.5 {
		t.Errorf("Expected Speed 10.5, got %f", script.Speed)
	}
	if script.Health != 100 {
		t.Errorf("Expected Health 100, got %d", script.Health)
	}
	if !script.Armed || script.Label != "ball" {
		t.Errorf("Unexpected props: armed=%v label=%q", script.Armed, script.Label)
	}
}

func TestCreateScriptDefaults(t *testing.T) {
	scriptRegistry = map[string]ScriptFactory{}
	RegisterScript("MockScript", mockFactory)

	script := CreateScript("MockScript", nil).(*MockScript)
	if script.Speed != 1 || script.Health != 10 || script.Armed || script.Label != "none" {
		t.Errorf("Fallbacks not applied: %+v", script)
	}
}

func TestCreateScriptNotFound(t *testing.T) {
	scriptRegistry = map[string]ScriptFactory{}

	if CreateScript("DoesNotExist", nil) != nil {
		t.Error("CreateScript should return nil for non-existent script")
	}
}

func TestRegisteredScriptsSorted(t *testing.T) {
	scriptRegistry = map[string]ScriptFactory{}
	RegisterScript("Zeta", mockFactory)
	RegisterScript("Alpha", mockFactory)
	RegisterScript("Mid", mockFactory)

	names := RegisteredScripts()
	want := []string{"Alpha", "Mid", "Zeta"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d names, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
