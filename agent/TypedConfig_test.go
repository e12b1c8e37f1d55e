package agent

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/samuelfneumann/rocketlander/environment"
)

const testType Type = "Test"

type testConfig struct {
	Rate  float64
	Steps int
}

func (t testConfig) CreateAgent(environment.Environment, uint64) (Agent,
	error) {
	return nil, fmt.Errorf("createAgent: not implemented")
}
func (t testConfig) ValidAgent(Agent) bool { return false }
func (t testConfig) Validate() error       { return nil }
func (t testConfig) Type() Type            { return testType }

func init() {
	Register(testType, testConfig{Rate: 0.5, Steps: 10})
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		params map[string]interface{}
		want   testConfig
	}{
		{nil, testConfig{Rate: 0.5, Steps: 10}},
		{map[string]interface{}{"rate": 0.1}, testConfig{Rate: 0.1, Steps: 10}},
		{map[string]interface{}{"Steps": 3}, testConfig{Rate: 0.5, Steps: 3}},
	}

	for _, test := range tests {
		c, err := NewConfig(testType, test.params)
		if err != nil {
			t.Errorf("newConfig(%v): %v", test.params, err)
			continue
		}
		if c != test.want {
			t.Errorf("newConfig(%v) = %v, want %v", test.params, c, test.want)
		}
	}

	if _, err := NewConfig("Unregistered", nil); err == nil {
		t.Errorf("expected error for unregistered type")
	}
	if _, err := NewConfig(testType, map[string]interface{}{
		"steps": "many",
	}); err == nil {
		t.Errorf("expected error for mistyped parameter")
	}
}

func TestTypedConfigJSON(t *testing.T) {
	typed := NewTypedConfig(testConfig{Rate: 0.25, Steps: 7})

	data, err := json.Marshal(typed)
	if err != nil {
		t.Fatal(err)
	}

	var decoded TypedConfig
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Type != testType {
		t.Errorf("type = %v, want %v", decoded.Type, testType)
	}
	if decoded.Config != typed.Config {
		t.Errorf("config = %v, want %v", decoded.Config, typed.Config)
	}

	if err := json.Unmarshal([]byte(`{"Type": "Unregistered"}`),
		&decoded); err == nil {
		t.Errorf("expected error for unregistered type")
	}
}
