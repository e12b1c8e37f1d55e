package agent

import (
	"encoding/json"
	"fmt"
)

// TypedConfig implements functionality for typing a Config. In this
// way, a Config can explicitly have its type stored so that when
// deserializing the Config, we can deserialize it into its concrete
// type without knowing beforehand or declaring beforehand a variable
// of its concrete type.
type TypedConfig struct {
	Type
	Config
}

// NewTypedConfig types the argument Config and returns it as a
// TypedConfig which explicitly holds its Type.
func NewTypedConfig(c Config) TypedConfig {
	return TypedConfig{Type: c.Type(), Config: c}
}

// UnmarshalJSON implements the json.Unmarshaller interface
func (t *TypedConfig) UnmarshalJSON(data []byte) error {
	m := struct {
		Type   Type
		Config map[string]interface{}
	}{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	config, err := NewConfig(m.Type, m.Config)
	if err != nil {
		return fmt.Errorf("unmarshalJSON: %w", err)
	}

	t.Type = m.Type
	t.Config = config
	return nil
}
