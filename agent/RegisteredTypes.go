package agent

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Type represents a specific type of an agent Config.
// Config's with this type can create Agents of the corresponding type.
type Type string

const (
	Autopilot Type = "Autopilot"
	Random    Type = "Random"
)

// Registered types with the package. Once a Type has been registered
// with this map, a Config with that type can be created from its
// serialized parameters.
//
// No Type's are registered with this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes map[Type]Config

func init() {
	registeredTypes = make(map[Type]Config)
}

// Register registers an agent's Type with a default Config of a
// concrete type so that upon deserialization, Configs of type
// agentType are deserialized into the concrete type, starting from
// the default.
func Register(agentType Type, defaults Config) {
	registeredTypes[agentType] = defaults
}

// Registered returns whether agentType has been registered
func Registered(agentType Type) bool {
	_, ok := registeredTypes[agentType]
	return ok
}

// NewConfig creates a Config of the concrete type registered for
// agentType, with fields set from params. Fields missing from params
// keep their registered defaults. Params may be nil.
func NewConfig(agentType Type, params map[string]interface{}) (Config,
	error) {
	defaults, found := registeredTypes[agentType]
	if !found {
		return nil, fmt.Errorf("newConfig: no such agent type %v",
			agentType)
	}

	value := reflect.New(reflect.TypeOf(defaults))
	value.Elem().Set(reflect.ValueOf(defaults))
	if len(params) > 0 {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("newConfig: %w", err)
		}
		if err := json.Unmarshal(data, value.Interface()); err != nil {
			return nil, fmt.Errorf("newConfig: %w", err)
		}
	}

	return value.Elem().Interface().(Config), nil
}
