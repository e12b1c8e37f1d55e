package random

import (
	"fmt"

	"github.com/samuelfneumann/rocketlander/agent"
	"github.com/samuelfneumann/rocketlander/environment"
)

func init() {
	agent.Register(agent.Random, Config{Repeat: 1})
}

// Config represents a configuration for the Random agent
type Config struct {
	// Repeat is the number of consecutive steps each sampled action is
	// taken for
	Repeat int
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	return New(env, c, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*Random)
	return ok
}

// Validate checks a Config to ensure it is a valid configuration
func (c Config) Validate() error {
	if c.Repeat < 1 {
		return fmt.Errorf("validate: actions must be repeated at least "+
			"once, got %v", c.Repeat)
	}
	return nil
}

// Type returns the type of agent which the Config creates
func (c Config) Type() agent.Type {
	return agent.Random
}
