// Package envconfig provides configuration structs for configuring
// rocket environments with physical parameters, a world layout, and a
// landing task. Environment configurations in this package are JSON
// serializable and can be decoded by viper.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/rocketlander/environment"
	"github.com/samuelfneumann/rocketlander/environment/rocket"
	ts "github.com/samuelfneumann/rocketlander/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

// Config implements a specific configuration of a rocket environment
// and its landing task
type Config struct {
	// ContinuousActions selects the Continuous environment over the
	// Discrete one
	ContinuousActions bool    `json:"continuousActions" mapstructure:"continuousActions"`
	Discount          float64 `json:"discount" mapstructure:"discount"`

	// EpisodeSteps is the step limit of an episode
	EpisodeSteps       int  `json:"episodeSteps" mapstructure:"episodeSteps"`
	TerminateOffscreen bool `json:"terminateOffscreen" mapstructure:"terminateOffscreen"`

	// StartX and StartY bound the uniform distribution of starting
	// positions in pixels
	StartX r1.Interval `json:"startX" mapstructure:"startX"`
	StartY r1.Interval `json:"startY" mapstructure:"startY"`

	Physics  rocket.Physics         `json:"physics" mapstructure:"physics"`
	Resolver rocket.ContactResolver `json:"resolver" mapstructure:"resolver"`
	Layout   rocket.Layout          `json:"layout" mapstructure:"layout"`
}

// Default returns the default configuration: discrete actions in the
// default world, starting on the launch platform
func Default() Config {
	p := rocket.DefaultParameters()

	return Config{
		ContinuousActions:  false,
		Discount:           1.0,
		EpisodeSteps:       rocket.DefaultEpisodeSteps,
		TerminateOffscreen: true,
		StartX:             r1.Interval{Min: rocket.InitialX, Max: rocket.InitialX},
		StartY:             r1.Interval{Min: rocket.InitialY, Max: rocket.InitialY},
		Physics:            p.Physics,
		Resolver:           *p.Resolver,
		Layout:             p.Layout,
	}
}

// Validate returns an error if the Config cannot create an environment
func (c Config) Validate() error {
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1], got %v",
			c.Discount)
	}
	if c.EpisodeSteps <= 0 {
		return fmt.Errorf("validate: episode steps must be positive, got %v",
			c.EpisodeSteps)
	}
	if c.StartX.Min > c.StartX.Max || c.StartY.Min > c.StartY.Max {
		return fmt.Errorf("validate: empty start bounds x=%v y=%v",
			c.StartX, c.StartY)
	}
	if err := c.Physics.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// Parameters returns the rocket parameters described by the Config
func (c Config) Parameters() rocket.Parameters {
	resolver := c.Resolver
	return rocket.Parameters{
		Layout:   c.Layout,
		Physics:  c.Physics,
		Resolver: &resolver,
	}
}

// CreateEnv returns the environment described by the Config as well as
// the first timestep of the environment. The seed determines the
// sequence of starting positions.
func (c Config) CreateEnv(seed uint64) (env.Environment, ts.TimeStep,
	error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createEnv: %w", err)
	}

	s := env.NewUniformStarter([]r1.Interval{c.StartX, c.StartY}, seed)
	task := rocket.NewLand(s, c.EpisodeSteps, c.TerminateOffscreen)

	var (
		e    env.Environment
		step ts.TimeStep
		err  error
	)
	if c.ContinuousActions {
		e, step, err = rocket.NewContinuous(task, c.Discount, c.Parameters())
	} else {
		e, step, err = rocket.NewDiscrete(task, c.Discount, c.Parameters())
	}
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createEnv: %w", err)
	}
	return e, step, nil
}
