// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/rocketlander/agent"
	"github.com/samuelfneumann/rocketlander/environment/envconfig"
	"github.com/samuelfneumann/rocketlander/experiment/tracker"
	"github.com/samuelfneumann/rocketlander/utils/logging"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments send each environment TimeStep to their Trackers, which
// cache the data in RAM to be later saved to disk by Save. The Run()
// method will run all episodes until the maximum timestep limit is
// reached. The RunEpisode() function will run a single episode.
type Experiment interface {
	Run() error

	// RunEpisode returns whether the step limit of the experiment has
	// been reached
	RunEpisode() (bool, error)

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)

	// Close releases the resources held by the experiment's Trackers
	Close() error
}

// Type is a kind of experiment
type Type string

const (
	OnlineExp Type = "Online"
)

// Config represents a configuration of an experiment.
type Config struct {
	Type     Type   `json:"type" mapstructure:"type"`
	MaxSteps uint   `json:"maxSteps" mapstructure:"maxSteps"`
	Seed     uint64 `json:"seed" mapstructure:"seed"`

	// Run labels the episodes of this experiment in the database
	Run string `json:"run" mapstructure:"run"`

	AgentType agent.Type             `json:"agentType" mapstructure:"agentType"`
	Agent     map[string]interface{} `json:"agent" mapstructure:"agent"`
	EnvConf   envconfig.Config       `json:"env" mapstructure:"env"`

	// Output files. Empty names disable the corresponding Tracker.
	ReturnFile   string `json:"returnFile" mapstructure:"returnFile"`
	LengthFile   string `json:"lengthFile" mapstructure:"lengthFile"`
	DatabaseFile string `json:"databaseFile" mapstructure:"databaseFile"`

	LogLevel  string `json:"logLevel" mapstructure:"logLevel"`
	PrettyLog bool   `json:"prettyLog" mapstructure:"prettyLog"`
	Progress  bool   `json:"progress" mapstructure:"progress"`
}

// DefaultConfig returns the default experiment: the autopilot flying
// the default discrete environment, with episode returns saved to
// return.bin
func DefaultConfig() Config {
	return Config{
		Type:       OnlineExp,
		MaxSteps:   100_000,
		Seed:       192382,
		Run:        "rocketlander",
		AgentType:  agent.Autopilot,
		Agent:      map[string]interface{}{},
		EnvConf:    envconfig.Default(),
		ReturnFile: "return.bin",
		LogLevel:   "info",
		PrettyLog:  true,
	}
}

// Validate returns an error if the Config does not describe an
// experiment which can be run
func (c Config) Validate() error {
	if c.Type != OnlineExp {
		return fmt.Errorf("validate: no such experiment type %v", c.Type)
	}
	if c.MaxSteps == 0 {
		return fmt.Errorf("validate: max steps must be positive")
	}
	if !agent.Registered(c.AgentType) {
		return fmt.Errorf("validate: no such agent type %v", c.AgentType)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// Logger returns the logger described by the Config, writing to w
func (c Config) Logger(w io.Writer) (zerolog.Logger, error) {
	return logging.New(w, c.LogLevel, c.PrettyLog)
}

// AgentConfig returns the configuration of the experiment's agent,
// with registered defaults for any parameters the Config does not set
func (c Config) AgentConfig() (agent.TypedConfig, error) {
	config, err := agent.NewConfig(c.AgentType, c.Agent)
	if err != nil {
		return agent.TypedConfig{}, fmt.Errorf("agentConfig: %w", err)
	}
	if err := config.Validate(); err != nil {
		return agent.TypedConfig{}, fmt.Errorf("agentConfig: %w", err)
	}
	return agent.NewTypedConfig(config), nil
}

// CreateExp creates the experiment described by the Config. The
// experiment logs to log.
func (c Config) CreateExp(log zerolog.Logger) (Experiment, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}

	env, _, err := c.EnvConf.CreateEnv(c.Seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}

	agentConf, err := c.AgentConfig()
	if err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}
	a, err := agentConf.CreateAgent(env, c.Seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %w", err)
	}

	var trackers []tracker.Tracker
	if c.ReturnFile != "" {
		trackers = append(trackers, tracker.NewReturn(c.ReturnFile))
	}
	if c.LengthFile != "" {
		trackers = append(trackers, tracker.NewEpisodeLength(c.LengthFile))
	}
	if c.DatabaseFile != "" {
		summarizer, ok := env.(tracker.Summarizer)
		if !ok {
			return nil, fmt.Errorf("createExp: environment %T cannot "+
				"summarize episodes", env)
		}
		db, err := tracker.OpenSQLite(c.DatabaseFile)
		if err != nil {
			return nil, fmt.Errorf("createExp: %w", err)
		}
		d, err := tracker.NewDatabase(db, summarizer, c.Run)
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
			return nil, fmt.Errorf("createExp: %w", err)
		}
		trackers = append(trackers, d)
	}

	log.Info().
		Interface("agent", agentConf).
		Bool("continuous", c.EnvConf.ContinuousActions).
		Uint("maxSteps", c.MaxSteps).
		Uint64("seed", c.Seed).
		Int("trackers", len(trackers)).
		Msg("created experiment")

	online := NewOnline(env, a, c.MaxSteps, log)
	for _, t := range trackers {
		online.Register(tracker.Register(t, env))
	}
	return online, nil
}
