package experiment

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/rocketlander/agent"
	env "github.com/samuelfneumann/rocketlander/environment"
	"github.com/samuelfneumann/rocketlander/experiment/tracker"
	ts "github.com/samuelfneumann/rocketlander/timestep"
)

// Progress reports the progress of an experiment
type Progress interface {
	Increment()
	Display()
}

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment
	agent.Agent
	maxSteps     uint
	currentSteps uint
	episode      int
	trackers     []tracker.Tracker
	log          zerolog.Logger
	progress     Progress
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for, and the t parameter
// is a slice of tracker.Tracker which determine what data is saved.
func NewOnline(e env.Environment, a agent.Agent, steps uint,
	log zerolog.Logger, t ...tracker.Tracker) *Online {
	return &Online{
		Environment: e,
		Agent:       a,
		maxSteps:    steps,
		trackers:    t,
		log:         log,
	}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// SetProgress sets the Progress which is incremented on each step and
// displayed at the end of each episode
func (o *Online) SetProgress(p Progress) {
	o.progress = p
}

// Steps returns the number of steps taken so far
func (o *Online) Steps() uint {
	return o.currentSteps
}

// Episodes returns the number of episodes finished so far
func (o *Online) Episodes() int {
	return o.episode
}

// RunEpisode runs a single episode of the experiment and returns
// whether the step limit of the experiment has been reached
func (o *Online) RunEpisode() (bool, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return true, fmt.Errorf("runEpisode: %w", err)
	}
	if err := o.Agent.ObserveFirst(step); err != nil {
		return true, fmt.Errorf("runEpisode: %w", err)
	}
	o.track(step)

	episodeReturn := 0.0
	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		action := o.Agent.SelectAction(step)
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return true, fmt.Errorf("runEpisode: episode %v: %w", o.episode,
				err)
		}
		episodeReturn += step.Reward

		o.track(step)
		o.log.Trace().
			Int("episode", o.episode).
			Int("step", step.Number).
			Float64("reward", step.Reward).
			Msg("step")

		if err := o.Agent.Observe(action, step); err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}
		if err := o.Agent.Step(); err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}

		if o.progress != nil {
			o.progress.Increment()
		}
	}

	if step.Last() {
		o.Agent.EndEpisode()
		o.logEpisode(step, episodeReturn)
		o.episode++
	}
	if o.progress != nil {
		o.progress.Display()
	}

	return o.currentSteps >= o.maxSteps, nil
}

// logEpisode logs the end of an episode
func (o *Online) logEpisode(step ts.TimeStep, episodeReturn float64) {
	event := o.log.Info().
		Int("episode", o.episode).
		Int("steps", step.Number).
		Float64("return", episodeReturn).
		Stringer("end", step.EndType())

	if s, ok := o.Environment.(tracker.Summarizer); ok {
		summary := s.Summary()
		event = event.
			Stringer("outcome", summary.Outcome).
			Float64("fuel", summary.FuelConsumed).
			Bool("targetReached", summary.TargetReached)
	}
	event.Msg("episode finished")
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() error {
	for {
		ended, err := o.RunEpisode()
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		if ended {
			o.log.Info().
				Uint("steps", o.currentSteps).
				Int("episodes", o.episode).
				Msg("experiment finished")
			return nil
		}
	}
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	var errs []error
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Close closes every Tracker which holds resources
func (o *Online) Close() error {
	var errs []error
	for _, t := range o.trackers {
		if c, ok := t.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// track tracks the current timestep by caching its data in each Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}
