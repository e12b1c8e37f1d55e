package tracker

import (
	"io"

	"github.com/samuelfneumann/rocketlander/environment"
	"github.com/samuelfneumann/rocketlander/timestep"
)

// registeredTracker registers an Environment with some Tracker so
// that the Tracker tracks data from the registered Environment only.
// registeredTracker itself is a Tracker.
//
// registeredTracker calls the Track() method of the embedded Tracker
// using the most recent TimeStep of the registered Environment, and the
// argument to registeredTracker.Track() is ignored.
//
// Experiments register each of their Trackers with the Environment the
// agent acts in. Closing a registeredTracker closes the embedded
// Tracker if it is an io.Closer.
type registeredTracker struct {
	Tracker
	env environment.Environment
}

// Register registers a new Tracker with an Environment, to track data
// from the registered Environment only.
//
// Note: the underlying concrete type of the registered Tracker is
// lost when registering an Environment with a Tracker.
func Register(t Tracker, env environment.Environment) Tracker {
	return &registeredTracker{t, env}
}

// Track calls Track() on the embedded Tracker using the most recent
// TimeStep from the registered Environment.
func (r *registeredTracker) Track(timestep.TimeStep) {
	r.Tracker.Track(r.env.LastTimeStep())
}

// Close closes the embedded Tracker if it holds resources
func (r *registeredTracker) Close() error {
	if c, ok := r.Tracker.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
