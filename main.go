package main

import (
	"fmt"
	"os"

	_ "github.com/samuelfneumann/rocketlander/agent/autopilot"
	_ "github.com/samuelfneumann/rocketlander/agent/random"
	"github.com/samuelfneumann/rocketlander/experiment"
	"github.com/samuelfneumann/rocketlander/utils/progressbar"
)

func main() {
	c, err := experiment.LoadConfig(os.Getenv(experiment.ConfigFileEnv))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := c.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	exp, err := c.CreateExp(log)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create experiment")
	}
	defer func() {
		if err := exp.Close(); err != nil {
			log.Error().Err(err).Msg("could not close experiment")
		}
	}()

	if online, ok := exp.(*experiment.Online); ok && c.Progress {
		bar := progressbar.NewManualProgressBar(os.Stdout, 50,
			int(c.MaxSteps))
		online.SetProgress(bar)
		defer bar.Close()
	}

	if err := exp.Run(); err != nil {
		log.Error().Err(err).Msg("experiment failed")
	}
	if err := exp.Save(); err != nil {
		log.Error().Err(err).Msg("could not save experiment data")
		return
	}
	log.Info().
		Str("returns", c.ReturnFile).
		Str("lengths", c.LengthFile).
		Str("database", c.DatabaseFile).
		Msg("saved experiment data")
}
