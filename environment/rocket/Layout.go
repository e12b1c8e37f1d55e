package rocket

import "fmt"

// Layout describes the world a rocket flies in: the screen, the
// rocket's size and mass, the simulation rate, the platforms, and the
// target.
type Layout struct {
	Width        float64    `json:"width" mapstructure:"width"`
	Height       float64    `json:"height" mapstructure:"height"`
	RocketWidth  float64    `json:"rocketWidth" mapstructure:"rocketWidth"`
	RocketHeight float64    `json:"rocketHeight" mapstructure:"rocketHeight"`
	RocketMass   float64    `json:"rocketMass" mapstructure:"rocketMass"`
	FPS          float64    `json:"fps" mapstructure:"fps"`
	Platforms    []Platform `json:"platforms" mapstructure:"platforms"`
	Target       *Target    `json:"target" mapstructure:"target"`
}

// DefaultLayout returns the default world: a 1600x900 screen with a
// launch platform on the left, a landing pad on the right, and a target
// 5m up and 5m across.
func DefaultLayout() Layout {
	return Layout{
		Width:        ScreenWidth,
		Height:       ScreenHeight,
		RocketWidth:  RocketWidth,
		RocketHeight: RocketHeight,
		RocketMass:   RocketMass,
		FPS:          FPS,
		Platforms: []Platform{
			NewPlatform(LaunchPlatformX, PlatformLength, PlatformElevation,
				false),
			NewPlatform(LandingPlatformX, PlatformLength, PlatformElevation,
				true),
		},
		Target: NewTarget(TargetX, TargetY, TargetDiameter),
	}
}

// Dt returns the duration of a single simulation step
func (l Layout) Dt() float64 {
	return 1.0 / l.FPS
}

// HalfHeight returns the height of the rocket's centre when it rests
// on the ground
func (l Layout) HalfHeight() float64 {
	return l.RocketHeight / 2
}

// Validate returns an error if the Layout cannot be simulated
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("validate: screen dimensions must be positive, "+
			"got %vx%v", l.Width, l.Height)
	}
	if l.RocketWidth <= 0 || l.RocketHeight <= 0 || l.RocketMass <= 0 {
		return fmt.Errorf("validate: rocket dimensions and mass must be "+
			"positive, got width=%v height=%v mass=%v", l.RocketWidth,
			l.RocketHeight, l.RocketMass)
	}
	if l.FPS <= 0 {
		return fmt.Errorf("validate: fps must be positive, got %v", l.FPS)
	}

	pads := 0
	for _, p := range l.Platforms {
		if p.Length < 0 {
			return fmt.Errorf("validate: platform at %v has negative "+
				"length %v", p.LeftX, p.Length)
		}
		if p.LandingPad {
			pads++
		}
	}
	if pads != 1 {
		return fmt.Errorf("validate: expected exactly 1 landing pad, got %v",
			pads)
	}

	if l.Target != nil && l.Target.Diameter <= 0 {
		return fmt.Errorf("validate: target diameter must be positive, "+
			"got %v", l.Target.Diameter)
	}
	return nil
}
