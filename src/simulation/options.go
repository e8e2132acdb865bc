package simulation

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"toruslife/src/universe"
)

// Options represents the simulation's configurable options
type Options struct {
	Width          int
	Height         int
	Interval       time.Duration
	MaxSteps       int //0 means unlimited
	StopWhenStable bool
	Seed           string //SeedModulo, SeedNoise or the template name
	NoiseSeed      int64
	NoiseThreshold float64
}

// seeds which are not templates
const (
	SeedModulo = "modulo"
	SeedNoise  = "noise"
)

// default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefNoiseThreshold     = 0.05
)

// ErrUnknownSeed is returned for the seed which is neither a builtin seed nor a template
var ErrUnknownSeed = errors.New("unknown seed")

var DefaultOptions = Options{
	Width:          universe.DefWidth,
	Height:         universe.DefHeight,
	Interval:       DefSimulationInterval,
	MaxSteps:       DefMaxSteps,
	Seed:           SeedModulo,
	NoiseSeed:      1,
	NoiseThreshold: DefNoiseThreshold,
}

// SeedNames returns all seeds accepted by Options.Seed
func SeedNames() []string {
	return append([]string{SeedModulo, SeedNoise}, universe.TemplateNames()...)
}

// Validate checks the options
func (o Options) Validate() error {
	if err := universe.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.MaxSteps < 0 {
		return errors.Errorf("max steps must not be negative, got %d", o.MaxSteps)
	}
	_, err := o.Seeder()
	return err
}

// Seeder returns the universe seeder selected by the Seed option
func (o Options) Seeder() (universe.Seeder, error) {
	switch o.Seed {
	case "", SeedModulo:
		return universe.ModuloSeed, nil
	case SeedNoise:
		return universe.NoiseSeed(o.NoiseSeed, o.NoiseThreshold), nil
	}
	if t, ok := universe.LookupTemplate(o.Seed); ok {
		return universe.TemplateSeed(t), nil
	}
	return nil, errors.Wrapf(ErrUnknownSeed, "%q", o.Seed)
}

// optionsFile is the json representation of Options
type optionsFile struct {
	Width          *int     `json:"width"`
	Height         *int     `json:"height"`
	Interval       *string  `json:"interval"` //time.ParseDuration format, e.g. 150ms
	MaxSteps       *int     `json:"max_steps"`
	StopWhenStable *bool    `json:"stop_when_stable"`
	Seed           *string  `json:"seed"`
	NoiseSeed      *int64   `json:"noise_seed"`
	NoiseThreshold *float64 `json:"noise_threshold"`
}

// LoadOptions loads options from the json file, the fields missing in the file are taken from DefaultOptions
func LoadOptions(filename string) (Options, error) {
	o := DefaultOptions

	data, err := os.ReadFile(filename)
	if err != nil {
		return o, errors.Wrapf(err, "[LoadOptions] failed to read file: %+v", filename)
	}

	var f optionsFile
	if err = json.Unmarshal(data, &f); err != nil {
		return o, errors.Wrapf(err, "[LoadOptions] failed to unmarshal data from file: %+v", filename)
	}

	if f.Interval != nil {
		if o.Interval, err = time.ParseDuration(*f.Interval); err != nil {
			return o, errors.Wrapf(err, "[LoadOptions] invalid interval in file: %+v", filename)
		}
	}
	setIf(&o.Width, f.Width)
	setIf(&o.Height, f.Height)
	setIf(&o.MaxSteps, f.MaxSteps)
	setIf(&o.StopWhenStable, f.StopWhenStable)
	setIf(&o.Seed, f.Seed)
	setIf(&o.NoiseSeed, f.NoiseSeed)
	setIf(&o.NoiseThreshold, f.NoiseThreshold)

	return o, o.Validate()
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
