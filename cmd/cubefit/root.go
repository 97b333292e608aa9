package main

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-cubefit/cube"
	"github.com/cwbudde/algo-cubefit/model"
	"github.com/cwbudde/algo-cubefit/synth"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every subcommand needs once flags are resolved.
type app struct {
	out io.Writer
	log zerolog.Logger
	cfg settings
	v   *viper.Viper
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{out: stdout, v: viper.New()}

	root := &cobra.Command{
		Use:           "cubefit",
		Short:         "Fit line, continuum and brightness models to a synthetic spectral cube",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(a.v, cmd.Flags())
			if err != nil {
				return err
			}
			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
			}
			a.cfg = cfg
			a.log = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).
				Level(level).
				With().
				Timestamp().
				Str("run", uuid.NewString()).
				Str("cmd", cmd.Name()).
				Logger()
			a.log.Debug().
				Int("channels", cfg.Channels).
				Int("size", cfg.Size).
				Int64("seed", cfg.Seed).
				Str("method", cfg.Method).
				Msg("settings resolved")
			return nil
		},
	}
	addSharedFlags(root.PersistentFlags())

	root.AddCommand(newNoiseCmd(a), newSpectrumCmd(a), newChannelsCmd(a))
	return root
}

// observe renders the synthetic cube described by the settings.
func (a *app) observe() (cube.Axis, *cube.Cube, error) {
	s := a.cfg
	axis, err := cube.Linspace(s.FMin, s.FMax, s.Channels)
	if err != nil {
		return nil, nil, err
	}
	gen := synth.NewGenerator(
		synth.WithSeed(s.Seed),
		synth.WithNoise(synth.LinearNoise(s.NoiseLo, s.NoiseHi, s.Channels)),
	)
	src := synth.Source{
		Spectral: model.SpectralParams{
			LineAmplitude:      s.LineAmp,
			LineFrequency:      s.LineFreq,
			LineSigma:          s.LineSigma,
			ContinuumAmplitude: s.Continuum,
		},
		Spatial: model.BrightnessParams{
			Amplitude: 1,
			I0:        s.center(),
			J0:        s.center(),
			Sigma:     s.SourceSigma,
		},
	}
	c, err := gen.Cube(axis, s.Size, s.Size, src)
	if err != nil {
		return nil, nil, err
	}
	a.log.Info().
		Int("channels", s.Channels).
		Int("size", s.Size).
		Float64("noise_lo", s.NoiseLo).
		Float64("noise_hi", s.NoiseHi).
		Msg("synthetic cube ready")
	return axis, c, nil
}
