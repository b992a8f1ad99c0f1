package main

import (
	"fmt"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/actuator"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/config"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/logger"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/robot"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	cfg     config.Config
	log     contracts.Logger

	flagLogLevel  string
	flagBackend   string
	flagSoundFont string
	flagOutput    string
	flagSerial    string
)

var rootCmd = &cobra.Command{
	Use:   "pianobot",
	Short: "Robotic piano hand choosing fingers greedily",
	Long: `pianobot plays a short melody on a one-octave keyboard with a five-fingered
robotic hand. For every note it moves the finger closest to the key.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&cfgPath, "config", "c", config.DefaultPath, "configuration file")
	f.StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error")
	f.StringVarP(&flagBackend, "backend", "b", "", "tone backend: auto, soundfont, synth, midi, wav, smf or silent")
	f.StringVar(&flagSoundFont, "soundfont", "", "soundfont (.sf2) file")
	f.StringVarP(&flagOutput, "output", "o", "", "output file of the wav and smf backends")
	f.StringVar(&flagSerial, "serial", "", "serial device of the hand controller")
}

// Execute runs the root command.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// setup loads the configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("backend") {
		cfg.Backend = flagBackend
	}
	if flags.Changed("soundfont") {
		cfg.SoundFont = flagSoundFont
	}
	if flags.Changed("output") {
		cfg.Output = flagOutput
	}
	if flags.Changed("serial") {
		cfg.Serial.Device = flagSerial
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log = logger.NewConsoleLogger()
	level, _ := contracts.ParseLogLevel(cfg.LogLevel)
	log.SetLevel(level)
	if cfg.LogFile != "" {
		log.SetDestination(contracts.FileLog, cfg.LogFile)
	}
	return nil
}

// newSession builds a session from the configuration. extra options are applied last.
func newSession(extra ...contracts.Option) (*robot.Session, error) {
	opts := cfg.Options(log)
	if cfg.Serial.Device != "" {
		hw, err := actuator.Open(cfg.Serial.Device, cfg.Serial.Baud, log)
		if err != nil {
			return nil, err
		}
		opts = append(opts, contracts.WithActuator(hw))
	}
	s, err := robot.NewSession(append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return s, nil
}
