package main

import (
	"fmt"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/hand"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/robot"
	"github.com/spf13/cobra"
)

var exportFormat string

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "wav", "wav or smf")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the performance to a WAV or MIDI file",
	RunE: func(cmd *cobra.Command, args []string) error {
		var backend contracts.ToneBackend
		out := cfg.Output
		switch exportFormat {
		case "wav":
			backend = contracts.WAVBackend
			if out == "" {
				out = robot.DefaultWAVOutput
			}
		case "smf", "mid", "midi":
			backend = contracts.SMFBackend
			if out == "" {
				out = robot.DefaultSMFOutput
			}
		default:
			return fmt.Errorf("unknown export format %q", exportFormat)
		}

		cfg.Serial.Device = ""
		s, err := newSession(
			contracts.WithBackend(backend),
			contracts.WithOutput(out),
			contracts.WithClock(hand.NewManualClock()),
		)
		if err != nil {
			return err
		}
		r, err := s.PlayMelody()
		if err != nil {
			_ = s.Close()
			return err
		}
		// The recorders write their file on Close.
		if err := s.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d notes, total distance %.2f)\n", out, len(r.Steps), r.TotalDistance)
		return nil
	},
}
