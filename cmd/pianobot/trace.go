package main

import (
	"encoding/json"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/hand"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/spf13/cobra"
)

var traceJSON bool

func init() {
	traceCmd.Flags().BoolVar(&traceJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(traceCmd)
}

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Print the decision trace instantly, without sound or hardware",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Serial.Device = ""
		s, err := newSession(
			contracts.WithBackend(contracts.SilentBackend),
			contracts.WithClock(hand.NewManualClock()),
		)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.PlayMelody()
		if err != nil {
			return err
		}
		if traceJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		}
		printReport(cmd.OutOrStdout(), r)
		return nil
	},
}
