package main

import (
	"fmt"
	"io"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/robot"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the melody headless and print every decision",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.PlayMelody()
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), r)
		return nil
	},
}

func printReport(w io.Writer, r robot.Report) {
	fmt.Fprintf(w, "run %s (%s)\n", r.RunID, r.Backend)
	for _, s := range r.Steps {
		fmt.Fprintf(w, "%2d  %-4s key %2d  finger %d  %.2f -> %.2f  distance %.2f\n",
			s.Index+1, s.Note, s.Key, s.Decision.Finger+1, s.Move.From, s.Move.To, s.Decision.Distance)
	}
	most := "-"
	if r.MostUsed != robot.NoFinger {
		most = fmt.Sprint(r.MostUsed + 1)
	}
	fmt.Fprintf(w, "total distance %.2f keys, most used finger %s, usage %v\n", r.TotalDistance, most, r.Usage)
	fmt.Fprintf(w, "final positions %v\n", r.Positions)
}
