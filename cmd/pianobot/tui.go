package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/tui"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/spf13/cobra"
)

// tuiLogFile receives the log while the terminal is taken by the interface.
const tuiLogFile = "pianobot.log"

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Animate the hand in the terminal (space: play, r: reset, q: quit)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.LogFile == "" {
			log.SetDestination(contracts.FileLog, tuiLogFile)
		}
		sink := &tui.Sink{}
		s, err := newSession(contracts.WithFrameSink(sink))
		if err != nil {
			return err
		}
		defer s.Close()

		p := tea.NewProgram(tui.NewModel(s))
		sink.Attach(p)
		_, err = p.Run()
		return err
	},
}
