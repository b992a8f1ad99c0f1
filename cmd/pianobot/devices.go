package main

import (
	"fmt"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/actuator"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/robot"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(devicesCmd)
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List MIDI output destinations and serial ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()

		fmt.Fprintln(w, "MIDI outputs:")
		midiCfg := cfg.MIDIConfig()
		midiCfg.DeviceID = 0
		if p, err := robot.NewMIDIPlayer(&midiCfg, log); err != nil {
			fmt.Fprintf(w, "  unavailable: %v\n", err)
		} else {
			devices, err := p.ListDevices()
			_ = p.Close()
			if err != nil {
				fmt.Fprintf(w, "  unavailable: %v\n", err)
			}
			for i, d := range devices {
				fmt.Fprintf(w, "  %d: %s (%s, %s)\n", i, d.Name, d.EntityName, d.Manufacturer)
			}
		}

		fmt.Fprintln(w, "Serial ports:")
		ports, err := actuator.Ports()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Fprintln(w, "  none")
		}
		for _, p := range ports {
			fmt.Fprintf(w, "  %s\n", p)
		}
		return nil
	},
}
