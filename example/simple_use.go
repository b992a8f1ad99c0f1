package main

import (
	"fmt"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/logger"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/robot"
)

func main() {
	log := logger.NewConsoleLogger()

	session, err := robot.NewSession(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithBackend(contracts.SilentBackend),
		contracts.WithFrameSink(contracts.FrameSinkFunc(func(f contracts.Frame) {
			if f.Progress == 1 {
				fmt.Printf("finger %d landed on %s\n", f.Finger+1, f.Note)
			}
		})),
	)
	if err != nil {
		log.Error("Failed to start session", log.Field().Error("error", err))
		return
	}
	defer session.Close()

	report, err := session.PlayMelody()
	if err != nil {
		log.Error("Melody failed", log.Field().Error("error", err))
		return
	}

	log.Info("Melody finished",
		log.Field().String("run_id", report.RunID),
		log.Field().Float64("total_distance", report.TotalDistance),
		log.Field().Int("most_used", report.MostUsed+1),
	)
	fmt.Println("Final positions:", report.Positions)
}
