package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"gridiron/internal/calibration"
	"gridiron/internal/snap"
)

func calibrateCmd() *cobra.Command {
	var (
		playType string
		plays    int
		workers  int
		offense  float64
		defense  float64
	)
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Batch-sample the engine and report outcome distributions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalibrate(playType, plays, workers, offense, defense)
		},
	}
	cmd.Flags().StringVar(&playType, "type", "run", "Play type to sample")
	cmd.Flags().IntVar(&plays, "plays", 500, "Number of plays to sample")
	cmd.Flags().IntVar(&workers, "workers", 4, "Worker pool size")
	cmd.Flags().Float64Var(&offense, "offense", 0.6, "Offense talent level in (0, 1)")
	cmd.Flags().Float64Var(&defense, "defense", 0.6, "Defense talent level in (0, 1)")
	return cmd
}

func runCalibrate(playType string, plays, workers int, offense, defense float64) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := loadEngine(cfg)
	if err != nil {
		return err
	}

	parsed, err := snap.ParsePlayType(playType)
	if err != nil {
		return err
	}

	sampler := &calibration.Sampler{Engine: eng, Workers: workers}
	summary, err := sampler.Run(calibration.Profile{
		PlayType:       parsed,
		Plays:          plays,
		OffenseOverall: offense,
		DefenseOverall: defense,
	})
	if err != nil {
		return reportFailure(cfg, err)
	}

	fmt.Fprintf(os.Stdout, "%s over %d plays (seed %d)\n", summary.PlayType, summary.Plays, eng.Seed())
	fmt.Fprintf(os.Stdout, "  mean yards:    %.2f\n", summary.MeanYards)
	fmt.Fprintf(os.Stdout, "  turnover rate: %.3f\n", summary.TurnoverRate)
	fmt.Fprintf(os.Stdout, "  score rate:    %.3f\n", summary.ScoreRate)
	fmt.Fprintf(os.Stdout, "  penalty rate:  %.3f\n", summary.PenaltyRate)
	fmt.Fprintf(os.Stdout, "  injury rate:   %.3f\n", summary.InjuryRate)

	events := make([]string, 0, len(summary.TerminalEvents))
	for event := range summary.TerminalEvents {
		events = append(events, event)
	}
	sort.Strings(events)
	for _, event := range events {
		fmt.Fprintf(os.Stdout, "  %-20s %d\n", event, summary.TerminalEvents[event])
	}
	return nil
}
