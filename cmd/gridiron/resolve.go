package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gridiron/internal/calibration"
	"gridiron/internal/engine"
	"gridiron/internal/snap"
)

func resolveCmd() *cobra.Command {
	var (
		playType string
		gameID   string
		playID   string
		mode     string
		offense  float64
		defense  float64
		force    string
		attempts int
		save     bool
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve one snap with synthetic rosters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(playType, gameID, playID, mode, offense, defense, force, attempts, save)
		},
	}
	cmd.Flags().StringVar(&playType, "type", "run", "Play type")
	cmd.Flags().StringVar(&gameID, "game", "scratch", "Game id")
	cmd.Flags().StringVar(&playID, "play", "p1", "Play id")
	cmd.Flags().StringVar(&mode, "mode", "play", "Execution mode: play, sim, or offscreen")
	cmd.Flags().Float64Var(&offense, "offense", 0.6, "Offense talent level in (0, 1)")
	cmd.Flags().Float64Var(&defense, "defense", 0.6, "Defense talent level in (0, 1)")
	cmd.Flags().StringVar(&force, "force", "", "Re-roll until this terminal event occurs (dev mode only)")
	cmd.Flags().IntVar(&attempts, "attempts", engine.DefaultForceAttempts, "Attempt ceiling for --force")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the resolution to the configured store")
	return cmd
}

func runResolve(playType, gameID, playID, mode string, offense, defense float64, force string, attempts int, save bool) error {
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
	snapCtx, err := calibration.BuildContext(parsed, gameID, playID, offense, defense)
	if err != nil {
		return err
	}
	snapCtx.Mode = snap.Mode(mode)

	var res *snap.Resolution
	if force != "" {
		res, err = eng.RunForced(snapCtx, force, attempts)
	} else {
		res, err = eng.RunSnap(snapCtx)
	}
	if err != nil {
		return reportFailure(cfg, err)
	}

	printResolution(res)

	if save {
		ctx := context.Background()
		db, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		if db == nil {
			return fmt.Errorf("--save requires a configured store backend")
		}
		defer db.Close(ctx)
		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := db.SaveResolution(ctx, gameID, res); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "saved play %s\n", res.PlayResult.PlayID)
	}
	return nil
}

func printResolution(res *snap.Resolution) {
	result := res.PlayResult
	fmt.Fprintf(os.Stdout, "%s: %s for %d yards\n", result.PlayID, res.Causality.TerminalEvent, result.Yards)
	if result.ScoreEvent != "" {
		fmt.Fprintf(os.Stdout, "  score:    %s\n", result.ScoreEvent)
	}
	if result.Turnover {
		fmt.Fprintf(os.Stdout, "  turnover: %s\n", result.TurnoverType)
	}
	for _, penalty := range result.Penalties {
		fmt.Fprintf(os.Stdout, "  penalty:  %s %d yards against %s\n", penalty.Code, penalty.Yards, penalty.AgainstTeamID)
	}
	fmt.Fprintf(os.Stdout, "  next:     %d and %d, %s ball, clock -%ds\n",
		result.NextDown, result.NextDistance, result.NextPossessionTeamID, result.ClockDelta)
	for _, contest := range res.Contests {
		fmt.Fprintf(os.Stdout, "  contest:  %-28s %.3f (%s)\n", contest.Family, contest.Score, contest.Phase)
	}
	for actorID, severity := range res.Injuries {
		fmt.Fprintf(os.Stdout, "  injury:   %s (%s)\n", actorID, severity)
	}
	for _, node := range res.Causality.Nodes {
		fmt.Fprintf(os.Stdout, "  cause:    %.3f %s\n", node.Weight, node.Description)
	}
	if res.Conditioned {
		fmt.Fprintf(os.Stdout, "  conditioned after %d attempts\n", res.Attempts)
	}
}
