package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func playsCmd() *cobra.Command {
	var gameID string
	cmd := &cobra.Command{
		Use:   "plays",
		Short: "List persisted plays for a game",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlays(gameID)
		},
	}
	cmd.Flags().StringVar(&gameID, "game", "scratch", "Game id")
	return cmd
}

func runPlays(gameID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if db == nil {
		return fmt.Errorf("plays requires a configured store backend")
	}
	defer db.Close(ctx)
	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	summaries, err := db.ListPlays(ctx, gameID)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintf(os.Stdout, "no plays recorded for %s\n", gameID)
		return nil
	}
	for _, summary := range summaries {
		marker := " "
		if summary.Turnover {
			marker = "T"
		}
		fmt.Fprintf(os.Stdout, "%s %-24s %3d yards  %-16s %s\n",
			marker, summary.PlayID, summary.Yards, summary.TerminalEvent, summary.ScoreEvent)
	}
	return nil
}
