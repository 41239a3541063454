package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"gridiron/internal/traits"
)

func traitsCmd() *cobra.Command {
	var (
		playerID       string
		position       string
		overall        float64
		volatility     float64
		susceptibility float64
		save           bool
	)
	cmd := &cobra.Command{
		Use:   "traits",
		Short: "Generate a deterministic trait vector for a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraits(playerID, position, overall, volatility, susceptibility, save)
		},
	}
	cmd.Flags().StringVar(&playerID, "player", "", "Player id (required)")
	cmd.Flags().StringVar(&position, "position", "WR", "Roster position")
	cmd.Flags().Float64Var(&overall, "overall", 0.6, "Talent level in (0, 1)")
	cmd.Flags().Float64Var(&volatility, "volatility", 0.3, "Performance volatility in (0, 1)")
	cmd.Flags().Float64Var(&susceptibility, "injury", 0.3, "Injury susceptibility in (0, 1)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the vector to the configured store")
	return cmd
}

func runTraits(playerID, position string, overall, volatility, susceptibility float64, save bool) error {
	if playerID == "" {
		return fmt.Errorf("--player is required")
	}

	vector, err := traits.Generate(playerID, position, traits.Truth{
		Overall:              overall,
		Volatility:           volatility,
		InjurySusceptibility: susceptibility,
	})
	if err != nil {
		return err
	}

	codes := make([]string, 0, len(vector))
	for code := range vector {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(os.Stdout, "%-32s %6.3f\n", code, vector[code])
	}

	if save {
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
			return fmt.Errorf("--save requires a configured store backend")
		}
		defer db.Close(ctx)
		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := db.SaveTraitVector(ctx, playerID, vector); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "saved trait vector for %s\n", playerID)
	}
	return nil
}
