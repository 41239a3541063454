package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gridiron/internal/snap"
)

func validateCmd() *cobra.Command {
	var (
		playType         string
		personnel        string
		formation        string
		offensiveConcept string
		defensiveConcept string
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a play call against the resource catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(playType, personnel, formation, offensiveConcept, defensiveConcept)
		},
	}
	cmd.Flags().StringVar(&playType, "type", "run", "Play type")
	cmd.Flags().StringVar(&personnel, "personnel", "", "Personnel package id")
	cmd.Flags().StringVar(&formation, "formation", "", "Formation id")
	cmd.Flags().StringVar(&offensiveConcept, "offense", "", "Offensive concept id")
	cmd.Flags().StringVar(&defensiveConcept, "defense", "", "Defensive concept id")
	return cmd
}

func runValidate(playType, personnel, formation, offensiveConcept, defensiveConcept string) error {
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
	intent := snap.Intent{
		PlayType:         parsed,
		Personnel:        personnel,
		Formation:        formation,
		OffensiveConcept: offensiveConcept,
		DefensiveConcept: defensiveConcept,
	}

	err = eng.Validator().CheckPlayCall(intent)
	if err == nil {
		fmt.Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	var verr *snap.ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	blocking := snap.BlockingIssues(verr.Issues)
	fmt.Fprintf(os.Stdout, "Issues (%d):\n", len(verr.Issues))
	for _, issue := range verr.Issues {
		location := issue.FieldPath
		if issue.EntityID != "" {
			location = fmt.Sprintf("%s [%s]", location, issue.EntityID)
		}
		fmt.Fprintf(os.Stdout, "  - %s: %s (%s, %s)\n", location, issue.Message, issue.Code, issue.Severity)
	}
	if len(blocking) > 0 {
		return fmt.Errorf("play call has %d blocking issues", len(blocking))
	}
	return nil
}
