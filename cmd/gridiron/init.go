package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gridiron/internal/catalog"
	"gridiron/internal/config"
)

func initCmd() *cobra.Command {
	var projectName string
	var seed int64
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new gridiron project with the default resource pack",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName, seed)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Engine root seed")
	return cmd
}

func runInit(projectName string, seed int64) error {
	if _, err := os.Stat(config.DefaultFile); err == nil {
		return fmt.Errorf("%s already exists", config.DefaultFile)
	}

	resourcesDir := "./resources"
	if err := catalog.WriteDefaults(resourcesDir); err != nil {
		return fmt.Errorf("writing default resources: %w", err)
	}
	if err := os.MkdirAll("./forensics", 0o750); err != nil {
		return fmt.Errorf("creating forensics directory: %w", err)
	}

	contents := fmt.Sprintf("project: %s\nversion: 1\n\nresources: %s\nforensics: ./forensics\nseed: %d\ndev_mode: false\npolicy: balanced_default\n\nstore:\n  backend: sqlite\n  dsn: sqlite://gridiron.db\n", projectName, resourcesDir, seed)
	if err := os.WriteFile(config.DefaultFile, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", config.DefaultFile, err)
	}
	return nil
}
