package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "gridiron",
		Short: "Deterministic snap resolution engine for football dynasty simulation",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(resolveCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(traitsCmd())
	root.AddCommand(calibrateCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(playsCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
