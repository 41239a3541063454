package main

import (
	"errors"
	"fmt"
	"os"

	"gridiron/internal/catalog"
	"gridiron/internal/config"
	"gridiron/internal/engine"
	"gridiron/internal/forensic"
)

func loadConfig() (*config.ProjectConfig, error) {
	return config.LoadProjectConfig(config.DefaultFile)
}

func loadEngine(cfg *config.ProjectConfig) (*engine.Engine, error) {
	cat, err := catalog.Load(cfg.Resources)
	if err != nil {
		return nil, err
	}
	return engine.New(cat, cfg.Seed, engine.WithDevMode(cfg.DevMode))
}

// reportFailure persists the forensic artifact of an integrity error
// before handing the error back to cobra.
func reportFailure(cfg *config.ProjectConfig, err error) error {
	var ierr *forensic.IntegrityError
	if !errors.As(err, &ierr) {
		return err
	}
	path, persistErr := forensic.Persist(ierr.Artifact, cfg.Forensics)
	if persistErr != nil {
		fmt.Fprintf(os.Stderr, "persisting forensic artifact: %v\n", persistErr)
		return err
	}
	fmt.Fprintf(os.Stderr, "forensic artifact written to %s\n", path)
	return err
}
