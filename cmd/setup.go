package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/shelf/internal/lending"
	"github.com/desertthunder/shelf/internal/shared"
)

// SetupConfig writes the example configuration to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		return fmt.Errorf("%w: config path", shared.ErrMissingArgument)
	}

	force := cmd.Bool("force")
	if _, err := os.Stat(path); err == nil && !force {
		r.logger.Warn("config file already exists", "path", path)
		return r.writePlain("✗ %s already exists (use --force to overwrite)\n", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat config: %w", err)
	}

	if err := shared.WriteConfigFile(path, force); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	r.logger.Info("config file created", "path", path)
	return r.writePlain("✓ Config written to %s\n", path)
}

// SetupDatabase initializes the database, runs migrations and seeds an empty store.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "driver", r.config.Database.Driver, "path", r.config.Database.Path)

	var items, members int
	err := r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		items = ledger.Registry().Len()
		for range ledger.Members() {
			members++
		}
		return false, nil
	})
	if err != nil {
		return err
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("✓ Database ready: %d items, %d members\n", items, members)
}
