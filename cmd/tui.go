package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/shelf/internal/lending"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/ui"
)

// TUI launches the interactive lending desk for --member.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	member := cmd.String("member")

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		model, err := ui.Run(ledger, member, r.logger)
		if err != nil {
			return false, err
		}
		return model.Dirty(), nil
	})
}
