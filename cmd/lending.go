package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/shelf/internal/lending"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// Borrow lends the item chosen by --id or --title to --member.
func (r *Runner) Borrow(ctx context.Context, cmd *cli.Command) error {
	member := cmd.String("member")
	id, title, err := itemSelector(cmd)
	if err != nil {
		return err
	}

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		item, err := selectItem(ledger, id, title)
		if err != nil {
			return false, err
		}
		if err := ledger.Borrow(member, item.ID); err != nil {
			return false, err
		}
		r.logger.Info("borrowed", "member", member, "id", item.ID)
		return true, r.writePlain("✓ %s borrowed %s\n", member, item.Title())
	})
}

// ReturnItem takes back the item chosen by --id or --title from --member.
func (r *Runner) ReturnItem(ctx context.Context, cmd *cli.Command) error {
	member := cmd.String("member")
	id, title, err := itemSelector(cmd)
	if err != nil {
		return err
	}

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		item, err := selectItem(ledger, id, title)
		if err != nil {
			return false, err
		}
		if err := ledger.Return(member, item.ID); err != nil {
			return false, err
		}
		r.logger.Info("returned", "member", member, "id", item.ID)
		return true, r.writePlain("✓ %s returned %s\n", member, item.Title())
	})
}

// ReturnOldest takes back --member's longest-held item.
func (r *Runner) ReturnOldest(ctx context.Context, cmd *cli.Command) error {
	member := cmd.String("member")

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		item, err := ledger.ReturnOldest(member)
		if err != nil {
			return false, err
		}
		r.logger.Info("returned", "member", member, "id", item.ID)
		return true, r.writePlain("✓ %s returned %s\n", member, item.Title())
	})
}

func itemSelector(cmd *cli.Command) (int, string, error) {
	id := int(cmd.Int("id"))
	title := cmd.String("title")

	switch {
	case id == 0 && title == "":
		return 0, "", fmt.Errorf("%w: either --id or --title must be provided", shared.ErrMissingArgument)
	case id != 0 && title != "":
		return 0, "", fmt.Errorf("%w: cannot specify both --id and --title", shared.ErrInvalidArgument)
	}
	return id, title, nil
}

func selectItem(ledger *lending.Ledger, id int, title string) (*models.Item, error) {
	if title != "" {
		item, ok := ledger.Registry().FindByTitle(title)
		if !ok {
			return nil, fmt.Errorf("%w: no item titled %q", shared.ErrItemNotFound, title)
		}
		return item, nil
	}

	item, ok := ledger.Registry().Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", shared.ErrItemNotFound, id)
	}
	return item, nil
}
