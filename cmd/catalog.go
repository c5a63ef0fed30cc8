package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/importer"
	"github.com/desertthunder/shelf/internal/lending"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// ItemAdd catalogs a new item, under --id when given.
func (r *Runner) ItemAdd(ctx context.Context, cmd *cli.Command) error {
	kind, err := models.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}
	id := int(cmd.Int("id"))
	if id < 0 {
		return fmt.Errorf("%w: --id must be positive", shared.ErrInvalidFlag)
	}

	item := newItem(kind, cmd.String("title"), cmd.String("creator"), int(cmd.Int("file-size")), cmd.Duration("duration"), int(cmd.Int("issue")))

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		registry := ledger.Registry()
		if id == 0 {
			if id, err = registry.Add(item); err != nil {
				return false, err
			}
		} else if err := registry.AddWithID(id, item); err != nil {
			return false, err
		}

		r.logger.Info("item added", "id", id, "kind", kind)
		return true, r.writePlain("✓ Added [%d] %s\n", id, item.Info())
	})
}

// ItemList prints the catalog in insertion order.
func (r *Runner) ItemList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		registry := ledger.Registry()
		if useJSON {
			views := make([]models.ItemView, 0, registry.Len())
			for _, item := range registry.All() {
				views = append(views, item.View())
			}
			return false, r.writeJSON(views, pretty)
		}

		r.writePlainHeader(fmt.Sprintf("Catalog (%d items)", registry.Len()))
		for id, item := range registry.All() {
			if err := r.writePlain("[%d] %s\n", id, item.Info()); err != nil {
				return false, err
			}
		}
		return false, nil
	})
}

// ItemShow prints one item and who holds it.
func (r *Runner) ItemShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		item, ok := ledger.Registry().Get(id)
		if !ok {
			return false, fmt.Errorf("%w: %d", shared.ErrItemNotFound, id)
		}
		return false, r.showItem(ledger, item)
	})
}

// ItemFind prints the first item whose title matches, ignoring case.
func (r *Runner) ItemFind(ctx context.Context, cmd *cli.Command) error {
	title := strings.TrimSpace(cmd.StringArg("title"))
	if title == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		item, ok := ledger.Registry().FindByTitle(title)
		if !ok {
			return false, fmt.Errorf("%w: no item titled %q", shared.ErrItemNotFound, title)
		}
		return false, r.showItem(ledger, item)
	})
}

func (r *Runner) showItem(ledger *lending.Ledger, item *models.Item) error {
	if err := r.writePlain("[%d] %s\n", item.ID, item.Info()); err != nil {
		return err
	}
	if holder, ok := ledger.Holder(item.ID); ok {
		return r.writePlain("Borrowed by: %s\n", holder.Name)
	}
	return nil
}

// ItemRemove deletes an item that nobody holds.
func (r *Runner) ItemRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		item, ok := ledger.Registry().Get(id)
		if !ok {
			return false, fmt.Errorf("%w: %d", shared.ErrItemNotFound, id)
		}
		if err := ledger.Registry().Remove(id); err != nil {
			return false, err
		}
		r.logger.Info("item removed", "id", id)
		return true, r.writePlain("✓ Removed [%d] %s\n", id, item.Title())
	})
}

// ItemExport writes the catalog with the formatter selected by --format.
func (r *Runner) ItemExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	output := cmd.String("output")

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		export := formatter.NewCatalogExport("shelf catalog", ledger.Registry().Items())
		written, err := formatter.Write(export, format, output)
		if err != nil {
			return false, fmt.Errorf("export failed: %w", err)
		}

		r.logger.Info("catalog exported", "format", format, "items", len(export.Items))
		if err := r.writePlain("✓ Exported %d items\n", len(export.Items)); err != nil {
			return false, err
		}
		for _, file := range written {
			if err := r.writePlain("  %s\n", file); err != nil {
				return false, err
			}
		}
		return false, nil
	})
}

// ItemImport catalogs the books of a saved calibre-web listing page.
func (r *Runner) ItemImport(ctx context.Context, cmd *cli.Command) error {
	file := cmd.StringArg("file")
	if file == "" {
		return fmt.Errorf("%w: file", shared.ErrMissingArgument)
	}
	kind, err := models.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}

	entries, err := importer.ParseFile(file)
	if err != nil {
		return err
	}
	r.logger.Debug("parsed listing", "file", file, "entries", len(entries))

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		result, err := importer.Import(ledger.Registry(), entries, kind, r.logger)
		if err != nil {
			r.logger.Warn("import stopped", "added", len(result.Added), "error", err)
			return len(result.Added) > 0, err
		}
		return len(result.Added) > 0, r.writePlain("✓ Imported %d items (%d already catalogued)\n", len(result.Added), len(result.Skipped))
	})
}

func newItem(kind models.Kind, title, creator string, fileSizeMB int, duration time.Duration, issue int) *models.Item {
	switch kind {
	case models.KindEBook:
		return models.NewEBook(title, creator, fileSizeMB)
	case models.KindAudioBook:
		return models.NewAudioBook(title, creator, duration)
	case models.KindMagazine:
		return models.NewMagazine(title, creator, issue)
	default:
		return models.NewBook(title, creator)
	}
}

func parseID(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an item identifier", shared.ErrInvalidArgument, s)
	}
	return id, nil
}
