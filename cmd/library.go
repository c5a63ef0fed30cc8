package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/lending"
	"github.com/desertthunder/shelf/internal/repositories"
	"github.com/desertthunder/shelf/internal/shared"
)

// library is one load, act, save cycle over the snapshot store.
type library struct {
	db     *sqlx.DB
	store  *repositories.Store
	ledger *lending.Ledger
	seeded bool
}

func (l *library) Close() error { return l.db.Close() }

// openLibrary opens the configured database, migrates it, and loads the stored snapshot.
//
// An empty store is seeded with the starter catalog when [shared.CatalogConfig.Seed] is set.
func (r *Runner) openLibrary(ctx context.Context) (*library, error) {
	dbConfig := r.config.Database

	duplicates, err := catalog.ParseDuplicatePolicy(r.config.Catalog.DuplicateIDs)
	if err != nil {
		return nil, err
	}
	policy, err := lending.ParseReturnPolicy(r.config.Lending.ReturnPolicy)
	if err != nil {
		return nil, err
	}

	db, err := shared.NewDatabase(dbConfig.Driver, dbConfig.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}
	shared.ConfigureDatabase(db, dbConfig.MaxOpenConns, dbConfig.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	lib := &library{
		db:    db,
		store: repositories.NewStore(db, dbConfig.Driver, r.logger),
		ledger: lending.NewLedger(catalog.NewRegistry(duplicates), lending.Options{
			ReturnPolicy:        policy,
			AllowDuplicateNames: r.config.Lending.DuplicateMembers == shared.DuplicateAllow,
		}),
	}

	empty, err := lib.store.Empty(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	switch {
	case !empty:
		if err := lib.store.Load(ctx, lib.ledger); err != nil {
			db.Close()
			return nil, err
		}
	case r.config.Catalog.Seed:
		if err := catalog.SeedRegistry(lib.ledger.Registry()); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
		lib.seeded = true
		r.logger.Info("seeded starter catalog", "items", lib.ledger.Registry().Len())
	}

	return lib, nil
}

// withLibrary runs fn against the loaded ledger and saves the snapshot when fn reports a change.
//
// Lending failures and rejected input are printed as "✗ ..." and are not returned.
// Changes fn made before it was refused are still saved.
func (r *Runner) withLibrary(ctx context.Context, fn func(*lending.Ledger) (bool, error)) error {
	lib, err := r.openLibrary(ctx)
	if err != nil {
		return err
	}
	defer lib.Close()

	changed, err := fn(lib.ledger)
	if err != nil {
		if !isUserError(err) {
			return err
		}
		r.logger.Debug("command refused", "error", err)
		if werr := r.writePlain("✗ %v\n", err); werr != nil {
			return werr
		}
	}

	if !changed && !lib.seeded {
		return nil
	}
	return lib.store.Save(ctx, lib.ledger)
}

func isUserError(err error) bool {
	return shared.IsLendingError(err) || errors.Is(err, shared.ErrInvalidInput)
}
