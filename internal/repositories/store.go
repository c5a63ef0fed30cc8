package repositories

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"github.com/desertthunder/shelf/internal/lending"
	"github.com/desertthunder/shelf/internal/shared"
)

// Store saves and loads library snapshots.
type Store struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
	logger  *log.Logger
}

// NewStore creates a Store over db, building queries for the given driver's dialect.
//
// The schema must already be migrated (see [shared.RunMigrations]).
func NewStore(db *sqlx.DB, driver string, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		db:      db,
		dialect: goqu.Dialect(shared.Dialect(driver)),
		logger:  shared.WithLogger(logger, "component", "store"),
	}
}

// Empty reports whether neither items nor members have been saved yet.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	for _, table := range []string{tableItems, tableMembers} {
		query, args, err := s.dialect.From(table).Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
		if err != nil {
			return false, fmt.Errorf("%w: build count query for %s: %w", shared.ErrStoreFailed, table, err)
		}

		var count int
		if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
			return false, fmt.Errorf("%w: count %s: %w", shared.ErrStoreFailed, table, err)
		}
		if count > 0 {
			return false, nil
		}
	}
	return true, nil
}

// Save replaces the stored snapshot with the ledger's members and holdings and its registry's items.
func (s *Store) Save(ctx context.Context, ledger *lending.Ledger) error {
	var (
		items    []any
		members  []any
		holdings []any
	)

	sequence := 0
	for _, item := range ledger.Registry().All() {
		sequence++
		items = append(items, newItemRow(sequence, item))
	}

	sequence = 0
	for m := range ledger.Members() {
		sequence++
		members = append(members, newMemberRow(sequence, m))
		for pos, item := range m.Held() {
			holdings = append(holdings, holdingRow{ItemID: item.ID, MemberID: m.ID, Position: pos + 1})
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", shared.ErrStoreFailed, err)
	}
	defer tx.Rollback()

	for _, table := range []string{tableHoldings, tableMembers, tableItems} {
		query, args, err := s.dialect.Delete(table).Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("%w: build delete for %s: %w", shared.ErrStoreFailed, table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: clear %s: %w", shared.ErrStoreFailed, table, err)
		}
	}

	for _, batch := range []struct {
		table string
		rows  []any
	}{
		{tableItems, items},
		{tableMembers, members},
		{tableHoldings, holdings},
	} {
		if len(batch.rows) == 0 {
			continue
		}
		query, args, err := s.dialect.Insert(batch.table).Rows(batch.rows...).Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("%w: build insert for %s: %w", shared.ErrStoreFailed, batch.table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: insert %s: %w", shared.ErrStoreFailed, batch.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", shared.ErrStoreFailed, err)
	}

	s.logger.Debug("snapshot saved", "items", len(items), "members", len(members), "holdings", len(holdings))
	return nil
}

// Load fills an empty ledger (and its registry) from the stored snapshot.
//
// Holdings are replayed through [lending.Ledger.BorrowAs] in borrow order, then the result is verified.
func (s *Store) Load(ctx context.Context, ledger *lending.Ledger) error {
	registry := ledger.Registry()
	if registry.Len() != 0 {
		return fmt.Errorf("%w: load requires an empty registry", shared.ErrInvalidInput)
	}

	var items []itemRow
	if err := s.selectOrdered(ctx, &items, tableItems, goqu.I(colSequence).Asc()); err != nil {
		return err
	}
	for _, row := range items {
		item, err := row.toItem()
		if err != nil {
			return fmt.Errorf("%w: %w", shared.ErrStoreFailed, err)
		}
		if err := registry.AddWithID(row.ID, item); err != nil {
			return fmt.Errorf("%w: restore item %d: %w", shared.ErrStoreFailed, row.ID, err)
		}
	}

	var members []memberRow
	if err := s.selectOrdered(ctx, &members, tableMembers, goqu.I(colSequence).Asc()); err != nil {
		return err
	}
	for _, row := range members {
		if err := ledger.Restore(row.toMember()); err != nil {
			return fmt.Errorf("%w: restore member %s: %w", shared.ErrStoreFailed, row.ID, err)
		}
	}

	var holdings []holdingRow
	if err := s.selectOrdered(ctx, &holdings, tableHoldings, goqu.I(colMemberID).Asc(), goqu.I(colPosition).Asc()); err != nil {
		return err
	}
	for _, row := range holdings {
		if err := ledger.BorrowAs(row.MemberID, row.ItemID); err != nil {
			return fmt.Errorf("%w: restore holding of item %d: %w", shared.ErrStoreFailed, row.ItemID, err)
		}
	}

	if err := ledger.Verify(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrStoreFailed, err)
	}

	s.logger.Debug("snapshot loaded", "items", len(items), "members", len(members), "holdings", len(holdings))
	return nil
}

func (s *Store) selectOrdered(ctx context.Context, dest any, table string, order ...exp.OrderedExpression) error {
	query, args, err := s.dialect.From(table).Order(order...).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("%w: build select for %s: %w", shared.ErrStoreFailed, table, err)
	}
	if err := s.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("%w: select %s: %w", shared.ErrStoreFailed, table, err)
	}
	return nil
}
