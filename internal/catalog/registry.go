// Package catalog holds the item registry: items keyed by integer identifier,
// kept in insertion order, with case-insensitive title lookup.
package catalog

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// DuplicatePolicy decides what adding an item under a used identifier does.
type DuplicatePolicy int

const (
	// RejectDuplicates reports [shared.ErrDuplicateIdentifier] and leaves the registry unchanged.
	RejectDuplicates DuplicatePolicy = iota
	// OverwriteDuplicates replaces the entry in place, keeping its position.
	OverwriteDuplicates
)

// ParseDuplicatePolicy maps the config values "reject" and "overwrite".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case shared.DuplicateReject, "":
		return RejectDuplicates, nil
	case shared.DuplicateOverwrite:
		return OverwriteDuplicates, nil
	default:
		return RejectDuplicates, fmt.Errorf("%w: duplicate policy %q", shared.ErrInvalidConfig, s)
	}
}

// Registry owns the catalog items.
type Registry struct {
	policy DuplicatePolicy
	items  map[int]*models.Item
	order  []int
}

// NewRegistry creates an empty registry.
func NewRegistry(policy DuplicatePolicy) *Registry {
	return &Registry{policy: policy, items: make(map[int]*models.Item)}
}

// Policy returns the duplicate identifier policy.
func (r *Registry) Policy() DuplicatePolicy { return r.policy }

// Len returns the number of items.
func (r *Registry) Len() int { return len(r.order) }

// Add inserts item under the next identifier, Len()+1, and returns it.
//
// Under [RejectDuplicates] a taken identifier (left behind by a Remove) is
// skipped in favour of the next free one.
func (r *Registry) Add(item *models.Item) (int, error) {
	id := r.Len() + 1
	if r.policy == RejectDuplicates {
		for _, taken := r.items[id]; taken; _, taken = r.items[id] {
			id++
		}
	}
	if err := r.AddWithID(id, item); err != nil {
		return 0, err
	}
	return id, nil
}

// AddWithID inserts item under id, applying the duplicate policy when id is taken.
//
// An overwrite never replaces an item that is currently borrowed. Items
// already in the registry, or on loan, are refused.
func (r *Registry) AddWithID(id int, item *models.Item) error {
	if id <= 0 {
		return fmt.Errorf("%w: identifier must be positive, got %d", shared.ErrInvalidInput, id)
	}
	if item == nil {
		return fmt.Errorf("%w: item is nil", shared.ErrInvalidInput)
	}
	if !item.Available() {
		return fmt.Errorf("%w: %q is on loan", shared.ErrInvalidInput, item.Title())
	}
	if r.items[item.ID] == item {
		return fmt.Errorf("%w: %q is already catalogued as %d", shared.ErrInvalidInput, item.Title(), item.ID)
	}
	if err := item.Validate(); err != nil {
		return err
	}

	existing, taken := r.items[id]
	if taken {
		if r.policy == RejectDuplicates {
			return fmt.Errorf("%w: %d", shared.ErrDuplicateIdentifier, id)
		}
		if !existing.Available() {
			return fmt.Errorf("%w: cannot overwrite %d (%s)", shared.ErrItemAlreadyBorrowed, id, existing.Title())
		}
	} else {
		r.order = append(r.order, id)
	}

	item.ID = id
	r.items[id] = item
	return nil
}

// Get returns the item with the given identifier.
func (r *Registry) Get(id int) (*models.Item, bool) {
	item, ok := r.items[id]
	return item, ok
}

// FindByTitle returns the first item, in insertion order, whose title matches case-insensitively.
func (r *Registry) FindByTitle(title string) (*models.Item, bool) {
	for _, id := range r.order {
		if item := r.items[id]; strings.EqualFold(item.Title(), title) {
			return item, true
		}
	}
	return nil, false
}

// All yields (identifier, item) pairs in insertion order.
func (r *Registry) All() iter.Seq2[int, *models.Item] {
	return func(yield func(int, *models.Item) bool) {
		for _, id := range r.order {
			if !yield(id, r.items[id]) {
				return
			}
		}
	}
}

// Items returns the items in insertion order.
func (r *Registry) Items() []*models.Item {
	items := make([]*models.Item, 0, len(r.order))
	for _, item := range r.All() {
		items = append(items, item)
	}
	return items
}

// Remove deletes the item with the given identifier. Borrowed items cannot be removed.
func (r *Registry) Remove(id int) error {
	item, ok := r.items[id]
	if !ok {
		return fmt.Errorf("%w: %d", shared.ErrItemNotFound, id)
	}
	if !item.Available() {
		return fmt.Errorf("%w: cannot remove %d (%s)", shared.ErrItemAlreadyBorrowed, id, item.Title())
	}

	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(v int) bool { return v == id })
	return nil
}
