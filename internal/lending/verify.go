package lending

import (
	"errors"
	"fmt"

	"github.com/desertthunder/shelf/internal/shared"
)

// Verify checks that every registry item is unavailable exactly when one member holds it.
func (l *Ledger) Verify() error {
	holders := make(map[int]int)
	for _, m := range l.members {
		for _, item := range m.Held() {
			holders[item.ID]++
			if current, ok := l.registry.Get(item.ID); !ok || current != item {
				return fmt.Errorf("%w: %s holds item %d which is not in the catalog", shared.ErrInvalidInput, m.Name, item.ID)
			}
		}
	}

	var errs []error
	for id, item := range l.registry.All() {
		switch n := holders[id]; {
		case n > 1:
			errs = append(errs, fmt.Errorf("item %d held by %d members", id, n))
		case n == 1 && item.Available():
			errs = append(errs, fmt.Errorf("item %d is held but marked available", id))
		case n == 0 && !item.Available():
			errs = append(errs, fmt.Errorf("item %d is unavailable but nobody holds it", id))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}
