package lending

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// ReturnPolicy selects how members give items back.
type ReturnPolicy int

const (
	ReturnExplicit ReturnPolicy = iota
	ReturnOldest
)

func (p ReturnPolicy) String() string {
	if p == ReturnOldest {
		return shared.ReturnOldest
	}
	return shared.ReturnExplicit
}

// ParseReturnPolicy maps the config values "explicit" and "oldest".
func ParseReturnPolicy(s string) (ReturnPolicy, error) {
	switch s {
	case shared.ReturnExplicit, "":
		return ReturnExplicit, nil
	case shared.ReturnOldest:
		return ReturnOldest, nil
	default:
		return ReturnExplicit, fmt.Errorf("%w: return policy %q", shared.ErrInvalidConfig, s)
	}
}

// Options configures a [Ledger].
type Options struct {
	ReturnPolicy ReturnPolicy
	// AllowDuplicateNames registers a second member under an existing name.
	// Lookups by name then resolve to the first one registered.
	AllowDuplicateNames bool
}

// Ledger associates members with the items they hold.
type Ledger struct {
	registry *catalog.Registry
	opts     Options
	members  []*models.Member
}

// NewLedger creates a ledger over registry.
func NewLedger(registry *catalog.Registry, opts Options) *Ledger {
	return &Ledger{registry: registry, opts: opts}
}

// Registry returns the registry the ledger lends from.
func (l *Ledger) Registry() *catalog.Registry { return l.registry }

// Policy returns the return policy.
func (l *Ledger) Policy() ReturnPolicy { return l.opts.ReturnPolicy }

// Register adds a member called name.
func (l *Ledger) Register(name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: member name is required", shared.ErrInvalidInput)
	}

	if _, exists := l.Member(name); exists && !l.opts.AllowDuplicateNames {
		return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateMember, name)
	}

	member := models.NewMember(name)
	l.members = append(l.members, member)
	return member, nil
}

// Restore adds an already identified member, as read back from a store.
func (l *Ledger) Restore(member *models.Member) error {
	if member == nil || member.ID == "" {
		return fmt.Errorf("%w: member id is required", shared.ErrInvalidInput)
	}
	if slices.ContainsFunc(l.members, func(m *models.Member) bool { return m.ID == member.ID }) {
		return fmt.Errorf("%w: %s", shared.ErrDuplicateMember, member.ID)
	}
	l.members = append(l.members, member)
	return nil
}

// Member returns the first registered member called name (exact match).
func (l *Ledger) Member(name string) (*models.Member, bool) {
	for _, m := range l.members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// MemberByID returns the member with the given id.
func (l *Ledger) MemberByID(id string) (*models.Member, bool) {
	for _, m := range l.members {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// Members yields members in registration order.
func (l *Ledger) Members() iter.Seq[*models.Member] {
	return func(yield func(*models.Member) bool) {
		for _, m := range l.members {
			if !yield(m) {
				return
			}
		}
	}
}

// Holder returns the member currently holding the item.
func (l *Ledger) Holder(itemID int) (*models.Member, bool) {
	for _, m := range l.members {
		if m.Holds(itemID) {
			return m, true
		}
	}
	return nil, false
}

// Borrow lends the item to the named member.
func (l *Ledger) Borrow(memberName string, itemID int) error {
	member, item, err := l.resolve(memberName, itemID)
	if err != nil {
		return err
	}
	return l.lend(member, item)
}

// BorrowAs lends the item to the member with the given id.
func (l *Ledger) BorrowAs(memberID string, itemID int) error {
	member, ok := l.MemberByID(memberID)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrMemberNotFound, memberID)
	}
	item, ok := l.registry.Get(itemID)
	if !ok {
		return fmt.Errorf("%w: %d", shared.ErrItemNotFound, itemID)
	}
	return l.lend(member, item)
}

func (l *Ledger) lend(member *models.Member, item *models.Item) error {
	if err := item.Borrow(); err != nil {
		return err
	}
	member.Hold(item)
	return nil
}

// Return takes the item back from the named member. Requires [ReturnExplicit].
func (l *Ledger) Return(memberName string, itemID int) error {
	if l.opts.ReturnPolicy != ReturnExplicit {
		return fmt.Errorf("%w: policy is %s, use return-oldest", shared.ErrReturnPolicyMismatch, l.opts.ReturnPolicy)
	}

	member, item, err := l.resolve(memberName, itemID)
	if err != nil {
		return err
	}

	if _, ok := member.Release(item.ID); !ok {
		return fmt.Errorf("%w: %s does not hold %q", shared.ErrItemNotHeldByMember, member.Name, item.Title())
	}
	item.Return()
	return nil
}

// ReturnOldest takes back the named member's oldest loan. Requires [ReturnOldest].
func (l *Ledger) ReturnOldest(memberName string) (*models.Item, error) {
	if l.opts.ReturnPolicy != ReturnOldest {
		return nil, fmt.Errorf("%w: policy is %s, name the item to return", shared.ErrReturnPolicyMismatch, l.opts.ReturnPolicy)
	}

	member, ok := l.Member(memberName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrMemberNotFound, memberName)
	}

	item, ok := member.ReleaseOldest()
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoItemsHeld, member.Name)
	}
	item.Return()
	return item, nil
}

func (l *Ledger) resolve(memberName string, itemID int) (*models.Member, *models.Item, error) {
	member, ok := l.Member(memberName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", shared.ErrMemberNotFound, memberName)
	}
	item, ok := l.registry.Get(itemID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", shared.ErrItemNotFound, itemID)
	}
	return member, item, nil
}
