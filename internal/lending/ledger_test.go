package lending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

func newLedger(t *testing.T, opts Options, titles ...string) *Ledger {
	t.Helper()
	r := catalog.NewRegistry(catalog.RejectDuplicates)
	for _, title := range titles {
		_, err := r.Add(models.NewBook(title, "anon"))
		require.NoError(t, err)
	}
	return NewLedger(r, opts)
}

func heldIDs(m *models.Member) []int {
	ids := []int{}
	for _, it := range m.Held() {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestLedgerScenario(t *testing.T) {
	l := newLedger(t, Options{}, "1984")
	alice, err := l.Register("Alice")
	require.NoError(t, err)
	bob, err := l.Register("Bob")
	require.NoError(t, err)
	item, _ := l.Registry().Get(1)

	require.NoError(t, l.Borrow("Alice", 1))
	assert.False(t, item.Available())
	assert.Equal(t, []int{1}, heldIDs(alice))
	require.NoError(t, l.Verify())

	err = l.Borrow("Bob", 1)
	assert.ErrorIs(t, err, shared.ErrItemAlreadyBorrowed)
	assert.False(t, item.Available())
	assert.Equal(t, []int{1}, heldIDs(alice))
	assert.Empty(t, heldIDs(bob))

	holder, ok := l.Holder(1)
	require.True(t, ok)
	assert.Same(t, alice, holder)

	require.NoError(t, l.Return("Alice", 1))
	assert.True(t, item.Available())
	assert.Empty(t, heldIDs(alice))
	require.NoError(t, l.Verify())

	_, ok = l.Holder(1)
	assert.False(t, ok)
}

func TestLedgerExplicitReturn(t *testing.T) {
	t.Run("not held by member leaves state unchanged", func(t *testing.T) {
		l := newLedger(t, Options{}, "A", "B")
		_, err := l.Register("Alice")
		require.NoError(t, err)
		bob, err := l.Register("Bob")
		require.NoError(t, err)
		require.NoError(t, l.Borrow("Bob", 1))

		err = l.Return("Alice", 1)
		assert.ErrorIs(t, err, shared.ErrItemNotHeldByMember)

		item, _ := l.Registry().Get(1)
		assert.False(t, item.Available())
		assert.Equal(t, []int{1}, heldIDs(bob))

		err = l.Return("Alice", 2)
		assert.ErrorIs(t, err, shared.ErrItemNotHeldByMember)
		require.NoError(t, l.Verify())
	})

	t.Run("removes from any position", func(t *testing.T) {
		l := newLedger(t, Options{}, "A", "B", "C")
		alice, err := l.Register("Alice")
		require.NoError(t, err)
		for id := 1; id <= 3; id++ {
			require.NoError(t, l.Borrow("Alice", id))
		}

		require.NoError(t, l.Return("Alice", 2))
		assert.Equal(t, []int{1, 3}, heldIDs(alice))
		require.NoError(t, l.Verify())
	})

	t.Run("round trip restores state", func(t *testing.T) {
		l := newLedger(t, Options{}, "A")
		alice, err := l.Register("Alice")
		require.NoError(t, err)
		item, _ := l.Registry().Get(1)
		before := item.View()

		require.NoError(t, l.Borrow("Alice", 1))
		require.NoError(t, l.Return("Alice", 1))

		assert.Equal(t, before, item.View())
		assert.Empty(t, heldIDs(alice))
	})

	t.Run("ReturnOldest is refused", func(t *testing.T) {
		l := newLedger(t, Options{}, "A")
		_, err := l.Register("Alice")
		require.NoError(t, err)
		require.NoError(t, l.Borrow("Alice", 1))

		_, err = l.ReturnOldest("Alice")
		assert.ErrorIs(t, err, shared.ErrReturnPolicyMismatch)
		item, _ := l.Registry().Get(1)
		assert.False(t, item.Available())
	})
}

func TestLedgerOldestReturn(t *testing.T) {
	t.Run("FIFO order then nothing to return", func(t *testing.T) {
		l := newLedger(t, Options{ReturnPolicy: ReturnOldest}, "A", "B", "C")
		_, err := l.Register("Alice")
		require.NoError(t, err)
		for id := 1; id <= 3; id++ {
			require.NoError(t, l.Borrow("Alice", id))
		}

		for _, want := range []string{"A", "B", "C"} {
			item, err := l.ReturnOldest("Alice")
			require.NoError(t, err)
			assert.Equal(t, want, item.Title())
			assert.True(t, item.Available())
			require.NoError(t, l.Verify())
		}

		_, err = l.ReturnOldest("Alice")
		assert.ErrorIs(t, err, shared.ErrNoItemsHeld)
	})

	t.Run("explicit Return is refused", func(t *testing.T) {
		l := newLedger(t, Options{ReturnPolicy: ReturnOldest}, "A")
		_, err := l.Register("Alice")
		require.NoError(t, err)
		require.NoError(t, l.Borrow("Alice", 1))

		assert.ErrorIs(t, l.Return("Alice", 1), shared.ErrReturnPolicyMismatch)
	})

	t.Run("unknown member", func(t *testing.T) {
		l := newLedger(t, Options{ReturnPolicy: ReturnOldest})
		_, err := l.ReturnOldest("Nobody")
		assert.ErrorIs(t, err, shared.ErrMemberNotFound)
	})
}

func TestLedgerLookups(t *testing.T) {
	t.Run("unknown member and item", func(t *testing.T) {
		l := newLedger(t, Options{}, "A")
		_, err := l.Register("Alice")
		require.NoError(t, err)

		assert.ErrorIs(t, l.Borrow("Nobody", 1), shared.ErrMemberNotFound)
		assert.ErrorIs(t, l.Borrow("Alice", 9), shared.ErrItemNotFound)
		assert.ErrorIs(t, l.Return("Nobody", 1), shared.ErrMemberNotFound)
		assert.ErrorIs(t, l.Return("Alice", 9), shared.ErrItemNotFound)
	})

	t.Run("BorrowAs uses member id", func(t *testing.T) {
		l := newLedger(t, Options{}, "A")
		alice, err := l.Register("Alice")
		require.NoError(t, err)

		require.NoError(t, l.BorrowAs(alice.ID, 1))
		assert.True(t, alice.Holds(1))
		assert.ErrorIs(t, l.BorrowAs("missing", 1), shared.ErrMemberNotFound)
		assert.ErrorIs(t, l.BorrowAs(alice.ID, 5), shared.ErrItemNotFound)
	})
}

func TestLedgerRegister(t *testing.T) {
	t.Run("rejects duplicate names by default", func(t *testing.T) {
		l := newLedger(t, Options{})
		_, err := l.Register("Alice")
		require.NoError(t, err)

		_, err = l.Register("Alice")
		assert.ErrorIs(t, err, shared.ErrDuplicateMember)
	})

	t.Run("allows duplicates when configured", func(t *testing.T) {
		l := newLedger(t, Options{AllowDuplicateNames: true}, "A")
		first, err := l.Register("Alice")
		require.NoError(t, err)
		second, err := l.Register("Alice")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		require.NoError(t, l.Borrow("Alice", 1))
		assert.True(t, first.Holds(1))
		assert.False(t, second.Holds(1))

		var names []string
		for m := range l.Members() {
			names = append(names, m.Name)
		}
		assert.Equal(t, []string{"Alice", "Alice"}, names)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		l := newLedger(t, Options{})
		_, err := l.Register("   ")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("Restore keeps ids unique", func(t *testing.T) {
		l := newLedger(t, Options{})
		m := models.NewMember("Alice")
		require.NoError(t, l.Restore(m))
		assert.ErrorIs(t, l.Restore(m), shared.ErrDuplicateMember)
		assert.ErrorIs(t, l.Restore(&models.Member{}), shared.ErrInvalidInput)

		got, ok := l.MemberByID(m.ID)
		require.True(t, ok)
		assert.Same(t, m, got)
	})
}

func TestLedgerVerify(t *testing.T) {
	l := newLedger(t, Options{}, "A")
	item, _ := l.Registry().Get(1)
	require.NoError(t, item.Borrow())

	assert.ErrorIs(t, l.Verify(), shared.ErrInvalidInput)
}

func TestParseReturnPolicy(t *testing.T) {
	p, err := ParseReturnPolicy("oldest")
	require.NoError(t, err)
	assert.Equal(t, ReturnOldest, p)
	assert.Equal(t, "oldest", p.String())

	p, err = ParseReturnPolicy("explicit")
	require.NoError(t, err)
	assert.Equal(t, ReturnExplicit, p)

	_, err = ParseReturnPolicy("lifo")
	assert.ErrorIs(t, err, shared.ErrInvalidConfig)
}
