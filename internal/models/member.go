package models

import (
	"slices"
	"time"

	"github.com/desertthunder/shelf/internal/shared"
)

// Member is a library patron. The name is for display only; ID identifies the member.
type Member struct {
	ID           string
	Name         string
	RegisteredAt time.Time

	held []*Item
}

// NewMember creates a member with a fresh id and no held items.
func NewMember(name string) *Member {
	return &Member{ID: shared.GenerateID(), Name: name, RegisteredAt: time.Now().UTC()}
}

// Hold appends item to the member's held items.
func (m *Member) Hold(item *Item) {
	m.held = append(m.held, item)
}

// Release removes the item with the given id from any position.
func (m *Member) Release(itemID int) (*Item, bool) {
	idx := slices.IndexFunc(m.held, func(it *Item) bool { return it.ID == itemID })
	if idx < 0 {
		return nil, false
	}
	item := m.held[idx]
	m.held = slices.Delete(m.held, idx, idx+1)
	return item, true
}

// ReleaseOldest removes and returns the item held the longest.
func (m *Member) ReleaseOldest() (*Item, bool) {
	if len(m.held) == 0 {
		return nil, false
	}
	item := m.held[0]
	m.held = slices.Delete(m.held, 0, 1)
	return item, true
}

// Holds reports whether the member currently holds the item with the given id.
func (m *Member) Holds(itemID int) bool {
	return slices.ContainsFunc(m.held, func(it *Item) bool { return it.ID == itemID })
}

// Held returns the held items, oldest first. The slice is a copy.
func (m *Member) Held() []*Item {
	return slices.Clone(m.held)
}

// MemberView is the serializable form of a [Member].
type MemberView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
	Held         []int     `json:"held"`
}

// View returns the serializable form of the member.
func (m *Member) View() MemberView {
	held := make([]int, 0, len(m.held))
	for _, it := range m.held {
		held = append(held, it.ID)
	}
	return MemberView{ID: m.ID, Name: m.Name, RegisteredAt: m.RegisteredAt, Held: held}
}
