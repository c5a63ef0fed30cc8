package repositories

import (
	"fmt"
	"time"

	"github.com/desertthunder/shelf/internal/models"
)

const (
	tableItems    = "items"
	tableMembers  = "members"
	tableHoldings = "holdings"

	colSequence = "sequence"
	colPosition = "position"
	colMemberID = "member_id"
)

// itemRow is the stored form of a [models.Item].
type itemRow struct {
	ID              int    `db:"id"`
	Sequence        int    `db:"sequence"`
	Kind            string `db:"kind"`
	Title           string `db:"title"`
	Creator         string `db:"creator"`
	FileSizeMB      int    `db:"file_size_mb"`
	DurationSeconds int64  `db:"duration_seconds"`
	Issue           int    `db:"issue"`
}

// memberRow is the stored form of a [models.Member].
type memberRow struct {
	ID           string    `db:"id"`
	Sequence     int       `db:"sequence"`
	Name         string    `db:"name"`
	RegisteredAt time.Time `db:"registered_at"`
}

// holdingRow records one held item.
type holdingRow struct {
	ItemID   int    `db:"item_id"`
	MemberID string `db:"member_id"`
	Position int    `db:"position"`
}

func newItemRow(sequence int, item *models.Item) itemRow {
	return itemRow{
		ID:              item.ID,
		Sequence:        sequence,
		Kind:            item.Kind.String(),
		Title:           item.Title(),
		Creator:         item.Creator(),
		FileSizeMB:      item.FileSizeMB,
		DurationSeconds: int64(item.Duration / time.Second),
		Issue:           item.Issue,
	}
}

// toItem rebuilds an available item from its row.
func (r itemRow) toItem() (*models.Item, error) {
	kind, err := models.ParseKind(r.Kind)
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", r.ID, err)
	}

	var item *models.Item
	switch kind {
	case models.KindEBook:
		item = models.NewEBook(r.Title, r.Creator, r.FileSizeMB)
	case models.KindAudioBook:
		item = models.NewAudioBook(r.Title, r.Creator, time.Duration(r.DurationSeconds)*time.Second)
	case models.KindMagazine:
		item = models.NewMagazine(r.Title, r.Creator, r.Issue)
	default:
		item = models.NewBook(r.Title, r.Creator)
	}
	item.ID = r.ID
	return item, nil
}

func newMemberRow(sequence int, m *models.Member) memberRow {
	return memberRow{ID: m.ID, Sequence: sequence, Name: m.Name, RegisteredAt: m.RegisteredAt}
}

func (r memberRow) toMember() *models.Member {
	return &models.Member{ID: r.ID, Name: r.Name, RegisteredAt: r.RegisteredAt}
}
