// package models defines the data model for the library
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/shelf/internal/shared"
)

// Kind tags the variant of an [Item].
type Kind int

const (
	KindBook Kind = iota
	KindEBook
	KindAudioBook
	KindMagazine
)

var kindNames = map[Kind]string{
	KindBook:      "book",
	KindEBook:     "ebook",
	KindAudioBook: "audiobook",
	KindMagazine:  "magazine",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a kind name ("book", "ebook", "audiobook", "magazine") into a [Kind].
func ParseKind(s string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	for k, name := range kindNames {
		if name == normalized {
			return k, nil
		}
	}
	return KindBook, fmt.Errorf("%w: unknown item kind %q", shared.ErrInvalidArgument, s)
}

// Lendable is the capability set shared by every item variant.
type Lendable interface {
	Title() string
	Creator() string
	Info() string
	Available() bool
	Borrow() error
	Return()
}

var _ Lendable = (*Item)(nil)

// Item is a lendable catalog entry.
//
// Variant attributes are only meaningful for their [Kind]: FileSizeMB for e-books,
// Duration for audiobooks and Issue for magazines.
type Item struct {
	ID         int
	Kind       Kind
	FileSizeMB int
	Duration   time.Duration
	Issue      int

	title     string
	creator   string
	available bool
}

// NewBook creates an available book.
func NewBook(title, author string) *Item {
	return &Item{Kind: KindBook, title: title, creator: author, available: true}
}

// NewEBook creates an available e-book with a file size in megabytes.
func NewEBook(title, author string, fileSizeMB int) *Item {
	item := NewBook(title, author)
	item.Kind = KindEBook
	item.FileSizeMB = fileSizeMB
	return item
}

// NewAudioBook creates an available audiobook with a running time.
func NewAudioBook(title, author string, duration time.Duration) *Item {
	item := NewBook(title, author)
	item.Kind = KindAudioBook
	item.Duration = duration
	return item
}

// NewMagazine creates an available magazine issue. The creator is the editor.
func NewMagazine(title, editor string, issue int) *Item {
	item := NewBook(title, editor)
	item.Kind = KindMagazine
	item.Issue = issue
	return item
}

func (i *Item) Title() string   { return i.title }
func (i *Item) Creator() string { return i.creator }
func (i *Item) Available() bool { return i.available }

// Borrow moves the item from available to borrowed.
func (i *Item) Borrow() error {
	if !i.available {
		return fmt.Errorf("%w: %s", shared.ErrItemAlreadyBorrowed, i.title)
	}
	i.available = false
	return nil
}

// Return makes the item available again.
func (i *Item) Return() {
	i.available = true
}

// Info renders a one-line summary including the variant-specific attribute.
func (i *Item) Info() string {
	creatorLabel := "Author"
	if i.Kind == KindMagazine {
		creatorLabel = "Editor"
	}

	base := fmt.Sprintf("Title: %s, %s: %s, Available: %t", i.title, creatorLabel, i.creator, i.available)

	switch i.Kind {
	case KindEBook:
		return fmt.Sprintf("%s, File size: %d MB", base, i.FileSizeMB)
	case KindAudioBook:
		return fmt.Sprintf("%s, Duration: %s", base, i.Duration)
	case KindMagazine:
		return fmt.Sprintf("%s, Issue: %d", base, i.Issue)
	default:
		return base
	}
}

// Validate checks that the item can be catalogued.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}
	if _, ok := kindNames[i.Kind]; !ok {
		return fmt.Errorf("%w: unknown kind %d", shared.ErrInvalidInput, int(i.Kind))
	}
	if i.FileSizeMB < 0 || i.Duration < 0 || i.Issue < 0 {
		return fmt.Errorf("%w: variant attributes must not be negative", shared.ErrInvalidInput)
	}
	return nil
}

// ItemView is the serializable form of an [Item] used for JSON output.
type ItemView struct {
	ID         int    `json:"id"`
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Creator    string `json:"creator"`
	Available  bool   `json:"available"`
	FileSizeMB int    `json:"file_size_mb,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Issue      int    `json:"issue,omitempty"`
}

// View returns the serializable form of the item.
func (i *Item) View() ItemView {
	v := ItemView{
		ID:         i.ID,
		Kind:       i.Kind.String(),
		Title:      i.title,
		Creator:    i.creator,
		Available:  i.available,
		FileSizeMB: i.FileSizeMB,
		Issue:      i.Issue,
	}
	if i.Duration > 0 {
		v.Duration = i.Duration.String()
	}
	return v
}
