// package importer reads catalog items out of saved calibre-web book listings
package importer

import (
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// Entry is one book card from a listing page.
type Entry struct {
	SourceID uint64
	Title    string
	Authors  []string
}

// Creator joins the entry's authors the way calibre-web displays them.
func (e Entry) Creator() string {
	if len(e.Authors) == 0 {
		return "Unknown"
	}
	return strings.Join(e.Authors, " & ")
}

// Item builds an available catalog item of the given kind from the entry.
func (e Entry) Item(kind models.Kind) *models.Item {
	switch kind {
	case models.KindEBook:
		return models.NewEBook(e.Title, e.Creator(), 0)
	case models.KindAudioBook:
		return models.NewAudioBook(e.Title, e.Creator(), 0)
	case models.KindMagazine:
		return models.NewMagazine(e.Title, e.Creator(), 0)
	default:
		return models.NewBook(e.Title, e.Creator())
	}
}

// ParseListing extracts the `.book` cards of a calibre-web listing page.
//
// A page carrying a flash alert is reported as an error.
func ParseListing(r io.Reader) ([]Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}

	if flash := doc.Find("#flash_alert"); len(flash.Nodes) > 0 {
		return nil, fmt.Errorf("%w: listing shows an alert: %s", shared.ErrInvalidInput, strings.TrimSpace(flash.Text()))
	}

	var (
		entries  []Entry
		parseErr error
	)
	doc.Find(".book").EachWithBreak(func(i int, s *goquery.Selection) bool {
		entry, err := parseBook(s)
		if err != nil {
			parseErr = fmt.Errorf("book %d: %w", i+1, err)
			return false
		}
		entries = append(entries, entry)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return entries, nil
}

func parseBook(s *goquery.Selection) (Entry, error) {
	title := strings.TrimSpace(s.Find(".title").Text())
	if title == "" {
		return Entry{}, fmt.Errorf("%w: missing title", shared.ErrInvalidInput)
	}

	href, ok := s.Find(".meta a").Attr("href")
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q has no book link", shared.ErrInvalidInput, title)
	}
	id, err := strconv.ParseUint(path.Base(href), 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q has a malformed book link %q", shared.ErrInvalidInput, title, href)
	}

	entry := Entry{SourceID: id, Title: title}
	s.Find(".author-name").Each(func(_ int, a *goquery.Selection) {
		if name := strings.TrimSpace(a.Text()); name != "" {
			entry.Authors = append(entry.Authors, name)
		}
	})
	return entry, nil
}

// ParseFile reads a listing saved to disk.
func ParseFile(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing: %w", err)
	}
	defer f.Close()
	return ParseListing(f)
}

// Result reports what [Import] did.
type Result struct {
	Added   []int
	Skipped []string
}

// Import adds entries to the registry as items of kind.
//
// Entries whose title is already catalogued are skipped.
func Import(registry *catalog.Registry, entries []Entry, kind models.Kind, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	result := &Result{}
	for _, entry := range entries {
		if _, exists := registry.FindByTitle(entry.Title); exists {
			logger.Debug("skipping catalogued title", "title", entry.Title, "source_id", entry.SourceID)
			result.Skipped = append(result.Skipped, entry.Title)
			continue
		}

		id, err := registry.Add(entry.Item(kind))
		if err != nil {
			return result, fmt.Errorf("failed to add %q: %w", entry.Title, err)
		}
		logger.Debug("imported", "id", id, "title", entry.Title)
		result.Added = append(result.Added, id)
	}
	return result, nil
}
