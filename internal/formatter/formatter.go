// package formatter provides functions to export catalog data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// Format names an export format accepted by [Write].
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

// ParseFormat accepts csv, md/markdown and txt/text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, s)
	}
}

// CatalogExport is a point-in-time view of the catalog.
type CatalogExport struct {
	Name        string            `json:"name"`
	GeneratedAt time.Time         `json:"generated_at"`
	Items       []models.ItemView `json:"items"`
}

// NewCatalogExport captures items in the given order.
func NewCatalogExport(name string, items []*models.Item) *CatalogExport {
	export := &CatalogExport{Name: name, GeneratedAt: time.Now().UTC(), Items: make([]models.ItemView, 0, len(items))}
	for _, item := range items {
		export.Items = append(export.Items, item.View())
	}
	return export
}

// Borrowed counts the items that are currently lent out.
func (e *CatalogExport) Borrowed() int {
	n := 0
	for _, item := range e.Items {
		if !item.Available {
			n++
		}
	}
	return n
}

// ExportToCSV converts a CatalogExport to CSV format with columns: ID, Kind, Title, Creator, Available, Details
func ExportToCSV(export *CatalogExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Kind", "Title", "Creator", "Available", "Details"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range export.Items {
		record := []string{
			strconv.Itoa(item.ID),
			item.Kind,
			item.Title,
			item.Creator,
			strconv.FormatBool(item.Available),
			details(item),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a CatalogExport to a Markdown document with a table per item.
func ExportToMarkdown(export *CatalogExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", export.Name)
	fmt.Fprintf(&buf, "**Items**: %d\n", len(export.Items))
	fmt.Fprintf(&buf, "**Borrowed**: %d\n\n", export.Borrowed())

	buf.WriteString("## Items\n\n")
	buf.WriteString("| ID | Kind | Title | Creator | Status | Details |\n")
	buf.WriteString("|---:|---|---|---|---|---|\n")
	for _, item := range export.Items {
		fmt.Fprintf(&buf, "| %d | %s | %s | %s | %s | %s |\n",
			item.ID, item.Kind, escapeCell(item.Title), escapeCell(item.Creator), status(item), details(item))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a CatalogExport to plain text format
func ExportToText(export *CatalogExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Catalog: %s\n", export.Name)
	fmt.Fprintf(&buf, "Items: %d (%d borrowed)\n\n", len(export.Items), export.Borrowed())

	for _, item := range export.Items {
		fmt.Fprintf(&buf, "%d. %s - %s [%s]\n", item.ID, item.Creator, item.Title, status(item))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON summary of the export (without items)
func ToMetadataJSON(export *CatalogExport) ([]byte, error) {
	return shared.MarshalJSON(map[string]any{
		"name":         export.Name,
		"generated_at": export.GeneratedAt,
		"items":        len(export.Items),
		"borrowed":     export.Borrowed(),
	}, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	ItemsFile    string
	MetadataFile string
}

// WriteCSVExport exports the catalog to CSV format with an accompanying metadata JSON file.
//
// Defaults to "catalog" as the base filename & creates {base}_items.csv and {base}_metadata.json
func WriteCSVExport(export *CatalogExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "catalog"
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	itemsFile := baseFilepath + "_items.csv"
	if err := os.WriteFile(itemsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{ItemsFile: itemsFile, MetadataFile: metadataFile}, nil
}

// WriteMarkdownExport writes {dir}/README.md, creating dir (default "catalog") when needed.
func WriteMarkdownExport(export *CatalogExport, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "catalog"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}
	return mdFile, nil
}

// WriteTextExport exports the catalog to plain text format.
//
// Defaults to catalog.txt as the filename.
func WriteTextExport(export *CatalogExport, path string) (string, error) {
	if path == "" {
		path = "catalog.txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}
	return path, nil
}

// Write exports in format to output and returns the files it created.
func Write(export *CatalogExport, format Format, output string) ([]string, error) {
	switch format {
	case FormatCSV:
		result, err := WriteCSVExport(export, output)
		if err != nil {
			return nil, err
		}
		return []string{result.ItemsFile, result.MetadataFile}, nil
	case FormatMarkdown:
		file, err := WriteMarkdownExport(export, output)
		if err != nil {
			return nil, err
		}
		return []string{file}, nil
	case FormatText:
		file, err := WriteTextExport(export, output)
		if err != nil {
			return nil, err
		}
		return []string{file}, nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

func status(item models.ItemView) string {
	if item.Available {
		return "available"
	}
	return "borrowed"
}

func details(item models.ItemView) string {
	switch {
	case item.FileSizeMB > 0:
		return fmt.Sprintf("%d MB", item.FileSizeMB)
	case item.Duration != "":
		return item.Duration
	case item.Issue > 0:
		return fmt.Sprintf("issue %d", item.Issue)
	default:
		return ""
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
