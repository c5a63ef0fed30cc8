package formatter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	th "github.com/desertthunder/shelf/internal/testing"
)

func testExport(t *testing.T) *CatalogExport {
	t.Helper()

	book := models.NewBook("War and Peace", "Lev Tolstoy")
	book.ID = 1
	ebook := models.NewEBook("The Lord of the Rings", "J. R. R. Tolkien", 500)
	ebook.ID = 2
	audio := models.NewAudioBook("1984", "George Orwell", 11*time.Hour+22*time.Minute)
	audio.ID = 3
	mag := models.NewMagazine("Pipes | Valves", "Nathan Lump", 4)
	mag.ID = 4

	if err := ebook.Borrow(); err != nil {
		t.Fatalf("Borrow failed: %v", err)
	}
	return NewCatalogExport("Home Library", []*models.Item{book, ebook, audio, mag})
}

func TestExporters(t *testing.T) {
	export := testExport(t)

	t.Run("Borrowed", func(t *testing.T) {
		if got := export.Borrowed(); got != 1 {
			t.Errorf("Expected 1 borrowed item, got %d", got)
		}
	})

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(export)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"ID,Kind,Title,Creator,Available,Details",
			"1,book,War and Peace,Lev Tolstoy,true,",
			"2,ebook,The Lord of the Rings,J. R. R. Tolkien,false,500 MB",
			"3,audiobook,1984,George Orwell,true,11h22m0s",
			"4,magazine,Pipes | Valves,Nathan Lump,true,issue 4",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("CSV missing %q, got: %s", want, output)
			}
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(export)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "# Home Library") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "**Items**: 4") {
			t.Errorf("Markdown missing item count")
		}
		if !strings.Contains(output, "**Borrowed**: 1") {
			t.Errorf("Markdown missing borrowed count")
		}
		if !strings.Contains(output, "| 2 | ebook | The Lord of the Rings | J. R. R. Tolkien | borrowed | 500 MB |") {
			t.Errorf("Markdown missing ebook row, got: %s", output)
		}
		if !strings.Contains(output, `Pipes \| Valves`) {
			t.Errorf("Markdown did not escape pipe in title")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(export)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Catalog: Home Library") {
			t.Errorf("Text missing catalog name")
		}
		if !strings.Contains(output, "Items: 4 (1 borrowed)") {
			t.Errorf("Text missing counts")
		}
		if !strings.Contains(output, "1. Lev Tolstoy - War and Peace [available]") {
			t.Errorf("Text missing item listing, got: %s", output)
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(export)
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}
		output := string(data)
		if !strings.Contains(output, `"name": "Home Library"`) {
			t.Errorf("Metadata missing name, got: %s", output)
		}
		if !strings.Contains(output, `"borrowed": 1`) {
			t.Errorf("Metadata missing borrowed count, got: %s", output)
		}
	})
}

func TestWriters(t *testing.T) {
	export := testExport(t)

	t.Run("WriteCSVExport", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "library")

		result, err := WriteCSVExport(export, base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}
		if result.ItemsFile != base+"_items.csv" {
			t.Errorf("Expected items file %s, got %s", base+"_items.csv", result.ItemsFile)
		}
		th.AssertFileExists(t, result.ItemsFile)
		th.AssertFileExists(t, result.MetadataFile)

		content := th.MustReadFile(t, result.ItemsFile)
		if !strings.Contains(content, "War and Peace") {
			t.Errorf("CSV file missing item")
		}
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "catalog")

		file, err := WriteMarkdownExport(export, dir)
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}
		if file != filepath.Join(dir, "README.md") {
			t.Errorf("Expected README.md inside %s, got %s", dir, file)
		}
		th.AssertFileExists(t, file)
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.txt")

		file, err := WriteTextExport(export, path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}
		content := th.MustReadFile(t, file)
		if !strings.Contains(content, "Catalog: Home Library") {
			t.Errorf("Text file missing header")
		}
	})

	t.Run("Write dispatches on format", func(t *testing.T) {
		dir := t.TempDir()
		tests := []struct {
			format Format
			output string
			files  int
		}{
			{FormatCSV, filepath.Join(dir, "c"), 2},
			{FormatMarkdown, filepath.Join(dir, "md"), 1},
			{FormatText, filepath.Join(dir, "t.txt"), 1},
		}

		for _, tt := range tests {
			files, err := Write(export, tt.format, tt.output)
			if err != nil {
				t.Fatalf("Write(%s) failed: %v", tt.format, err)
			}
			if len(files) != tt.files {
				t.Errorf("Write(%s) created %d files, want %d", tt.format, len(files), tt.files)
			}
			for _, f := range files {
				th.AssertFileExists(t, f)
			}
		}

		if _, err := Write(export, Format("pdf"), ""); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("Expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("write errors", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing", "catalog.txt")
		if _, err := WriteTextExport(export, missing); err == nil {
			t.Error("Expected error writing into a missing directory")
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"MD", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{" text ", FormatText, false},
		{"txt", FormatText, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
