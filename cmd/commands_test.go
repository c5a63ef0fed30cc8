package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/shelf/internal/lending"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	tu "github.com/desertthunder/shelf/internal/testing"
)

// run executes the shelf app once against configPath and returns what it printed.
func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: output})

	argv := append([]string{"shelf", "--config", configPath}, args...)
	err := newApp(runner).Run(context.Background(), argv)
	return output.String(), err
}

func mustRun(t *testing.T, configPath string, args ...string) string {
	t.Helper()
	out, err := run(t, configPath, args...)
	require.NoError(t, err, "shelf %v", args)
	return out
}

func TestCatalogCommands(t *testing.T) {
	config, _ := tu.MustConfig(t, nil)

	t.Run("seeds and lists the starter catalog", func(t *testing.T) {
		out := mustRun(t, config, "item", "list")
		assert.Contains(t, out, "Catalog (6 items)")
		assert.Contains(t, out, "[1] Title: The Master and Margarita, Author: Mikhail Bulgakov, Available: true")
		assert.Contains(t, out, "[3] Title: The Lord of the Rings, Author: J. R. R. Tolkien, Available: true, File size: 500 MB")
		assert.Contains(t, out, "Editor: Nathan Lump")
	})

	t.Run("adds with the next identifier", func(t *testing.T) {
		out := mustRun(t, config, "item", "add", "--kind", "audiobook", "--title", "Dune", "--creator", "Frank Herbert", "--duration", "21h2m")
		assert.Contains(t, out, "✓ Added [7] Title: Dune, Author: Frank Herbert, Available: true, Duration: 21h2m0s")
	})

	t.Run("rejects a duplicate identifier", func(t *testing.T) {
		out := mustRun(t, config, "item", "add", "--title", "Clash", "--id", "1")
		assert.Contains(t, out, "✗ identifier already in use")

		out = mustRun(t, config, "item", "show", "1")
		assert.Contains(t, out, "The Master and Margarita")
	})

	t.Run("lists as JSON", func(t *testing.T) {
		out := mustRun(t, config, "item", "list", "--json")
		assert.Contains(t, out, `"title":"Dune"`)
		assert.Contains(t, out, `"kind":"audiobook"`)
	})

	t.Run("finds by title ignoring case", func(t *testing.T) {
		out := mustRun(t, config, "item", "find", "war AND peace")
		assert.Contains(t, out, "[2] Title: War and Peace")

		out = mustRun(t, config, "item", "find", "Missing Book")
		assert.Contains(t, out, "✗ item not found")
	})

	t.Run("removes an item", func(t *testing.T) {
		out := mustRun(t, config, "item", "remove", "7")
		assert.Contains(t, out, "✓ Removed [7] Dune")

		out = mustRun(t, config, "item", "show", "7")
		assert.Contains(t, out, "✗ item not found")
	})

	t.Run("invalid identifier is an error", func(t *testing.T) {
		_, err := run(t, config, "item", "show", "seven")
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})

	t.Run("unknown kind is an error", func(t *testing.T) {
		_, err := run(t, config, "item", "add", "--kind", "scroll", "--title", "Dead Sea")
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})

	t.Run("exports text", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.txt")
		out := mustRun(t, config, "item", "export", "--format", "txt", "--output", path)
		assert.Contains(t, out, "✓ Exported 6 items")
		assert.Contains(t, tu.MustReadFile(t, path), "Catalog: shelf catalog")
	})

	t.Run("export reports output failures", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &tu.FWriter{}})
		path := filepath.Join(t.TempDir(), "catalog.txt")

		argv := []string{"shelf", "--config", config, "item", "export", "--format", "txt", "--output", path}
		err := newApp(runner).Run(context.Background(), argv)
		assert.Error(t, err)
		tu.AssertFileExists(t, path)
	})

	t.Run("imports a calibre-web listing", func(t *testing.T) {
		listing := filepath.Join(t.TempDir(), "listing.html")
		tu.MustWriteFile(t, listing, `<div class="book"><div class="meta">
			<a href="/book/5"><p class="title">Good Omens</p></a>
			<a class="author-name" href="/author/1">Terry Pratchett</a>
		</div></div>
		<div class="book"><div class="meta">
			<a href="/book/6"><p class="title">Cloud Atlas</p></a>
		</div></div>`)

		out := mustRun(t, config, "item", "import", "--kind", "ebook", listing)
		assert.Contains(t, out, "✓ Imported 1 items (1 already catalogued)")

		out = mustRun(t, config, "item", "find", "good omens")
		assert.Contains(t, out, "Author: Terry Pratchett")
		assert.Contains(t, out, "File size: 0 MB")
	})
}

func TestCatalogIdentifiers(t *testing.T) {
	t.Run("add skips an identifier left by a removal", func(t *testing.T) {
		config, _ := tu.MustConfig(t, nil)

		mustRun(t, config, "item", "remove", "2")
		out := mustRun(t, config, "item", "add", "--title", "Dune", "--creator", "Frank Herbert")
		assert.Contains(t, out, "✓ Added [7] Title: Dune")

		out = mustRun(t, config, "item", "add", "--title", "Emma", "--creator", "Jane Austen")
		assert.Contains(t, out, "✓ Added [8] Title: Emma")

		out = mustRun(t, config, "item", "show", "6")
		assert.NotContains(t, out, "Dune")
	})

	t.Run("saves changes made before a refusal", func(t *testing.T) {
		config, cfg := tu.MustConfig(t, nil)
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: cfg, ConfigPath: config, Logger: shared.NewLogger(io.Discard), Output: output})

		err := runner.withLibrary(context.Background(), func(ledger *lending.Ledger) (bool, error) {
			if _, err := ledger.Registry().Add(models.NewBook("Emma", "Jane Austen")); err != nil {
				return false, err
			}
			return true, fmt.Errorf("%w: second entry", shared.ErrInvalidInput)
		})
		require.NoError(t, err)
		assert.Contains(t, output.String(), "✗ invalid input: second entry")

		out := mustRun(t, config, "item", "find", "emma")
		assert.Contains(t, out, "[7] Title: Emma")
	})
}

func TestLendingCommands(t *testing.T) {
	t.Run("explicit returns", func(t *testing.T) {
		config, _ := tu.MustConfig(t, nil)

		mustRun(t, config, "member", "register", "Alice")
		mustRun(t, config, "member", "register", "Bob")

		out := mustRun(t, config, "member", "register", "Alice")
		assert.Contains(t, out, "✗ member already registered")

		out = mustRun(t, config, "borrow", "--member", "Alice", "--id", "1")
		assert.Contains(t, out, "✓ Alice borrowed The Master and Margarita")

		out = mustRun(t, config, "borrow", "--member", "Bob", "--title", "the master and margarita")
		assert.Contains(t, out, "✗ item already borrowed")

		out = mustRun(t, config, "item", "show", "1")
		assert.Contains(t, out, "Available: false")
		assert.Contains(t, out, "Borrowed by: Alice")

		out = mustRun(t, config, "return", "--member", "Bob", "--id", "1")
		assert.Contains(t, out, "✗ item not held by member")

		out = mustRun(t, config, "return-oldest", "--member", "Alice")
		assert.Contains(t, out, "✗ operation not allowed by return policy")

		out = mustRun(t, config, "borrow", "--member", "Carol", "--id", "2")
		assert.Contains(t, out, "✗ member not found")

		out = mustRun(t, config, "return", "--member", "Alice", "--id", "1")
		assert.Contains(t, out, "✓ Alice returned The Master and Margarita")

		out = mustRun(t, config, "item", "show", "1")
		assert.Contains(t, out, "Available: true")
		assert.NotContains(t, out, "Borrowed by")
	})

	t.Run("oldest returns", func(t *testing.T) {
		config, _ := tu.MustConfig(t, func(c *shared.Config) {
			c.Lending.ReturnPolicy = shared.ReturnOldest
		})

		mustRun(t, config, "member", "register", "Alice")
		mustRun(t, config, "borrow", "--member", "Alice", "--id", "4")
		mustRun(t, config, "borrow", "--member", "Alice", "--id", "2")

		out := mustRun(t, config, "member", "list")
		assert.Contains(t, out, "holds 4, 2")

		out = mustRun(t, config, "return", "--member", "Alice", "--id", "2")
		assert.Contains(t, out, "✗ operation not allowed by return policy")

		out = mustRun(t, config, "return-oldest", "--member", "Alice")
		assert.Contains(t, out, "✓ Alice returned Cloud Atlas")

		out = mustRun(t, config, "return-oldest", "--member", "Alice")
		assert.Contains(t, out, "✓ Alice returned War and Peace")

		out = mustRun(t, config, "return-oldest", "--member", "Alice")
		assert.Contains(t, out, "✗ member holds no items")
	})

	t.Run("duplicate names allowed", func(t *testing.T) {
		config, _ := tu.MustConfig(t, func(c *shared.Config) {
			c.Lending.DuplicateMembers = shared.DuplicateAllow
		})

		mustRun(t, config, "member", "register", "Alice")
		out := mustRun(t, config, "member", "register", "Alice")
		assert.Contains(t, out, "✓ Registered member: Alice")

		out = mustRun(t, config, "member", "list", "--json")
		assert.Equal(t, 2, bytes.Count([]byte(out), []byte(`"name":"Alice"`)))
	})

	t.Run("item selector is required", func(t *testing.T) {
		config, _ := tu.MustConfig(t, nil)

		_, err := run(t, config, "borrow", "--member", "Alice")
		assert.ErrorIs(t, err, shared.ErrMissingArgument)

		_, err = run(t, config, "borrow", "--member", "Alice", "--id", "1", "--title", "War and Peace")
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		out := mustRun(t, path, "setup", "config")
		assert.Contains(t, out, "✓ Config written to")
		tu.AssertFileExists(t, path)

		out = mustRun(t, path, "setup", "config")
		assert.Contains(t, out, "already exists")

		tu.MustWriteFile(t, path, "[log]\nlevel = \"warn\"\n")
		out = mustRun(t, path, "setup", "config", "--force")
		assert.Contains(t, out, "✓ Config written to")
		assert.Contains(t, tu.MustReadFile(t, path), "[database]")
	})

	t.Run("database", func(t *testing.T) {
		config, cfg := tu.MustConfig(t, nil)

		out := mustRun(t, config, "setup", "database")
		assert.Contains(t, out, "✓ Database ready: 6 items, 0 members")
		tu.AssertFileExists(t, cfg.Database.Path)
	})

	t.Run("database without seeding", func(t *testing.T) {
		config, _ := tu.MustConfig(t, func(c *shared.Config) {
			c.Catalog.Seed = false
		})

		out := mustRun(t, config, "setup", "database")
		assert.Contains(t, out, "✓ Database ready: 0 items, 0 members")
	})
}

func TestFileCommands(t *testing.T) {
	config, _ := tu.MustConfig(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")

	out := mustRun(t, config, "file", "write", "--text", "abc", path)
	assert.Contains(t, out, "✓ Wrote")

	out = mustRun(t, config, "file", "read", path)
	assert.Equal(t, "abc\n", out)

	out = mustRun(t, config, "file", "hash", "--algo", "sha3", path)
	assert.Contains(t, out, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532")

	copyPath := filepath.Join(dir, "copy.txt")
	out = mustRun(t, config, "file", "copy", path, copyPath)
	assert.Contains(t, out, "(3 bytes)")
	assert.Equal(t, "abc", tu.MustReadFile(t, copyPath))

	out = mustRun(t, config, "file", "delete", copyPath)
	assert.Contains(t, out, "✓ Deleted")
	tu.AssertFileMissing(t, copyPath)

	_, err := run(t, config, "file", "read")
	assert.ErrorIs(t, err, shared.ErrMissingArgument)
}

func TestCarCommand(t *testing.T) {
	config, _ := tu.MustConfig(t, nil)

	out := mustRun(t, config, "car")
	assert.Equal(t, "Color - White, Speed - 200, Name - Mercedes\n", out)

	out = mustRun(t, config, "car", "--color", "Red", "--speed", "240", "--name", "Ferrari")
	assert.Equal(t, "Color - Red, Speed - 240, Name - Ferrari\n", out)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
}
