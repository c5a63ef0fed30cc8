// submodule cmd contains command definitions
package main

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/shelf/internal/files"
	"github.com/desertthunder/shelf/internal/models"
)

// newApp builds the root command around r.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "shelf",
		Usage:   "Manage a small library catalog: items, members and loans",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
		},
		Before:   r.Configure,
		Commands: r.register(),
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file or initialize the database",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the example configuration to --config",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing config file",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Run migrations and seed the starter catalog when the store is empty",
				Action: r.SetupDatabase,
			},
		},
	}
}

func itemCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "item",
		Aliases: []string{"items"},
		Usage:   "Catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add an item to the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "kind",
						Aliases: []string{"k"},
						Usage:   "Item kind: book, ebook, audiobook or magazine",
						Value:   models.KindBook.String(),
					},
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Item title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "creator",
						Usage: "Author, or editor for magazines",
					},
					&cli.IntFlag{
						Name:  "id",
						Usage: "Explicit identifier (defaults to the catalog size plus one)",
					},
					&cli.IntFlag{
						Name:  "file-size",
						Usage: "E-book file size in MB",
					},
					&cli.DurationFlag{
						Name:  "duration",
						Usage: "Audiobook running time, e.g. 11h22m",
					},
					&cli.IntFlag{
						Name:  "issue",
						Usage: "Magazine issue number",
					},
				},
				Action: r.ItemAdd,
			},
			{
				Name:  "list",
				Usage: "List every item in insertion order",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.ItemList,
			},
			{
				Name:      "show",
				Usage:     "Show one item by identifier",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.ItemShow,
			},
			{
				Name:      "find",
				Usage:     "Find the first item with a title (case-insensitive)",
				Arguments: []cli.Argument{&cli.StringArg{Name: "title"}},
				Action:    r.ItemFind,
			},
			{
				Name:      "remove",
				Usage:     "Remove an item that is not borrowed",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.ItemRemove,
			},
			{
				Name:  "export",
				Usage: "Export the catalog to CSV, Markdown or text",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md or txt",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output base path (csv), directory (md) or file (txt)",
					},
				},
				Action: r.ItemExport,
			},
			{
				Name:      "import",
				Usage:     "Import books from a saved calibre-web listing page",
				Arguments: []cli.Argument{&cli.StringArg{Name: "file"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "kind",
						Aliases: []string{"k"},
						Usage:   "Kind to catalog imported entries as",
						Value:   models.KindBook.String(),
					},
				},
				Action: r.ItemImport,
			},
		},
	}
}

func memberCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "member",
		Aliases: []string{"members"},
		Usage:   "Member operations",
		Commands: []*cli.Command{
			{
				Name:      "register",
				Usage:     "Register a member by name",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Action:    r.MemberRegister,
			},
			{
				Name:  "list",
				Usage: "List members and what they hold",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.MemberList,
			},
		},
	}
}

func itemSelectorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "member",
			Aliases:  []string{"m"},
			Usage:    "Member name",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "id",
			Usage: "Item identifier",
		},
		&cli.StringFlag{
			Name:    "title",
			Aliases: []string{"t"},
			Usage:   "Item title (first match, case-insensitive)",
		},
	}
}

func borrowCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "borrow",
		Usage:  "Borrow an item for a member",
		Flags:  itemSelectorFlags(),
		Action: r.Borrow,
	}
}

func returnCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "return",
		Usage:  "Return a named item (explicit return policy)",
		Flags:  itemSelectorFlags(),
		Action: r.ReturnItem,
	}
}

func returnOldestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "return-oldest",
		Usage: "Return the member's oldest loan (oldest return policy)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "member",
				Aliases:  []string{"m"},
				Usage:    "Member name",
				Required: true,
			},
		},
		Action: r.ReturnOldest,
	}
}

func fileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "file",
		Usage: "E-book content file utilities",
		Commands: []*cli.Command{
			{
				Name:      "write",
				Usage:     "Write text to a file, creating it if needed",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "text",
						Usage:    "Text to write",
						Required: true,
					},
				},
				Action: r.FileWrite,
			},
			{
				Name:      "read",
				Usage:     "Print a file",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Action:    r.FileRead,
			},
			{
				Name:  "copy",
				Usage: "Copy a file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "src"},
					&cli.StringArg{Name: "dst"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Draw copy progress on stderr",
					},
				},
				Action: r.FileCopy,
			},
			{
				Name:      "delete",
				Usage:     "Delete a file",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Action:    r.FileDelete,
			},
			{
				Name:      "hash",
				Usage:     "Print a file digest",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "algo",
						Usage: "Digest: sha256, blake2b or sha3",
						Value: string(files.SHA256),
					},
				},
				Action: r.FileHash,
			},
			{
				Name:      "disk",
				Usage:     "Show total and free space of the filesystem holding a path (default .)",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.FileDisk,
			},
		},
	}
}

func carCommand(r *Runner) *cli.Command {
	car := models.DefaultCar()
	return &cli.Command{
		Name:  "car",
		Usage: "Print car info",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "color", Value: car.Color},
			&cli.IntFlag{Name: "speed", Usage: fmt.Sprintf("Top speed (default %d)", car.Speed)},
			&cli.StringFlag{Name: "name", Value: car.Name},
		},
		Action: r.Car,
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Interactive lending desk for one member",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "member",
				Aliases:  []string{"m"},
				Usage:    "Member name",
				Required: true,
			},
		},
		Action: r.TUI,
	}
}
