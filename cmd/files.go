package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/shelf/internal/files"
	"github.com/desertthunder/shelf/internal/shared"
)

func requiredArg(cmd *cli.Command, name string) (string, error) {
	value := cmd.StringArg(name)
	if value == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return value, nil
}

// FileWrite writes --text to a file.
func (r *Runner) FileWrite(ctx context.Context, cmd *cli.Command) error {
	path, err := requiredArg(cmd, "path")
	if err != nil {
		return err
	}
	if err := files.Write(path, cmd.String("text")); err != nil {
		return err
	}
	r.logger.Debug("file written", "path", path)
	return r.writePlain("✓ Wrote %s\n", path)
}

// FileRead prints a file.
func (r *Runner) FileRead(ctx context.Context, cmd *cli.Command) error {
	path, err := requiredArg(cmd, "path")
	if err != nil {
		return err
	}
	text, err := files.Read(path)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", text)
}

// FileCopy copies src to dst, drawing progress on stderr with --progress.
func (r *Runner) FileCopy(ctx context.Context, cmd *cli.Command) error {
	src, err := requiredArg(cmd, "src")
	if err != nil {
		return err
	}
	dst, err := requiredArg(cmd, "dst")
	if err != nil {
		return err
	}

	var progress io.Writer
	if cmd.Bool("progress") {
		progress = os.Stderr
	}

	n, err := files.Copy(src, dst, progress)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Copied %s to %s (%d bytes)\n", src, dst, n)
}

// FileDelete removes a file.
func (r *Runner) FileDelete(ctx context.Context, cmd *cli.Command) error {
	path, err := requiredArg(cmd, "path")
	if err != nil {
		return err
	}
	if err := files.Delete(path); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted %s\n", path)
}

// FileHash prints the digest selected by --algo.
func (r *Runner) FileHash(ctx context.Context, cmd *cli.Command) error {
	path, err := requiredArg(cmd, "path")
	if err != nil {
		return err
	}
	algo := files.Algorithm(cmd.String("algo"))
	digest, err := files.Hash(path, algo)
	if err != nil {
		return err
	}
	return r.writePlain("%s  %s (%s)\n", digest, path, algo)
}

// FileDisk prints total and free space for the filesystem holding a path.
func (r *Runner) FileDisk(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		path = "."
	}

	usage, err := files.Disk(path)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(usage, false)
	}
	return r.writePlain("%s: %s total, %s free\n", usage.Path, formatBytes(usage.Total), formatBytes(usage.Free))
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
