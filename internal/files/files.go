// package files provides small utilities for e-book content files: write, read, copy, delete, hash and disk usage
package files

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/ioprogress"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/desertthunder/shelf/internal/shared"
)

// Algorithm names a digest supported by [Hash].
type Algorithm string

const (
	SHA256  Algorithm = "sha256"
	BLAKE2b Algorithm = "blake2b"
	SHA3    Algorithm = "sha3"
)

// Algorithms lists the supported digests.
func Algorithms() []Algorithm { return []Algorithm{SHA256, BLAKE2b, SHA3} }

func (a Algorithm) new() (hash.Hash, error) {
	switch Algorithm(strings.ToLower(string(a))) {
	case SHA256:
		return sha256.New(), nil
	case BLAKE2b:
		return blake2b.New256(nil)
	case SHA3:
		return sha3.New256(), nil
	default:
		return nil, fmt.Errorf("%w: unknown hash algorithm %q", shared.ErrInvalidArgument, a)
	}
}

// Write creates or truncates path with text, creating parent directories.
func Write(path, text string) error {
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Read returns the contents of path.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// Delete removes path. A missing file is reported as [shared.ErrInvalidArgument].
func Delete(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", shared.ErrInvalidArgument, path)
		}
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// Copy copies src to dst and returns the number of bytes written.
//
// When progress is non-nil a progress line is drawn to it while copying.
func Copy(src, dst string, progress io.Writer) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%w: %s is a directory", shared.ErrInvalidArgument, src)
	}

	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dst, err)
	}

	var r io.Reader = in
	if progress != nil {
		r = &ioprogress.Reader{
			Reader: in,
			Size:   info.Size(),
			DrawFunc: ioprogress.DrawTerminalf(progress, func(progress, total int64) string {
				return fmt.Sprintf("Copying [%s]: %s", ioprogress.DrawTextFormatBytes(progress, total), filepath.Base(src))
			}),
		}
	}

	n, err := io.Copy(out, r)
	if err != nil {
		out.Close()
		return n, fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("failed to close %s: %w", dst, err)
	}
	return n, nil
}

// Hash returns the hex digest of path's contents.
func Hash(path string, algo Algorithm) (string, error) {
	h, err := algo.new()
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Usage describes the filesystem that holds a path.
type Usage struct {
	Path  string `json:"path"`
	Total uint64 `json:"total_bytes"`
	Free  uint64 `json:"free_bytes"`
}

// Used is Total minus Free.
func (u Usage) Used() uint64 { return u.Total - u.Free }
