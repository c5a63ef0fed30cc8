//go:build !linux && !darwin && !freebsd

package files

import (
	"fmt"

	"github.com/desertthunder/shelf/internal/shared"
)

// Disk is only available on Linux, macOS and FreeBSD.
func Disk(path string) (Usage, error) {
	return Usage{}, fmt.Errorf("%w: disk usage for %s", shared.ErrNotImplemented, path)
}
