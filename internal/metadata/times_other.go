//go:build !linux && !darwin

package metadata

import (
	"os"
	"time"
)

// fileTimes reports the modification time for both values on platforms
// without a portable access-time stat.
func fileTimes(path string) (atime, mtime time.Time, err error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return fi.ModTime(), fi.ModTime(), nil
}
