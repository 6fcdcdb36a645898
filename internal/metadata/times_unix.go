//go:build linux || darwin

package metadata

import (
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes returns path's access and modification times.
func fileTimes(path string) (atime, mtime time.Time, err error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return time.Unix(st.Atim.Unix()), time.Unix(st.Mtim.Unix()), nil
}
