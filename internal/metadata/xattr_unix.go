//go:build linux || darwin

package metadata

import (
	"bytes"

	"golang.org/x/sys/unix"
)

// copyXattrs copies every extended attribute from source to dest. On macOS
// this carries Finder info, quarantine state, and download provenance
// (kMDItemWhereFroms); on Linux, user.* attributes. Best-effort: the first
// failure aborts the copy but callers treat it as degradation, not error.
func copyXattrs(source, dest string) error {
	size, err := unix.Listxattr(source, nil)
	if err != nil || size == 0 {
		return err
	}
	buf := make([]byte, size)
	size, err = unix.Listxattr(source, buf)
	if err != nil {
		return err
	}

	for _, name := range splitXattrNames(buf[:size]) {
		vsize, err := unix.Getxattr(source, name, nil)
		if err != nil {
			return err
		}
		value := make([]byte, vsize)
		if vsize > 0 {
			if _, err := unix.Getxattr(source, name, value); err != nil {
				return err
			}
		}
		if err := unix.Setxattr(dest, name, value, 0); err != nil {
			return err
		}
	}
	return nil
}

// splitXattrNames parses the NUL-separated name list returned by Listxattr.
func splitXattrNames(buf []byte) []string {
	var names []string
	for _, part := range bytes.Split(buf, []byte{0}) {
		if len(part) > 0 {
			names = append(names, string(part))
		}
	}
	return names
}
