//go:build !linux && !darwin

package metadata

// copyXattrs is a no-op on platforms without extended attribute support.
func copyXattrs(source, dest string) error { return nil }
