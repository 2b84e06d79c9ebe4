//go:build !unix

package listing

// Badge is empty on platforms without POSIX permission bits.
func Badge(path string) (string, error) {
	return "", nil
}
