//go:build unix

package listing

import (
	"io/fs"
	"os"
	"strings"
)

// Badge returns the ten character type and permission string for path, for
// example "drwxr-xr-x". The type character comes from the entry itself so a
// symlink shows as 'l'; the permission bits come from its target when it
// resolves.
func Badge(path string) (string, error) {
	linfo, err := os.Lstat(path)
	if err != nil {
		return "", err
	}
	mode := linfo.Mode()
	if mode&fs.ModeSymlink != 0 {
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode() | fs.ModeSymlink
		}
	}
	return FormatMode(mode), nil
}

// FormatMode renders a file mode the way Badge does.
func FormatMode(mode fs.FileMode) string {
	var b strings.Builder
	switch {
	case mode&fs.ModeSymlink != 0:
		b.WriteByte('l')
	case mode.IsDir():
		b.WriteByte('d')
	default:
		b.WriteByte('-')
	}

	const rwx = "rwx"
	perm := mode.Perm()
	for i := 8; i >= 0; i-- {
		if perm&(1<<uint(i)) != 0 {
			b.WriteByte(rwx[(8-i)%3])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
