package testutils

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent creates test files with specific content
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// CreateTestFilesWithDefault creates test files with default content
func CreateTestFilesWithDefault(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"test1.txt": "test content 1",
		"test2.txt": "test content 2",
		"test3.jpg": "image content",
	}
	CreateTestFilesWithContent(t, dir, files)
}

// ScenarioTree builds the layout used across the navigation tests:
//
//	<root>/a/b/        (directory)
//	<root>/a/c.txt     "hello\nworld\n"
//
// and returns the canonical path of <root>/a.
func ScenarioTree(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	a := filepath.Join(root, "a")
	require.NoError(t, os.MkdirAll(filepath.Join(a, "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(a, "c.txt"), []byte("hello\nworld\n"), 0644))
	return a
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansi.Strip(str)
}

// JPEGWithModel builds the smallest JPEG that carries an EXIF block with a
// single IFD0 Model tag.
func JPEGWithModel(model string) []byte {
	value := append([]byte(model), 0)

	var tiff bytes.Buffer
	tiff.WriteString("MM")
	binary.Write(&tiff, binary.BigEndian, uint16(42))
	binary.Write(&tiff, binary.BigEndian, uint32(8)) // IFD0 offset
	binary.Write(&tiff, binary.BigEndian, uint16(1)) // entry count
	binary.Write(&tiff, binary.BigEndian, uint16(0x0110))
	binary.Write(&tiff, binary.BigEndian, uint16(2)) // ASCII
	binary.Write(&tiff, binary.BigEndian, uint32(len(value)))
	binary.Write(&tiff, binary.BigEndian, uint32(8+2+12+4)) // value offset
	binary.Write(&tiff, binary.BigEndian, uint32(0))        // no next IFD
	tiff.Write(value)

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var out bytes.Buffer
	out.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write([]byte{0xFF, 0xD9})
	return out.Bytes()
}
