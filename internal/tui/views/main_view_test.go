package views

import (
	"errors"
	"strings"
	"testing"

	"filescout/internal/navigation"
	"filescout/internal/tui/components"
	"filescout/pkg/testutils"
	"filescout/pkg/types"

	"github.com/stretchr/testify/assert"
)

// Mock model for testing
type mockModel struct {
	view      navigation.View
	mode      types.ViewMode
	palette   int
	scrollX   int
	scrollY   int
	editLines []string
	editRow   int
	editCol   int
	prompt    *components.Prompt
	status    *components.StatusBar
	showHelp  bool
}

func newMock(v navigation.View, mode types.ViewMode) *mockModel {
	return &mockModel{
		view:      v,
		mode:      mode,
		editLines: []string{""},
		prompt:    components.NewPrompt(),
		status:    components.NewStatusBar(),
	}
}

func (m *mockModel) Snapshot() navigation.View        { return m.view }
func (m *mockModel) Mode() types.ViewMode             { return m.mode }
func (m *mockModel) Palette() int                     { return m.palette }
func (m *mockModel) Size() (int, int)                 { return 100, 20 }
func (m *mockModel) Scroll() (int, int)               { return m.scrollX, m.scrollY }
func (m *mockModel) EditLines() []string              { return m.editLines }
func (m *mockModel) EditCursor() (int, int)           { return m.editRow, m.editCol }
func (m *mockModel) Prompt() *components.Prompt       { return m.prompt }
func (m *mockModel) StatusBar() *components.StatusBar { return m.status }
func (m *mockModel) ShowHelp() bool                   { return m.showHelp }
func (m *mockModel) KeyMap() types.KeyMap             { return types.DefaultKeyMap() }

func dirView() navigation.View {
	return navigation.View{
		Pwd:    "/srv/a",
		Parent: "/srv",
		Current: []types.FileEntry{
			{Path: "/srv/a/b", Kind: types.KindDir},
			{Path: "/srv/a/c.txt", Kind: types.KindFile},
		},
		Selected: 0,
		ParentListing: []types.FileEntry{
			{Path: "/srv/a", Kind: types.KindDir},
			{Path: "/srv/z", Kind: types.KindDir},
		},
		ParentSelected: 0,
		Preview: navigation.Preview{
			Kind:    navigation.PreviewDir,
			Target:  "/srv/a/b",
			Listing: []types.FileEntry{{Path: "/srv/a/b/inner.go", Kind: types.KindFile}},
		},
		SelectedPath: "/srv/a/b",
		Permission:   "drwxr-xr-x",
	}
}

func fileView() navigation.View {
	v := dirView()
	v.Selected = 1
	v.SelectedPath = "/srv/a/c.txt"
	v.Permission = "-rw-r--r--"
	v.SelectedSize = 2048
	v.Preview = navigation.Preview{
		Kind:      navigation.PreviewFile,
		Target:    "/srv/a/c.txt",
		Content:   "first line\nsecond line\nthird line\n",
		LineCount: 3,
	}
	return v
}

func TestRenderMainView(t *testing.T) {
	tests := []struct {
		name     string
		model    *mockModel
		contains []string // Strings that should be present in the output
		excludes []string // Strings that should not be present in the output
	}{
		{
			name:     "empty directory",
			model:    newMock(navigation.View{Pwd: "/empty", Selected: -1, ParentSelected: -1}, types.ListView),
			contains: []string{"/empty", "No items"},
		},
		{
			name:     "directory selected",
			model:    newMock(dirView(), types.ListView),
			contains: []string{"/srv/a", "b", "c.txt", "inner.go", "z", "drwxr-xr-x"},
			excludes: []string{"first line"},
		},
		{
			name:     "file selected",
			model:    newMock(fileView(), types.ListView),
			contains: []string{"first line", "third line", "-rw-r--r--", "2.0 kB"},
			excludes: []string{"inner.go"},
		},
		{
			name: "content scrolled",
			model: func() *mockModel {
				m := newMock(fileView(), types.ContentView)
				m.scrollY = 2
				return m
			}(),
			contains: []string{"third line"},
			excludes: []string{"first line", "second line"},
		},
		{
			name: "preview loading",
			model: func() *mockModel {
				v := fileView()
				v.Preview.Content = ""
				v.Preview.Loading = true
				return newMock(v, types.ListView)
			}(),
			contains: []string{"Loading"},
		},
		{
			name: "last error shown",
			model: func() *mockModel {
				v := dirView()
				v.LastError = errors.New("permission denied")
				return newMock(v, types.ListView)
			}(),
			contains: []string{"permission denied"},
		},
		{
			name: "full help",
			model: func() *mockModel {
				m := newMock(dirView(), types.ListView)
				m.showHelp = true
				return m
			}(),
			contains: []string{"encrypt", "decrypt", "copy path", "colors"},
		},
		{
			name: "editing",
			model: func() *mockModel {
				m := newMock(fileView(), types.FileEdit)
				m.editLines = []string{"edited text", "more"}
				return m
			}(),
			contains: []string{"edited text", "more", "save"},
			excludes: []string{"/srv/a", "inner.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := testutils.StripANSI(RenderMainView(tt.model))
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestRenderPrompt(t *testing.T) {
	for _, mode := range []types.ViewMode{types.Rename, types.Create} {
		m := newMock(dirView(), mode)
		m.prompt.Open(" Rename ", "b")
		output := testutils.StripANSI(RenderMainView(m))
		assert.Contains(t, output, "Rename")
		assert.Contains(t, output, "enter", "prompt help replaces the key list")
	}
}

func TestPaletteChangesColours(t *testing.T) {
	a := newMock(dirView(), types.ListView)
	b := newMock(dirView(), types.ListView)
	b.palette = 4

	outA, outB := RenderMainView(a), RenderMainView(b)
	assert.Equal(t, testutils.StripANSI(outA), testutils.StripANSI(outB))
	if strings.Contains(outA, "\x1b[") {
		assert.NotEqual(t, outA, outB)
	}
}

func TestRenderFitsHeight(t *testing.T) {
	v := dirView()
	for i := 0; i < 50; i++ {
		v.Current = append(v.Current, types.FileEntry{Path: "/srv/a/f", Kind: types.KindFile})
	}
	output := RenderMainView(newMock(v, types.ListView))
	assert.LessOrEqual(t, strings.Count(output, "\n")+1, 20)
}
