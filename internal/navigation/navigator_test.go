package navigation

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"filescout/internal/errors"
	"filescout/internal/listing"
	"filescout/pkg/testutils"
	"filescout/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNavigator(t *testing.T, dir string) *Navigator {
	t.Helper()
	n := New(Options{})
	require.NoError(t, n.Enter(dir, -1))
	return n
}

func TestEnterSelectsFirstEntry(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)

	v := n.Snapshot()
	assert.Equal(t, a, v.Pwd)
	assert.Equal(t, filepath.Dir(a), v.Parent)
	require.Len(t, v.Current, 2)
	assert.Equal(t, 0, v.Selected)
	assert.Equal(t, filepath.Join(a, "b"), v.SelectedPath)
	assert.Equal(t, PreviewDir, v.Preview.Kind)
	assert.Empty(t, v.Preview.Listing)
	assert.Empty(t, v.Preview.Content)
	assert.Equal(t, "a", filepath.Base(v.ParentListing[v.ParentSelected].Path))
}

func TestEnterEmptyDirectory(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	n := newNavigator(t, dir)

	v := n.Snapshot()
	assert.Equal(t, -1, v.Selected)
	assert.False(t, v.HasSelection())
	assert.Empty(t, v.SelectedPath)
	assert.Equal(t, PreviewNone, v.Preview.Kind)
}

func TestEnterClampsIndex(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := New(Options{})

	require.NoError(t, n.Enter(a, 99))
	v := n.Snapshot()
	assert.Equal(t, 1, v.Selected)
	assert.Equal(t, PreviewFile, v.Preview.Kind)
	assert.Equal(t, "hello\nworld\n", v.Preview.Content)
	assert.Equal(t, 2, v.Preview.LineCount)
	assert.False(t, v.Preview.Loading)
}

func TestEnterInvalidPathLeavesStateUntouched(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)
	before := n.Snapshot()

	err := n.Enter(filepath.Join(a, "missing"), -1)
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))

	err = n.Enter(filepath.Join(a, "c.txt"), -1)
	require.Error(t, err)

	after := n.Snapshot()
	assert.Equal(t, before.Pwd, after.Pwd)
	assert.Equal(t, before.Selected, after.Selected)
	assert.NoError(t, after.LastError)
}

func TestEnterFollowsSymlinks(t *testing.T) {
	a := testutils.ScenarioTree(t)
	link := filepath.Join(filepath.Dir(a), "link")
	require.NoError(t, os.Symlink(a, link))

	n := newNavigator(t, link)
	assert.Equal(t, a, n.Pwd())
}

func TestMoveSelectionClamps(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)

	assert.Nil(t, n.MoveSelection(types.Previous))
	assert.Equal(t, 0, n.Snapshot().Selected)

	req := n.MoveSelection(types.Next)
	require.NotNil(t, req)
	assert.Equal(t, 1, n.Snapshot().Selected)

	assert.Nil(t, n.MoveSelection(types.Next))
	assert.Equal(t, 1, n.Snapshot().Selected)

	assert.Nil(t, n.MoveSelection(types.Previous))
	v := n.Snapshot()
	assert.Equal(t, 0, v.Selected)
	assert.Equal(t, PreviewDir, v.Preview.Kind)
}

func TestMoveSelectionOnEmptyListing(t *testing.T) {
	n := newNavigator(t, t.TempDir())
	assert.Nil(t, n.MoveSelection(types.Next))
	assert.Nil(t, n.MoveSelection(types.Previous))
	assert.Equal(t, -1, n.Snapshot().Selected)
}

func TestMoveSelectionLoadsPreviewAsync(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)

	req := n.MoveSelection(types.Next)
	require.NotNil(t, req)

	v := n.Snapshot()
	assert.Equal(t, filepath.Join(a, "c.txt"), v.SelectedPath)
	assert.True(t, v.Preview.Loading)
	assert.Empty(t, v.Preview.Content)

	assert.True(t, n.LoadPreview(req))
	v = n.Snapshot()
	assert.False(t, v.Preview.Loading)
	assert.Equal(t, "hello\nworld\n", v.Preview.Content)
	assert.Equal(t, 2, v.Preview.LineCount)
	assert.Nil(t, v.Preview.Listing)
}

func TestStalePreviewIsDropped(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)

	req := n.MoveSelection(types.Next)
	require.NotNil(t, req)
	n.MoveSelection(types.Previous)

	assert.False(t, n.LoadPreview(req))
	v := n.Snapshot()
	assert.Equal(t, PreviewDir, v.Preview.Kind)
	assert.Empty(t, v.Preview.Content)
	assert.False(t, n.LoadPreview(nil))
}

func TestBinaryPreviewIsRefused(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blob.bin"), []byte{0x00, 0xff, 0x00, 0x01, 0x89, 'P', 'N', 'G'}, 0644))

	n := newNavigator(t, dir)
	v := n.Snapshot()
	assert.Equal(t, PreviewFile, v.Preview.Kind)
	assert.Empty(t, v.Preview.Content)
	require.Error(t, v.LastError)
	assert.True(t, errors.IsInvalidOperation(v.LastError))
}

func TestImagePreviewShowsMetadata(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.jpg"), testutils.JPEGWithModel("TestCam"), 0644))

	v := newNavigator(t, dir).Snapshot()
	require.NoError(t, v.LastError)
	assert.Equal(t, PreviewFile, v.Preview.Kind)
	assert.Contains(t, v.Preview.Content, "Camera model: TestCam")
}

func TestPreviewLimit(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"long.txt": "0123456789\nabcdef\n"})

	n := New(Options{PreviewLimit: 4})
	require.NoError(t, n.Enter(dir, -1))
	v := n.Snapshot()
	assert.Equal(t, "0123", v.Preview.Content)
	assert.Equal(t, 1, v.Preview.LineCount)
}

func TestDescendAndAscend(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)

	require.NoError(t, n.Descend())
	v := n.Snapshot()
	assert.Equal(t, filepath.Join(a, "b"), v.Pwd)
	assert.Equal(t, a, v.Parent)
	assert.Equal(t, -1, v.Selected)
	assert.Equal(t, 0, v.ParentSelected)

	require.NoError(t, n.Ascend())
	v = n.Snapshot()
	assert.Equal(t, a, v.Pwd)
	assert.Equal(t, 0, v.Selected)
	assert.Equal(t, filepath.Join(a, "b"), v.SelectedPath)
}

func TestAscendRestoresSelection(t *testing.T) {
	a := testutils.ScenarioTree(t)
	require.NoError(t, os.Mkdir(filepath.Join(a, "d"), 0755))
	n := newNavigator(t, a)

	n.MoveSelection(types.Next)
	require.Equal(t, filepath.Join(a, "d"), n.Snapshot().SelectedPath)
	require.NoError(t, n.Descend())
	require.NoError(t, n.Ascend())
	assert.Equal(t, filepath.Join(a, "d"), n.Snapshot().SelectedPath)
}

func TestFilteredDirectoryStaysInParentPane(t *testing.T) {
	a := testutils.ScenarioTree(t)
	for _, dir := range []string{".hidden", "build"} {
		require.NoError(t, os.Mkdir(filepath.Join(a, dir), 0755))
	}
	lister, err := listing.New(listing.Options{HideDotfiles: true, Ignore: []string{"build"}})
	require.NoError(t, err)

	for _, dir := range []string{".hidden", "build"} {
		t.Run(dir, func(t *testing.T) {
			n := New(Options{Lister: lister})
			inside := filepath.Join(a, dir)
			require.NoError(t, n.Enter(inside, -1))

			v := n.Snapshot()
			require.GreaterOrEqual(t, v.ParentSelected, 0)
			assert.Equal(t, inside, v.ParentListing[v.ParentSelected].Path)
			assert.Len(t, v.ParentListing, 3, "only the directory being browsed is exempt")

			require.NoError(t, n.Ascend())
			assert.Equal(t, inside, n.Snapshot().SelectedPath)
		})
	}
}

func TestDescendOnFileIsNoop(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)
	n.MoveSelection(types.Next)

	require.NoError(t, n.Descend())
	assert.Equal(t, a, n.Pwd())
}

func TestAscendAtRoot(t *testing.T) {
	root := string(filepath.Separator)
	n := New(Options{})
	require.NoError(t, n.Enter(root, -1))

	v := n.Snapshot()
	assert.Empty(t, v.Parent)
	assert.Equal(t, -1, v.ParentSelected)
	require.NoError(t, n.Ascend())
	assert.Equal(t, root, n.Pwd())
}

func TestCreate(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)

	require.NoError(t, n.Create("new.txt"))
	assert.FileExists(t, filepath.Join(a, "new.txt"))
	assert.Len(t, n.Snapshot().Current, 2, "create does not refresh")

	n.Refresh()
	assert.Len(t, n.Snapshot().Current, 3)

	err := n.Create("new.txt")
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
	assert.Equal(t, err, n.Snapshot().LastError)
}

func TestCreateRejectsBadNames(t *testing.T) {
	n := newNavigator(t, testutils.ScenarioTree(t))
	for _, name := range []string{"", ".", "..", "x/y"} {
		err := n.Create(name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestRenameScenario(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)
	n.MoveSelection(types.Next)

	require.NoError(t, n.Rename(n.Snapshot().SelectedPath, "old.txt"))
	require.NoError(t, n.Enter(a, -1))

	var got []string
	for _, e := range n.Snapshot().Current {
		got = append(got, e.Name())
	}
	assert.Contains(t, got, "old.txt")
	assert.NotContains(t, got, "c.txt")
}

func TestRenameCollision(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)
	c := filepath.Join(a, "c.txt")

	err := n.Rename(c, "b")
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
	assert.FileExists(t, c)

	assert.NoError(t, n.Rename(c, "c.txt"))
}

func TestRenameWithoutSelection(t *testing.T) {
	n := newNavigator(t, t.TempDir())
	err := n.Rename(n.Snapshot().SelectedPath, "x")
	assert.True(t, errors.IsNotSelected(err))
	assert.Equal(t, errors.ErrNotSelected, n.Snapshot().LastError)
}

func TestDeleteKeepsSelectionStable(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"1.txt": "1", "2.txt": "2", "3.txt": "3",
	})
	n := newNavigator(t, dir)
	n.RefreshAt(2)

	idx, err := n.Delete()
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	n.RefreshAt(idx)
	v := n.Snapshot()
	assert.Len(t, v.Current, 2)
	assert.Equal(t, 1, v.Selected)

	n.RefreshAt(0)
	idx, err = n.Delete()
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	n.RefreshAt(idx)
	assert.Equal(t, 0, n.Snapshot().Selected)

	_, err = n.Delete()
	require.NoError(t, err)
	n.RefreshAt(0)
	v = n.Snapshot()
	assert.Empty(t, v.Current)
	assert.Equal(t, -1, v.Selected)
}

func TestDeleteDirectoryRecursively(t *testing.T) {
	a := testutils.ScenarioTree(t)
	testutils.CreateTestFilesWithContent(t, filepath.Join(a, "b"), map[string]string{"deep/x.txt": "x"})
	n := newNavigator(t, a)

	idx, err := n.Delete()
	require.NoError(t, err)
	n.RefreshAt(idx)
	assert.NoDirExists(t, filepath.Join(a, "b"))
	assert.Equal(t, filepath.Join(a, "c.txt"), n.Snapshot().SelectedPath)
}

func TestDeleteVanishedEntry(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)
	require.NoError(t, os.Remove(filepath.Join(a, "b")))

	_, err := n.Delete()
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))
	assert.Error(t, n.Snapshot().LastError)
}

func TestReadAndWriteFile(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)
	c := filepath.Join(a, "c.txt")

	content, err := n.ReadFile(c)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", content)

	require.NoError(t, n.WriteFile(c, "bye"))
	data, err := os.ReadFile(filepath.Join(a, "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, "bye", string(data))
}

func TestReadFileWithoutSelection(t *testing.T) {
	n := newNavigator(t, t.TempDir())
	_, err := n.ReadFile(n.Snapshot().SelectedPath)
	assert.True(t, errors.IsNotSelected(err))
	assert.True(t, errors.IsNotSelected(n.WriteFile("", "x")))
}

func TestReadFileRejectsBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0644))

	n := newNavigator(t, dir)
	_, err := n.ReadFile(path)
	assert.True(t, errors.IsInvalidOperation(err))
}

func TestErrorClearedOnlyBySelectionChange(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)

	n.SetError(errors.New("boom"))
	n.Refresh()
	assert.Error(t, n.Snapshot().LastError)
	require.NoError(t, n.Enter(a, 0))
	assert.Error(t, n.Snapshot().LastError)

	n.MoveSelection(types.Next)
	assert.NoError(t, n.Snapshot().LastError)

	n.SetError(errors.New("boom"))
	n.MoveSelection(types.Previous)
	assert.NoError(t, n.Snapshot().LastError)

	n.SetError(errors.New("boom"))
	require.NoError(t, n.Descend())
	assert.NoError(t, n.Snapshot().LastError)
}

func TestConcurrentRefreshAndMove(t *testing.T) {
	a := testutils.ScenarioTree(t)
	n := newNavigator(t, a)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if i%2 == 0 {
					n.Refresh()
				} else if req := n.MoveSelection(types.Direction(j % 2)); req != nil {
					n.LoadPreview(req)
				}
			}
		}(i)
	}
	wg.Wait()

	v := n.Snapshot()
	require.True(t, v.HasSelection())
	assert.Equal(t, v.Current[v.Selected].Path, v.SelectedPath)
}

func TestCountLines(t *testing.T) {
	cases := map[string]int{
		"":       0,
		"a":      1,
		"a\n":    1,
		"a\nb":   2,
		"a\nb\n": 2,
		"\n\n":   2,
		"a\n\nb": 3,
	}
	for in, want := range cases {
		assert.Equal(t, want, countLines(in), "input %q", in)
	}
}
