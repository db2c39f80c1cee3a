package controller

import (
	"errors"
	"testing"

	"firesale/internal/connect"
	"firesale/internal/repository"
	"firesale/internal/service"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hostFixture struct {
	fs      afero.Fs
	dialogs *fakeDialogs
	events  *eventLog
	recent  *fakeRecent
	host    *HostController
}

func newHostFixture() *hostFixture {
	fs := afero.NewMemMapFs()
	f := &hostFixture{
		fs:      fs,
		dialogs: &fakeDialogs{},
		events:  &eventLog{},
		recent:  &fakeRecent{},
	}
	f.host = NewHostController(
		f.dialogs,
		repository.NewDocumentRepository(fs),
		service.NewExportService(fs),
		f.events,
		HostOptions{DocumentsDir: "/home/me/Documents", HTMLExportDir: "/home/me/Exports"},
	).WithRecent(f.recent)
	return f
}

func TestRequestOpenFileUsesFiltersAndPublishes(t *testing.T) {
	f := newHostFixture()
	require.NoError(t, afero.WriteFile(f.fs, "/docs/notes.md", []byte("# Hi"), 0o644))
	f.dialogs.openPath = "/docs/notes.md"

	require.NoError(t, f.host.RequestOpenFile())

	require.Len(t, f.dialogs.openCalls, 1)
	assert.Equal(t, openFilters, f.dialogs.openCalls[0].filters)
	require.Len(t, f.events.events, 1)
	ev := f.events.events[0]
	assert.Equal(t, connect.FileOpened, ev.Kind)
	assert.Equal(t, "/docs/notes.md", ev.Path)
	assert.Equal(t, "# Hi", ev.Content)
	assert.Equal(t, []string{"/docs/notes.md"}, f.recent.paths)
}

func TestRequestOpenFileCancelled(t *testing.T) {
	f := newHostFixture()

	require.NoError(t, f.host.RequestOpenFile())

	assert.Empty(t, f.events.events)
	assert.Empty(t, f.recent.paths)
}

func TestOpenFileMissingReturnsError(t *testing.T) {
	f := newHostFixture()

	err := f.host.OpenFile("/nope.md")

	require.Error(t, err)
	assert.Empty(t, f.events.events)
}

func TestOpenFileSurvivesRecentAndWatchFailures(t *testing.T) {
	f := newHostFixture()
	f.recent.err = errors.New("disk full")
	w := &fakeWatcher{}
	f.host.WithWatcher(w)
	require.NoError(t, afero.WriteFile(f.fs, "/a.md", []byte("a"), 0o644))

	require.NoError(t, f.host.OpenFile("/a.md"))

	assert.Len(t, f.events.events, 1)
	assert.Equal(t, []string{"/a.md"}, w.paths)
}

func TestSaveMarkdownExistingPathRereads(t *testing.T) {
	f := newHostFixture()
	require.NoError(t, afero.WriteFile(f.fs, "/a.md", []byte("old"), 0o644))

	require.NoError(t, f.host.SaveMarkdown("/a.md", "new\ncontent"))

	assert.Empty(t, f.dialogs.saveCalls)
	data, err := afero.ReadFile(f.fs, "/a.md")
	require.NoError(t, err)
	assert.Equal(t, "new\ncontent", string(data))
	require.Len(t, f.events.events, 1)
	assert.Equal(t, "new\ncontent", f.events.events[0].Content)
}

func TestSaveMarkdownNewDocumentAsksForPath(t *testing.T) {
	f := newHostFixture()
	f.dialogs.savePath = "/home/me/Documents/draft"

	require.NoError(t, f.host.SaveMarkdown("", "draft"))

	require.Len(t, f.dialogs.saveCalls, 1)
	assert.Equal(t, "/home/me/Documents", f.dialogs.saveCalls[0].startDir)
	assert.Equal(t, markdownSaveFilters, f.dialogs.saveCalls[0].filters)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, "/home/me/Documents/draft.md", f.events.events[0].Path)
}

func TestSaveMarkdownCancelled(t *testing.T) {
	f := newHostFixture()

	require.NoError(t, f.host.SaveMarkdown("", "draft"))

	assert.Empty(t, f.events.events)
	exists, err := afero.Exists(f.fs, "/home/me/Documents/draft.md")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSaveMarkdownWriteError(t *testing.T) {
	f := newHostFixture()
	f.host.repo = repository.NewDocumentRepository(afero.NewReadOnlyFs(f.fs))

	assert.Error(t, f.host.SaveMarkdown("/a.md", "x"))
	assert.Empty(t, f.events.events)
}

func TestSaveHTMLIsOneWay(t *testing.T) {
	f := newHostFixture()
	f.dialogs.savePath = "/home/me/Exports/page.html"

	require.NoError(t, f.host.SaveHTML("<h1>Hi</h1>"))

	require.Len(t, f.dialogs.saveCalls, 1)
	assert.Equal(t, "/home/me/Exports", f.dialogs.saveCalls[0].startDir)
	assert.Equal(t, htmlFilters, f.dialogs.saveCalls[0].filters)
	data, err := afero.ReadFile(f.fs, "/home/me/Exports/page.html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1>", string(data))
	assert.Empty(t, f.events.events)
	assert.Empty(t, f.recent.paths)
}

func TestSaveHTMLCancelledAndDialogError(t *testing.T) {
	f := newHostFixture()
	require.NoError(t, f.host.SaveHTML("<p></p>"))

	f.dialogs.err = errors.New("no display")
	assert.Error(t, f.host.SaveHTML("<p></p>"))
}

func TestSavePDF(t *testing.T) {
	f := newHostFixture()
	f.dialogs.savePath = "/out/notes"

	require.NoError(t, f.host.SavePDF("# Hi"))

	exists, err := afero.Exists(f.fs, "/out/notes.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Empty(t, f.events.events)
}

func TestShellRequiresPath(t *testing.T) {
	f := newHostFixture()
	sh := &fakeShell{}
	f.host.WithShell(sh)

	require.NoError(t, f.host.ShowInFolder(""))
	require.NoError(t, f.host.OpenInDefault(""))
	require.NoError(t, f.host.ShowInFolder("/a.md"))
	require.NoError(t, f.host.OpenInDefault("/a.md"))

	assert.Equal(t, []string{"/a.md"}, sh.shown)
	assert.Equal(t, []string{"/a.md"}, sh.opened)
}

func TestWithDefaultExt(t *testing.T) {
	assert.Equal(t, "/a/b.md", withDefaultExt("/a/b", ".md"))
	assert.Equal(t, "/a/b.markdown", withDefaultExt("/a/b.markdown", ".md"))
	assert.Equal(t, "/a/b.txt", withDefaultExt("/a/b.txt", ".md"))
}

func TestFileChangedIgnoresOwnContent(t *testing.T) {
	f := newHostFixture()
	require.NoError(t, afero.WriteFile(f.fs, "/docs/a.md", []byte("v1"), 0o644))
	require.NoError(t, f.host.OpenFile("/docs/a.md"))
	require.NoError(t, f.host.SaveMarkdown("/docs/a.md", "v2"))
	f.events.events = nil

	f.host.FileChanged("/docs/a.md")
	assert.Empty(t, f.events.events)

	require.NoError(t, afero.WriteFile(f.fs, "/docs/a.md", []byte("v3"), 0o644))
	f.host.FileChanged("/docs/a.md")
	require.Len(t, f.events.events, 1)
	assert.Equal(t, connect.FileChanged, f.events.events[0].Kind)

	f.host.FileChanged("/docs/missing.md")
	assert.Len(t, f.events.events, 1)
}

func TestReloadFilePublishesOnlyNewContent(t *testing.T) {
	f := newHostFixture()
	require.NoError(t, afero.WriteFile(f.fs, "/docs/a.md", []byte("v1"), 0o644))
	require.NoError(t, f.host.OpenFile("/docs/a.md"))
	f.events.events = nil
	f.recent.paths = nil

	require.NoError(t, f.host.ReloadFile("/docs/a.md"))
	assert.Empty(t, f.events.events)

	require.NoError(t, afero.WriteFile(f.fs, "/docs/a.md", []byte("v2"), 0o644))
	require.NoError(t, f.host.ReloadFile("/docs/a.md"))
	require.Len(t, f.events.events, 1)
	ev := f.events.events[0]
	assert.Equal(t, connect.FileOpened, ev.Kind)
	assert.True(t, ev.Reload)
	assert.Equal(t, "v2", ev.Content)
	assert.Empty(t, f.recent.paths)

	assert.Error(t, f.host.ReloadFile("/docs/missing.md"))
}
