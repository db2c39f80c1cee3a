package controller

import (
	"fmt"
	"path/filepath"
	"sync"

	"firesale/internal/connect"
	"firesale/internal/repository"

	"github.com/tliron/commonlog"
)

// Loggers are looked up on use so the backend chosen in main applies.
func hostLog() commonlog.Logger { return commonlog.GetLogger("firesale.host") }

var (
	openFilters = []FileFilter{
		{Name: "Markdown Files", Extensions: []string{"md", "markdown", "mdown"}},
		{Name: "Text Files", Extensions: []string{"txt", "text"}},
	}
	markdownSaveFilters = []FileFilter{
		{Name: "Markdown Files", Extensions: []string{"markdown", "mdown", "md"}},
	}
	htmlFilters = []FileFilter{{Name: "HTML Files", Extensions: []string{"html"}}}
	pdfFilters  = []FileFilter{{Name: "PDF Files", Extensions: []string{"pdf"}}}
)

// HostOptions configures where save dialogs start.
type HostOptions struct {
	DocumentsDir  string
	HTMLExportDir string
}

type HostController struct {
	dialogs Dialogs
	repo    *repository.DocumentRepository
	exports Exporter
	recent  RecentDocuments
	shell   Shell
	watcher Watcher
	events  Publisher
	opts    HostOptions
	tr      Translator

	mu sync.Mutex

	// last content read from or written to each path
	known map[string]string
}

func NewHostController(
	dialogs Dialogs,
	repo *repository.DocumentRepository,
	exports Exporter,
	events Publisher,
	opts HostOptions,
) *HostController {
	return &HostController{
		dialogs: dialogs,
		repo:    repo,
		exports: exports,
		events:  events,
		opts:    opts,
		known:   make(map[string]string),
	}
}

// WithRecent registers opened files with r.
func (h *HostController) WithRecent(r RecentDocuments) *HostController {
	h.recent = r
	return h
}

func (h *HostController) WithShell(s Shell) *HostController {
	h.shell = s
	return h
}

// WithWatcher makes the host follow every opened file for external changes.
func (h *HostController) WithWatcher(w Watcher) *HostController {
	h.watcher = w
	return h
}

// WithTranslator localizes dialog titles and filter names.
func (h *HostController) WithTranslator(tr Translator) *HostController {
	h.tr = tr
	return h
}

// RequestOpenFile asks the user for a file and opens it.
func (h *HostController) RequestOpenFile() error {
	path, err := h.dialogs.OpenFile(h.t("Open a Markdown File"), h.filters(openFilters))
	if err != nil {
		return fmt.Errorf("open dialog: %w", err)
	}
	if path == "" {
		hostLog().Debug("open dialog cancelled")
		return nil
	}
	return h.OpenFile(path)
}

// OpenFile reads path and pushes it to the view.
func (h *HostController) OpenFile(path string) error {
	content, err := h.repo.Read(path)
	if err != nil {
		hostLog().Errorf("open failed: %v", err)
		return err
	}

	if h.recent != nil {
		if err := h.recent.Add(path); err != nil {
			hostLog().Warningf("register recent %s: %v", path, err)
		}
	}
	if h.watcher != nil {
		if err := h.watcher.Watch(path); err != nil {
			hostLog().Warningf("watch %s: %v", path, err)
		}
	}

	h.remember(path, content)
	hostLog().Infof("opened %s (%d bytes)", path, len(content))
	h.events.Publish(connect.NewFileOpened(path, content))
	return nil
}

// ReloadFile re-reads path after a change on disk. Nothing is published when
// the content is what the host last read or wrote.
func (h *HostController) ReloadFile(path string) error {
	content, err := h.repo.Read(path)
	if err != nil {
		return err
	}
	if h.isKnown(path, content) {
		hostLog().Debugf("%s unchanged, skipping reload", path)
		return nil
	}
	h.remember(path, content)
	hostLog().Infof("reloaded %s (%d bytes)", path, len(content))
	h.events.Publish(connect.NewFileReloaded(path, content))
	return nil
}

// FileChanged is the watcher callback. It may run on any goroutine.
// Writes made by the host itself are not reported.
func (h *HostController) FileChanged(path string) {
	content, err := h.repo.Read(path)
	if err != nil {
		hostLog().Warningf("changed file unreadable: %v", err)
		return
	}
	if h.isKnown(path, content) {
		return
	}
	h.events.Publish(connect.NewFileChanged(path))
}

// SaveMarkdown writes content to path, asking for a path when it is empty,
// then reopens the file so the view's saved content matches the disk.
func (h *HostController) SaveMarkdown(path, content string) error {
	if path == "" {
		chosen, err := h.dialogs.SaveFile(h.t("Save Markdown"), h.filters(markdownSaveFilters), h.opts.DocumentsDir)
		if err != nil {
			return fmt.Errorf("save dialog: %w", err)
		}
		if chosen == "" {
			hostLog().Debug("save dialog cancelled")
			return nil
		}
		path = withDefaultExt(chosen, ".md")
	}

	if err := h.repo.Write(path, content); err != nil {
		hostLog().Errorf("save failed: %v", err)
		return err
	}
	h.remember(path, content)
	hostLog().Infof("saved %s", path)
	return h.OpenFile(path)
}

// SaveHTML exports content verbatim. Nothing is read back.
func (h *HostController) SaveHTML(content string) error {
	path, err := h.dialogs.SaveFile(h.t("Save HTML Export"), h.filters(htmlFilters), h.opts.HTMLExportDir)
	if err != nil {
		return fmt.Errorf("save dialog: %w", err)
	}
	if path == "" {
		return nil
	}
	path = withDefaultExt(path, ".html")

	if err := h.exports.WriteHTML(path, content); err != nil {
		hostLog().Errorf("html export failed: %v", err)
		return err
	}
	hostLog().Infof("exported html to %s", path)
	return nil
}

func (h *HostController) SavePDF(markdown string) error {
	path, err := h.dialogs.SaveFile(h.t("Save PDF Export"), h.filters(pdfFilters), h.opts.HTMLExportDir)
	if err != nil {
		return fmt.Errorf("save dialog: %w", err)
	}
	if path == "" {
		return nil
	}
	path = withDefaultExt(path, ".pdf")

	if err := h.exports.WritePDF(path, markdown); err != nil {
		hostLog().Errorf("pdf export failed: %v", err)
		return err
	}
	hostLog().Infof("exported pdf to %s", path)
	return nil
}

func (h *HostController) ShowInFolder(path string) error {
	if path == "" || h.shell == nil {
		return nil
	}
	return h.shell.ShowInFolder(path)
}

func (h *HostController) OpenInDefault(path string) error {
	if path == "" || h.shell == nil {
		return nil
	}
	return h.shell.OpenInDefault(path)
}

func (h *HostController) remember(path, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.known[filepath.Clean(path)] = content
}

func (h *HostController) isKnown(path, content string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev, ok := h.known[filepath.Clean(path)]
	return ok && prev == content
}

func (h *HostController) t(key string) string {
	if h.tr == nil {
		return key
	}
	return h.tr.Translate(key)
}

func (h *HostController) filters(in []FileFilter) []FileFilter {
	out := make([]FileFilter, len(in))
	for i, f := range in {
		out[i] = FileFilter{Name: h.t(f.Name), Extensions: f.Extensions}
	}
	return out
}

func withDefaultExt(path, ext string) string {
	if filepath.Ext(path) == "" {
		return path + ext
	}
	return path
}
