package controller

import (
	"mime"
	"path/filepath"
	"strings"

	"firesale/internal/connect"
	"firesale/internal/model"

	"github.com/tliron/commonlog"
)

func viewLog() commonlog.Logger { return commonlog.GetLogger("firesale.view") }

var (
	allowedDropTypes = map[string]bool{
		"text/plain":      true,
		"text/markdown":   true,
		"text/x-markdown": true,
	}
	allowedDropExts = map[string]bool{
		".md": true, ".markdown": true, ".mdown": true, ".txt": true, ".text": true,
	}
)

// DroppedFile is one item of an OS drag-and-drop.
type DroppedFile struct {
	Path     string
	MimeType string
}

// ViewController owns the open document and keeps the window in sync with it.
// It is not safe for concurrent use; call it from the UI thread only.
type ViewController struct {
	host     Host
	renderer Renderer
	view     ViewModel
	tr       Translator

	doc     *model.Document
	html    string
	pending bool
}

func NewViewController(host Host, renderer Renderer, view ViewModel, tr Translator) *ViewController {
	return &ViewController{
		host:     host,
		renderer: renderer,
		view:     view,
		tr:       tr,
		doc:      model.NewDocument(),
	}
}

// Start paints the initial empty document.
func (c *ViewController) Start() {
	c.view.SetEditorText(c.doc.BufferContent)
	c.render()
	c.refresh()
}

// Document returns a snapshot of the current document.
func (c *ViewController) Document() model.Document {
	return *c.doc
}

// HTML is the last rendered preview.
func (c *ViewController) HTML() string {
	return c.html
}

func (c *ViewController) Pending() bool {
	return c.pending
}

// HandleEvent applies a host event.
func (c *ViewController) HandleEvent(ev connect.Event) {
	switch ev.Kind {
	case connect.FileOpened:
		if ev.Reload && c.doc.IsEdited() {
			viewLog().Infof("%s edited since reload was requested, keeping buffer", ev.Path)
			return
		}
		c.HandleFileOpened(ev.Path, ev.Content)
	case connect.FileChanged:
		c.HandleFileChanged(ev.Path)
	default:
		viewLog().Warningf("unknown event %q id=%s", ev.Kind, ev.ID)
	}
}

// HandleFileOpened replaces the document, discarding any unsaved buffer.
func (c *ViewController) HandleFileOpened(path, content string) {
	c.doc.Load(path, content)
	c.view.SetEditorText(content)
	c.render()
	c.refresh()
}

// HandleEdit is called for every change of the editor text.
func (c *ViewController) HandleEdit(text string) {
	c.doc.Edit(text)
	c.render()
	c.refresh()
}

// HandleFileChanged reloads the document from disk unless it has unsaved edits.
func (c *ViewController) HandleFileChanged(path string) {
	if !c.doc.HasPath() || filepath.Clean(path) != filepath.Clean(c.doc.Path) {
		return
	}
	if c.doc.IsEdited() {
		viewLog().Infof("%s changed on disk, keeping unsaved edits", path)
		return
	}
	path = c.doc.Path
	c.request("reload", func() error { return c.host.ReloadFile(path) })
}

func (c *ViewController) OpenClicked() {
	c.request("open", c.host.RequestOpenFile)
}

// OpenRecent opens a file picked from the recent list.
func (c *ViewController) OpenRecent(path string) {
	c.request("open recent", func() error { return c.host.OpenFile(path) })
}

// SaveClicked is rejected unless there are unsaved edits.
func (c *ViewController) SaveClicked() {
	if !c.doc.IsEdited() {
		return
	}
	path, content := c.doc.Path, c.doc.BufferContent
	c.request("save", func() error { return c.host.SaveMarkdown(path, content) })
}

func (c *ViewController) SaveHTMLClicked() {
	html := c.html
	c.request("save html", func() error { return c.host.SaveHTML(html) })
}

func (c *ViewController) SavePDFClicked() {
	content := c.doc.BufferContent
	c.request("save pdf", func() error { return c.host.SavePDF(content) })
}

func (c *ViewController) RevertClicked() {
	if !c.doc.IsEdited() {
		return
	}
	c.doc.Revert()
	c.view.SetEditorText(c.doc.BufferContent)
	c.render()
	c.refresh()
}

func (c *ViewController) ShowFileClicked() {
	if !c.doc.HasPath() {
		return
	}
	if err := c.host.ShowInFolder(c.doc.Path); err != nil {
		c.fail("show file", err)
	}
}

func (c *ViewController) OpenDefaultClicked() {
	if !c.doc.HasPath() {
		return
	}
	if err := c.host.OpenInDefault(c.doc.Path); err != nil {
		c.fail("open in default application", err)
	}
}

// Dropped opens the first dropped file if it looks like markdown or text.
func (c *ViewController) Dropped(files []DroppedFile) {
	if len(files) == 0 {
		return
	}
	f := files[0]
	if !AcceptsDrop(f) {
		viewLog().Infof("rejected drop of %s (%q)", f.Path, f.MimeType)
		c.view.Alert(c.t("Unsupported File"), c.t("That file type is not supported"))
		return
	}
	c.request("drop", func() error { return c.host.OpenFile(f.Path) })
}

// AcceptsDrop checks the MIME type, falling back to the extension when the
// type is missing or generic.
func AcceptsDrop(f DroppedFile) bool {
	mediaType, _, err := mime.ParseMediaType(f.MimeType)
	if err != nil {
		mediaType = ""
	}
	mediaType = strings.ToLower(mediaType)

	if allowedDropTypes[mediaType] {
		return true
	}
	if mediaType == "" || mediaType == "application/octet-stream" {
		return allowedDropExts[strings.ToLower(filepath.Ext(f.Path))]
	}
	return false
}

// request runs one host call at a time; triggers while a call is in flight
// are dropped.
func (c *ViewController) request(name string, call func() error) {
	if c.pending {
		viewLog().Debugf("%s ignored, request pending", name)
		return
	}
	c.pending = true
	c.refresh()

	err := call()

	c.pending = false
	c.refresh()
	if err != nil {
		c.fail(name, err)
	}
}

func (c *ViewController) fail(name string, err error) {
	viewLog().Errorf("%s: %v", name, err)
	c.view.Alert(c.t("Error"), err.Error())
}

func (c *ViewController) render() {
	html, err := c.renderer.Render(c.doc.BufferContent)
	if err != nil {
		viewLog().Errorf("preview: %v", err)
		return
	}
	c.html = html
	c.view.SetPreview(c.doc.BufferContent, html)
}

func (c *ViewController) refresh() {
	st := model.Derive(c.doc)
	idle := !c.pending

	c.view.SetTitle(st.Title)
	c.view.SetDocumentEdited(st.Edited)
	c.view.SetControls(Controls{
		Open:        idle,
		Save:        idle && st.SaveEnabled,
		Revert:      idle && st.RevertEnabled,
		SaveHTML:    idle,
		SavePDF:     idle,
		ShowFile:    st.ShowFileEnabled,
		OpenDefault: st.OpenDefaultEnabled,
	})
}

func (c *ViewController) t(key string) string {
	if c.tr == nil {
		return key
	}
	return c.tr.Translate(key)
}
