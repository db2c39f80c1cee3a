package controller

import (
	"errors"
	"sync"

	"firesale/internal/connect"
)

type dialogCall struct {
	title    string
	filters  []FileFilter
	startDir string
}

type fakeDialogs struct {
	openPath  string
	savePath  string
	err       error
	openCalls []dialogCall
	saveCalls []dialogCall
}

func (d *fakeDialogs) OpenFile(title string, filters []FileFilter) (string, error) {
	d.openCalls = append(d.openCalls, dialogCall{title: title, filters: filters})
	return d.openPath, d.err
}

func (d *fakeDialogs) SaveFile(title string, filters []FileFilter, startDir string) (string, error) {
	d.saveCalls = append(d.saveCalls, dialogCall{title: title, filters: filters, startDir: startDir})
	return d.savePath, d.err
}

type alert struct{ title, message string }

type fakeView struct {
	title    string
	edited   bool
	editor   string
	markdown string
	html     string
	controls Controls
	alerts   []alert
}

func (v *fakeView) SetTitle(title string)            { v.title = title }
func (v *fakeView) SetDocumentEdited(edited bool)    { v.edited = edited }
func (v *fakeView) SetEditorText(text string)        { v.editor = text }
func (v *fakeView) SetPreview(markdown, html string) { v.markdown, v.html = markdown, html }
func (v *fakeView) SetControls(c Controls)           { v.controls = c }
func (v *fakeView) Alert(title, message string) {
	v.alerts = append(v.alerts, alert{title: title, message: message})
}

type fakeShell struct {
	shown  []string
	opened []string
}

func (s *fakeShell) ShowInFolder(path string) error {
	s.shown = append(s.shown, path)
	return nil
}

func (s *fakeShell) OpenInDefault(path string) error {
	s.opened = append(s.opened, path)
	return nil
}

type fakeRecent struct {
	paths []string
	err   error
}

func (r *fakeRecent) Add(path string) error {
	r.paths = append(r.paths, path)
	return r.err
}

type fakeWatcher struct{ paths []string }

func (w *fakeWatcher) Watch(path string) error {
	w.paths = append(w.paths, path)
	return errors.New("watch unsupported")
}

type eventLog struct{ events []connect.Event }

func (l *eventLog) Publish(ev connect.Event) bool {
	l.events = append(l.events, ev)
	return true
}

// eventQueue holds events until the test delivers them, like the channel
// between host and view.
type eventQueue struct {
	mu     sync.Mutex
	events []connect.Event
}

func (q *eventQueue) Publish(ev connect.Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, ev)
	return true
}

func (q *eventQueue) drain() []connect.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

// fakeHost records requests and lets tests hook into them.
type fakeHost struct {
	calls  []string
	onCall func(name string) error
}

func (h *fakeHost) call(name string) error {
	h.calls = append(h.calls, name)
	if h.onCall != nil {
		return h.onCall(name)
	}
	return nil
}

func (h *fakeHost) RequestOpenFile() error        { return h.call("request-open") }
func (h *fakeHost) OpenFile(path string) error    { return h.call("open:" + path) }
func (h *fakeHost) ReloadFile(path string) error  { return h.call("reload:" + path) }
func (h *fakeHost) SaveHTML(content string) error { return h.call("save-html") }
func (h *fakeHost) SavePDF(markdown string) error { return h.call("save-pdf") }
func (h *fakeHost) ShowInFolder(path string) error {
	return h.call("show:" + path)
}
func (h *fakeHost) OpenInDefault(path string) error {
	return h.call("default:" + path)
}
func (h *fakeHost) SaveMarkdown(path, content string) error {
	return h.call("save:" + path)
}
