package controller

import "firesale/internal/connect"

// FileFilter restricts a file dialog to the given extensions (no dot).
type FileFilter struct {
	Name       string
	Extensions []string
}

// Dialogs shows native file pickers. A cancelled dialog returns "" and a nil error.
type Dialogs interface {
	OpenFile(title string, filters []FileFilter) (string, error)
	SaveFile(title string, filters []FileFilter, startDir string) (string, error)
}

type Shell interface {
	ShowInFolder(path string) error
	OpenInDefault(path string) error
}

type RecentDocuments interface {
	Add(path string) error
}

type Watcher interface {
	Watch(path string) error
}

type Publisher interface {
	Publish(ev connect.Event) bool
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ev connect.Event) bool

func (f PublisherFunc) Publish(ev connect.Event) bool { return f(ev) }

type Exporter interface {
	WriteHTML(path, html string) error
	WritePDF(path, markdown string) error
}

// Host is the privileged side the view sends requests to.
type Host interface {
	RequestOpenFile() error
	OpenFile(path string) error
	ReloadFile(path string) error
	SaveMarkdown(path, content string) error
	SaveHTML(content string) error
	SavePDF(markdown string) error
	ShowInFolder(path string) error
	OpenInDefault(path string) error
}

type Renderer interface {
	Render(markdown string) (string, error)
}

type Translator interface {
	Translate(key string) string
}

// Controls holds the enabled state of every interactive control.
type Controls struct {
	Open        bool
	Save        bool
	Revert      bool
	SaveHTML    bool
	SavePDF     bool
	ShowFile    bool
	OpenDefault bool
}

// ViewModel is the window and the handful of widgets the view controller drives.
type ViewModel interface {
	SetTitle(title string)
	SetDocumentEdited(edited bool)
	SetEditorText(text string)
	SetPreview(markdown, html string)
	SetControls(c Controls)
	// Alert blocks until the user dismisses it.
	Alert(title, message string)
}
