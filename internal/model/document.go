package model

import "path/filepath"

// AppName is shown in the window title.
const AppName = "Fire Sale"

const editedSuffix = " (Edited)"

// Document is the single open markdown document.
type Document struct {
	Path          string `json:"path"`
	SavedContent  string `json:"saved_content"`
	BufferContent string `json:"buffer_content"`
}

// NewDocument returns the empty, unsaved document shown at startup.
func NewDocument() *Document {
	return &Document{}
}

// Load replaces the document with content read from path.
func (d *Document) Load(path, content string) {
	d.Path = path
	d.SavedContent = content
	d.BufferContent = content
}

// Edit replaces the live buffer.
func (d *Document) Edit(buffer string) {
	d.BufferContent = buffer
}

// Revert drops unsaved changes.
func (d *Document) Revert() {
	d.BufferContent = d.SavedContent
}

// IsEdited compares contents on every call; there is no dirty flag.
func (d *Document) IsEdited() bool {
	return d.BufferContent != d.SavedContent
}

func (d *Document) HasPath() bool {
	return d.Path != ""
}

// UIState is everything the window shows that depends on the document.
type UIState struct {
	Title              string
	Edited             bool
	SaveEnabled        bool
	RevertEnabled      bool
	ShowFileEnabled    bool
	OpenDefaultEnabled bool
}

// Derive computes the window state for d.
func Derive(d *Document) UIState {
	title := AppName
	if d.HasPath() {
		title = filepath.Base(d.Path) + " - " + AppName
	}

	edited := d.IsEdited()
	if edited {
		title += editedSuffix
	}

	return UIState{
		Title:              title,
		Edited:             edited,
		SaveEnabled:        edited,
		RevertEnabled:      edited,
		ShowFileEnabled:    d.HasPath(),
		OpenDefaultEnabled: d.HasPath(),
	}
}
