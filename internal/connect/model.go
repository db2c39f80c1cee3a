package connect

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	// FileOpened carries a freshly read document to the view.
	FileOpened Kind = "file-opened"
	// FileChanged reports that the open file was modified on disk.
	FileChanged Kind = "file-changed"
)

// Event is a host to view message.
type Event struct {
	ID      string
	Kind    Kind
	Path    string
	Content string
	Reload  bool
	Sent    time.Time
}

func NewFileOpened(path, content string) Event {
	return Event{
		ID:      uuid.New().String(),
		Kind:    FileOpened,
		Path:    path,
		Content: content,
		Sent:    time.Now(),
	}
}

// NewFileReloaded is a FileOpened for a file re-read after it changed on disk.
// The view drops it if the buffer has been edited since.
func NewFileReloaded(path, content string) Event {
	ev := NewFileOpened(path, content)
	ev.Reload = true
	return ev
}

func NewFileChanged(path string) Event {
	return Event{
		ID:   uuid.New().String(),
		Kind: FileChanged,
		Path: path,
		Sent: time.Now(),
	}
}
