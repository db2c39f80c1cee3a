package view

import (
	"errors"

	"firesale/internal/controller"

	"github.com/sqweek/dialog"
)

// NativeDialogs uses the platform's own file pickers and message boxes.
type NativeDialogs struct{}

func (NativeDialogs) OpenFile(title string, filters []controller.FileFilter) (string, error) {
	b := dialog.File().Title(title)
	for _, f := range filters {
		b = b.Filter(f.Name, f.Extensions...)
	}
	return cancelledIsEmpty(b.Load())
}

func (NativeDialogs) SaveFile(title string, filters []controller.FileFilter, startDir string) (string, error) {
	b := dialog.File().Title(title)
	if startDir != "" {
		b = b.SetStartDir(startDir)
	}
	for _, f := range filters {
		b = b.Filter(f.Name, f.Extensions...)
	}
	return cancelledIsEmpty(b.Save())
}

// Alert shows a blocking error box.
func (NativeDialogs) Alert(title, message string) {
	dialog.Message("%s", message).Title(title).Error()
}

func cancelledIsEmpty(path string, err error) (string, error) {
	if errors.Is(err, dialog.ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return path, nil
}
