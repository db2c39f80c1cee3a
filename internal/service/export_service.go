package service

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/afero"
)

// ExportService writes one-way exports of the document.
type ExportService struct {
	fs afero.Fs
}

func NewExportService(fs afero.Fs) *ExportService {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &ExportService{fs: fs}
}

// WriteHTML stores html exactly as given.
func (s *ExportService) WriteHTML(path, html string) error {
	if err := afero.WriteFile(s.fs, path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write html %s: %w", path, err)
	}
	return nil
}

// WritePDF lays the markdown source out line by line on A4 pages.
func (s *ExportService) WritePDF(path, markdown string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(filepath.Base(path), true)
	pdf.SetCreator("Fire Sale", true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Courier", "", 10)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n") {
		if line == "" {
			pdf.Ln(5)
			continue
		}
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := afero.WriteFile(s.fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}
