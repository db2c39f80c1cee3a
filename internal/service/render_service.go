package service

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RenderService turns markdown into HTML that is safe to show in the preview.
type RenderService struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderService() *RenderService {
	return &RenderService{
		// Raw HTML is omitted by goldmark unless html.WithUnsafe is set.
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts the whole buffer; callers replace the preview with the result.
func (s *RenderService) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return s.policy.Sanitize(buf.String()), nil
}
