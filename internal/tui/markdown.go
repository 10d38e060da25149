package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// descriptionPreview renders task descriptions for the preview area. The style is
// fixed at construction because glamour's auto style queries the terminal.
type descriptionPreview struct {
	style string

	width    int
	renderer *glamour.TermRenderer

	// last render, reused while the same task stays selected
	src string
	out string
}

func newDescriptionPreview() *descriptionPreview {
	return &descriptionPreview{style: markdownStyle()}
}

func (p *descriptionPreview) render(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	if p.renderer == nil || p.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(previewStyle(p.style)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		p.renderer, p.width, p.src = r, width, ""
	}
	if md == p.src {
		return p.out
	}
	out, err := p.renderer.Render(md)
	if err != nil {
		return md
	}
	p.src, p.out = md, strings.Trim(out, "\n")
	return p.out
}

// renderDescription is a one-off render with a fresh preview.
func renderDescription(md string, width int) string {
	return newDescriptionPreview().render(md, width)
}

// previewStyle zeroes block margins; the preview is a few lines tall.
func previewStyle(name string) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if name == "light" {
		cfg = styles.LightStyleConfig
	}
	var zero uint
	for _, m := range []**uint{&cfg.Document.Margin, &cfg.Paragraph.Margin, &cfg.List.Margin, &cfg.Heading.Margin, &cfg.CodeBlock.Margin} {
		*m = &zero
	}
	return cfg
}

// markdownStyle honours DO_ME_THEME, then the terminal background.
func markdownStyle() string {
	switch v := strings.ToLower(strings.TrimSpace(os.Getenv("DO_ME_THEME"))); v {
	case "light", "dark":
		return v
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
