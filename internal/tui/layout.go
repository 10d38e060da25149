package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// workspacePaneWidth is the fixed width of the left pane; tasks take the rest.
const workspacePaneWidth = 24

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall. This keeps split-pane rendering stable with lipgloss.JoinHorizontal.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// fitLine truncates (with an ellipsis) or pads ln to exactly width columns.
func fitLine(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	// Bound the cost of StringWidth on pathological lines.
	if len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width+1)
	}
	w := xansi.StringWidth(ln)
	if w > width {
		if width == 1 {
			ln = xansi.Cut(ln, 0, 1)
		} else {
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// truncate shortens ln to at most width columns without padding.
func truncate(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(ln) <= width {
		return ln
	}
	if width == 1 {
		return xansi.Cut(ln, 0, 1)
	}
	return xansi.Cut(ln, 0, width-1) + "…"
}

// overlayCenter draws popup over the middle of base. base must already be
// width x height (see normalizePane).
func overlayCenter(base, popup string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	popLines := strings.Split(popup, "\n")

	pw := 0
	for _, ln := range popLines {
		if w := xansi.StringWidth(ln); w > pw {
			pw = w
		}
	}
	if pw > width {
		pw = width
	}
	top := (height - len(popLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (width - pw) / 2

	for i, ln := range popLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		under := baseLines[row]
		ln = fitLine(ln, pw)
		baseLines[row] = xansi.Cut(under, 0, left) + ln + xansi.Cut(under, left+pw, width)
	}
	return strings.Join(baseLines, "\n")
}
