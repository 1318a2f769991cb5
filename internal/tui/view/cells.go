package view

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"

	tuitheme "github.com/glabrego/pagerdeck/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const maxDots = 12

func RenderPlainCell(text string, index int, active bool, width int, th tuitheme.Theme) string {
	marker := " "
	if active {
		marker = ">"
	}
	prefix := fmt.Sprintf(" %s %2d  ", marker, index)
	label := truncate(strings.TrimSpace(text), width-visibleLen(prefix))
	line := prefix + th.PlainText.Render(label)
	if gap := width - visibleLen(line); gap > 0 {
		line += strings.Repeat(" ", gap)
	}
	return th.RenderActiveLine(active, line)
}

type GalleryCellParams struct {
	ID         int
	Index      int
	Current    int
	Pages      int
	PageText   string
	Animating  bool
	DragOffset float64
	Active     bool
	Width      int
}

// RenderGalleryCell draws a boxed gallery: the current page's number, a dot
// strip and the page counter.
func RenderGalleryCell(p GalleryCellParams, th tuitheme.Theme) string {
	inner := p.Width - 2
	if inner < 1 {
		inner = 1
	}

	label := th.GalleryLabel.Render(fmt.Sprintf("%2d gallery %d", p.Index, p.ID))
	var body string
	if p.Pages == 0 {
		body = th.MetaLabel.Render("(no pages)")
	} else {
		number := th.PageNumber.Render(p.PageText)
		if p.Animating {
			number = "» " + number
		}
		if p.DragOffset != 0 {
			number = fmt.Sprintf("%s ~%+.1f", number, p.DragOffset)
		}
		body = fmt.Sprintf("%s  %s  %s", number, PageDots(p.Current, p.Pages, th),
			th.MetaValue.Render(fmt.Sprintf("%d/%d", p.Current+1, p.Pages)))
	}

	line := label + "  " + body
	if visibleLen(line) > inner {
		line = truncate(stripANSIText(line), inner)
	}
	if gap := inner - visibleLen(line); gap > 0 {
		line += strings.Repeat(" ", gap)
	}
	return th.GalleryFrame(p.Active).Render(line)
}

func PageDots(current, pages int, th tuitheme.Theme) string {
	if pages <= 0 {
		return ""
	}
	if pages > maxDots {
		return th.PageDot.Render(fmt.Sprintf("[%d of %d]", current+1, pages))
	}
	var b strings.Builder
	for i := 0; i < pages; i++ {
		if i == current {
			b.WriteString(th.PageDotCurrent.Render("●"))
			continue
		}
		b.WriteString(th.PageDot.Render("○"))
	}
	return b.String()
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxLen, "...")
}

func visibleLen(s string) int {
	return runewidth.StringWidth(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
