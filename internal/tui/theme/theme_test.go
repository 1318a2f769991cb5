package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestRenderActiveLine(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()

	if got := th.RenderActiveLine(false, "plain"); got != "plain" {
		t.Fatalf("inactive line must be unstyled, got %q", got)
	}
	active := th.RenderActiveLine(true, "cursor")
	if !strings.Contains(active, "\x1b[") || !strings.Contains(active, "cursor") {
		t.Fatalf("expected styled active line, got %q", active)
	}
}

func TestGalleryFrame_DrawsBorder(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	th := Default()

	for _, active := range []bool{false, true} {
		box := th.GalleryFrame(active).Render("7")
		lines := strings.Split(box, "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3-line box, got %d: %q", len(lines), box)
		}
		if !strings.HasPrefix(lines[0], "╭") || !strings.Contains(lines[1], "7") {
			t.Fatalf("unexpected box: %q", box)
		}
	}
}
