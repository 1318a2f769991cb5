package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/pagerdeck/internal/tui/theme"
)

func Toolbar(showHelp bool) string {
	if showHelp {
		return "esc/?: close help | q: save and quit"
	}
	return "j/k move | h/l page | 0-9 jump page | w save | ? help | q quit"
}

func HelpLines() []string {
	return []string{
		"Navigation:",
		"  j/k or up/down move between cells, g/G jump top/bottom, pgup/pgdown jump a screen",
		"Galleries:",
		"  h/l or left/right swipe the gallery under the cursor",
		"  0-9 jump straight to a page, , and . drag, enter settles the drag",
		"Session:",
		"  w saves the selected pages now, q saves and quits",
	}
}

func Footer(cursor, total, live, retained int, revision string, th tuitheme.Theme) string {
	if revision == "" {
		revision = "unsaved"
	} else if len(revision) > 8 {
		revision = revision[:8]
	}
	parts := []string{
		th.MetaLabel.Render("item") + " " + th.MetaValue.Render(fmt.Sprintf("%d/%d", cursor+1, total)),
		th.MetaLabel.Render("live") + " " + th.MetaValue.Render(fmt.Sprintf("%d", live)),
		th.MetaLabel.Render("retained") + " " + th.MetaValue.Render(fmt.Sprintf("%d", retained)),
		th.MetaLabel.Render("snapshot") + " " + th.MetaValue.Render(revision),
	}
	return strings.Join(parts, " • ")
}

func Message(saving bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if saving {
		state = "saving"
	}
	if warning != "" {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if warning != "" {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "saving":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
