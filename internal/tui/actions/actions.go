package actions

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type Saver interface {
	SavePositions(ctx context.Context, pages map[int]int) (string, error)
}

type SnapshotSavedMsg struct {
	Revision string
	Pages    int
	Duration time.Duration
	Quit     bool
}

type SnapshotSaveErrorMsg struct {
	Err  error
	Quit bool
}

type ClearStatusMsg struct {
	ID int
}

// SaveSnapshotCmd persists pages. The map must not be shared with the
// running screen; callers pass a store snapshot.
func SaveSnapshotCmd(saver Saver, pages map[int]int, quit bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		start := time.Now()

		revision, err := saver.SavePositions(ctx, pages)
		if err != nil {
			return SnapshotSaveErrorMsg{Err: err, Quit: quit}
		}
		return SnapshotSavedMsg{Revision: revision, Pages: len(pages), Duration: time.Since(start), Quit: quit}
	}
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
