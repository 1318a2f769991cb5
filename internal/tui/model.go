package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/glabrego/pagerdeck/internal/cells"
	"github.com/glabrego/pagerdeck/internal/gallery"
	"github.com/glabrego/pagerdeck/internal/hosting"
	"github.com/glabrego/pagerdeck/internal/items"
	"github.com/glabrego/pagerdeck/internal/positions"
	"github.com/glabrego/pagerdeck/internal/tui/actions"
	"github.com/glabrego/pagerdeck/internal/tui/state"
	tuitheme "github.com/glabrego/pagerdeck/internal/tui/theme"
	"github.com/glabrego/pagerdeck/internal/tui/view"
)

const (
	plainCellHeight   = 1
	galleryCellHeight = 3
	dragStep          = 0.4
	defaultWidth      = 80
)

type Model struct {
	list    *items.List
	rec     *cells.Recycler
	reg     *hosting.Registry
	store   *positions.Store
	saver   actions.Saver
	log     *zap.Logger
	theme   tuitheme.Theme
	heights []int

	cursor int
	top    int
	width  int
	height int

	showHelp bool
	saving   bool
	status   string
	statusID int
	revision string
	err      error
	exitErr  error
}

// NewModel lays out the first screen of cells. saver may be nil, in which
// case the screen never persists positions.
func NewModel(list *items.List, rec *cells.Recycler, reg *hosting.Registry, store *positions.Store, saver actions.Saver, log *zap.Logger) (Model, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		list:    list,
		rec:     rec,
		reg:     reg,
		store:   store,
		saver:   saver,
		log:     log,
		theme:   tuitheme.Default(),
		heights: cellHeights(list),
	}
	if err := m.layout(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func cellHeights(list *items.List) []int {
	heights := make([]int, list.Len())
	for i := range heights {
		if list.KindOf(i) == items.KindGallery {
			heights[i] = galleryCellHeight
		} else {
			heights[i] = plainCellHeight
		}
	}
	return heights
}

// SetRevision shows the revision of the snapshot the store was restored from.
func (m *Model) SetRevision(revision string) {
	m.revision = revision
}

// Err is the error that ended the program, if any.
func (m Model) Err() error {
	return m.exitErr
}

// Teardown detaches every live cell and drops retained hosting units.
func (m Model) Teardown() {
	m.rec.Teardown()
	m.reg.Teardown()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.relayout()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case actions.SnapshotSavedMsg:
		m.saving = false
		m.err = nil
		m.revision = msg.Revision
		m.log.Info("Snapshot saved", zap.String("revision", msg.Revision), zap.Int("galleries", msg.Pages), zap.Duration("took", msg.Duration))
		if msg.Quit {
			return m, tea.Quit
		}
		m.status = fmt.Sprintf("Saved %d gallery positions", msg.Pages)
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 3*time.Second)
	case actions.SnapshotSaveErrorMsg:
		m.saving = false
		m.status = ""
		m.err = msg.Err
		m.log.Error("Snapshot save failed", zap.Error(msg.Err))
		if msg.Quit {
			m.exitErr = msg.Err
			return m, tea.Quit
		}
		return m, nil
	case actions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "ctrl+c", "q":
		return m.save(true)
	}

	if m.showHelp {
		if key == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch key {
	case "w":
		return m.save(false)
	case "up", "k":
		m.cursor--
		return m.relayout()
	case "down", "j":
		m.cursor++
		return m.relayout()
	case "pgup", "ctrl+b":
		m.cursor -= m.pageStep()
		m.top -= m.pageStep()
		return m.relayout()
	case "pgdown", "ctrl+f":
		step := m.pageStep()
		m.cursor += step
		m.top += step
		return m.relayout()
	case "g":
		m.cursor = 0
		m.top = 0
		return m.relayout()
	case "G":
		m.cursor = len(m.heights) - 1
		return m.relayout()
	case "left", "h":
		if p, ok := m.currentPager(); ok {
			p.Swipe(-1)
		}
		return m, nil
	case "right", "l":
		if p, ok := m.currentPager(); ok {
			p.Swipe(1)
		}
		return m, nil
	case ",":
		if p, ok := m.currentPager(); ok {
			p.Drag(-dragStep)
		}
		return m, nil
	case ".":
		if p, ok := m.currentPager(); ok {
			p.Drag(dragStep)
		}
		return m, nil
	case "enter":
		if p, ok := m.currentPager(); ok {
			p.Settle()
		}
		return m, nil
	}

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		if p, ok := m.currentPager(); ok {
			p.SetCurrentPage(int(key[0]-'0'), true)
		}
	}
	return m, nil
}

func (m Model) save(quit bool) (tea.Model, tea.Cmd) {
	if m.saver == nil {
		if quit {
			return m, tea.Quit
		}
		m.status = "Snapshots are disabled"
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 3*time.Second)
	}
	if m.saving && !quit {
		return m, nil
	}
	m.saving = true
	return m, actions.SaveSnapshotCmd(m.saver, m.store.Snapshot(), quit)
}

func (m Model) relayout() (tea.Model, tea.Cmd) {
	if err := m.layout(); err != nil {
		m.log.Error("Layout failed", zap.Error(err))
		m.err = err
		m.exitErr = err
		return m, tea.Quit
	}
	return m, nil
}

// layout keeps the cursor on screen and hands the visible window to the
// recycler.
func (m *Model) layout() error {
	budget := m.bodyHeight()
	m.cursor = state.ClampCursor(m.cursor, len(m.heights))
	m.top = state.ClampCursor(m.top, len(m.heights))
	m.top = state.ScrollTop(m.heights, m.top, m.cursor, budget)
	start, end := state.VisibleRange(m.heights, m.top, budget)
	return m.rec.Layout(start, end)
}

func (m Model) bodyHeight() int {
	return state.BodyHeight(m.height, false)
}

func (m Model) pageStep() int {
	return state.PageStep(m.heights, m.top, m.bodyHeight())
}

func (m Model) currentPager() (*gallery.Pager, bool) {
	cell, ok := m.rec.Active(m.cursor)
	if !ok || cell.Kind != items.KindGallery || cell.Unit == nil {
		return nil, false
	}
	return cell.Unit.Pager, true
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Pagerdeck"))
	b.WriteString("\n")
	b.WriteString(view.Toolbar(m.showHelp))
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(strings.Join(view.HelpLines(), "\n"))
		b.WriteString("\n")
	} else if len(m.heights) == 0 {
		b.WriteString("No items.\n")
	} else {
		start, end := m.rec.Window()
		for idx := start; idx < end; idx++ {
			b.WriteString(m.renderCell(idx))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderCell(idx int) string {
	cell, ok := m.rec.Active(idx)
	if !ok {
		return ""
	}
	active := idx == m.cursor
	switch cell.Kind {
	case items.KindGallery:
		params := view.GalleryCellParams{
			ID:     cell.GalleryID,
			Index:  idx,
			Active: active,
			Width:  m.contentWidth(),
		}
		if cell.Unit != nil {
			p := cell.Unit.Pager
			params.Current = p.Current()
			params.Pages = p.Pages()
			params.Animating = p.Animating()
			params.DragOffset = p.DragOffset()
			if v, ok := p.ViewAt(p.Current()); ok {
				params.PageText = v.Text()
			}
		}
		return view.RenderGalleryCell(params, m.theme)
	default:
		return view.RenderPlainCell(cell.Text, idx, active, m.contentWidth(), m.theme)
	}
}

func (m Model) messagePanel() string {
	warning := ""
	if m.err != nil {
		warning = m.err.Error()
	}
	return view.Message(m.saving, m.status, warning, m.theme)
}

func (m Model) footer() string {
	start, end := m.rec.Window()
	return view.Footer(m.cursor, len(m.heights), end-start, m.reg.Len(), m.revision, m.theme)
}
