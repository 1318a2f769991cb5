// Package cells maps list indices to pooled cells. The Controller binds
// entries into cells and drives gallery attach/detach; the Recycler decides
// which cells are live for a visible window of indices.
package cells

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/glabrego/pagerdeck/internal/hosting"
	"github.com/glabrego/pagerdeck/internal/items"
)

const (
	spanCount = 2
	fullSpan  = 2
)

var (
	ErrUnknownKind  = errors.New("unknown cell kind")
	ErrKindMismatch = errors.New("cell kind does not match entry kind")
)

// GalleryBinder attaches a gallery's pager to a cell frame and detaches it.
type GalleryBinder interface {
	Attach(frame *hosting.Frame, id int, numbers []int) *hosting.Unit
	Detach(frame *hosting.Frame, id int)
}

// Cell is a reusable shell. Kind is fixed at creation; the other fields are
// replaced on every bind.
type Cell struct {
	Kind      items.Kind
	Serial    int
	Index     int
	Text      string
	GalleryID int
	Numbers   []int
	Frame     *hosting.Frame
	Unit      *hosting.Unit
	attached  bool
}

func (c *Cell) Attached() bool {
	return c.attached
}

type Controller struct {
	list      *items.List
	galleries GalleryBinder
	log       *zap.Logger
	created   int
}

func NewController(list *items.List, galleries GalleryBinder, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{list: list, galleries: galleries, log: log}
}

func (c *Controller) ItemCount() int {
	return c.list.Len()
}

func (c *Controller) ViewTypeFor(index int) items.Kind {
	return c.list.KindOf(index)
}

func (c *Controller) SpanCount() int {
	return spanCount
}

// SpanSize is the full row for every kind.
func (c *Controller) SpanSize(int) int {
	return fullSpan
}

func (c *Controller) CreateCell(kind items.Kind) (*Cell, error) {
	cell := &Cell{Kind: kind, Index: -1}
	switch kind {
	case items.KindPlain:
	case items.KindGallery:
		cell.Frame = &hosting.Frame{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	c.created++
	cell.Serial = c.created
	c.log.Debug("Cell created", zap.Stringer("kind", kind), zap.Int("serial", cell.Serial))
	return cell, nil
}

// Created counts cells constructed so far.
func (c *Controller) Created() int {
	return c.created
}

func (c *Controller) BindCell(cell *Cell, index int) error {
	entry := c.list.At(index)
	if entry.Kind != cell.Kind {
		return fmt.Errorf("%w: cell %s, entry %s at %d", ErrKindMismatch, cell.Kind, entry.Kind, index)
	}
	cell.Index = index
	switch cell.Kind {
	case items.KindPlain:
		cell.Text = entry.Text
	case items.KindGallery:
		cell.GalleryID = entry.ID
		cell.Numbers = entry.Numbers()
	}
	return nil
}

func (c *Controller) OnAttach(cell *Cell) {
	cell.attached = true
	if cell.Kind != items.KindGallery {
		return
	}
	cell.Unit = c.galleries.Attach(cell.Frame, cell.GalleryID, cell.Numbers)
}

func (c *Controller) OnDetach(cell *Cell) {
	cell.attached = false
	if cell.Kind != items.KindGallery {
		return
	}
	c.galleries.Detach(cell.Frame, cell.GalleryID)
	cell.Unit = nil
}
