package hosting

import (
	"go.uber.org/zap"

	"github.com/glabrego/pagerdeck/internal/gallery"
	"github.com/glabrego/pagerdeck/internal/positions"
)

// Adapter connects a gallery cell's attach/detach to its hosting unit and
// keeps the Position Store in sync with the unit's pager.
type Adapter struct {
	host    Host
	store   *positions.Store
	factory gallery.ViewFactory
	log     *zap.Logger
}

func NewAdapter(host Host, store *positions.Store, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{
		host:    host,
		store:   store,
		factory: gallery.NewNumberView,
		log:     log,
	}
}

func (a *Adapter) Attach(frame *Frame, id int, numbers []int) *Unit {
	u := a.host.Attach(id, frame)
	u.Pager.SetListener(nil)
	u.Pager.Show(numbers, a.factory)
	u.Pager.SetCurrentPage(a.store.Get(id), false)
	u.Pager.SetListener(func(page int) {
		a.store.Set(id, page)
	})
	return u
}

// Detach stops position write-back and hides the unit. If the frame no longer
// embeds the unit for id the call only clears the frame.
func (a *Adapter) Detach(frame *Frame, id int) {
	u := frame.Embedded()
	if u == nil || u.ID != id {
		a.log.Warn("Detach on frame without matching hosting unit", zap.Int("gallery", id))
		frame.Clear()
		return
	}
	u.Pager.SetListener(nil)
	a.host.Detach(id)
	frame.Clear()
}
