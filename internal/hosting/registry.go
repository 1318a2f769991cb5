// Package hosting keeps the units that embed a gallery pager into outer list
// cells. A unit is created the first time its gallery id is attached, hidden
// on detach and shown again on the next attach, possibly in another cell.
package hosting

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/glabrego/pagerdeck/internal/gallery"
)

const DefaultCapacity = 64

var ErrInvalidCapacity = errors.New("registry capacity must be positive")

// Host is what the outer list needs from the registry.
type Host interface {
	Attach(id int, container *Frame) *Unit
	Detach(id int)
}

// Frame is the slot inside a gallery cell that embeds at most one unit.
type Frame struct {
	unit *Unit
}

func (f *Frame) Embed(u *Unit) {
	f.unit = u
}

func (f *Frame) Clear() {
	f.unit = nil
}

func (f *Frame) Embedded() *Unit {
	return f.unit
}

// Unit is the retained pager state for one gallery id.
type Unit struct {
	ID       int
	Pager    *gallery.Pager
	visible  bool
	frame    *Frame
	attaches int
}

func (u *Unit) Visible() bool {
	return u.visible
}

// Attaches counts how many times the unit was shown.
func (u *Unit) Attaches() int {
	return u.attaches
}

type Registry struct {
	log      *zap.Logger
	units    *lru.Cache[int, *Unit]
	parked   *lru.Cache[int, map[int]map[string]int]
	newPager func() *gallery.Pager
	created  int
	evicted  int
	closing  bool
}

// NewRegistry builds a registry holding at most capacity units. The least
// recently attached unit is dropped first; its pager views are lost but
// their saved numbers are parked and replayed if the id comes back.
func NewRegistry(capacity int, newPager func() *gallery.Pager, log *zap.Logger) (*Registry, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if newPager == nil {
		newPager = func() *gallery.Pager { return gallery.New(gallery.WithLogger(log)) }
	}
	r := &Registry{log: log, newPager: newPager}

	parked, err := lru.New[int, map[int]map[string]int](capacity * 4)
	if err != nil {
		return nil, fmt.Errorf("create parked state cache: %w", err)
	}
	r.parked = parked

	units, err := lru.NewWithEvict[int, *Unit](capacity, r.onEvict)
	if err != nil {
		return nil, fmt.Errorf("create unit cache: %w", err)
	}
	r.units = units
	return r, nil
}

func (r *Registry) onEvict(id int, u *Unit) {
	if r.closing {
		return
	}
	r.evicted++
	r.parked.Add(id, u.Pager.SaveState())
	if u.visible {
		r.log.Warn("Hosting unit evicted while visible", zap.Int("gallery", id))
		return
	}
	r.log.Debug("Hosting unit evicted", zap.Int("gallery", id))
}

func (r *Registry) Attach(id int, container *Frame) *Unit {
	u, ok := r.units.Get(id)
	if !ok {
		u = &Unit{ID: id, Pager: r.newPager()}
		if states, found := r.parked.Get(id); found {
			u.Pager.RestoreState(states)
			r.parked.Remove(id)
		}
		r.units.Add(id, u)
		r.created++
		r.log.Debug("Hosting unit created", zap.Int("gallery", id))
	}
	if u.frame != nil && u.frame != container && u.frame.Embedded() == u {
		r.log.Debug("Hosting unit moved between cells", zap.Int("gallery", id))
		u.frame.Clear()
	}
	container.Clear()
	container.Embed(u)
	u.frame = container
	u.visible = true
	u.attaches++
	return u
}

// Detach hides the unit for id. A missing unit is logged and ignored.
func (r *Registry) Detach(id int) {
	u, ok := r.units.Peek(id)
	if !ok {
		r.log.Warn("Detach without hosting unit", zap.Int("gallery", id))
		return
	}
	u.visible = false
	if u.frame != nil && u.frame.Embedded() == u {
		u.frame.Clear()
	}
	u.frame = nil
}

func (r *Registry) Peek(id int) (*Unit, bool) {
	return r.units.Peek(id)
}

func (r *Registry) Len() int {
	return r.units.Len()
}

// Created counts units built over the registry's lifetime.
func (r *Registry) Created() int {
	return r.created
}

func (r *Registry) Evicted() int {
	return r.evicted
}

// Teardown drops every unit without parking their state.
func (r *Registry) Teardown() {
	r.closing = true
	r.units.Purge()
	r.parked.Purge()
	r.closing = false
}
