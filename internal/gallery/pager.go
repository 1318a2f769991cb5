// Package gallery implements the paged sub-view embedded in gallery cells.
//
// A Pager shows one NumberView per element of a number sequence. Views are
// built lazily around the current page and kept until the data shrinks
// below their index. The registered PageChangeFunc is called once per
// settled page change, synchronously, on the caller's goroutine.
package gallery

import (
	"math"

	"go.uber.org/zap"
)

const DefaultOffscreenLimit = 1

type PageChangeFunc func(page int)

// ViewFactory builds the sub-view for one page.
type ViewFactory func(number int) *NumberView

type Option func(*Pager)

func WithLogger(log *zap.Logger) Option {
	return func(p *Pager) {
		if log != nil {
			p.log = log
		}
	}
}

// WithOffscreenLimit sets how many pages on each side of the current one are
// materialized eagerly.
func WithOffscreenLimit(limit int) Option {
	return func(p *Pager) {
		if limit >= 0 {
			p.offscreen = limit
		}
	}
}

type Pager struct {
	log         *zap.Logger
	numbers     []int
	initialized bool
	current     int
	pending     int
	animating   bool
	dragOffset  float64
	dragging    bool
	offscreen   int
	factory     ViewFactory
	views       map[int]*NumberView
	saved       map[int]map[string]int
	listener    PageChangeFunc
	builds      int
}

func New(opts ...Option) *Pager {
	p := &Pager{
		log:       zap.NewNop(),
		pending:   -1,
		offscreen: DefaultOffscreenLimit,
		views:     make(map[int]*NumberView),
		saved:     make(map[int]map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Show sets the pager data. The first call initializes the pager; later calls
// replace the data and refresh the views that are still in range.
func (p *Pager) Show(numbers []int, factory ViewFactory) {
	if factory == nil {
		factory = NewNumberView
	}
	p.factory = factory
	p.numbers = append([]int(nil), numbers...)

	if !p.initialized {
		p.initialized = true
		p.log.Debug("Pager initialized", zap.Int("pages", len(p.numbers)))
	} else {
		p.refresh()
	}

	target := p.current
	if p.pending >= 0 {
		target = p.pending
		p.pending = -1
	}
	p.selectPage(target, true)
}

func (p *Pager) refresh() {
	for idx, v := range p.views {
		if idx >= len(p.numbers) {
			delete(p.views, idx)
			continue
		}
		v.Show(p.numbers[idx])
	}
	for idx := range p.saved {
		if idx >= len(p.numbers) {
			delete(p.saved, idx)
		}
	}
	p.dragging = false
	p.dragOffset = 0
}

// SetCurrentPage jumps to index. Before the first Show the request is kept
// and replayed by Show. With no pages it is ignored. The listener is told
// about the new page if it differs from the current one.
func (p *Pager) SetCurrentPage(index int, animate bool) {
	if !p.initialized {
		if index >= 0 {
			p.pending = index
		}
		return
	}
	if len(p.numbers) == 0 {
		return
	}
	p.animating = animate && clamp(index, len(p.numbers)) != p.current
	p.selectPage(index, true)
}

// Swipe moves by delta pages as a completed user gesture and reports whether
// the page changed.
func (p *Pager) Swipe(delta int) bool {
	if !p.initialized || len(p.numbers) == 0 {
		return false
	}
	p.animating = false
	return p.selectPage(p.current+delta, true)
}

// Drag moves the in-flight offset by a fraction of a page. Nothing is
// reported until Settle.
func (p *Pager) Drag(offset float64) {
	if !p.initialized || len(p.numbers) == 0 {
		return
	}
	p.dragging = true
	p.dragOffset += offset
	lo := -float64(p.current)
	hi := float64(len(p.numbers) - 1 - p.current)
	p.dragOffset = math.Max(lo, math.Min(hi, p.dragOffset))
}

// Settle ends a drag on the nearest page.
func (p *Pager) Settle() bool {
	if !p.dragging {
		return false
	}
	target := p.current + int(math.Round(p.dragOffset))
	p.dragging = false
	p.dragOffset = 0
	return p.selectPage(target, true)
}

func (p *Pager) selectPage(index int, notify bool) bool {
	if len(p.numbers) == 0 {
		p.current = 0
		return false
	}
	index = clamp(index, len(p.numbers))
	changed := index != p.current
	p.current = index
	p.materializeAround(index)
	if changed && notify && p.listener != nil {
		p.listener(index)
	}
	return changed
}

func (p *Pager) materializeAround(index int) {
	for i := index - p.offscreen; i <= index+p.offscreen; i++ {
		if i < 0 || i >= len(p.numbers) {
			continue
		}
		if _, ok := p.views[i]; ok {
			continue
		}
		v := p.factory(p.numbers[i])
		if state, ok := p.saved[i]; ok {
			v.RestoreState(state)
			delete(p.saved, i)
		}
		p.views[i] = v
		p.builds++
	}
}

func (p *Pager) SetListener(fn PageChangeFunc) {
	p.listener = fn
}

func (p *Pager) HasListener() bool {
	return p.listener != nil
}

func (p *Pager) Initialized() bool {
	return p.initialized
}

func (p *Pager) Pages() int {
	return len(p.numbers)
}

func (p *Pager) Current() int {
	return p.current
}

// Animating reports whether the last jump asked for an animated transition.
func (p *Pager) Animating() bool {
	return p.animating
}

func (p *Pager) DragOffset() float64 {
	return p.dragOffset
}

func (p *Pager) ViewAt(index int) (*NumberView, bool) {
	v, ok := p.views[index]
	return v, ok
}

func (p *Pager) Materialized() int {
	return len(p.views)
}

// Builds counts factory calls over the pager's lifetime.
func (p *Pager) Builds() int {
	return p.builds
}

// SaveState collects each materialized view's own state by page index.
func (p *Pager) SaveState() map[int]map[string]int {
	out := make(map[int]map[string]int, len(p.views)+len(p.saved))
	for idx, state := range p.saved {
		out[idx] = state
	}
	for idx, v := range p.views {
		out[idx] = v.SaveState()
	}
	return out
}

// RestoreState applies saved view states. Views that are not built yet get
// their state when they are materialized.
func (p *Pager) RestoreState(states map[int]map[string]int) {
	for idx, state := range states {
		if v, ok := p.views[idx]; ok {
			v.RestoreState(state)
			continue
		}
		p.saved[idx] = state
	}
}

func clamp(index, size int) int {
	if index >= size {
		return size - 1
	}
	if index < 0 {
		return 0
	}
	return index
}
