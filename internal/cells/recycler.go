package cells

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/glabrego/pagerdeck/internal/items"
)

// Recycler keeps cells live for a window of indices and pools the rest by
// kind. A cell leaving the window is detached before it can be reused, and a
// reused cell is bound before it is attached.
type Recycler struct {
	ctrl   *Controller
	log    *zap.Logger
	pool   map[items.Kind][]*Cell
	active map[int]*Cell
	start  int
	end    int
}

func NewRecycler(ctrl *Controller) *Recycler {
	return &Recycler{
		ctrl:   ctrl,
		log:    ctrl.log,
		pool:   make(map[items.Kind][]*Cell),
		active: make(map[int]*Cell),
	}
}

// Layout makes [start,end) the live window.
func (r *Recycler) Layout(start, end int) error {
	count := r.ctrl.ItemCount()
	start = max(0, min(start, count))
	end = max(start, min(end, count))

	for _, idx := range slices.Sorted(maps.Keys(r.active)) {
		if idx >= start && idx < end {
			continue
		}
		cell := r.active[idx]
		r.ctrl.OnDetach(cell)
		delete(r.active, idx)
		r.pool[cell.Kind] = append(r.pool[cell.Kind], cell)
	}

	for idx := start; idx < end; idx++ {
		if _, ok := r.active[idx]; ok {
			continue
		}
		cell, err := r.obtain(r.ctrl.ViewTypeFor(idx))
		if err != nil {
			return fmt.Errorf("layout index %d: %w", idx, err)
		}
		if err := r.ctrl.BindCell(cell, idx); err != nil {
			return fmt.Errorf("layout index %d: %w", idx, err)
		}
		r.ctrl.OnAttach(cell)
		r.active[idx] = cell
	}

	r.start, r.end = start, end
	return nil
}

func (r *Recycler) obtain(kind items.Kind) (*Cell, error) {
	free := r.pool[kind]
	if n := len(free); n > 0 {
		cell := free[n-1]
		r.pool[kind] = free[:n-1]
		r.log.Debug("Cell reused", zap.Stringer("kind", kind), zap.Int("serial", cell.Serial))
		return cell, nil
	}
	return r.ctrl.CreateCell(kind)
}

func (r *Recycler) Active(index int) (*Cell, bool) {
	cell, ok := r.active[index]
	return cell, ok
}

func (r *Recycler) Window() (int, int) {
	return r.start, r.end
}

func (r *Recycler) Pooled(kind items.Kind) int {
	return len(r.pool[kind])
}

// Teardown detaches every live cell and empties the pool.
func (r *Recycler) Teardown() {
	for _, idx := range slices.Sorted(maps.Keys(r.active)) {
		r.ctrl.OnDetach(r.active[idx])
	}
	r.active = make(map[int]*Cell)
	r.pool = make(map[items.Kind][]*Cell)
	r.start, r.end = 0, 0
}
