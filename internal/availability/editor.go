package availability

import "meetgrid/internal/domain"

// Editor is the drag-to-select state machine over one respondent's slot map.
// The embedding UI forwards pointer events; PointerUp is the only commit point.
type Editor struct {
	grid     *Grid
	kind     domain.AvailabilityKind
	onChange func([]*domain.Interval)

	cells  *SlotMap
	blocks []EditorBlock
	drag   *dragState
}

type dragState struct {
	origin   domain.Cell
	current  domain.Cell
	kind     domain.AvailabilityKind
	deselect bool
	// original is the slot map as it was at pointer-down.
	original *SlotMap
}

// NewEditor builds an editor for intervals on g. kind is the kind applied by
// plain drags; onChange, if set, receives the complete interval set on commit.
func NewEditor(g *Grid, intervals []*domain.Interval, kind domain.AvailabilityKind, onChange func([]*domain.Interval)) *Editor {
	if !kind.Valid() {
		kind = domain.KindAvailable
	}
	e := &Editor{grid: g, kind: kind, onChange: onChange}
	e.Reset(intervals)
	return e
}

// Reset rebuilds the slot map from intervals and discards any drag in
// progress. It returns the number of intervals that could not be placed.
func (e *Editor) Reset(intervals []*domain.Interval) int {
	var skipped int
	e.cells, skipped = e.grid.IntervalsToSlotMap(intervals)
	e.drag = nil
	e.rebuild()
	return skipped
}

// SetSelectionKind changes the kind applied by subsequent drags.
func (e *Editor) SetSelectionKind(k domain.AvailabilityKind) {
	if k.Valid() {
		e.kind = k
	}
}

func (e *Editor) SelectionKind() domain.AvailabilityKind { return e.kind }

func (e *Editor) Dragging() bool { return e.drag != nil }

// Deselecting reports whether the current drag clears cells.
func (e *Editor) Deselecting() bool { return e.drag != nil && e.drag.deselect }

// Kind returns the current kind of a cell, including live drag preview.
func (e *Editor) Kind(c domain.Cell) domain.AvailabilityKind {
	return e.cells.Get(c.Day, c.Slot)
}

// Cells returns a copy of the current slot map.
func (e *Editor) Cells() *SlotMap {
	return e.cells.Clone()
}

// Blocks returns the editor blocks of the current slot map.
func (e *Editor) Blocks() []EditorBlock {
	return e.blocks
}

// Intervals returns the minimal interval set of the current slot map.
func (e *Editor) Intervals() []*domain.Interval {
	return e.grid.SlotMapToIntervals(e.cells)
}

// PointerDown starts a drag at c. The drag applies the selection kind, or its
// inverse when invert is set, and clears instead when c already holds that
// kind. Targets outside the grid and a second pointer-down are ignored.
func (e *Editor) PointerDown(c domain.Cell, invert bool) bool {
	if e.drag != nil || !e.grid.Contains(c) {
		return false
	}
	kind := e.kind
	if invert {
		kind = kind.Inverse()
	}
	e.drag = &dragState{
		origin:   c,
		current:  c,
		kind:     kind,
		deselect: e.cells.Get(c.Day, c.Slot) == kind,
		original: e.cells.Clone(),
	}
	e.apply()
	return true
}

// PointerMove extends the drag rectangle to c and refreshes the preview.
func (e *Editor) PointerMove(c domain.Cell) bool {
	if e.drag == nil || !e.grid.Contains(c) {
		return false
	}
	if c == e.drag.current {
		return false
	}
	e.drag.current = c
	e.apply()
	return true
}

// PointerUp commits the drag: it returns the complete interval set of the
// edited map and hands it to onChange. Without a drag in progress it does nothing.
func (e *Editor) PointerUp() ([]*domain.Interval, bool) {
	if e.drag == nil {
		return nil, false
	}
	e.drag = nil
	intervals := e.Intervals()
	if e.onChange != nil {
		e.onChange(intervals)
	}
	return intervals, true
}

// apply recomputes the preview from the pointer-down snapshot and the
// rectangle spanned by origin and current, in grid-index space.
func (e *Editor) apply() {
	d := e.drag
	next := d.original.Clone()
	minDay, maxDay := ordered(d.origin.Day, d.current.Day)
	minSlot, maxSlot := ordered(d.origin.Slot, d.current.Slot)
	minDay, maxDay = max(minDay, 0), min(maxDay, e.grid.NumDays()-1)
	minSlot, maxSlot = max(minSlot, 0), min(maxSlot, e.grid.NumSlots()-1)
	for day := minDay; day <= maxDay; day++ {
		for slot := minSlot; slot <= maxSlot; slot++ {
			if !d.deselect {
				next.Set(day, slot, d.kind)
				continue
			}
			if d.original.Get(day, slot) == d.kind {
				next.Set(day, slot, "")
			}
		}
	}
	e.cells = next
	e.rebuild()
}

func (e *Editor) rebuild() {
	e.blocks = e.grid.EditorBlocks(e.cells)
}

func ordered(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}
