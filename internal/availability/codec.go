package availability

import (
	"time"

	"meetgrid/internal/domain"
)

// SlotMap holds one respondent's marked kind per grid cell. The zero kind
// means the cell is unmarked.
type SlotMap struct {
	days  int
	slots int
	cells []domain.AvailabilityKind
}

// NewSlotMap returns an empty map sized for g.
func NewSlotMap(g *Grid) *SlotMap {
	return &SlotMap{
		days:  g.NumDays(),
		slots: g.NumSlots(),
		cells: make([]domain.AvailabilityKind, g.NumDays()*g.NumSlots()),
	}
}

func (m *SlotMap) index(day, slot int) (int, bool) {
	if day < 0 || day >= m.days || slot < 0 || slot >= m.slots {
		return 0, false
	}
	return day*m.slots + slot, true
}

// Get returns the kind at a cell; out-of-range cells are unmarked.
func (m *SlotMap) Get(day, slot int) domain.AvailabilityKind {
	i, ok := m.index(day, slot)
	if !ok {
		return ""
	}
	return m.cells[i]
}

// Set marks a cell with k; the zero kind clears it. Out-of-range cells are ignored.
func (m *SlotMap) Set(day, slot int, k domain.AvailabilityKind) bool {
	i, ok := m.index(day, slot)
	if !ok {
		return false
	}
	m.cells[i] = k
	return true
}

// Clone returns an independent copy.
func (m *SlotMap) Clone() *SlotMap {
	return &SlotMap{
		days:  m.days,
		slots: m.slots,
		cells: append([]domain.AvailabilityKind(nil), m.cells...),
	}
}

// Equal reports whether both maps have the same shape and cells.
func (m *SlotMap) Equal(o *SlotMap) bool {
	if m.days != o.days || m.slots != o.slots {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Count returns how many cells are marked with k.
func (m *SlotMap) Count(k domain.AvailabilityKind) int {
	n := 0
	for _, c := range m.cells {
		if c == k {
			n++
		}
	}
	return n
}

// IntervalsToSlotMap marks every interval on a fresh map. Intervals that cannot
// be placed (unknown grid day, end before start, unknown kind, or nothing left
// inside the day's window) are skipped and counted. Later intervals overwrite
// earlier ones on shared cells. Instants are floored to slot boundaries.
func (g *Grid) IntervalsToSlotMap(intervals []*domain.Interval) (*SlotMap, int) {
	m := NewSlotMap(g)
	skipped := 0
	for _, iv := range intervals {
		if !g.mark(m, iv) {
			skipped++
		}
	}
	return m, skipped
}

func (g *Grid) mark(m *SlotMap, iv *domain.Interval) bool {
	if iv == nil || !iv.Kind.Valid() {
		return false
	}
	day := g.DayIndex(GridDayOf(iv.Start, g.Location, g.Window))
	if day < 0 {
		return false
	}
	if iv.IsFullDay() {
		for i := range g.Slots {
			m.Set(day, i, iv.Kind)
		}
		return true
	}
	if iv.End.Before(iv.Start) {
		return false
	}

	ws, we := g.span(day, 0, g.NumSlots())
	start, end := iv.Start, iv.End
	if start.Before(ws) {
		start = ws
	}
	if end.After(we) {
		end = we
	}
	if !end.After(start) {
		return false
	}
	from := g.SlotIndex(SlotOf(start.In(g.Location)))
	to := g.NumSlots()
	if end.Before(we) {
		to = g.SlotIndex(SlotOf(end.In(g.Location)))
	}
	if from >= 0 && to <= from {
		// Repeated wall-clock hour at a DST fall-back: count real elapsed slots.
		step := SlotMinutes * time.Minute
		to = min(from+int((end.Sub(start)+step-1)/step), g.NumSlots())
	}
	if from < 0 || to <= from {
		return false
	}
	for i := from; i < to; i++ {
		m.Set(day, i, iv.Kind)
	}
	return true
}

// EditorBlock is a maximal run of cells of one kind within a grid day.
type EditorBlock struct {
	Day      string
	DayIndex int
	// StartSlot and EndSlot are row indexes; EndSlot is exclusive.
	StartSlot int
	EndSlot   int
	Kind      domain.AvailabilityKind
	Start     time.Time
	End       time.Time
}

// EditorBlocks scans each day, per kind, for maximal runs of equal cells.
// Blocks are ordered by day, then kind, then start row; times are UTC.
func (g *Grid) EditorBlocks(m *SlotMap) []EditorBlock {
	var blocks []EditorBlock
	n := g.NumSlots()
	for day := range g.Days {
		for _, kind := range domain.Kinds {
			from := -1
			for i := 0; i <= n; i++ {
				if i < n && m.Get(day, i) == kind {
					if from < 0 {
						from = i
					}
					continue
				}
				if from >= 0 {
					start, end := g.span(day, from, i)
					blocks = append(blocks, EditorBlock{
						Day:       g.Days[day],
						DayIndex:  day,
						StartSlot: from,
						EndSlot:   i,
						Kind:      kind,
						Start:     start.UTC(),
						End:       end.UTC(),
					})
					from = -1
				}
			}
		}
	}
	return blocks
}

// SlotMapToIntervals collapses m into the minimal interval set covering the
// same cells. A fully marked day comes back as one window-long interval.
func (g *Grid) SlotMapToIntervals(m *SlotMap) []*domain.Interval {
	blocks := g.EditorBlocks(m)
	out := make([]*domain.Interval, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, &domain.Interval{Start: b.Start, End: b.End, Kind: b.Kind})
	}
	return out
}

// Normalize runs intervals through the grid and back, merging adjacent runs
// of the same kind and dropping what cannot be placed.
func (g *Grid) Normalize(intervals []*domain.Interval) ([]*domain.Interval, int) {
	m, skipped := g.IntervalsToSlotMap(intervals)
	return g.SlotMapToIntervals(m), skipped
}
