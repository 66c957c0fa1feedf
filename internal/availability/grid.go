package availability

import (
	"fmt"
	"time"

	"meetgrid/internal/domain"
)

// Grid is the day × slot layout of one event in one timezone.
type Grid struct {
	Location *time.Location
	Window   Window
	Days     []string
	Slots    []Slot

	dayDates  []time.Time
	dayIndex  map[string]int
	slotIndex map[Slot]int
}

// NewGrid derives the grid of an event's date ranges as seen from timezone.
// It fails with domain.ErrInvalidTimezone or domain.ErrNoDates.
func NewGrid(dates []domain.DateRange, timezone string) (*Grid, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	w, err := DeriveWindow(dates, loc)
	if err != nil {
		return nil, err
	}
	return GridFor(loc, w, DistinctGridDays(dates, loc, w))
}

// GridFor builds a grid from an explicit window and day list.
func GridFor(loc *time.Location, w Window, days []string) (*Grid, error) {
	if w.Min < 0 || w.Min > 23 || w.Max < 1 || w.Max > 24 {
		return nil, fmt.Errorf("%w: window %d-%d", domain.ErrInvalidInput, w.Min, w.Max)
	}
	g := &Grid{
		Location:  loc,
		Window:    w,
		Days:      days,
		Slots:     GenerateSlots(w),
		dayDates:  make([]time.Time, len(days)),
		dayIndex:  make(map[string]int, len(days)),
		slotIndex: make(map[Slot]int),
	}
	for i, day := range days {
		d, err := time.Parse(DayLayout, day)
		if err != nil {
			return nil, fmt.Errorf("%w: grid day %q", domain.ErrInvalidInput, day)
		}
		g.dayDates[i] = d
		g.dayIndex[day] = i
	}
	for i, s := range g.Slots {
		g.slotIndex[s] = i
	}
	return g, nil
}

func (g *Grid) NumDays() int  { return len(g.Days) }
func (g *Grid) NumSlots() int { return len(g.Slots) }

// DayIndex returns the column of day, or -1.
func (g *Grid) DayIndex(day string) int {
	if i, ok := g.dayIndex[day]; ok {
		return i
	}
	return -1
}

// SlotIndex returns the row of s, or -1.
func (g *Grid) SlotIndex(s Slot) int {
	if i, ok := g.slotIndex[s]; ok {
		return i
	}
	return -1
}

// Contains reports whether c addresses a cell of the grid.
func (g *Grid) Contains(c domain.Cell) bool {
	return c.Day >= 0 && c.Day < len(g.Days) && c.Slot >= 0 && c.Slot < len(g.Slots)
}

// SlotLabel returns the "HH:mm" label of row boundary idx; idx == NumSlots
// labels the end of the last row.
func (g *Grid) SlotLabel(idx int) string {
	if idx < len(g.Slots) {
		return g.Slots[idx].String()
	}
	return NextSlot(g.Slots[len(g.Slots)-1]).String()
}

// boundary is the instant at which row idx of column day begins; idx ==
// NumSlots is the slot after the last row. No cross-midnight correction.
func (g *Grid) boundary(day, idx int) time.Time {
	var s Slot
	if idx < len(g.Slots) {
		s = g.Slots[idx]
	} else {
		s = NextSlot(g.Slots[len(g.Slots)-1])
	}
	return actualTime(g.Window, s, g.dayDates[day], g.Location)
}

// span returns the instants of rows [from, to) of a column. An end that is not
// after the start continues into the next calendar day.
func (g *Grid) span(day, from, to int) (time.Time, time.Time) {
	start := g.boundary(day, from)
	end := g.boundary(day, to)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// Describe returns the serializable description of the grid.
func (g *Grid) Describe() domain.GridView {
	return domain.GridView{
		Timezone: g.Location.String(),
		MinTime:  g.Window.Min,
		MaxTime:  g.Window.Max,
		Days:     append([]string(nil), g.Days...),
		Slots:    FormatSlots(g.Slots),
	}
}
