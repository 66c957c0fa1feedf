package availability

import (
	"testing"
	"time"

	"meetgrid/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, loc *time.Location, w Window, days ...string) *Grid {
	t.Helper()
	g, err := GridFor(loc, w, days)
	require.NoError(t, err)
	return g
}

func iv(t *testing.T, responseID, start, end string, kind domain.AvailabilityKind) *domain.Interval {
	t.Helper()
	return &domain.Interval{ResponseID: responseID, Start: mustTime(t, start), End: mustTime(t, end), Kind: kind}
}

// marked lists the marked slot indexes of one day.
func marked(m *SlotMap, day int, kind domain.AvailabilityKind) []int {
	var out []int
	for i := 0; i < m.slots; i++ {
		if m.Get(day, i) == kind {
			out = append(out, i)
		}
	}
	return out
}

func span(from, to int) []int {
	var out []int
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func TestNewGrid(t *testing.T) {
	dates := []domain.DateRange{
		{Start: mustTime(t, "2025-03-11T13:00:00Z"), End: mustTime(t, "2025-03-11T21:00:00Z")},
		{Start: mustTime(t, "2025-03-10T13:00:00Z"), End: mustTime(t, "2025-03-10T21:00:00Z")},
	}

	g, err := NewGrid(dates, "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, Window{9, 17}, g.Window)
	assert.Equal(t, []string{"2025-03-11", "2025-03-10"}, g.Days)
	assert.Equal(t, 32, g.NumSlots())

	view := g.Describe()
	assert.Equal(t, "America/New_York", view.Timezone)
	assert.Equal(t, 9, view.MinTime)
	assert.Equal(t, 17, view.MaxTime)
	assert.Equal(t, "09:00", view.Slots[0])
	assert.Equal(t, "16:45", view.Slots[31])

	_, err = NewGrid(dates, "Nowhere/Special")
	require.ErrorIs(t, err, domain.ErrInvalidTimezone)

	_, err = NewGrid(nil, "UTC")
	require.ErrorIs(t, err, domain.ErrNoDates)
}

func TestGridFor_RejectsBadInput(t *testing.T) {
	_, err := GridFor(time.UTC, Window{9, 17}, []string{"March 10"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = GridFor(time.UTC, Window{24, 3}, []string{"2025-03-10"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIntervalsToSlotMap(t *testing.T) {
	g := mustGrid(t, time.UTC, Window{9, 17}, "2025-03-10", "2025-03-11")

	t.Run("marks the covered slots", func(t *testing.T) {
		m, skipped := g.IntervalsToSlotMap([]*domain.Interval{
			iv(t, "r1", "2025-03-10T09:00:00Z", "2025-03-10T10:00:00Z", domain.KindAvailable),
			iv(t, "r1", "2025-03-11T16:00:00Z", "2025-03-11T17:00:00Z", domain.KindIfNeeded),
		})
		assert.Zero(t, skipped)
		assert.Equal(t, span(0, 4), marked(m, 0, domain.KindAvailable))
		assert.Equal(t, span(28, 32), marked(m, 1, domain.KindIfNeeded))
		assert.Equal(t, 4, m.Count(domain.KindAvailable))
		assert.Equal(t, 4, m.Count(domain.KindIfNeeded))
	})

	t.Run("full-day marker marks the whole window", func(t *testing.T) {
		m, skipped := g.IntervalsToSlotMap([]*domain.Interval{
			iv(t, "r1", "2025-03-11T12:00:00Z", "2025-03-11T12:00:00Z", domain.KindAvailable),
		})
		assert.Zero(t, skipped)
		assert.Empty(t, marked(m, 0, domain.KindAvailable))
		assert.Equal(t, span(0, 32), marked(m, 1, domain.KindAvailable))
	})

	t.Run("later intervals overwrite earlier ones", func(t *testing.T) {
		m, _ := g.IntervalsToSlotMap([]*domain.Interval{
			iv(t, "r1", "2025-03-10T09:00:00Z", "2025-03-10T11:00:00Z", domain.KindAvailable),
			iv(t, "r1", "2025-03-10T10:00:00Z", "2025-03-10T12:00:00Z", domain.KindIfNeeded),
		})
		assert.Equal(t, span(0, 4), marked(m, 0, domain.KindAvailable))
		assert.Equal(t, span(4, 12), marked(m, 0, domain.KindIfNeeded))
	})

	t.Run("clips to the window", func(t *testing.T) {
		m, skipped := g.IntervalsToSlotMap([]*domain.Interval{
			iv(t, "r1", "2025-03-10T07:00:00Z", "2025-03-10T10:00:00Z", domain.KindAvailable),
			iv(t, "r1", "2025-03-11T16:30:00Z", "2025-03-11T20:00:00Z", domain.KindAvailable),
		})
		assert.Zero(t, skipped)
		assert.Equal(t, span(0, 4), marked(m, 0, domain.KindAvailable))
		assert.Equal(t, span(30, 32), marked(m, 1, domain.KindAvailable))
	})

	t.Run("misaligned instants snap to the earlier boundary", func(t *testing.T) {
		m, skipped := g.IntervalsToSlotMap([]*domain.Interval{
			iv(t, "r1", "2025-03-10T09:07:00Z", "2025-03-10T09:52:00Z", domain.KindAvailable),
		})
		assert.Zero(t, skipped)
		assert.Equal(t, []int{0, 1, 2}, marked(m, 0, domain.KindAvailable))

		again, _ := g.IntervalsToSlotMap([]*domain.Interval{
			iv(t, "r1", "2025-03-10T09:07:00Z", "2025-03-10T09:52:00Z", domain.KindAvailable),
		})
		assert.True(t, m.Equal(again))
	})

	t.Run("skips what cannot be placed", func(t *testing.T) {
		m, skipped := g.IntervalsToSlotMap([]*domain.Interval{
			iv(t, "r1", "2025-03-20T09:00:00Z", "2025-03-20T10:00:00Z", domain.KindAvailable), // unknown day
			iv(t, "r1", "2025-03-10T11:00:00Z", "2025-03-10T10:00:00Z", domain.KindAvailable), // end before start
			iv(t, "r1", "2025-03-10T09:00:00Z", "2025-03-10T10:00:00Z", "maybe"),              // unknown kind
			iv(t, "r1", "2025-03-10T18:00:00Z", "2025-03-10T19:00:00Z", domain.KindAvailable), // after the window
			iv(t, "r1", "2025-03-10T09:02:00Z", "2025-03-10T09:10:00Z", domain.KindAvailable), // empty once snapped
			nil,
		})
		assert.Equal(t, 6, skipped)
		assert.Zero(t, m.Count(domain.KindAvailable))
	})
}

func TestSlotMapToIntervals_RoundTrip(t *testing.T) {
	g := mustGrid(t, time.UTC, Window{9, 17}, "2025-03-10", "2025-03-11")
	in := []*domain.Interval{
		iv(t, "r1", "2025-03-10T09:00:00Z", "2025-03-10T10:00:00Z", domain.KindAvailable),
		iv(t, "r1", "2025-03-10T10:00:00Z", "2025-03-10T11:30:00Z", domain.KindAvailable),
		iv(t, "r1", "2025-03-10T13:00:00Z", "2025-03-10T14:00:00Z", domain.KindIfNeeded),
		iv(t, "r1", "2025-03-11T16:00:00Z", "2025-03-11T17:00:00Z", domain.KindAvailable),
	}

	m, skipped := g.IntervalsToSlotMap(in)
	require.Zero(t, skipped)
	out := g.SlotMapToIntervals(m)

	want := []*domain.Interval{
		{Start: mustTime(t, "2025-03-10T09:00:00Z"), End: mustTime(t, "2025-03-10T11:30:00Z"), Kind: domain.KindAvailable},
		{Start: mustTime(t, "2025-03-10T13:00:00Z"), End: mustTime(t, "2025-03-10T14:00:00Z"), Kind: domain.KindIfNeeded},
		{Start: mustTime(t, "2025-03-11T16:00:00Z"), End: mustTime(t, "2025-03-11T17:00:00Z"), Kind: domain.KindAvailable},
	}
	assert.Equal(t, want, out)

	back, skipped := g.IntervalsToSlotMap(out)
	require.Zero(t, skipped)
	assert.True(t, m.Equal(back), "re-encoding the normalized set must cover the same cells")
}

func TestSlotMapToIntervals_FullDayBecomesWindow(t *testing.T) {
	g := mustGrid(t, time.UTC, Window{9, 17}, "2025-03-10")
	m, _ := g.IntervalsToSlotMap([]*domain.Interval{
		iv(t, "r1", "2025-03-10T09:00:00Z", "2025-03-10T09:00:00Z", domain.KindIfNeeded),
	})

	out := g.SlotMapToIntervals(m)
	require.Len(t, out, 1)
	assert.Equal(t, mustTime(t, "2025-03-10T09:00:00Z"), out[0].Start)
	assert.Equal(t, mustTime(t, "2025-03-10T17:00:00Z"), out[0].End)
	assert.Equal(t, domain.KindIfNeeded, out[0].Kind)
}

func TestCodec_OvernightWindow(t *testing.T) {
	g := mustGrid(t, time.UTC, Window{22, 6}, "2025-03-10", "2025-03-11")
	require.Equal(t, 32, g.NumSlots())

	m, skipped := g.IntervalsToSlotMap([]*domain.Interval{
		iv(t, "r1", "2025-03-10T23:00:00Z", "2025-03-11T01:00:00Z", domain.KindAvailable),
		iv(t, "r1", "2025-03-12T04:00:00Z", "2025-03-12T06:00:00Z", domain.KindIfNeeded),
	})
	require.Zero(t, skipped)
	assert.Equal(t, span(4, 12), marked(m, 0, domain.KindAvailable))
	assert.Empty(t, marked(m, 1, domain.KindAvailable))
	assert.Equal(t, span(24, 32), marked(m, 1, domain.KindIfNeeded))

	blocks := g.EditorBlocks(m)
	require.Len(t, blocks, 2)
	assert.Equal(t, EditorBlock{
		Day:       "2025-03-10",
		DayIndex:  0,
		StartSlot: 4,
		EndSlot:   12,
		Kind:      domain.KindAvailable,
		Start:     mustTime(t, "2025-03-10T23:00:00Z"),
		End:       mustTime(t, "2025-03-11T01:00:00Z"),
	}, blocks[0])
	assert.Equal(t, "2025-03-11", blocks[1].Day)
	assert.Equal(t, mustTime(t, "2025-03-12T04:00:00Z"), blocks[1].Start)
	assert.Equal(t, mustTime(t, "2025-03-12T06:00:00Z"), blocks[1].End, "a run to the window end closes on the next calendar day")
}

func TestCodec_ZonedGrid(t *testing.T) {
	ny := mustLocation(t, "America/New_York")
	dates := []domain.DateRange{
		{Start: mustTime(t, "2025-03-10T13:00:00Z"), End: mustTime(t, "2025-03-10T21:00:00Z")},
	}
	g, err := NewGrid(dates, ny.String())
	require.NoError(t, err)

	in := []*domain.Interval{
		iv(t, "r1", "2025-03-10T14:00:00Z", "2025-03-10T15:00:00Z", domain.KindAvailable),
	}
	m, skipped := g.IntervalsToSlotMap(in)
	require.Zero(t, skipped)
	assert.Equal(t, span(4, 8), marked(m, 0, domain.KindAvailable))

	out := g.SlotMapToIntervals(m)
	require.Len(t, out, 1)
	assert.Equal(t, in[0].Start, out[0].Start)
	assert.Equal(t, in[0].End, out[0].End)
}

func TestIntervalsToSlotMap_FallBackHour(t *testing.T) {
	ny := mustLocation(t, "America/New_York")
	g := mustGrid(t, ny, Window{0, 6}, "2025-11-02")

	// 01:30 EDT to 01:30 EST is one real hour with equal wall clocks.
	in := []*domain.Interval{
		iv(t, "r1", "2025-11-02T05:30:00Z", "2025-11-02T06:30:00Z", domain.KindAvailable),
	}
	m, skipped := g.IntervalsToSlotMap(in)
	require.Zero(t, skipped)
	assert.Equal(t, span(6, 10), marked(m, 0, domain.KindAvailable))

	in = []*domain.Interval{
		iv(t, "r1", "2025-11-02T05:45:00Z", "2025-11-02T06:00:00Z", domain.KindIfNeeded),
	}
	m, skipped = g.IntervalsToSlotMap(in)
	require.Zero(t, skipped, "01:45 EDT to 01:00 EST ends earlier on the wall clock")
	assert.Equal(t, span(7, 8), marked(m, 0, domain.KindIfNeeded))
}

func TestIntervalsToSlotMap_Idempotent(t *testing.T) {
	g := mustGrid(t, time.UTC, Window{9, 17}, "2025-03-10")
	in := []*domain.Interval{
		iv(t, "r1", "2025-03-10T09:00:00Z", "2025-03-10T12:00:00Z", domain.KindAvailable),
		iv(t, "r1", "2025-03-10T11:00:00Z", "2025-03-10T13:00:00Z", domain.KindIfNeeded),
	}
	first, _ := g.IntervalsToSlotMap(in)
	second, _ := g.IntervalsToSlotMap(in)
	assert.True(t, first.Equal(second))
	assert.Equal(t, first, second)
}

func TestNormalize(t *testing.T) {
	g := mustGrid(t, time.UTC, Window{9, 17}, "2025-03-10")
	out, skipped := g.Normalize([]*domain.Interval{
		iv(t, "r1", "2025-03-10T09:00:00Z", "2025-03-10T09:30:00Z", domain.KindAvailable),
		iv(t, "r1", "2025-03-10T09:30:00Z", "2025-03-10T10:00:00Z", domain.KindAvailable),
		iv(t, "r1", "2025-03-12T09:30:00Z", "2025-03-12T10:00:00Z", domain.KindAvailable),
	})
	assert.Equal(t, 1, skipped)
	require.Len(t, out, 1)
	assert.Equal(t, mustTime(t, "2025-03-10T09:00:00Z"), out[0].Start)
	assert.Equal(t, mustTime(t, "2025-03-10T10:00:00Z"), out[0].End)
}

func TestSlotMap_Bounds(t *testing.T) {
	g := mustGrid(t, time.UTC, Window{9, 10}, "2025-03-10")
	m := NewSlotMap(g)
	assert.False(t, m.Set(1, 0, domain.KindAvailable))
	assert.False(t, m.Set(0, 4, domain.KindAvailable))
	assert.False(t, m.Set(-1, 0, domain.KindAvailable))
	assert.Equal(t, domain.AvailabilityKind(""), m.Get(0, -1))
	assert.True(t, m.Set(0, 3, domain.KindAvailable))
	assert.Equal(t, domain.KindAvailable, m.Get(0, 3))

	c := m.Clone()
	c.Set(0, 3, "")
	assert.Equal(t, domain.KindAvailable, m.Get(0, 3), "clones are independent")
}

func TestGrid_SlotLabel(t *testing.T) {
	g := mustGrid(t, time.UTC, Window{22, 6}, "2025-03-10")
	assert.Equal(t, "22:00", g.SlotLabel(0))
	assert.Equal(t, "00:00", g.SlotLabel(8))
	assert.Equal(t, "06:00", g.SlotLabel(g.NumSlots()))

	full := mustGrid(t, time.UTC, Window{0, 24}, "2025-03-10")
	assert.Equal(t, "24:00", full.SlotLabel(full.NumSlots()))
}
