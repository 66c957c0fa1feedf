package availability

import (
	"slices"
	"time"

	"meetgrid/internal/domain"
)

// AggregateOptions selects which marks count toward overlap.
type AggregateOptions struct {
	// IncludeIfNeeded counts if_needed cells as well as available ones.
	IncludeIfNeeded bool
	// ResponseIDs restricts aggregation to these respondents; empty means all.
	ResponseIDs []string
	// BestOnly keeps only the blocks whose count equals MaxCount.
	BestOnly bool
}

// DisplayBlock is a maximal run of cells within a day that share the same
// participant set.
type DisplayBlock struct {
	Day      string
	DayIndex int
	// StartSlot and EndSlot are row indexes; EndSlot is exclusive.
	StartSlot   int
	EndSlot     int
	Start       time.Time
	End         time.Time
	Count       int
	ResponseIDs []string
}

// Aggregate is the overlap view of many respondents over a grid.
type Aggregate struct {
	Blocks   []DisplayBlock
	MaxCount int
	// Respondents lists the response IDs that contributed intervals, in order of
	// first appearance.
	Respondents []string
	Skipped     int
}

// Aggregate lays every respondent's intervals on its own slot map, counts the
// qualifying respondents per cell and merges equal neighbouring cells into
// display blocks. It is a pure function of its inputs.
func (g *Grid) Aggregate(intervals []*domain.Interval, opts AggregateOptions) Aggregate {
	var filter map[string]struct{}
	if len(opts.ResponseIDs) > 0 {
		filter = make(map[string]struct{}, len(opts.ResponseIDs))
		for _, id := range opts.ResponseIDs {
			filter[id] = struct{}{}
		}
	}

	var res Aggregate
	maps := make(map[string]*SlotMap)
	for _, iv := range intervals {
		if iv == nil {
			res.Skipped++
			continue
		}
		if filter != nil {
			if _, ok := filter[iv.ResponseID]; !ok {
				continue
			}
		}
		m, ok := maps[iv.ResponseID]
		if !ok {
			m = NewSlotMap(g)
			maps[iv.ResponseID] = m
			res.Respondents = append(res.Respondents, iv.ResponseID)
		}
		if !g.mark(m, iv) {
			res.Skipped++
		}
	}

	n := g.NumSlots()
	participants := make([][]int, g.NumDays()*n)
	for ri, id := range res.Respondents {
		for c, k := range maps[id].cells {
			if k == domain.KindAvailable || (opts.IncludeIfNeeded && k == domain.KindIfNeeded) {
				participants[c] = append(participants[c], ri)
			}
		}
	}
	for _, p := range participants {
		res.MaxCount = max(res.MaxCount, len(p))
	}

	for day := range g.Days {
		from := -1
		var prev []int
		flush := func(to int) {
			if from < 0 {
				return
			}
			start, end := g.span(day, from, to)
			ids := make([]string, len(prev))
			for i, ri := range prev {
				ids[i] = res.Respondents[ri]
			}
			b := DisplayBlock{
				Day:         g.Days[day],
				DayIndex:    day,
				StartSlot:   from,
				EndSlot:     to,
				Start:       start.UTC(),
				End:         end.UTC(),
				Count:       len(prev),
				ResponseIDs: ids,
			}
			if !opts.BestOnly || b.Count == res.MaxCount {
				res.Blocks = append(res.Blocks, b)
			}
			from = -1
		}
		for i := 0; i < n; i++ {
			p := participants[day*n+i]
			if len(p) == 0 || (from >= 0 && !slices.Equal(prev, p)) {
				flush(i)
			}
			if len(p) == 0 {
				prev = nil
				continue
			}
			if from < 0 {
				from = i
				prev = p
			}
		}
		flush(n)
	}
	return res
}

// Intensity maps a block count to [0, 1] for shading: 0 for empty cells, rising
// monotonically and reaching 1 at maxCount.
func Intensity(count, maxCount int) float64 {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	if count >= maxCount {
		return 1
	}
	return float64(count) / float64(maxCount)
}
