package availability

import (
	"fmt"
	"strings"
	"time"

	"meetgrid/internal/domain"
)

// DayLayout is the format of grid day keys.
const DayLayout = "2006-01-02"

// Window is the usable-hour window [Min, Max) of a grid, in hours of the grid's
// timezone. Max is 24 when the window runs to the end of the day. Min >= Max
// means the window wraps past midnight.
type Window struct {
	Min int `json:"min_time"`
	Max int `json:"max_time"`
}

// Wraps reports whether the window crosses midnight.
func (w Window) Wraps() bool {
	return w.Min >= w.Max
}

// LoadLocation resolves an IANA timezone identifier. It rejects the empty
// string and "Local", which time.LoadLocation would otherwise accept.
func LoadLocation(tz string) (*time.Location, error) {
	name := strings.TrimSpace(tz)
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTimezone, tz)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// ToZoned returns the wall-clock representation of t in loc.
func ToZoned(t time.Time, loc *time.Location) time.Time {
	return t.In(loc)
}

// ToUTC returns t as a UTC instant.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// GridDayOf returns the grid day t belongs to. For a window that wraps past
// midnight, instants before Max belong to the previous calendar day's column.
func GridDayOf(t time.Time, loc *time.Location, w Window) string {
	local := t.In(loc)
	y, m, d := local.Date()
	if w.Wraps() && local.Hour() < w.Max {
		d--
	}
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Format(DayLayout)
}

// DeriveWindow reads the hour window from the first date range. An end hour of
// 0 means the end of the day and yields Max = 24.
func DeriveWindow(dates []domain.DateRange, loc *time.Location) (Window, error) {
	if len(dates) == 0 {
		return Window{}, domain.ErrNoDates
	}
	w := Window{
		Min: dates[0].Start.In(loc).Hour(),
		Max: dates[0].End.In(loc).Hour(),
	}
	if w.Max == 0 {
		w.Max = 24
	}
	return w, nil
}

// DistinctGridDays returns the grid day of every range start, deduplicated,
// in order of first occurrence.
func DistinctGridDays(dates []domain.DateRange, loc *time.Location, w Window) []string {
	seen := make(map[string]struct{}, len(dates))
	days := make([]string, 0, len(dates))
	for _, r := range dates {
		day := GridDayOf(r.Start, loc, w)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	return days
}

// ActualTime maps a slot of a grid day back to an instant. In a wrapping
// window, slots before Max fall on the calendar day after the grid day.
func ActualTime(w Window, s Slot, day string, loc *time.Location) (time.Time, error) {
	d, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse grid day %q: %w", day, err)
	}
	return actualTime(w, s, d, loc), nil
}

func actualTime(w Window, s Slot, day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	if w.Wraps() && s.Hour() < w.Max {
		d++
	}
	return time.Date(y, m, d, s.Hour(), s.Minute(), 0, 0, loc)
}
