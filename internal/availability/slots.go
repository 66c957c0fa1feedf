package availability

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

// SlotMinutes is the grid granularity.
const SlotMinutes = 15

// Slot is a time of day in minutes after midnight, written "HH:mm".
// The end-of-day boundary is 24:00.
type Slot int

// NewSlot returns the slot at hour:minute.
func NewSlot(hour, minute int) Slot {
	return Slot(hour*60 + minute)
}

// SlotOf returns the slot containing t's wall clock, floored to SlotMinutes.
func SlotOf(t time.Time) Slot {
	m := t.Minute() - t.Minute()%SlotMinutes
	return NewSlot(t.Hour(), m)
}

// ParseSlot parses "HH:mm" with two unsigned digits on each side. Minutes
// must fall on a slot boundary.
func ParseSlot(v string) (Slot, error) {
	if len(v) != 5 || v[2] != ':' || !isDigits(v[:2]) || !isDigits(v[3:]) {
		return 0, fmt.Errorf("invalid slot %q", v)
	}
	h, _ := strconv.Atoi(v[:2])
	m, _ := strconv.Atoi(v[3:])
	if h > 24 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid slot %q", v)
	}
	if m%SlotMinutes != 0 {
		return 0, fmt.Errorf("invalid slot %q: minutes must be a multiple of %d", v, SlotMinutes)
	}
	return NewSlot(h, m), nil
}

func isDigits(v string) bool {
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}

func (s Slot) Hour() int   { return int(s) / 60 }
func (s Slot) Minute() int { return int(s) % 60 }

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour(), s.Minute())
}

// MarshalText encodes the slot as "HH:mm".
func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "HH:mm".
func (s *Slot) UnmarshalText(b []byte) error {
	v, err := ParseSlot(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// NextSlot adds SlotMinutes without wrapping at midnight: NextSlot(23:45) is 24:00.
func NextSlot(s Slot) Slot {
	return s + SlotMinutes
}

// GenerateSlots lists the slots of w in window order. A wrapping window lists
// [Min, 24) followed by [0, Max); that order defines slot indexes everywhere.
func GenerateSlots(w Window) []Slot {
	var slots []Slot
	appendHours := func(from, to int) {
		for h := from; h < to; h++ {
			for m := 0; m < 60; m += SlotMinutes {
				slots = append(slots, NewSlot(h, m))
			}
		}
	}
	if w.Wraps() {
		appendHours(w.Min, 24)
		appendHours(0, w.Max)
	} else {
		appendHours(w.Min, w.Max)
	}
	return slots
}

// SlotIndex returns the index of s in slots, or -1.
func SlotIndex(slots []Slot, s Slot) int {
	return slices.Index(slots, s)
}

// FormatSlots renders slots as "HH:mm" strings.
func FormatSlots(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}
