package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"meetgrid/internal/domain"
)

const productID = "-//meetgrid//best times//EN"

// BestTimes renders the blocks of a summary as VEVENTs, one per block, in a
// PUBLISH calendar. Each event lists who is available in its description.
func BestTimes(event *domain.Event, summary *domain.Summary, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(event.Title)

	for _, b := range summary.Blocks {
		uid := fmt.Sprintf("%s-%d-%d-%d@meetgrid", event.ID, b.DayIndex, b.StartSlotIndex, b.EndSlotIndex)
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(stamp.UTC())
		ev.SetStartAt(b.Start.UTC())
		ev.SetEndAt(b.End.UTC())
		ev.SetSummary(fmt.Sprintf("%s (%d/%d available)", event.Title, b.Count, summary.Respondents))
		ev.SetDescription(participants(b.ResponseIDs, summary.Names))
	}
	return cal.Serialize()
}

func participants(ids []string, names map[string]string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := names[id]; ok {
			out = append(out, n)
		} else {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return "Available: " + strings.Join(out, ", ")
}
