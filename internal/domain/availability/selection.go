package availability

import "time"

// Criteria decides which raw records count as open slots.
type Criteria struct {
	Window DateWindow

	// SlotNumberMeansAvailable treats a present slotNumber as available even when the
	// availability flag is not true. Off by default.
	SlotNumberMeansAvailable bool
}

type SkipReason string

const (
	SkipMissingStartTime SkipReason = "missing start time"
	SkipUnparseable      SkipReason = "unparseable start time"
	SkipUnavailable      SkipReason = "not available"
	SkipOutsideWindow    SkipReason = "outside date window"
)

// Skip describes a record the filter excluded. Err is set for SkipUnparseable.
type Skip struct {
	StartTime string
	Reason    SkipReason
	Err       error
}

type Selection struct {
	Slots   []FilteredSlot
	Skipped []Skip
}

// Filter returns the records that are available and inside the window, in input order.
// Times are parsed in the time zone of the window start.
func Filter(records []SlotRecord, c Criteria) Selection {
	var sel Selection
	loc := c.Window.Start.Location()
	for _, r := range records {
		if !r.HasStartTime {
			sel.Skipped = append(sel.Skipped, Skip{Reason: SkipMissingStartTime})
			continue
		}
		t, err := time.ParseInLocation(StartTimeLayout, r.StartTime, loc)
		if err != nil {
			sel.Skipped = append(sel.Skipped, Skip{
				StartTime: r.StartTime,
				Reason:    SkipUnparseable,
				Err:       &ParseError{Value: r.StartTime, Err: err},
			})
			continue
		}
		if !r.Available() && !(c.SlotNumberMeansAvailable && r.HasSlotNumber()) {
			sel.Skipped = append(sel.Skipped, Skip{StartTime: r.StartTime, Reason: SkipUnavailable})
			continue
		}
		if !c.Window.Contains(t) {
			sel.Skipped = append(sel.Skipped, Skip{StartTime: r.StartTime, Reason: SkipOutsideWindow})
			continue
		}
		sel.Slots = append(sel.Slots, FilteredSlot{StartTime: r.StartTime})
	}
	return sel
}
