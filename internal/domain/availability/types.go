package availability

import (
	"bytes"
	"encoding/json"
	"time"
)

// StartTimeLayout is the booking API's slot time format (dd/mm/yyyy HH:MM, 24h).
const StartTimeLayout = "02/01/2006 15:04"

type Location struct {
	ID   string
	Name string
}

// SlotRecord is one raw slot entry as returned by the booking API.
// Decoding never fails for a JSON object; fields with unexpected types are treated as absent
// so the filter can exclude the record instead of the whole response being rejected.
type SlotRecord struct {
	StartTime    string
	HasStartTime bool

	// Raw JSON, kept so availability can be checked for an exact boolean true.
	Availability json.RawMessage
	SlotNumber   json.RawMessage
}

func (r *SlotRecord) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*r = SlotRecord{}
	if raw, ok := fields["startTime"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			r.StartTime = s
			r.HasStartTime = true
		}
	}
	r.Availability = fields["availability"]
	r.SlotNumber = fields["slotNumber"]
	return nil
}

// Available reports whether the availability field is exactly the JSON literal true.
func (r SlotRecord) Available() bool {
	return bytes.Equal(bytes.TrimSpace(r.Availability), []byte("true"))
}

// HasSlotNumber reports whether slotNumber is present and not null.
func (r SlotRecord) HasSlotNumber() bool {
	v := bytes.TrimSpace(r.SlotNumber)
	return len(v) > 0 && !bytes.Equal(v, []byte("null"))
}

// DateWindow bounds the slot times worth alerting on. End is always inclusive.
type DateWindow struct {
	Start          time.Time
	End            time.Time
	StartInclusive bool
}

func (w DateWindow) Contains(t time.Time) bool {
	if t.After(w.End) {
		return false
	}
	if w.StartInclusive {
		return !t.Before(w.Start)
	}
	return t.After(w.Start)
}

type FilteredSlot struct {
	StartTime string
}

type LocationReport struct {
	Location Location
	Slots    []FilteredSlot
}

type AggregateReport struct {
	Window  DateWindow
	Reports []LocationReport
}

func (a AggregateReport) Empty() bool { return len(a.Reports) == 0 }

// SlotCount is the total number of slots across all locations.
func (a AggregateReport) SlotCount() int {
	n := 0
	for _, r := range a.Reports {
		n += len(r.Slots)
	}
	return n
}

// FetchResult is the parsed body of one fetch. Location is the ID the API reported, empty when
// the response shape carries none.
type FetchResult struct {
	Location string
	Records  []SlotRecord
}
