package booking

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/example/slotwatch/internal/domain/availability"
)

// StaticSource reads a static JSON document holding every location and picks the requested one.
type StaticSource struct{ c *Client }

func NewStaticSource(c *Client) *StaticSource { return &StaticSource{c: c} }

func (s *StaticSource) Name() string { return "static" }

type staticEntry struct {
	Location locationID `json:"location"`
	Result   struct {
		AjaxResult struct {
			Slots struct {
				ListTimeSlot []availability.SlotRecord `json:"listTimeSlot"`
			} `json:"slots"`
		} `json:"ajaxresult"`
	} `json:"result"`
}

func (s *StaticSource) Fetch(ctx context.Context, loc availability.Location) (availability.FetchResult, error) {
	body, err := s.c.do(ctx, loc, http.MethodGet, "", nil)
	if err != nil {
		return availability.FetchResult{}, err
	}
	var entries []staticEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return availability.FetchResult{}, invalidBody(loc, err)
	}
	for _, e := range entries {
		if string(e.Location) != loc.ID {
			continue
		}
		return availability.FetchResult{
			Location: string(e.Location),
			Records:  e.Result.AjaxResult.Slots.ListTimeSlot,
		}, nil
	}
	return availability.FetchResult{}, &availability.FetchError{Kind: availability.FetchLocationMissing, LocationID: loc.ID}
}
