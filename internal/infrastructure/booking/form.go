package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/example/slotwatch/internal/domain/availability"
)

// FormSource posts the location as a form and reads a {location, slots} document.
type FormSource struct{ c *Client }

func NewFormSource(c *Client) *FormSource { return &FormSource{c: c} }

func (s *FormSource) Name() string { return "form" }

type formResponse struct {
	Location locationID                `json:"location"`
	Slots    []availability.SlotRecord `json:"slots"`
}

func (s *FormSource) Fetch(ctx context.Context, loc availability.Location) (availability.FetchResult, error) {
	form := url.Values{}
	form.Set("location_id", loc.ID)
	form.Set("client_etag", "")

	body, err := s.c.do(ctx, loc, http.MethodPost, "application/x-www-form-urlencoded", []byte(form.Encode()))
	if err != nil {
		return availability.FetchResult{}, err
	}
	var parsed formResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return availability.FetchResult{}, invalidBody(loc, err)
	}
	return availability.FetchResult{Location: string(parsed.Location), Records: parsed.Slots}, nil
}
