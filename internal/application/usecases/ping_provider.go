package usecases

import (
	"context"
	"fmt"

	"github.com/example/slotwatch/internal/domain/availability"
)

// PingProvider fetches each location once without filtering or notifying.
type PingProvider struct {
	Source    availability.SlotSource
	Locations []availability.Location
}

type PingResult struct {
	Location         availability.Location
	ReportedLocation string
	Records          int
	Available        int
	Err              error
}

func (u PingProvider) Execute(ctx context.Context) ([]PingResult, error) {
	if u.Source == nil {
		return nil, fmt.Errorf("source is nil")
	}
	out := make([]PingResult, 0, len(u.Locations))
	for _, loc := range u.Locations {
		r := PingResult{Location: loc}
		res, err := u.Source.Fetch(ctx, loc)
		if err != nil {
			r.Err = err
			out = append(out, r)
			continue
		}
		r.ReportedLocation = res.Location
		r.Records = len(res.Records)
		for _, rec := range res.Records {
			if rec.Available() {
				r.Available++
			}
		}
		out = append(out, r)
	}
	return out, nil
}
