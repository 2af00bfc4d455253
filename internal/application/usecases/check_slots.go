package usecases

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/example/slotwatch/internal/domain/availability"
	"github.com/example/slotwatch/internal/internaltypes"
)

// CheckSlots runs one full pass over the configured locations.
type CheckSlots struct {
	Source    availability.SlotSource
	Notifiers []availability.Notifier
	Locations []availability.Location
	Criteria  availability.Criteria

	// Delay is slept between consecutive location fetches.
	Delay time.Duration
	Sleep func(ctx context.Context, d time.Duration) error

	Log *slog.Logger
}

type RunSummary struct {
	LocationsChecked int
	FetchFailures    int
	SlotsFound       int
	Notified         []string
}

// Execute never fails: every fetch and notifier error is logged and the run moves on.
func (u CheckSlots) Execute(ctx context.Context) RunSummary {
	log := u.Log
	if log == nil {
		log = slog.Default()
	}
	sleep := u.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	window := u.Criteria.Window
	log.Info("check started",
		"source", u.Source.Name(),
		"locations", len(u.Locations),
		"window_start", window.Start.Format(time.DateTime),
		"window_end", window.End.Format(time.DateTime),
		"start_inclusive", window.StartInclusive,
	)

	var sum RunSummary
	reports := make([]availability.LocationReport, 0, len(u.Locations))
	for i, loc := range u.Locations {
		if i > 0 && u.Delay > 0 {
			if err := sleep(ctx, u.Delay); err != nil {
				log.Warn("check interrupted", "error", err)
				break
			}
		}
		sum.LocationsChecked++
		llog := log.With("location_id", loc.ID, "location", loc.Name)

		rep, ok := u.checkLocation(ctx, llog, loc)
		if !ok {
			sum.FetchFailures++
			continue
		}
		reports = append(reports, rep)
	}

	agg := availability.Aggregate(window, reports)
	sum.SlotsFound = agg.SlotCount()
	if agg.Empty() {
		log.Info("check finished: no matching slots", "locations_checked", sum.LocationsChecked, "fetch_failures", sum.FetchFailures)
		return sum
	}

	log.Info("matching slots found, notifying", "slots", sum.SlotsFound, "locations", len(agg.Reports))
	for _, n := range u.Notifiers {
		err := n.Notify(ctx, agg)
		switch {
		case err == nil:
			sum.Notified = append(sum.Notified, n.Name())
			log.Info("notification sent", "notifier", n.Name())
		case errors.Is(err, internaltypes.ErrNotConfigured):
			log.Info("notifier skipped", "notifier", n.Name(), "reason", err)
		default:
			log.Error("notification failed", "notifier", n.Name(), "error", err)
		}
	}
	log.Info("check finished", "locations_checked", sum.LocationsChecked, "fetch_failures", sum.FetchFailures,
		"slots", sum.SlotsFound, "notified", sum.Notified)
	return sum
}

func (u CheckSlots) checkLocation(ctx context.Context, log *slog.Logger, loc availability.Location) (availability.LocationReport, bool) {
	res, err := u.Source.Fetch(ctx, loc)
	if err != nil {
		log.Error("fetch failed", "error", err)
		return availability.LocationReport{}, false
	}
	if res.Location != "" && res.Location != loc.ID {
		// Mismatched IDs are reported but the slot list is still used.
		log.Warn("booking api answered for another location, continuing",
			"error", internaltypes.ErrLocationMismatch, "reported_location", res.Location)
	}
	log.Info("slots fetched", "records", len(res.Records))

	sel := availability.Filter(res.Records, u.Criteria)
	for _, s := range sel.Skipped {
		if s.Err != nil {
			log.Debug("slot skipped", "start_time", s.StartTime, "reason", s.Reason, "error", s.Err)
			continue
		}
		log.Debug("slot skipped", "start_time", s.StartTime, "reason", s.Reason)
	}
	for _, s := range sel.Slots {
		log.Info("slot matched", "start_time", s.StartTime)
	}
	return availability.LocationReport{Location: loc, Slots: sel.Slots}, true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
