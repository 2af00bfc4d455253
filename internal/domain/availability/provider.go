package availability

import "context"

// SlotSource fetches the raw slot records for one location. Implementations make exactly one
// request per call and return a *FetchError on failure.
type SlotSource interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (FetchResult, error)
}

// Notifier delivers a non-empty aggregate report over one channel.
// Returning internaltypes.ErrNotConfigured means the channel is disabled for this run.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, report AggregateReport) error
}
