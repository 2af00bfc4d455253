package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/slotwatch/internal/domain/availability"
	"github.com/example/slotwatch/internal/internaltypes"
)

// TestNotify sends a sample report through every notifier.
type TestNotify struct {
	Notifiers []availability.Notifier
}

type NotifyOutcome struct {
	Notifier string
	Skipped  bool
	Err      error
}

func (u TestNotify) Execute(ctx context.Context, report availability.AggregateReport) ([]NotifyOutcome, error) {
	if report.Empty() {
		return nil, fmt.Errorf("sample report is empty")
	}
	out := make([]NotifyOutcome, 0, len(u.Notifiers))
	for _, n := range u.Notifiers {
		err := n.Notify(ctx, report)
		o := NotifyOutcome{Notifier: n.Name()}
		if errors.Is(err, internaltypes.ErrNotConfigured) {
			o.Skipped = true
		} else {
			o.Err = err
		}
		out = append(out, o)
	}
	return out, nil
}
