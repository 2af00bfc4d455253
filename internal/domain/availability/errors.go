package availability

import "fmt"

type FetchErrorKind string

const (
	FetchTransport       FetchErrorKind = "transport"
	FetchHTTPStatus      FetchErrorKind = "http_status"
	FetchInvalidBody     FetchErrorKind = "invalid_body"
	FetchLocationMissing FetchErrorKind = "location_missing"
)

type FetchError struct {
	Kind       FetchErrorKind
	LocationID string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("fetch location %s: unexpected status %d", e.LocationID, e.StatusCode)
	case FetchLocationMissing:
		return fmt.Sprintf("fetch location %s: location not present in response", e.LocationID)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch location %s: %s: %v", e.LocationID, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch location %s: %s", e.LocationID, e.Kind)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError marks a slot whose start time could not be parsed. It only ever excludes that slot.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse start time %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
