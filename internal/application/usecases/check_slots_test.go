package usecases

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/slotwatch/internal/domain/availability"
	"github.com/example/slotwatch/internal/infrastructure/booking"
	"github.com/example/slotwatch/internal/infrastructure/notify"
	"github.com/example/slotwatch/internal/infrastructure/pushplus"
	"github.com/example/slotwatch/internal/internaltypes"
)

// fakeSource serves canned bodies per location id.
type fakeSource struct {
	bodies  map[string]string
	errs    map[string]error
	fetched []string
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(ctx context.Context, loc availability.Location) (availability.FetchResult, error) {
	f.fetched = append(f.fetched, loc.ID)
	if err, ok := f.errs[loc.ID]; ok {
		return availability.FetchResult{}, err
	}
	var parsed struct {
		Location string                    `json:"location"`
		Slots    []availability.SlotRecord `json:"slots"`
	}
	if err := json.Unmarshal([]byte(f.bodies[loc.ID]), &parsed); err != nil {
		return availability.FetchResult{}, err
	}
	return availability.FetchResult{Location: parsed.Location, Records: parsed.Slots}, nil
}

type fakeNotifier struct {
	name    string
	err     error
	reports []availability.AggregateReport
}

func (f *fakeNotifier) Name() string { return f.name }

func (f *fakeNotifier) Notify(ctx context.Context, r availability.AggregateReport) error {
	f.reports = append(f.reports, r)
	return f.err
}

var (
	roselands = availability.Location{ID: "421", Name: "Roselands"}
	botany    = availability.Location{ID: "17", Name: "Botany"}
	criteria  = availability.Criteria{Window: availability.DateWindow{
		Start: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}}
)

const roselandsBody = `{"location":"421","slots":[
	{"startTime":"10/01/2026 09:00","availability":true},
	{"startTime":"20/01/2026 09:00","availability":true},
	{"startTime":"06/01/2026 10:00","availability":false}
]}`

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestExecute_NotifiesInOrder(t *testing.T) {
	src := &fakeSource{bodies: map[string]string{
		"421": roselandsBody,
		"17":  `{"location":"17","slots":[{"startTime":"07/01/2026 08:00","availability":true}]}`,
	}}
	push := &fakeNotifier{name: "push"}
	call := &fakeNotifier{name: "call"}
	var buf bytes.Buffer

	sum := CheckSlots{
		Source:    src,
		Notifiers: []availability.Notifier{push, call},
		Locations: []availability.Location{roselands, botany},
		Criteria:  criteria,
		Log:       newLogger(&buf),
	}.Execute(context.Background())

	assert.Equal(t, []string{"421", "17"}, src.fetched)
	assert.Equal(t, 2, sum.LocationsChecked)
	assert.Equal(t, 2, sum.SlotsFound)
	assert.Equal(t, []string{"push", "call"}, sum.Notified)

	require.Len(t, push.reports, 1)
	got := push.reports[0]
	require.Len(t, got.Reports, 2)
	assert.Equal(t, roselands, got.Reports[0].Location)
	assert.Equal(t, []availability.FilteredSlot{{StartTime: "10/01/2026 09:00"}}, got.Reports[0].Slots)
	assert.Equal(t, botany, got.Reports[1].Location)
	assert.Len(t, call.reports, 1)
}

func TestExecute_EmptyAggregateInvokesNoNotifier(t *testing.T) {
	src := &fakeSource{bodies: map[string]string{
		"421": `{"location":"421","slots":[{"startTime":"20/01/2026 09:00","availability":true}]}`,
	}}
	push := &fakeNotifier{name: "push"}
	call := &fakeNotifier{name: "call"}

	sum := CheckSlots{
		Source:    src,
		Notifiers: []availability.Notifier{push, call},
		Locations: []availability.Location{roselands},
		Criteria:  criteria,
		Log:       newLogger(&bytes.Buffer{}),
	}.Execute(context.Background())

	assert.Zero(t, sum.SlotsFound)
	assert.Empty(t, sum.Notified)
	assert.Empty(t, push.reports)
	assert.Empty(t, call.reports)
}

func TestExecute_FetchFailureContinues(t *testing.T) {
	src := &fakeSource{
		bodies: map[string]string{"17": `{"location":"17","slots":[{"startTime":"07/01/2026 08:00","availability":true}]}`},
		errs: map[string]error{"421": &availability.FetchError{
			Kind: availability.FetchHTTPStatus, LocationID: "421", StatusCode: http.StatusServiceUnavailable,
		}},
	}
	push := &fakeNotifier{name: "push"}
	var buf bytes.Buffer

	sum := CheckSlots{
		Source:    src,
		Notifiers: []availability.Notifier{push},
		Locations: []availability.Location{roselands, botany},
		Criteria:  criteria,
		Log:       newLogger(&buf),
	}.Execute(context.Background())

	assert.Equal(t, 1, sum.FetchFailures)
	assert.Equal(t, []string{"421", "17"}, src.fetched)
	require.Len(t, push.reports, 1)
	assert.Equal(t, botany, push.reports[0].Reports[0].Location)
	assert.Contains(t, buf.String(), "unexpected status 503")
}

func TestExecute_AllFetchesFail(t *testing.T) {
	boom := errors.New("connection refused")
	src := &fakeSource{errs: map[string]error{"421": boom, "17": boom}}
	push := &fakeNotifier{name: "push"}

	sum := CheckSlots{
		Source:    src,
		Notifiers: []availability.Notifier{push},
		Locations: []availability.Location{roselands, botany},
		Criteria:  criteria,
		Log:       newLogger(&bytes.Buffer{}),
	}.Execute(context.Background())

	assert.Equal(t, 2, sum.FetchFailures)
	assert.Empty(t, push.reports)
}

func TestExecute_LocationMismatchStillProcessed(t *testing.T) {
	src := &fakeSource{bodies: map[string]string{
		"421": `{"location":"999","slots":[{"startTime":"10/01/2026 09:00","availability":true}]}`,
	}}
	push := &fakeNotifier{name: "push"}
	var buf bytes.Buffer

	CheckSlots{
		Source:    src,
		Notifiers: []availability.Notifier{push},
		Locations: []availability.Location{roselands},
		Criteria:  criteria,
		Log:       newLogger(&buf),
	}.Execute(context.Background())

	require.Len(t, push.reports, 1)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), internaltypes.ErrLocationMismatch.Error())
	assert.Contains(t, buf.String(), "reported_location=999")
}

func TestExecute_NotifierErrorsDoNotStopOthers(t *testing.T) {
	src := &fakeSource{bodies: map[string]string{"421": roselandsBody}}
	skipped := &fakeNotifier{name: "push", err: internaltypes.ErrNotConfigured}
	broken := &fakeNotifier{name: "ses", err: errors.New("throttled")}
	call := &fakeNotifier{name: "call"}
	var buf bytes.Buffer

	sum := CheckSlots{
		Source:    src,
		Notifiers: []availability.Notifier{skipped, broken, call},
		Locations: []availability.Location{roselands},
		Criteria:  criteria,
		Log:       newLogger(&buf),
	}.Execute(context.Background())

	assert.Equal(t, []string{"call"}, sum.Notified)
	assert.Len(t, skipped.reports, 1)
	assert.Len(t, broken.reports, 1)
	assert.Len(t, call.reports, 1)
	assert.Contains(t, buf.String(), "notifier skipped")
	assert.Contains(t, buf.String(), "notification failed")
}

func TestExecute_DelayBetweenLocationsOnly(t *testing.T) {
	third := availability.Location{ID: "5", Name: "Penrith"}
	src := &fakeSource{bodies: map[string]string{
		"421": `{"slots":[]}`, "17": `{"slots":[]}`, "5": `{"slots":[]}`,
	}}
	var slept []time.Duration

	CheckSlots{
		Source:    src,
		Locations: []availability.Location{roselands, botany, third},
		Criteria:  criteria,
		Delay:     time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		},
		Log: newLogger(&bytes.Buffer{}),
	}.Execute(context.Background())

	assert.Equal(t, []time.Duration{time.Second, time.Second}, slept)
	assert.Len(t, src.fetched, 3)
}

func TestExecute_CancelledDuringDelay(t *testing.T) {
	src := &fakeSource{bodies: map[string]string{"421": roselandsBody, "17": `{"slots":[]}`}}
	push := &fakeNotifier{name: "push"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum := CheckSlots{
		Source:    src,
		Notifiers: []availability.Notifier{push},
		Locations: []availability.Location{roselands, botany},
		Criteria:  criteria,
		Delay:     time.Hour,
		Log:       newLogger(&bytes.Buffer{}),
	}.Execute(ctx)

	assert.Equal(t, []string{"421"}, src.fetched)
	assert.Equal(t, 1, sum.LocationsChecked)
	assert.Len(t, push.reports, 1)
}

func TestExecute_EndToEndWithPushPlus(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "421", r.PostForm.Get("location_id"))
		_, _ = w.Write([]byte(`{"location":421,"slots":[
			{"startTime":"10/01/2026 09:00","availability":true},
			{"startTime":"20/01/2026 09:00","availability":true},
			{"startTime":"06/01/2026 10:00","availability":false}
		]}`))
	}))
	defer api.Close()

	var pushed struct {
		Token    string `json:"token"`
		Content  string `json:"content"`
		Template string `json:"template"`
	}
	pushCalls := 0
	push := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushCalls++
		require.NoError(t, json.NewDecoder(r.Body).Decode(&pushed))
	}))
	defer push.Close()

	sum := CheckSlots{
		Source: booking.NewFormSource(booking.NewClient(api.URL, time.Second)),
		Notifiers: []availability.Notifier{pushplus.New(pushplus.Config{
			Token:    "tok",
			Title:    "Driving test slots found",
			Endpoint: push.URL,
			Footer:   notify.Footer{BookingURL: "https://driverstest.noob.place/"},
		})},
		Locations: []availability.Location{roselands},
		Criteria:  criteria,
		Log:       newLogger(&bytes.Buffer{}),
	}.Execute(context.Background())

	assert.Equal(t, 1, sum.SlotsFound)
	assert.Equal(t, []string{"pushplus"}, sum.Notified)
	assert.Equal(t, 1, pushCalls)
	assert.Equal(t, "html", pushed.Template)
	assert.Contains(t, pushed.Content, "10/01/2026 09:00")
	assert.Contains(t, pushed.Content, "Roselands")
	assert.NotContains(t, pushed.Content, "20/01/2026 09:00")
	assert.NotContains(t, pushed.Content, "06/01/2026 10:00")
}

func TestExecute_EndToEndNoPushToken(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(roselandsBody))
	}))
	defer api.Close()

	pushCalls := 0
	push := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushCalls++
	}))
	defer push.Close()

	sum := CheckSlots{
		Source:    booking.NewFormSource(booking.NewClient(api.URL, time.Second)),
		Notifiers: []availability.Notifier{pushplus.New(pushplus.Config{Endpoint: push.URL})},
		Locations: []availability.Location{roselands},
		Criteria:  criteria,
		Log:       newLogger(&bytes.Buffer{}),
	}.Execute(context.Background())

	assert.Equal(t, 1, sum.SlotsFound)
	assert.Empty(t, sum.Notified)
	assert.Zero(t, pushCalls)
}
