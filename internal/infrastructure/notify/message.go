package notify

import (
	"html/template"
	"strings"
	"time"

	"github.com/example/slotwatch/internal/domain/availability"
)

// Footer is the call to action appended to every message.
type Footer struct {
	BookingURL   string
	ContactPhone string
}

const windowLayout = "02/01/2006"

var messageTmpl = template.Must(template.New("message").Parse(
	`<b>🎯 {{.Count}} slot(s) found between {{.From}} and {{.To}}</b><br><br>` +
		`{{range $i, $r := .Reports}}{{if $i}}<hr>{{end}}` +
		`<b>📍 {{$r.Location.Name}} ({{$r.Location.ID}})</b><br>` +
		`{{range $r.Slots}}{{.StartTime}}<br>{{end}}` +
		`{{end}}<br>` +
		`{{with .Footer.BookingURL}}👉 Book now: <a href="{{.}}">{{.}}</a><br>{{end}}` +
		`{{with .Footer.ContactPhone}}☎️ {{.}}<br>{{end}}`,
))

// Render builds the HTML body shared by the push and email channels.
func Render(report availability.AggregateReport, footer Footer) (string, error) {
	data := struct {
		Count   int
		From    string
		To      string
		Reports []availability.LocationReport
		Footer  Footer
	}{
		Count:   report.SlotCount(),
		From:    formatBound(report.Window.Start),
		To:      formatBound(report.Window.End),
		Reports: report.Reports,
		Footer:  footer,
	}
	var sb strings.Builder
	if err := messageTmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(windowLayout)
}

// Sample is a report used to verify notifier credentials.
func Sample(window availability.DateWindow) availability.AggregateReport {
	return availability.AggregateReport{
		Window: window,
		Reports: []availability.LocationReport{{
			Location: availability.Location{ID: "0", Name: "Test centre"},
			Slots: []availability.FilteredSlot{
				{StartTime: window.End.Format(availability.StartTimeLayout)},
			},
		}},
	}
}
