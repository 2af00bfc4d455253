package voice

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/example/slotwatch/internal/domain/availability"
	"github.com/example/slotwatch/internal/internaltypes"
)

type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	ToNumber   string

	Phrase  string
	Repeats int
}

func (c Config) complete() bool {
	for _, v := range []string{c.AccountSID, c.AuthToken, c.FromNumber, c.ToNumber} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

type callAPI interface {
	CreateCall(params *twilioApi.CreateCallParams) (*twilioApi.ApiV2010Call, error)
}

// Caller places one voice call that reads the alert phrase aloud.
type Caller struct {
	cfg Config
	api callAPI
}

func New(cfg Config) *Caller {
	c := &Caller{cfg: cfg}
	if cfg.complete() {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
		c.api = client.Api
	}
	return c
}

func (c *Caller) Name() string { return "twilio" }

// Notify ignores the report contents; the call only says that slots exist.
func (c *Caller) Notify(ctx context.Context, _ availability.AggregateReport) error {
	if !c.cfg.complete() || c.api == nil {
		return fmt.Errorf("twilio: account sid, auth token, from and to numbers are required: %w", internaltypes.ErrNotConfigured)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &twilioApi.CreateCallParams{}
	params.SetTo(c.cfg.ToNumber)
	params.SetFrom(c.cfg.FromNumber)
	params.SetTwiml(twiml(c.cfg.Phrase, c.cfg.Repeats))

	resp, err := c.api.CreateCall(params)
	if err != nil {
		return fmt.Errorf("twilio: create call: %w", err)
	}
	if resp != nil && resp.Sid != nil && *resp.Sid == "" {
		return fmt.Errorf("twilio: create call returned an empty sid")
	}
	return nil
}

func twiml(phrase string, repeats int) string {
	if repeats < 1 {
		repeats = 1
	}
	say := `<Say voice="alice">` + html.EscapeString(phrase) + `</Say>`
	parts := make([]string, repeats)
	for i := range parts {
		parts[i] = say
	}
	return `<Response>` + strings.Join(parts, `<Pause length="1"/>`) + `</Response>`
}
